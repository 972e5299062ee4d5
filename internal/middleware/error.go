package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
)

// ErrorHandler turns the last error attached with c.Error into a JSON error
// body. AppErrors keep their code and message. Anything else is logged and
// answered as INTERNAL_ERROR.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log := logger.Get().With("path", c.Request.URL.Path, "request_id", RequestID(c))

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			log.Errorw("unexpected error", "error", err.Error(), "method", c.Request.Method)
			appErr = apperrors.ErrInternalServer
		} else if appErr.Internal != nil {
			log.Errorw("app error",
				"code", appErr.Code,
				"message", appErr.Message,
				"internal", appErr.Internal.Error(),
			)
		}

		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":       appErr.Code,
				"message":    appErr.Message,
				"request_id": RequestID(c),
			},
		})
	}
}
