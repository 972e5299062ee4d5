package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// dateLayouts are tried in order by parseFlexibleTime.
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// parseFlexibleTime accepts RFC 3339 timestamps as well as plain dates.
// Plain dates are read in local time.
func parseFlexibleTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date "+s+", expected YYYY-MM-DD or RFC 3339")
}

// optionalTimeQuery parses query parameter key when present.
func optionalTimeQuery(c *gin.Context, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseAmount parses a decimal amount from a request string.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a decimal number")
	}
	return d, nil
}

// bindError reports a request binding failure as INVALID_INPUT.
func bindError(c *gin.Context, err error) {
	respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	requestID := middleware.RequestID(c)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", requestID,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
			"request_id", requestID,
		)
	}

	c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:      appErr.Code,
		Message:   appErr.Message,
		RequestID: requestID,
	}})
}
