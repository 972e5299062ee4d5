package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/middleware"
)

// AuthHandler issues owner access tokens.
type AuthHandler struct {
	passwordHash []byte
	secret       string
	ttl          time.Duration
}

// NewAuthHandler creates a new AuthHandler. passwordHash is the bcrypt hash
// of the owner passphrase.
func NewAuthHandler(passwordHash, secret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{passwordHash: []byte(passwordHash), secret: secret, ttl: ttl}
}

// TokenRequest represents the token request payload
type TokenRequest struct {
	Passphrase string `json:"passphrase" binding:"required,max=128"`
}

// TokenResponse represents the token response
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateToken exchanges the owner passphrase for an access token
// @Summary     Get an access token
// @Description Exchange the owner passphrase for a bearer token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body TokenRequest true "Owner passphrase"
// @Success     200 {object} TokenResponse "Token issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/token [post]
func (h *AuthHandler) CreateToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Passphrase)); err != nil {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	token, expiresAt, err := middleware.GenerateToken(h.secret, h.ttl)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}
