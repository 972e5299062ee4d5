package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "fintrack/internal/errors"
)

const (
	tokenIssuer  = "fintrack-api"
	ownerSubject = "owner"
	subjectKey   = "subject"
)

// OwnerClaims are the claims of an owner access token. The tracker has a
// single owner, so the subject is fixed.
type OwnerClaims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs an access token valid for ttl and returns it with its
// expiry.
func GenerateToken(secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &OwnerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   ownerSubject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken validates an access token signed with secret.
func ParseToken(secret, tokenString string) (*OwnerClaims, error) {
	claims := &OwnerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject != ownerSubject {
		return nil, fmt.Errorf("unexpected subject %q", claims.Subject)
	}
	return claims, nil
}

// AuthMiddleware requires a valid owner bearer token.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := ParseToken(secret, parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(subjectKey, claims.Subject)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(apperrors.ErrUnauthorized.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrUnauthorized.Code,
			"message": message,
		},
	})
}
