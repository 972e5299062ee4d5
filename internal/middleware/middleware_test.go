package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/private", AuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString(subjectKey)})
	})
	return r
}

func doAuthRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	t.Run("valid_token", func(t *testing.T) {
		token, expiresAt, err := GenerateToken(testSecret, time.Hour)
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		if time.Until(expiresAt) <= 0 {
			t.Error("expected expiry in the future")
		}

		w := doAuthRequest(r, "Bearer "+token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		w := doAuthRequest(r, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong_scheme", func(t *testing.T) {
		w := doAuthRequest(r, "Basic abc")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong_secret", func(t *testing.T) {
		token, _, err := GenerateToken("other-secret", time.Hour)
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		w := doAuthRequest(r, "Bearer "+token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, _, err := GenerateToken(testSecret, -time.Minute)
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		w := doAuthRequest(r, "Bearer "+token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging(), ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperrors.ErrBudgetNotFound)
	})
	r.GET("/plain", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/app", http.StatusNotFound, "BUDGET_NOT_FOUND"},
		{"/plain", http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set(requestIDHeader, "req-1")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			var body struct {
				Error struct {
					Code      string `json:"code"`
					RequestID string `json:"request_id"`
				} `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, body.Error.Code)
			}
			if body.Error.RequestID != "req-1" {
				t.Errorf("expected request id req-1, got %q", body.Error.RequestID)
			}
			if w.Header().Get(requestIDHeader) != "req-1" {
				t.Errorf("expected X-Request-ID echoed, got %q", w.Header().Get(requestIDHeader))
			}
		})
	}
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer logger.Replace(zap.New(core))()

	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	t.Run("reuses an incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("X-Request-ID", "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Body.String() != "req-123" {
			t.Errorf("expected handler to see req-123, got %q", w.Body.String())
		}
		if got := w.Header().Get("X-Request-ID"); got != "req-123" {
			t.Errorf("expected response header req-123, got %q", got)
		}
	})

	t.Run("generates an id when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		if len(w.Header().Get("X-Request-ID")) != 36 {
			t.Errorf("expected a uuid request id, got %q", w.Header().Get("X-Request-ID"))
		}
	})

	t.Run("logs client errors at warn", func(t *testing.T) {
		logs.TakeAll()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

		entries := logs.TakeAll()
		if len(entries) != 1 {
			t.Fatalf("expected 1 log entry, got %d", len(entries))
		}
		if entries[0].Level != zapcore.WarnLevel {
			t.Errorf("expected warn, got %s", entries[0].Level)
		}
		if entries[0].ContextMap()["path"] != "/missing" {
			t.Errorf("expected path field, got %v", entries[0].ContextMap())
		}
	})
}
