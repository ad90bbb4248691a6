package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/apperror"
	appctx "stockroom/internal/core/context"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuth struct {
	enabled bool
	tokens  map[string]string
}

func (s stubAuth) Enabled() bool { return s.enabled }

func (s stubAuth) Authenticate(token string) (string, error) {
	if subject, ok := s.tokens[token]; ok {
		return subject, nil
	}
	return "", apperror.NewUnauthorized("invalid or expired token")
}

func newEngine(auth Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(), Trace(), ErrorHandler())
	g := r.Group("/")
	if auth != nil {
		g.Use(Auth(auth))
	}
	g.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": appctx.GetSubject(c.Request.Context())})
	})
	g.GET("/fail", func(c *gin.Context) {
		_ = c.Error(apperror.NewInsufficientStock(7, 5, 2))
		c.Abort()
	})
	g.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("driver exploded"))
		c.Abort()
	})
	g.GET("/panic", func(c *gin.Context) {
		panic("unexpected")
	})
	return r
}

func do(r http.Handler, path, authHeader string) (*httptest.ResponseRecorder, ErrorResponse) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestAuth(t *testing.T) {
	gate := stubAuth{enabled: true, tokens: map[string]string{"good": "operator"}}
	r := newEngine(gate)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
		{"scheme is case-insensitive", "bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(r, "/whoami", tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, apperror.CodeUnauthorized, body.Code)
			}
		})
	}
}

func TestAuth_SubjectInContext(t *testing.T) {
	r := newEngine(stubAuth{enabled: true, tokens: map[string]string{"good": "operator"}})

	w, _ := do(r, "/whoami", "Bearer good")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "operator", body["subject"])
}

func TestAuth_DisabledGatePassesThrough(t *testing.T) {
	r := newEngine(stubAuth{enabled: false})

	w, _ := do(r, "/whoami", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestErrorHandler_AppError(t *testing.T) {
	r := newEngine(nil)

	w, body := do(r, "/fail", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.CodeInsufficientStock, body.Code)
	assert.EqualValues(t, 5, body.Details["requested"])
	assert.EqualValues(t, 2, body.Details["available"])
}

func TestErrorHandler_HidesUnknownErrors(t *testing.T) {
	r := newEngine(nil)

	w, body := do(r, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeInternal, body.Code)
	assert.NotContains(t, w.Body.String(), "driver exploded")
	assert.NotEmpty(t, body.Details[KeyRequestID])
}

func TestRecovery(t *testing.T) {
	r := newEngine(nil)

	w, body := do(r, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeInternal, body.Code)
}

func TestTrace_KeepsIncomingRequestID(t *testing.T) {
	r := newEngine(nil)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))
	assert.NotEmpty(t, w.Header().Get(HeaderTraceID))
}
