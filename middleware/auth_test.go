package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tripnest/models"
	"tripnest/utils"

	"github.com/gin-gonic/gin"
)

type stubAuth struct{}

func (stubAuth) SignUp(context.Context, string, string, string) (*models.AuthSession, error) {
	return nil, nil
}
func (stubAuth) SignIn(context.Context, string, string) (*models.AuthSession, error) {
	return nil, nil
}
func (stubAuth) SignOut(context.Context, string) error { return nil }
func (stubAuth) CurrentUser(context.Context) (*models.User, error) { return nil, nil }
func (stubAuth) Authenticate(_ context.Context, token string) (string, error) {
	if token == "good" {
		return "u1", nil
	}
	return "", utils.Unauthenticated("session expired")
}

func newAuthRouter(optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", JWTAuthMiddleware(stubAuth{}, optional), func(c *gin.Context) {
		uid, _ := utils.UserIDFromContext(c.Request.Context())
		c.String(http.StatusOK, uid)
	})
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		optional bool
		header   string
		status   int
		body     string
	}{
		{"valid token", false, "Bearer good", http.StatusOK, "u1"},
		{"missing header", false, "", http.StatusUnauthorized, ""},
		{"wrong scheme", false, "Basic good", http.StatusUnauthorized, ""},
		{"rejected token", false, "Bearer bad", http.StatusUnauthorized, ""},
		{"optional anonymous", true, "", http.StatusOK, ""},
		{"optional rejected token", true, "Bearer bad", http.StatusOK, ""},
		{"optional valid token", true, "Bearer good", http.StatusOK, "u1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newAuthRouter(tt.optional), tt.header)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.status == http.StatusOK && w.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.body)
			}
		})
	}
}
