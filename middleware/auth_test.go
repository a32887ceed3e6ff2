package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alfar-programer/Store-B-sub000/auth"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	whoami := func(c *gin.Context) {
		claims, ok := auth.ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": claims.UserID, "role": claims.Role})
	}

	r.GET("/me", RequireAuth(tokens), whoami)
	r.GET("/admin", RequireAuth(tokens), RequireAdmin(), whoami)
	r.GET("/maybe", OptionalAuth(tokens), whoami)
	return r
}

func issue(t *testing.T, tokens *auth.TokenManager, role models.Role) string {
	t.Helper()
	token, _, err := tokens.Issue(&models.User{ID: 42, Role: role})
	require.NoError(t, err)
	return token
}

func do(r http.Handler, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour, nil)
	r := newRouter(tokens)
	customer := issue(t, tokens, models.RoleCustomer)

	tests := []struct {
		name   string
		mutate func(*http.Request)
		status int
	}{
		{"missing token", nil, http.StatusUnauthorized},
		{"malformed header", func(req *http.Request) { req.Header.Set("Authorization", "Token abc") }, http.StatusUnauthorized},
		{"invalid token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer garbage") }, http.StatusForbidden},
		{"bearer header", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+customer) }, http.StatusOK},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: customer}) }, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, "/me", tt.mutate)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", -time.Minute, nil)
	r := newRouter(tokens)
	expired := issue(t, tokens, models.RoleCustomer)

	w := do(r, "/me", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+expired) })
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour, nil)
	r := newRouter(tokens)

	w := do(r, "/admin", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+issue(t, tokens, models.RoleCustomer))
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, "/admin", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+issue(t, tokens, models.RoleAdmin))
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestOptionalAuth(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour, nil)
	r := newRouter(tokens)

	w := do(r, "/maybe", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")

	w = do(r, "/maybe", func(req *http.Request) { req.Header.Set("Authorization", "Bearer garbage") })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")

	w = do(r, "/maybe", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+issue(t, tokens, models.RoleCustomer))
	})
	assert.Contains(t, w.Body.String(), `"id":42`)
}

type downRevoker struct{}

func (downRevoker) Revoke(context.Context, string, time.Duration) error {
	return errors.New("dial tcp: connection refused")
}

func (downRevoker) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("dial tcp: connection refused")
}

func TestRevocationStoreDown_IsServerError(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour, downRevoker{})
	r := newRouter(tokens)
	token := issue(t, tokens, models.RoleCustomer)
	withToken := func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }

	w := do(r, "/me", withToken)
	assert.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "connection refused")

	w = do(r, "/maybe", withToken)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(r, "/me", func(req *http.Request) { req.Header.Set("Authorization", "Bearer garbage") })
	assert.Equal(t, http.StatusForbidden, w.Code, "bad tokens are rejected before the store is asked")
}
