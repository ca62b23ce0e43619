package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/auth"
	autherrors "github.com/Shivkumar-Raghuwanshi/employee-hub/internal/auth/errors"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/middleware"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	RegisterFn func(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error)
	LoginFn    func(ctx context.Context, email, password string) (string, auth.AuthResponse, error)
	LogoutFn   func(ctx context.Context, sessionID string) error
	GetMeFn    func(ctx context.Context, ownerID string) (*auth.AuthResponse, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	return f.RegisterFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, auth.AuthResponse, error) {
	return f.LoginFn(ctx, email, password)
}

func (f *fakeAuthService) Logout(ctx context.Context, sessionID string) error {
	return f.LogoutFn(ctx, sessionID)
}

func (f *fakeAuthService) GetMe(ctx context.Context, ownerID string) (*auth.AuthResponse, error) {
	return f.GetMeFn(ctx, ownerID)
}

func setupAuthHandlerTest(t *testing.T, svc auth.Service) (*auth.Handler, *httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	rdb, _ := redismock.NewClientMock()
	sessions := session.NewStore(rdb, 2*time.Hour)
	return auth.NewHandler(svc, sessions), w, c
}

func postJSON(t *testing.T, c *gin.Context, path string, body any) {
	t.Helper()
	data, err := json.Marshal(body)
	assert.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	c.Request.Header.Set("Content-Type", "application/json")
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			RegisterFn: func(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
				return auth.AuthResponse{ID: "u-1", Name: req.Name, Email: req.Email}, nil
			},
		}
		h, w, c := setupAuthHandlerTest(t, svc)
		postJSON(t, c, "/api/v1/auth/register", gin.H{
			"name":     "Alice",
			"email":    "alice@example.com",
			"password": "secret123",
		})

		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":true`)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		called := false
		svc := &fakeAuthService{
			RegisterFn: func(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
				called = true
				return auth.AuthResponse{}, nil
			},
		}
		h, w, c := setupAuthHandlerTest(t, svc)
		postJSON(t, c, "/api/v1/auth/register", gin.H{
			"name":     "Alice",
			"email":    "alice@example.com",
			"password": "abc",
		})

		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		svc := &fakeAuthService{
			RegisterFn: func(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
				return auth.AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
			},
		}
		h, w, c := setupAuthHandlerTest(t, svc)
		postJSON(t, c, "/api/v1/auth/register", gin.H{
			"name":     "Alice",
			"email":    "alice@example.com",
			"password": "secret123",
		})

		h.Register(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success sets the session cookie", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(ctx context.Context, email, password string) (string, auth.AuthResponse, error) {
				assert.Equal(t, "alice@example.com", email)
				return "signed-token", auth.AuthResponse{ID: "u-1", Email: email}, nil
			},
		}
		h, w, c := setupAuthHandlerTest(t, svc)
		postJSON(t, c, "/api/v1/auth/login", gin.H{
			"email":    "alice@example.com",
			"password": "secret123",
		})

		h.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)

		cookie := w.Header().Get("Set-Cookie")
		assert.Contains(t, cookie, middleware.SessionCookieName+"=signed-token")
		assert.Contains(t, strings.ToLower(cookie), "httponly")
		// Cookie lifetime follows the store's TTL (2h in this setup)
		assert.Contains(t, cookie, "Max-Age=7200")
	})

	t.Run("bad credentials return unauthorized without a cookie", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(ctx context.Context, email, password string) (string, auth.AuthResponse, error) {
				return "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials
			},
		}
		h, w, c := setupAuthHandlerTest(t, svc)
		postJSON(t, c, "/api/v1/auth/login", gin.H{
			"email":    "alice@example.com",
			"password": "wrong",
		})

		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Header().Get("Set-Cookie"))
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("revokes and clears the cookie", func(t *testing.T) {
		var gotSessionID string
		svc := &fakeAuthService{
			LogoutFn: func(ctx context.Context, sessionID string) error {
				gotSessionID = sessionID
				return nil
			},
		}
		h, w, c := setupAuthHandlerTest(t, svc)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		c.Set("session_id", "sess-1")

		h.Logout(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "sess-1", gotSessionID)

		cookie := w.Header().Get("Set-Cookie")
		assert.Contains(t, cookie, middleware.SessionCookieName+"=")
		assert.Contains(t, cookie, "Max-Age=0")
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			GetMeFn: func(ctx context.Context, ownerID string) (*auth.AuthResponse, error) {
				assert.Equal(t, "u-1", ownerID)
				return &auth.AuthResponse{ID: ownerID, Name: "Alice"}, nil
			},
		}
		h, w, c := setupAuthHandlerTest(t, svc)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		c.Set("owner_id", "u-1")

		h.Me(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Alice")
	})

	t.Run("missing user", func(t *testing.T) {
		svc := &fakeAuthService{
			GetMeFn: func(ctx context.Context, ownerID string) (*auth.AuthResponse, error) {
				return nil, autherrors.ErrUserNotFound
			},
		}
		h, w, c := setupAuthHandlerTest(t, svc)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		c.Set("owner_id", "u-gone")

		h.Me(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
