package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/middleware"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/session"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func signToken(t *testing.T, ownerID, sessionID string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"owner_id":   ownerID,
		"session_id": sessionID,
		"exp":        time.Now().Add(ttl).Unix(),
		"iat":        time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return token
}

func newAuthRouter(t *testing.T, sessions *session.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.SessionAuth(sessions), func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"owner_id": c.GetString("owner_id")}, nil)
	})
	return r
}

func TestSessionAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid cookie token with a live session passes", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		sessions := session.NewStore(rdb, 24*time.Hour)
		r := newAuthRouter(t, sessions)

		redisMock.ExpectGet("session:sess-1").SetVal("owner-u1")

		token := signToken(t, "owner-u1", "sess-1", time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "owner-u1")
	})

	t.Run("bearer header works too", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		sessions := session.NewStore(rdb, 24*time.Hour)
		r := newAuthRouter(t, sessions)

		redisMock.ExpectGet("session:sess-1").SetVal("owner-u1")

		token := signToken(t, "owner-u1", "sess-1", time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		sessions := session.NewStore(rdb, 24*time.Hour)
		r := newAuthRouter(t, sessions)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revoked session is rejected even with a valid signature", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		sessions := session.NewStore(rdb, 24*time.Hour)
		r := newAuthRouter(t, sessions)

		// Logout deleted the record, so the lookup misses
		redisMock.ExpectGet("session:sess-1").RedisNil()

		token := signToken(t, "owner-u1", "sess-1", time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		sessions := session.NewStore(rdb, 24*time.Hour)
		r := newAuthRouter(t, sessions)

		token := signToken(t, "owner-u1", "sess-1", -time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		sessions := session.NewStore(rdb, 24*time.Hour)
		r := newAuthRouter(t, sessions)

		claims := jwt.MapClaims{
			"owner_id":   "owner-u1",
			"session_id": "sess-1",
			"exp":        time.Now().Add(time.Hour).Unix(),
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: forged})
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("session owned by someone else is rejected", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		sessions := session.NewStore(rdb, 24*time.Hour)
		r := newAuthRouter(t, sessions)

		redisMock.ExpectGet("session:sess-1").SetVal("owner-other")

		token := signToken(t, "owner-u1", "sess-1", time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
