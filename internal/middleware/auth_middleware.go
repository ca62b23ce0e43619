package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "github.com/Shivkumar-Raghuwanshi/employee-hub/internal/auth/errors"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/session"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const SessionCookieName = "session_token"

// SessionAuth validates the caller's session before any storage call. The
// token comes from the Authorization header or the session cookie; its
// session id must still resolve in the store, so a logged-out token is dead
// even before the JWT expiry.
func SessionAuth(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Session token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		ownerID, ok := claims["owner_id"].(string)
		if !ok || ownerID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Owner ID not found in token", nil)
			c.Abort()
			return
		}

		sessionID, ok := claims["session_id"].(string)
		if !ok || sessionID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Session ID not found in token", nil)
			c.Abort()
			return
		}

		// Sesi harus masih hidup di store; token dari logout ditolak di sini
		storedOwner, err := sessions.Get(c.Request.Context(), sessionID)
		if err != nil || storedOwner != ownerID {
			errObj := autherrors.ErrSessionRevoked
			if err != nil && !errors.Is(err, session.ErrNotFound) {
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
				c.Abort()
				return
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		c.Set("owner_id", ownerID)
		c.Set("session_id", sessionID)

		c.Next()
	}
}
