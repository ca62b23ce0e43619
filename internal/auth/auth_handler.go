package auth

import (
	"net/http"
	"time"

	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/middleware"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/session"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/shared/apperror"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service  Service
	sessions *session.Store
	logger   *zap.Logger
}

func NewHandler(service Service, sessions *session.Store, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, sessions: sessions, logger: l}
}

// cookieMaxAge keeps the cookie lifetime in lockstep with the redis session.
func (h *Handler) cookieMaxAge() int {
	if h.sessions == nil {
		return int((24 * time.Hour).Seconds())
	}
	return int(h.sessions.TTL().Seconds())
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	token, resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Sesi dibawa sebagai cookie HttpOnly
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, h.cookieMaxAge(), "/", "", false, true)

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	sessionID := c.GetString("session_id")

	if err := h.service.Logout(c.Request.Context(), sessionID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	ownerID := c.GetString("owner_id")

	resp, err := h.service.GetMe(c.Request.Context(), ownerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
