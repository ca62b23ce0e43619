package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	autherrors "github.com/Shivkumar-Raghuwanshi/employee-hub/internal/auth/errors"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)

	// Login verifies credentials, opens a session and returns the signed
	// session token the handler sets as a cookie.
	Login(ctx context.Context, email, password string) (token string, resp AuthResponse, err error)

	Logout(ctx context.Context, sessionID string) error

	GetMe(ctx context.Context, ownerID string) (*AuthResponse, error)
}

type service struct {
	repo     Repository
	sessions *session.Store
	logger   *zap.Logger
}

func NewService(repo Repository, sessions *session.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, sessions: sessions, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Password: string(hashed),
		IsActive: true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Warn("register persist failed", zap.String("email", user.Email), zap.Error(err))
		return AuthResponse{}, mapAuthError(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))

	return AuthResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, AuthResponse, error) {
	// 1. Ambil user
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// 2. Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// 3. Buka sesi di Redis
	sessionID := uuid.NewString()
	if err := s.sessions.Save(ctx, sessionID, user.ID.String()); err != nil {
		s.logger.Error("save session failed", zap.Error(err))
		return "", AuthResponse{}, err
	}

	// 4. Generate token (OwnerID + SessionID)
	token, err := s.generateToken(user.ID.String(), sessionID, s.sessions.TTL())
	if err != nil {
		return "", AuthResponse{}, err
	}

	s.logger.Info("login success", zap.String("user_id", user.ID.String()))

	return token, AuthResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return autherrors.ErrInvalidToken
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Error("delete session failed", zap.Error(err))
		return err
	}
	s.logger.Info("logout success", zap.String("session_id", sessionID))
	return nil
}

func (s *service) GetMe(ctx context.Context, ownerID string) (*AuthResponse, error) {
	id, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapAuthError(err)
	}

	return &AuthResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func (s *service) generateToken(ownerID, sessionID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"owner_id":   ownerID,
		"session_id": sessionID,
		"exp":        time.Now().Add(ttl).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapAuthError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return autherrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return autherrors.ErrEmailAlreadyRegistered
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return autherrors.ErrEmailAlreadyRegistered
	}

	return err
}
