package services

import (
	"context"
	"errors"
	"strings"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/auth"
	"apartment-backend/internal/cache"
	"apartment-backend/internal/metrics"
	"apartment-backend/internal/models"

	"go.uber.org/zap"
)

const (
	defaultLoginLogLimit = 100
	maxLoginLogLimit     = 1000
)

type UserService struct {
	Repo       UserStore
	LoginLogs  LoginLogStore
	JWTManager *auth.JWTManager
	// HashPasswords stores new secrets as bcrypt hashes instead of verbatim
	HashPasswords bool
}

func NewUserService(repo UserStore, loginLogs LoginLogStore, jwtManager *auth.JWTManager, hashPasswords bool) *UserService {
	return &UserService{
		Repo:          repo,
		LoginLogs:     loginLogs,
		JWTManager:    jwtManager,
		HashPasswords: hashPasswords,
	}
}

// CreateUser adds an operator account
func (s *UserService) CreateUser(ctx context.Context, u *models.User) error {
	if strings.TrimSpace(u.Username) == "" || u.Password == "" {
		return apperr.Validation("Username and password are required")
	}
	secret, err := s.storedSecret(u.Password)
	if err != nil {
		return err
	}
	u.Password = secret
	return s.Repo.Create(ctx, u)
}

// Login authenticates a user and returns a JWT token
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest, ipAddress, userAgent string) (*models.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperr.Validation("Username and password are required")
	}

	user, err := s.Repo.GetByUsername(ctx, req.Username)
	if errors.Is(err, apperr.ErrNotFound) {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, apperr.Unauthorized("Invalid username or password")
	}
	if err != nil {
		return nil, err
	}

	if cache.GetCachedAuth(ctx, req.Username, req.Password) {
		metrics.LoginAttemptsTotal.WithLabelValues("cached").Inc()
	} else {
		if !auth.VerifyPassword(user.Password, req.Password) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return nil, apperr.Unauthorized("Invalid username or password")
		}
		cache.CacheAuth(ctx, req.Username, req.Password)
		metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}

	if s.LoginLogs != nil {
		if _, err := s.LoginLogs.CreateLoginLog(ctx, user.Username, ipAddress, userAgent); err != nil {
			zap.L().Warn("[Auth] Failed to record login", zap.String("username", user.Username), zap.Error(err))
		}
	}

	return &models.AuthResponse{
		Token: token,
		User:  user,
	}, nil
}

// Me returns the profile of the authenticated user
func (s *UserService) Me(ctx context.Context, username string) (*models.User, error) {
	return s.Repo.GetByUsername(ctx, username)
}

// ChangePassword replaces the secret after checking the current one
func (s *UserService) ChangePassword(ctx context.Context, username string, req *models.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return apperr.Validation("Old and new password are required")
	}

	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(user.Password, req.OldPassword) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	secret, err := s.storedSecret(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, username, secret); err != nil {
		return err
	}

	cache.InvalidateAuth(ctx, username, req.OldPassword)
	zap.L().Info("[Auth] Password changed", zap.String("username", username))
	return nil
}

// UpdateInfo overwrites the profile fields of the authenticated user
func (s *UserService) UpdateInfo(ctx context.Context, username string, req *models.UpdateInfoRequest) (*models.User, error) {
	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	user.FullName = req.HoTen
	user.Email = req.Email
	user.Phone = req.SoDT
	user.Address = req.DiaChi
	user.Age = req.Tuoi

	if err := s.Repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginLogsRecent returns the latest successful logins
func (s *UserService) LoginLogsRecent(ctx context.Context, limit int) ([]*models.LoginLog, error) {
	if limit <= 0 {
		limit = defaultLoginLogLimit
	}
	if limit > maxLoginLogLimit {
		limit = maxLoginLogLimit
	}
	return s.LoginLogs.ListRecent(ctx, limit)
}

func (s *UserService) storedSecret(password string) (string, error) {
	if !s.HashPasswords {
		return password, nil
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return "", apperr.Internal("failed to hash password", err)
	}
	return hashed, nil
}
