// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cctv-service/internal/domain/staff"
	xerrors "cctv-service/internal/pkg/errors"
	"cctv-service/internal/pkg/jwt"
	"cctv-service/internal/repository/postgres"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	staffRepo *postgres.StaffRepository
	jwtMgr    *jwt.Manager
	logger    *zap.Logger
}

func NewAuthService(staffRepo *postgres.StaffRepository, jwtMgr *jwt.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		staffRepo: staffRepo,
		jwtMgr:    jwtMgr,
		logger:    logger,
	}
}

// Login verifies credentials and issues a session token. Wrong email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *staff.LoginRequest) (*staff.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := s.staffRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", xerrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account disabled", xerrors.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", email))
		return nil, fmt.Errorf("%w: invalid credentials", xerrors.ErrUnauthorized)
	}

	token, jti, err := s.jwtMgr.Generate(account.ID, account.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("staff login",
		zap.Int64("account_id", account.ID),
		zap.String("role", account.Role),
		zap.String("jti", jti),
	)

	return &staff.LoginResponse{
		Token:   token,
		Account: account,
	}, nil
}

// GetAccount loads the account behind a verified token.
func (s *AuthService) GetAccount(ctx context.Context, id int64) (*staff.Account, error) {
	return s.staffRepo.FindByID(ctx, id)
}

// EnsureAdminExists creates the bootstrap admin when no active admin
// account exists yet. Called once on startup.
func (s *AuthService) EnsureAdminExists(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	n, err := s.staffRepo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	account := &staff.Account{
		FullName:     "Administrator",
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Role:         staff.RoleAdmin,
		IsActive:     true,
	}
	if err := s.staffRepo.Create(ctx, account); err != nil {
		if errors.Is(err, xerrors.ErrConflict) {
			return nil
		}
		return err
	}

	s.logger.Info("bootstrap admin created", zap.String("email", account.Email))
	return nil
}
