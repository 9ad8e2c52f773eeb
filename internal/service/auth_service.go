package service

import (
	"context"
	"errors"
	"net/mail"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/datachat-gateway/internal/auth"
	"github.com/spec-kit/datachat-gateway/internal/config"
	"github.com/spec-kit/datachat-gateway/internal/domain"
	"github.com/spec-kit/datachat-gateway/internal/repository"
	apperrors "github.com/spec-kit/datachat-gateway/pkg/util"
)

const (
	minPasswordLen = 6
	minNameLen     = 3
)

// Distinct failure causes for login. Both surface to clients as the same
// unauthorized message so responses do not reveal whether an email is
// registered; the distinction survives only in logs.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect password")
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account. Duplicate detection relies on the storage
// unique index alone; there is no prior existence check. The caller must log
// in separately, no token is issued here.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	if err := validateRegistration(email, password, name); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicate("User already exists")
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed token carrying the user id.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if err := validateLogin(email, password); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", unauthorizedLogin(ErrUserNotFound)
		}
		return "", err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", unauthorizedLogin(ErrInvalidCredentials)
	}

	token, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func unauthorizedLogin(cause error) error {
	de := apperrors.NewUnauthorized("Invalid email or password").(*apperrors.DomainError)
	de.Err = cause
	return de
}

func validateRegistration(email, password, name string) error {
	details := map[string]any{}
	if !validEmail(email) {
		details["email"] = "must be a well-formed address"
	}
	if len(password) < minPasswordLen {
		details["password"] = "must be at least 6 characters"
	}
	if len(name) < minNameLen {
		details["name"] = "must be at least 3 characters"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("Invalid inputs", details)
	}
	return nil
}

func validateLogin(email, password string) error {
	details := map[string]any{}
	if !validEmail(email) {
		details["email"] = "must be a well-formed address"
	}
	if password == "" {
		details["password"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("Incorrect inputs", details)
	}
	return nil
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
