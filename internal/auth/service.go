package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/pkg/logger"
)

var ErrUserNotFound = errors.New("user not found")

// Credentials is what login needs to verify a password.
type Credentials struct {
	UserID       int64
	Email        string
	PasswordHash string
}

// Principal is a user with its roles, as loaded on every authenticated request.
type Principal struct {
	ID         int64
	Email      string
	EmployeeID *int64
	Roles      []Role
}

type RepositoryAPI interface {
	// FindCredentials returns ErrUserNotFound when no user has email.
	FindCredentials(ctx context.Context, email string) (*Credentials, error)
	// FindPrincipal returns ErrUserNotFound when the user no longer exists.
	FindPrincipal(ctx context.Context, userID int64) (*Principal, error)
}

type TokenGeneratorAPI interface {
	Generate(userID int64, email string) (*IssuedToken, error)
	Validate(tokenString string) (*Claims, error)
}

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error)
	Logout(ctx context.Context, tokenID string) error
	Authenticate(ctx context.Context, token string) (*internal.CurrentUser, error)
}

// Service issues, validates and revokes bearer tokens.
type Service struct {
	repo      RepositoryAPI
	tokens    TokenStore
	generator TokenGeneratorAPI
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, tokens TokenStore, generator TokenGeneratorAPI, lg *slog.Logger) *Service {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &Service{
		repo:      repo,
		tokens:    tokens,
		generator: generator,
		logger:    lg,
	}
}

// Login verifies email and password and opens a new session.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	creds, err := s.repo.FindCredentials(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.logger.WarnContext(ctx, "login rejected: unknown email")
			return nil, internal.ErrInvalidCredentials
		}
		return nil, internal.NewInternalError("failed to load credentials", err)
	}

	if err := VerifyPassword(creds.PasswordHash, dto.Password); err != nil {
		s.logger.WarnContext(ctx, "login rejected: wrong password", "user_id", creds.UserID)
		return nil, internal.ErrInvalidCredentials
	}

	principal, err := s.repo.FindPrincipal(ctx, creds.UserID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}

	issued, err := s.generator.Generate(creds.UserID, creds.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue token", err)
	}
	if err := s.tokens.Save(ctx, issued); err != nil {
		return nil, internal.NewInternalError("failed to store session", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", creds.UserID, "token_id", issued.ID)

	user := toCurrentUser(principal, issued.ID)
	return &LoginResponse{
		AccessToken: issued.Token,
		TokenType:   "Bearer",
		ExpiresAt:   issued.ExpiresAt,
		User:        user,
	}, nil
}

// Logout revokes exactly one session.
func (s *Service) Logout(ctx context.Context, tokenID string) error {
	if tokenID == "" {
		return internal.ErrMissingToken
	}
	if err := s.tokens.Revoke(ctx, tokenID); err != nil {
		return internal.NewInternalError("failed to revoke session", err)
	}
	s.logger.InfoContext(ctx, "user logged out", "user_id", internal.ActorIDFromContext(ctx), "token_id", tokenID)
	return nil
}

// Authenticate resolves a bearer token into the current user. Permissions are
// recomputed from the user's roles on every call.
func (s *Service) Authenticate(ctx context.Context, token string) (*internal.CurrentUser, error) {
	if token == "" {
		return nil, internal.ErrMissingToken
	}

	claims, err := s.generator.Validate(token)
	if err != nil {
		return nil, err
	}

	live, err := s.tokens.Exists(ctx, claims.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to check session", err)
	}
	if !live {
		return nil, internal.ErrTokenRevoked
	}

	userID, _ := claims.UserID()
	principal, err := s.repo.FindPrincipal(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, internal.ErrInvalidToken
		}
		return nil, internal.NewInternalError("failed to load user", err)
	}

	return toCurrentUser(principal, claims.ID), nil
}

func toCurrentUser(p *Principal, tokenID string) *internal.CurrentUser {
	return &internal.CurrentUser{
		ID:          p.ID,
		Email:       p.Email,
		EmployeeID:  p.EmployeeID,
		TokenID:     tokenID,
		Roles:       roleNames(p.Roles),
		Permissions: EffectivePermissions(p.Roles),
	}
}

// PasswordHasher hashes new passwords for storage.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// BcryptHasher hashes with bcrypt at Cost; zero means bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

func (b BcryptHasher) Hash(password string) (string, error) {
	return HashPassword(password, b.Cost)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
