package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/silcast/crane-admin/internal/auth"
	userDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindCredentials(ctx context.Context, email string) (*auth.Credentials, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).
		Select("id", "email", "password").
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return &auth.Credentials{UserID: u.ID, Email: u.Email, PasswordHash: u.Password}, nil
}

func (r *Repository) FindPrincipal(ctx context.Context, userID int64) (*auth.Principal, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).
		Preload("Roles.Permissions").
		First(&u, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	roles := make([]auth.Role, 0, len(u.Roles))
	for _, role := range u.Roles {
		perms := make([]string, 0, len(role.Permissions))
		for _, p := range role.Permissions {
			perms = append(perms, p.Name)
		}
		roles = append(roles, auth.Role{Name: role.Name, Permissions: perms})
	}

	return &auth.Principal{
		ID:         u.ID,
		Email:      u.Email,
		EmployeeID: u.EmpleadoID,
		Roles:      roles,
	}, nil
}

// TokenStore keeps sessions in the access_tokens table.
type TokenStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db, now: time.Now}
}

func (s *TokenStore) Save(ctx context.Context, token *auth.IssuedToken) error {
	return s.db.WithContext(ctx).Create(&userDatamodel.AccessToken{
		ID:        token.ID,
		UserID:    token.UserID,
		Name:      "auth_token",
		ExpiresAt: token.ExpiresAt.UTC(),
	}).Error
}

// Exists reports whether tokenID is live and stamps its last use.
func (s *TokenStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	now := s.now().UTC()
	res := s.db.WithContext(ctx).
		Model(&userDatamodel.AccessToken{}).
		Where("id = ? AND expires_at > ?", tokenID, now).
		Update("last_used_at", now)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *TokenStore) Revoke(ctx context.Context, tokenID string) error {
	return s.db.WithContext(ctx).Where("id = ?", tokenID).Delete(&userDatamodel.AccessToken{}).Error
}

// PurgeExpired deletes sessions past their expiry.
func (s *TokenStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now().UTC()).Delete(&userDatamodel.AccessToken{})
	return res.RowsAffected, res.Error
}

var _ auth.TokenStore = (*TokenStore)(nil)
