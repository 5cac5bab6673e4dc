package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	userDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/user"
	"github.com/silcast/crane-admin/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.WithContext(ctx).Preload("Roles.Permissions").Order("email ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Preload("Roles.Permissions").Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) EmpleadoLinked(ctx context.Context, empleadoID, exceptID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).
		Where("empleado_id = ? AND id <> ?", empleadoID, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) RolesByName(ctx context.Context, names []string) ([]userDatamodel.Role, error) {
	return FindRolesByName(ctx, r.db, names)
}

func (r *UserRepository) ListRoles(ctx context.Context) ([]*userDatamodel.Role, error) {
	var roles []*userDatamodel.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *UserRepository) Save(ctx context.Context, u *userDatamodel.User, roles []userDatamodel.Role, syncRoles bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if u.ID == 0 {
			if err := tx.Omit(clause.Associations).Create(u).Error; err != nil {
				return err
			}
		} else if err := tx.Omit(clause.Associations).Save(u).Error; err != nil {
			return err
		}
		if !syncRoles {
			return nil
		}
		if len(roles) == 0 {
			return tx.Model(u).Association("Roles").Clear()
		}
		return tx.Model(u).Association("Roles").Replace(roles)
	})
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := &userDatamodel.User{ID: id}
		if err := tx.Model(u).Association("Roles").Clear(); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&userDatamodel.AccessToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&userDatamodel.User{}, id).Error
	})
}

// FindRolesByName loads the named roles; unknown names are simply absent from the result.
func FindRolesByName(ctx context.Context, db *gorm.DB, names []string) ([]userDatamodel.Role, error) {
	var roles []userDatamodel.Role
	if len(names) == 0 {
		return roles, nil
	}
	err := db.WithContext(ctx).Where("name IN ?", names).Find(&roles).Error
	return roles, err
}
