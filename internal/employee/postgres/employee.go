package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	employeeDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/employee"
	userDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/user"
	"github.com/silcast/crane-admin/internal/employee"
	userPostgres "github.com/silcast/crane-admin/internal/user/postgres"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.db.WithContext(ctx).
		Preload("Usuario.Roles").
		Order("apellido_paterno ASC, nombre ASC").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Preload("Usuario.Roles").Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) NumeroTaken(ctx context.Context, numero string, exceptID int64) (bool, error) {
	return r.taken(ctx, &employeeDatamodel.Employee{}, "numero_empleado", numero, exceptID)
}

func (r *EmployeeRepository) CorreoTaken(ctx context.Context, correo string, exceptID int64) (bool, error) {
	return r.taken(ctx, &employeeDatamodel.Employee{}, "correo_electronico", correo, exceptID)
}

func (r *EmployeeRepository) AccountEmailTaken(ctx context.Context, email string, exceptUserID int64) (bool, error) {
	return r.taken(ctx, &userDatamodel.User{}, "email", email, exceptUserID)
}

func (r *EmployeeRepository) taken(ctx context.Context, model interface{}, column, value string, exceptID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).
		Where(column+" = ? AND id <> ?", value, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *EmployeeRepository) RolesByName(ctx context.Context, names []string) ([]userDatamodel.Role, error) {
	return userPostgres.FindRolesByName(ctx, r.db, names)
}

func (r *EmployeeRepository) Save(ctx context.Context, e *employeeDatamodel.Employee, account *employee.AccountChange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e.ID == 0 {
			if err := tx.Omit(clause.Associations).Create(e).Error; err != nil {
				return err
			}
		} else if err := tx.Omit(clause.Associations).Save(e).Error; err != nil {
			return err
		}
		if account == nil {
			return nil
		}
		return saveAccount(tx, e.ID, account)
	})
}

func saveAccount(tx *gorm.DB, employeeID int64, account *employee.AccountChange) error {
	var u userDatamodel.User
	err := tx.Where("empleado_id = ?", employeeID).First(&u).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		u = userDatamodel.User{EmpleadoID: &employeeID, Email: account.Email}
		if account.PasswordHash != nil {
			u.Password = *account.PasswordHash
		}
		if err := tx.Omit(clause.Associations).Create(&u).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		u.Email = account.Email
		if account.PasswordHash != nil {
			u.Password = *account.PasswordHash
		}
		if err := tx.Omit(clause.Associations).Save(&u).Error; err != nil {
			return err
		}
	}

	if !account.SyncRoles {
		return nil
	}
	if len(account.Roles) == 0 {
		return tx.Model(&u).Association("Roles").Clear()
	}
	return tx.Model(&u).Association("Roles").Replace(account.Roles)
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userDatamodel.User{}).
			Where("empleado_id = ?", id).
			Update("empleado_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&employeeDatamodel.Employee{}).
			Where("supervisor_id = ?", id).
			Update("supervisor_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&employeeDatamodel.Employee{}, id).Error
	})
}
