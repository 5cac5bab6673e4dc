package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/silcast/crane-admin/internal/access"
	accessDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/access"
)

type AccessRepository struct {
	db *gorm.DB
}

func NewAccessRepository(db *gorm.DB) access.RepositoryAPI {
	return &AccessRepository{db: db}
}

func (r *AccessRepository) List(ctx context.Context, empleadoID *int64) ([]*accessDatamodel.Access, error) {
	q := r.db.WithContext(ctx).Preload("Empleado")
	if empleadoID != nil {
		q = q.Where("empleado_id = ?", *empleadoID)
	}
	var accesses []*accessDatamodel.Access
	err := q.Order("entrada DESC, id DESC").Find(&accesses).Error
	return accesses, err
}

func (r *AccessRepository) GetByID(ctx context.Context, id int64) (*accessDatamodel.Access, error) {
	var a accessDatamodel.Access
	err := r.db.WithContext(ctx).Preload("Empleado").Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AccessRepository) Create(ctx context.Context, a *accessDatamodel.Access) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *AccessRepository) Update(ctx context.Context, a *accessDatamodel.Access) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error
}

func (r *AccessRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&accessDatamodel.Access{}, id).Error
}
