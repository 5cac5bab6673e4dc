package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	supplierDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/supplier"
	"github.com/silcast/crane-admin/internal/supplier"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) supplier.RepositoryAPI {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) List(ctx context.Context) ([]*supplierDatamodel.Supplier, error) {
	var suppliers []*supplierDatamodel.Supplier
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *SupplierRepository) GetByID(ctx context.Context, id int64) (*supplierDatamodel.Supplier, error) {
	var s supplierDatamodel.Supplier
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepository) NameTaken(ctx context.Context, nombre string, exceptID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&supplierDatamodel.Supplier{}).
		Where("nombre = ? AND id <> ?", nombre, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *SupplierRepository) Create(ctx context.Context, s *supplierDatamodel.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SupplierRepository) Update(ctx context.Context, s *supplierDatamodel.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SupplierRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&supplierDatamodel.Supplier{}, id).Error
}
