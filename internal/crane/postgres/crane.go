package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/silcast/crane-admin/internal/crane"
	craneDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/crane"
	inventoryDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/inventory"
	movementDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/movement"
	reportDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/servicereport"
)

type CraneRepository struct {
	db *gorm.DB
}

func NewCraneRepository(db *gorm.DB) crane.RepositoryAPI {
	return &CraneRepository{db: db}
}

func (r *CraneRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Operador").Preload("Ayudante").Preload("ClienteActual")
}

func (r *CraneRepository) List(ctx context.Context) ([]*craneDatamodel.Crane, error) {
	var cranes []*craneDatamodel.Crane
	err := r.withRelations(ctx).Order("unidad ASC").Find(&cranes).Error
	return cranes, err
}

func (r *CraneRepository) GetByID(ctx context.Context, id int64) (*craneDatamodel.Crane, error) {
	var c craneDatamodel.Crane
	err := r.withRelations(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CraneRepository) UnidadTaken(ctx context.Context, unidad string, exceptID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&craneDatamodel.Crane{}).
		Where("unidad = ? AND id <> ?", unidad, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *CraneRepository) Create(ctx context.Context, c *craneDatamodel.Crane) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *CraneRepository) Update(ctx context.Context, c *craneDatamodel.Crane) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *CraneRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("grua_id = ?", id).Delete(&movementDatamodel.Movement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("grua_id = ?", id).Delete(&reportDatamodel.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&inventoryDatamodel.Item{}).
			Where("grua_id = ?", id).
			Update("grua_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&craneDatamodel.Crane{}, id).Error
	})
}
