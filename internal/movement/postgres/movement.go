package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	movementDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/movement"
	"github.com/silcast/crane-admin/internal/movement"
)

type MovementRepository struct {
	db *gorm.DB
}

func NewMovementRepository(db *gorm.DB) movement.RepositoryAPI {
	return &MovementRepository{db: db}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Grua").Preload("Operador")
}

func (r *MovementRepository) List(ctx context.Context, filter movement.Filter) ([]*movementDatamodel.Movement, error) {
	q := withRelations(r.db.WithContext(ctx))
	if filter.From != nil {
		q = q.Where("fecha_hora_entrada >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("fecha_hora_entrada < ?", *filter.To)
	}
	if filter.GruaID != nil {
		q = q.Where("grua_id = ?", *filter.GruaID)
	}

	var movements []*movementDatamodel.Movement
	err := q.Order("fecha_hora_entrada DESC").Order("id DESC").Find(&movements).Error
	return movements, err
}

func (r *MovementRepository) GetByID(ctx context.Context, id int64) (*movementDatamodel.Movement, error) {
	var m movementDatamodel.Movement
	err := withRelations(r.db.WithContext(ctx)).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MovementRepository) Create(ctx context.Context, m *movementDatamodel.Movement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return err
		}
		return withRelations(tx).First(m, m.ID).Error
	})
}

func (r *MovementRepository) Update(ctx context.Context, m *movementDatamodel.Movement) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error
}

func (r *MovementRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&movementDatamodel.Movement{}, id).Error
}
