package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	inventoryDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/inventory"
	"github.com/silcast/crane-admin/internal/inventory"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) inventory.RepositoryAPI {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) List(ctx context.Context) ([]*inventoryDatamodel.Item, error) {
	var items []*inventoryDatamodel.Item
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&items).Error
	return items, err
}

func (r *InventoryRepository) GetByID(ctx context.Context, id int64) (*inventoryDatamodel.Item, error) {
	var i inventoryDatamodel.Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&i).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

func (r *InventoryRepository) CodigoTaken(ctx context.Context, codigo string, exceptID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&inventoryDatamodel.Item{}).
		Where("codigo = ? AND id <> ?", codigo, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *InventoryRepository) Create(ctx context.Context, i *inventoryDatamodel.Item) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *InventoryRepository) Update(ctx context.Context, i *inventoryDatamodel.Item) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("inventario_id = ?", id).Delete(&inventoryDatamodel.Entry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("inventario_id = ?", id).Delete(&inventoryDatamodel.Exit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&inventoryDatamodel.Item{}, id).Error
	})
}

func (r *InventoryRepository) AddEntry(ctx context.Context, e *inventoryDatamodel.Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		return tx.Model(&inventoryDatamodel.Item{}).
			Where("id = ?", e.InventarioID).
			Update("cantidad", gorm.Expr("cantidad + ?", e.Cantidad)).Error
	})
}

func (r *InventoryRepository) AddExit(ctx context.Context, e *inventoryDatamodel.Exit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&inventoryDatamodel.Item{}).
			Where("id = ? AND cantidad >= ?", e.InventarioID, e.Cantidad).
			Update("cantidad", gorm.Expr("cantidad - ?", e.Cantidad))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return inventory.ErrInsufficientStock
		}
		return tx.Create(e).Error
	})
}

func (r *InventoryRepository) Entries(ctx context.Context, itemID int64) ([]*inventoryDatamodel.Entry, error) {
	var entries []*inventoryDatamodel.Entry
	err := r.db.WithContext(ctx).
		Where("inventario_id = ?", itemID).
		Order("fecha_entrada DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

func (r *InventoryRepository) Exits(ctx context.Context, itemID int64) ([]*inventoryDatamodel.Exit, error) {
	var exits []*inventoryDatamodel.Exit
	err := r.db.WithContext(ctx).
		Where("inventario_id = ?", itemID).
		Order("fecha_salida DESC, id DESC").
		Find(&exits).Error
	return exits, err
}
