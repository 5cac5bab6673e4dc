package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/silcast/crane-admin/internal/client"
	clientDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/client"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) client.RepositoryAPI {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) List(ctx context.Context) ([]*clientDatamodel.Client, error) {
	var clients []*clientDatamodel.Client
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*clientDatamodel.Client, error) {
	var c clientDatamodel.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *clientDatamodel.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientRepository) Update(ctx context.Context, c *clientDatamodel.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&clientDatamodel.Client{}, id).Error
}
