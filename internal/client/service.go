package client

import (
	"context"
	"log/slog"

	"github.com/silcast/crane-admin/internal"
	clientDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/client"
	"github.com/silcast/crane-admin/internal/core/events"
)

type RepositoryAPI interface {
	List(ctx context.Context) ([]*clientDatamodel.Client, error)
	GetByID(ctx context.Context, id int64) (*clientDatamodel.Client, error)
	Create(ctx context.Context, c *clientDatamodel.Client) error
	Update(ctx context.Context, c *clientDatamodel.Client) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	events events.Publisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, events: publisher, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]*Client, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list clients", err)
	}
	clients := make([]*Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, FromDataModel(row))
	}
	return clients, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get client", err)
	}
	if row == nil {
		return nil, internal.NewResourceNotFound("Cliente")
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto ClientDTO) (c *Client, err error) {
	defer func() {
		var id int64
		if c != nil {
			id = c.ID
		}
		events.Record(ctx, s.events, EntityName, id, events.ActionCreate, err)
	}()

	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c = &Client{}
	dto.apply(c)
	row := ToDataModel(c)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, internal.NewInternalError("failed to create client", err)
	}
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto ClientDTO) (c *Client, err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionUpdate, err) }()

	c, err = s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dto.apply(c)
	if err := s.repo.Update(ctx, ToDataModel(c)); err != nil {
		return nil, internal.NewInternalError("failed to update client", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	defer func() { events.Record(ctx, s.events, EntityName, id, events.ActionDelete, err) }()

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete client", err)
	}
	return nil
}
