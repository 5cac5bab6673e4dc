// Package lookup serves the lightweight option lists behind the frontend dropdowns.
package lookup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/transport"
)

type EmployeeOption struct {
	ID              int64  `db:"id" json:"id"`
	Nombre          string `db:"nombre" json:"nombre"`
	ApellidoPaterno string `db:"apellido_paterno" json:"apellido_paterno"`
}

type CraneOption struct {
	ID          int64  `db:"id" json:"id"`
	DisplayName string `db:"display_name" json:"display_name"`
}

type RepositoryAPI interface {
	Employees(ctx context.Context) ([]EmployeeOption, error)
	Cranes(ctx context.Context) ([]CraneOption, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Employees(ctx context.Context) ([]EmployeeOption, error) {
	options, err := s.repo.Employees(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list employee options", err)
	}
	if options == nil {
		options = []EmployeeOption{}
	}
	return options, nil
}

func (s *Service) Cranes(ctx context.Context) ([]CraneOption, error) {
	options, err := s.repo.Cranes(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list crane options", err)
	}
	if options == nil {
		options = []CraneOption{}
	}
	return options, nil
}

type ServiceAPI interface {
	Employees(ctx context.Context) ([]EmployeeOption, error)
	Cranes(ctx context.Context) ([]CraneOption, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

// Employees handles GET /employees-list
func (h *Handler) Employees(w http.ResponseWriter, r *http.Request) {
	options, err := h.Service.Employees(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, options)
}

// Cranes handles GET /gruas-list-simple
func (h *Handler) Cranes(w http.ResponseWriter, r *http.Request) {
	options, err := h.Service.Cranes(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, options)
}
