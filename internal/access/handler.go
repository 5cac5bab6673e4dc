package access

import (
	"context"
	"net/http"
	"strconv"

	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, empleadoID *int64) ([]*Access, error)
	Get(ctx context.Context, id int64) (*Access, error)
	Create(ctx context.Context, dto AccessDTO) (*Access, error)
	Update(ctx context.Context, id int64, dto AccessDTO) (*Access, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// List handles GET /accesos, optionally filtered by ?empleado_id=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var empleadoID *int64
	if raw := r.URL.Query().Get("empleado_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.HandleServiceError(w, r, internal.NewValidationFieldError("empleado_id", "empleado_id must be an integer", internal.ErrCodeInvalidFormat))
			return
		}
		empleadoID = &id
	}
	accesses, err := h.Service.List(r.Context(), empleadoID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, accesses)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id", "Acceso")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	a, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto AccessDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	a, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id", "Acceso")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	var dto AccessDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	a, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id", "Acceso")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteNoContent(w)
}
