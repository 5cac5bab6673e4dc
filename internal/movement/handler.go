package movement

import (
	"context"
	"net/http"

	"github.com/silcast/crane-admin/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Movement, error)
	Get(ctx context.Context, id int64) (*Movement, error)
	Create(ctx context.Context, dto MovementDTO) (*Movement, error)
	Update(ctx context.Context, id int64, dto MovementDTO) (*Movement, error)
	Delete(ctx context.Context, id int64) error
	FilterByDate(ctx context.Context, q FilterQuery) ([]*Movement, error)
	ByCrane(ctx context.Context, gruaID int64) ([]*Movement, error)
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	movements, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, movements)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id", "Movimiento")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	m, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto MovementDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	m, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id", "Movimiento")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	var dto MovementDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	m, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id", "Movimiento")
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

// FilterByDate handles GET /movimientos-grua/filter-by-date?start_date&end_date&grua_id
func (h *Handler) FilterByDate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	movements, err := h.Service.FilterByDate(r.Context(), FilterQuery{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
		GruaID:    query.Get("grua_id"),
	})
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, movements)
}

// ByCrane handles GET /movimientos-grua/by-grua/{id}
func (h *Handler) ByCrane(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id", "Grúa")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	movements, err := h.Service.ByCrane(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, movements)
}
