package inventory

import (
	"context"
	"net/http"

	"github.com/silcast/crane-admin/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Item, error)
	Get(ctx context.Context, id int64) (*Item, error)
	Create(ctx context.Context, dto ItemDTO) (*Item, error)
	Update(ctx context.Context, id int64, dto ItemDTO) (*Item, error)
	Delete(ctx context.Context, id int64) error
	RecordEntry(ctx context.Context, id int64, dto StockDTO) (*StockMovement, error)
	RecordExit(ctx context.Context, id int64, dto StockDTO) (*StockMovement, error)
	Movements(ctx context.Context, id int64) (*Movements, error)
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
	items, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id", "Inventario")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	item, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto ItemDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	item, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id", "Inventario")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	var dto ItemDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	item, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id", "Inventario")
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

// RecordEntry handles POST /inventarios/{id}/entradas
func (h *Handler) RecordEntry(w http.ResponseWriter, r *http.Request) {
	h.recordStock(w, r, h.Service.RecordEntry)
}

// RecordExit handles POST /inventarios/{id}/salidas
func (h *Handler) RecordExit(w http.ResponseWriter, r *http.Request) {
	h.recordStock(w, r, h.Service.RecordExit)
}

func (h *Handler) recordStock(w http.ResponseWriter, r *http.Request, record func(context.Context, int64, StockDTO) (*StockMovement, error)) {
	id, err := h.PathID(r, "id", "Inventario")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	var dto StockDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	mv, err := record(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, mv)
}

// Movements handles GET /inventarios/{id}/movimientos
func (h *Handler) Movements(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id", "Inventario")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	movements, err := h.Service.Movements(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, movements)
}
