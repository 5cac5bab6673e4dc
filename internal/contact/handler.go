package contact

import (
	"context"
	"net/http"

	"github.com/silcast/crane-admin/internal/transport"
)

type ServiceAPI interface {
	Send(ctx context.Context, dto ContactDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

// Send handles POST /enviar-correo
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var dto ContactDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if err := h.Service.Send(r.Context(), dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, SendResponse{Message: SentMessage})
}
