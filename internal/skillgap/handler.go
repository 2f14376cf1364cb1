package skillgap

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/skillbridge/skillbridge/internal/transport"
)

type ServiceAPI interface {
	NeedsForEmployee(ctx context.Context, employeeID string) ([]*TrainingNeed, error)
	OutstandingNeeds(ctx context.Context) ([]*TrainingNeed, error)
	Recompute(ctx context.Context, assessmentID string) error
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

func (h *Handler) GetEmployeeTrainingNeeds(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	needs, err := h.Service.NeedsForEmployee(r.Context(), employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, toNeedsResponse(needs))
}

func (h *Handler) GetOutstandingTrainingNeeds(w http.ResponseWriter, r *http.Request) {
	needs, err := h.Service.OutstandingNeeds(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, toNeedsResponse(needs))
}

func (h *Handler) RecomputeAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, "id")

	if err := h.Service.Recompute(r.Context(), assessmentID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "recomputed"})
}

func toNeedsResponse(needs []*TrainingNeed) TrainingNeedsResponse {
	resp := TrainingNeedsResponse{TrainingNeeds: make([]TrainingNeedResponse, 0, len(needs))}
	for _, n := range needs {
		resp.TrainingNeeds = append(resp.TrainingNeeds, n.ToResponse())
	}
	return resp
}
