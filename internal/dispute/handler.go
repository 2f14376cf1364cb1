package dispute

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/transport"
)

type ServiceAPI interface {
	Submit(ctx context.Context, params SubmitParams) (*Dispute, error)
	Resolve(ctx context.Context, params ResolveParams) (*Dispute, error)
	GetByID(ctx context.Context, id string) (*Dispute, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Dispute, error)
	ListOpen(ctx context.Context) ([]*Dispute, error)
	AuditTrail(ctx context.Context, disputeID string) ([]*AuditEntry, error)
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

func (h *Handler) SubmitDispute(w http.ResponseWriter, r *http.Request) {
	var req SubmitDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	employeeID := internal.UserIDFromContext(r.Context())

	skills := make([]SubmitSkill, 0, len(req.DisputedSkills))
	for _, s := range req.DisputedSkills {
		skills = append(skills, SubmitSkill{SkillID: s.SkillID, Reason: s.Reason})
	}

	d, err := h.Service.Submit(r.Context(), SubmitParams{
		EmployeeID:     employeeID,
		CycleID:        req.CycleID,
		Reason:         req.Reason,
		DisputedSkills: skills,
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, d.ToResponse())
}

func (h *Handler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	disputeID := chi.URLParam(r, "id")

	var req ResolveDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	adminID := internal.UserIDFromContext(r.Context())

	d, err := h.Service.Resolve(r.Context(), ResolveParams{
		DisputeID:       disputeID,
		AdminID:         adminID,
		Action:          req.Action,
		NewScores:       req.NewScores,
		ResolutionNotes: req.ResolutionNotes,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d.ToResponse())
}

func (h *Handler) GetDispute(w http.ResponseWriter, r *http.Request) {
	disputeID := chi.URLParam(r, "id")

	d, err := h.Service.GetByID(r.Context(), disputeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d.ToResponse())
}

func (h *Handler) ListMyDisputes(w http.ResponseWriter, r *http.Request) {
	employeeID := internal.UserIDFromContext(r.Context())

	disputes, err := h.Service.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, toDisputesResponse(disputes))
}

func (h *Handler) ListOpenDisputes(w http.ResponseWriter, r *http.Request) {
	disputes, err := h.Service.ListOpen(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, toDisputesResponse(disputes))
}

func (h *Handler) GetAuditTrail(w http.ResponseWriter, r *http.Request) {
	disputeID := chi.URLParam(r, "id")

	trail, err := h.Service.AuditTrail(r.Context(), disputeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp := AuditTrailResponse{
		DisputeID:  disputeID,
		AuditTrail: make([]AuditEntryResponse, 0, len(trail)),
	}
	for _, e := range trail {
		resp.AuditTrail = append(resp.AuditTrail, e.ToResponse())
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func toDisputesResponse(disputes []*Dispute) DisputesResponse {
	resp := DisputesResponse{Disputes: make([]DisputeResponse, 0, len(disputes))}
	for _, d := range disputes {
		resp.Disputes = append(resp.Disputes, d.ToResponse())
	}
	return resp
}
