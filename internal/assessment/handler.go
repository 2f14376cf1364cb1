package assessment

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/transport"
)

type ServiceAPI interface {
	Record(ctx context.Context, params RecordParams) (*Assessment, error)
	UpdateScore(ctx context.Context, assessmentID string, score int, comments string) (*Assessment, error)
	Lock(ctx context.Context, assessmentID string) error
	GetByID(ctx context.Context, id string) (*Assessment, error)
	ListByEmployee(ctx context.Context, employeeID, cycleID string) ([]*Assessment, error)
	CreateCycle(ctx context.Context, params CycleParams) (*Cycle, error)
	ActivateCycle(ctx context.Context, cycleID string) (*Cycle, error)
	ActiveCycle(ctx context.Context) (*Cycle, error)
	ListCycles(ctx context.Context) ([]*Cycle, error)
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

func (h *Handler) RecordAssessment(w http.ResponseWriter, r *http.Request) {
	var req RecordAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assessorID := internal.UserIDFromContext(r.Context())

	a, err := h.Service.Record(r.Context(), RecordParams{
		EmployeeID: req.EmployeeID,
		SkillID:    req.SkillID,
		Score:      req.Score,
		Comments:   req.Comments,
		AssessorID: assessorID,
		CycleID:    req.CycleID,
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a.ToResponse())
}

func (h *Handler) UpdateAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, "id")

	var req UpdateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.UpdateScore(r.Context(), assessmentID, req.Score, req.Comments)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a.ToResponse())
}

func (h *Handler) LockAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, "id")

	if err := h.Service.Lock(r.Context(), assessmentID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "locked"})
}

func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, "id")

	a, err := h.Service.GetByID(r.Context(), assessmentID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a.ToResponse())
}

func (h *Handler) ListEmployeeAssessments(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	cycleID := r.URL.Query().Get("cycle_id")

	assessments, err := h.Service.ListByEmployee(r.Context(), employeeID, cycleID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp := AssessmentsResponse{Assessments: make([]AssessmentResponse, 0, len(assessments))}
	for _, a := range assessments {
		resp.Assessments = append(resp.Assessments, a.ToResponse())
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateCycle(w http.ResponseWriter, r *http.Request) {
	var req CreateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.CreateCycle(r.Context(), CycleParams{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c.ToResponse())
}

func (h *Handler) ActivateCycle(w http.ResponseWriter, r *http.Request) {
	cycleID := chi.URLParam(r, "id")

	c, err := h.Service.ActivateCycle(r.Context(), cycleID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c.ToResponse())
}

func (h *Handler) GetActiveCycle(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.ActiveCycle(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c.ToResponse())
}

func (h *Handler) ListCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.Service.ListCycles(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp := CyclesResponse{Cycles: make([]CycleResponse, 0, len(cycles))}
	for _, c := range cycles {
		resp.Cycles = append(resp.Cycles, c.ToResponse())
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
