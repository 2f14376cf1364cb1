package training

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/transport"
)

type ServiceAPI interface {
	Schedule(ctx context.Context, params ScheduleParams) (*Session, error)
	Assign(ctx context.Context, sessionID, employeeID string) (*Session, error)
	MarkAttendance(ctx context.Context, sessionID, employeeID, status string) error
	Complete(ctx context.Context, sessionID string) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	ListSessions(ctx context.Context, skillID string) ([]*Session, error)
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

func (h *Handler) ScheduleSession(w http.ResponseWriter, r *http.Request) {
	var req ScheduleSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.Service.Schedule(r.Context(), ScheduleParams{
		SkillID:       req.SkillID,
		TrainerID:     req.TrainerID,
		TrainerType:   req.TrainerType,
		ScheduledDate: req.ScheduledDate,
		EndDate:       req.EndDate,
		Mode:          req.Mode,
		Capacity:      req.Capacity,
		CreatedBy:     internal.UserIDFromContext(r.Context()),
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, session.ToResponse())
}

func (h *Handler) AssignEmployee(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.Service.Assign(r.Context(), sessionID, req.EmployeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, session.ToResponse())
}

func (h *Handler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req AttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.MarkAttendance(r.Context(), sessionID, req.EmployeeID, req.AttendanceStatus); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (h *Handler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	session, err := h.Service.Complete(r.Context(), sessionID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, session.ToResponse())
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	session, err := h.Service.GetSession(r.Context(), sessionID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, session.ToResponse())
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	skillID := r.URL.Query().Get("skill_id")

	sessions, err := h.Service.ListSessions(r.Context(), skillID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp := SessionsResponse{Sessions: make([]SessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, s.ToResponse())
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
