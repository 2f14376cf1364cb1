package skill

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/transport"
)

type ServiceAPI interface {
	ListActiveSkills(ctx context.Context) ([]*Skill, error)
	GetSkill(ctx context.Context, id string) (*Skill, error)
	CurrentBenchmark(ctx context.Context, skillID string) (*Benchmark, error)
	SetBenchmark(ctx context.Context, skillID string, score int, createdBy string) (*Benchmark, error)
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

func (h *Handler) GetSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.Service.ListActiveSkills(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp := SkillsResponse{Skills: make([]SkillResponse, 0, len(skills))}
	for _, sk := range skills {
		resp.Skills = append(resp.Skills, sk.ToResponse())
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetSkillByID(w http.ResponseWriter, r *http.Request) {
	skillID := chi.URLParam(r, "id")

	sk, err := h.Service.GetSkill(r.Context(), skillID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sk.ToResponse())
}

func (h *Handler) GetCurrentBenchmark(w http.ResponseWriter, r *http.Request) {
	skillID := chi.URLParam(r, "id")

	b, err := h.Service.CurrentBenchmark(r.Context(), skillID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b.ToResponse())
}

func (h *Handler) SetBenchmark(w http.ResponseWriter, r *http.Request) {
	skillID := chi.URLParam(r, "id")

	var req SetBenchmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	adminID := internal.UserIDFromContext(r.Context())

	b, err := h.Service.SetBenchmark(r.Context(), skillID, req.Score, adminID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, b.ToResponse())
}
