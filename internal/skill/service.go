package skill

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/core/common/validation"
)

type Repository interface {
	GetAllSkills(ctx context.Context) ([]*Skill, error)
	GetSkillByID(ctx context.Context, id string) (*Skill, error)
	GetCriticalityByID(ctx context.Context, id string) (*Criticality, error)
	GetCurrentBenchmark(ctx context.Context, skillID string) (*Benchmark, error)
	ReplaceBenchmark(ctx context.Context, skillID string, benchmark *Benchmark) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListActiveSkills(ctx context.Context) ([]*Skill, error) {
	skills, err := s.repo.GetAllSkills(ctx)
	if err != nil {
		s.logger.Error("failed to list skills", "error", err)
		return nil, internal.NewCollaboratorError("skill lookup failed", err)
	}

	active := make([]*Skill, 0, len(skills))
	for _, sk := range skills {
		if sk.IsActiveSkill() {
			active = append(active, sk)
		}
	}
	return active, nil
}

func (s *Service) GetSkill(ctx context.Context, id string) (*Skill, error) {
	sk, err := s.repo.GetSkillByID(ctx, id)
	if err != nil {
		if errors.Is(err, internal.ErrSkillNotFound) {
			return nil, internal.ErrSkillNotFound
		}
		return nil, internal.NewCollaboratorError("skill lookup failed", err)
	}
	return sk, nil
}

// CriticalityForSkill resolves the criticality record a skill references.
func (s *Service) CriticalityForSkill(ctx context.Context, skillID string) (*Criticality, error) {
	sk, err := s.GetSkill(ctx, skillID)
	if err != nil {
		return nil, err
	}

	crit, err := s.repo.GetCriticalityByID(ctx, sk.CriticalityID)
	if err != nil {
		s.logger.Error("failed to resolve criticality", "error", err, "skill_id", skillID)
		return nil, internal.NewCollaboratorError("criticality lookup failed", err)
	}
	return crit, nil
}

// CurrentBenchmark returns the single benchmark in effect for a skill.
func (s *Service) CurrentBenchmark(ctx context.Context, skillID string) (*Benchmark, error) {
	b, err := s.repo.GetCurrentBenchmark(ctx, skillID)
	if err != nil {
		if errors.Is(err, internal.ErrBenchmarkNotFound) {
			return nil, internal.ErrBenchmarkNotFound
		}
		s.logger.Error("failed to get current benchmark", "error", err, "skill_id", skillID)
		return nil, internal.NewCollaboratorError("benchmark lookup failed", err)
	}
	return b, nil
}

// SetBenchmark closes the currently effective benchmark and installs the new
// one in a single transaction, preserving the invariant that at most one
// benchmark per skill has a nil end date.
func (s *Service) SetBenchmark(ctx context.Context, skillID string, score int, createdBy string) (*Benchmark, error) {
	if err := validation.ValidateScore("benchmark_score", score); err != nil {
		return nil, err
	}

	if _, err := s.GetSkill(ctx, skillID); err != nil {
		return nil, err
	}

	benchmark := &Benchmark{
		SkillID:            skillID,
		Score:              score,
		EffectiveStartDate: time.Now(),
		CreatedBy:          createdBy,
	}

	if err := s.repo.ReplaceBenchmark(ctx, skillID, benchmark); err != nil {
		s.logger.Error("failed to replace benchmark", "error", err, "skill_id", skillID)
		return nil, internal.NewCollaboratorError("benchmark write failed", err)
	}

	s.logger.Info("benchmark updated",
		"skill_id", skillID,
		"score", score,
		"created_by", createdBy)

	return benchmark, nil
}
