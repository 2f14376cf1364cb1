package assessment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/core/common/validation"
	"github.com/skillbridge/skillbridge/internal/skill"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Assessment, error)
	GetByEmployeeAndCycle(ctx context.Context, employeeID, cycleID string) ([]*Assessment, error)
	GetByEmployeeAndSkill(ctx context.Context, employeeID, skillID, cycleID string) (*Assessment, error)
	Create(ctx context.Context, a *Assessment) error
	Update(ctx context.Context, a *Assessment) error
	SetLocked(ctx context.Context, id string, locked bool) error

	GetCycleByID(ctx context.Context, id string) (*Cycle, error)
	GetActiveCycle(ctx context.Context) (*Cycle, error)
	ListCycles(ctx context.Context) ([]*Cycle, error)
	CreateCycle(ctx context.Context, c *Cycle) error
	ActivateCycle(ctx context.Context, id string) error
}

// BenchmarkProvider supplies the benchmark in effect for a skill so that a
// new record can snapshot it.
type BenchmarkProvider interface {
	CurrentBenchmark(ctx context.Context, skillID string) (*skill.Benchmark, error)
}

// Recomputer re-derives the training-need state of one assessment.
type Recomputer interface {
	Recompute(ctx context.Context, assessmentID string) error
}

type Service struct {
	repo       Repository
	benchmarks BenchmarkProvider
	recomputer Recomputer
	logger     *slog.Logger
}

func NewService(repo Repository, benchmarks BenchmarkProvider, recomputer Recomputer, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		benchmarks: benchmarks,
		recomputer: recomputer,
		logger:     logger,
	}
}

type RecordParams struct {
	EmployeeID string
	SkillID    string
	Score      int
	Comments   string
	AssessorID string
	CycleID    string
}

// Record writes a new assessment, snapshotting the current benchmark, then
// re-derives the training-need state for the record.
func (s *Service) Record(ctx context.Context, params RecordParams) (*Assessment, error) {
	validator := validation.NewValidator()
	validator.Field("employee_id", params.EmployeeID).Required()
	validator.Field("skill_id", params.SkillID).Required()
	validator.Field("assessor_id", params.AssessorID).Required()
	validator.Field("cycle_id", params.CycleID).Required()
	validator.Field("score", params.Score).ScoreRange(internal.ErrCodeInvalidScore)
	if err := validator.Validate(); err != nil {
		return nil, err
	}

	cycle, err := s.repo.GetCycleByID(ctx, params.CycleID)
	if err != nil {
		if errors.Is(err, internal.ErrCycleNotFound) {
			return nil, internal.ErrCycleNotFound
		}
		return nil, internal.NewCollaboratorError("cycle lookup failed", err)
	}
	if !cycle.IsActiveCycle {
		return nil, internal.NewInvalidStateError("assessments can only be recorded in the active cycle", internal.ErrCodeCycleNotFound)
	}

	benchmark, err := s.benchmarks.CurrentBenchmark(ctx, params.SkillID)
	if err != nil {
		return nil, err
	}

	a := &Assessment{
		ID:                  uuid.NewString(),
		EmployeeID:          params.EmployeeID,
		SkillID:             params.SkillID,
		Score:               params.Score,
		BenchmarkAtTime:     benchmark.Score,
		Comments:            params.Comments,
		AssessorID:          params.AssessorID,
		CycleID:             params.CycleID,
		Status:              StatusActive,
		AssessmentTimestamp: time.Now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("failed to create assessment", "error", err)
		return nil, internal.NewCollaboratorError("assessment write failed", err)
	}

	if err := s.recomputer.Recompute(ctx, a.ID); err != nil {
		s.logger.Error("training need recompute failed after record",
			"error", err,
			"assessment_id", a.ID)
		return nil, err
	}

	return s.GetByID(ctx, a.ID)
}

// UpdateScore changes an unlocked assessment's score. Locked records reject
// the write; they only change through dispute resolution.
func (s *Service) UpdateScore(ctx context.Context, assessmentID string, score int, comments string) (*Assessment, error) {
	if err := validation.ValidateScore("score", score); err != nil {
		return nil, err
	}

	a, err := s.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if a.IsLocked {
		return nil, internal.ErrAssessmentLocked
	}

	a.Score = score
	if comments != "" {
		a.Comments = comments
	}

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("failed to update assessment", "error", err, "assessment_id", assessmentID)
		return nil, internal.NewCollaboratorError("assessment write failed", err)
	}

	if err := s.recomputer.Recompute(ctx, a.ID); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, a.ID)
}

// Lock freezes an assessment at the end of a review. Locking is idempotent.
func (s *Service) Lock(ctx context.Context, assessmentID string) error {
	if _, err := s.GetByID(ctx, assessmentID); err != nil {
		return err
	}

	if err := s.repo.SetLocked(ctx, assessmentID, true); err != nil {
		s.logger.Error("failed to lock assessment", "error", err, "assessment_id", assessmentID)
		return internal.NewCollaboratorError("assessment write failed", err)
	}

	s.logger.Info("assessment locked", "assessment_id", assessmentID)
	return nil
}

// ApplyDisputeEdit rewrites the score of a locked assessment. Only the
// dispute resolution flow calls this; the lock stays in place afterwards.
func (s *Service) ApplyDisputeEdit(ctx context.Context, assessmentID string, newScore int) (*Assessment, error) {
	if err := validation.ValidateScore("new_score", newScore); err != nil {
		return nil, err
	}

	a, err := s.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	a.Score = newScore

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("failed to apply dispute edit", "error", err, "assessment_id", assessmentID)
		return nil, internal.NewCollaboratorError("assessment write failed", err)
	}

	if err := s.recomputer.Recompute(ctx, a.ID); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, a.ID)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Assessment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, internal.ErrAssessmentNotFound) {
			return nil, internal.ErrAssessmentNotFound
		}
		return nil, internal.NewCollaboratorError("assessment lookup failed", err)
	}
	return a, nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID, cycleID string) ([]*Assessment, error) {
	assessments, err := s.repo.GetByEmployeeAndCycle(ctx, employeeID, cycleID)
	if err != nil {
		return nil, internal.NewCollaboratorError("assessment lookup failed", err)
	}
	return assessments, nil
}

// GetEmployeeSkillAssessment finds the employee's assessment for one skill in
// a cycle. Dispute submission uses this to verify ownership.
func (s *Service) GetEmployeeSkillAssessment(ctx context.Context, employeeID, skillID, cycleID string) (*Assessment, error) {
	a, err := s.repo.GetByEmployeeAndSkill(ctx, employeeID, skillID, cycleID)
	if err != nil {
		if errors.Is(err, internal.ErrAssessmentNotFound) {
			return nil, internal.ErrAssessmentNotFound
		}
		return nil, internal.NewCollaboratorError("assessment lookup failed", err)
	}
	return a, nil
}

type CycleParams struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// CreateCycle adds a new inactive cycle. Date ranges that intersect an
// existing cycle are rejected.
func (s *Service) CreateCycle(ctx context.Context, params CycleParams) (*Cycle, error) {
	validator := validation.NewValidator()
	validator.Field("name", params.Name).Required()
	if err := validator.Validate(); err != nil {
		return nil, err
	}
	if !params.EndDate.After(params.StartDate) {
		return nil, internal.NewValidationFieldError("end_date", "end_date must be after start_date", internal.ErrCodeInvalidDate)
	}

	existing, err := s.repo.ListCycles(ctx)
	if err != nil {
		return nil, internal.NewCollaboratorError("cycle lookup failed", err)
	}

	c := &Cycle{
		ID:        uuid.NewString(),
		Name:      params.Name,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Status:    CycleStatusActive,
	}

	for _, other := range existing {
		if c.Overlaps(other) {
			return nil, internal.NewValidationError("cycle date range overlaps an existing cycle", internal.ErrCodeCycleOverlap)
		}
	}

	if err := s.repo.CreateCycle(ctx, c); err != nil {
		s.logger.Error("failed to create cycle", "error", err)
		return nil, internal.NewCollaboratorError("cycle write failed", err)
	}

	return c, nil
}

// ActivateCycle makes the given cycle the single active one. The repository
// deactivates the current active cycle in the same transaction.
func (s *Service) ActivateCycle(ctx context.Context, cycleID string) (*Cycle, error) {
	if _, err := s.repo.GetCycleByID(ctx, cycleID); err != nil {
		if errors.Is(err, internal.ErrCycleNotFound) {
			return nil, internal.ErrCycleNotFound
		}
		return nil, internal.NewCollaboratorError("cycle lookup failed", err)
	}

	if err := s.repo.ActivateCycle(ctx, cycleID); err != nil {
		s.logger.Error("failed to activate cycle", "error", err, "cycle_id", cycleID)
		return nil, internal.NewCollaboratorError("cycle write failed", err)
	}

	s.logger.Info("assessment cycle activated", "cycle_id", cycleID)
	return s.repo.GetCycleByID(ctx, cycleID)
}

func (s *Service) ActiveCycle(ctx context.Context) (*Cycle, error) {
	c, err := s.repo.GetActiveCycle(ctx)
	if err != nil {
		if errors.Is(err, internal.ErrCycleNotFound) {
			return nil, internal.ErrCycleNotFound
		}
		return nil, internal.NewCollaboratorError("cycle lookup failed", err)
	}
	return c, nil
}

func (s *Service) ListCycles(ctx context.Context) ([]*Cycle, error) {
	cycles, err := s.repo.ListCycles(ctx)
	if err != nil {
		return nil, internal.NewCollaboratorError("cycle lookup failed", err)
	}
	return cycles, nil
}
