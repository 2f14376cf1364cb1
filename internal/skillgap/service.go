package skillgap

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/assessment"
	"github.com/skillbridge/skillbridge/internal/core/events"
	"github.com/skillbridge/skillbridge/internal/skill"
)

type Repository interface {
	GetBySourceAssessment(ctx context.Context, assessmentID string) (*TrainingNeed, error)
	Upsert(ctx context.Context, need *TrainingNeed) error
	DeleteBySourceAssessment(ctx context.Context, assessmentID string) error
	ListByEmployee(ctx context.Context, employeeID string) ([]*TrainingNeed, error)
	ListOutstanding(ctx context.Context) ([]*TrainingNeed, error)
	UpdateStatusByEmployeeAndSkill(ctx context.Context, employeeID, skillID, fromStatus, toStatus string) error
	SetAssessmentTNIFlag(ctx context.Context, assessmentID string, flag bool) error
	ListAssessmentIDs(ctx context.Context) ([]string, error)
}

// AssessmentReader supplies the assessment under recomputation.
type AssessmentReader interface {
	GetByID(ctx context.Context, id string) (*assessment.Assessment, error)
}

// CriticalityResolver maps a skill to its criticality weighting.
type CriticalityResolver interface {
	CriticalityForSkill(ctx context.Context, skillID string) (*skill.Criticality, error)
}

type Service struct {
	repo          Repository
	assessments   AssessmentReader
	criticalities CriticalityResolver
	eventBus      *events.EventBus
	logger        *slog.Logger
}

func NewService(repo Repository, assessments AssessmentReader, criticalities CriticalityResolver, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		assessments:   assessments,
		criticalities: criticalities,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// Recompute re-derives the training-need state of one assessment. The
// operation is idempotent: the need is keyed by source assessment, so
// recomputing an unchanged record changes nothing, and a closed gap removes
// the need it previously created. The assessment's tni flag always ends up
// equal to gap > 0.
func (s *Service) Recompute(ctx context.Context, assessmentID string) error {
	a, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return err
	}

	criticality, err := s.criticalities.CriticalityForSkill(ctx, a.SkillID)
	if err != nil {
		return err
	}

	need, err := Evaluate(a, criticality)
	if err != nil {
		return err
	}

	existing, err := s.repo.GetBySourceAssessment(ctx, assessmentID)
	if err != nil && !errors.Is(err, internal.ErrTrainingNeedNotFound) {
		return internal.NewCollaboratorError("training need lookup failed", err)
	}

	if need == nil {
		if err := s.repo.SetAssessmentTNIFlag(ctx, assessmentID, false); err != nil {
			return internal.NewCollaboratorError("tni flag write failed", err)
		}
		if existing != nil {
			if err := s.repo.DeleteBySourceAssessment(ctx, assessmentID); err != nil {
				return internal.NewCollaboratorError("training need delete failed", err)
			}
			s.logger.Info("training need cleared",
				"employee_id", a.EmployeeID,
				"skill_id", a.SkillID,
				"assessment_id", assessmentID)
			s.eventBus.Publish(ctx, events.NewTrainingNeedClearedEvent(a.EmployeeID, a.SkillID))
		}
		return nil
	}

	if existing != nil {
		need.ID = existing.ID
		need.Status = existing.Status
	} else {
		need.ID = uuid.NewString()
	}

	if err := s.repo.SetAssessmentTNIFlag(ctx, assessmentID, true); err != nil {
		return internal.NewCollaboratorError("tni flag write failed", err)
	}
	if err := s.repo.Upsert(ctx, need); err != nil {
		return internal.NewCollaboratorError("training need write failed", err)
	}

	if existing == nil {
		s.logger.Info("training need identified",
			"employee_id", need.EmployeeID,
			"skill_id", need.SkillID,
			"gap", need.Gap)
		s.eventBus.Publish(ctx, events.NewTrainingNeedIdentifiedEvent(need.ID, need.EmployeeID, need.SkillID, need.Gap))
	}

	return nil
}

// RecomputeAll rebuilds the training-need table from every assessment on
// record. Used by the batch recompute command after bulk data changes.
func (s *Service) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := s.repo.ListAssessmentIDs(ctx)
	if err != nil {
		return 0, internal.NewCollaboratorError("assessment listing failed", err)
	}

	recomputed := 0
	for _, id := range ids {
		if err := s.Recompute(ctx, id); err != nil {
			s.logger.Error("recompute failed for assessment", "error", err, "assessment_id", id)
			continue
		}
		recomputed++
	}

	s.logger.Info("batch recompute finished", "total", len(ids), "recomputed", recomputed)
	return recomputed, nil
}

// NeedsForEmployee returns the employee's training needs in priority order.
func (s *Service) NeedsForEmployee(ctx context.Context, employeeID string) ([]*TrainingNeed, error) {
	needs, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, internal.NewCollaboratorError("training need lookup failed", err)
	}
	return Prioritize(needs), nil
}

// OutstandingNeeds returns every unscheduled need, highest priority first.
func (s *Service) OutstandingNeeds(ctx context.Context) ([]*TrainingNeed, error) {
	needs, err := s.repo.ListOutstanding(ctx)
	if err != nil {
		return nil, internal.NewCollaboratorError("training need lookup failed", err)
	}
	return Prioritize(needs), nil
}

// MarkScheduled moves an outstanding need to scheduled when the employee is
// assigned to a training session for the skill.
func (s *Service) MarkScheduled(ctx context.Context, employeeID, skillID string) error {
	err := s.repo.UpdateStatusByEmployeeAndSkill(ctx, employeeID, skillID, StatusTrainingRequired, StatusScheduled)
	if err != nil {
		return internal.NewCollaboratorError("training need status write failed", err)
	}
	return nil
}

// MarkResolved closes a scheduled need once the employee attends training.
func (s *Service) MarkResolved(ctx context.Context, employeeID, skillID string) error {
	err := s.repo.UpdateStatusByEmployeeAndSkill(ctx, employeeID, skillID, StatusScheduled, StatusResolved)
	if err != nil {
		return internal.NewCollaboratorError("training need status write failed", err)
	}
	return nil
}
