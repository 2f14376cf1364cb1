package dispute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/assessment"
	"github.com/skillbridge/skillbridge/internal/core/common/validation"
	"github.com/skillbridge/skillbridge/internal/core/events"
)

// Resolution captures the terminal outcome written onto a dispute row.
type Resolution struct {
	Status          string
	AdminID         string
	Action          string
	Notes           *string
	RejectionReason *string
	Timestamp       time.Time
}

type Repository interface {
	Create(ctx context.Context, d *Dispute) error
	GetByID(ctx context.Context, id string) (*Dispute, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Dispute, error)
	ListByStatus(ctx context.Context, status string) ([]*Dispute, error)
	// UpdateResolution writes the resolution conditionally on the dispute
	// still being open; it reports false when another resolution won.
	UpdateResolution(ctx context.Context, disputeID string, res Resolution) (bool, error)
	SetSkillNewScore(ctx context.Context, disputeID, skillID string, newScore int) error
	AppendAudit(ctx context.Context, entry *AuditEntry) error
	GetAuditTrail(ctx context.Context, disputeID string) ([]*AuditEntry, error)
}

// AssessmentAccess is the slice of the assessment module the dispute
// lifecycle needs: ownership checks at submission and score rewrites at
// resolution.
type AssessmentAccess interface {
	GetEmployeeSkillAssessment(ctx context.Context, employeeID, skillID, cycleID string) (*assessment.Assessment, error)
	ApplyDisputeEdit(ctx context.Context, assessmentID string, newScore int) (*assessment.Assessment, error)
}

type Service struct {
	repo        Repository
	assessments AssessmentAccess
	eventBus    *events.EventBus
	logger      *slog.Logger
}

func NewService(repo Repository, assessments AssessmentAccess, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		assessments: assessments,
		eventBus:    eventBus,
		logger:      logger,
	}
}

type SubmitSkill struct {
	SkillID string
	Reason  string
}

type SubmitParams struct {
	EmployeeID     string
	CycleID        string
	Reason         string
	DisputedSkills []SubmitSkill
}

// Submit opens a dispute over one or more of the employee's own assessments.
// Every disputed skill must have an assessment for this employee in the
// given cycle; the original score is snapshotted at submission time.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (*Dispute, error) {
	validator := validation.NewValidator()
	validator.Field("employee_id", params.EmployeeID).Required()
	validator.Field("cycle_id", params.CycleID).Required()
	validator.Field("reason", params.Reason).Required()
	if err := validator.Validate(); err != nil {
		return nil, err
	}

	if len(params.DisputedSkills) == 0 {
		return nil, internal.NewValidationError("at least one disputed skill is required", internal.ErrCodeEmptyDisputedSkills)
	}

	disputed := make([]DisputedSkill, 0, len(params.DisputedSkills))
	for _, ds := range params.DisputedSkills {
		a, err := s.assessments.GetEmployeeSkillAssessment(ctx, params.EmployeeID, ds.SkillID, params.CycleID)
		if err != nil {
			if errors.Is(err, internal.ErrAssessmentNotFound) {
				return nil, internal.NewValidationError(
					fmt.Sprintf("skill %s has no assessment for this employee in the cycle", ds.SkillID),
					internal.ErrCodeSkillNotAssessed)
			}
			return nil, err
		}

		disputed = append(disputed, DisputedSkill{
			SkillID:       ds.SkillID,
			OriginalScore: a.Score,
			Reason:        ds.Reason,
		})
	}

	d := &Dispute{
		ID:             uuid.NewString(),
		EmployeeID:     params.EmployeeID,
		CycleID:        params.CycleID,
		Reason:         params.Reason,
		Status:         StatusOpen,
		DisputedSkills: disputed,
		SubmittedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("failed to create dispute", "error", err)
		return nil, internal.NewCollaboratorError("dispute write failed", err)
	}

	if err := s.repo.AppendAudit(ctx, &AuditEntry{
		DisputeID: d.ID,
		Action:    AuditActionSubmitted,
		ActorID:   params.EmployeeID,
		ActorType: ActorTypeEmployee,
		Timestamp: d.SubmittedAt,
		Details:   fmt.Sprintf("dispute submitted over %d skill(s)", len(disputed)),
	}); err != nil {
		s.logger.Error("failed to append submit audit entry", "error", err, "dispute_id", d.ID)
	}

	s.logger.Info("dispute submitted",
		"dispute_id", d.ID,
		"employee_id", d.EmployeeID,
		"skills", len(disputed))

	return d, nil
}

type ResolveParams struct {
	DisputeID       string
	AdminID         string
	Action          string
	NewScores       map[string]int
	ResolutionNotes string
	RejectionReason string
}

// Resolve moves an open dispute to its terminal state. The status write is
// conditional on the dispute still being open, so of two concurrent
// administrators exactly one wins; the other gets InvalidState.
func (s *Service) Resolve(ctx context.Context, params ResolveParams) (*Dispute, error) {
	d, err := s.GetByID(ctx, params.DisputeID)
	if err != nil {
		return nil, err
	}
	if !d.IsOpen() {
		return nil, internal.ErrDisputeNotOpen
	}

	switch params.Action {
	case ActionEditRating:
		return s.resolveEditRating(ctx, d, params)
	case ActionUpholdOriginal:
		return s.resolveUpholdOriginal(ctx, d, params)
	case ActionReject:
		return s.resolveReject(ctx, d, params)
	default:
		return nil, internal.NewValidationError(
			fmt.Sprintf("unknown resolution action %q", params.Action),
			internal.ErrCodeInvalidResolution)
	}
}

func (s *Service) resolveEditRating(ctx context.Context, d *Dispute, params ResolveParams) (*Dispute, error) {
	// Every disputed skill needs a replacement score before anything is
	// written; a partial edit would leave the dispute half applied.
	for _, ds := range d.DisputedSkills {
		newScore, ok := params.NewScores[ds.SkillID]
		if !ok {
			return nil, internal.NewValidationError(
				fmt.Sprintf("editRating requires a new score for skill %s", ds.SkillID),
				internal.ErrCodeMissingNewScore)
		}
		if err := validation.ValidateScore("new_score", newScore); err != nil {
			return nil, err
		}
	}

	if err := s.markTerminal(ctx, d.ID, Resolution{
		Status:    StatusResolved,
		AdminID:   params.AdminID,
		Action:    ActionEditRating,
		Notes:     optional(params.ResolutionNotes),
		Timestamp: time.Now(),
	}); err != nil {
		return nil, err
	}

	for _, ds := range d.DisputedSkills {
		newScore := params.NewScores[ds.SkillID]

		a, err := s.assessments.GetEmployeeSkillAssessment(ctx, d.EmployeeID, ds.SkillID, d.CycleID)
		if err != nil {
			return nil, err
		}

		if _, err := s.assessments.ApplyDisputeEdit(ctx, a.ID, newScore); err != nil {
			return nil, err
		}

		if err := s.repo.SetSkillNewScore(ctx, d.ID, ds.SkillID, newScore); err != nil {
			s.logger.Error("failed to record new score on dispute skill",
				"error", err,
				"dispute_id", d.ID,
				"skill_id", ds.SkillID)
		}
	}

	s.appendResolutionAudit(ctx, d.ID, params.AdminID, AuditActionResolved,
		fmt.Sprintf("resolved with editRating across %d skill(s)", len(d.DisputedSkills)))
	s.eventBus.Publish(ctx, events.NewDisputeResolvedEvent(d.ID, d.EmployeeID, params.AdminID, ActionEditRating))

	return s.GetByID(ctx, d.ID)
}

func (s *Service) resolveUpholdOriginal(ctx context.Context, d *Dispute, params ResolveParams) (*Dispute, error) {
	if err := s.markTerminal(ctx, d.ID, Resolution{
		Status:    StatusResolved,
		AdminID:   params.AdminID,
		Action:    ActionUpholdOriginal,
		Notes:     optional(params.ResolutionNotes),
		Timestamp: time.Now(),
	}); err != nil {
		return nil, err
	}

	s.appendResolutionAudit(ctx, d.ID, params.AdminID, AuditActionResolved, "original scores upheld")
	s.eventBus.Publish(ctx, events.NewDisputeResolvedEvent(d.ID, d.EmployeeID, params.AdminID, ActionUpholdOriginal))

	return s.GetByID(ctx, d.ID)
}

func (s *Service) resolveReject(ctx context.Context, d *Dispute, params ResolveParams) (*Dispute, error) {
	if params.RejectionReason == "" {
		return nil, internal.NewValidationError("rejection requires a reason", internal.ErrCodeMissingReason)
	}

	if err := s.markTerminal(ctx, d.ID, Resolution{
		Status:          StatusRejected,
		AdminID:         params.AdminID,
		Action:          ActionReject,
		RejectionReason: optional(params.RejectionReason),
		Timestamp:       time.Now(),
	}); err != nil {
		return nil, err
	}

	s.appendResolutionAudit(ctx, d.ID, params.AdminID, AuditActionRejected, params.RejectionReason)
	s.eventBus.Publish(ctx, events.NewDisputeResolvedEvent(d.ID, d.EmployeeID, params.AdminID, ActionReject))

	return s.GetByID(ctx, d.ID)
}

func (s *Service) markTerminal(ctx context.Context, disputeID string, res Resolution) error {
	ok, err := s.repo.UpdateResolution(ctx, disputeID, res)
	if err != nil {
		s.logger.Error("failed to update dispute resolution", "error", err, "dispute_id", disputeID)
		return internal.NewCollaboratorError("dispute write failed", err)
	}
	if !ok {
		return internal.ErrDisputeNotOpen
	}
	return nil
}

func (s *Service) appendResolutionAudit(ctx context.Context, disputeID, adminID, action, details string) {
	if err := s.repo.AppendAudit(ctx, &AuditEntry{
		DisputeID: disputeID,
		Action:    action,
		ActorID:   adminID,
		ActorType: ActorTypeAdmin,
		Timestamp: time.Now(),
		Details:   details,
	}); err != nil {
		s.logger.Error("failed to append resolution audit entry", "error", err, "dispute_id", disputeID)
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*Dispute, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, internal.ErrDisputeNotFound) {
			return nil, internal.ErrDisputeNotFound
		}
		return nil, internal.NewCollaboratorError("dispute lookup failed", err)
	}
	return d, nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]*Dispute, error) {
	disputes, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, internal.NewCollaboratorError("dispute lookup failed", err)
	}
	return disputes, nil
}

func (s *Service) ListOpen(ctx context.Context) ([]*Dispute, error) {
	disputes, err := s.repo.ListByStatus(ctx, StatusOpen)
	if err != nil {
		return nil, internal.NewCollaboratorError("dispute lookup failed", err)
	}
	return disputes, nil
}

// AuditTrail returns the dispute's history, oldest entry first.
func (s *Service) AuditTrail(ctx context.Context, disputeID string) ([]*AuditEntry, error) {
	if _, err := s.GetByID(ctx, disputeID); err != nil {
		return nil, err
	}

	trail, err := s.repo.GetAuditTrail(ctx, disputeID)
	if err != nil {
		return nil, internal.NewCollaboratorError("audit trail lookup failed", err)
	}
	return trail, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
