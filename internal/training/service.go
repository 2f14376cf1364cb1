package training

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/core/common/validation"
)

type Repository interface {
	CreateSession(ctx context.Context, s *Session) error
	GetSessionByID(ctx context.Context, id string) (*Session, error)
	ListSessions(ctx context.Context) ([]*Session, error)
	ListSessionsBySkill(ctx context.Context, skillID string) ([]*Session, error)
	AddAssignment(ctx context.Context, a *Assignment) error
	UpdateAttendance(ctx context.Context, sessionID, employeeID, status string) error
	UpdateSessionStatus(ctx context.Context, sessionID, status string) error
}

// NeedMarker moves an employee's training need through its lifecycle as the
// session progresses.
type NeedMarker interface {
	MarkScheduled(ctx context.Context, employeeID, skillID string) error
	MarkResolved(ctx context.Context, employeeID, skillID string) error
}

type Service struct {
	repo   Repository
	needs  NeedMarker
	logger *slog.Logger
}

func NewService(repo Repository, needs NeedMarker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		needs:  needs,
		logger: logger,
	}
}

type ScheduleParams struct {
	SkillID       string
	TrainerID     string
	TrainerType   string
	ScheduledDate time.Time
	EndDate       time.Time
	Mode          string
	Capacity      int
	CreatedBy     string
}

// Schedule creates a new session open for assignment.
func (s *Service) Schedule(ctx context.Context, params ScheduleParams) (*Session, error) {
	validator := validation.NewValidator()
	validator.Field("skill_id", params.SkillID).Required()
	validator.Field("trainer_id", params.TrainerID).Required()
	validator.Field("scheduled_date", params.ScheduledDate).Required()
	validator.Field("end_date", params.EndDate).Required()
	if err := validator.Validate(); err != nil {
		return nil, err
	}

	if params.TrainerType != TrainerTypeInternal && params.TrainerType != TrainerTypeExternal {
		return nil, internal.NewValidationFieldError("trainer_type",
			fmt.Sprintf("trainer_type must be %s or %s", TrainerTypeInternal, TrainerTypeExternal),
			internal.ErrCodeValidationFailed)
	}
	if params.Mode != ModeOnline && params.Mode != ModeOffline {
		return nil, internal.NewValidationFieldError("mode",
			fmt.Sprintf("mode must be %s or %s", ModeOnline, ModeOffline),
			internal.ErrCodeValidationFailed)
	}
	if params.Capacity <= 0 {
		return nil, internal.NewValidationFieldError("capacity", "capacity must be positive", internal.ErrCodeValidationFailed)
	}
	if !params.EndDate.After(params.ScheduledDate) {
		return nil, internal.NewValidationFieldError("end_date", "end_date must be after scheduled_date", internal.ErrCodeInvalidDate)
	}

	session := &Session{
		ID:            uuid.NewString(),
		SkillID:       params.SkillID,
		TrainerID:     params.TrainerID,
		TrainerType:   params.TrainerType,
		ScheduledDate: params.ScheduledDate,
		EndDate:       params.EndDate,
		Mode:          params.Mode,
		Capacity:      params.Capacity,
		Status:        SessionStatusScheduled,
		CreatedBy:     params.CreatedBy,
		Assignments:   []Assignment{},
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		s.logger.Error("failed to create training session", "error", err)
		return nil, internal.NewCollaboratorError("session write failed", err)
	}

	s.logger.Info("training session scheduled",
		"session_id", session.ID,
		"skill_id", session.SkillID,
		"capacity", session.Capacity)

	return session, nil
}

// Assign seats an employee in a session and moves their training need for
// the session's skill to scheduled.
func (s *Service) Assign(ctx context.Context, sessionID, employeeID string) (*Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsOpenForAssignment() {
		return nil, internal.ErrSessionNotOpen
	}
	if session.HasAssignment(employeeID) {
		return nil, internal.NewValidationError("employee is already assigned to this session", internal.ErrCodeValidationFailed)
	}
	if session.IsFull() {
		return nil, internal.ErrSessionFull
	}

	if err := s.repo.AddAssignment(ctx, &Assignment{
		SessionID:        sessionID,
		EmployeeID:       employeeID,
		AssignmentDate:   time.Now(),
		AttendanceStatus: AttendanceAssigned,
	}); err != nil {
		s.logger.Error("failed to add assignment", "error", err, "session_id", sessionID)
		return nil, internal.NewCollaboratorError("assignment write failed", err)
	}

	if err := s.needs.MarkScheduled(ctx, employeeID, session.SkillID); err != nil {
		s.logger.Error("failed to mark training need scheduled",
			"error", err,
			"employee_id", employeeID,
			"skill_id", session.SkillID)
	}

	s.logger.Info("employee assigned to training session",
		"session_id", sessionID,
		"employee_id", employeeID)

	return s.GetSession(ctx, sessionID)
}

// MarkAttendance records whether an assigned employee attended.
func (s *Service) MarkAttendance(ctx context.Context, sessionID, employeeID, status string) error {
	if status != AttendanceAttended && status != AttendanceMissed {
		return internal.NewValidationFieldError("attendance_status",
			fmt.Sprintf("attendance_status must be %s or %s", AttendanceAttended, AttendanceMissed),
			internal.ErrCodeValidationFailed)
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.HasAssignment(employeeID) {
		return internal.NewValidationError("employee is not assigned to this session", internal.ErrCodeValidationFailed)
	}

	if err := s.repo.UpdateAttendance(ctx, sessionID, employeeID, status); err != nil {
		return internal.NewCollaboratorError("attendance write failed", err)
	}
	return nil
}

// Complete closes the session and resolves the training needs of everyone
// who attended. Assigned-but-absent employees keep their need scheduled for
// a future session.
func (s *Service) Complete(ctx context.Context, sessionID string) (*Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != SessionStatusScheduled {
		return nil, internal.ErrSessionNotOpen
	}

	if err := s.repo.UpdateSessionStatus(ctx, sessionID, SessionStatusCompleted); err != nil {
		s.logger.Error("failed to complete session", "error", err, "session_id", sessionID)
		return nil, internal.NewCollaboratorError("session write failed", err)
	}

	for _, a := range session.Assignments {
		if a.AttendanceStatus != AttendanceAttended {
			continue
		}
		if err := s.needs.MarkResolved(ctx, a.EmployeeID, session.SkillID); err != nil {
			s.logger.Error("failed to resolve training need",
				"error", err,
				"employee_id", a.EmployeeID,
				"skill_id", session.SkillID)
		}
	}

	s.logger.Info("training session completed", "session_id", sessionID)
	return s.GetSession(ctx, sessionID)
}

func (s *Service) GetSession(ctx context.Context, id string) (*Session, error) {
	session, err := s.repo.GetSessionByID(ctx, id)
	if err != nil {
		if errors.Is(err, internal.ErrSessionNotFound) {
			return nil, internal.ErrSessionNotFound
		}
		return nil, internal.NewCollaboratorError("session lookup failed", err)
	}
	return session, nil
}

func (s *Service) ListSessions(ctx context.Context, skillID string) ([]*Session, error) {
	var (
		sessions []*Session
		err      error
	)
	if skillID != "" {
		sessions, err = s.repo.ListSessionsBySkill(ctx, skillID)
	} else {
		sessions, err = s.repo.ListSessions(ctx)
	}
	if err != nil {
		return nil, internal.NewCollaboratorError("session lookup failed", err)
	}
	return sessions, nil
}
