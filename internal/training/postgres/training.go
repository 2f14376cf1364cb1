package postgres

import (
	"context"
	"errors"

	"github.com/skillbridge/skillbridge/internal"
	trainingDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/training"
	"github.com/skillbridge/skillbridge/internal/training"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) training.Repository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) CreateSession(ctx context.Context, s *training.Session) error {
	model := trainingDatamodel.TrainingSession{
		ID:            s.ID,
		SkillID:       s.SkillID,
		TrainerID:     s.TrainerID,
		TrainerType:   s.TrainerType,
		ScheduledDate: s.ScheduledDate,
		EndDate:       s.EndDate,
		Mode:          s.Mode,
		Capacity:      s.Capacity,
		Status:        s.Status,
		CreatedBy:     s.CreatedBy,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *SessionRepository) GetSessionByID(ctx context.Context, id string) (*training.Session, error) {
	var model trainingDatamodel.TrainingSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrSessionNotFound
		}
		return nil, err
	}

	assignments, err := r.assignmentsFor(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	return training.SessionFromDataModel(&model, assignments), nil
}

func (r *SessionRepository) ListSessions(ctx context.Context) ([]*training.Session, error) {
	var models []trainingDatamodel.TrainingSession
	err := r.db.WithContext(ctx).Order("scheduled_date").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.expand(ctx, models)
}

func (r *SessionRepository) ListSessionsBySkill(ctx context.Context, skillID string) ([]*training.Session, error) {
	var models []trainingDatamodel.TrainingSession
	err := r.db.WithContext(ctx).
		Where("skill_id = ?", skillID).
		Order("scheduled_date").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.expand(ctx, models)
}

func (r *SessionRepository) AddAssignment(ctx context.Context, a *training.Assignment) error {
	model := trainingDatamodel.SessionAssignment{
		SessionID:        a.SessionID,
		EmployeeID:       a.EmployeeID,
		AssignmentDate:   a.AssignmentDate,
		AttendanceStatus: a.AttendanceStatus,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *SessionRepository) UpdateAttendance(ctx context.Context, sessionID, employeeID, status string) error {
	return r.db.WithContext(ctx).
		Model(&trainingDatamodel.SessionAssignment{}).
		Where("session_id = ? AND employee_id = ?", sessionID, employeeID).
		Update("attendance_status", status).Error
}

func (r *SessionRepository) UpdateSessionStatus(ctx context.Context, sessionID, status string) error {
	return r.db.WithContext(ctx).
		Model(&trainingDatamodel.TrainingSession{}).
		Where("id = ?", sessionID).
		Update("status", status).Error
}

func (r *SessionRepository) assignmentsFor(ctx context.Context, sessionID string) ([]trainingDatamodel.SessionAssignment, error) {
	var assignments []trainingDatamodel.SessionAssignment
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("assignment_date, id").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *SessionRepository) expand(ctx context.Context, models []trainingDatamodel.TrainingSession) ([]*training.Session, error) {
	sessions := make([]*training.Session, 0, len(models))
	for i := range models {
		assignments, err := r.assignmentsFor(ctx, models[i].ID)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, training.SessionFromDataModel(&models[i], assignments))
	}
	return sessions, nil
}
