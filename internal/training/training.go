package training

import (
	"time"

	trainingDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/training"
)

const (
	TrainerTypeInternal = "internal"
	TrainerTypeExternal = "external"

	ModeOnline  = "online"
	ModeOffline = "offline"

	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"

	AttendanceAssigned = "assigned"
	AttendanceAttended = "attended"
	AttendanceMissed   = "missed"
)

// Session is a scheduled training delivery for one skill with a bounded
// number of seats.
type Session struct {
	ID            string       `json:"id"`
	SkillID       string       `json:"skill_id"`
	TrainerID     string       `json:"trainer_id"`
	TrainerType   string       `json:"trainer_type"`
	ScheduledDate time.Time    `json:"scheduled_date"`
	EndDate       time.Time    `json:"end_date"`
	Mode          string       `json:"mode"`
	Capacity      int          `json:"capacity"`
	Status        string       `json:"status"`
	CreatedBy     string       `json:"created_by,omitempty"`
	Assignments   []Assignment `json:"assignments"`
}

func (s *Session) IsOpenForAssignment() bool {
	return s.Status == SessionStatusScheduled
}

func (s *Session) IsFull() bool {
	return len(s.Assignments) >= s.Capacity
}

func (s *Session) HasAssignment(employeeID string) bool {
	for _, a := range s.Assignments {
		if a.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

// Assignment is one employee's seat in a session.
type Assignment struct {
	SessionID        string    `json:"session_id"`
	EmployeeID       string    `json:"employee_id"`
	AssignmentDate   time.Time `json:"assignment_date"`
	AttendanceStatus string    `json:"attendance_status"`
}

func SessionFromDataModel(m *trainingDatamodel.TrainingSession, assignments []trainingDatamodel.SessionAssignment) *Session {
	s := &Session{
		ID:            m.ID,
		SkillID:       m.SkillID,
		TrainerID:     m.TrainerID,
		TrainerType:   m.TrainerType,
		ScheduledDate: m.ScheduledDate,
		EndDate:       m.EndDate,
		Mode:          m.Mode,
		Capacity:      m.Capacity,
		Status:        m.Status,
		CreatedBy:     m.CreatedBy,
	}

	s.Assignments = make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		s.Assignments = append(s.Assignments, Assignment{
			SessionID:        a.SessionID,
			EmployeeID:       a.EmployeeID,
			AssignmentDate:   a.AssignmentDate,
			AttendanceStatus: a.AttendanceStatus,
		})
	}

	return s
}
