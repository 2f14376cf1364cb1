package training

import "time"

type ScheduleSessionRequest struct {
	SkillID       string    `json:"skill_id"`
	TrainerID     string    `json:"trainer_id"`
	TrainerType   string    `json:"trainer_type"`
	ScheduledDate time.Time `json:"scheduled_date"`
	EndDate       time.Time `json:"end_date"`
	Mode          string    `json:"mode"`
	Capacity      int       `json:"capacity"`
}

type AssignRequest struct {
	EmployeeID string `json:"employee_id"`
}

type AttendanceRequest struct {
	EmployeeID       string `json:"employee_id"`
	AttendanceStatus string `json:"attendance_status"`
}

type AssignmentResponse struct {
	EmployeeID       string    `json:"employee_id"`
	AssignmentDate   time.Time `json:"assignment_date"`
	AttendanceStatus string    `json:"attendance_status"`
}

type SessionResponse struct {
	ID             string               `json:"id"`
	SkillID        string               `json:"skill_id"`
	TrainerID      string               `json:"trainer_id"`
	TrainerType    string               `json:"trainer_type"`
	ScheduledDate  time.Time            `json:"scheduled_date"`
	EndDate        time.Time            `json:"end_date"`
	Mode           string               `json:"mode"`
	Capacity       int                  `json:"capacity"`
	SeatsRemaining int                  `json:"seats_remaining"`
	Status         string               `json:"status"`
	Assignments    []AssignmentResponse `json:"assignments"`
}

type SessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

func (s *Session) ToResponse() SessionResponse {
	assignments := make([]AssignmentResponse, 0, len(s.Assignments))
	for _, a := range s.Assignments {
		assignments = append(assignments, AssignmentResponse{
			EmployeeID:       a.EmployeeID,
			AssignmentDate:   a.AssignmentDate,
			AttendanceStatus: a.AttendanceStatus,
		})
	}

	remaining := s.Capacity - len(s.Assignments)
	if remaining < 0 {
		remaining = 0
	}

	return SessionResponse{
		ID:             s.ID,
		SkillID:        s.SkillID,
		TrainerID:      s.TrainerID,
		TrainerType:    s.TrainerType,
		ScheduledDate:  s.ScheduledDate,
		EndDate:        s.EndDate,
		Mode:           s.Mode,
		Capacity:       s.Capacity,
		SeatsRemaining: remaining,
		Status:         s.Status,
		Assignments:    assignments,
	}
}
