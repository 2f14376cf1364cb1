package training

import "time"

type TrainingNeed struct {
	ID                 string    `gorm:"primaryKey"`
	EmployeeID         string    `gorm:"column:employee_id;index;not null"`
	SkillID            string    `gorm:"column:skill_id;index;not null"`
	Gap                int       `gorm:"column:gap;not null"`
	BenchmarkScore     int       `gorm:"column:benchmark_score;not null"`
	EmployeeScore      int       `gorm:"column:employee_score;not null"`
	CriticalityWeight  float64   `gorm:"column:criticality_weight;not null"`
	Status             string    `gorm:"column:status;default:trainingRequired"`
	SourceAssessmentID string    `gorm:"column:source_assessment_id;uniqueIndex;not null"`
	AssessedAt         time.Time `gorm:"column:assessed_at;not null"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (TrainingNeed) TableName() string {
	return "training_needs"
}

type TrainingSession struct {
	ID            string    `gorm:"primaryKey"`
	SkillID       string    `gorm:"column:skill_id;index;not null"`
	TrainerID     string    `gorm:"column:trainer_id;not null"`
	TrainerType   string    `gorm:"column:trainer_type;not null"`
	ScheduledDate time.Time `gorm:"column:scheduled_date;not null"`
	EndDate       time.Time `gorm:"column:end_date;not null"`
	Mode          string    `gorm:"column:mode;not null"`
	Capacity      int       `gorm:"column:capacity;not null"`
	Status        string    `gorm:"column:status;default:scheduled"`
	CreatedBy     string    `gorm:"column:created_by"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (TrainingSession) TableName() string {
	return "training_sessions"
}

type SessionAssignment struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	SessionID        string    `gorm:"column:session_id;index;not null"`
	EmployeeID       string    `gorm:"column:employee_id;index;not null"`
	AssignmentDate   time.Time `gorm:"column:assignment_date;not null"`
	AttendanceStatus string    `gorm:"column:attendance_status;default:assigned"`
}

func (SessionAssignment) TableName() string {
	return "session_assignments"
}
