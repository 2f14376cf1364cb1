package assessment

import "time"

type Assessment struct {
	ID                  string    `gorm:"primaryKey"`
	EmployeeID          string    `gorm:"column:employee_id;index;not null"`
	SkillID             string    `gorm:"column:skill_id;index;not null"`
	Score               int       `gorm:"column:score;not null"`
	BenchmarkAtTime     int       `gorm:"column:benchmark_at_time;not null"`
	Comments            string    `gorm:"column:comments"`
	AssessorID          string    `gorm:"column:assessor_id;not null"`
	CycleID             string    `gorm:"column:cycle_id;index;not null"`
	IsLocked            bool      `gorm:"column:is_locked;default:false"`
	TNIFlag             bool      `gorm:"column:tni_flag;default:false"`
	Status              string    `gorm:"column:status;default:active"`
	AssessmentTimestamp time.Time `gorm:"column:assessment_timestamp;not null"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Assessment) TableName() string {
	return "assessments"
}

type AssessmentCycle struct {
	ID            string    `gorm:"primaryKey"`
	Name          string    `gorm:"column:name;uniqueIndex;not null"`
	StartDate     time.Time `gorm:"column:start_date;not null"`
	EndDate       time.Time `gorm:"column:end_date;not null"`
	IsActiveCycle bool      `gorm:"column:is_active_cycle;default:false"`
	Status        string    `gorm:"column:status;default:active"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (AssessmentCycle) TableName() string {
	return "assessment_cycles"
}
