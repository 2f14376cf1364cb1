package assessment

import (
	"time"

	assessmentDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/assessment"
)

const (
	StatusActive   = "active"
	StatusArchived = "archived"

	CycleStatusActive   = "active"
	CycleStatusInactive = "inactive"
)

// Assessment is one assessor's scoring of one employee on one skill within a
// cycle. BenchmarkAtTime snapshots the benchmark in effect when the record
// was written; later benchmark changes never alter past records.
type Assessment struct {
	ID                  string    `json:"id"`
	EmployeeID          string    `json:"employee_id"`
	SkillID             string    `json:"skill_id"`
	Score               int       `json:"score"`
	BenchmarkAtTime     int       `json:"benchmark_at_time"`
	Comments            string    `json:"comments,omitempty"`
	AssessorID          string    `json:"assessor_id"`
	CycleID             string    `json:"cycle_id"`
	IsLocked            bool      `json:"is_locked"`
	TNIFlag             bool      `json:"tni_flag"`
	Status              string    `json:"status"`
	AssessmentTimestamp time.Time `json:"assessment_timestamp"`
}

// Gap is benchmark minus score; positive means the employee is below the bar.
func (a *Assessment) Gap() int {
	return a.BenchmarkAtTime - a.Score
}

type Cycle struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	IsActiveCycle bool      `json:"is_active_cycle"`
	Status        string    `json:"status"`
}

// Overlaps reports whether two cycles' date ranges intersect.
func (c *Cycle) Overlaps(other *Cycle) bool {
	return !c.EndDate.Before(other.StartDate) && !other.EndDate.Before(c.StartDate)
}

func FromDataModel(m *assessmentDatamodel.Assessment) *Assessment {
	return &Assessment{
		ID:                  m.ID,
		EmployeeID:          m.EmployeeID,
		SkillID:             m.SkillID,
		Score:               m.Score,
		BenchmarkAtTime:     m.BenchmarkAtTime,
		Comments:            m.Comments,
		AssessorID:          m.AssessorID,
		CycleID:             m.CycleID,
		IsLocked:            m.IsLocked,
		TNIFlag:             m.TNIFlag,
		Status:              m.Status,
		AssessmentTimestamp: m.AssessmentTimestamp,
	}
}

func (a *Assessment) ToDataModel() *assessmentDatamodel.Assessment {
	return &assessmentDatamodel.Assessment{
		ID:                  a.ID,
		EmployeeID:          a.EmployeeID,
		SkillID:             a.SkillID,
		Score:               a.Score,
		BenchmarkAtTime:     a.BenchmarkAtTime,
		Comments:            a.Comments,
		AssessorID:          a.AssessorID,
		CycleID:             a.CycleID,
		IsLocked:            a.IsLocked,
		TNIFlag:             a.TNIFlag,
		Status:              a.Status,
		AssessmentTimestamp: a.AssessmentTimestamp,
	}
}

func CycleFromDataModel(m *assessmentDatamodel.AssessmentCycle) *Cycle {
	return &Cycle{
		ID:            m.ID,
		Name:          m.Name,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		IsActiveCycle: m.IsActiveCycle,
		Status:        m.Status,
	}
}
