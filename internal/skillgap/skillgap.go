package skillgap

import (
	"sort"
	"time"

	trainingDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/training"
)

const (
	StatusTrainingRequired = "trainingRequired"
	StatusScheduled        = "scheduled"
	StatusResolved         = "resolved"
)

// TrainingNeed records that an employee scored below the benchmark for a
// skill. Exactly one need exists per source assessment; recomputing an
// unchanged assessment leaves the record as it is.
type TrainingNeed struct {
	ID                 string    `json:"id"`
	EmployeeID         string    `json:"employee_id"`
	SkillID            string    `json:"skill_id"`
	Gap                int       `json:"gap"`
	BenchmarkScore     int       `json:"benchmark_score"`
	EmployeeScore      int       `json:"employee_score"`
	CriticalityWeight  float64   `json:"criticality_weight"`
	Status             string    `json:"status"`
	SourceAssessmentID string    `json:"source_assessment_id"`
	AssessedAt         time.Time `json:"assessed_at"`
}

// Priority is the ranking score used to order needs for scheduling.
func (n *TrainingNeed) Priority() float64 {
	return float64(n.Gap) * n.CriticalityWeight
}

func (n *TrainingNeed) IsOutstanding() bool {
	return n.Status == StatusTrainingRequired
}

// Prioritize orders needs by descending gap-weighted priority. Ties go to
// the earlier assessment so long-standing gaps surface first.
func Prioritize(needs []*TrainingNeed) []*TrainingNeed {
	sorted := make([]*TrainingNeed, len(needs))
	copy(sorted, needs)

	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].Priority(), sorted[j].Priority()
		if pi != pj {
			return pi > pj
		}
		return sorted[i].AssessedAt.Before(sorted[j].AssessedAt)
	})

	return sorted
}

func FromDataModel(m *trainingDatamodel.TrainingNeed) *TrainingNeed {
	return &TrainingNeed{
		ID:                 m.ID,
		EmployeeID:         m.EmployeeID,
		SkillID:            m.SkillID,
		Gap:                m.Gap,
		BenchmarkScore:     m.BenchmarkScore,
		EmployeeScore:      m.EmployeeScore,
		CriticalityWeight:  m.CriticalityWeight,
		Status:             m.Status,
		SourceAssessmentID: m.SourceAssessmentID,
		AssessedAt:         m.AssessedAt,
	}
}

func (n *TrainingNeed) ToDataModel() *trainingDatamodel.TrainingNeed {
	return &trainingDatamodel.TrainingNeed{
		ID:                 n.ID,
		EmployeeID:         n.EmployeeID,
		SkillID:            n.SkillID,
		Gap:                n.Gap,
		BenchmarkScore:     n.BenchmarkScore,
		EmployeeScore:      n.EmployeeScore,
		CriticalityWeight:  n.CriticalityWeight,
		Status:             n.Status,
		SourceAssessmentID: n.SourceAssessmentID,
		AssessedAt:         n.AssessedAt,
	}
}
