package skillgap

import "time"

type TrainingNeedResponse struct {
	ID                 string    `json:"id"`
	EmployeeID         string    `json:"employee_id"`
	SkillID            string    `json:"skill_id"`
	Gap                int       `json:"gap"`
	BenchmarkScore     int       `json:"benchmark_score"`
	EmployeeScore      int       `json:"employee_score"`
	CriticalityWeight  float64   `json:"criticality_weight"`
	Priority           float64   `json:"priority"`
	Status             string    `json:"status"`
	SourceAssessmentID string    `json:"source_assessment_id"`
	AssessedAt         time.Time `json:"assessed_at"`
}

type TrainingNeedsResponse struct {
	TrainingNeeds []TrainingNeedResponse `json:"training_needs"`
}

func (n *TrainingNeed) ToResponse() TrainingNeedResponse {
	return TrainingNeedResponse{
		ID:                 n.ID,
		EmployeeID:         n.EmployeeID,
		SkillID:            n.SkillID,
		Gap:                n.Gap,
		BenchmarkScore:     n.BenchmarkScore,
		EmployeeScore:      n.EmployeeScore,
		CriticalityWeight:  n.CriticalityWeight,
		Priority:           n.Priority(),
		Status:             n.Status,
		SourceAssessmentID: n.SourceAssessmentID,
		AssessedAt:         n.AssessedAt,
	}
}
