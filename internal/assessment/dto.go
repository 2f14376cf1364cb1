package assessment

import "time"

type RecordAssessmentRequest struct {
	EmployeeID string `json:"employee_id"`
	SkillID    string `json:"skill_id"`
	Score      int    `json:"score"`
	Comments   string `json:"comments,omitempty"`
	CycleID    string `json:"cycle_id"`
}

type UpdateScoreRequest struct {
	Score    int    `json:"score"`
	Comments string `json:"comments,omitempty"`
}

type AssessmentResponse struct {
	ID                  string    `json:"id"`
	EmployeeID          string    `json:"employee_id"`
	SkillID             string    `json:"skill_id"`
	Score               int       `json:"score"`
	BenchmarkAtTime     int       `json:"benchmark_at_time"`
	Gap                 int       `json:"gap"`
	Comments            string    `json:"comments,omitempty"`
	AssessorID          string    `json:"assessor_id"`
	CycleID             string    `json:"cycle_id"`
	IsLocked            bool      `json:"is_locked"`
	TNIFlag             bool      `json:"tni_flag"`
	AssessmentTimestamp time.Time `json:"assessment_timestamp"`
}

type AssessmentsResponse struct {
	Assessments []AssessmentResponse `json:"assessments"`
}

type CreateCycleRequest struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type CycleResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	IsActiveCycle bool      `json:"is_active_cycle"`
}

type CyclesResponse struct {
	Cycles []CycleResponse `json:"cycles"`
}

func (a *Assessment) ToResponse() AssessmentResponse {
	return AssessmentResponse{
		ID:                  a.ID,
		EmployeeID:          a.EmployeeID,
		SkillID:             a.SkillID,
		Score:               a.Score,
		BenchmarkAtTime:     a.BenchmarkAtTime,
		Gap:                 a.Gap(),
		Comments:            a.Comments,
		AssessorID:          a.AssessorID,
		CycleID:             a.CycleID,
		IsLocked:            a.IsLocked,
		TNIFlag:             a.TNIFlag,
		AssessmentTimestamp: a.AssessmentTimestamp,
	}
}

func (c *Cycle) ToResponse() CycleResponse {
	return CycleResponse{
		ID:            c.ID,
		Name:          c.Name,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		IsActiveCycle: c.IsActiveCycle,
	}
}
