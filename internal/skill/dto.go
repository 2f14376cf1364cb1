package skill

import "time"

type SkillResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	CategoryID    string `json:"category_id"`
	CriticalityID string `json:"criticality_id"`
	Status        string `json:"status"`
}

type SkillsResponse struct {
	Skills []SkillResponse `json:"skills"`
}

type BenchmarkResponse struct {
	ID                 string     `json:"id"`
	SkillID            string     `json:"skill_id"`
	Score              int        `json:"score"`
	EffectiveStartDate time.Time  `json:"effective_start_date"`
	EffectiveEndDate   *time.Time `json:"effective_end_date,omitempty"`
}

type SetBenchmarkRequest struct {
	Score int `json:"score"`
}

func (s *Skill) ToResponse() SkillResponse {
	return SkillResponse{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		CategoryID:    s.CategoryID,
		CriticalityID: s.CriticalityID,
		Status:        s.Status,
	}
}

func (b *Benchmark) ToResponse() BenchmarkResponse {
	return BenchmarkResponse{
		ID:                 b.ID,
		SkillID:            b.SkillID,
		Score:              b.Score,
		EffectiveStartDate: b.EffectiveStartDate,
		EffectiveEndDate:   b.EffectiveEndDate,
	}
}
