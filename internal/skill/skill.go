package skill

import (
	"time"

	skillDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/skill"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Skill struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CategoryID    string    `json:"category_id"`
	CriticalityID string    `json:"criticality_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *Skill) IsActiveSkill() bool {
	return s.Status == StatusActive
}

// Criticality weights order severity: Mission Critical outweighs High
// outweighs Medium. The weight feeds training-need prioritization.
type Criticality struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Status string  `json:"status"`
}

type Benchmark struct {
	ID                 string     `json:"id"`
	SkillID            string     `json:"skill_id"`
	Score              int        `json:"score"`
	EffectiveStartDate time.Time  `json:"effective_start_date"`
	EffectiveEndDate   *time.Time `json:"effective_end_date,omitempty"`
	CreatedBy          string     `json:"created_by,omitempty"`
}

// IsCurrent reports whether this benchmark is the one in effect; at most one
// benchmark per skill has a nil end date at any time.
func (b *Benchmark) IsCurrent() bool {
	return b.EffectiveEndDate == nil
}

func FromDataModel(s *skillDatamodel.Skill) *Skill {
	return &Skill{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		CategoryID:    s.CategoryID,
		CriticalityID: s.CriticalityID,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func CriticalityFromDataModel(c *skillDatamodel.SkillCriticality) *Criticality {
	return &Criticality{
		ID:     c.ID,
		Name:   c.Name,
		Weight: c.Weight,
		Status: c.Status,
	}
}

func BenchmarkFromDataModel(b *skillDatamodel.SkillBenchmark) *Benchmark {
	return &Benchmark{
		ID:                 b.ID,
		SkillID:            b.SkillID,
		Score:              b.Score,
		EffectiveStartDate: b.EffectiveStartDate,
		EffectiveEndDate:   b.EffectiveEndDate,
		CreatedBy:          b.CreatedBy,
	}
}
