package skill

import "time"

type SkillCategory struct {
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Status    string    `gorm:"column:status;default:active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SkillCategory) TableName() string {
	return "skill_categories"
}

type SkillCriticality struct {
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Weight    float64   `gorm:"column:weight;not null"`
	Status    string    `gorm:"column:status;default:active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SkillCriticality) TableName() string {
	return "skill_criticalities"
}

type Skill struct {
	ID            string    `gorm:"primaryKey"`
	Name          string    `gorm:"column:name;uniqueIndex;not null"`
	Description   string    `gorm:"column:description"`
	CategoryID    string    `gorm:"column:category_id;not null"`
	CriticalityID string    `gorm:"column:criticality_id;not null"`
	Status        string    `gorm:"column:status;default:active"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Skill) TableName() string {
	return "skills"
}

type SkillBenchmark struct {
	ID                 string     `gorm:"primaryKey"`
	SkillID            string     `gorm:"column:skill_id;index;not null"`
	Score              int        `gorm:"column:score;not null"`
	EffectiveStartDate time.Time  `gorm:"column:effective_start_date;not null"`
	EffectiveEndDate   *time.Time `gorm:"column:effective_end_date"`
	CreatedBy          string     `gorm:"column:created_by"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (SkillBenchmark) TableName() string {
	return "skill_benchmarks"
}
