package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/skillbridge/skillbridge/internal"
	skillDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/skill"
	"github.com/skillbridge/skillbridge/internal/skill"
	"gorm.io/gorm"
)

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) skill.Repository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) GetAllSkills(ctx context.Context) ([]*skill.Skill, error) {
	var models []skillDatamodel.Skill
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}

	skills := make([]*skill.Skill, 0, len(models))
	for i := range models {
		skills = append(skills, skill.FromDataModel(&models[i]))
	}
	return skills, nil
}

func (r *SkillRepository) GetSkillByID(ctx context.Context, id string) (*skill.Skill, error) {
	var model skillDatamodel.Skill
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrSkillNotFound
		}
		return nil, err
	}
	return skill.FromDataModel(&model), nil
}

func (r *SkillRepository) GetCriticalityByID(ctx context.Context, id string) (*skill.Criticality, error) {
	var model skillDatamodel.SkillCriticality
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrSkillNotFound
		}
		return nil, err
	}
	return skill.CriticalityFromDataModel(&model), nil
}

func (r *SkillRepository) GetCurrentBenchmark(ctx context.Context, skillID string) (*skill.Benchmark, error) {
	var model skillDatamodel.SkillBenchmark
	err := r.db.WithContext(ctx).
		Where("skill_id = ? AND effective_end_date IS NULL", skillID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrBenchmarkNotFound
		}
		return nil, err
	}
	return skill.BenchmarkFromDataModel(&model), nil
}

// ReplaceBenchmark closes the open benchmark row and inserts the new one in
// a single transaction so the skill never has zero or two current rows.
func (r *SkillRepository) ReplaceBenchmark(ctx context.Context, skillID string, b *skill.Benchmark) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		err := tx.Model(&skillDatamodel.SkillBenchmark{}).
			Where("skill_id = ? AND effective_end_date IS NULL", skillID).
			Update("effective_end_date", now).Error
		if err != nil {
			return err
		}

		if b.ID == "" {
			b.ID = uuid.NewString()
		}

		model := skillDatamodel.SkillBenchmark{
			ID:                 b.ID,
			SkillID:            skillID,
			Score:              b.Score,
			EffectiveStartDate: b.EffectiveStartDate,
			CreatedBy:          b.CreatedBy,
		}
		return tx.Create(&model).Error
	})
}
