package postgres

import (
	"context"
	"errors"

	"github.com/skillbridge/skillbridge/internal"
	assessmentDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/assessment"
	trainingDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/training"
	"github.com/skillbridge/skillbridge/internal/skillgap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TrainingNeedRepository struct {
	db *gorm.DB
}

func NewTrainingNeedRepository(db *gorm.DB) skillgap.Repository {
	return &TrainingNeedRepository{db: db}
}

func (r *TrainingNeedRepository) GetBySourceAssessment(ctx context.Context, assessmentID string) (*skillgap.TrainingNeed, error) {
	var model trainingDatamodel.TrainingNeed
	err := r.db.WithContext(ctx).Where("source_assessment_id = ?", assessmentID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrTrainingNeedNotFound
		}
		return nil, err
	}
	return skillgap.FromDataModel(&model), nil
}

// Upsert writes the need keyed by its source assessment; replaying the same
// evaluation overwrites the row in place instead of duplicating it.
func (r *TrainingNeedRepository) Upsert(ctx context.Context, need *skillgap.TrainingNeed) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "source_assessment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"gap", "benchmark_score", "employee_score", "criticality_weight", "assessed_at",
			}),
		}).
		Create(need.ToDataModel()).Error
}

func (r *TrainingNeedRepository) DeleteBySourceAssessment(ctx context.Context, assessmentID string) error {
	return r.db.WithContext(ctx).
		Where("source_assessment_id = ?", assessmentID).
		Delete(&trainingDatamodel.TrainingNeed{}).Error
}

func (r *TrainingNeedRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*skillgap.TrainingNeed, error) {
	var models []trainingDatamodel.TrainingNeed
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toNeeds(models), nil
}

func (r *TrainingNeedRepository) ListOutstanding(ctx context.Context) ([]*skillgap.TrainingNeed, error) {
	var models []trainingDatamodel.TrainingNeed
	err := r.db.WithContext(ctx).Where("status = ?", skillgap.StatusTrainingRequired).Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toNeeds(models), nil
}

func (r *TrainingNeedRepository) UpdateStatusByEmployeeAndSkill(ctx context.Context, employeeID, skillID, fromStatus, toStatus string) error {
	return r.db.WithContext(ctx).
		Model(&trainingDatamodel.TrainingNeed{}).
		Where("employee_id = ? AND skill_id = ? AND status = ?", employeeID, skillID, fromStatus).
		Update("status", toStatus).Error
}

func (r *TrainingNeedRepository) SetAssessmentTNIFlag(ctx context.Context, assessmentID string, flag bool) error {
	return r.db.WithContext(ctx).
		Model(&assessmentDatamodel.Assessment{}).
		Where("id = ?", assessmentID).
		Update("tni_flag", flag).Error
}

func (r *TrainingNeedRepository) ListAssessmentIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&assessmentDatamodel.Assessment{}).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func toNeeds(models []trainingDatamodel.TrainingNeed) []*skillgap.TrainingNeed {
	needs := make([]*skillgap.TrainingNeed, 0, len(models))
	for i := range models {
		needs = append(needs, skillgap.FromDataModel(&models[i]))
	}
	return needs
}
