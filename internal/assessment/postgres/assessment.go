package postgres

import (
	"context"
	"errors"

	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/assessment"
	assessmentDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/assessment"
	"gorm.io/gorm"
)

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) assessment.Repository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) GetByID(ctx context.Context, id string) (*assessment.Assessment, error) {
	var model assessmentDatamodel.Assessment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAssessmentNotFound
		}
		return nil, err
	}
	return assessment.FromDataModel(&model), nil
}

func (r *AssessmentRepository) GetByEmployeeAndCycle(ctx context.Context, employeeID, cycleID string) ([]*assessment.Assessment, error) {
	query := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if cycleID != "" {
		query = query.Where("cycle_id = ?", cycleID)
	}

	var models []assessmentDatamodel.Assessment
	if err := query.Order("assessment_timestamp").Find(&models).Error; err != nil {
		return nil, err
	}

	assessments := make([]*assessment.Assessment, 0, len(models))
	for i := range models {
		assessments = append(assessments, assessment.FromDataModel(&models[i]))
	}
	return assessments, nil
}

func (r *AssessmentRepository) GetByEmployeeAndSkill(ctx context.Context, employeeID, skillID, cycleID string) (*assessment.Assessment, error) {
	var model assessmentDatamodel.Assessment
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND skill_id = ? AND cycle_id = ?", employeeID, skillID, cycleID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAssessmentNotFound
		}
		return nil, err
	}
	return assessment.FromDataModel(&model), nil
}

func (r *AssessmentRepository) Create(ctx context.Context, a *assessment.Assessment) error {
	return r.db.WithContext(ctx).Create(a.ToDataModel()).Error
}

func (r *AssessmentRepository) Update(ctx context.Context, a *assessment.Assessment) error {
	return r.db.WithContext(ctx).
		Model(&assessmentDatamodel.Assessment{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"score":    a.Score,
			"comments": a.Comments,
		}).Error
}

func (r *AssessmentRepository) SetLocked(ctx context.Context, id string, locked bool) error {
	return r.db.WithContext(ctx).
		Model(&assessmentDatamodel.Assessment{}).
		Where("id = ?", id).
		Update("is_locked", locked).Error
}

func (r *AssessmentRepository) GetCycleByID(ctx context.Context, id string) (*assessment.Cycle, error) {
	var model assessmentDatamodel.AssessmentCycle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCycleNotFound
		}
		return nil, err
	}
	return assessment.CycleFromDataModel(&model), nil
}

func (r *AssessmentRepository) GetActiveCycle(ctx context.Context) (*assessment.Cycle, error) {
	var model assessmentDatamodel.AssessmentCycle
	err := r.db.WithContext(ctx).Where("is_active_cycle = ?", true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCycleNotFound
		}
		return nil, err
	}
	return assessment.CycleFromDataModel(&model), nil
}

func (r *AssessmentRepository) ListCycles(ctx context.Context) ([]*assessment.Cycle, error) {
	var models []assessmentDatamodel.AssessmentCycle
	if err := r.db.WithContext(ctx).Order("start_date").Find(&models).Error; err != nil {
		return nil, err
	}

	cycles := make([]*assessment.Cycle, 0, len(models))
	for i := range models {
		cycles = append(cycles, assessment.CycleFromDataModel(&models[i]))
	}
	return cycles, nil
}

func (r *AssessmentRepository) CreateCycle(ctx context.Context, c *assessment.Cycle) error {
	model := assessmentDatamodel.AssessmentCycle{
		ID:            c.ID,
		Name:          c.Name,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		IsActiveCycle: c.IsActiveCycle,
		Status:        c.Status,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// ActivateCycle deactivates whichever cycle is currently active and activates
// the target inside one transaction, keeping at most one active cycle.
func (r *AssessmentRepository) ActivateCycle(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&assessmentDatamodel.AssessmentCycle{}).
			Where("is_active_cycle = ?", true).
			Update("is_active_cycle", false).Error
		if err != nil {
			return err
		}

		return tx.Model(&assessmentDatamodel.AssessmentCycle{}).
			Where("id = ?", id).
			Update("is_active_cycle", true).Error
	})
}
