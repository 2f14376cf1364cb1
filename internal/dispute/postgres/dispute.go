package postgres

import (
	"context"
	"errors"

	"github.com/skillbridge/skillbridge/internal"
	disputeDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/dispute"
	"github.com/skillbridge/skillbridge/internal/dispute"
	"gorm.io/gorm"
)

type DisputeRepository struct {
	db *gorm.DB
}

func NewDisputeRepository(db *gorm.DB) dispute.Repository {
	return &DisputeRepository{db: db}
}

// Create writes the dispute and its skill line items in one transaction.
func (r *DisputeRepository) Create(ctx context.Context, d *dispute.Dispute) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := disputeDatamodel.Dispute{
			ID:          d.ID,
			EmployeeID:  d.EmployeeID,
			CycleID:     d.CycleID,
			Reason:      d.Reason,
			Status:      d.Status,
			SubmittedAt: d.SubmittedAt,
		}
		if err := tx.Create(&model).Error; err != nil {
			return err
		}

		for i, s := range d.DisputedSkills {
			skillModel := disputeDatamodel.DisputeSkill{
				DisputeID:     d.ID,
				SkillID:       s.SkillID,
				OriginalScore: s.OriginalScore,
				NewScore:      s.NewScore,
				Reason:        s.Reason,
				Position:      i,
			}
			if err := tx.Create(&skillModel).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *DisputeRepository) GetByID(ctx context.Context, id string) (*dispute.Dispute, error) {
	var model disputeDatamodel.Dispute
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDisputeNotFound
		}
		return nil, err
	}

	skills, err := r.skillsFor(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	return dispute.FromDataModel(&model, skills), nil
}

func (r *DisputeRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*dispute.Dispute, error) {
	var models []disputeDatamodel.Dispute
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("submitted_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.expand(ctx, models)
}

func (r *DisputeRepository) ListByStatus(ctx context.Context, status string) ([]*dispute.Dispute, error) {
	var models []disputeDatamodel.Dispute
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("submitted_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.expand(ctx, models)
}

// UpdateResolution is the serialization point for concurrent resolutions:
// the write is guarded by status = open, so exactly one caller flips the
// dispute and everyone else sees zero rows affected.
func (r *DisputeRepository) UpdateResolution(ctx context.Context, disputeID string, res dispute.Resolution) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&disputeDatamodel.Dispute{}).
		Where("id = ? AND status = ?", disputeID, dispute.StatusOpen).
		Updates(map[string]interface{}{
			"status":               res.Status,
			"resolved_by_admin_id": res.AdminID,
			"resolution_action":    res.Action,
			"resolution_notes":     res.Notes,
			"rejection_reason":     res.RejectionReason,
			"resolution_timestamp": res.Timestamp,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *DisputeRepository) SetSkillNewScore(ctx context.Context, disputeID, skillID string, newScore int) error {
	return r.db.WithContext(ctx).
		Model(&disputeDatamodel.DisputeSkill{}).
		Where("dispute_id = ? AND skill_id = ?", disputeID, skillID).
		Update("new_score", newScore).Error
}

// AppendAudit only ever inserts; audit rows are never updated or deleted.
func (r *DisputeRepository) AppendAudit(ctx context.Context, entry *dispute.AuditEntry) error {
	model := disputeDatamodel.AuditEntry{
		DisputeID: entry.DisputeID,
		Action:    entry.Action,
		ActorID:   entry.ActorID,
		ActorType: entry.ActorType,
		Timestamp: entry.Timestamp,
		Details:   entry.Details,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *DisputeRepository) GetAuditTrail(ctx context.Context, disputeID string) ([]*dispute.AuditEntry, error) {
	var models []disputeDatamodel.AuditEntry
	err := r.db.WithContext(ctx).
		Where("dispute_id = ?", disputeID).
		Order("timestamp, id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	trail := make([]*dispute.AuditEntry, 0, len(models))
	for i := range models {
		trail = append(trail, dispute.AuditEntryFromDataModel(&models[i]))
	}
	return trail, nil
}

func (r *DisputeRepository) skillsFor(ctx context.Context, disputeID string) ([]disputeDatamodel.DisputeSkill, error) {
	var skills []disputeDatamodel.DisputeSkill
	err := r.db.WithContext(ctx).
		Where("dispute_id = ?", disputeID).
		Order("position").
		Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *DisputeRepository) expand(ctx context.Context, models []disputeDatamodel.Dispute) ([]*dispute.Dispute, error) {
	disputes := make([]*dispute.Dispute, 0, len(models))
	for i := range models {
		skills, err := r.skillsFor(ctx, models[i].ID)
		if err != nil {
			return nil, err
		}
		disputes = append(disputes, dispute.FromDataModel(&models[i], skills))
	}
	return disputes, nil
}
