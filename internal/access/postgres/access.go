package postgres

import (
	"context"

	"github.com/skillbridge/skillbridge/internal/access"
	userDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/user"
	"github.com/skillbridge/skillbridge/internal/identity"
	"gorm.io/gorm"
)

// ReporteeRepository implements the access.ReporteeCounter interface over the
// users table.
type ReporteeRepository struct {
	db *gorm.DB
}

func NewReporteeRepository(db *gorm.DB) access.ReporteeCounter {
	return &ReporteeRepository{db: db}
}

func (r *ReporteeRepository) CountActiveReportees(ctx context.Context, employeeID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).
		Where("team_lead_id = ? AND status = ? AND employee_id <> ?",
			employeeID, identity.StatusActive, employeeID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
