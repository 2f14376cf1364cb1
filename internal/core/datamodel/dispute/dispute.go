package dispute

import "time"

type Dispute struct {
	ID                  string     `gorm:"primaryKey"`
	EmployeeID          string     `gorm:"column:employee_id;index;not null"`
	CycleID             string     `gorm:"column:cycle_id;index;not null"`
	Reason              string     `gorm:"column:reason;not null"`
	Status              string     `gorm:"column:status;default:open"`
	ResolvedByAdminID   *string    `gorm:"column:resolved_by_admin_id"`
	ResolutionAction    *string    `gorm:"column:resolution_action"`
	ResolutionNotes     *string    `gorm:"column:resolution_notes"`
	RejectionReason     *string    `gorm:"column:rejection_reason"`
	ResolutionTimestamp *time.Time `gorm:"column:resolution_timestamp"`
	SubmittedAt         time.Time  `gorm:"column:submitted_at;not null"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Dispute) TableName() string {
	return "disputes"
}

// DisputeSkill is one contested line item; Position preserves submission order.
type DisputeSkill struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	DisputeID     string `gorm:"column:dispute_id;index;not null"`
	SkillID       string `gorm:"column:skill_id;not null"`
	OriginalScore int    `gorm:"column:original_score;not null"`
	NewScore      *int   `gorm:"column:new_score"`
	Reason        string `gorm:"column:reason"`
	Position      int    `gorm:"column:position;not null"`
}

func (DisputeSkill) TableName() string {
	return "dispute_skills"
}

// AuditEntry rows are append-only: the repository never updates or deletes
// them. Ordering is (timestamp, id) for deterministic replay.
type AuditEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	DisputeID string    `gorm:"column:dispute_id;index;not null"`
	Action    string    `gorm:"column:action;not null"`
	ActorID   string    `gorm:"column:actor_id;not null"`
	ActorType string    `gorm:"column:actor_type;not null"`
	Timestamp time.Time `gorm:"column:timestamp;not null"`
	Details   string    `gorm:"column:details"`
}

func (AuditEntry) TableName() string {
	return "dispute_audit_entries"
}
