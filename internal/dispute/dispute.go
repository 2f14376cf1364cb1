package dispute

import (
	"time"

	disputeDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/dispute"
)

const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
	StatusRejected = "rejected"
)

// Resolution actions an administrator may take on an open dispute.
const (
	ActionEditRating     = "editRating"
	ActionUpholdOriginal = "upholdOriginal"
	ActionReject         = "reject"
)

// Audit actor types.
const (
	ActorTypeEmployee = "employee"
	ActorTypeAdmin    = "systemAdmin"
)

// Audit actions.
const (
	AuditActionSubmitted = "submitted"
	AuditActionResolved  = "resolved"
	AuditActionRejected  = "rejected"
)

// Dispute is an employee's challenge of one or more locked assessment scores
// in a cycle. It starts open and ends resolved or rejected; terminal states
// never transition again.
type Dispute struct {
	ID                  string         `json:"id"`
	EmployeeID          string         `json:"employee_id"`
	CycleID             string         `json:"cycle_id"`
	Reason              string         `json:"reason"`
	Status              string         `json:"status"`
	DisputedSkills      []DisputedSkill `json:"disputed_skills"`
	ResolvedByAdminID   *string        `json:"resolved_by_admin_id,omitempty"`
	ResolutionAction    *string        `json:"resolution_action,omitempty"`
	ResolutionNotes     *string        `json:"resolution_notes,omitempty"`
	RejectionReason     *string        `json:"rejection_reason,omitempty"`
	ResolutionTimestamp *time.Time     `json:"resolution_timestamp,omitempty"`
	SubmittedAt         time.Time      `json:"submitted_at"`
}

func (d *Dispute) IsOpen() bool {
	return d.Status == StatusOpen
}

func (d *Dispute) IsTerminal() bool {
	return d.Status == StatusResolved || d.Status == StatusRejected
}

// DisputedSkill is one contested line item. NewScore is only set when the
// resolution action was editRating.
type DisputedSkill struct {
	SkillID       string `json:"skill_id"`
	OriginalScore int    `json:"original_score"`
	NewScore      *int   `json:"new_score,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// AuditEntry is one row of the dispute's append-only history.
type AuditEntry struct {
	ID        int64     `json:"id"`
	DisputeID string    `json:"dispute_id"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	ActorType string    `json:"actor_type"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

func FromDataModel(m *disputeDatamodel.Dispute, skills []disputeDatamodel.DisputeSkill) *Dispute {
	d := &Dispute{
		ID:                  m.ID,
		EmployeeID:          m.EmployeeID,
		CycleID:             m.CycleID,
		Reason:              m.Reason,
		Status:              m.Status,
		ResolvedByAdminID:   m.ResolvedByAdminID,
		ResolutionAction:    m.ResolutionAction,
		ResolutionNotes:     m.ResolutionNotes,
		RejectionReason:     m.RejectionReason,
		ResolutionTimestamp: m.ResolutionTimestamp,
		SubmittedAt:         m.SubmittedAt,
	}

	d.DisputedSkills = make([]DisputedSkill, 0, len(skills))
	for _, s := range skills {
		d.DisputedSkills = append(d.DisputedSkills, DisputedSkill{
			SkillID:       s.SkillID,
			OriginalScore: s.OriginalScore,
			NewScore:      s.NewScore,
			Reason:        s.Reason,
		})
	}

	return d
}

func AuditEntryFromDataModel(m *disputeDatamodel.AuditEntry) *AuditEntry {
	return &AuditEntry{
		ID:        m.ID,
		DisputeID: m.DisputeID,
		Action:    m.Action,
		ActorID:   m.ActorID,
		ActorType: m.ActorType,
		Timestamp: m.Timestamp,
		Details:   m.Details,
	}
}
