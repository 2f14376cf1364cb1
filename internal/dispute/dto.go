package dispute

import "time"

type SubmitDisputeRequest struct {
	CycleID        string               `json:"cycle_id"`
	Reason         string               `json:"reason"`
	DisputedSkills []SubmitSkillRequest `json:"disputed_skills"`
}

type SubmitSkillRequest struct {
	SkillID string `json:"skill_id"`
	Reason  string `json:"reason,omitempty"`
}

type ResolveDisputeRequest struct {
	Action          string         `json:"action"`
	NewScores       map[string]int `json:"new_scores,omitempty"`
	ResolutionNotes string         `json:"resolution_notes,omitempty"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
}

type DisputedSkillResponse struct {
	SkillID       string `json:"skill_id"`
	OriginalScore int    `json:"original_score"`
	NewScore      *int   `json:"new_score,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

type DisputeResponse struct {
	ID                  string                  `json:"id"`
	EmployeeID          string                  `json:"employee_id"`
	CycleID             string                  `json:"cycle_id"`
	Reason              string                  `json:"reason"`
	Status              string                  `json:"status"`
	DisputedSkills      []DisputedSkillResponse `json:"disputed_skills"`
	ResolvedByAdminID   *string                 `json:"resolved_by_admin_id,omitempty"`
	ResolutionAction    *string                 `json:"resolution_action,omitempty"`
	ResolutionNotes     *string                 `json:"resolution_notes,omitempty"`
	RejectionReason     *string                 `json:"rejection_reason,omitempty"`
	ResolutionTimestamp *time.Time              `json:"resolution_timestamp,omitempty"`
	SubmittedAt         time.Time               `json:"submitted_at"`
}

type DisputesResponse struct {
	Disputes []DisputeResponse `json:"disputes"`
}

type AuditEntryResponse struct {
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	ActorType string    `json:"actor_type"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

type AuditTrailResponse struct {
	DisputeID  string               `json:"dispute_id"`
	AuditTrail []AuditEntryResponse `json:"audit_trail"`
}

func (d *Dispute) ToResponse() DisputeResponse {
	skills := make([]DisputedSkillResponse, 0, len(d.DisputedSkills))
	for _, s := range d.DisputedSkills {
		skills = append(skills, DisputedSkillResponse{
			SkillID:       s.SkillID,
			OriginalScore: s.OriginalScore,
			NewScore:      s.NewScore,
			Reason:        s.Reason,
		})
	}

	return DisputeResponse{
		ID:                  d.ID,
		EmployeeID:          d.EmployeeID,
		CycleID:             d.CycleID,
		Reason:              d.Reason,
		Status:              d.Status,
		DisputedSkills:      skills,
		ResolvedByAdminID:   d.ResolvedByAdminID,
		ResolutionAction:    d.ResolutionAction,
		ResolutionNotes:     d.ResolutionNotes,
		RejectionReason:     d.RejectionReason,
		ResolutionTimestamp: d.ResolutionTimestamp,
		SubmittedAt:         d.SubmittedAt,
	}
}

func (e *AuditEntry) ToResponse() AuditEntryResponse {
	return AuditEntryResponse{
		Action:    e.Action,
		ActorID:   e.ActorID,
		ActorType: e.ActorType,
		Timestamp: e.Timestamp,
		Details:   e.Details,
	}
}
