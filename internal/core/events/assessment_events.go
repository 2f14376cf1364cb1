package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeDisputeResolved        = "dispute.resolved"
	EventTypeTrainingNeedIdentified = "trainingneed.identified"
	EventTypeTrainingNeedCleared    = "trainingneed.cleared"
)

// DisputeResolvedEvent is published after a dispute reaches a terminal state.
type DisputeResolvedEvent struct {
	BaseEvent
	DisputeID  string
	EmployeeID string
	AdminID    string
	Action     string
}

func NewDisputeResolvedEvent(disputeID, employeeID, adminID, action string) *DisputeResolvedEvent {
	return &DisputeResolvedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeDisputeResolved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"dispute_id":  disputeID,
				"employee_id": employeeID,
				"admin_id":    adminID,
				"action":      action,
			},
		},
		DisputeID:  disputeID,
		EmployeeID: employeeID,
		AdminID:    adminID,
		Action:     action,
	}
}

// TrainingNeedIdentifiedEvent is published when gap evaluation flags a skill.
type TrainingNeedIdentifiedEvent struct {
	BaseEvent
	TrainingNeedID string
	EmployeeID     string
	SkillID        string
	Gap            int
}

func NewTrainingNeedIdentifiedEvent(needID, employeeID, skillID string, gap int) *TrainingNeedIdentifiedEvent {
	return &TrainingNeedIdentifiedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeTrainingNeedIdentified,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"training_need_id": needID,
				"employee_id":      employeeID,
				"skill_id":         skillID,
				"gap":              gap,
			},
		},
		TrainingNeedID: needID,
		EmployeeID:     employeeID,
		SkillID:        skillID,
		Gap:            gap,
	}
}

// TrainingNeedClearedEvent is published when a recompute removes a need
// because the gap closed.
type TrainingNeedClearedEvent struct {
	BaseEvent
	EmployeeID string
	SkillID    string
}

func NewTrainingNeedClearedEvent(employeeID, skillID string) *TrainingNeedClearedEvent {
	return &TrainingNeedClearedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeTrainingNeedCleared,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
				"skill_id":    skillID,
			},
		},
		EmployeeID: employeeID,
		SkillID:    skillID,
	}
}
