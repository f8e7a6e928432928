package model

import (
	"time"

	"github.com/google/uuid"
)

// Activity log actions for critical state changes
const (
	ActionCreateRecord      = "CREATE_RECORD"
	ActionUpdateRecord      = "UPDATE_RECORD"
	ActionDeleteRecord      = "DELETE_RECORD"
	ActionSubmitForReview   = "SUBMIT_FOR_REVIEW"
	ActionApproveSubmission = "APPROVE_SUBMISSION"
	ActionRejectSubmission  = "REJECT_SUBMISSION"
	ActionScheduleAudit     = "SCHEDULE_AUDIT"
	ActionCompleteAudit     = "COMPLETE_AUDIT"
)

// ActivityLog tracks Who, What, and When for critical system changes
type ActivityLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nullable for system actions
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // serialized JSON payload
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
