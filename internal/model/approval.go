package model

import (
	"time"

	"github.com/google/uuid"
)

// Approval status constants.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Data types reviewable through the approval workflow.
const (
	DataTypeSDGProgress = "sdg_progress"
	DataTypeGHGEmission = "ghg_emission"
)

// ApprovalRequest ties a submitted ESG record to a reviewer. At most one
// pending request may exist per (data_id, data_type); a partial unique
// index backs this (see database extra migrations). pending is the only
// non-terminal state: once approved or rejected the row never changes.
type ApprovalRequest struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DataID       uuid.UUID   `gorm:"type:uuid;not null;index:idx_approval_data" json:"data_id"`
	DataType     string      `gorm:"type:varchar(30);not null;index:idx_approval_data" json:"data_type"`
	EnterpriseID uuid.UUID   `gorm:"type:uuid;not null;index" json:"enterprise_id"`
	SubmittedBy  uuid.UUID   `gorm:"type:uuid;not null;index" json:"submitted_by"`
	Submitter    *User       `gorm:"foreignKey:SubmittedBy" json:"submitter,omitempty"`
	ApproverID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"approver_id"`
	Approver     *User       `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
	Status       string      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Comments     string      `gorm:"type:text" json:"comments"`
	SubmittedAt  time.Time   `gorm:"not null" json:"submitted_at"`
	RespondedAt  *time.Time  `json:"responded_at"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// ValidDataType reports whether t names a submittable record type.
func ValidDataType(t string) bool {
	return t == DataTypeSDGProgress || t == DataTypeGHGEmission
}
