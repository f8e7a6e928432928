package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EHS audit status constants
const (
	AuditScheduled  = "scheduled"
	AuditInProgress = "in_progress"
	AuditCompleted  = "completed"
)

// EHS audit type constants
const (
	AuditTypeEnvironmental = "environmental"
	AuditTypeHealthSafety  = "health_safety"
	AuditTypeFire          = "fire_safety"
	AuditTypeCombined      = "combined"
)

// EHSAudit is a scheduled environmental/health/safety audit at an
// enterprise site, carried out by an auditor-role user against a
// scored checklist.
type EHSAudit struct {
	ID            uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EnterpriseID  uuid.UUID            `gorm:"type:uuid;not null;index" json:"enterprise_id"`
	Site          string               `gorm:"type:varchar(255);not null" json:"site"`
	AuditType     string               `gorm:"type:varchar(30);not null" json:"audit_type"`
	ScheduledDate time.Time            `gorm:"not null;index" json:"scheduled_date"`
	AuditorID     uuid.UUID            `gorm:"type:uuid;not null;index" json:"auditor_id"`
	Auditor       *User                `gorm:"foreignKey:AuditorID" json:"auditor,omitempty"`
	Status        string               `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	OverallScore  *decimal.Decimal     `gorm:"type:numeric(5,2)" json:"overall_score"` // set on completion
	CompletedAt   *time.Time           `json:"completed_at"`
	Items         []AuditChecklistItem `gorm:"foreignKey:AuditID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt     time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt       `gorm:"index" json:"-"`
}

// AuditChecklistItem is one scored question of an EHS audit questionnaire.
// Score ranges 0 (non-compliant) to 5 (fully compliant).
type AuditChecklistItem struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AuditID  uuid.UUID `gorm:"type:uuid;not null;index" json:"audit_id"`
	Question string    `gorm:"type:text;not null" json:"question"`
	Response string    `gorm:"type:text" json:"response"`
	Score    *int      `json:"score"` // nil until answered
}

// ValidAuditType reports whether t is a known audit type.
func ValidAuditType(t string) bool {
	switch t {
	case AuditTypeEnvironmental, AuditTypeHealthSafety, AuditTypeFire, AuditTypeCombined:
		return true
	}
	return false
}
