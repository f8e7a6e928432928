package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Compliance severity bands. Ordering matters for dashboard thresholding.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Compliance issue status constants
const (
	ComplianceOpen       = "open"
	ComplianceInProgress = "in_progress"
	ComplianceResolved   = "resolved"
)

// ComplianceIssue tracks a regulatory or framework compliance gap for an enterprise.
type ComplianceIssue struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EnterpriseID uuid.UUID      `gorm:"type:uuid;not null;index" json:"enterprise_id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Framework    string         `gorm:"type:varchar(100)" json:"framework"` // e.g. GRI, CSRD, BRSR
	Severity     string         `gorm:"type:varchar(20);not null;index" json:"severity"`
	Status       string         `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	DueDate      *time.Time     `json:"due_date"`
	ResolvedAt   *time.Time     `json:"resolved_at"`
	CreatedBy    uuid.UUID      `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidSeverity reports whether s is a known severity band.
func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
