package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Record status constants shared by SDG progress and GHG emission records.
const (
	RecordStatusDraft     = "draft"
	RecordStatusSubmitted = "submitted"
	RecordStatusApproved  = "approved"
	RecordStatusRejected  = "rejected"
)

// GHG emission scopes per the GHG Protocol.
const (
	EmissionScope1 = 1 // direct emissions
	EmissionScope2 = 2 // purchased energy
	EmissionScope3 = 3 // value chain
)

// SDGProgress tracks an enterprise's progress against one of the 17 UN
// Sustainable Development Goals for a reporting period.
type SDGProgress struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EnterpriseID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"enterprise_id"`
	Enterprise         *Enterprise    `gorm:"foreignKey:EnterpriseID" json:"enterprise,omitempty"`
	SDGNumber          int            `gorm:"not null" json:"sdg_number"` // 1..17
	Description        string         `gorm:"type:text;not null" json:"description"`
	ProgressPercentage int            `gorm:"not null" json:"progress_percentage"` // 0..100
	ReportingPeriod    string         `gorm:"type:varchar(20);not null;index" json:"reporting_period"`
	Status             string         `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	CreatedBy          uuid.UUID      `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// GHGEmission records a greenhouse-gas emission entry by scope and source.
type GHGEmission struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EnterpriseID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"enterprise_id"`
	Enterprise      *Enterprise     `gorm:"foreignKey:EnterpriseID" json:"enterprise,omitempty"`
	Scope           int             `gorm:"not null;index" json:"scope"` // 1, 2 or 3
	Source          string          `gorm:"type:varchar(255);not null" json:"source"`
	Value           decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"value"`
	Unit            string          `gorm:"type:varchar(20);not null" json:"unit"` // e.g. tCO2e
	ReportingPeriod string          `gorm:"type:varchar(20);not null;index" json:"reporting_period"`
	Status          string          `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	CreatedBy       uuid.UUID       `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}
