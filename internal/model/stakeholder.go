package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stakeholder category constants
const (
	StakeholderEmployee  = "employee"
	StakeholderSupplier  = "supplier"
	StakeholderInvestor  = "investor"
	StakeholderCommunity = "community"
	StakeholderCustomer  = "customer"
	StakeholderRegulator = "regulator"
)

// Influence / interest levels used in materiality weighting
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Stakeholder is an enterprise's registered stakeholder. Influence and
// interest feed into materiality assessment weighting.
type Stakeholder struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EnterpriseID uuid.UUID      `gorm:"type:uuid;not null;index" json:"enterprise_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Category     string         `gorm:"type:varchar(30);not null;index" json:"category"`
	Organization string         `gorm:"type:varchar(255)" json:"organization"`
	Email        string         `gorm:"type:varchar(255)" json:"email"`
	Phone        string         `gorm:"type:varchar(50)" json:"phone"`
	Influence    string         `gorm:"type:varchar(10);not null;default:'medium'" json:"influence"`
	Interest     string         `gorm:"type:varchar(10);not null;default:'medium'" json:"interest"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidStakeholderCategory reports whether c is a known category.
func ValidStakeholderCategory(c string) bool {
	switch c {
	case StakeholderEmployee, StakeholderSupplier, StakeholderInvestor,
		StakeholderCommunity, StakeholderCustomer, StakeholderRegulator:
		return true
	}
	return false
}

// ValidLevel reports whether l is a known influence/interest level.
func ValidLevel(l string) bool {
	return l == LevelLow || l == LevelMedium || l == LevelHigh
}
