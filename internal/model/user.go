package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants. The set is fixed; there is no runtime role administration.
const (
	RoleFandoroAdmin = "fandoro_admin"
	RoleEnterprise   = "enterprise"
	RoleAuditor      = "auditor"
	RolePartner      = "partner"
	RoleEmployee     = "employee"
	RoleSupplier     = "supplier"
	RoleInvestor     = "investor"
)

// AllRoles lists every recognized role.
var AllRoles = []string{
	RoleFandoroAdmin,
	RoleEnterprise,
	RoleAuditor,
	RolePartner,
	RoleEmployee,
	RoleSupplier,
	RoleInvestor,
}

// Enterprise is the tenant entity. Every ESG record belongs to exactly one enterprise.
type Enterprise struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Industry  string         `gorm:"type:varchar(100)" json:"industry"`
	Country   string         `gorm:"type:varchar(100)" json:"country"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// User represents an authenticated platform user scoped to a role and,
// for non-admin roles, an enterprise.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone        string         `gorm:"type:varchar(20)" json:"phone"`
	Password     string         `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	Role         string         `gorm:"type:varchar(50);not null;index" json:"role"`
	EnterpriseID *uuid.UUID     `gorm:"type:uuid;index" json:"enterprise_id"`
	Enterprise   *Enterprise    `gorm:"foreignKey:EnterpriseID" json:"enterprise,omitempty"`
	PartnerType  string         `gorm:"type:varchar(50)" json:"partner_type,omitempty"` // only for role=partner
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ValidRole reports whether role is one of the recognized role names.
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
