package database

import (
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.Enterprise{},
		&model.User{},
		&model.RefreshToken{},
		&model.SDGProgress{},
		&model.GHGEmission{},
		&model.ApprovalRequest{},
		&model.Stakeholder{},
		&model.ComplianceIssue{},
		&model.EHSAudit{},
		&model.AuditChecklistItem{},
		&model.MaterialityAssessment{},
		&model.MaterialityTopic{},
		&model.MaterialityRating{},
		&model.ActivityLog{},
	)
	if err != nil {
		logger.Log.Sugar().Warnf("Failed to auto-migrate models: %v", err)
	}

	if err := runExtraMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// runExtraMigrations applies constraints AutoMigrate cannot express.
// The partial unique index backs the workflow invariant that at most one
// pending approval request exists per submitted record.
func runExtraMigrations(db *gorm.DB) error {
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_pending_approval_per_record
		ON approval_requests (data_id, data_type)
		WHERE status = 'pending'
	`).Error
}
