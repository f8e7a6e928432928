package repository

import (
	"context"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplianceRepository defines data access for compliance issues
type ComplianceRepository interface {
	Create(ctx context.Context, issue *model.ComplianceIssue) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ComplianceIssue, error)
	List(ctx context.Context, enterpriseID uuid.UUID, severity, status string, page, limit int) ([]model.ComplianceIssue, int64, error)
	CountBySeverity(ctx context.Context, enterpriseID uuid.UUID) (map[string]int64, error)
	Update(ctx context.Context, issue *model.ComplianceIssue) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type complianceRepository struct {
	db *gorm.DB
}

func NewComplianceRepository(db *gorm.DB) ComplianceRepository {
	return &complianceRepository{db: db}
}

func (r *complianceRepository) Create(ctx context.Context, issue *model.ComplianceIssue) error {
	return GetDB(ctx, r.db).Create(issue).Error
}

func (r *complianceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ComplianceIssue, error) {
	var issue model.ComplianceIssue
	if err := GetDB(ctx, r.db).First(&issue, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *complianceRepository) List(ctx context.Context, enterpriseID uuid.UUID, severity, status string, page, limit int) ([]model.ComplianceIssue, int64, error) {
	var issues []model.ComplianceIssue
	var total int64

	query := GetDB(ctx, r.db).Model(&model.ComplianceIssue{}).Where("enterprise_id = ?", enterpriseID)
	if severity != "" {
		query = query.Where("severity = ?", severity)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("due_date NULLS LAST, created_at DESC").Offset(offset).Limit(limit).Find(&issues).Error; err != nil {
		return nil, 0, err
	}

	return issues, total, nil
}

func (r *complianceRepository) CountBySeverity(ctx context.Context, enterpriseID uuid.UUID) (map[string]int64, error) {
	type row struct {
		Severity string
		Count    int64
	}
	var rows []row
	err := GetDB(ctx, r.db).Model(&model.ComplianceIssue{}).
		Select("severity, COUNT(*) as count").
		Where("enterprise_id = ? AND status != ?", enterpriseID, model.ComplianceResolved).
		Group("severity").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Severity] = r.Count
	}
	return counts, nil
}

func (r *complianceRepository) Update(ctx context.Context, issue *model.ComplianceIssue) error {
	return GetDB(ctx, r.db).Save(issue).Error
}

func (r *complianceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.ComplianceIssue{}).Error
}
