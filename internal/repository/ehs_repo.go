package repository

import (
	"context"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EHSAuditRepository defines data access for EHS audits and their checklists
type EHSAuditRepository interface {
	Create(ctx context.Context, audit *model.EHSAudit) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EHSAudit, error)
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.EHSAudit, error)
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, status string, page, limit int) ([]model.EHSAudit, int64, error)
	ListByAuditor(ctx context.Context, auditorID uuid.UUID, status string, page, limit int) ([]model.EHSAudit, int64, error)
	Update(ctx context.Context, audit *model.EHSAudit) error
	UpdateItem(ctx context.Context, item *model.AuditChecklistItem) error
}

type ehsAuditRepository struct {
	db *gorm.DB
}

func NewEHSAuditRepository(db *gorm.DB) EHSAuditRepository {
	return &ehsAuditRepository{db: db}
}

func (r *ehsAuditRepository) Create(ctx context.Context, audit *model.EHSAudit) error {
	return GetDB(ctx, r.db).Create(audit).Error
}

func (r *ehsAuditRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.EHSAudit, error) {
	var audit model.EHSAudit
	if err := GetDB(ctx, r.db).Preload("Auditor").First(&audit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &audit, nil
}

func (r *ehsAuditRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.EHSAudit, error) {
	var audit model.EHSAudit
	if err := GetDB(ctx, r.db).Preload("Auditor").Preload("Items").First(&audit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &audit, nil
}

func (r *ehsAuditRepository) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, status string, page, limit int) ([]model.EHSAudit, int64, error) {
	return r.list(ctx, "enterprise_id", enterpriseID, status, page, limit)
}

func (r *ehsAuditRepository) ListByAuditor(ctx context.Context, auditorID uuid.UUID, status string, page, limit int) ([]model.EHSAudit, int64, error) {
	return r.list(ctx, "auditor_id", auditorID, status, page, limit)
}

func (r *ehsAuditRepository) list(ctx context.Context, column string, id uuid.UUID, status string, page, limit int) ([]model.EHSAudit, int64, error) {
	var audits []model.EHSAudit
	var total int64

	query := GetDB(ctx, r.db).Model(&model.EHSAudit{}).Where(column+" = ?", id)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Auditor").Order("scheduled_date").Offset(offset).Limit(limit).Find(&audits).Error; err != nil {
		return nil, 0, err
	}

	return audits, total, nil
}

func (r *ehsAuditRepository) Update(ctx context.Context, audit *model.EHSAudit) error {
	return GetDB(ctx, r.db).Save(audit).Error
}

func (r *ehsAuditRepository) UpdateItem(ctx context.Context, item *model.AuditChecklistItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}
