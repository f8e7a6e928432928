package repository

import (
	"context"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApprovalRepository defines data access for approval requests
type ApprovalRepository interface {
	Create(ctx context.Context, req *model.ApprovalRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error)
	// FindByIDForUpdate locks the row for the duration of the enclosing
	// transaction so two reviewers cannot race on the same decision.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error)
	FindPending(ctx context.Context, dataID uuid.UUID, dataType string) (*model.ApprovalRequest, error)
	ListByApprover(ctx context.Context, approverID uuid.UUID, status string, page, limit int) ([]model.ApprovalRequest, int64, error)
	ListBySubmitter(ctx context.Context, submitterID uuid.UUID, status string, page, limit int) ([]model.ApprovalRequest, int64, error)
	Update(ctx context.Context, req *model.ApprovalRequest) error
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Create(ctx context.Context, req *model.ApprovalRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *approvalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error) {
	var req model.ApprovalRequest
	if err := GetDB(ctx, r.db).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *approvalRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error) {
	var req model.ApprovalRequest
	if err := GetDB(ctx, r.db).Preload("Submitter").Preload("Approver").First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *approvalRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error) {
	var req model.ApprovalRequest
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *approvalRepository) FindPending(ctx context.Context, dataID uuid.UUID, dataType string) (*model.ApprovalRequest, error) {
	var req model.ApprovalRequest
	err := GetDB(ctx, r.db).
		Where("data_id = ? AND data_type = ? AND status = ?", dataID, dataType, model.ApprovalPending).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *approvalRepository) ListByApprover(ctx context.Context, approverID uuid.UUID, status string, page, limit int) ([]model.ApprovalRequest, int64, error) {
	return r.list(ctx, "approver_id", approverID, status, page, limit)
}

func (r *approvalRepository) ListBySubmitter(ctx context.Context, submitterID uuid.UUID, status string, page, limit int) ([]model.ApprovalRequest, int64, error) {
	return r.list(ctx, "submitted_by", submitterID, status, page, limit)
}

func (r *approvalRepository) list(ctx context.Context, column string, userID uuid.UUID, status string, page, limit int) ([]model.ApprovalRequest, int64, error) {
	var requests []model.ApprovalRequest
	var total int64

	query := GetDB(ctx, r.db).Model(&model.ApprovalRequest{}).Where(column+" = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Submitter").Preload("Approver").
		Order("submitted_at DESC").Offset(offset).Limit(limit).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *approvalRepository) Update(ctx context.Context, req *model.ApprovalRequest) error {
	return GetDB(ctx, r.db).Save(req).Error
}
