package repository

import (
	"context"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StakeholderRepository defines data access for enterprise stakeholders
type StakeholderRepository interface {
	Create(ctx context.Context, stakeholder *model.Stakeholder) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Stakeholder, error)
	List(ctx context.Context, enterpriseID uuid.UUID, category string, page, limit int) ([]model.Stakeholder, int64, error)
	Update(ctx context.Context, stakeholder *model.Stakeholder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type stakeholderRepository struct {
	db *gorm.DB
}

func NewStakeholderRepository(db *gorm.DB) StakeholderRepository {
	return &stakeholderRepository{db: db}
}

func (r *stakeholderRepository) Create(ctx context.Context, stakeholder *model.Stakeholder) error {
	return GetDB(ctx, r.db).Create(stakeholder).Error
}

func (r *stakeholderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Stakeholder, error) {
	var stakeholder model.Stakeholder
	if err := GetDB(ctx, r.db).First(&stakeholder, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stakeholder, nil
}

func (r *stakeholderRepository) List(ctx context.Context, enterpriseID uuid.UUID, category string, page, limit int) ([]model.Stakeholder, int64, error) {
	var stakeholders []model.Stakeholder
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Stakeholder{}).Where("enterprise_id = ?", enterpriseID)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("name").Offset(offset).Limit(limit).Find(&stakeholders).Error; err != nil {
		return nil, 0, err
	}

	return stakeholders, total, nil
}

func (r *stakeholderRepository) Update(ctx context.Context, stakeholder *model.Stakeholder) error {
	return GetDB(ctx, r.db).Save(stakeholder).Error
}

func (r *stakeholderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Stakeholder{}).Error
}
