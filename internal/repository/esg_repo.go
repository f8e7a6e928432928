package repository

import (
	"context"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ESGRecordFilter narrows SDG/GHG listings. Zero values mean "no filter".
type ESGRecordFilter struct {
	EnterpriseID    uuid.UUID
	ReportingPeriod string
	Status          string
	Scope           int // GHG only
	Page            int
	Limit           int
}

// SDGProgressRepository defines data access for SDG progress records
type SDGProgressRepository interface {
	Create(ctx context.Context, record *model.SDGProgress) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SDGProgress, error)
	List(ctx context.Context, filter ESGRecordFilter) ([]model.SDGProgress, int64, error)
	Update(ctx context.Context, record *model.SDGProgress) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sdgProgressRepository struct {
	db *gorm.DB
}

func NewSDGProgressRepository(db *gorm.DB) SDGProgressRepository {
	return &sdgProgressRepository{db: db}
}

func (r *sdgProgressRepository) Create(ctx context.Context, record *model.SDGProgress) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *sdgProgressRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SDGProgress, error) {
	var record model.SDGProgress
	if err := GetDB(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *sdgProgressRepository) List(ctx context.Context, filter ESGRecordFilter) ([]model.SDGProgress, int64, error) {
	var records []model.SDGProgress
	var total int64

	query := GetDB(ctx, r.db).Model(&model.SDGProgress{})
	query = applyESGFilter(query, filter, false)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("sdg_number, created_at DESC").Offset(offset).Limit(filter.Limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *sdgProgressRepository) Update(ctx context.Context, record *model.SDGProgress) error {
	return GetDB(ctx, r.db).Save(record).Error
}

func (r *sdgProgressRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.SDGProgress{}).Where("id = ?", id).Update("status", status).Error
}

func (r *sdgProgressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.SDGProgress{}).Error
}

// GHGEmissionRepository defines data access for GHG emission records
type GHGEmissionRepository interface {
	Create(ctx context.Context, record *model.GHGEmission) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.GHGEmission, error)
	List(ctx context.Context, filter ESGRecordFilter) ([]model.GHGEmission, int64, error)
	Update(ctx context.Context, record *model.GHGEmission) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ghgEmissionRepository struct {
	db *gorm.DB
}

func NewGHGEmissionRepository(db *gorm.DB) GHGEmissionRepository {
	return &ghgEmissionRepository{db: db}
}

func (r *ghgEmissionRepository) Create(ctx context.Context, record *model.GHGEmission) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *ghgEmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.GHGEmission, error) {
	var record model.GHGEmission
	if err := GetDB(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ghgEmissionRepository) List(ctx context.Context, filter ESGRecordFilter) ([]model.GHGEmission, int64, error) {
	var records []model.GHGEmission
	var total int64

	query := GetDB(ctx, r.db).Model(&model.GHGEmission{})
	query = applyESGFilter(query, filter, true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *ghgEmissionRepository) Update(ctx context.Context, record *model.GHGEmission) error {
	return GetDB(ctx, r.db).Save(record).Error
}

func (r *ghgEmissionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.GHGEmission{}).Where("id = ?", id).Update("status", status).Error
}

func (r *ghgEmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.GHGEmission{}).Error
}

func applyESGFilter(query *gorm.DB, filter ESGRecordFilter, withScope bool) *gorm.DB {
	if filter.EnterpriseID != uuid.Nil {
		query = query.Where("enterprise_id = ?", filter.EnterpriseID)
	}
	if filter.ReportingPeriod != "" {
		query = query.Where("reporting_period = ?", filter.ReportingPeriod)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if withScope && filter.Scope != 0 {
		query = query.Where("scope = ?", filter.Scope)
	}
	return query
}
