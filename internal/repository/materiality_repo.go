package repository

import (
	"context"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaterialityRepository defines data access for materiality assessments,
// their topics and stakeholder ratings.
type MaterialityRepository interface {
	CreateAssessment(ctx context.Context, assessment *model.MaterialityAssessment) error
	FindAssessmentByID(ctx context.Context, id uuid.UUID) (*model.MaterialityAssessment, error)
	// FindAssessmentFull loads the assessment with topics, ratings and
	// rating stakeholders for ranking computation.
	FindAssessmentFull(ctx context.Context, id uuid.UUID) (*model.MaterialityAssessment, error)
	ListAssessments(ctx context.Context, enterpriseID uuid.UUID, page, limit int) ([]model.MaterialityAssessment, int64, error)
	UpdateAssessment(ctx context.Context, assessment *model.MaterialityAssessment) error
	AddTopic(ctx context.Context, topic *model.MaterialityTopic) error
	FindTopicByID(ctx context.Context, id uuid.UUID) (*model.MaterialityTopic, error)
	UpsertRating(ctx context.Context, rating *model.MaterialityRating) error
}

type materialityRepository struct {
	db *gorm.DB
}

func NewMaterialityRepository(db *gorm.DB) MaterialityRepository {
	return &materialityRepository{db: db}
}

func (r *materialityRepository) CreateAssessment(ctx context.Context, assessment *model.MaterialityAssessment) error {
	return GetDB(ctx, r.db).Create(assessment).Error
}

func (r *materialityRepository) FindAssessmentByID(ctx context.Context, id uuid.UUID) (*model.MaterialityAssessment, error) {
	var assessment model.MaterialityAssessment
	if err := GetDB(ctx, r.db).Preload("Topics").First(&assessment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *materialityRepository) FindAssessmentFull(ctx context.Context, id uuid.UUID) (*model.MaterialityAssessment, error) {
	var assessment model.MaterialityAssessment
	err := GetDB(ctx, r.db).
		Preload("Topics").
		Preload("Topics.Ratings").
		Preload("Topics.Ratings.Stakeholder").
		First(&assessment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *materialityRepository) ListAssessments(ctx context.Context, enterpriseID uuid.UUID, page, limit int) ([]model.MaterialityAssessment, int64, error) {
	var assessments []model.MaterialityAssessment
	var total int64

	query := GetDB(ctx, r.db).Model(&model.MaterialityAssessment{}).Where("enterprise_id = ?", enterpriseID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&assessments).Error; err != nil {
		return nil, 0, err
	}

	return assessments, total, nil
}

func (r *materialityRepository) UpdateAssessment(ctx context.Context, assessment *model.MaterialityAssessment) error {
	return GetDB(ctx, r.db).Save(assessment).Error
}

func (r *materialityRepository) AddTopic(ctx context.Context, topic *model.MaterialityTopic) error {
	return GetDB(ctx, r.db).Create(topic).Error
}

func (r *materialityRepository) FindTopicByID(ctx context.Context, id uuid.UUID) (*model.MaterialityTopic, error) {
	var topic model.MaterialityTopic
	if err := GetDB(ctx, r.db).First(&topic, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *materialityRepository) UpsertRating(ctx context.Context, rating *model.MaterialityRating) error {
	existing := model.MaterialityRating{}
	err := GetDB(ctx, r.db).
		Where("topic_id = ? AND stakeholder_id = ?", rating.TopicID, rating.StakeholderID).
		First(&existing).Error
	if err == nil {
		existing.Importance = rating.Importance
		return GetDB(ctx, r.db).Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return GetDB(ctx, r.db).Create(rating).Error
}
