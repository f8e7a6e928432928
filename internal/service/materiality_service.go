package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Influence weights applied to stakeholder ratings when ranking topics.
var influenceWeights = map[string]int64{
	model.LevelLow:    1,
	model.LevelMedium: 2,
	model.LevelHigh:   3,
}

type CreateAssessmentRequest struct {
	Title  string `json:"title" binding:"required"`
	Period string `json:"period" binding:"required"`
}

type AddTopicRequest struct {
	Name   string `json:"name" binding:"required"`
	Pillar string `json:"pillar" binding:"required,oneof=environmental social governance"`
}

type RateTopicRequest struct {
	StakeholderID string `json:"stakeholder_id" binding:"required"`
	Importance    int    `json:"importance" binding:"required,min=1,max=5"`
}

// MaterialityService runs stakeholder surveys that rank ESG topics by
// weighted importance.
type MaterialityService interface {
	CreateAssessment(ctx context.Context, enterpriseID string, req CreateAssessmentRequest) (*model.MaterialityAssessment, error)
	ListAssessments(ctx context.Context, enterpriseID string, page, limit int) ([]model.MaterialityAssessment, int64, error)
	GetAssessment(ctx context.Context, enterpriseID, id string) (*model.MaterialityAssessment, error)
	SetStatus(ctx context.Context, enterpriseID, id, status string) (*model.MaterialityAssessment, error)
	AddTopic(ctx context.Context, enterpriseID, assessmentID string, req AddTopicRequest) (*model.MaterialityTopic, error)
	RateTopic(ctx context.Context, enterpriseID, topicID string, req RateTopicRequest) error
	Ranking(ctx context.Context, enterpriseID, assessmentID string) ([]model.TopicRanking, error)
}

type materialityService struct {
	repo            repository.MaterialityRepository
	stakeholderRepo repository.StakeholderRepository
}

func NewMaterialityService(repo repository.MaterialityRepository, stakeholderRepo repository.StakeholderRepository) MaterialityService {
	return &materialityService{repo: repo, stakeholderRepo: stakeholderRepo}
}

func (s *materialityService) CreateAssessment(ctx context.Context, enterpriseID string, req CreateAssessmentRequest) (*model.MaterialityAssessment, error) {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("missing enterprise scope: %w", err)
	}

	assessment := &model.MaterialityAssessment{
		EnterpriseID: entID,
		Title:        req.Title,
		Period:       req.Period,
		Status:       model.AssessmentDraft,
	}
	if err := s.repo.CreateAssessment(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *materialityService) ListAssessments(ctx context.Context, enterpriseID string, page, limit int) ([]model.MaterialityAssessment, int64, error) {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return nil, 0, fmt.Errorf("missing enterprise scope: %w", err)
	}
	return s.repo.ListAssessments(ctx, entID, page, limit)
}

func (s *materialityService) GetAssessment(ctx context.Context, enterpriseID, id string) (*model.MaterialityAssessment, error) {
	return s.findScoped(ctx, enterpriseID, id, false)
}

func (s *materialityService) SetStatus(ctx context.Context, enterpriseID, id, status string) (*model.MaterialityAssessment, error) {
	if status != model.AssessmentActive && status != model.AssessmentClosed {
		return nil, fmt.Errorf("invalid assessment status: %s", status)
	}

	assessment, err := s.findScoped(ctx, enterpriseID, id, false)
	if err != nil {
		return nil, err
	}
	if assessment.Status == model.AssessmentClosed {
		return nil, errors.New("assessment is closed")
	}

	assessment.Status = status
	if err := s.repo.UpdateAssessment(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *materialityService) AddTopic(ctx context.Context, enterpriseID, assessmentID string, req AddTopicRequest) (*model.MaterialityTopic, error) {
	assessment, err := s.findScoped(ctx, enterpriseID, assessmentID, false)
	if err != nil {
		return nil, err
	}
	if assessment.Status == model.AssessmentClosed {
		return nil, errors.New("assessment is closed")
	}

	topic := &model.MaterialityTopic{
		AssessmentID: assessment.ID,
		Name:         req.Name,
		Pillar:       req.Pillar,
	}
	if err := s.repo.AddTopic(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *materialityService) RateTopic(ctx context.Context, enterpriseID, topicID string, req RateTopicRequest) error {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return fmt.Errorf("missing enterprise scope: %w", err)
	}
	tid, err := uuid.Parse(topicID)
	if err != nil {
		return fmt.Errorf("invalid topic id: %w", err)
	}
	sid, err := uuid.Parse(req.StakeholderID)
	if err != nil {
		return fmt.Errorf("invalid stakeholder id: %w", err)
	}

	if _, err := s.repo.FindTopicByID(ctx, tid); err != nil {
		return errors.New("topic not found")
	}

	stakeholder, err := s.stakeholderRepo.FindByID(ctx, sid)
	if err != nil || stakeholder.EnterpriseID != entID {
		return errors.New("stakeholder not found")
	}

	rating := &model.MaterialityRating{
		TopicID:       tid,
		StakeholderID: sid,
		Importance:    req.Importance,
	}
	return s.repo.UpsertRating(ctx, rating)
}

func (s *materialityService) Ranking(ctx context.Context, enterpriseID, assessmentID string) ([]model.TopicRanking, error) {
	assessment, err := s.findScoped(ctx, enterpriseID, assessmentID, true)
	if err != nil {
		return nil, err
	}
	return RankTopics(assessment.Topics), nil
}

func (s *materialityService) findScoped(ctx context.Context, enterpriseID, id string, full bool) (*model.MaterialityAssessment, error) {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("missing enterprise scope: %w", err)
	}
	assessmentID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid assessment id: %w", err)
	}

	var assessment *model.MaterialityAssessment
	if full {
		assessment, err = s.repo.FindAssessmentFull(ctx, assessmentID)
	} else {
		assessment, err = s.repo.FindAssessmentByID(ctx, assessmentID)
	}
	if err != nil || assessment.EnterpriseID != entID {
		return nil, errors.New("assessment not found")
	}
	return assessment, nil
}

// RankTopics computes each topic's influence-weighted importance score
// and returns topics ordered by descending score. A rating from a
// high-influence stakeholder counts three times a low-influence one.
func RankTopics(topics []model.MaterialityTopic) []model.TopicRanking {
	rankings := make([]model.TopicRanking, 0, len(topics))
	for _, topic := range topics {
		weightedSum := decimal.Zero
		var totalWeight int64
		for _, rating := range topic.Ratings {
			weight := influenceWeights[model.LevelMedium]
			if rating.Stakeholder != nil {
				if w, ok := influenceWeights[rating.Stakeholder.Influence]; ok {
					weight = w
				}
			}
			weightedSum = weightedSum.Add(decimal.NewFromInt(int64(rating.Importance) * weight))
			totalWeight += weight
		}

		score := decimal.Zero
		if totalWeight > 0 {
			score = weightedSum.Div(decimal.NewFromInt(totalWeight)).Round(2)
		}

		rankings = append(rankings, model.TopicRanking{
			TopicID:       topic.ID,
			TopicName:     topic.Name,
			Pillar:        topic.Pillar,
			WeightedScore: score,
			RatingCount:   len(topic.Ratings),
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].WeightedScore.GreaterThan(rankings[j].WeightedScore)
	})
	return rankings
}
