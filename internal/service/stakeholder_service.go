package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/repository"

	"github.com/google/uuid"
)

type StakeholderRequest struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category" binding:"required"`
	Organization string `json:"organization"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone"`
	Influence    string `json:"influence"`
	Interest     string `json:"interest"`
}

// StakeholderService manages the per-enterprise stakeholder registry.
type StakeholderService interface {
	Create(ctx context.Context, enterpriseID string, req StakeholderRequest) (*model.Stakeholder, error)
	List(ctx context.Context, enterpriseID, category string, page, limit int) ([]model.Stakeholder, int64, error)
	Update(ctx context.Context, enterpriseID, id string, req StakeholderRequest) (*model.Stakeholder, error)
	Delete(ctx context.Context, enterpriseID, id string) error
}

type stakeholderService struct {
	repo repository.StakeholderRepository
}

func NewStakeholderService(repo repository.StakeholderRepository) StakeholderService {
	return &stakeholderService{repo: repo}
}

func (s *stakeholderService) Create(ctx context.Context, enterpriseID string, req StakeholderRequest) (*model.Stakeholder, error) {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("missing enterprise scope: %w", err)
	}
	if !model.ValidStakeholderCategory(req.Category) {
		return nil, fmt.Errorf("invalid stakeholder category: %s", req.Category)
	}

	influence, interest, err := normalizeLevels(req.Influence, req.Interest)
	if err != nil {
		return nil, err
	}

	stakeholder := &model.Stakeholder{
		EnterpriseID: entID,
		Name:         req.Name,
		Category:     req.Category,
		Organization: req.Organization,
		Email:        req.Email,
		Phone:        req.Phone,
		Influence:    influence,
		Interest:     interest,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, stakeholder); err != nil {
		return nil, err
	}
	return stakeholder, nil
}

func (s *stakeholderService) List(ctx context.Context, enterpriseID, category string, page, limit int) ([]model.Stakeholder, int64, error) {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return nil, 0, fmt.Errorf("missing enterprise scope: %w", err)
	}
	if category != "" && !model.ValidStakeholderCategory(category) {
		return nil, 0, fmt.Errorf("invalid stakeholder category: %s", category)
	}
	return s.repo.List(ctx, entID, category, page, limit)
}

func (s *stakeholderService) Update(ctx context.Context, enterpriseID, id string, req StakeholderRequest) (*model.Stakeholder, error) {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("missing enterprise scope: %w", err)
	}
	stakeholderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid stakeholder id: %w", err)
	}

	stakeholder, err := s.repo.FindByID(ctx, stakeholderID)
	if err != nil || stakeholder.EnterpriseID != entID {
		return nil, errors.New("stakeholder not found")
	}
	if !model.ValidStakeholderCategory(req.Category) {
		return nil, fmt.Errorf("invalid stakeholder category: %s", req.Category)
	}

	influence, interest, err := normalizeLevels(req.Influence, req.Interest)
	if err != nil {
		return nil, err
	}

	stakeholder.Name = req.Name
	stakeholder.Category = req.Category
	stakeholder.Organization = req.Organization
	stakeholder.Email = req.Email
	stakeholder.Phone = req.Phone
	stakeholder.Influence = influence
	stakeholder.Interest = interest

	if err := s.repo.Update(ctx, stakeholder); err != nil {
		return nil, err
	}
	return stakeholder, nil
}

func (s *stakeholderService) Delete(ctx context.Context, enterpriseID, id string) error {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return fmt.Errorf("missing enterprise scope: %w", err)
	}
	stakeholderID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid stakeholder id: %w", err)
	}

	stakeholder, err := s.repo.FindByID(ctx, stakeholderID)
	if err != nil || stakeholder.EnterpriseID != entID {
		return errors.New("stakeholder not found")
	}
	return s.repo.Delete(ctx, stakeholderID)
}

func normalizeLevels(influence, interest string) (string, string, error) {
	if influence == "" {
		influence = model.LevelMedium
	}
	if interest == "" {
		interest = model.LevelMedium
	}
	if !model.ValidLevel(influence) || !model.ValidLevel(interest) {
		return "", "", errors.New("influence and interest must be low, medium or high")
	}
	return influence, interest, nil
}
