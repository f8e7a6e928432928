package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/repository"

	"github.com/google/uuid"
)

type ComplianceIssueRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Framework   string `json:"framework"`
	Severity    string `json:"severity" binding:"required"`
	DueDate     string `json:"due_date"` // RFC3339 date, optional
}

type ComplianceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_progress resolved"`
}

// ComplianceService manages compliance issues for an enterprise.
type ComplianceService interface {
	Create(ctx context.Context, userID, enterpriseID string, req ComplianceIssueRequest) (*model.ComplianceIssue, error)
	List(ctx context.Context, enterpriseID, severity, status string, page, limit int) ([]model.ComplianceIssue, int64, error)
	Update(ctx context.Context, enterpriseID, id string, req ComplianceIssueRequest) (*model.ComplianceIssue, error)
	SetStatus(ctx context.Context, enterpriseID, id, status string) (*model.ComplianceIssue, error)
	Delete(ctx context.Context, enterpriseID, id string) error
}

type complianceService struct {
	repo repository.ComplianceRepository
}

func NewComplianceService(repo repository.ComplianceRepository) ComplianceService {
	return &complianceService{repo: repo}
}

func (s *complianceService) Create(ctx context.Context, userID, enterpriseID string, req ComplianceIssueRequest) (*model.ComplianceIssue, error) {
	uid, entID, err := parseScope(userID, enterpriseID)
	if err != nil {
		return nil, err
	}
	if !model.ValidSeverity(req.Severity) {
		return nil, fmt.Errorf("invalid severity: %s", req.Severity)
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	issue := &model.ComplianceIssue{
		EnterpriseID: entID,
		Title:        req.Title,
		Description:  req.Description,
		Framework:    req.Framework,
		Severity:     req.Severity,
		Status:       model.ComplianceOpen,
		DueDate:      dueDate,
		CreatedBy:    uid,
	}
	if err := s.repo.Create(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *complianceService) List(ctx context.Context, enterpriseID, severity, status string, page, limit int) ([]model.ComplianceIssue, int64, error) {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return nil, 0, fmt.Errorf("missing enterprise scope: %w", err)
	}
	if severity != "" && !model.ValidSeverity(severity) {
		return nil, 0, fmt.Errorf("invalid severity: %s", severity)
	}
	return s.repo.List(ctx, entID, severity, status, page, limit)
}

func (s *complianceService) Update(ctx context.Context, enterpriseID, id string, req ComplianceIssueRequest) (*model.ComplianceIssue, error) {
	issue, err := s.findScoped(ctx, enterpriseID, id)
	if err != nil {
		return nil, err
	}
	if !model.ValidSeverity(req.Severity) {
		return nil, fmt.Errorf("invalid severity: %s", req.Severity)
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	issue.Title = req.Title
	issue.Description = req.Description
	issue.Framework = req.Framework
	issue.Severity = req.Severity
	issue.DueDate = dueDate

	if err := s.repo.Update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *complianceService) SetStatus(ctx context.Context, enterpriseID, id, status string) (*model.ComplianceIssue, error) {
	issue, err := s.findScoped(ctx, enterpriseID, id)
	if err != nil {
		return nil, err
	}

	issue.Status = status
	if status == model.ComplianceResolved {
		now := time.Now()
		issue.ResolvedAt = &now
	} else {
		issue.ResolvedAt = nil
	}

	if err := s.repo.Update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *complianceService) Delete(ctx context.Context, enterpriseID, id string) error {
	issue, err := s.findScoped(ctx, enterpriseID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, issue.ID)
}

func (s *complianceService) findScoped(ctx context.Context, enterpriseID, id string) (*model.ComplianceIssue, error) {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("missing enterprise scope: %w", err)
	}
	issueID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid issue id: %w", err)
	}

	issue, err := s.repo.FindByID(ctx, issueID)
	if err != nil || issue.EnterpriseID != entID {
		return nil, errors.New("compliance issue not found")
	}
	return issue, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date (want YYYY-MM-DD): %w", err)
	}
	return &t, nil
}
