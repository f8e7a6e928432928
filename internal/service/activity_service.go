package service

import (
	"context"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/repository"
)

// ActivityService exposes the audit trail of critical state changes.
type ActivityService interface {
	List(ctx context.Context, action string, page, limit int) ([]model.ActivityLog, int64, error)
}

type activityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) List(ctx context.Context, action string, page, limit int) ([]model.ActivityLog, int64, error) {
	return s.repo.List(ctx, action, page, limit)
}
