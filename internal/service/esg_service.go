package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrRecordLocked is returned when a record with an outstanding pending
// approval request is edited or deleted.
var ErrRecordLocked = errors.New("record has a pending approval request and cannot be modified")

// --- DTOs ---

type SDGProgressRequest struct {
	SDGNumber          int    `json:"sdg_number" binding:"required,min=1,max=17"`
	Description        string `json:"description" binding:"required"`
	ProgressPercentage *int   `json:"progress_percentage" binding:"required,min=0,max=100"`
	ReportingPeriod    string `json:"reporting_period" binding:"required"`
}

type GHGEmissionRequest struct {
	Scope           int    `json:"scope" binding:"required,oneof=1 2 3"`
	Source          string `json:"source" binding:"required"`
	Value           string `json:"value" binding:"required"` // decimal string
	Unit            string `json:"unit" binding:"required"`
	ReportingPeriod string `json:"reporting_period" binding:"required"`
}

type ESGListFilter struct {
	ReportingPeriod string
	Status          string
	Scope           int
	Page            int
	Limit           int
}

// ESGService owns the submittable ESG records: SDG progress and GHG
// emissions. All access is scoped to the caller's enterprise; records
// under review are immutable until decided.
type ESGService interface {
	CreateSDGProgress(ctx context.Context, userID, enterpriseID string, req SDGProgressRequest) (*model.SDGProgress, error)
	UpdateSDGProgress(ctx context.Context, userID, enterpriseID, id string, req SDGProgressRequest) (*model.SDGProgress, error)
	ListSDGProgress(ctx context.Context, enterpriseID string, filter ESGListFilter) ([]model.SDGProgress, int64, error)
	DeleteSDGProgress(ctx context.Context, userID, enterpriseID, id string) error

	CreateGHGEmission(ctx context.Context, userID, enterpriseID string, req GHGEmissionRequest) (*model.GHGEmission, error)
	UpdateGHGEmission(ctx context.Context, userID, enterpriseID, id string, req GHGEmissionRequest) (*model.GHGEmission, error)
	ListGHGEmissions(ctx context.Context, enterpriseID string, filter ESGListFilter) ([]model.GHGEmission, int64, error)
	DeleteGHGEmission(ctx context.Context, userID, enterpriseID, id string) error
}

type esgService struct {
	sdgRepo      repository.SDGProgressRepository
	ghgRepo      repository.GHGEmissionRepository
	approvalRepo repository.ApprovalRepository
	activityRepo repository.ActivityRepository
	txManager    repository.TransactionManager
}

func NewESGService(
	sdgRepo repository.SDGProgressRepository,
	ghgRepo repository.GHGEmissionRepository,
	approvalRepo repository.ApprovalRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
) ESGService {
	return &esgService{
		sdgRepo:      sdgRepo,
		ghgRepo:      ghgRepo,
		approvalRepo: approvalRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
	}
}

func (s *esgService) CreateSDGProgress(ctx context.Context, userID, enterpriseID string, req SDGProgressRequest) (*model.SDGProgress, error) {
	uid, entID, err := parseScope(userID, enterpriseID)
	if err != nil {
		return nil, err
	}

	record := &model.SDGProgress{
		EnterpriseID:       entID,
		SDGNumber:          req.SDGNumber,
		Description:        req.Description,
		ProgressPercentage: *req.ProgressPercentage,
		ReportingPeriod:    req.ReportingPeriod,
		Status:             model.RecordStatusDraft,
		CreatedBy:          uid,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if txErr := s.sdgRepo.Create(txCtx, record); txErr != nil {
			return txErr
		}
		return s.writeActivity(txCtx, uid, model.ActionCreateRecord, record.ID.String(), model.DataTypeSDGProgress, map[string]interface{}{
			"sdg_number": req.SDGNumber,
			"period":     req.ReportingPeriod,
		})
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *esgService) UpdateSDGProgress(ctx context.Context, userID, enterpriseID, id string, req SDGProgressRequest) (*model.SDGProgress, error) {
	uid, entID, err := parseScope(userID, enterpriseID)
	if err != nil {
		return nil, err
	}
	recordID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid record id: %w", err)
	}

	record, err := s.sdgRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, errors.New("record not found")
	}
	if record.EnterpriseID != entID {
		return nil, errors.New("record not found")
	}
	if err := s.ensureNotLocked(ctx, recordID, model.DataTypeSDGProgress, record.Status); err != nil {
		return nil, err
	}

	record.SDGNumber = req.SDGNumber
	record.Description = req.Description
	record.ProgressPercentage = *req.ProgressPercentage
	record.ReportingPeriod = req.ReportingPeriod

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if txErr := s.sdgRepo.Update(txCtx, record); txErr != nil {
			return txErr
		}
		return s.writeActivity(txCtx, uid, model.ActionUpdateRecord, record.ID.String(), model.DataTypeSDGProgress, nil)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *esgService) ListSDGProgress(ctx context.Context, enterpriseID string, filter ESGListFilter) ([]model.SDGProgress, int64, error) {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid enterprise id: %w", err)
	}
	return s.sdgRepo.List(ctx, repository.ESGRecordFilter{
		EnterpriseID:    entID,
		ReportingPeriod: filter.ReportingPeriod,
		Status:          filter.Status,
		Page:            filter.Page,
		Limit:           filter.Limit,
	})
}

func (s *esgService) DeleteSDGProgress(ctx context.Context, userID, enterpriseID, id string) error {
	uid, entID, err := parseScope(userID, enterpriseID)
	if err != nil {
		return err
	}
	recordID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid record id: %w", err)
	}

	record, err := s.sdgRepo.FindByID(ctx, recordID)
	if err != nil || record.EnterpriseID != entID {
		return errors.New("record not found")
	}
	if err := s.ensureNotLocked(ctx, recordID, model.DataTypeSDGProgress, record.Status); err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if txErr := s.sdgRepo.Delete(txCtx, recordID); txErr != nil {
			return txErr
		}
		return s.writeActivity(txCtx, uid, model.ActionDeleteRecord, id, model.DataTypeSDGProgress, nil)
	})
}

func (s *esgService) CreateGHGEmission(ctx context.Context, userID, enterpriseID string, req GHGEmissionRequest) (*model.GHGEmission, error) {
	uid, entID, err := parseScope(userID, enterpriseID)
	if err != nil {
		return nil, err
	}

	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid emission value: %w", err)
	}
	if value.IsNegative() {
		return nil, errors.New("emission value must not be negative")
	}

	record := &model.GHGEmission{
		EnterpriseID:    entID,
		Scope:           req.Scope,
		Source:          req.Source,
		Value:           value,
		Unit:            req.Unit,
		ReportingPeriod: req.ReportingPeriod,
		Status:          model.RecordStatusDraft,
		CreatedBy:       uid,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if txErr := s.ghgRepo.Create(txCtx, record); txErr != nil {
			return txErr
		}
		return s.writeActivity(txCtx, uid, model.ActionCreateRecord, record.ID.String(), model.DataTypeGHGEmission, map[string]interface{}{
			"scope":  req.Scope,
			"source": req.Source,
			"period": req.ReportingPeriod,
		})
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *esgService) UpdateGHGEmission(ctx context.Context, userID, enterpriseID, id string, req GHGEmissionRequest) (*model.GHGEmission, error) {
	uid, entID, err := parseScope(userID, enterpriseID)
	if err != nil {
		return nil, err
	}
	recordID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid record id: %w", err)
	}

	record, err := s.ghgRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, errors.New("record not found")
	}
	if record.EnterpriseID != entID {
		return nil, errors.New("record not found")
	}
	if err := s.ensureNotLocked(ctx, recordID, model.DataTypeGHGEmission, record.Status); err != nil {
		return nil, err
	}

	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid emission value: %w", err)
	}
	if value.IsNegative() {
		return nil, errors.New("emission value must not be negative")
	}

	record.Scope = req.Scope
	record.Source = req.Source
	record.Value = value
	record.Unit = req.Unit
	record.ReportingPeriod = req.ReportingPeriod

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if txErr := s.ghgRepo.Update(txCtx, record); txErr != nil {
			return txErr
		}
		return s.writeActivity(txCtx, uid, model.ActionUpdateRecord, record.ID.String(), model.DataTypeGHGEmission, nil)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *esgService) ListGHGEmissions(ctx context.Context, enterpriseID string, filter ESGListFilter) ([]model.GHGEmission, int64, error) {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid enterprise id: %w", err)
	}
	return s.ghgRepo.List(ctx, repository.ESGRecordFilter{
		EnterpriseID:    entID,
		ReportingPeriod: filter.ReportingPeriod,
		Status:          filter.Status,
		Scope:           filter.Scope,
		Page:            filter.Page,
		Limit:           filter.Limit,
	})
}

func (s *esgService) DeleteGHGEmission(ctx context.Context, userID, enterpriseID, id string) error {
	uid, entID, err := parseScope(userID, enterpriseID)
	if err != nil {
		return err
	}
	recordID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid record id: %w", err)
	}

	record, err := s.ghgRepo.FindByID(ctx, recordID)
	if err != nil || record.EnterpriseID != entID {
		return errors.New("record not found")
	}
	if err := s.ensureNotLocked(ctx, recordID, model.DataTypeGHGEmission, record.Status); err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if txErr := s.ghgRepo.Delete(txCtx, recordID); txErr != nil {
			return txErr
		}
		return s.writeActivity(txCtx, uid, model.ActionDeleteRecord, id, model.DataTypeGHGEmission, nil)
	})
}

// ensureNotLocked refuses mutation of a record that is under review.
func (s *esgService) ensureNotLocked(ctx context.Context, recordID uuid.UUID, dataType, status string) error {
	if status == model.RecordStatusSubmitted {
		return ErrRecordLocked
	}
	_, err := s.approvalRepo.FindPending(ctx, recordID, dataType)
	if err == nil {
		return ErrRecordLocked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *esgService) writeActivity(ctx context.Context, userID uuid.UUID, action, entityID, entityName string, payload map[string]interface{}) error {
	details, _ := json.Marshal(payload)
	entry := model.ActivityLog{
		UserID:     &userID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(details),
	}
	return s.activityRepo.Create(ctx, &entry)
}

func parseScope(userID, enterpriseID string) (uuid.UUID, uuid.UUID, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid user id: %w", err)
	}
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("missing enterprise scope: %w", err)
	}
	return uid, entID, nil
}
