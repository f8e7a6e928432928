package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAuditNotEditable = errors.New("audit is not in an editable state")
	ErrUnscoredItems    = errors.New("all checklist items must be scored before completion")
)

type ScheduleAuditRequest struct {
	Site          string   `json:"site" binding:"required"`
	AuditType     string   `json:"audit_type" binding:"required"`
	ScheduledDate string   `json:"scheduled_date" binding:"required"` // YYYY-MM-DD
	AuditorID     string   `json:"auditor_id" binding:"required"`
	Questions     []string `json:"questions" binding:"required,min=1"`
}

type AnswerItemRequest struct {
	Response string `json:"response"`
	Score    *int   `json:"score" binding:"required,min=0,max=5"`
}

// EHSService schedules environmental health & safety audits and walks
// them through scheduled → in_progress → completed with a scored checklist.
type EHSService interface {
	Schedule(ctx context.Context, userID, enterpriseID string, req ScheduleAuditRequest) (*model.EHSAudit, error)
	GetAudit(ctx context.Context, enterpriseID, id string) (*model.EHSAudit, error)
	GetAssignedAudit(ctx context.Context, auditorID, id string) (*model.EHSAudit, error)
	ListForEnterprise(ctx context.Context, enterpriseID, status string, page, limit int) ([]model.EHSAudit, int64, error)
	ListForAuditor(ctx context.Context, auditorID, status string, page, limit int) ([]model.EHSAudit, int64, error)
	Start(ctx context.Context, auditorID, auditID string) (*model.EHSAudit, error)
	AnswerItem(ctx context.Context, auditorID, auditID, itemID string, req AnswerItemRequest) error
	Complete(ctx context.Context, auditorID, auditID string) (*model.EHSAudit, error)
}

type ehsService struct {
	auditRepo    repository.EHSAuditRepository
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	txManager    repository.TransactionManager
}

func NewEHSService(
	auditRepo repository.EHSAuditRepository,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
) EHSService {
	return &ehsService{
		auditRepo:    auditRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
	}
}

func (s *ehsService) Schedule(ctx context.Context, userID, enterpriseID string, req ScheduleAuditRequest) (*model.EHSAudit, error) {
	uid, entID, err := parseScope(userID, enterpriseID)
	if err != nil {
		return nil, err
	}
	if !model.ValidAuditType(req.AuditType) {
		return nil, fmt.Errorf("invalid audit type: %s", req.AuditType)
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled date (want YYYY-MM-DD): %w", err)
	}

	auditor, err := s.userRepo.GetByID(ctx, req.AuditorID)
	if err != nil {
		return nil, errors.New("auditor not found")
	}
	if auditor.Role != model.RoleAuditor {
		return nil, errors.New("assigned user is not an auditor")
	}

	items := make([]model.AuditChecklistItem, 0, len(req.Questions))
	for _, q := range req.Questions {
		items = append(items, model.AuditChecklistItem{Question: q})
	}

	audit := &model.EHSAudit{
		EnterpriseID:  entID,
		Site:          req.Site,
		AuditType:     req.AuditType,
		ScheduledDate: scheduledDate,
		AuditorID:     auditor.ID,
		Status:        model.AuditScheduled,
		Items:         items,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if txErr := s.auditRepo.Create(txCtx, audit); txErr != nil {
			return txErr
		}
		details, _ := json.Marshal(map[string]interface{}{
			"site":       req.Site,
			"audit_type": req.AuditType,
			"auditor_id": auditor.ID.String(),
		})
		entry := model.ActivityLog{
			UserID:     &uid,
			Action:     model.ActionScheduleAudit,
			EntityID:   audit.ID.String(),
			EntityName: req.Site,
			Details:    string(details),
		}
		return s.activityRepo.Create(txCtx, &entry)
	})
	if err != nil {
		return nil, err
	}
	return audit, nil
}

func (s *ehsService) GetAudit(ctx context.Context, enterpriseID, id string) (*model.EHSAudit, error) {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("missing enterprise scope: %w", err)
	}
	auditID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid audit id: %w", err)
	}

	audit, err := s.auditRepo.FindByIDWithItems(ctx, auditID)
	if err != nil {
		return nil, err
	}
	if audit.EnterpriseID != entID {
		return nil, errors.New("audit not found")
	}
	return audit, nil
}

func (s *ehsService) GetAssignedAudit(ctx context.Context, auditorID, id string) (*model.EHSAudit, error) {
	audit, err := s.findAssigned(ctx, auditorID, id)
	if err != nil {
		return nil, err
	}
	return s.auditRepo.FindByIDWithItems(ctx, audit.ID)
}

func (s *ehsService) ListForEnterprise(ctx context.Context, enterpriseID, status string, page, limit int) ([]model.EHSAudit, int64, error) {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return nil, 0, fmt.Errorf("missing enterprise scope: %w", err)
	}
	return s.auditRepo.ListByEnterprise(ctx, entID, status, page, limit)
}

func (s *ehsService) ListForAuditor(ctx context.Context, auditorID, status string, page, limit int) ([]model.EHSAudit, int64, error) {
	uid, err := uuid.Parse(auditorID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid auditor id: %w", err)
	}
	return s.auditRepo.ListByAuditor(ctx, uid, status, page, limit)
}

func (s *ehsService) Start(ctx context.Context, auditorID, auditID string) (*model.EHSAudit, error) {
	audit, err := s.findAssigned(ctx, auditorID, auditID)
	if err != nil {
		return nil, err
	}
	if audit.Status != model.AuditScheduled {
		return nil, ErrAuditNotEditable
	}

	audit.Status = model.AuditInProgress
	if err := s.auditRepo.Update(ctx, audit); err != nil {
		return nil, err
	}
	return audit, nil
}

func (s *ehsService) AnswerItem(ctx context.Context, auditorID, auditID, itemID string, req AnswerItemRequest) error {
	audit, err := s.findAssigned(ctx, auditorID, auditID)
	if err != nil {
		return err
	}
	if audit.Status != model.AuditInProgress {
		return ErrAuditNotEditable
	}

	id, err := uuid.Parse(itemID)
	if err != nil {
		return fmt.Errorf("invalid item id: %w", err)
	}

	full, err := s.auditRepo.FindByIDWithItems(ctx, audit.ID)
	if err != nil {
		return err
	}
	for i := range full.Items {
		if full.Items[i].ID == id {
			full.Items[i].Response = req.Response
			full.Items[i].Score = req.Score
			return s.auditRepo.UpdateItem(ctx, &full.Items[i])
		}
	}
	return errors.New("checklist item not found")
}

// Complete computes the overall score as the decimal average of item
// scores and closes the audit.
func (s *ehsService) Complete(ctx context.Context, auditorID, auditID string) (*model.EHSAudit, error) {
	audit, err := s.findAssigned(ctx, auditorID, auditID)
	if err != nil {
		return nil, err
	}
	if audit.Status != model.AuditInProgress {
		return nil, ErrAuditNotEditable
	}

	full, err := s.auditRepo.FindByIDWithItems(ctx, audit.ID)
	if err != nil {
		return nil, err
	}
	if len(full.Items) == 0 {
		return nil, ErrUnscoredItems
	}

	sum := decimal.Zero
	for _, item := range full.Items {
		if item.Score == nil {
			return nil, ErrUnscoredItems
		}
		sum = sum.Add(decimal.NewFromInt(int64(*item.Score)))
	}
	overall := sum.Div(decimal.NewFromInt(int64(len(full.Items)))).Round(2)

	now := time.Now()
	full.Status = model.AuditCompleted
	full.OverallScore = &overall
	full.CompletedAt = &now

	uid, _ := uuid.Parse(auditorID)
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if txErr := s.auditRepo.Update(txCtx, full); txErr != nil {
			return txErr
		}
		details, _ := json.Marshal(map[string]interface{}{
			"overall_score": overall.String(),
			"site":          full.Site,
		})
		entry := model.ActivityLog{
			UserID:     &uid,
			Action:     model.ActionCompleteAudit,
			EntityID:   full.ID.String(),
			EntityName: full.Site,
			Details:    string(details),
		}
		return s.activityRepo.Create(txCtx, &entry)
	})
	if err != nil {
		return nil, err
	}
	return full, nil
}

func (s *ehsService) findAssigned(ctx context.Context, auditorID, auditID string) (*model.EHSAudit, error) {
	uid, err := uuid.Parse(auditorID)
	if err != nil {
		return nil, fmt.Errorf("invalid auditor id: %w", err)
	}
	id, err := uuid.Parse(auditID)
	if err != nil {
		return nil, fmt.Errorf("invalid audit id: %w", err)
	}

	audit, err := s.auditRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("audit not found")
	}
	if audit.AuditorID != uid {
		return nil, errors.New("audit is not assigned to this auditor")
	}
	return audit, nil
}
