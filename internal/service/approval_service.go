package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/repository"
	ws "github.com/S-FND/fandoro-sustainability-hub-sub000/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workflow errors surfaced to handlers.
var (
	ErrPendingApprovalExists   = errors.New("a pending approval request already exists for this record")
	ErrApprovalAlreadyResolved = errors.New("approval request is already resolved")
	ErrSelfApproval            = errors.New("approver must differ from submitter")
	ErrNotApprover             = errors.New("only the assigned approver can decide this request")
	ErrRecordNotSubmittable    = errors.New("record is not in a submittable state")
)

// Listing directions.
const (
	DirectionInbox  = "inbox"  // requests awaiting the caller's review
	DirectionOutbox = "outbox" // requests the caller submitted
)

// --- DTOs ---

type SubmitRequest struct {
	DataType   string `json:"data_type" binding:"required,oneof=sdg_progress ghg_emission"`
	DataID     string `json:"data_id" binding:"required"`
	ApproverID string `json:"approver_id" binding:"required"`
}

type DecideRequest struct {
	Approve  bool   `json:"approve"`
	Comments string `json:"comments"`
}

type ApprovalResponse struct {
	ID            string      `json:"id"`
	DataType      string      `json:"data_type"`
	DataID        string      `json:"data_id"`
	Status        string      `json:"status"`
	SubmittedBy   string      `json:"submitted_by"`
	SubmitterName string      `json:"submitter_name,omitempty"`
	ApproverID    string      `json:"approver_id"`
	ApproverName  string      `json:"approver_name,omitempty"`
	Comments      string      `json:"comments,omitempty"`
	SubmittedAt   string      `json:"submitted_at"`
	RespondedAt   *string     `json:"responded_at"`
	Record        interface{} `json:"record,omitempty"` // type-specific detail
}

// ApprovalBroadcaster pushes workflow events to connected clients.
// *websocket.Hub satisfies it; tests may pass nil.
type ApprovalBroadcaster interface {
	BroadcastApprovalEvent(event ws.ApprovalEvent)
}

// ApprovalService mediates submission of ESG data for review and resolves
// outstanding reviews. The state machine is pending → approved | rejected,
// both terminal.
type ApprovalService interface {
	Submit(ctx context.Context, submitterID string, req SubmitRequest) (ApprovalResponse, error)
	ListForUser(ctx context.Context, userID, direction, status string, page, limit int) ([]ApprovalResponse, int64, error)
	Decide(ctx context.Context, requestID, callerID string, req DecideRequest) (ApprovalResponse, error)
}

type approvalService struct {
	approvalRepo repository.ApprovalRepository
	sdgRepo      repository.SDGProgressRepository
	ghgRepo      repository.GHGEmissionRepository
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	txManager    repository.TransactionManager
	hub          ApprovalBroadcaster
}

func NewApprovalService(
	approvalRepo repository.ApprovalRepository,
	sdgRepo repository.SDGProgressRepository,
	ghgRepo repository.GHGEmissionRepository,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
	hub ApprovalBroadcaster,
) ApprovalService {
	return &approvalService{
		approvalRepo: approvalRepo,
		sdgRepo:      sdgRepo,
		ghgRepo:      ghgRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// Submit flips the record into the submitted state and creates the pending
// approval request in one transaction, so a partial write can never leave a
// submitted record without a reviewer.
func (s *approvalService) Submit(ctx context.Context, submitterID string, req SubmitRequest) (ApprovalResponse, error) {
	if !model.ValidDataType(req.DataType) {
		return ApprovalResponse{}, fmt.Errorf("unknown data type: %s", req.DataType)
	}

	dataID, err := uuid.Parse(req.DataID)
	if err != nil {
		return ApprovalResponse{}, fmt.Errorf("invalid data_id: %w", err)
	}
	approverID, err := uuid.Parse(req.ApproverID)
	if err != nil {
		return ApprovalResponse{}, fmt.Errorf("invalid approver_id: %w", err)
	}

	submitter, err := s.userRepo.GetByID(ctx, submitterID)
	if err != nil {
		return ApprovalResponse{}, fmt.Errorf("submitter not found: %w", err)
	}
	if submitter.ID == approverID {
		return ApprovalResponse{}, ErrSelfApproval
	}
	if _, err := s.userRepo.GetByID(ctx, approverID.String()); err != nil {
		return ApprovalResponse{}, fmt.Errorf("approver not found: %w", err)
	}

	var approval model.ApprovalRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		enterpriseID, txErr := s.markSubmitted(txCtx, req.DataType, dataID, submitter)
		if txErr != nil {
			return txErr
		}

		if _, txErr = s.approvalRepo.FindPending(txCtx, dataID, req.DataType); txErr == nil {
			return ErrPendingApprovalExists
		} else if !errors.Is(txErr, gorm.ErrRecordNotFound) {
			return txErr
		}

		approval = model.ApprovalRequest{
			DataID:       dataID,
			DataType:     req.DataType,
			EnterpriseID: enterpriseID,
			SubmittedBy:  submitter.ID,
			ApproverID:   approverID,
			Status:       model.ApprovalPending,
			SubmittedAt:  time.Now(),
		}
		if txErr = s.approvalRepo.Create(txCtx, &approval); txErr != nil {
			return fmt.Errorf("failed to create approval request: %w", txErr)
		}

		return s.logActivity(txCtx, &submitter.ID, model.ActionSubmitForReview, approval.ID.String(), req.DataType, map[string]interface{}{
			"data_id":     dataID.String(),
			"approver_id": approverID.String(),
		})
	})
	if err != nil {
		return ApprovalResponse{}, err
	}

	if s.hub != nil {
		s.hub.BroadcastApprovalEvent(ws.ApprovalEvent{
			Event:        "submission.created",
			RequestID:    approval.ID.String(),
			DataType:     approval.DataType,
			Status:       approval.Status,
			EnterpriseID: approval.EnterpriseID.String(),
		})
	}

	return s.loadResponse(ctx, approval.ID)
}

// ListForUser returns the caller's inbox (requests assigned to them as
// approver) or outbox (requests they submitted), each item carrying the
// referenced record's detail.
func (s *approvalService) ListForUser(ctx context.Context, userID, direction, status string, page, limit int) ([]ApprovalResponse, int64, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid user id: %w", err)
	}

	var requests []model.ApprovalRequest
	var total int64
	switch direction {
	case DirectionInbox:
		requests, total, err = s.approvalRepo.ListByApprover(ctx, uid, status, page, limit)
	case DirectionOutbox:
		requests, total, err = s.approvalRepo.ListBySubmitter(ctx, uid, status, page, limit)
	default:
		return nil, 0, fmt.Errorf("unknown direction: %s (want inbox or outbox)", direction)
	}
	if err != nil {
		return nil, 0, err
	}

	result := make([]ApprovalResponse, 0, len(requests))
	for _, req := range requests {
		resp := toApprovalResponse(req)
		resp.Record = s.resolveRecord(ctx, req)
		result = append(result, resp)
	}
	return result, total, nil
}

// Decide resolves a pending request. Terminal states are immutable: a
// second decision on the same request fails without changing anything.
func (s *approvalService) Decide(ctx context.Context, requestID, callerID string, req DecideRequest) (ApprovalResponse, error) {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return ApprovalResponse{}, fmt.Errorf("invalid approval request id: %w", err)
	}
	caller, err := uuid.Parse(callerID)
	if err != nil {
		return ApprovalResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	var approval *model.ApprovalRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		approval, txErr = s.approvalRepo.FindByIDForUpdate(txCtx, id)
		if txErr != nil {
			return fmt.Errorf("approval request not found: %w", txErr)
		}

		if approval.ApproverID != caller {
			return ErrNotApprover
		}
		if approval.Status != model.ApprovalPending {
			return ErrApprovalAlreadyResolved
		}

		now := time.Now()
		recordStatus := model.RecordStatusRejected
		action := model.ActionRejectSubmission
		approval.Status = model.ApprovalRejected
		if req.Approve {
			approval.Status = model.ApprovalApproved
			recordStatus = model.RecordStatusApproved
			action = model.ActionApproveSubmission
		}
		approval.RespondedAt = &now
		approval.Comments = req.Comments

		if txErr = s.approvalRepo.Update(txCtx, approval); txErr != nil {
			return fmt.Errorf("failed to update approval request: %w", txErr)
		}

		switch approval.DataType {
		case model.DataTypeSDGProgress:
			txErr = s.sdgRepo.UpdateStatus(txCtx, approval.DataID, recordStatus)
		case model.DataTypeGHGEmission:
			txErr = s.ghgRepo.UpdateStatus(txCtx, approval.DataID, recordStatus)
		default:
			txErr = fmt.Errorf("unknown data type: %s", approval.DataType)
		}
		if txErr != nil {
			return fmt.Errorf("failed to update record status: %w", txErr)
		}

		return s.logActivity(txCtx, &caller, action, approval.ID.String(), approval.DataType, map[string]interface{}{
			"data_id":  approval.DataID.String(),
			"comments": req.Comments,
		})
	})
	if err != nil {
		return ApprovalResponse{}, err
	}

	if s.hub != nil {
		s.hub.BroadcastApprovalEvent(ws.ApprovalEvent{
			Event:        "submission." + approval.Status,
			RequestID:    approval.ID.String(),
			DataType:     approval.DataType,
			Status:       approval.Status,
			EnterpriseID: approval.EnterpriseID.String(),
		})
	}

	return s.loadResponse(ctx, approval.ID)
}

// markSubmitted validates ownership and flips the record into the
// submitted state. Returns the record's enterprise ID.
func (s *approvalService) markSubmitted(ctx context.Context, dataType string, dataID uuid.UUID, submitter *model.User) (uuid.UUID, error) {
	switch dataType {
	case model.DataTypeSDGProgress:
		record, err := s.sdgRepo.FindByID(ctx, dataID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("record not found: %w", err)
		}
		if submitter.EnterpriseID == nil || record.EnterpriseID != *submitter.EnterpriseID {
			return uuid.Nil, fmt.Errorf("record does not belong to submitter's enterprise")
		}
		if record.Status != model.RecordStatusDraft && record.Status != model.RecordStatusRejected {
			return uuid.Nil, ErrRecordNotSubmittable
		}
		if err := s.sdgRepo.UpdateStatus(ctx, dataID, model.RecordStatusSubmitted); err != nil {
			return uuid.Nil, err
		}
		return record.EnterpriseID, nil
	case model.DataTypeGHGEmission:
		record, err := s.ghgRepo.FindByID(ctx, dataID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("record not found: %w", err)
		}
		if submitter.EnterpriseID == nil || record.EnterpriseID != *submitter.EnterpriseID {
			return uuid.Nil, fmt.Errorf("record does not belong to submitter's enterprise")
		}
		if record.Status != model.RecordStatusDraft && record.Status != model.RecordStatusRejected {
			return uuid.Nil, ErrRecordNotSubmittable
		}
		if err := s.ghgRepo.UpdateStatus(ctx, dataID, model.RecordStatusSubmitted); err != nil {
			return uuid.Nil, err
		}
		return record.EnterpriseID, nil
	default:
		return uuid.Nil, fmt.Errorf("unknown data type: %s", dataType)
	}
}

func (s *approvalService) resolveRecord(ctx context.Context, req model.ApprovalRequest) interface{} {
	switch req.DataType {
	case model.DataTypeSDGProgress:
		if record, err := s.sdgRepo.FindByID(ctx, req.DataID); err == nil {
			return record
		}
	case model.DataTypeGHGEmission:
		if record, err := s.ghgRepo.FindByID(ctx, req.DataID); err == nil {
			return record
		}
	}
	return nil
}

func (s *approvalService) loadResponse(ctx context.Context, id uuid.UUID) (ApprovalResponse, error) {
	loaded, err := s.approvalRepo.FindByIDWithRelations(ctx, id)
	if err != nil {
		return ApprovalResponse{}, fmt.Errorf("failed to reload approval request: %w", err)
	}
	resp := toApprovalResponse(*loaded)
	resp.Record = s.resolveRecord(ctx, *loaded)
	return resp, nil
}

func (s *approvalService) logActivity(ctx context.Context, userID *uuid.UUID, action, entityID, entityName string, payload map[string]interface{}) error {
	details, _ := json.Marshal(payload)
	entry := model.ActivityLog{
		UserID:     userID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(details),
	}
	if err := s.activityRepo.Create(ctx, &entry); err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}
	return nil
}

func toApprovalResponse(a model.ApprovalRequest) ApprovalResponse {
	resp := ApprovalResponse{
		ID:          a.ID.String(),
		DataType:    a.DataType,
		DataID:      a.DataID.String(),
		Status:      a.Status,
		SubmittedBy: a.SubmittedBy.String(),
		ApproverID:  a.ApproverID.String(),
		Comments:    a.Comments,
		SubmittedAt: a.SubmittedAt.Format(time.RFC3339),
	}
	if a.Submitter != nil {
		resp.SubmitterName = a.Submitter.Name
	}
	if a.Approver != nil {
		resp.ApproverName = a.Approver.Name
	}
	if a.RespondedAt != nil {
		s := a.RespondedAt.Format(time.RFC3339)
		resp.RespondedAt = &s
	}
	return resp
}
