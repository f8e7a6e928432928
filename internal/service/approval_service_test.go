package service

import (
	"context"
	"errors"
	"testing"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- in-memory fakes ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID.String()] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) List(_ context.Context, _, _ string, _, _ int) ([]model.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.users[user.ID.String()] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakeSDGRepo struct {
	records map[uuid.UUID]*model.SDGProgress
}

func (r *fakeSDGRepo) Create(_ context.Context, record *model.SDGProgress) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.records[record.ID] = record
	return nil
}

func (r *fakeSDGRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SDGProgress, error) {
	if rec, ok := r.records[id]; ok {
		copied := *rec
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSDGRepo) List(_ context.Context, _ repository.ESGRecordFilter) ([]model.SDGProgress, int64, error) {
	return nil, 0, nil
}

func (r *fakeSDGRepo) Update(_ context.Context, record *model.SDGProgress) error {
	r.records[record.ID] = record
	return nil
}

func (r *fakeSDGRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	rec, ok := r.records[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rec.Status = status
	return nil
}

func (r *fakeSDGRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

type fakeGHGRepo struct {
	records map[uuid.UUID]*model.GHGEmission
}

func (r *fakeGHGRepo) Create(_ context.Context, record *model.GHGEmission) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.records[record.ID] = record
	return nil
}

func (r *fakeGHGRepo) FindByID(_ context.Context, id uuid.UUID) (*model.GHGEmission, error) {
	if rec, ok := r.records[id]; ok {
		copied := *rec
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeGHGRepo) List(_ context.Context, _ repository.ESGRecordFilter) ([]model.GHGEmission, int64, error) {
	return nil, 0, nil
}

func (r *fakeGHGRepo) Update(_ context.Context, record *model.GHGEmission) error {
	r.records[record.ID] = record
	return nil
}

func (r *fakeGHGRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	rec, ok := r.records[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rec.Status = status
	return nil
}

func (r *fakeGHGRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

type fakeApprovalRepo struct {
	requests map[uuid.UUID]*model.ApprovalRequest
}

func (r *fakeApprovalRepo) Create(_ context.Context, req *model.ApprovalRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	r.requests[req.ID] = req
	return nil
}

func (r *fakeApprovalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ApprovalRequest, error) {
	if req, ok := r.requests[id]; ok {
		copied := *req
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeApprovalRepo) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeApprovalRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeApprovalRepo) FindPending(_ context.Context, dataID uuid.UUID, dataType string) (*model.ApprovalRequest, error) {
	for _, req := range r.requests {
		if req.DataID == dataID && req.DataType == dataType && req.Status == model.ApprovalPending {
			copied := *req
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeApprovalRepo) ListByApprover(_ context.Context, approverID uuid.UUID, status string, _, _ int) ([]model.ApprovalRequest, int64, error) {
	var out []model.ApprovalRequest
	for _, req := range r.requests {
		if req.ApproverID == approverID && (status == "" || req.Status == status) {
			out = append(out, *req)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeApprovalRepo) ListBySubmitter(_ context.Context, submitterID uuid.UUID, status string, _, _ int) ([]model.ApprovalRequest, int64, error) {
	var out []model.ApprovalRequest
	for _, req := range r.requests {
		if req.SubmittedBy == submitterID && (status == "" || req.Status == status) {
			out = append(out, *req)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeApprovalRepo) Update(_ context.Context, req *model.ApprovalRequest) error {
	if _, ok := r.requests[req.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

type fakeActivityRepo struct {
	entries []model.ActivityLog
}

func (r *fakeActivityRepo) Create(_ context.Context, entry *model.ActivityLog) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeActivityRepo) List(_ context.Context, _ string, _, _ int) ([]model.ActivityLog, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

// --- fixture ---

type approvalFixture struct {
	service      ApprovalService
	approvalRepo *fakeApprovalRepo
	sdgRepo      *fakeSDGRepo
	ghgRepo      *fakeGHGRepo
	activityRepo *fakeActivityRepo

	enterpriseID uuid.UUID
	submitter    *model.User
	approver     *model.User
	record       *model.SDGProgress
}

func newApprovalFixture(t *testing.T) *approvalFixture {
	t.Helper()

	enterpriseID := uuid.New()
	submitter := &model.User{
		ID:           uuid.New(),
		Name:         "Asha Employee",
		Email:        "asha@acme.test",
		Role:         model.RoleEmployee,
		EnterpriseID: &enterpriseID,
	}
	approver := &model.User{
		ID:           uuid.New(),
		Name:         "Omar Manager",
		Email:        "omar@acme.test",
		Role:         model.RoleEnterprise,
		EnterpriseID: &enterpriseID,
	}

	record := &model.SDGProgress{
		ID:                 uuid.New(),
		EnterpriseID:       enterpriseID,
		SDGNumber:          7,
		Description:        "Renewable energy share",
		ProgressPercentage: 40,
		ReportingPeriod:    "2026-Q2",
		Status:             model.RecordStatusDraft,
		CreatedBy:          submitter.ID,
	}

	userRepo := &fakeUserRepo{users: map[string]*model.User{
		submitter.ID.String(): submitter,
		approver.ID.String():  approver,
	}}
	sdgRepo := &fakeSDGRepo{records: map[uuid.UUID]*model.SDGProgress{record.ID: record}}
	ghgRepo := &fakeGHGRepo{records: map[uuid.UUID]*model.GHGEmission{}}
	approvalRepo := &fakeApprovalRepo{requests: map[uuid.UUID]*model.ApprovalRequest{}}
	activityRepo := &fakeActivityRepo{}

	svc := NewApprovalService(approvalRepo, sdgRepo, ghgRepo, userRepo, activityRepo, fakeTxManager{}, nil)

	return &approvalFixture{
		service:      svc,
		approvalRepo: approvalRepo,
		sdgRepo:      sdgRepo,
		ghgRepo:      ghgRepo,
		activityRepo: activityRepo,
		enterpriseID: enterpriseID,
		submitter:    submitter,
		approver:     approver,
		record:       record,
	}
}

func (f *approvalFixture) submit(t *testing.T) ApprovalResponse {
	t.Helper()
	resp, err := f.service.Submit(context.Background(), f.submitter.ID.String(), SubmitRequest{
		DataType:   model.DataTypeSDGProgress,
		DataID:     f.record.ID.String(),
		ApproverID: f.approver.ID.String(),
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	return resp
}

// --- tests ---

func TestSubmitCreatesPendingRequest(t *testing.T) {
	f := newApprovalFixture(t)

	resp := f.submit(t)

	if resp.Status != model.ApprovalPending {
		t.Errorf("approval status = %q, want %q", resp.Status, model.ApprovalPending)
	}
	if got := f.sdgRepo.records[f.record.ID].Status; got != model.RecordStatusSubmitted {
		t.Errorf("record status = %q, want %q", got, model.RecordStatusSubmitted)
	}
	if len(f.activityRepo.entries) != 1 || f.activityRepo.entries[0].Action != model.ActionSubmitForReview {
		t.Errorf("expected one %s activity entry, got %+v", model.ActionSubmitForReview, f.activityRepo.entries)
	}
}

func TestSubmitRejectsSelfApproval(t *testing.T) {
	f := newApprovalFixture(t)

	_, err := f.service.Submit(context.Background(), f.submitter.ID.String(), SubmitRequest{
		DataType:   model.DataTypeSDGProgress,
		DataID:     f.record.ID.String(),
		ApproverID: f.submitter.ID.String(),
	})
	if !errors.Is(err, ErrSelfApproval) {
		t.Fatalf("err = %v, want ErrSelfApproval", err)
	}
	if got := f.sdgRepo.records[f.record.ID].Status; got != model.RecordStatusDraft {
		t.Errorf("record status = %q, want draft untouched", got)
	}
}

func TestSubmitRejectsWhileUnderReview(t *testing.T) {
	f := newApprovalFixture(t)
	f.submit(t)

	// The record is already in the submitted state.
	_, err := f.service.Submit(context.Background(), f.submitter.ID.String(), SubmitRequest{
		DataType:   model.DataTypeSDGProgress,
		DataID:     f.record.ID.String(),
		ApproverID: f.approver.ID.String(),
	})
	if !errors.Is(err, ErrRecordNotSubmittable) {
		t.Fatalf("err = %v, want ErrRecordNotSubmittable", err)
	}
}

func TestSubmitRejectsDuplicatePending(t *testing.T) {
	f := newApprovalFixture(t)
	f.submit(t)

	// Force the record back to draft while its pending request survives, as
	// a lost race between two submitters would.
	f.sdgRepo.records[f.record.ID].Status = model.RecordStatusDraft

	_, err := f.service.Submit(context.Background(), f.submitter.ID.String(), SubmitRequest{
		DataType:   model.DataTypeSDGProgress,
		DataID:     f.record.ID.String(),
		ApproverID: f.approver.ID.String(),
	})
	if !errors.Is(err, ErrPendingApprovalExists) {
		t.Fatalf("err = %v, want ErrPendingApprovalExists", err)
	}
}

func TestSubmitRejectsForeignRecord(t *testing.T) {
	f := newApprovalFixture(t)
	other := uuid.New()
	f.sdgRepo.records[f.record.ID].EnterpriseID = other

	_, err := f.service.Submit(context.Background(), f.submitter.ID.String(), SubmitRequest{
		DataType:   model.DataTypeSDGProgress,
		DataID:     f.record.ID.String(),
		ApproverID: f.approver.ID.String(),
	})
	if err == nil {
		t.Fatal("expected error submitting a record from another enterprise")
	}
}

func TestDecideApprove(t *testing.T) {
	f := newApprovalFixture(t)
	submitted := f.submit(t)

	resp, err := f.service.Decide(context.Background(), submitted.ID, f.approver.ID.String(), DecideRequest{
		Approve:  true,
		Comments: "Looks correct",
	})
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	if resp.Status != model.ApprovalApproved {
		t.Errorf("approval status = %q, want %q", resp.Status, model.ApprovalApproved)
	}
	if resp.RespondedAt == nil {
		t.Error("RespondedAt not set on decided request")
	}
	if got := f.sdgRepo.records[f.record.ID].Status; got != model.RecordStatusApproved {
		t.Errorf("record status = %q, want %q", got, model.RecordStatusApproved)
	}
}

func TestDecideReject(t *testing.T) {
	f := newApprovalFixture(t)
	submitted := f.submit(t)

	resp, err := f.service.Decide(context.Background(), submitted.ID, f.approver.ID.String(), DecideRequest{
		Approve:  false,
		Comments: "Numbers do not reconcile",
	})
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	if resp.Status != model.ApprovalRejected {
		t.Errorf("approval status = %q, want %q", resp.Status, model.ApprovalRejected)
	}
	if resp.Comments != "Numbers do not reconcile" {
		t.Errorf("comments = %q", resp.Comments)
	}
	if got := f.sdgRepo.records[f.record.ID].Status; got != model.RecordStatusRejected {
		t.Errorf("record status = %q, want %q", got, model.RecordStatusRejected)
	}
}

func TestDecideTerminalStateIsImmutable(t *testing.T) {
	f := newApprovalFixture(t)
	submitted := f.submit(t)

	if _, err := f.service.Decide(context.Background(), submitted.ID, f.approver.ID.String(), DecideRequest{Approve: true}); err != nil {
		t.Fatalf("first Decide failed: %v", err)
	}

	_, err := f.service.Decide(context.Background(), submitted.ID, f.approver.ID.String(), DecideRequest{Approve: false})
	if !errors.Is(err, ErrApprovalAlreadyResolved) {
		t.Fatalf("err = %v, want ErrApprovalAlreadyResolved", err)
	}

	// First decision stands.
	id, _ := uuid.Parse(submitted.ID)
	if got := f.approvalRepo.requests[id].Status; got != model.ApprovalApproved {
		t.Errorf("approval status = %q after failed re-decide, want %q", got, model.ApprovalApproved)
	}
	if got := f.sdgRepo.records[f.record.ID].Status; got != model.RecordStatusApproved {
		t.Errorf("record status = %q after failed re-decide, want %q", got, model.RecordStatusApproved)
	}
}

func TestDecideRequiresAssignedApprover(t *testing.T) {
	f := newApprovalFixture(t)
	submitted := f.submit(t)

	_, err := f.service.Decide(context.Background(), submitted.ID, f.submitter.ID.String(), DecideRequest{Approve: true})
	if !errors.Is(err, ErrNotApprover) {
		t.Fatalf("err = %v, want ErrNotApprover", err)
	}
}

func TestListForUserDirections(t *testing.T) {
	f := newApprovalFixture(t)
	f.submit(t)

	inbox, total, err := f.service.ListForUser(context.Background(), f.approver.ID.String(), DirectionInbox, "", 1, 20)
	if err != nil {
		t.Fatalf("inbox list failed: %v", err)
	}
	if total != 1 || len(inbox) != 1 {
		t.Fatalf("inbox total = %d, want 1", total)
	}

	outbox, total, err := f.service.ListForUser(context.Background(), f.submitter.ID.String(), DirectionOutbox, "", 1, 20)
	if err != nil {
		t.Fatalf("outbox list failed: %v", err)
	}
	if total != 1 || len(outbox) != 1 {
		t.Fatalf("outbox total = %d, want 1", total)
	}

	// Approver has nothing in their outbox; submitter nothing in their inbox.
	if _, total, _ := f.service.ListForUser(context.Background(), f.approver.ID.String(), DirectionOutbox, "", 1, 20); total != 0 {
		t.Errorf("approver outbox total = %d, want 0", total)
	}
	if _, total, _ := f.service.ListForUser(context.Background(), f.submitter.ID.String(), DirectionInbox, "", 1, 20); total != 0 {
		t.Errorf("submitter inbox total = %d, want 0", total)
	}

	if _, _, err := f.service.ListForUser(context.Background(), f.submitter.ID.String(), "sideways", "", 1, 20); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestSubmitResubmitAfterRejection(t *testing.T) {
	f := newApprovalFixture(t)
	submitted := f.submit(t)

	if _, err := f.service.Decide(context.Background(), submitted.ID, f.approver.ID.String(), DecideRequest{Approve: false}); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	// A rejected record may be corrected and resubmitted.
	resp := f.submit(t)
	if resp.Status != model.ApprovalPending {
		t.Errorf("resubmission status = %q, want %q", resp.Status, model.ApprovalPending)
	}
	if resp.RespondedAt != nil {
		t.Error("fresh request should not carry a response time")
	}
}
