package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"

	"github.com/google/uuid"
)

type esgFixture struct {
	service      ESGService
	sdgRepo      *fakeSDGRepo
	ghgRepo      *fakeGHGRepo
	approvalRepo *fakeApprovalRepo
	activityRepo *fakeActivityRepo

	userID       uuid.UUID
	enterpriseID uuid.UUID
}

func newESGFixture(t *testing.T) *esgFixture {
	t.Helper()

	sdgRepo := &fakeSDGRepo{records: map[uuid.UUID]*model.SDGProgress{}}
	ghgRepo := &fakeGHGRepo{records: map[uuid.UUID]*model.GHGEmission{}}
	approvalRepo := &fakeApprovalRepo{requests: map[uuid.UUID]*model.ApprovalRequest{}}
	activityRepo := &fakeActivityRepo{}

	return &esgFixture{
		service:      NewESGService(sdgRepo, ghgRepo, approvalRepo, activityRepo, fakeTxManager{}),
		sdgRepo:      sdgRepo,
		ghgRepo:      ghgRepo,
		approvalRepo: approvalRepo,
		activityRepo: activityRepo,
		userID:       uuid.New(),
		enterpriseID: uuid.New(),
	}
}

func intp(v int) *int { return &v }

func TestCreateSDGProgressStartsAsDraft(t *testing.T) {
	f := newESGFixture(t)

	record, err := f.service.CreateSDGProgress(context.Background(), f.userID.String(), f.enterpriseID.String(), SDGProgressRequest{
		SDGNumber:          13,
		Description:        "Climate action plan rollout",
		ProgressPercentage: intp(25),
		ReportingPeriod:    "2026-Q3",
	})
	if err != nil {
		t.Fatalf("CreateSDGProgress failed: %v", err)
	}

	if record.Status != model.RecordStatusDraft {
		t.Errorf("status = %q, want %q", record.Status, model.RecordStatusDraft)
	}
	if record.EnterpriseID != f.enterpriseID {
		t.Error("record not scoped to the caller's enterprise")
	}
	if len(f.activityRepo.entries) != 1 || f.activityRepo.entries[0].Action != model.ActionCreateRecord {
		t.Errorf("expected one %s activity entry", model.ActionCreateRecord)
	}
}

func TestUpdateRejectsSubmittedRecord(t *testing.T) {
	f := newESGFixture(t)

	record := &model.SDGProgress{
		ID:              uuid.New(),
		EnterpriseID:    f.enterpriseID,
		SDGNumber:       6,
		Description:     "Clean water access",
		ReportingPeriod: "2026-Q3",
		Status:          model.RecordStatusSubmitted,
		CreatedBy:       f.userID,
	}
	f.sdgRepo.records[record.ID] = record

	_, err := f.service.UpdateSDGProgress(context.Background(), f.userID.String(), f.enterpriseID.String(), record.ID.String(), SDGProgressRequest{
		SDGNumber:          6,
		Description:        "Clean water access (edited)",
		ProgressPercentage: intp(50),
		ReportingPeriod:    "2026-Q3",
	})
	if !errors.Is(err, ErrRecordLocked) {
		t.Fatalf("err = %v, want ErrRecordLocked", err)
	}
}

func TestDeleteRejectsRecordWithPendingApproval(t *testing.T) {
	f := newESGFixture(t)

	record := &model.GHGEmission{
		ID:              uuid.New(),
		EnterpriseID:    f.enterpriseID,
		Scope:           model.EmissionScope1,
		Source:          "Diesel generators",
		Unit:            "tCO2e",
		ReportingPeriod: "2026-Q3",
		Status:          model.RecordStatusDraft,
		CreatedBy:       f.userID,
	}
	f.ghgRepo.records[record.ID] = record
	f.approvalRepo.requests[uuid.New()] = &model.ApprovalRequest{
		ID:          uuid.New(),
		DataID:      record.ID,
		DataType:    model.DataTypeGHGEmission,
		Status:      model.ApprovalPending,
		SubmittedAt: time.Now(),
	}

	err := f.service.DeleteGHGEmission(context.Background(), f.userID.String(), f.enterpriseID.String(), record.ID.String())
	if !errors.Is(err, ErrRecordLocked) {
		t.Fatalf("err = %v, want ErrRecordLocked", err)
	}
	if _, ok := f.ghgRepo.records[record.ID]; !ok {
		t.Error("locked record was deleted")
	}
}

func TestUpdateHidesForeignRecords(t *testing.T) {
	f := newESGFixture(t)

	record := &model.SDGProgress{
		ID:              uuid.New(),
		EnterpriseID:    uuid.New(), // different tenant
		SDGNumber:       3,
		Description:     "Workplace health program",
		ReportingPeriod: "2026-Q3",
		Status:          model.RecordStatusDraft,
	}
	f.sdgRepo.records[record.ID] = record

	_, err := f.service.UpdateSDGProgress(context.Background(), f.userID.String(), f.enterpriseID.String(), record.ID.String(), SDGProgressRequest{
		SDGNumber:          3,
		Description:        "edited",
		ProgressPercentage: intp(10),
		ReportingPeriod:    "2026-Q3",
	})
	if err == nil {
		t.Fatal("expected not-found error for a record in another enterprise")
	}
}

func TestCreateGHGEmissionRejectsNegativeValue(t *testing.T) {
	f := newESGFixture(t)

	_, err := f.service.CreateGHGEmission(context.Background(), f.userID.String(), f.enterpriseID.String(), GHGEmissionRequest{
		Scope:           model.EmissionScope2,
		Source:          "Purchased electricity",
		Value:           "-12.5",
		Unit:            "tCO2e",
		ReportingPeriod: "2026-Q3",
	})
	if err == nil {
		t.Fatal("expected error for negative emission value")
	}
}

func TestUpdateRejectedRecordIsEditable(t *testing.T) {
	f := newESGFixture(t)

	record := &model.SDGProgress{
		ID:              uuid.New(),
		EnterpriseID:    f.enterpriseID,
		SDGNumber:       7,
		Description:     "Renewables",
		ReportingPeriod: "2026-Q3",
		Status:          model.RecordStatusRejected,
		CreatedBy:       f.userID,
	}
	f.sdgRepo.records[record.ID] = record

	updated, err := f.service.UpdateSDGProgress(context.Background(), f.userID.String(), f.enterpriseID.String(), record.ID.String(), SDGProgressRequest{
		SDGNumber:          7,
		Description:        "Renewables, corrected figures",
		ProgressPercentage: intp(45),
		ReportingPeriod:    "2026-Q3",
	})
	if err != nil {
		t.Fatalf("UpdateSDGProgress failed: %v", err)
	}
	if updated.ProgressPercentage != 45 {
		t.Errorf("progress = %d, want 45", updated.ProgressPercentage)
	}
}
