package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeEHSRepo struct {
	audits map[uuid.UUID]*model.EHSAudit
}

func (r *fakeEHSRepo) Create(_ context.Context, audit *model.EHSAudit) error {
	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}
	for i := range audit.Items {
		if audit.Items[i].ID == uuid.Nil {
			audit.Items[i].ID = uuid.New()
		}
		audit.Items[i].AuditID = audit.ID
	}
	r.audits[audit.ID] = audit
	return nil
}

func (r *fakeEHSRepo) FindByID(_ context.Context, id uuid.UUID) (*model.EHSAudit, error) {
	if audit, ok := r.audits[id]; ok {
		copied := *audit
		copied.Items = nil
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEHSRepo) FindByIDWithItems(_ context.Context, id uuid.UUID) (*model.EHSAudit, error) {
	if audit, ok := r.audits[id]; ok {
		copied := *audit
		copied.Items = append([]model.AuditChecklistItem(nil), audit.Items...)
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEHSRepo) ListByEnterprise(_ context.Context, enterpriseID uuid.UUID, status string, _, _ int) ([]model.EHSAudit, int64, error) {
	var out []model.EHSAudit
	for _, audit := range r.audits {
		if audit.EnterpriseID == enterpriseID && (status == "" || audit.Status == status) {
			out = append(out, *audit)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeEHSRepo) ListByAuditor(_ context.Context, auditorID uuid.UUID, status string, _, _ int) ([]model.EHSAudit, int64, error) {
	var out []model.EHSAudit
	for _, audit := range r.audits {
		if audit.AuditorID == auditorID && (status == "" || audit.Status == status) {
			out = append(out, *audit)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeEHSRepo) Update(_ context.Context, audit *model.EHSAudit) error {
	stored, ok := r.audits[audit.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	items := stored.Items
	copied := *audit
	if copied.Items == nil {
		copied.Items = items
	}
	r.audits[audit.ID] = &copied
	return nil
}

func (r *fakeEHSRepo) UpdateItem(_ context.Context, item *model.AuditChecklistItem) error {
	audit, ok := r.audits[item.AuditID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range audit.Items {
		if audit.Items[i].ID == item.ID {
			audit.Items[i] = *item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type ehsFixture struct {
	service   EHSService
	auditRepo *fakeEHSRepo

	enterpriseID uuid.UUID
	scheduler    *model.User
	auditor      *model.User
}

func newEHSFixture(t *testing.T) *ehsFixture {
	t.Helper()

	enterpriseID := uuid.New()
	scheduler := &model.User{
		ID:           uuid.New(),
		Name:         "Mira Ops",
		Email:        "mira@acme.test",
		Role:         model.RoleEnterprise,
		EnterpriseID: &enterpriseID,
	}
	auditor := &model.User{
		ID:    uuid.New(),
		Name:  "Jon Auditor",
		Email: "jon@audit.test",
		Role:  model.RoleAuditor,
	}

	userRepo := &fakeUserRepo{users: map[string]*model.User{
		scheduler.ID.String(): scheduler,
		auditor.ID.String():   auditor,
	}}
	auditRepo := &fakeEHSRepo{audits: map[uuid.UUID]*model.EHSAudit{}}

	svc := NewEHSService(auditRepo, userRepo, &fakeActivityRepo{}, fakeTxManager{})

	return &ehsFixture{
		service:      svc,
		auditRepo:    auditRepo,
		enterpriseID: enterpriseID,
		scheduler:    scheduler,
		auditor:      auditor,
	}
}

func (f *ehsFixture) schedule(t *testing.T, questions []string) *model.EHSAudit {
	t.Helper()
	audit, err := f.service.Schedule(context.Background(), f.scheduler.ID.String(), f.enterpriseID.String(), ScheduleAuditRequest{
		Site:          "Plant 3",
		AuditType:     model.AuditTypeEnvironmental,
		ScheduledDate: time.Now().Format("2006-01-02"),
		AuditorID:     f.auditor.ID.String(),
		Questions:     questions,
	})
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	return audit
}

func TestScheduleSeedsChecklist(t *testing.T) {
	f := newEHSFixture(t)

	audit := f.schedule(t, []string{"Spill containment in place?", "Waste manifests current?"})

	if audit.Status != model.AuditScheduled {
		t.Errorf("status = %q, want %q", audit.Status, model.AuditScheduled)
	}
	if len(audit.Items) != 2 {
		t.Fatalf("checklist items = %d, want 2", len(audit.Items))
	}
	for _, item := range audit.Items {
		if item.Score != nil {
			t.Errorf("fresh item %q already scored", item.Question)
		}
	}
}

func TestScheduleRejectsNonAuditor(t *testing.T) {
	f := newEHSFixture(t)

	_, err := f.service.Schedule(context.Background(), f.scheduler.ID.String(), f.enterpriseID.String(), ScheduleAuditRequest{
		Site:          "Plant 3",
		AuditType:     model.AuditTypeEnvironmental,
		ScheduledDate: "2026-09-15",
		AuditorID:     f.scheduler.ID.String(), // enterprise role, not auditor
		Questions:     []string{"Anything?"},
	})
	if err == nil {
		t.Fatal("expected error assigning a non-auditor")
	}
}

func TestGetAuditHidesOtherEnterprises(t *testing.T) {
	f := newEHSFixture(t)
	audit := f.schedule(t, []string{"Q1"})

	got, err := f.service.GetAudit(context.Background(), f.enterpriseID.String(), audit.ID.String())
	if err != nil {
		t.Fatalf("GetAudit failed for owning enterprise: %v", err)
	}
	if len(got.Items) != 1 {
		t.Errorf("checklist items = %d, want 1", len(got.Items))
	}

	if _, err := f.service.GetAudit(context.Background(), uuid.NewString(), audit.ID.String()); err == nil {
		t.Fatal("expected error reading another enterprise's audit")
	}
	if _, err := f.service.GetAudit(context.Background(), "", audit.ID.String()); err == nil {
		t.Fatal("expected error reading an audit with no enterprise scope")
	}
}

func TestGetAssignedAuditRequiresAssignment(t *testing.T) {
	f := newEHSFixture(t)
	audit := f.schedule(t, []string{"Q1"})

	got, err := f.service.GetAssignedAudit(context.Background(), f.auditor.ID.String(), audit.ID.String())
	if err != nil {
		t.Fatalf("GetAssignedAudit failed for assigned auditor: %v", err)
	}
	if len(got.Items) != 1 {
		t.Errorf("checklist items = %d, want 1", len(got.Items))
	}

	if _, err := f.service.GetAssignedAudit(context.Background(), uuid.NewString(), audit.ID.String()); err == nil {
		t.Fatal("expected error reading an audit assigned to someone else")
	}
}

func TestCompleteComputesOverallScore(t *testing.T) {
	f := newEHSFixture(t)
	audit := f.schedule(t, []string{"Q1", "Q2", "Q3"})

	if _, err := f.service.Start(context.Background(), f.auditor.ID.String(), audit.ID.String()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	scores := []int{5, 4, 3}
	for i, item := range audit.Items {
		score := scores[i]
		err := f.service.AnswerItem(context.Background(), f.auditor.ID.String(), audit.ID.String(), item.ID.String(), AnswerItemRequest{
			Response: "checked",
			Score:    &score,
		})
		if err != nil {
			t.Fatalf("AnswerItem %d failed: %v", i, err)
		}
	}

	completed, err := f.service.Complete(context.Background(), f.auditor.ID.String(), audit.ID.String())
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if completed.Status != model.AuditCompleted {
		t.Errorf("status = %q, want %q", completed.Status, model.AuditCompleted)
	}
	if completed.OverallScore == nil || completed.OverallScore.String() != "4" {
		t.Errorf("overall score = %v, want 4", completed.OverallScore)
	}
	if completed.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
}

func TestCompleteRequiresAllItemsScored(t *testing.T) {
	f := newEHSFixture(t)
	audit := f.schedule(t, []string{"Q1", "Q2"})

	if _, err := f.service.Start(context.Background(), f.auditor.ID.String(), audit.ID.String()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	score := 5
	if err := f.service.AnswerItem(context.Background(), f.auditor.ID.String(), audit.ID.String(), audit.Items[0].ID.String(), AnswerItemRequest{Score: &score}); err != nil {
		t.Fatalf("AnswerItem failed: %v", err)
	}

	_, err := f.service.Complete(context.Background(), f.auditor.ID.String(), audit.ID.String())
	if !errors.Is(err, ErrUnscoredItems) {
		t.Fatalf("err = %v, want ErrUnscoredItems", err)
	}
}

func TestAuditLifecycleGuards(t *testing.T) {
	f := newEHSFixture(t)
	audit := f.schedule(t, []string{"Q1"})

	// Cannot answer or complete a scheduled audit.
	score := 3
	err := f.service.AnswerItem(context.Background(), f.auditor.ID.String(), audit.ID.String(), audit.Items[0].ID.String(), AnswerItemRequest{Score: &score})
	if !errors.Is(err, ErrAuditNotEditable) {
		t.Fatalf("AnswerItem before start: err = %v, want ErrAuditNotEditable", err)
	}

	// Only the assigned auditor can start it.
	if _, err := f.service.Start(context.Background(), f.scheduler.ID.String(), audit.ID.String()); err == nil {
		t.Fatal("expected error starting audit as non-assigned user")
	}

	if _, err := f.service.Start(context.Background(), f.auditor.ID.String(), audit.ID.String()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Starting twice is refused.
	if _, err := f.service.Start(context.Background(), f.auditor.ID.String(), audit.ID.String()); !errors.Is(err, ErrAuditNotEditable) {
		t.Fatalf("second Start: err = %v, want ErrAuditNotEditable", err)
	}
}
