package service

import (
	"context"
	"time"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SDGGoalProgress is one bar of the SDG dashboard widget.
type SDGGoalProgress struct {
	SDGNumber       int     `json:"sdg_number"`
	AverageProgress float64 `json:"average_progress"`
	RecordCount     int64   `json:"record_count"`
}

// ScopeTotal is the emission total for one GHG scope.
type ScopeTotal struct {
	Scope int             `json:"scope"`
	Total decimal.Decimal `json:"total"`
	Unit  string          `json:"unit"`
}

// EnterpriseDashboard aggregates the widgets of the enterprise landing page.
type EnterpriseDashboard struct {
	SDGProgress      []SDGGoalProgress `json:"sdg_progress"`
	EmissionsByScope []ScopeTotal      `json:"emissions_by_scope"`
	ApprovalCounts   map[string]int64  `json:"approval_counts"`
	ComplianceCounts map[string]int64  `json:"compliance_counts"`
	UpcomingAudits   []model.EHSAudit  `json:"upcoming_audits"`
}

// AdminDashboard aggregates platform-wide counts for fandoro_admin users.
type AdminDashboard struct {
	EnterpriseCount  int64            `json:"enterprise_count"`
	UsersByRole      map[string]int64 `json:"users_by_role"`
	PendingApprovals int64            `json:"pending_approvals"`
	OpenCompliance   int64            `json:"open_compliance_issues"`
}

// DashboardService computes read-only aggregates for the dashboards.
// Widgets are independent; a failure in one query fails the whole
// response rather than rendering partial numbers.
type DashboardService interface {
	EnterpriseDashboard(ctx context.Context, enterpriseID string) (EnterpriseDashboard, error)
	AdminDashboard(ctx context.Context) (AdminDashboard, error)
}

type dashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) DashboardService {
	return &dashboardService{db: db}
}

func (s *dashboardService) EnterpriseDashboard(ctx context.Context, enterpriseID string) (EnterpriseDashboard, error) {
	var dashboard EnterpriseDashboard

	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return dashboard, err
	}

	// SDG average progress per goal
	var sdgRows []SDGGoalProgress
	err = s.db.WithContext(ctx).Model(&model.SDGProgress{}).
		Select("sdg_number, AVG(progress_percentage) as average_progress, COUNT(*) as record_count").
		Where("enterprise_id = ?", entID).
		Group("sdg_number").
		Order("sdg_number").
		Scan(&sdgRows).Error
	if err != nil {
		return dashboard, err
	}
	dashboard.SDGProgress = sdgRows

	// GHG totals per scope
	var scopeRows []ScopeTotal
	err = s.db.WithContext(ctx).Model(&model.GHGEmission{}).
		Select("scope, SUM(value) as total, MIN(unit) as unit").
		Where("enterprise_id = ?", entID).
		Group("scope").
		Order("scope").
		Scan(&scopeRows).Error
	if err != nil {
		return dashboard, err
	}
	dashboard.EmissionsByScope = scopeRows

	// Approval requests per status
	dashboard.ApprovalCounts, err = s.countByColumn(ctx, &model.ApprovalRequest{}, "status", "enterprise_id = ?", entID)
	if err != nil {
		return dashboard, err
	}

	// Unresolved compliance issues per severity band
	dashboard.ComplianceCounts, err = s.countByColumn(ctx, &model.ComplianceIssue{}, "severity",
		"enterprise_id = ? AND status != ?", entID, model.ComplianceResolved)
	if err != nil {
		return dashboard, err
	}

	// Next five scheduled audits
	err = s.db.WithContext(ctx).Model(&model.EHSAudit{}).
		Preload("Auditor").
		Where("enterprise_id = ? AND status != ? AND scheduled_date >= ?", entID, model.AuditCompleted, time.Now().AddDate(0, 0, -1)).
		Order("scheduled_date").
		Limit(5).
		Find(&dashboard.UpcomingAudits).Error
	if err != nil {
		return dashboard, err
	}

	return dashboard, nil
}

func (s *dashboardService) AdminDashboard(ctx context.Context) (AdminDashboard, error) {
	var dashboard AdminDashboard

	if err := s.db.WithContext(ctx).Model(&model.Enterprise{}).Count(&dashboard.EnterpriseCount).Error; err != nil {
		return dashboard, err
	}

	usersByRole, err := s.countByColumn(ctx, &model.User{}, "role", "")
	if err != nil {
		return dashboard, err
	}
	dashboard.UsersByRole = usersByRole

	if err := s.db.WithContext(ctx).Model(&model.ApprovalRequest{}).
		Where("status = ?", model.ApprovalPending).Count(&dashboard.PendingApprovals).Error; err != nil {
		return dashboard, err
	}

	if err := s.db.WithContext(ctx).Model(&model.ComplianceIssue{}).
		Where("status != ?", model.ComplianceResolved).Count(&dashboard.OpenCompliance).Error; err != nil {
		return dashboard, err
	}

	return dashboard, nil
}

func (s *dashboardService) countByColumn(ctx context.Context, modelPtr interface{}, column string, where string, args ...interface{}) (map[string]int64, error) {
	type row struct {
		Key   string
		Count int64
	}
	var rows []row

	query := s.db.WithContext(ctx).Model(modelPtr).Select(column + " as key, COUNT(*) as count").Group(column)
	if where != "" {
		query = query.Where(where, args...)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Key] = r.Count
	}
	return counts, nil
}
