package rbac

import (
	"testing"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
)

func TestPolicyForKnownRoles(t *testing.T) {
	for _, role := range model.AllRoles {
		policy, ok := PolicyFor(role)
		if !ok {
			t.Errorf("no policy for role %q", role)
			continue
		}
		if policy.DefaultRoute == "" {
			t.Errorf("role %q has no default route", role)
		}
		if len(policy.AllowedPrefixes) == 0 {
			t.Errorf("role %q has no allowed prefixes", role)
		}
	}
}

func TestPolicyForUnknownRole(t *testing.T) {
	if _, ok := PolicyFor("superuser"); ok {
		t.Error("expected no policy for unknown role")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		role string
		path string
		want Decision
	}{
		{
			name: "enterprise reaches its dashboard",
			role: model.RoleEnterprise,
			path: "/dashboard/enterprise",
			want: Decision{Allowed: true},
		},
		{
			name: "enterprise reaches nested esg page",
			role: model.RoleEnterprise,
			path: "/esg/sdg",
			want: Decision{Allowed: true},
		},
		{
			name: "auditor redirected from enterprise dashboard",
			role: model.RoleAuditor,
			path: "/dashboard/enterprise",
			want: Decision{RedirectTo: "/auditor/dashboard"},
		},
		{
			name: "auditor reaches assigned audits",
			role: model.RoleAuditor,
			path: "/auditor/audits",
			want: Decision{Allowed: true},
		},
		{
			name: "prefix match does not leak to siblings",
			role: model.RoleAuditor,
			path: "/auditorium",
			want: Decision{RedirectTo: "/auditor/dashboard"},
		},
		{
			name: "employee redirected from admin area",
			role: model.RoleEmployee,
			path: "/admin/users",
			want: Decision{RedirectTo: "/employee/dashboard"},
		},
		{
			name: "admin reaches activity log",
			role: model.RoleFandoroAdmin,
			path: "/admin/activity",
			want: Decision{Allowed: true},
		},
		{
			name: "unknown role resolves to not found",
			role: "superuser",
			path: "/dashboard/enterprise",
			want: Decision{NotFound: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.role, tt.path)
			if got != tt.want {
				t.Errorf("Resolve(%q, %q) = %+v, want %+v", tt.role, tt.path, got, tt.want)
			}
		})
	}
}
