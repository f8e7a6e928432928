package rbac

import (
	"strings"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
)

// MenuItem is one navigation entry shown to a role.
type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Policy describes what a role may reach and where it lands by default.
// The table is compiled in; roles and their routes are not configurable
// at runtime.
type Policy struct {
	AllowedPrefixes []string   `json:"allowed_prefixes"`
	DefaultRoute    string     `json:"default_route"`
	MenuItems       []MenuItem `json:"menu_items"`
}

// Decision is the outcome of resolving a path for a role.
type Decision struct {
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirect_to,omitempty"`
	NotFound   bool   `json:"not_found,omitempty"`
}

var policies = map[string]Policy{
	model.RoleFandoroAdmin: {
		AllowedPrefixes: []string{"/admin", "/dashboard/admin"},
		DefaultRoute:    "/admin/dashboard",
		MenuItems: []MenuItem{
			{Label: "Dashboard", Path: "/admin/dashboard"},
			{Label: "Enterprises", Path: "/admin/enterprises"},
			{Label: "Users", Path: "/admin/users"},
			{Label: "Activity Log", Path: "/admin/activity"},
		},
	},
	model.RoleEnterprise: {
		AllowedPrefixes: []string{
			"/dashboard/enterprise", "/esg", "/approvals", "/stakeholders",
			"/compliance", "/ehs", "/materiality", "/reports",
		},
		DefaultRoute: "/dashboard/enterprise",
		MenuItems: []MenuItem{
			{Label: "Dashboard", Path: "/dashboard/enterprise"},
			{Label: "SDG Progress", Path: "/esg/sdg"},
			{Label: "GHG Emissions", Path: "/esg/ghg"},
			{Label: "Approvals", Path: "/approvals"},
			{Label: "Stakeholders", Path: "/stakeholders"},
			{Label: "Compliance", Path: "/compliance"},
			{Label: "EHS Audits", Path: "/ehs/audits"},
			{Label: "Materiality", Path: "/materiality"},
			{Label: "Reports", Path: "/reports"},
		},
	},
	model.RoleAuditor: {
		AllowedPrefixes: []string{"/auditor"},
		DefaultRoute:    "/auditor/dashboard",
		MenuItems: []MenuItem{
			{Label: "Dashboard", Path: "/auditor/dashboard"},
			{Label: "Assigned Audits", Path: "/auditor/audits"},
		},
	},
	model.RolePartner: {
		AllowedPrefixes: []string{"/partner"},
		DefaultRoute:    "/partner/dashboard",
		MenuItems: []MenuItem{
			{Label: "Dashboard", Path: "/partner/dashboard"},
		},
	},
	model.RoleEmployee: {
		AllowedPrefixes: []string{"/employee"},
		DefaultRoute:    "/employee/dashboard",
		MenuItems: []MenuItem{
			{Label: "Dashboard", Path: "/employee/dashboard"},
			{Label: "Surveys", Path: "/employee/surveys"},
		},
	},
	model.RoleSupplier: {
		AllowedPrefixes: []string{"/supplier"},
		DefaultRoute:    "/supplier/dashboard",
		MenuItems: []MenuItem{
			{Label: "Dashboard", Path: "/supplier/dashboard"},
		},
	},
	model.RoleInvestor: {
		AllowedPrefixes: []string{"/investor"},
		DefaultRoute:    "/investor/dashboard",
		MenuItems: []MenuItem{
			{Label: "Dashboard", Path: "/investor/dashboard"},
		},
	},
}

// PolicyFor returns the navigation policy for a role.
func PolicyFor(role string) (Policy, bool) {
	p, ok := policies[role]
	return p, ok
}

// Resolve decides whether role may reach path. A disallowed path falls
// through to the role's default landing route; an unknown role resolves
// to not-found.
func Resolve(role, path string) Decision {
	policy, ok := policies[role]
	if !ok {
		return Decision{NotFound: true}
	}

	for _, prefix := range policy.AllowedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return Decision{Allowed: true}
		}
	}

	if policy.DefaultRoute == "" {
		return Decision{NotFound: true}
	}
	return Decision{RedirectTo: policy.DefaultRoute}
}
