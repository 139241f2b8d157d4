package session

import "strings"

// Routes of the client.
const (
	RouteLanding   = "/"
	RouteLogin     = "/login"
	RouteSignup    = "/signup"
	RouteDashboard = "/dashboard"
)

// DashboardSections are the protected children of the dashboard.
var DashboardSections = []string{"tasks", "journal", "notes", "checklists", "bucket-list"}

// Action is what a view should do with a route.
type Action int

const (
	// Render shows the requested route.
	Render Action = iota
	// Wait shows nothing until hydration completes.
	Wait
	// Redirect navigates to Decision.Target.
	Redirect
)

func (a Action) String() string {
	switch a {
	case Render:
		return "render"
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the outcome of Guard.
type Decision struct {
	Action Action
	Target string
}

// Guard decides how to handle path. Anonymous access to the dashboard redirects
// to the landing route; signed-in access to login or signup redirects to the
// dashboard; unknown paths redirect to the landing route.
func Guard(path string, loading, authenticated bool) Decision {
	path = cleanPath(path)
	switch {
	case path == RouteLanding:
		return Decision{Action: Render}
	case path == RouteLogin || path == RouteSignup:
		if loading {
			return Decision{Action: Wait}
		}
		if authenticated {
			return Decision{Action: Redirect, Target: RouteDashboard}
		}
		return Decision{Action: Render}
	case IsProtected(path):
		if loading {
			return Decision{Action: Wait}
		}
		if !authenticated {
			return Decision{Action: Redirect, Target: RouteLanding}
		}
		return Decision{Action: Render}
	default:
		return Decision{Action: Redirect, Target: RouteLanding}
	}
}

// IsProtected reports whether path belongs to the authenticated area.
func IsProtected(path string) bool {
	path = cleanPath(path)
	if path == RouteDashboard {
		return true
	}
	section, ok := strings.CutPrefix(path, RouteDashboard+"/")
	if !ok {
		return false
	}
	for _, s := range DashboardSections {
		if section == s {
			return true
		}
	}
	return false
}

func cleanPath(p string) string {
	if p == "" {
		return RouteLanding
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
