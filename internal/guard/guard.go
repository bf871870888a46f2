// Package guard holds the authorization decision applied at every
// protected-route entry, plus the single role-to-landing-route table shared
// with the post-login redirect so the two can never diverge.
package guard

import (
	"time"

	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
)

// LoginRoute is where unauthenticated navigation lands.
const LoginRoute = "/login"

// Action is the kind of decision the guard produces.
type Action int

const (
	// ActionAllow renders the requested route.
	ActionAllow Action = iota
	// ActionRedirectToLogin sends the visitor to the login page.
	ActionRedirectToLogin
	// ActionRedirectToRoleHome sends an authenticated visitor with the
	// wrong role to their own landing route.
	ActionRedirectToRoleHome
)

// Decision is the transient per-navigation outcome. Never persisted.
type Decision struct {
	Action   Action
	Role     identity.Role
	Location string
}

var landingRoutes = map[identity.Role]string{
	identity.RoleFarmer: "/farmer/dashboard",
	identity.RoleBuyer:  "/buyer/dashboard",
	identity.RoleAdmin:  "/admin/dashboard",
}

// LandingRoute returns the canonical landing route for a role. Both the
// guard's mismatch redirect and the login handler consult this table.
func LandingRoute(role identity.Role) (string, bool) {
	route, ok := landingRoutes[role]
	return route, ok
}

// Evaluate computes the routing decision for an identity against a route's
// required roles, in fixed order: absent identity redirects to login; an
// empty requirement allows any authenticated identity; a matching role
// allows; a mismatch redirects to the holder's own landing route. It is
// pure apart from reading the clock and performs no redirect itself.
func Evaluate(id *identity.Identity, required []identity.Role) Decision {
	if id == nil || !id.Valid(time.Now()) {
		return Decision{Action: ActionRedirectToLogin, Location: LoginRoute}
	}
	if len(required) == 0 {
		return Decision{Action: ActionAllow, Role: id.Role}
	}
	if id.Role.Is(required...) {
		return Decision{Action: ActionAllow, Role: id.Role}
	}
	route, ok := LandingRoute(id.Role)
	if !ok {
		// Closed role set should make this unreachable; treat a roleless
		// identity as unauthenticated rather than guessing a page.
		return Decision{Action: ActionRedirectToLogin, Location: LoginRoute}
	}
	return Decision{Action: ActionRedirectToRoleHome, Role: id.Role, Location: route}
}
