package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Agricultural-portal/Frontend-sub001/internal/auth"
	"github.com/Agricultural-portal/Frontend-sub001/internal/guard"
	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
)

// Locals keys populated by Protect for downstream handlers.
const (
	IdentityKey  = "identity"
	SessionIDKey = "session_id"
)

// Protect gates a route on the guard decision. The guard only computes;
// this middleware applies it: allowed requests continue with the identity
// in Locals, everything else becomes a 302 to the decided location. A
// session that fails to resolve is treated as absent, never as an error.
func Protect(svc *auth.Service, cookieName string, roles ...identity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(cookieName)
		id := svc.Current(c.UserContext(), sid)

		decision := guard.Evaluate(id, roles)
		if decision.Action != guard.ActionAllow {
			return c.Redirect(decision.Location, fiber.StatusFound)
		}

		c.Locals(IdentityKey, id)
		c.Locals(SessionIDKey, sid)
		return c.Next()
	}
}

// CurrentIdentity pulls the identity Protect stored on the context.
func CurrentIdentity(c *fiber.Ctx) *identity.Identity {
	id, _ := c.Locals(IdentityKey).(*identity.Identity)
	return id
}
