package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Agricultural-portal/Frontend-sub001/internal/auth"
	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
	"github.com/Agricultural-portal/Frontend-sub001/internal/middleware"
)

// RegisterDashboardRoutes wires the role-gated landing routes. The view
// layer renders these pages; the handlers here only prove the guard let
// the request through and hand back the resolved identity.
func RegisterDashboardRoutes(app *fiber.App, svc *auth.Service, cookie string) {
	register := func(path, page string, roles ...identity.Role) {
		app.Get(path, middleware.Protect(svc, cookie, roles...), func(c *fiber.Ctx) error {
			id := middleware.CurrentIdentity(c)
			return c.Status(http.StatusOK).JSON(fiber.Map{
				"page":  page,
				"email": id.Email,
				"role":  id.Role,
			})
		})
	}

	register("/farmer/dashboard", "farmer_dashboard", identity.RoleFarmer)
	register("/buyer/dashboard", "buyer_dashboard", identity.RoleBuyer)
	register("/admin/dashboard", "admin_dashboard", identity.RoleAdmin)
	register("/home", "home")
}
