package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Agricultural-portal/Frontend-sub001/internal/auth"
	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
	"github.com/Agricultural-portal/Frontend-sub001/internal/session"
)

const testCookie = "farmdash_session"

func protectedApp(t *testing.T, store session.Store) *fiber.App {
	t.Helper()
	svc := auth.NewService(nil, store, nil)

	app := fiber.New()
	app.Get("/admin/dashboard", Protect(svc, testCookie, identity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "admin_dashboard"})
	})
	app.Get("/farmer/dashboard", Protect(svc, testCookie, identity.RoleFarmer), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "farmer_dashboard"})
	})
	app.Get("/home", Protect(svc, testCookie), func(c *fiber.Ctx) error {
		id := CurrentIdentity(c)
		if id == nil {
			t.Errorf("expected identity in locals")
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"email": id.Email})
	})
	return app
}

func writeSession(t *testing.T, store session.Store, sid string, role identity.Role) {
	t.Helper()
	err := store.Write(context.Background(), sid, identity.Identity{
		ID:        "7",
		Email:     "f@demo.com",
		Role:      role,
		Token:     "header.payload.sig",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("write session: %v", err)
	}
}

func TestProtectWithoutSessionRedirectsToLogin(t *testing.T) {
	app := protectedApp(t, session.NewMemoryStore())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin/dashboard", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302 got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get(fiber.HeaderLocation); loc != "/login" {
		t.Fatalf("expected /login got %s", loc)
	}
}

func TestProtectRoleMismatchRedirectsToOwnHome(t *testing.T) {
	store := session.NewMemoryStore()
	writeSession(t, store, "sid-farmer", identity.RoleFarmer)
	app := protectedApp(t, store)

	req := httptest.NewRequest(fiber.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "sid-farmer"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302 got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get(fiber.HeaderLocation); loc != "/farmer/dashboard" {
		t.Fatalf("expected /farmer/dashboard got %s", loc)
	}
}

func TestProtectMatchingRoleAllows(t *testing.T) {
	store := session.NewMemoryStore()
	writeSession(t, store, "sid-farmer", identity.RoleFarmer)
	app := protectedApp(t, store)

	req := httptest.NewRequest(fiber.MethodGet, "/farmer/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "sid-farmer"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
}

func TestProtectNoRequiredRolesAllowsAnyAuthenticated(t *testing.T) {
	store := session.NewMemoryStore()
	writeSession(t, store, "sid-buyer", identity.RoleBuyer)
	app := protectedApp(t, store)

	req := httptest.NewRequest(fiber.MethodGet, "/home", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "sid-buyer"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
}

func TestProtectExpiredSessionRedirectsToLogin(t *testing.T) {
	store := session.NewMemoryStore()
	err := store.Write(context.Background(), "sid-expired", identity.Identity{
		ID:        "7",
		Email:     "f@demo.com",
		Role:      identity.RoleFarmer,
		Token:     "header.payload.sig",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	if err != nil {
		t.Fatalf("write session: %v", err)
	}
	app := protectedApp(t, store)

	req := httptest.NewRequest(fiber.MethodGet, "/farmer/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "sid-expired"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302 got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get(fiber.HeaderLocation); loc != "/login" {
		t.Fatalf("expected /login got %s", loc)
	}
}
