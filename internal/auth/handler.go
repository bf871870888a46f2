package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
)

// Handler exposes the login/logout endpoints for the dashboard.
type Handler struct {
	svc    *Service
	cookie string
}

// NewHandler wires the session service to HTTP, using the given session
// cookie name.
func NewHandler(svc *Service, cookie string) *Handler {
	return &Handler{svc: svc, cookie: cookie}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
	ExpiresAt   int64  `json:"expires_at"`
	Redirect    string `json:"redirect"`
}

// Login performs the credential exchange and sets the session cookie. The
// redirect field carries the role's landing route; an unrecognized role is
// surfaced as a hard failure, never routed to a default page.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password are required")
	}

	result, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, identity.ErrInvalidCredentials):
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, identity.ErrUnknownRole):
		return fiber.NewError(http.StatusUnprocessableEntity, "account role is not recognized")
	case errors.Is(err, identity.ErrMalformedToken):
		return fiber.NewError(http.StatusBadGateway, "auth backend returned an unusable token")
	case errors.Is(err, identity.ErrNetwork):
		return fiber.NewError(http.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie,
		Value:    result.SessionID,
		Expires:  result.Identity.ExpiresAt,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	id := result.Identity
	return c.Status(http.StatusOK).JSON(loginResponse{
		ID:          id.ID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		Role:        string(id.Role),
		ExpiresAt:   id.ExpiresAt.Unix(),
		Redirect:    result.Redirect,
	})
}

// Logout clears the persisted session and expires the cookie.
func (h *Handler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies(h.cookie)
	if err := h.svc.Logout(c.UserContext(), sid); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "logged_out"})
}

// Me reports the current identity, or 401 when no valid session exists.
func (h *Handler) Me(c *fiber.Ctx) error {
	id := h.svc.Current(c.UserContext(), c.Cookies(h.cookie))
	if id == nil {
		return fiber.NewError(http.StatusUnauthorized, "not authenticated")
	}
	return c.JSON(fiber.Map{
		"id":           id.ID,
		"email":        id.Email,
		"display_name": id.DisplayName,
		"role":         id.Role,
		"expires_at":   id.ExpiresAt.Unix(),
	})
}
