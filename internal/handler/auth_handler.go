package handler

import (
	"strings"

	"go-shopify-sync/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user authentication
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(response)
}

// Me returns the authenticated user for the bearer token.
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing bearer token"})
	}

	user, err := h.authService.Me(token)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"data": user})
}

// Refresh issues a fresh token for a still-valid bearer token.
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing bearer token"})
	}

	response, err := h.authService.Refresh(token)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(response)
}

// Logout acknowledges the client discarding its token. Tokens are
// stateless, so there is nothing to revoke server-side.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if bearerToken(c) == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing bearer token"})
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}
