package handlers

import (
	"duckstore/internal/middleware"
	"duckstore/internal/models"
	"duckstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// DataResponse is the success envelope of the user routes.
type DataResponse struct {
	Error *string `json:"error"`
	Data  any     `json:"data"`
}

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the user routes. Extra handlers, such as a rate
// limiter, run before each route.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	userRoutes := router.Group("/user")
	userRoutes.Post("/register", chain(guards, h.HandleRegister)...)
	userRoutes.Post("/login", chain(guards, h.HandleLogin)...)
}

func chain(guards []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(guards)+1)
	handlers = append(handlers, guards...)
	return append(handlers, handler)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}

	userID, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(DataResponse{Data: userID})
}

// HandleLogin authenticates a user and issues a token, returned both in the
// body and in the auth-token header.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}

	result, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}

	c.Set(middleware.TokenHeader, result.Token)
	return c.Status(fiber.StatusOK).JSON(DataResponse{Data: result})
}
