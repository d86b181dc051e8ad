package handlers

import (
	"renthub/internal/app"
	"renthub/internal/handlers/middleware"
	"renthub/internal/logger"
	"renthub/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authService *services.AuthService
	app         app.App
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authService: app.Services.Auth,
		app:         app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")

	// Token issuance happens out-of-band in production; the dev login
	// exists so local clients can obtain a token without that flow.
	if h.app.Config.Environment == "development" {
		auth.Post("/dev-login", h.devLogin)
	}

	protected := auth.Group("/", h.middleware.RequireAuth(h.authService))
	protected.Get("/me", h.getCurrentUser)
}

type devLoginRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) devLogin(c *fiber.Ctx) error {
	log := h.log.Function("devLogin")

	var req devLoginRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email is required",
		})
	}

	user, err := h.app.Repos.User.GetByEmail(c.Context(), h.app.Database.SQL, req.Email)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		log.Er("failed to generate token", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) getCurrentUser(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}
