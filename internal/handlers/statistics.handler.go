package handlers

import (
	"renthub/internal/app"
	"renthub/internal/handlers/middleware"
	"renthub/internal/logger"
	"renthub/internal/services"

	"github.com/gofiber/fiber/v2"
)

type StatisticsHandler struct {
	Handler
	statisticsService *services.StatisticsService
	app               app.App
}

func NewStatisticsHandler(app app.App, router fiber.Router) *StatisticsHandler {
	log := logger.New("handlers").File("statistics_handler")
	return &StatisticsHandler{
		statisticsService: app.Services.Statistics,
		app:               app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *StatisticsHandler) Register() {
	statistics := h.router.Group("/statistics", h.middleware.RequireAuth(h.app.Services.Auth))

	statistics.Get("/", h.getOwnerStatistics)
}

// getOwnerStatistics serves the caller's own aggregate, cache-first.
func (h *StatisticsHandler) getOwnerStatistics(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	stats, err := h.statisticsService.Get(c.UserContext(), user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute statistics",
		})
	}

	return c.JSON(fiber.Map{
		"statistics": stats,
	})
}
