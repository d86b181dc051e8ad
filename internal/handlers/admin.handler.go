package handlers

import (
	"renthub/internal/app"
	"renthub/internal/logger"
	"renthub/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	Handler
	reconciliationService *services.ReconciliationService
	statisticsService     *services.StatisticsService
	app                   app.App
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		reconciliationService: app.Services.Reconciliation,
		statisticsService:     app.Services.Statistics,
		app:                   app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group(
		"/admin",
		h.middleware.RequireAuth(h.app.Services.Auth),
		h.middleware.RequireAdmin(),
	)

	admin.Post("/reconciliation/sweep", h.runSweep)
	admin.Get("/statistics/:ownerId", h.getOwnerStatistics)
	admin.Get("/deferred", h.getDeferredState)
}

// runSweep triggers a full reconciliation pass. Safe to call repeatedly;
// a sweep over settled data writes nothing.
func (h *AdminHandler) runSweep(c *fiber.Ctx) error {
	log := h.log.Function("runSweep")

	result, err := h.reconciliationService.RunFullSweep(c.UserContext())
	if err != nil {
		log.Er("reconciliation sweep failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Sweep failed",
		})
	}

	return c.JSON(fiber.Map{
		"result": result,
	})
}

func (h *AdminHandler) getOwnerStatistics(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Params("ownerId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid owner id",
		})
	}

	stats, err := h.statisticsService.Get(c.UserContext(), ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute statistics",
		})
	}

	return c.JSON(fiber.Map{
		"statistics": stats,
	})
}

func (h *AdminHandler) getDeferredState(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"pending": h.app.Services.Deferred.PendingCount(),
		"dropped": h.app.Services.Deferred.DroppedCount(),
	})
}
