package handlers

import (
	"errors"

	"renthub/internal/app"
	"renthub/internal/handlers/middleware"
	"renthub/internal/logger"
	"renthub/internal/models"
	"renthub/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaintenanceHandler struct {
	Handler
	reconciliationService *services.ReconciliationService
	app                   app.App
}

func NewMaintenanceHandler(app app.App, router fiber.Router) *MaintenanceHandler {
	log := logger.New("handlers").File("maintenance_handler")
	return &MaintenanceHandler{
		reconciliationService: app.Services.Reconciliation,
		app:                   app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *MaintenanceHandler) Register() {
	maintenance := h.router.Group("/maintenance", h.middleware.RequireAuth(h.app.Services.Auth))

	maintenance.Post("/", h.createRequest)
	maintenance.Get("/unit/:unitId", h.listForUnit)
	maintenance.Patch("/:id/status", h.setStatus)
}

func (h *MaintenanceHandler) createRequest(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	var request models.MaintenanceRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if request.ReportedByID == uuid.Nil {
		request.ReportedByID = user.ID
	}

	if request.UnitID == uuid.Nil || request.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unitId and title are required",
		})
	}

	unit, err := h.app.Repos.Unit.GetByID(c.UserContext(), h.app.Database.SQL, request.UnitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Unit not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to look up unit",
		})
	}

	if err := h.app.Repos.Maintenance.Create(c.UserContext(), h.app.Database.SQL, &request); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create maintenance request",
		})
	}

	// The unit recompute is awaited: an open request must flip the unit
	// to under_maintenance before the response goes out.
	if err := h.reconciliationService.OnMaintenanceWrite(c.UserContext(), unit.ID, unit.OwnerID); err != nil {
		h.log.Function("createRequest").
			Er("maintenance cascade failed", err, "unitID", unit.ID, "requestID", request.ID)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"maintenanceRequest": request,
	})
}

func (h *MaintenanceHandler) listForUnit(c *fiber.Ctx) error {
	unitID, err := uuid.Parse(c.Params("unitId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unit id",
		})
	}

	requests, err := h.app.Repos.Maintenance.GetByUnit(c.UserContext(), h.app.Database.SQL, unitID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list maintenance requests",
		})
	}

	return c.JSON(fiber.Map{
		"maintenanceRequests": requests,
	})
}

type setMaintenanceStatusRequest struct {
	Status models.MaintenanceStatus `json:"status"`
}

func (h *MaintenanceHandler) setStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid maintenance request id",
		})
	}

	var req setMaintenanceStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status is required",
		})
	}

	request, err := h.app.Repos.Maintenance.GetByID(c.UserContext(), h.app.Database.SQL, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Maintenance request not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get maintenance request",
		})
	}

	request.Status = req.Status
	if err := h.app.Repos.Maintenance.Update(c.UserContext(), h.app.Database.SQL, request); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update maintenance request",
		})
	}

	unit, err := h.app.Repos.Unit.GetByID(c.UserContext(), h.app.Database.SQL, request.UnitID)
	if err == nil {
		if cascadeErr := h.reconciliationService.OnMaintenanceWrite(c.UserContext(), unit.ID, unit.OwnerID); cascadeErr != nil {
			h.log.Function("setStatus").
				Er("maintenance cascade failed", cascadeErr, "unitID", unit.ID, "requestID", id)
		}
	}

	return c.JSON(fiber.Map{
		"maintenanceRequest": request,
	})
}
