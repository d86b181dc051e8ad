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

type UnitHandler struct {
	Handler
	unitStatusService *services.UnitStatusService
	app               app.App
}

func NewUnitHandler(app app.App, router fiber.Router) *UnitHandler {
	log := logger.New("handlers").File("unit_handler")
	return &UnitHandler{
		unitStatusService: app.Services.UnitStatus,
		app:               app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UnitHandler) Register() {
	units := h.router.Group("/units", h.middleware.RequireAuth(h.app.Services.Auth))

	units.Post("/", h.createUnit)
	units.Get("/", h.listUnits)
	units.Get("/:id", h.getUnit)
	units.Patch("/:id", h.updateUnit)
	units.Post("/:id/recompute", h.recompute)
}

type updateUnitRequest struct {
	Name      *string  `json:"name"`
	Address   *string  `json:"address"`
	Bedrooms  *int     `json:"bedrooms"`
	Bathrooms *int     `json:"bathrooms"`
	AreaSqM   *float64 `json:"areaSqM"`
}

// applyUnitPatch copies the provided fields onto the unit. Status is
// not editable here: it belongs to the resolver.
func applyUnitPatch(unit *models.Unit, req updateUnitRequest) bool {
	changed := false

	if req.Name != nil && *req.Name != "" {
		unit.Name = *req.Name
		changed = true
	}
	if req.Address != nil {
		unit.Address = *req.Address
		changed = true
	}
	if req.Bedrooms != nil {
		unit.Bedrooms = *req.Bedrooms
		changed = true
	}
	if req.Bathrooms != nil {
		unit.Bathrooms = *req.Bathrooms
		changed = true
	}
	if req.AreaSqM != nil {
		unit.AreaSqM = *req.AreaSqM
		changed = true
	}

	return changed
}

func (h *UnitHandler) updateUnit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unit id",
		})
	}

	var req updateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	unit, err := h.app.Repos.Unit.GetByID(c.UserContext(), h.app.Database.SQL, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Unit not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get unit",
		})
	}

	if !applyUnitPatch(unit, req) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No editable fields provided",
		})
	}

	if err := h.app.Repos.Unit.Update(c.UserContext(), h.app.Database.SQL, unit); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update unit",
		})
	}

	return c.JSON(fiber.Map{
		"unit": unit,
	})
}

func (h *UnitHandler) createUnit(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	var unit models.Unit
	if err := c.BodyParser(&unit); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if unit.OwnerID == uuid.Nil {
		unit.OwnerID = user.ID
	}

	if err := h.app.Repos.Unit.Create(c.UserContext(), h.app.Database.SQL, &unit); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create unit",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"unit": unit,
	})
}

func (h *UnitHandler) listUnits(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	units, err := h.app.Repos.Unit.GetByOwner(c.UserContext(), h.app.Database.SQL, user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list units",
		})
	}

	return c.JSON(fiber.Map{
		"units": units,
	})
}

func (h *UnitHandler) getUnit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unit id",
		})
	}

	unit, err := h.app.Repos.Unit.GetByID(c.UserContext(), h.app.Database.SQL, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Unit not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get unit",
		})
	}

	return c.JSON(fiber.Map{
		"unit": unit,
	})
}

func (h *UnitHandler) recompute(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unit id",
		})
	}

	status, changed, err := h.unitStatusService.RecomputeUnitStatus(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Unit not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recompute unit status",
		})
	}

	return c.JSON(fiber.Map{
		"unitId":  id,
		"status":  status,
		"changed": changed,
	})
}
