package handlers

import (
	"errors"
	"time"

	"renthub/internal/app"
	"renthub/internal/handlers/middleware"
	"renthub/internal/logger"
	"renthub/internal/models"
	"renthub/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RentalHandler struct {
	Handler
	lifecycleService      *services.RentalLifecycleService
	reconciliationService *services.ReconciliationService
	app                   app.App
}

func NewRentalHandler(app app.App, router fiber.Router) *RentalHandler {
	log := logger.New("handlers").File("rental_handler")
	return &RentalHandler{
		lifecycleService:      app.Services.RentalLifecycle,
		reconciliationService: app.Services.Reconciliation,
		app:                   app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *RentalHandler) Register() {
	rentals := h.router.Group("/rentals", h.middleware.RequireAuth(h.app.Services.Auth))

	rentals.Post("/", h.createRental)
	rentals.Get("/", h.listRentals)
	rentals.Get("/:id", h.getRental)
	rentals.Patch("/:id", h.updateRental)
	rentals.Patch("/:id/status", h.setStatus)
	rentals.Post("/:id/recompute", h.recompute)
}

func (h *RentalHandler) createRental(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	var rental models.Rental
	if err := c.BodyParser(&rental); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if rental.OwnerID == uuid.Nil {
		rental.OwnerID = user.ID
	}

	if rental.UnitID == uuid.Nil || rental.TenantID == uuid.Nil || rental.StartDate.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unitId, tenantId and startDate are required",
		})
	}

	if rental.IsMonthly && rental.MonthsCount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "monthsCount is required for monthly contracts",
		})
	}

	if err := h.lifecycleService.CreateRental(c.UserContext(), &rental); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create rental",
		})
	}

	// Status and unit cascade settle off the request path.
	h.reconciliationService.OnRentalWrite(rental.ID, rental.UnitID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"rental": rental,
	})
}

func (h *RentalHandler) listRentals(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	rentals, err := h.lifecycleService.GetRentalsByOwner(c.UserContext(), user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list rentals",
		})
	}

	return c.JSON(fiber.Map{
		"rentals": rentals,
	})
}

func (h *RentalHandler) getRental(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid rental id",
		})
	}

	rental, err := h.lifecycleService.GetRental(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Rental not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get rental",
		})
	}

	return c.JSON(fiber.Map{
		"rental": rental,
	})
}

type updateRentalRequest struct {
	StartDate        *time.Time       `json:"startDate"`
	EndDate          *time.Time       `json:"endDate"`
	MonthsCount      *int             `json:"monthsCount"`
	StartPrice       *decimal.Decimal `json:"startPrice"`
	CurrentPrice     *decimal.Decimal `json:"currentPrice"`
	IncreaseValue    *decimal.Decimal `json:"increaseValue"`
	PeriodicDuration *int             `json:"periodicDuration"`
	IsPercentage     *bool            `json:"isPercentage"`
}

// applyRentalPatch copies the provided fields onto the rental. Pricing
// edits zero RentalAmount so the lifecycle service recomputes it.
func applyRentalPatch(rental *models.Rental, req updateRentalRequest) bool {
	changed := false
	repriced := false

	if req.StartDate != nil {
		rental.StartDate = *req.StartDate
		changed = true
	}
	if req.EndDate != nil {
		rental.EndDate = req.EndDate
		changed = true
	}
	if req.MonthsCount != nil {
		rental.MonthsCount = *req.MonthsCount
		changed = true
	}
	if req.StartPrice != nil {
		rental.StartPrice = *req.StartPrice
		changed = true
		repriced = true
	}
	if req.CurrentPrice != nil {
		rental.CurrentPrice = *req.CurrentPrice
		changed = true
	}
	if req.IncreaseValue != nil {
		rental.IncreaseValue = req.IncreaseValue
		changed = true
		repriced = true
	}
	if req.PeriodicDuration != nil {
		rental.PeriodicDuration = req.PeriodicDuration
		changed = true
		repriced = true
	}
	if req.IsPercentage != nil {
		rental.IsPercentage = *req.IsPercentage
		changed = true
		repriced = true
	}

	if repriced {
		rental.RentalAmount = decimal.Zero
	}

	return changed
}

// updateRental edits contract dates and pricing. Every accepted edit
// kicks the reconciliation cascade, since date changes can move the
// rental between lifecycle windows.
func (h *RentalHandler) updateRental(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid rental id",
		})
	}

	var req updateRentalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	rental, err := h.app.Repos.Rental.GetByID(c.UserContext(), h.app.Database.SQL, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Rental not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get rental",
		})
	}

	if !applyRentalPatch(rental, req) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No editable fields provided",
		})
	}

	if err := h.lifecycleService.UpdateRental(c.UserContext(), rental); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update rental",
		})
	}

	h.reconciliationService.OnRentalWrite(rental.ID, rental.UnitID)

	return c.JSON(fiber.Map{
		"rental": rental,
	})
}

type setStatusRequest struct {
	Status models.RentalStatus `json:"status"`
}

// setStatus is the manual override path. Sticky statuses can only be
// entered and exited here, never by reconciliation.
func (h *RentalHandler) setStatus(c *fiber.Ctx) error {
	log := h.log.Function("setStatus")
	user := middleware.GetUser(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid rental id",
		})
	}

	var req setStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status is required",
		})
	}

	rental, err := h.app.Repos.Rental.GetByID(c.UserContext(), h.app.Database.SQL, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Rental not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get rental",
		})
	}

	previous, err := h.lifecycleService.OverrideStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update status",
		})
	}

	log.Info("Manual status change", "rentalID", id, "from", previous, "to", req.Status, "by", user.ID)

	h.reconciliationService.OnRentalWrite(id, rental.UnitID)

	return c.JSON(fiber.Map{
		"rentalId": id,
		"status":   req.Status,
	})
}

func (h *RentalHandler) recompute(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid rental id",
		})
	}

	status, changed, err := h.lifecycleService.RecomputeRentalStatus(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Rental not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recompute rental status",
		})
	}

	return c.JSON(fiber.Map{
		"rentalId": id,
		"status":   status,
		"changed":  changed,
	})
}
