package handlers

import (
	"errors"

	"renthub/internal/app"
	"renthub/internal/handlers/middleware"
	"renthub/internal/logger"
	"renthub/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	Handler
	notificationService *services.NotificationService
	app                 app.App
}

func NewNotificationHandler(app app.App, router fiber.Router) *NotificationHandler {
	log := logger.New("handlers").File("notification_handler")
	return &NotificationHandler{
		notificationService: app.Services.Notification,
		app:                 app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *NotificationHandler) Register() {
	notifications := h.router.Group("/notifications", h.middleware.RequireAuth(h.app.Services.Auth))

	notifications.Get("/", h.listNotifications)
	notifications.Patch("/:id/read", h.markRead)
}

func (h *NotificationHandler) listNotifications(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	unreadOnly := c.QueryBool("unread", false)

	notifications, err := h.notificationService.GetForUser(c.UserContext(), user.ID, unreadOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list notifications",
		})
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
	})
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notification id",
		})
	}

	if err := h.notificationService.MarkRead(c.UserContext(), id, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Notification not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to mark notification read",
		})
	}

	return c.JSON(fiber.Map{
		"notificationId": id,
		"read":           true,
	})
}
