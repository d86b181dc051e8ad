package handlers

import (
	"renthub/internal/app"
	"renthub/internal/handlers/middleware"
	"renthub/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")

	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()
	NewRentalHandler(*app, api).Register()
	NewUnitHandler(*app, api).Register()
	NewMaintenanceHandler(*app, api).Register()
	NewNotificationHandler(*app, api).Register()
	NewStatisticsHandler(*app, api).Register()
	NewAdminHandler(*app, api).Register()

	return nil
}
