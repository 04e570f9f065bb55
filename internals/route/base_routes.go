package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime = time.Now()

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"success":        httpStatus == fiber.StatusOK,
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		})
	})
}
