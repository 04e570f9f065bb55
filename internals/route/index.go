package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "rollcall_backend/internals/databases"
	attendanceRoutes "rollcall_backend/internals/features/attendance/route"
	rosterRoutes "rollcall_backend/internals/features/roster/route"
	helper "rollcall_backend/internals/helpers"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	api := app.Group("/api")

	// idempotent schema bootstrap + seed
	api.Post("/init-db", func(c *fiber.Ctx) error {
		if err := database.Migrate(db); err != nil {
			log.Printf("[InitDB] migrate error: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "storage error")
		}
		if err := database.Seed(db); err != nil {
			log.Printf("[InitDB] seed error: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "storage error")
		}
		return helper.JsonOK(c, fiber.StatusOK, "database initialized", nil)
	})

	rosterRoutes.RosterRoutes(api, db)
	attendanceRoutes.AttendanceRoutes(api, db)

	// fallback, keeps unknown routes inside the JSON envelope
	app.Use(func(c *fiber.Ctx) error {
		return helper.JsonError(c, fiber.StatusNotFound, "route not found")
	})
}
