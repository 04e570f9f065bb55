package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceCtl "rollcall_backend/internals/features/attendance/controller"
	"rollcall_backend/internals/middlewares"
)

func AttendanceRoutes(r fiber.Router, db *gorm.DB) {
	ctl := attendanceCtl.NewAttendanceController(db)

	r.Post("/verify-attendance", middlewares.ScanRateLimiter(), ctl.Verify)
	r.Get("/attendance", ctl.List)
	r.Get("/locations", ctl.ListLocations)
}
