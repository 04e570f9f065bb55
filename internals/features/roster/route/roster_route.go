package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rosterCtl "rollcall_backend/internals/features/roster/controller"
)

func RosterRoutes(r fiber.Router, db *gorm.DB) {
	ctl := rosterCtl.NewRosterController(db)

	r.Get("/sections", ctl.ListSections)
	r.Get("/students", ctl.ListStudents)
	r.Post("/add-student", ctl.CreateStudent)
	r.Post("/add-teacher", ctl.CreateTeacher)
}
