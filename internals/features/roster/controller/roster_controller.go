package controller

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "rollcall_backend/internals/helpers"

	dto "rollcall_backend/internals/features/roster/dto"
	model "rollcall_backend/internals/features/roster/model"
	service "rollcall_backend/internals/features/roster/service"
)

type RosterController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewRosterController(db *gorm.DB) *RosterController {
	return &RosterController{
		DB:        db,
		Validator: validator.New(),
	}
}

type enrollFn func(context.Context, *gorm.DB, service.EnrollInput) (*service.EnrollResult, error)

/*
=========================================================

	CREATE STUDENT
	POST /api/add-student
	Body: {name, tag, section, id_number}

=========================================================
*/
func (ctl *RosterController) CreateStudent(c *fiber.Ctx) error {
	return ctl.createPerson(c, service.EnrollStudent)
}

/*
=========================================================

	CREATE TEACHER
	POST /api/add-teacher

=========================================================
*/
func (ctl *RosterController) CreateTeacher(c *fiber.Ctx) error {
	return ctl.createPerson(c, service.EnrollTeacher)
}

func (ctl *RosterController) createPerson(c *fiber.Ctx, enroll enrollFn) error {
	var req dto.EnrollPersonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "malformed request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := enroll(c.UserContext(), ctl.DB, service.EnrollInput{
		Name:     req.Name,
		Tag:      req.Tag,
		Section:  req.Section,
		IDNumber: req.IDNumber,
	})
	if err != nil {
		return writeEnrollError(c, err)
	}

	return helper.JsonOK(c, fiber.StatusCreated, "enrolled",
		dto.FromPersonModel(res.Person, res.SectionName))
}

func writeEnrollError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateTag),
		errors.Is(err, service.ErrDuplicateIdentifier),
		errors.Is(err, service.ErrSectionConflict):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}
	log.Printf("[Roster.Enroll] storage error: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "storage error")
}

/*
=========================================================

	LIST SECTIONS
	GET /api/sections

=========================================================
*/
func (ctl *RosterController) ListSections(c *fiber.Ctx) error {
	var rows []model.SectionModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("section_name ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[Roster.ListSections] storage error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "storage error")
	}
	return helper.JsonOK(c, fiber.StatusOK, "ok", dto.FromSectionModels(rows))
}

/*
=========================================================

	LIST STUDENTS
	GET /api/students
	Query: section_name (optional, exact match)

=========================================================
*/
func (ctl *RosterController) ListStudents(c *fiber.Ctx) error {
	tx := ctl.DB.WithContext(c.UserContext()).
		Table("persons").
		Select(`persons.person_name AS name,
			persons.person_rfid_tag AS tag,
			persons.person_id_number AS id_number,
			COALESCE(sections.section_name, '') AS section`).
		Joins("LEFT JOIN student_section_links ON student_section_links.student_section_link_person_id = persons.person_id").
		Joins("LEFT JOIN sections ON sections.section_id = student_section_links.student_section_link_section_id").
		Where("persons.person_role = ?", model.RoleStudent)

	if name := strings.TrimSpace(c.Query("section_name")); name != "" {
		tx = tx.Where("sections.section_name = ?", name)
	}

	rows := []dto.StudentRow{}
	if err := tx.Order("persons.person_name ASC").Scan(&rows).Error; err != nil {
		log.Printf("[Roster.ListStudents] storage error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "storage error")
	}
	return helper.JsonOK(c, fiber.StatusOK, "ok", rows)
}
