package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rollcall_backend/internals/configs"
	helper "rollcall_backend/internals/helpers"

	dto "rollcall_backend/internals/features/attendance/dto"
	model "rollcall_backend/internals/features/attendance/model"
	service "rollcall_backend/internals/features/attendance/service"
)

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		DB:        db,
		Validator: validator.New(),
	}
}

/*
=========================================================

	VERIFY BATCH
	POST /api/verify-attendance
	Body: {tokens: string[], location_id?: int}

=========================================================
*/
func (ctl *AttendanceController) Verify(c *fiber.Ctx) error {
	var req dto.VerifyAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "malformed request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	locationID := configs.DefaultLocationID
	if req.LocationID != nil {
		locationID = *req.LocationID
	}

	res, err := service.VerifyBatch(c.UserContext(), ctl.DB, req.Tokens, locationID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("[Attendance.Verify] storage error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "storage error")
	}

	return helper.JsonOK(c, fiber.StatusOK, res.Summary, res)
}

/*
=========================================================

	LIST EVENTS
	GET /api/attendance
	Query: date (YYYY-MM-DD), section_name, location_id — all optional

=========================================================
*/
func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	tx := ctl.DB.WithContext(c.UserContext()).
		Table("attendance_events").
		Select(`attendance_events.attendance_event_id AS event_id,
			persons.person_name AS name,
			persons.person_id_number AS id_number,
			COALESCE(sections.section_name, '') AS section,
			locations.location_room AS room,
			attendance_events.attendance_event_location_id AS location_id,
			attendance_events.attendance_event_at AS at`).
		Joins("JOIN persons ON persons.person_id = attendance_events.attendance_event_person_id").
		Joins("JOIN locations ON locations.location_id = attendance_events.attendance_event_location_id").
		Joins("LEFT JOIN student_section_links ON student_section_links.student_section_link_person_id = persons.person_id").
		Joins("LEFT JOIN sections ON sections.section_id = student_section_links.student_section_link_section_id")

	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		tx = tx.Where("attendance_events.attendance_event_date = ?", datatypes.Date(day))
	}
	if name := strings.TrimSpace(c.Query("section_name")); name != "" {
		tx = tx.Where("sections.section_name = ?", name)
	}
	if raw := strings.TrimSpace(c.Query("location_id")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "location_id must be an integer")
		}
		tx = tx.Where("attendance_events.attendance_event_location_id = ?", id)
	}

	rows := []dto.AttendanceRow{}
	if err := tx.Order("attendance_events.attendance_event_at DESC").Scan(&rows).Error; err != nil {
		log.Printf("[Attendance.List] storage error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "storage error")
	}
	return helper.JsonOK(c, fiber.StatusOK, "ok", rows)
}

/*
=========================================================

	LIST LOCATIONS
	GET /api/locations

=========================================================
*/
func (ctl *AttendanceController) ListLocations(c *fiber.Ctx) error {
	var rows []model.LocationModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("location_room ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[Attendance.ListLocations] storage error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "storage error")
	}
	out := make([]dto.LocationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LocationResponse{ID: r.LocationID, Room: r.LocationRoom})
	}
	return helper.JsonOK(c, fiber.StatusOK, "ok", out)
}
