package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	rosterModel "rollcall_backend/internals/features/roster/model"
)

// Append-only presence fact. Never updated or deleted; repeated scans across
// calls produce repeated rows.
type AttendanceEventModel struct {
	AttendanceEventID uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_event_id" json:"attendance_event_id"`

	AttendanceEventPersonID   uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_event_person_id" json:"attendance_event_person_id"`
	AttendanceEventLocationID int       `gorm:"not null;index;column:attendance_event_location_id" json:"attendance_event_location_id"`

	// date column doubles the timestamp for the reporting filter
	AttendanceEventDate datatypes.Date `gorm:"not null;index;column:attendance_event_date" json:"attendance_event_date"`
	AttendanceEventAt   time.Time      `gorm:"not null;column:attendance_event_at" json:"attendance_event_at"`

	Person   *rosterModel.PersonModel `gorm:"foreignKey:AttendanceEventPersonID;references:PersonID;constraint:OnDelete:CASCADE" json:"-"`
	Location *LocationModel           `gorm:"foreignKey:AttendanceEventLocationID;references:LocationID" json:"-"`
}

func (AttendanceEventModel) TableName() string { return "attendance_events" }

func (m *AttendanceEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceEventID == uuid.Nil {
		m.AttendanceEventID = uuid.New()
	}
	return nil
}
