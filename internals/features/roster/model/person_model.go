package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// One row per enrolled person. Rows are immutable once created; there is no
// update or delete flow.
type PersonModel struct {
	PersonID uuid.UUID `gorm:"type:uuid;primaryKey;column:person_id" json:"person_id"`

	PersonName     string `gorm:"not null;column:person_name" json:"person_name"`
	PersonRFIDTag  string `gorm:"size:64;not null;uniqueIndex;column:person_rfid_tag" json:"person_rfid_tag"`
	PersonIDNumber string `gorm:"size:64;not null;uniqueIndex;column:person_id_number" json:"person_id_number"`

	// student | teacher
	PersonRole string `gorm:"size:16;not null;default:student;column:person_role" json:"person_role"`

	PersonCreatedAt time.Time `gorm:"column:person_created_at;autoCreateTime" json:"person_created_at"`
}

func (PersonModel) TableName() string { return "persons" }

func (m *PersonModel) BeforeCreate(tx *gorm.DB) error {
	if m.PersonID == uuid.Nil {
		m.PersonID = uuid.New()
	}
	return nil
}
