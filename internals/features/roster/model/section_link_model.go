package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person↔Section joins, one row per enrollment. Student and teacher
// enrollments are distinct relations with the same shape; both cascade when
// either side is removed.

type StudentSectionLinkModel struct {
	StudentSectionLinkID uuid.UUID `gorm:"type:uuid;primaryKey;column:student_section_link_id" json:"student_section_link_id"`

	StudentSectionLinkPersonID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_student_section_links;column:student_section_link_person_id" json:"student_section_link_person_id"`
	StudentSectionLinkSectionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_student_section_links;column:student_section_link_section_id" json:"student_section_link_section_id"`

	StudentSectionLinkCreatedAt time.Time `gorm:"column:student_section_link_created_at;autoCreateTime" json:"student_section_link_created_at"`

	Person  *PersonModel  `gorm:"foreignKey:StudentSectionLinkPersonID;references:PersonID;constraint:OnDelete:CASCADE" json:"-"`
	Section *SectionModel `gorm:"foreignKey:StudentSectionLinkSectionID;references:SectionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (StudentSectionLinkModel) TableName() string { return "student_section_links" }

func (m *StudentSectionLinkModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentSectionLinkID == uuid.Nil {
		m.StudentSectionLinkID = uuid.New()
	}
	return nil
}

type TeacherSectionLinkModel struct {
	TeacherSectionLinkID uuid.UUID `gorm:"type:uuid;primaryKey;column:teacher_section_link_id" json:"teacher_section_link_id"`

	TeacherSectionLinkPersonID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_teacher_section_links;column:teacher_section_link_person_id" json:"teacher_section_link_person_id"`
	TeacherSectionLinkSectionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_teacher_section_links;column:teacher_section_link_section_id" json:"teacher_section_link_section_id"`

	TeacherSectionLinkCreatedAt time.Time `gorm:"column:teacher_section_link_created_at;autoCreateTime" json:"teacher_section_link_created_at"`

	Person  *PersonModel  `gorm:"foreignKey:TeacherSectionLinkPersonID;references:PersonID;constraint:OnDelete:CASCADE" json:"-"`
	Section *SectionModel `gorm:"foreignKey:TeacherSectionLinkSectionID;references:SectionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (TeacherSectionLinkModel) TableName() string { return "teacher_section_links" }

func (m *TeacherSectionLinkModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherSectionLinkID == uuid.Nil {
		m.TeacherSectionLinkID = uuid.New()
	}
	return nil
}
