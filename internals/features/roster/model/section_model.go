package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SectionModel struct {
	SectionID uuid.UUID `gorm:"type:uuid;primaryKey;column:section_id" json:"section_id"`

	// case-sensitive exact match, enforced unique at the store
	SectionName string `gorm:"size:120;not null;uniqueIndex;column:section_name" json:"section_name"`

	SectionCreatedAt time.Time `gorm:"column:section_created_at;autoCreateTime" json:"section_created_at"`
}

func (SectionModel) TableName() string { return "sections" }

func (m *SectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SectionID == uuid.Nil {
		m.SectionID = uuid.New()
	}
	return nil
}
