package database

import (
	"log"

	"gorm.io/gorm"

	"rollcall_backend/internals/configs"
	attendanceModel "rollcall_backend/internals/features/attendance/model"
	rosterModel "rollcall_backend/internals/features/roster/model"
)

// Migrate creates the five relations when absent. Safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&rosterModel.PersonModel{},
		&rosterModel.SectionModel{},
		&rosterModel.StudentSectionLinkModel{},
		&rosterModel.TeacherSectionLinkModel{},
		&attendanceModel.LocationModel{},
		&attendanceModel.AttendanceEventModel{},
	)
}

// Seed inserts the default location and the initial section list. Sections
// are only seeded while the table is still empty, so re-running bootstrap
// never duplicates rows.
func Seed(db *gorm.DB) error {
	loc := attendanceModel.LocationModel{
		LocationID:   configs.DefaultLocationID,
		LocationRoom: configs.DefaultRoom,
	}
	if err := db.Where(&attendanceModel.LocationModel{LocationID: loc.LocationID}).
		FirstOrCreate(&loc).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&rosterModel.SectionModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, name := range configs.SeedSections {
		if err := db.Create(&rosterModel.SectionModel{SectionName: name}).Error; err != nil {
			return err
		}
	}
	log.Printf("seeded %d sections and default location %q", len(configs.SeedSections), loc.LocationRoom)
	return nil
}
