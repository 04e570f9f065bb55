package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	helper "rollcall_backend/internals/helpers"

	model "rollcall_backend/internals/features/roster/model"
)

var (
	ErrInvalidInput        = errors.New("name, tag, section and id_number are required")
	ErrDuplicateTag        = errors.New("tag already registered")
	ErrDuplicateIdentifier = errors.New("id_number already registered")
	// Section get-or-create lost a race against a concurrent enrollment.
	// Surfaced, not retried.
	ErrSectionConflict = errors.New("section was created concurrently, retry the request")
)

type EnrollInput struct {
	Name     string
	Tag      string
	Section  string
	IDNumber string
}

type EnrollResult struct {
	Person      model.PersonModel
	SectionName string
}

func (in *EnrollInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Tag = strings.TrimSpace(in.Tag)
	in.Section = strings.TrimSpace(in.Section)
	in.IDNumber = strings.TrimSpace(in.IDNumber)
}

// EnrollStudent creates a person with role student plus its section link in
// one transaction. The section is resolved get-or-create by exact name.
func EnrollStudent(ctx context.Context, db *gorm.DB, in EnrollInput) (*EnrollResult, error) {
	return enroll(ctx, db, in, model.RoleStudent)
}

// EnrollTeacher is the same flow scoped to the teacher↔section relation.
func EnrollTeacher(ctx context.Context, db *gorm.DB, in EnrollInput) (*EnrollResult, error) {
	return enroll(ctx, db, in, model.RoleTeacher)
}

func enroll(ctx context.Context, db *gorm.DB, in EnrollInput, role string) (*EnrollResult, error) {
	in.normalize()
	if in.Name == "" || in.Tag == "" || in.Section == "" || in.IDNumber == "" {
		return nil, ErrInvalidInput
	}

	var person model.PersonModel
	var section model.SectionModel

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Advisory fast paths. The unique indexes are the real guarantee;
		// a race past these checks is caught at insert time below.
		var n int64
		if err := tx.Model(&model.PersonModel{}).
			Where("person_rfid_tag = ?", in.Tag).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicateTag
		}
		if err := tx.Model(&model.PersonModel{}).
			Where("person_id_number = ?", in.IDNumber).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicateIdentifier
		}

		if err := resolveSection(tx, in.Section, &section); err != nil {
			return err
		}

		person = model.PersonModel{
			PersonName:     in.Name,
			PersonRFIDTag:  in.Tag,
			PersonIDNumber: in.IDNumber,
			PersonRole:     role,
		}
		if err := tx.Create(&person).Error; err != nil {
			return err
		}

		switch role {
		case model.RoleTeacher:
			link := model.TeacherSectionLinkModel{
				TeacherSectionLinkPersonID:  person.PersonID,
				TeacherSectionLinkSectionID: section.SectionID,
			}
			return tx.Create(&link).Error
		default:
			link := model.StudentSectionLinkModel{
				StudentSectionLinkPersonID:  person.PersonID,
				StudentSectionLinkSectionID: section.SectionID,
			}
			return tx.Create(&link).Error
		}
	})
	if err != nil {
		return nil, classifyEnrollError(err)
	}

	return &EnrollResult{Person: person, SectionName: section.SectionName}, nil
}

// resolveSection is get-or-create by exact, case-sensitive name.
func resolveSection(tx *gorm.DB, name string, out *model.SectionModel) error {
	err := tx.Where("section_name = ?", name).Take(out).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	*out = model.SectionModel{SectionName: name}
	return tx.Create(out).Error
}

// classifyEnrollError maps constraint violations hit at commit time to the
// same domain errors the pre-checks produce, keyed by the violated column.
func classifyEnrollError(err error) error {
	if errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDuplicateTag) ||
		errors.Is(err, ErrDuplicateIdentifier) {
		return err
	}
	if helper.IsDuplicateKey(err) {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "person_rfid_tag"):
			return ErrDuplicateTag
		case strings.Contains(msg, "person_id_number"):
			return ErrDuplicateIdentifier
		case strings.Contains(msg, "section_name"):
			return ErrSectionConflict
		}
		return ErrSectionConflict
	}
	return fmt.Errorf("enroll: %w", err)
}
