package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "rollcall_backend/internals/features/attendance/model"
	rosterModel "rollcall_backend/internals/features/roster/model"
)

var ErrInvalidInput = errors.New("tokens must be a list of scanned tags")

const StatusPresent = "Present"

// SectionUnknown labels matched students with no section link.
const SectionUnknown = "Unknown"

type MatchedPerson struct {
	Name     string `json:"name"`
	Section  string `json:"section"`
	Tag      string `json:"tag"`
	IDNumber string `json:"id_number"`
	Status   string `json:"status"`
}

type VerifyResult struct {
	TotalScans int             `json:"total"`
	Matched    []MatchedPerson `json:"matched"`
	Unmatched  []string        `json:"unmatched"`
	Summary    string          `json:"summary"`
}

// VerifyBatch matches a batch of scanned tokens against enrolled students
// and appends one attendance event per matched person.
//
// Duplicate tokens in one batch resolve to a single matched entry and a
// single event; unmatched tokens keep their original order and duplicates.
// Event inserts are independent, there is no batch atomicity: a storage
// failure mid-batch leaves earlier events in place and fails the request.
func VerifyBatch(ctx context.Context, db *gorm.DB, tokens []string, locationID int) (*VerifyResult, error) {
	if tokens == nil {
		return nil, ErrInvalidInput
	}

	res := &VerifyResult{
		TotalScans: len(tokens),
		Matched:    []MatchedPerson{},
		Unmatched:  []string{},
	}
	if len(tokens) == 0 {
		res.Summary = "0 of 0 scans matched enrolled students"
		return res, nil
	}

	// single batched lookup, not per token
	var persons []rosterModel.PersonModel
	if err := db.WithContext(ctx).
		Where("person_role = ? AND person_rfid_tag IN ?", rosterModel.RoleStudent, tokens).
		Find(&persons).Error; err != nil {
		return nil, fmt.Errorf("roster lookup: %w", err)
	}

	byTag := make(map[string]*rosterModel.PersonModel, len(persons))
	ids := make([]interface{}, 0, len(persons))
	for i := range persons {
		byTag[persons[i].PersonRFIDTag] = &persons[i]
		ids = append(ids, persons[i].PersonID)
	}

	sections, err := sectionNames(ctx, db, ids)
	if err != nil {
		return nil, fmt.Errorf("section lookup: %w", err)
	}

	now := time.Now()
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		person, ok := byTag[token]
		if !ok {
			res.Unmatched = append(res.Unmatched, token)
			continue
		}
		if seen[token] {
			continue
		}
		seen[token] = true

		sectionName := sections[person.PersonID]
		if sectionName == "" {
			sectionName = SectionUnknown
		}
		res.Matched = append(res.Matched, MatchedPerson{
			Name:     person.PersonName,
			Section:  sectionName,
			Tag:      person.PersonRFIDTag,
			IDNumber: person.PersonIDNumber,
			Status:   StatusPresent,
		})

		event := model.AttendanceEventModel{
			AttendanceEventPersonID:   person.PersonID,
			AttendanceEventLocationID: locationID,
			AttendanceEventDate:       datatypes.Date(now),
			AttendanceEventAt:         now,
		}
		if err := db.WithContext(ctx).Create(&event).Error; err != nil {
			return nil, fmt.Errorf("record attendance: %w", err)
		}
	}

	res.Summary = fmt.Sprintf("%d of %d scans matched enrolled students", len(res.Matched), res.TotalScans)
	return res, nil
}

// sectionNames resolves person_id → section name for matched students. A
// person with several links gets the first by name.
func sectionNames(ctx context.Context, db *gorm.DB, personIDs []interface{}) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(personIDs))
	if len(personIDs) == 0 {
		return out, nil
	}

	type row struct {
		PersonID    uuid.UUID
		SectionName string
	}
	var rows []row
	if err := db.WithContext(ctx).
		Table("student_section_links").
		Select("student_section_links.student_section_link_person_id AS person_id, sections.section_name AS section_name").
		Joins("JOIN sections ON sections.section_id = student_section_links.student_section_link_section_id").
		Where("student_section_links.student_section_link_person_id IN ?", personIDs).
		Order("sections.section_name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		if _, ok := out[r.PersonID]; !ok {
			out[r.PersonID] = r.SectionName
		}
	}
	return out, nil
}
