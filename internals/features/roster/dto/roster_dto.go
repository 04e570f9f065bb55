package dto

import (
	"github.com/google/uuid"

	model "rollcall_backend/internals/features/roster/model"
)

/* =========================
   Requests
   ========================= */

type EnrollPersonRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Tag      string `json:"tag" validate:"required,max=64"`
	Section  string `json:"section" validate:"required,max=120"`
	IDNumber string `json:"id_number" validate:"required,max=64"`
}

/* =========================
   Responses
   ========================= */

type PersonResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Tag      string    `json:"tag"`
	Section  string    `json:"section"`
	IDNumber string    `json:"id_number"`
	Role     string    `json:"role"`
}

func FromPersonModel(m model.PersonModel, sectionName string) PersonResponse {
	return PersonResponse{
		ID:       m.PersonID,
		Name:     m.PersonName,
		Tag:      m.PersonRFIDTag,
		Section:  sectionName,
		IDNumber: m.PersonIDNumber,
		Role:     m.PersonRole,
	}
}

type SectionResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func FromSectionModels(rows []model.SectionModel) []SectionResponse {
	out := make([]SectionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, SectionResponse{ID: r.SectionID, Name: r.SectionName})
	}
	return out
}

// StudentRow is the students listing projection; Section stays empty when
// the student has no link.
type StudentRow struct {
	Name     string `json:"name"`
	Tag      string `json:"tag"`
	IDNumber string `json:"id_number"`
	Section  string `json:"section"`
}
