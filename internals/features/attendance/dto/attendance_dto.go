package dto

import (
	"time"

	"github.com/google/uuid"
)

/* =========================
   Requests
   ========================= */

type VerifyAttendanceRequest struct {
	Tokens []string `json:"tokens"`
	// falls back to the configured default location when omitted
	LocationID *int `json:"location_id" validate:"omitempty,min=1"`
}

/* =========================
   Responses
   ========================= */

type LocationResponse struct {
	ID   int    `json:"id"`
	Room string `json:"room"`
}

// AttendanceRow joins each event with person and location details for the
// reporting listing.
type AttendanceRow struct {
	EventID    uuid.UUID `json:"event_id"`
	Name       string    `json:"name"`
	IDNumber   string    `json:"id_number"`
	Section    string    `json:"section"`
	Room       string    `json:"room"`
	LocationID int       `json:"location_id"`
	At         time.Time `json:"at"`
}
