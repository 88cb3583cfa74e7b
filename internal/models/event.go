package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is the persisted, normalized form of a submitted event.
type Event struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Location    string    `json:"location,omitempty" db:"location"`
	OccursAt    time.Time `json:"occurs_at" db:"occurs_at"`
	Attendees   []string  `json:"attendees,omitempty" db:"attendees"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// EventRequest is the raw caller-supplied shape. OccursAt stays a string
// until validation so that an unparsable timestamp is a validation
// failure, not a decode failure.
type EventRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	OccursAt    string   `json:"occurs_at" validate:"required"`
	Attendees   []string `json:"attendees"`
}
