package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы жизненного цикла инцидента: open -> assigned.
// Из assigned выхода нет, терминального "resolved" не существует.
const (
	StatusOpen     = "open"
	StatusAssigned = "assigned"
)

// Emergency представляет инцидент с геозоной оповещения
type Emergency struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Latitude     float64   `json:"lat"`
	Longitude    float64   `json:"lon"`
	RadiusMeters float64   `json:"radius"`
	Status       string    `json:"status"`
	AssignedTo   string    `json:"assigned_to,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
