package models

// Coordinates - пара широта/долгота в градусах
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Responder представляет медработника, доступного для оповещений.
// Location равен nil до первого update_location от его сессии.
type Responder struct {
	ID        string       `json:"id"`
	Location  *Coordinates `json:"location,omitempty"`
	Available bool         `json:"available"`
	SessionID string       `json:"session_id"`
}
