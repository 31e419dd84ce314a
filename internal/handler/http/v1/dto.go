package v1

import "github.com/nurselink/emergency_dispatch/internal/models"

// CreateEmergencyRequest DTO для создания инцидента.
// Lat/Lon - указатели: нулевые координаты валидны, required не должен
// отбрасывать точку (0, 0).
type CreateEmergencyRequest struct {
	Title  string   `json:"title" validate:"required"`
	Lat    *float64 `json:"lat" validate:"required,latitude"`
	Lon    *float64 `json:"lon" validate:"required,longitude"`
	Radius *float64 `json:"radius" validate:"omitempty,gte=0"`
}

// AcceptEmergencyRequest DTO для принятия инцидента медработником
type AcceptEmergencyRequest struct {
	NurseID string `json:"nurse_id" validate:"required"`
}

// EmergencyResponse DTO успешного ответа create/accept
type EmergencyResponse struct {
	OK        bool             `json:"ok"`
	Emergency models.Emergency `json:"emergency"`
}
