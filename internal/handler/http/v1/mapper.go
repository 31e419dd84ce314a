package v1

import "github.com/nurselink/emergency_dispatch/internal/models"

// DTOToEmergencyModel преобразует запрос создания в доменную модель,
// подставляя радиус по умолчанию, когда он не передан
func DTOToEmergencyModel(dto CreateEmergencyRequest, defaultRadius float64) *models.Emergency {
	radius := defaultRadius
	if dto.Radius != nil {
		radius = *dto.Radius
	}
	return &models.Emergency{
		Title:        dto.Title,
		Latitude:     *dto.Lat,
		Longitude:    *dto.Lon,
		RadiusMeters: radius,
	}
}
