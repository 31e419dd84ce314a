package geo

import "math"

// earthRadiusMeters - средний радиус Земли
const earthRadiusMeters = 6371000.0

// DistanceMeters возвращает расстояние по дуге большого круга между двумя
// точками (формула гаверсинусов). Аргументы в градусах, результат в метрах.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lon2 - lon1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	// Из-за погрешностей float64 значение a может чуть выйти за [0, 1],
	// что дало бы NaN на антиподальных или совпадающих точках.
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
