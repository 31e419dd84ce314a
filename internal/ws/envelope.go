package ws

import "encoding/json"

// События канала реального времени. Имена совпадают с протоколом,
// который ожидают мобильные клиенты.
const (
	EventConnected      = "connected"
	EventRegister       = "register"
	EventRegistered     = "registered"
	EventUpdateLocation = "update_location"
)

// Envelope - кадр протокола: имя события плюс произвольная полезная нагрузка
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ConnectedPayload отправляется клиенту сразу после апгрейда соединения
type ConnectedPayload struct {
	SID string `json:"sid"`
}

// RegisterPayload - входящее событие register
type RegisterPayload struct {
	ID string `json:"id"`
}

// RegisteredPayload - подтверждение регистрации
type RegisteredPayload struct {
	ID string `json:"id"`
}

// UpdateLocationPayload - входящее событие update_location.
// Lat/Lon - указатели: отсутствующую координату нельзя путать с нулевой,
// иначе клиент без координат окажется в точке (0, 0). Available опционален
// и по умолчанию трактуется как true.
type UpdateLocationPayload struct {
	ID        string   `json:"id"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Available *bool    `json:"available,omitempty"`
}
