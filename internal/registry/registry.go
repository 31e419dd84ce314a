package registry

import (
	"sort"
	"sync"

	"github.com/nurselink/emergency_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

// Registry хранит текущее множество живых сессий медработников.
// Прямой индекс id -> запись и обратный индекс сессия -> id мутируются
// атомарно под одним мьютексом, поэтому связь сессия<->медработник всегда
// строго один к одному.
type Registry struct {
	mu         sync.RWMutex
	responders map[string]*models.Responder
	bySession  map[string]string
	logger     *logrus.Logger
}

func New(logger *logrus.Logger) *Registry {
	return &Registry{
		responders: make(map[string]*models.Responder),
		bySession:  make(map[string]string),
		logger:     logger,
	}
}

// Register создает или замещает запись медработника. Повторная регистрация
// того же id - это логический перехват: старая привязка сессии снимается,
// запись начинается с чистого состояния (локация неизвестна, available=true).
func (r *Registry) Register(id, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.responders[id]; ok {
		delete(r.bySession, prev.SessionID)
	}
	// Если сессия уже была привязана к другому id, освобождаем его,
	// иначе осиротевшая запись пережила бы disconnect.
	if prevID, ok := r.bySession[sessionID]; ok && prevID != id {
		delete(r.responders, prevID)
	}

	r.responders[id] = &models.Responder{
		ID:        id,
		Available: true,
		SessionID: sessionID,
	}
	r.bySession[sessionID] = id

	r.logger.WithFields(logrus.Fields{
		"responder_id": id,
		"session_id":   sessionID,
	}).Info("Responder registered")
}

// UpdateLocation обновляет локацию и доступность. Незарегистрированный id
// молча игнорируется: запоздавшее обновление от уже отключившейся сессии -
// не ошибка.
func (r *Registry) UpdateLocation(id string, lat, lon float64, available bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resp, ok := r.responders[id]
	if !ok {
		r.logger.WithField("responder_id", id).Debug("Location update for unknown responder ignored")
		return
	}

	resp.Location = &models.Coordinates{Latitude: lat, Longitude: lon}
	resp.Available = available

	r.logger.WithFields(logrus.Fields{
		"responder_id": id,
		"lat":          lat,
		"lon":          lon,
		"available":    available,
	}).Debug("Responder location updated")
}

// Disconnect удаляет медработника, чья текущая сессия совпала с sessionID.
// Поиск идет по идентичности сессии, а не по id: отключение вытесненной
// сессии не должно снести более свежую регистрацию.
func (r *Registry) Disconnect(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.bySession[sessionID]
	if !ok {
		return
	}
	delete(r.bySession, sessionID)
	delete(r.responders, id)

	r.logger.WithFields(logrus.Fields{
		"responder_id": id,
		"session_id":   sessionID,
	}).Info("Responder disconnected")
}

// Get возвращает копию записи медработника
func (r *Registry) Get(id string) (models.Responder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resp, ok := r.responders[id]
	if !ok {
		return models.Responder{}, false
	}
	return copyResponder(resp), true
}

// Snapshot возвращает копии всех текущих записей, отсортированные по id.
// Внутренняя карта наружу не отдается, итерация по снимку безопасна при
// параллельных мутациях реестра.
func (r *Registry) Snapshot() []models.Responder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Responder, 0, len(r.responders))
	for _, resp := range r.responders {
		out = append(out, copyResponder(resp))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func copyResponder(resp *models.Responder) models.Responder {
	cp := *resp
	if resp.Location != nil {
		loc := *resp.Location
		cp.Location = &loc
	}
	return cp
}
