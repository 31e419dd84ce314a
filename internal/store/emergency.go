package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nurselink/emergency_dispatch/internal/models"
)

// ErrEmergencyNotFound возвращается при обращении к неизвестному id инцидента
var ErrEmergencyNotFound = errors.New("emergency not found")

// EmergencyStore владеет записями инцидентов на все время жизни процесса.
// Записи никогда не удаляются; наружу отдаются только копии.
type EmergencyStore struct {
	mu          sync.RWMutex
	emergencies map[uuid.UUID]*models.Emergency
	order       []uuid.UUID // порядок создания для стабильного List
}

func NewEmergencyStore() *EmergencyStore {
	return &EmergencyStore{
		emergencies: make(map[uuid.UUID]*models.Emergency),
	}
}

// Create присваивает инциденту свежий UUID, статус open и сохраняет запись.
// Возвращает копию сохраненного инцидента.
func (s *EmergencyStore) Create(em *models.Emergency) models.Emergency {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	em.ID = uuid.New()
	em.Status = models.StatusOpen
	em.CreatedAt = now
	em.UpdatedAt = now

	stored := *em
	s.emergencies[em.ID] = &stored
	s.order = append(s.order, em.ID)
	return *em
}

// Accept безусловно переводит инцидент в assigned и записывает исполнителя.
// Повторный accept перезаписывает прежнего исполнителя - так ведет себя
// исходный протокол, защита от переназначения намеренно не добавлена.
func (s *EmergencyStore) Accept(id uuid.UUID, responderID string) (models.Emergency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	em, ok := s.emergencies[id]
	if !ok {
		return models.Emergency{}, ErrEmergencyNotFound
	}

	em.Status = models.StatusAssigned
	em.AssignedTo = responderID
	em.UpdatedAt = time.Now()
	return *em, nil
}

// Get возвращает копию инцидента по id
func (s *EmergencyStore) Get(id uuid.UUID) (models.Emergency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	em, ok := s.emergencies[id]
	if !ok {
		return models.Emergency{}, ErrEmergencyNotFound
	}
	return *em, nil
}

// List возвращает копии всех инцидентов в порядке создания
func (s *EmergencyStore) List() []models.Emergency {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Emergency, 0, len(s.emergencies))
	for _, id := range s.order {
		out = append(out, *s.emergencies[id])
	}
	return out
}
