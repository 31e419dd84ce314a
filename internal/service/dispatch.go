package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/nurselink/emergency_dispatch/internal/models"
	"github.com/nurselink/emergency_dispatch/pkg/geo"
	"github.com/sirupsen/logrus"
)

// События, которые движок отправляет в сессии медработников
const (
	EventEmergencyAlert    = "emergency_alert"
	EventEmergencyAssigned = "emergency_assigned"
)

// AlertPayload - полезная нагрузка события emergency_alert
type AlertPayload struct {
	Emergency models.Emergency `json:"emergency"`
	Distance  int              `json:"distance"`
}

// AssignmentPayload - полезная нагрузка события emergency_assigned
type AssignmentPayload struct {
	Emergency models.Emergency `json:"emergency"`
}

// Notifier отправляет событие в конкретную сессию. Доставка fire-and-forget:
// если сессии уже нет или запись в нее не удалась, вызов ничего не сообщает -
// подтверждений, повторов и очередей нет.
type Notifier interface {
	Push(sessionID, event string, payload any)
}

// ResponderRegistry определяет контракт реестра живых сессий для движка
type ResponderRegistry interface {
	Get(id string) (models.Responder, bool)
	Snapshot() []models.Responder
}

// EmergencyStore определяет контракт хранилища инцидентов для движка
type EmergencyStore interface {
	Create(em *models.Emergency) models.Emergency
	Accept(id uuid.UUID, responderID string) (models.Emergency, error)
	Get(id uuid.UUID) (models.Emergency, error)
	List() []models.Emergency
}

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/nurselink/emergency_dispatch/internal/service EmergencyService,Notifier

// EmergencyService определяет контракт бизнес-логики диспетчеризации
type EmergencyService interface {
	CreateEmergency(ctx context.Context, em *models.Emergency) (models.Emergency, error)
	AcceptEmergency(ctx context.Context, id uuid.UUID, responderID string) (models.Emergency, error)
	GetEmergency(ctx context.Context, id uuid.UUID) (models.Emergency, error)
	ListEmergencies(ctx context.Context) []models.Emergency
	ListResponders(ctx context.Context) []models.Responder
}

type dispatchService struct {
	store    EmergencyStore
	registry ResponderRegistry
	notifier Notifier
	logger   *logrus.Logger
}

func NewDispatchService(store EmergencyStore, registry ResponderRegistry, notifier Notifier, logger *logrus.Logger) EmergencyService {
	return &dispatchService{
		store:    store,
		registry: registry,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateEmergency сохраняет инцидент и рассылает emergency_alert всем
// медработникам в радиусе геозоны
func (s *dispatchService) CreateEmergency(ctx context.Context, em *models.Emergency) (models.Emergency, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dispatch",
		"method":  "CreateEmergency",
		"title":   em.Title,
	})
	log.Info("Creating a new emergency")

	created := s.store.Create(em)
	s.broadcast(created)

	log.WithField("emergency_id", created.ID).Info("Emergency created")
	return created, nil
}

// broadcast работает со снимком реестра на момент диспетчеризации:
// зарегистрировавшиеся позже этот инцидент не получат, это определенное
// поведение, а не гонка. Медработники без известной локации пропускаются.
func (s *dispatchService) broadcast(em models.Emergency) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "broadcast",
		"emergency_id": em.ID,
	})

	notified := 0
	for _, resp := range s.registry.Snapshot() {
		if resp.Location == nil {
			continue
		}

		dist := geo.DistanceMeters(em.Latitude, em.Longitude, resp.Location.Latitude, resp.Location.Longitude)
		if dist > em.RadiusMeters {
			continue
		}

		s.notifier.Push(resp.SessionID, EventEmergencyAlert, AlertPayload{
			Emergency: em,
			Distance:  int(math.Floor(dist)),
		})
		notified++
	}

	log.WithField("notified", notified).Info("Emergency alert broadcast completed")
}

// AcceptEmergency переводит инцидент в assigned и адресно уведомляет
// принявшего медработника. Отсутствие у него живой сессии - не ошибка:
// инцидент все равно назначен, уведомление просто не отправляется.
func (s *dispatchService) AcceptEmergency(ctx context.Context, id uuid.UUID, responderID string) (models.Emergency, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "AcceptEmergency",
		"emergency_id": id,
		"responder_id": responderID,
	})
	log.Info("Accepting emergency")

	em, err := s.store.Accept(id, responderID)
	if err != nil {
		log.WithError(err).Warn("Failed to accept emergency")
		return models.Emergency{}, fmt.Errorf("service: could not accept emergency: %w", err)
	}

	if resp, ok := s.registry.Get(responderID); ok {
		s.notifier.Push(resp.SessionID, EventEmergencyAssigned, AssignmentPayload{Emergency: em})
	} else {
		log.Debug("Accepting responder has no live session, assignment push skipped")
	}

	log.Info("Emergency assigned")
	return em, nil
}

// GetEmergency возвращает инцидент по id
func (s *dispatchService) GetEmergency(ctx context.Context, id uuid.UUID) (models.Emergency, error) {
	em, err := s.store.Get(id)
	if err != nil {
		return models.Emergency{}, fmt.Errorf("service: could not get emergency: %w", err)
	}
	return em, nil
}

// ListEmergencies возвращает все инциденты в порядке создания
func (s *dispatchService) ListEmergencies(ctx context.Context) []models.Emergency {
	return s.store.List()
}

// ListResponders возвращает снимок текущих регистраций
func (s *dispatchService) ListResponders(ctx context.Context) []models.Responder {
	return s.registry.Snapshot()
}
