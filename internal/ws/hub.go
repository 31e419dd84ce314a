package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub хранит живые сессии по их sid и реализует service.Notifier.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	writeTimeout time.Duration
	logger       *logrus.Logger
}

func NewHub(logger *logrus.Logger, writeTimeout time.Duration) *Hub {
	return &Hub{
		sessions:     make(map[string]*Session),
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// Add регистрирует соединение под свежим sid и возвращает сессию
func (h *Hub) Add(conn *websocket.Conn) *Session {
	sess := newSession(uuid.New().String(), conn, h.writeTimeout)

	h.mu.Lock()
	h.sessions[sess.ID()] = sess
	h.mu.Unlock()

	return sess
}

// Remove снимает сессию с учета. Само соединение закрывает владелец read loop.
func (h *Hub) Remove(sessionID string) {
	h.mu.Lock()
	delete(h.sessions, sessionID)
	h.mu.Unlock()
}

// Push отправляет событие в сессию. Доставка best-effort: исчезнувшая сессия -
// no-op, ошибка записи логируется и глотается, вызывающему она не видна.
func (h *Hub) Push(sessionID, event string, payload any) {
	h.mu.RLock()
	sess, ok := h.sessions[sessionID]
	h.mu.RUnlock()
	if !ok {
		h.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"event":      event,
		}).Debug("Push to unknown session dropped")
		return
	}

	if err := sess.Send(event, payload); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"session_id": sessionID,
			"event":      event,
		}).Warn("Failed to push event to session")
	}
}

// Len возвращает число живых сессий
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
