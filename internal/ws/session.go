package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Session - одно живое websocket-соединение. Запись сериализуется мьютексом
// и ограничивается дедлайном, поэтому зависшая сессия фейлится сама по себе
// и не может удерживать чужие отправки дольше writeTimeout.
type Session struct {
	id           string
	conn         *websocket.Conn
	writeTimeout time.Duration

	mu sync.Mutex
}

func newSession(id string, conn *websocket.Conn, writeTimeout time.Duration) *Session {
	return &Session{
		id:           id,
		conn:         conn,
		writeTimeout: writeTimeout,
	}
}

// ID возвращает идентификатор сессии (sid из события connected)
func (s *Session) ID() string {
	return s.id
}

// Send отправляет клиенту одно событие с полезной нагрузкой
func (s *Session) Send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ws: failed to marshal %s payload: %w", event, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return fmt.Errorf("ws: failed to set write deadline: %w", err)
	}
	if err := s.conn.WriteJSON(Envelope{Event: event, Data: data}); err != nil {
		return fmt.Errorf("ws: failed to write %s event: %w", event, err)
	}
	return nil
}
