package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Registry - операции реестра, которые нужны транспорту
type Registry interface {
	Register(id, sessionID string)
	UpdateLocation(id string, lat, lon float64, available bool)
	Disconnect(sessionID string)
}

// Handler обслуживает websocket-подключения медработников
type Handler struct {
	hub      *Hub
	registry Registry
	logger   *logrus.Logger
}

func NewHandler(hub *Hub, registry Registry, logger *logrus.Logger) *Handler {
	return &Handler{
		hub:      hub,
		registry: registry,
		logger:   logger,
	}
}

// Serve апгрейдит запрос и крутит read loop до закрытия соединения.
// Любое завершение цикла снимает сессию с учета и чистит реестр по
// идентичности сессии.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to upgrade websocket connection")
		return
	}
	defer conn.Close()

	sess := h.hub.Add(conn)
	log := h.logger.WithField("session_id", sess.ID())
	log.Info("Websocket client connected")

	defer func() {
		h.hub.Remove(sess.ID())
		h.registry.Disconnect(sess.ID())
		log.Info("Websocket client disconnected")
	}()

	if err := sess.Send(EventConnected, ConnectedPayload{SID: sess.ID()}); err != nil {
		log.WithError(err).Warn("Failed to send connected event")
		return
	}

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			log.WithError(err).Debug("Websocket read loop finished")
			return
		}
		h.handleEvent(sess, env, log)
	}
}

func (h *Handler) handleEvent(sess *Session, env Envelope, log *logrus.Entry) {
	switch env.Event {
	case EventRegister:
		var p RegisterPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.ID == "" {
			// register без id молча игнорируется
			return
		}
		h.registry.Register(p.ID, sess.ID())
		if err := sess.Send(EventRegistered, RegisteredPayload{ID: p.ID}); err != nil {
			log.WithError(err).Warn("Failed to send registered ack")
		}

	case EventUpdateLocation:
		var p UpdateLocationPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		if p.Lat == nil || p.Lon == nil {
			// update_location без координат игнорируется, локация не трогается
			log.WithField("responder_id", p.ID).Debug("update_location without coordinates ignored")
			return
		}
		available := true
		if p.Available != nil {
			available = *p.Available
		}
		h.registry.UpdateLocation(p.ID, *p.Lat, *p.Lon, available)

	default:
		log.WithField("event", env.Event).Debug("Unknown websocket event ignored")
	}
}
