package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nurselink/emergency_dispatch/internal/config"
	"github.com/nurselink/emergency_dispatch/internal/service"
	"github.com/nurselink/emergency_dispatch/internal/store"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	emergencyService service.EmergencyService
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(emergencyService service.EmergencyService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		emergencyService: emergencyService,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// home - проверка живости бэкенда
func (h *Handler) home(c *gin.Context) {
	c.String(http.StatusOK, "Backend is running")
}

// createEmergency создает инцидент и запускает рассылку оповещений.
// Ошибка валидации не мутирует состояние.
func (h *Handler) createEmergency(c *gin.Context) {
	var input CreateEmergencyRequest
	log := h.logger.WithField("method", "createEmergency")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToEmergencyModel(input, h.cfg.DefaultRadiusMeters)
	created, err := h.emergencyService.CreateEmergency(c.Request.Context(), model)
	if err != nil {
		log.WithError(err).Error("Failed to create emergency in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, EmergencyResponse{OK: true, Emergency: created})
}

// acceptEmergency назначает инцидент на медработника. Неизвестный id - 404;
// невалидный UUID для клиента неотличим от неизвестного id.
func (h *Handler) acceptEmergency(c *gin.Context) {
	log := h.logger.WithField("method", "acceptEmergency")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "emergency not found"})
		return
	}
	log = log.WithField("emergency_id", id)

	var input AcceptEmergencyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	em, err := h.emergencyService.AcceptEmergency(c.Request.Context(), id, input.NurseID)
	if err != nil {
		if errors.Is(err, store.ErrEmergencyNotFound) {
			log.Warn("Emergency not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "emergency not found"})
			return
		}
		log.WithError(err).Error("Failed to accept emergency in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, EmergencyResponse{OK: true, Emergency: em})
}

// listNurses возвращает снимок текущих регистраций
func (h *Handler) listNurses(c *gin.Context) {
	c.JSON(http.StatusOK, h.emergencyService.ListResponders(c.Request.Context()))
}

// listEmergencies возвращает все инциденты в порядке создания
func (h *Handler) listEmergencies(c *gin.Context) {
	c.JSON(http.StatusOK, h.emergencyService.ListEmergencies(c.Request.Context()))
}

// getEmergency возвращает один инцидент по id. Семантика id как в accept:
// невалидный UUID неотличим от неизвестного
func (h *Handler) getEmergency(c *gin.Context) {
	log := h.logger.WithField("method", "getEmergency")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "emergency not found"})
		return
	}

	em, err := h.emergencyService.GetEmergency(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrEmergencyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "emergency not found"})
			return
		}
		log.WithError(err).Error("Failed to get emergency in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, em)
}
