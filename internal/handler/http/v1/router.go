package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует REST-маршруты. Пути совпадают с исходным API,
// которого ждут существующие клиенты, поэтому без версионного префикса.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.home)
	r.POST("/create_emergency", h.createEmergency)
	r.POST("/accept_emergency/:id", h.acceptEmergency)
	r.GET("/nurses", h.listNurses)
	r.GET("/emergencies", h.listEmergencies)
	r.GET("/emergencies/:id", h.getEmergency)
}
