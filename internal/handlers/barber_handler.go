package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/httpresp"
	"github.com/corteexpress/barberia-api/internal/middleware"
	"github.com/corteexpress/barberia-api/internal/models"
)

// BarberHandler expone la info del barbero autenticado, incluida su
// configuración de comisión.
type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

// GET /api/barbero/info

func (h *BarberHandler) GetInfo(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var barber models.User
	if err := h.db.Preload("Barbershop").First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	httpresp.OK(c, gin.H{
		"barbero": gin.H{
			"id":                barber.ID,
			"name":              barber.Name,
			"email":             barber.Email,
			"phone":             barber.Phone,
			"role":              barber.Role,
			"commission_rate":   barber.CommissionRate,
			"commission_period": barber.CommissionPeriod,
		},
		"barberia": gin.H{
			"id":           barber.Barbershop.ID,
			"name":         barber.Barbershop.Name,
			"opening_time": barber.Barbershop.OpeningTime,
			"closing_time": barber.Barbershop.ClosingTime,
			"timezone":     barber.Barbershop.Timezone,
		},
	})
}
