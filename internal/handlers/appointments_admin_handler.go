package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/httpresp"
	"github.com/corteexpress/barberia-api/internal/middleware"
	"github.com/corteexpress/barberia-api/internal/models"
	"github.com/corteexpress/barberia-api/internal/timezone"
)

// AppointmentsAdminHandler expone la vista mensual de citas del panel admin.
type AppointmentsAdminHandler struct {
	db *gorm.DB
}

func NewAppointmentsAdminHandler(db *gorm.DB) *AppointmentsAdminHandler {
	return &AppointmentsAdminHandler{db: db}
}

// GET /api/admin/citas?year=&month=&barberoId=

func (h *AppointmentsAdminHandler) ListByMonth(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Año y mes son obligatorios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Año inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mes inválido.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		httperr.Internal(c, "barbershop_not_found", "Barbería no encontrada.")
		return
	}

	loc := timezone.Location(shop.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	query := h.db.
		Preload("Client").
		Preload("Service").
		Preload("Barber").
		Where(
			"barbershop_id = ? AND start_time >= ? AND start_time < ?",
			barbershopID, start, end,
		)
	if barberID := c.Query("barberoId"); barberID != "" {
		query = query.Where("barber_id = ?", barberID)
	}

	var appointments []models.Appointment
	if err := query.Order("start_time ASC").Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "No se pudo listar las citas.")
		return
	}

	httpresp.OK(c, gin.H{
		"year":  year,
		"month": month,
		"citas": appointments,
	})
}
