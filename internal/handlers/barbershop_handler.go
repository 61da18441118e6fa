package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/httpresp"
	"github.com/corteexpress/barberia-api/internal/middleware"
	"github.com/corteexpress/barberia-api/internal/models"
	"github.com/corteexpress/barberia-api/internal/timezone"
)

type BarbershopHandler struct {
	db *gorm.DB
}

func NewBarbershopHandler(db *gorm.DB) *BarbershopHandler {
	return &BarbershopHandler{db: db}
}

// GET /api/admin/barberia

func (h *BarbershopHandler) Get(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbería no encontrada.")
		return
	}

	httpresp.OK(c, gin.H{"barberia": shop})
}

type UpdateBarbershopRequest struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Timezone    *string `json:"timezone,omitempty"`
	OpeningTime *string `json:"opening_time,omitempty"`
	ClosingTime *string `json:"closing_time,omitempty"`
}

// PATCH /api/admin/barberia
//
// La ventana de atención se valida como HH:MM y apertura < cierre; la agenda
// pública se recorta a esa ventana.
func (h *BarbershopHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbería no encontrada.")
		return
	}

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Zona horaria inválida.")
			return
		}
		shop.Timezone = *req.Timezone
	}

	opening := shop.OpeningTime
	closing := shop.ClosingTime
	if req.OpeningTime != nil {
		opening = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		closing = *req.ClosingTime
	}
	if req.OpeningTime != nil || req.ClosingTime != nil {
		openAt, err1 := time.Parse("15:04", opening)
		closeAt, err2 := time.Parse("15:04", closing)
		if err1 != nil || err2 != nil || !openAt.Before(closeAt) {
			httperr.BadRequest(c, "invalid_schedule_window", "La ventana de atención es inválida.")
			return
		}
		shop.OpeningTime = opening
		shop.ClosingTime = closing
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "No se pudo actualizar la barbería.")
		return
	}

	httpresp.OK(c, gin.H{"barberia": shop})
}
