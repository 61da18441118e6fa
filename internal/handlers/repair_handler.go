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

// RepairHandler maneja las órdenes de reparación de equipos (máquinas,
// patilleras) que la barbería recibe de otros barberos.
type RepairHandler struct {
	db *gorm.DB
}

func NewRepairHandler(db *gorm.DB) *RepairHandler {
	return &RepairHandler{db: db}
}

// --------- Requests ---------

type CreateRepairRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	Equipment   string `json:"equipment" binding:"required"`
	Issue       string `json:"issue"`
}

type UpdateRepairRequest struct {
	Status string `json:"status" binding:"required,oneof=recibido en_taller listo entregado"`
}

// GET /api/admin/reparaciones

func (h *RepairHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	q := h.db.Where("barbershop_id = ?", barbershopID)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.RepairOrder
	if err := q.Order("received_at DESC").Find(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_list_repairs", "No se pudo listar las reparaciones.")
		return
	}

	httpresp.OK(c, gin.H{"reparaciones": orders})
}

// POST /api/admin/reparaciones

func (h *RepairHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	order := models.RepairOrder{
		BarbershopID: barbershopID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		Equipment:    req.Equipment,
		Issue:        req.Issue,
		Status:       "recibido",
		ReceivedAt:   timezone.Now(),
	}

	if err := h.db.Create(&order).Error; err != nil {
		httperr.Internal(c, "failed_to_create_repair", "No se pudo crear la orden.")
		return
	}

	httpresp.Created(c, gin.H{"reparacion": order})
}

// PATCH /api/admin/reparaciones/:id/estado

func (h *RepairHandler) UpdateStatus(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	id := c.Param("id")

	var order models.RepairOrder
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&order).Error; err != nil {
		httperr.NotFound(c, "repair_not_found", "Orden no encontrada.")
		return
	}

	var req UpdateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Estado inválido.")
		return
	}

	// Una orden entregada no vuelve atrás.
	if order.Status == "entregado" {
		httperr.BadRequest(c, "invalid_state", "La orden ya fue entregada.")
		return
	}

	order.Status = req.Status
	if req.Status == "entregado" {
		now := time.Now()
		order.DeliveredAt = &now
	}

	if err := h.db.Save(&order).Error; err != nil {
		httperr.Internal(c, "failed_to_update_repair", "No se pudo actualizar la orden.")
		return
	}

	httpresp.OK(c, gin.H{"reparacion": order})
}
