package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/httpresp"
	"github.com/corteexpress/barberia-api/internal/middleware"
	"github.com/corteexpress/barberia-api/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// GET /api/admin/clientes
//
// Lista los clientes de la barbería; ?telefono= filtra por coincidencia
// parcial para la búsqueda desde caja.
func (h *ClientHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	query := h.db.Where("barbershop_id = ?", barbershopID)
	if phone := c.Query("telefono"); phone != "" {
		query = query.Where("phone LIKE ?", "%"+phone+"%")
	}

	var clients []models.Client
	if err := query.Order("name ASC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "No se pudo listar los clientes.")
		return
	}

	httpresp.OK(c, gin.H{"clientes": clients})
}

type AdjustCreditsRequest struct {
	FreeCutCredits int `json:"free_cut_credits" binding:"min=0"`
}

// PATCH /api/admin/clientes/:id/creditos
//
// Ajuste manual de los cortes gratis acumulados (correcciones de caja).
func (h *ClientHandler) AdjustCredits(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	id := c.Param("id")

	var req AdjustCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
		return
	}

	client.FreeCutCredits = req.FreeCutCredits
	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "No se pudo actualizar el cliente.")
		return
	}

	httpresp.OK(c, gin.H{"cliente": client})
}
