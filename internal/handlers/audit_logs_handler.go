package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/httpresp"
	"github.com/corteexpress/barberia-api/internal/middleware"
	"github.com/corteexpress/barberia-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// GET /api/admin/auditoria
//
// Últimos eventos de auditoría de la barbería. ?action= filtra por tipo y
// ?limit= acota la página (máx. 200).
func (h *AuditLogsHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httperr.BadRequest(c, "invalid_limit", "El límite debe ser un entero positivo.")
			return
		}
		if parsed > 200 {
			parsed = 200
		}
		limit = parsed
	}

	query := h.db.Where("barbershop_id = ?", barbershopID)
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}

	var logs []models.AuditLog
	if err := query.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "No se pudo consultar la auditoría.")
		return
	}

	httpresp.OK(c, gin.H{"eventos": logs})
}
