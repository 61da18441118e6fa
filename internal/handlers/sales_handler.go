package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/corteexpress/barberia-api/internal/dto"
	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/httpresp"
	"github.com/corteexpress/barberia-api/internal/middleware"
	"github.com/corteexpress/barberia-api/internal/models"
	"github.com/corteexpress/barberia-api/internal/timezone"
)

// SalesHandler lista el historial de ventas del panel admin.
type SalesHandler struct {
	db *gorm.DB
}

func NewSalesHandler(db *gorm.DB) *SalesHandler {
	return &SalesHandler{db: db}
}

// GET /api/admin/ventas?date=YYYY-MM-DD

func (h *SalesHandler) ListByDate(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		httperr.Internal(c, "barbershop_not_found", "Barbería no encontrada.")
		return
	}

	loc := timezone.Location(shop.Timezone)

	date := timezone.NowIn(shop.Timezone)
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
			return
		}
		date = parsed
	}

	start, end := timezone.DayRange(date.In(loc))

	var sales []models.Sale
	if err := h.db.
		Preload("Items").
		Where(
			"barbershop_id = ? AND created_at >= ? AND created_at < ?",
			barbershopID, start, end,
		).
		Order("created_at DESC").
		Find(&sales).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sales", "No se pudo listar las ventas.")
		return
	}

	total := decimal.Zero
	commissions := decimal.Zero
	out := make([]dto.SaleDTO, 0, len(sales))
	for _, s := range sales {
		total = total.Add(s.Total)
		commissions = commissions.Add(s.Commission)
		out = append(out, dto.NewSaleDTO(s))
	}

	httpresp.OK(c, gin.H{
		"ventas":           out,
		"total_dia":        total,
		"comisiones_dia":   commissions,
		"cantidad_ventas":  len(out),
	})
}
