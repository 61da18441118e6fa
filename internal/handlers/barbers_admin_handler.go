package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/httpresp"
	"github.com/corteexpress/barberia-api/internal/middleware"
	"github.com/corteexpress/barberia-api/internal/models"
)

// BarbersAdminHandler administra el equipo de barberos y su configuración
// de comisiones.
type BarbersAdminHandler struct {
	db *gorm.DB
}

func NewBarbersAdminHandler(db *gorm.DB) *BarbersAdminHandler {
	return &BarbersAdminHandler{db: db}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	CommissionRate   decimal.Decimal `json:"commission_rate"`
	CommissionPeriod string          `json:"commission_period"`
}

type UpdateBarberRequest struct {
	Name             *string          `json:"name,omitempty"`
	Phone            *string          `json:"phone,omitempty"`
	CommissionRate   *decimal.Decimal `json:"commission_rate,omitempty"`
	CommissionPeriod *string          `json:"commission_period,omitempty"`
}

// GET /api/admin/barberos

func (h *BarbersAdminHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var barbers []models.User
	if err := h.db.
		Where("barbershop_id = ?", barbershopID).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "No se pudo listar los barberos.")
		return
	}

	httpresp.OK(c, gin.H{"barberos": barbers})
}

// POST /api/admin/barberos

func (h *BarbersAdminHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Error interno.")
		return
	}

	period := req.CommissionPeriod
	if period == "" {
		period = "quincenal"
	}

	barber := models.User{
		BarbershopID:     barbershopID,
		Name:             req.Name,
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:     string(hashed),
		Phone:            req.Phone,
		Role:             "barbero",
		CommissionRate:   req.CommissionRate,
		CommissionPeriod: period,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "No se pudo crear el barbero.")
		return
	}

	httpresp.Created(c, gin.H{"barbero": barber})
}

// PATCH /api/admin/barberos/:id

func (h *BarbersAdminHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	id := c.Param("id")

	var barber models.User
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}
	if req.CommissionRate != nil {
		barber.CommissionRate = *req.CommissionRate
	}
	if req.CommissionPeriod != nil {
		barber.CommissionPeriod = *req.CommissionPeriod
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "No se pudo actualizar.")
		return
	}

	httpresp.OK(c, gin.H{"barbero": barber})
}
