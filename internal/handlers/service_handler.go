package handlers

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/httpresp"
	"github.com/corteexpress/barberia-api/internal/infra/storage"
	"github.com/corteexpress/barberia-api/internal/middleware"
	"github.com/corteexpress/barberia-api/internal/models"
)

type ServiceHandler struct {
	db     *gorm.DB
	images *storage.ImageStore
}

func NewServiceHandler(db *gorm.DB, images *storage.ImageStore) *ServiceHandler {
	return &ServiceHandler{db: db, images: images}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	DurationMin int             `json:"duration_min" binding:"required,min=1"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	DurationMin *int             `json:"duration_min,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// --------- Handlers ---------

// GET /api/barbero/servicios y /api/admin/servicios

func (h *ServiceHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	q := h.db.Where("barbershop_id = ?", barbershopID)

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	// El panel del barbero solo carga el catálogo activo.
	if c.DefaultQuery("active", "true") == "true" {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "No se pudo listar el catálogo.")
		return
	}

	httpresp.OK(c, gin.H{"servicios": services})
}

// POST /api/admin/servicios

func (h *ServiceHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	service := models.Service{
		BarbershopID: barbershopID,
		Name:         req.Name,
		Description:  req.Description,
		DurationMin:  req.DurationMin,
		Price:        req.Price,
		Active:       true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "No se pudo crear el servicio.")
		return
	}

	httpresp.Created(c, gin.H{"servicio": service})
}

// PATCH /api/admin/servicios/:id

func (h *ServiceHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&service).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Error interno.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "No se pudo actualizar.")
		return
	}

	httpresp.OK(c, gin.H{"servicio": service})
}

// POST /api/admin/servicios/:id/imagen

func (h *ServiceHandler) UploadImage(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	id := c.Param("id")

	if h.images == nil {
		httperr.BadRequest(c, "uploads_disabled", "La carga de imágenes no está configurada.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	file, _, err := c.Request.FormFile("imagen")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Falta el archivo de imagen.")
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "La imagen no se pudo leer.")
		return
	}

	url, err := h.images.SaveServiceImage(c.Request.Context(), service.ID, img)
	if err != nil {
		httperr.Internal(c, "failed_to_store_image", "No se pudo guardar la imagen.")
		return
	}

	service.ImageURL = url
	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "No se pudo actualizar.")
		return
	}

	httpresp.OK(c, gin.H{"servicio": service})
}
