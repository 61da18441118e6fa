package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/httpresp"
	"github.com/corteexpress/barberia-api/internal/middleware"
	ucBooking "github.com/corteexpress/barberia-api/internal/usecase/booking"
)

// BookingHandler atiende el formulario de agendamiento: disponibilidad por
// fecha y creación de citas para clientes walk-in o telefónicos.
type BookingHandler struct {
	availability *ucBooking.Availability
	create       *ucBooking.CreateAppointment
}

func NewBookingHandler(
	availability *ucBooking.Availability,
	create *ucBooking.CreateAppointment,
) *BookingHandler {
	return &BookingHandler{
		availability: availability,
		create:       create,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	BarberoID   uint   `json:"barberoId" binding:"required"`
	ServicioID  uint   `json:"servicioId" binding:"required"`
	Fecha       string `json:"fecha" binding:"required"`
	Hora        string `json:"hora" binding:"required"`
	ClientName  string `json:"clientName" binding:"required"`
	ClientPhone string `json:"clientPhone" binding:"required"`
	ClientEmail string `json:"clientEmail"`
	Notas       string `json:"notas"`
	UsarBono    bool   `json:"usarBono"`
}

// ======================================================
// GET /api/citas?barberoId=&date=
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	barberID64, err := strconv.ParseUint(c.Query("barberoId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "missing_barber", "El barbero es obligatorio.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "La fecha es obligatoria.")
		return
	}

	result, err := h.availability.Execute(
		c.Request.Context(),
		barbershopID,
		uint(barberID64),
		dateStr,
	)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
			return
		}
		httperr.Internal(c, "failed_to_get_availability", "No se pudo calcular la disponibilidad.")
		return
	}

	httpresp.OK(c, gin.H{
		"reservadas":  result.Reservadas,
		"disponibles": result.Disponibles,
	})
}

// ======================================================
// POST /api/citas
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Faltan campos obligatorios.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucBooking.CreateAppointmentInput{
		BarbershopID: barbershopID,
		BarberID:     req.BarberoID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ServiceID:    req.ServicioID,
		Date:         req.Fecha,
		Time:         req.Hora,
		Notes:        req.Notas,
		UsarBono:     req.UsarBono,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.Created(c, gin.H{"cita": ap})
}

func writeBookingError(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case "missing_fields":
		httperr.BadRequest(c, "missing_fields", "Faltan campos obligatorios.")
	case "invalid_phone":
		httperr.BadRequest(c, "invalid_phone", "El teléfono no es válido.")
	case "invalid_date_or_time":
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")
	case "time_in_past":
		httperr.BadRequest(c, "time_in_past", "El horario ya pasó.")
	case "service_not_found":
		httperr.BadRequest(c, "service_not_found", "Servicio no encontrado.")
	case "time_conflict":
		httperr.Conflict(c, "time_conflict", "Ese horario ya está reservado.")
	case "":
		httperr.Internal(c, "failed_to_create_appointment", "No se pudo crear la cita.")
	default:
		httperr.BadRequest(c, httperr.BusinessCode(err), "Operación rechazada.")
	}
}
