package handlers

import (
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/httpresp"
	"github.com/corteexpress/barberia-api/internal/infra/realtime"
	"github.com/corteexpress/barberia-api/internal/middleware"
	"github.com/corteexpress/barberia-api/internal/timezone"
	ucQueue "github.com/corteexpress/barberia-api/internal/usecase/queue"
)

// ======================================================
// HANDLER
// ======================================================

// QueueHandler expone el panel de cola del barbero: vista particionada del
// día, stream de cambios y las transiciones de ciclo de vida.
type QueueHandler struct {
	view     *ucQueue.ViewToday
	enqueue  *ucQueue.Enqueue
	accept   *ucQueue.AcceptAndServe
	start    *ucQueue.StartService
	reject   *ucQueue.Reject
	finalize *ucQueue.Finalize
	notifier *realtime.Notifier
}

func NewQueueHandler(
	view *ucQueue.ViewToday,
	enqueue *ucQueue.Enqueue,
	accept *ucQueue.AcceptAndServe,
	start *ucQueue.StartService,
	reject *ucQueue.Reject,
	finalize *ucQueue.Finalize,
	notifier *realtime.Notifier,
) *QueueHandler {
	return &QueueHandler{
		view:     view,
		enqueue:  enqueue,
		accept:   accept,
		start:    start,
		reject:   reject,
		finalize: finalize,
		notifier: notifier,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CancelAppointmentRequest struct {
	Motivo string `json:"motivo" binding:"required"`
}

type FinalizeItemRequest struct {
	ID       uint `json:"id" binding:"required"`
	Cantidad int  `json:"cantidad" binding:"required,min=1"`
}

type FinalizeSaleRequest struct {
	MetodoPago     string                `json:"metodoPago" binding:"required"`
	Notas          string                `json:"notas"`
	ServiciosExtra []FinalizeItemRequest `json:"serviciosExtra"`
	Productos      []FinalizeItemRequest `json:"productos"`
}

// ======================================================
// GET /api/barbero/citas?date=YYYY-MM-DD
// ======================================================

func (h *QueueHandler) ListToday(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	date := timezone.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
			return
		}
		date = parsed
	}

	view, err := h.view.Execute(c.Request.Context(), barbershopID, barberID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_queue", "No se pudo cargar la cola.")
		return
	}

	httpresp.OK(c, gin.H{"citas": view})
}

// ======================================================
// GET /api/barbero/citas/stream (SSE)
// ======================================================

func (h *QueueHandler) Stream(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	// Sin broker configurado el stream queda en solo-heartbeat y el panel
	// depende del poll periódico.
	var events <-chan realtime.Event
	if h.notifier != nil {
		ch, cancel := h.notifier.Subscribe(c.Request.Context(), barberID)
		defer cancel()
		events = ch
	}

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// Heartbeat para que los proxies no corten la conexión.
	ticker := time.NewTicker(25 * time.Second)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("cambio", ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// ======================================================
// POST /api/barbero/citas/:id/cola
// ======================================================

func (h *QueueHandler) Enqueue(c *gin.Context) {
	barberID, barbershopID, id, ok := h.ids(c)
	if !ok {
		return
	}

	ap, err := h.enqueue.Execute(c.Request.Context(), barbershopID, barberID, id)
	if err != nil {
		writeQueueError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"cita": ap})
}

// ======================================================
// POST /api/barbero/citas/:id/atender
// ======================================================

func (h *QueueHandler) Accept(c *gin.Context) {
	barberID, barbershopID, id, ok := h.ids(c)
	if !ok {
		return
	}

	ap, err := h.accept.Execute(c.Request.Context(), barbershopID, barberID, id)
	if err != nil {
		writeQueueError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"cita": ap})
}

// ======================================================
// POST /api/barbero/citas/:id/servir
// ======================================================

func (h *QueueHandler) StartService(c *gin.Context) {
	barberID, barbershopID, id, ok := h.ids(c)
	if !ok {
		return
	}

	ap, err := h.start.Execute(c.Request.Context(), barbershopID, barberID, id)
	if err != nil {
		writeQueueError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"cita": ap})
}

// ======================================================
// POST /api/barbero/citas/:id/cancelar
// ======================================================

func (h *QueueHandler) Reject(c *gin.Context) {
	barberID, barbershopID, id, ok := h.ids(c)
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "El motivo es obligatorio.")
		return
	}

	ap, err := h.reject.Execute(c.Request.Context(), barbershopID, barberID, id, req.Motivo)
	if err != nil {
		writeQueueError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"cita": ap})
}

// ======================================================
// POST /api/barbero/citas/:id/finalizar
// ======================================================

func (h *QueueHandler) Finalize(c *gin.Context) {
	barberID, barbershopID, id, ok := h.ids(c)
	if !ok {
		return
	}

	var req FinalizeSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos de venta inválidos.")
		return
	}

	in := ucQueue.FinalizeInput{
		MetodoPago: req.MetodoPago,
		Notas:      req.Notas,
	}
	for _, s := range req.ServiciosExtra {
		in.ServiciosExtra = append(in.ServiciosExtra, ucQueue.FinalizeItemInput{
			ID:       s.ID,
			Cantidad: s.Cantidad,
		})
	}
	for _, p := range req.Productos {
		in.Productos = append(in.Productos, ucQueue.FinalizeItemInput{
			ID:       p.ID,
			Cantidad: p.Cantidad,
		})
	}

	out, err := h.finalize.Execute(c.Request.Context(), barbershopID, barberID, id, in)
	if err != nil {
		writeQueueError(c, err)
		return
	}

	payload := gin.H{"venta": out.Sale}
	if out.Warning != "" {
		payload["message"] = out.Warning
	}
	httpresp.OK(c, payload)
}

// ======================================================
// HELPERS
// ======================================================

func (h *QueueHandler) ids(c *gin.Context) (barberID, barbershopID, appointmentID uint, ok bool) {
	barberID = c.MustGet(middleware.ContextUserID).(uint)
	barbershopID = c.MustGet(middleware.ContextBarbershopID).(uint)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Cita inválida.")
		return 0, 0, 0, false
	}

	return barberID, barbershopID, uint(id64), true
}

// writeQueueError traduce los códigos de negocio del ciclo de vida a HTTP.
func writeQueueError(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case "barber_busy":
		httperr.Conflict(c, "barber_busy", "Ya hay un cliente en la silla.")
	case "invalid_state":
		httperr.BadRequest(c, "invalid_state", "La cita no admite esta operación.")
	case "appointment_not_found":
		httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
	case "service_not_found":
		httperr.BadRequest(c, "service_not_found", "Servicio no encontrado.")
	case "product_not_found":
		httperr.BadRequest(c, "product_not_found", "Producto no encontrado.")
	case "insufficient_stock":
		httperr.BadRequest(c, "insufficient_stock", "Stock insuficiente.")
	case "invalid_payment_method":
		httperr.BadRequest(c, "invalid_payment_method", "Método de pago inválido.")
	case "invalid_quantity":
		httperr.BadRequest(c, "invalid_quantity", "Cantidad inválida.")
	case "bonus_not_available":
		httperr.BadRequest(c, "bonus_not_available", "El cliente no tiene cortes gratis disponibles.")
	case "":
		httperr.Internal(c, "internal_error", "Error interno.")
	default:
		httperr.BadRequest(c, httperr.BusinessCode(err), "Operación rechazada.")
	}
}
