package booking

import (
	"context"
	"strings"
	"time"

	"github.com/corteexpress/barberia-api/internal/audit"
	domain "github.com/corteexpress/barberia-api/internal/domain/booking"
	queueDomain "github.com/corteexpress/barberia-api/internal/domain/queue"
	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/models"
	"github.com/corteexpress/barberia-api/internal/timezone"
	"github.com/corteexpress/barberia-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string

	// Marca el bono de fidelidad en esta cita; el descuento solo aplica si
	// al finalizar el cliente aún tiene créditos.
	UsarBono bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Campos obligatorios
	// --------------------------------------------------
	if strings.TrimSpace(in.ClientName) == "" ||
		strings.TrimSpace(in.ClientPhone) == "" ||
		in.ServiceID == 0 || in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	if !validators.IsPhoneValid(in.ClientPhone) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Fecha/hora en la zona de la barbería
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// Se re-valida justo antes de crear: el formulario pudo quedar abierto
	// y la hora elegida ya pasó.
	now := timezone.NowIn(shop.Timezone)
	if !start.After(now) {
		return nil, httperr.ErrBusiness("time_in_past")
	}

	// --------------------------------------------------
	// Servicio
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// --------------------------------------------------
	// Cliente (get or create por teléfono)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Conflicto contra las horas reservadas
	// --------------------------------------------------
	if err := uc.repo.AssertNoTimeConflict(
		ctx,
		in.BarberID,
		start,
		end,
	); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		ClientID:     client.ID,
		ServiceID:    service.ID,
		StartTime:    start,
		EndTime:      end,
		Status:       string(queueDomain.StatusScheduled),
		LoyaltyBonus: in.UsarBono,
		Notes:        in.Notes,
		StageHistory: models.StageHistory{},
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
