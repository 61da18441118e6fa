package queue

import (
	"context"

	"github.com/corteexpress/barberia-api/internal/audit"
	domain "github.com/corteexpress/barberia-api/internal/domain/queue"
	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/models"
	"github.com/corteexpress/barberia-api/internal/timezone"
)

type Enqueue struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewEnqueue(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *Enqueue {
	return &Enqueue{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// Execute pasa una cita agendada a la cola de espera del día, asignándole la
// siguiente posición.
func (uc *Enqueue) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	start, end := timezone.DayRange(now)

	position, err := uc.repo.NextQueuePosition(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	if err := domain.Enqueue(ap, position, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_queued",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata:     map[string]any{"position": position},
	})
	uc.notifier.AppointmentChanged(ctx, barberID, ap.ID, "queued")

	return ap, nil
}
