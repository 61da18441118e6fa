package queue

import (
	"context"

	"github.com/corteexpress/barberia-api/internal/audit"
	domain "github.com/corteexpress/barberia-api/internal/domain/queue"
	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/models"
	"github.com/corteexpress/barberia-api/internal/timezone"
)

type AcceptAndServe struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewAcceptAndServe(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *AcceptAndServe {
	return &AcceptAndServe{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// Execute lleva la cita a la silla. El guard de silla única corre dos veces:
// un chequeo rápido antes de mutar nada y el update condicional del
// repositorio que decide de verdad bajo transacción.
func (uc *AcceptAndServe) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	busy, err := uc.repo.HasActiveService(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, httperr.ErrBusiness("barber_busy")
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Accept(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveClaimingChair(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_accepted",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})
	uc.notifier.AppointmentChanged(ctx, barberID, ap.ID, "accepted")

	return ap, nil
}
