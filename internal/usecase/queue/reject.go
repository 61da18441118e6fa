package queue

import (
	"context"

	"github.com/corteexpress/barberia-api/internal/audit"
	domain "github.com/corteexpress/barberia-api/internal/domain/queue"
	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/models"
	"github.com/corteexpress/barberia-api/internal/timezone"
)

type Reject struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewReject(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *Reject {
	return &Reject{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// Execute rechaza la cita con motivo y la saca de la cola para siempre.
// Política uniforme: el estado solo se da por cambiado cuando el repositorio
// confirma; el cliente re-consulta y la partición ya la muestra en
// rechazadas (cabeza de lista, tope 5).
func (uc *Reject) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
	reason string,
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
	if err := domain.Reject(ap, reason, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_rejected",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata:     map[string]any{"reason": reason},
	})
	uc.notifier.AppointmentChanged(ctx, barberID, ap.ID, "rejected")

	return ap, nil
}
