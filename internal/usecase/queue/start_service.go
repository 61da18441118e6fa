package queue

import (
	"context"

	"github.com/corteexpress/barberia-api/internal/audit"
	domain "github.com/corteexpress/barberia-api/internal/domain/queue"
	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/models"
	"github.com/corteexpress/barberia-api/internal/timezone"
)

type StartService struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewStartService(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *StartService {
	return &StartService{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// Execute arranca el servicio de una cita en espera. El guard es solo "nadie
// más en la silla": no exige respetar el orden de la cola, el barbero puede
// atender explícitamente a quien decida.
func (uc *StartService) Execute(
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

	// Si la cita ya está en la silla, continuar a serving no requiere el
	// chequeo de ocupación.
	if domain.Status(ap.Status) != domain.StatusInChair {
		busy, err := uc.repo.HasActiveService(ctx, barberID)
		if err != nil {
			return nil, err
		}
		if busy {
			return nil, httperr.ErrBusiness("barber_busy")
		}
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.StartService(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveClaimingChair(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "service_started",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})
	uc.notifier.AppointmentChanged(ctx, barberID, ap.ID, "serving")

	return ap, nil
}
