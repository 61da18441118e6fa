package queue

import (
	"context"
	"time"

	domain "github.com/corteexpress/barberia-api/internal/domain/queue"
	"github.com/corteexpress/barberia-api/internal/dto"
	"github.com/corteexpress/barberia-api/internal/timezone"
)

type ViewToday struct {
	repo domain.Repository
}

func NewViewToday(repo domain.Repository) *ViewToday {
	return &ViewToday{repo: repo}
}

// Execute trae las citas del día completas (sin diffing incremental) y las
// particiona en cola, silla, finalizadas y rechazadas.
func (uc *ViewToday) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date time.Time,
) (*dto.QueueViewDTO, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	start, end := timezone.DayRange(date.In(loc))

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	view := domain.Partition(appointments, timezone.NowIn(shop.Timezone))

	out := &dto.QueueViewDTO{
		Cola:        make([]dto.QueueAppointmentDTO, 0, len(view.Queue)),
		Finalizadas: make([]dto.QueueAppointmentDTO, 0, len(view.Finalized)),
		Rechazadas:  make([]dto.QueueAppointmentDTO, 0, len(view.Rejected)),
	}

	for _, ap := range view.Queue {
		out.Cola = append(out.Cola, dto.NewQueueAppointmentDTO(ap))
	}
	if view.InService != nil {
		d := dto.NewQueueAppointmentDTO(*view.InService)
		out.EnSilla = &d
	}
	for _, ap := range view.Finalized {
		out.Finalizadas = append(out.Finalizadas, dto.NewQueueAppointmentDTO(ap))
	}
	for _, ap := range view.Rejected {
		out.Rechazadas = append(out.Rechazadas, dto.NewQueueAppointmentDTO(ap))
	}

	return out, nil
}
