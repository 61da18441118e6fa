package booking

import (
	"context"
	"sort"
	"time"

	domain "github.com/corteexpress/barberia-api/internal/domain/booking"
	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/timezone"
)

type Availability struct {
	repo domain.Repository
}

func NewAvailability(repo domain.Repository) *Availability {
	return &Availability{repo: repo}
}

type AvailabilityResult struct {
	Reservadas  []string `json:"reservadas"`
	Disponibles []string `json:"disponibles"`
}

// Execute calcula los bloques libres del barbero para una fecha: ventana
// fija de la barbería menos reservados menos, si es hoy, lo ya pasado.
func (uc *Availability) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	dateStr string,
) (*AvailabilityResult, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start, end := timezone.DayRange(date)

	appointments, err := uc.repo.ListActiveAppointmentsForDay(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	reserved := domain.ReservedSlots(appointments, loc)

	slots := domain.AvailableSlots(
		shop.OpeningTime,
		shop.ClosingTime,
		date,
		reserved,
		timezone.NowIn(shop.Timezone),
	)

	reservadas := make([]string, 0, len(reserved))
	for hm := range reserved {
		reservadas = append(reservadas, hm)
	}
	sort.Strings(reservadas)

	return &AvailabilityResult{
		Reservadas:  reservadas,
		Disponibles: slots,
	}, nil
}
