package booking

import (
	"context"
	"time"

	"github.com/corteexpress/barberia-api/internal/models"
)

type Repository interface {
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// ListActiveAppointmentsForDay trae las citas que reservan agenda (sin
	// desenlace final) del barbero en el rango dado.
	ListActiveAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	AssertNoTimeConflict(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) error

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
