package queue

import (
	"context"
	"time"

	"github.com/corteexpress/barberia-api/internal/models"
)

type Repository interface {
	// -------- Barbershop / Barber --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarberByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Appointment lookup --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	ListAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Queue state --------
	HasActiveService(
		ctx context.Context,
		barberID uint,
	) (bool, error)

	NextQueuePosition(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) (int, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// SaveClaimingChair persiste una transición hacia la silla fallando con
	// barber_busy si otra cita del barbero ya la ocupa. El chequeo corre
	// dentro de la transacción para que dos clientes no ganen a la vez.
	SaveClaimingChair(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Sale --------
	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	GetProduct(
		ctx context.Context,
		barbershopID uint,
		productID uint,
	) (*models.Product, error)

	GetClientByID(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	// CreateSaleAndComplete confirma la venta y el cierre de la cita en una
	// sola transacción: re-chequea y descuenta stock, consume el crédito de
	// bono cuando aplica y guarda venta + items + cita.
	CreateSaleAndComplete(
		ctx context.Context,
		ap *models.Appointment,
		sale *models.Sale,
		stock map[uint]int,
		consumeBonusCredit bool,
	) error

	// SetSaleProviderPayment anota la referencia del pago externo sobre una
	// venta ya confirmada.
	SetSaleProviderPayment(
		ctx context.Context,
		saleID uint,
		providerPaymentID string,
	) error
}
