package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	bookingDomain "github.com/corteexpress/barberia-api/internal/domain/booking"
	queueDomain "github.com/corteexpress/barberia-api/internal/domain/queue"
	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/models"
)

// AppointmentGormRepository implementa los repositorios de cola y de agenda
// sobre la misma conexión GORM.
type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop / Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetBarberByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetProduct(
	ctx context.Context,
	barbershopID uint,
	productID uint,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", productID, barbershopID).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClientByID(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment lookup
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID, start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListActiveAppointmentsForDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"barber_id = ? AND final_outcome = '' AND status NOT IN ('cancelled', 'no_show') AND start_time >= ? AND start_time < ?",
			barberID, start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Queue state
// --------------------------------------------------

func (r *AppointmentGormRepository) HasActiveService(
	ctx context.Context,
	barberID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND status IN ('in_chair', 'in_progress')",
			barberID,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *AppointmentGormRepository) NextQueuePosition(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) (int, error) {

	var max int
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("COALESCE(MAX(queue_position), 0)").
		Where(
			"barber_id = ? AND status = 'waiting' AND start_time >= ? AND start_time < ?",
			barberID, start, end,
		).
		Scan(&max).Error; err != nil {
		return 0, err
	}

	return max + 1, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// SaveClaimingChair toma la silla dentro de una transacción: bloquea las
// citas activas del barbero y aborta con barber_busy si otra ya la ocupa.
// Así dos pestañas aceptando casi a la vez no ganan las dos.
func (r *AppointmentGormRepository) SaveClaimingChair(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var busy []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND status IN ('in_chair', 'in_progress') AND id <> ?",
				ap.BarberID, ap.ID,
			).
			Find(&busy).Error; err != nil {
			return err
		}

		if len(busy) > 0 {
			return httperr.ErrBusiness("barber_busy")
		}

		return tx.Save(ap).Error
	})
}

// --------------------------------------------------
// Sale
// --------------------------------------------------

// CreateSaleAndComplete confirma venta y cita en una sola transacción:
// descuenta stock con re-chequeo, consume el crédito del bono cuando aplica
// y persiste venta, items y cita. Cualquier fallo revierte todo: no hay
// ventas parciales.
func (r *AppointmentGormRepository) CreateSaleAndComplete(
	ctx context.Context,
	ap *models.Appointment,
	sale *models.Sale,
	stock map[uint]int,
	consumeBonusCredit bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		for productID, qty := range stock {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", productID, qty).
				Update("stock", gorm.Expr("stock - ?", qty))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return httperr.ErrBusiness("insufficient_stock")
			}
		}

		if consumeBonusCredit {
			res := tx.Model(&models.Client{}).
				Where("id = ? AND free_cut_credits > 0", ap.ClientID).
				Update("free_cut_credits", gorm.Expr("free_cut_credits - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return httperr.ErrBusiness("bonus_not_available")
			}
		}

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		return tx.Save(ap).Error
	})
}

func (r *AppointmentGormRepository) SetSaleProviderPayment(
	ctx context.Context,
	saleID uint,
	providerPaymentID string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ?", saleID).
		Update("provider_payment_id", providerPaymentID).Error
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND final_outcome = '' AND status NOT IN ('cancelled', 'no_show') AND start_time < ? AND end_time > ?",
			barberID,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

// Compile-time checks
var _ queueDomain.Repository = (*AppointmentGormRepository)(nil)
var _ bookingDomain.Repository = (*AppointmentGormRepository)(nil)
