package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corteexpress/barberia-api/internal/audit"
	domain "github.com/corteexpress/barberia-api/internal/domain/booking"
	queueDomain "github.com/corteexpress/barberia-api/internal/domain/queue"
	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/models"
	"github.com/corteexpress/barberia-api/internal/timezone"
)

// ── Stub ──────────────────────────────────────────────────────────────────────

type stubRepo struct {
	shop     *models.Barbershop
	services map[uint]*models.Service
	day      []models.Appointment

	conflictErr error
	created     []*models.Appointment
	clientSeq   uint
	clients     map[string]*models.Client
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		shop: &models.Barbershop{
			ID:          1,
			Name:        "La Cuadra",
			Timezone:    "America/Bogota",
			OpeningTime: "08:00",
			ClosingTime: "20:00",
		},
		services: make(map[uint]*models.Service),
		clients:  make(map[string]*models.Client),
	}
}

var _ domain.Repository = (*stubRepo)(nil)

func (r *stubRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if r.shop == nil || r.shop.ID != id {
		return nil, errors.New("not found")
	}
	return r.shop, nil
}

func (r *stubRepo) GetService(_ context.Context, _, serviceID uint) (*models.Service, error) {
	svc, ok := r.services[serviceID]
	if !ok {
		return nil, errors.New("not found")
	}
	return svc, nil
}

func (r *stubRepo) GetOrCreateClient(_ context.Context, _ uint, name, phone, email string) (*models.Client, error) {
	if c, ok := r.clients[phone]; ok {
		return c, nil
	}
	r.clientSeq++
	c := &models.Client{ID: r.clientSeq, Name: name, Phone: phone, Email: email}
	r.clients[phone] = c
	return c, nil
}

func (r *stubRepo) ListActiveAppointmentsForDay(context.Context, uint, time.Time, time.Time) ([]models.Appointment, error) {
	return r.day, nil
}

func (r *stubRepo) AssertNoTimeConflict(context.Context, uint, time.Time, time.Time) error {
	return r.conflictErr
}

func (r *stubRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = uint(len(r.created) + 1)
	r.created = append(r.created, ap)
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func validInput(repo *stubRepo) CreateAppointmentInput {
	repo.services[1] = &models.Service{
		ID:          1,
		Name:        "Corte clásico",
		Price:       decimal.NewFromInt(25000),
		DurationMin: 30,
		Active:      true,
	}

	// Mañana a las 10:00 en la zona de la barbería, siempre en el futuro.
	tomorrow := timezone.NowIn(repo.shop.Timezone).AddDate(0, 0, 1)

	return CreateAppointmentInput{
		BarbershopID: 1,
		BarberID:     7,
		ClientName:   "Julián",
		ClientPhone:  "3001234567",
		ServiceID:    1,
		Date:         tomorrow.Format("2006-01-02"),
		Time:         "10:00",
	}
}

// ── CreateAppointment ─────────────────────────────────────────────────────────

func TestCreateAppointment(t *testing.T) {
	repo := newStubRepo()
	in := validInput(repo)

	uc := NewCreateAppointment(repo, audit.Discard())
	ap, err := uc.Execute(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, string(queueDomain.StatusScheduled), ap.Status)
	assert.Equal(t, in.BarberID, ap.BarberID)
	assert.Equal(t, 30*time.Minute, ap.EndTime.Sub(ap.StartTime))
	assert.NotNil(t, ap.StageHistory)
	assert.Empty(t, ap.StageHistory)
	require.Len(t, repo.created, 1)

	// El cliente quedó registrado por teléfono.
	c, ok := repo.clients["3001234567"]
	require.True(t, ok)
	assert.Equal(t, c.ID, ap.ClientID)
}

func TestCreateAppointmentReusesClientByPhone(t *testing.T) {
	repo := newStubRepo()
	in := validInput(repo)

	uc := NewCreateAppointment(repo, audit.Discard())

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	in.Time = "11:00"
	in.ClientName = "Julian D."
	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.ClientID, second.ClientID)
}

func TestCreateAppointmentRejectsPastTime(t *testing.T) {
	repo := newStubRepo()
	in := validInput(repo)

	yesterday := timezone.NowIn(repo.shop.Timezone).AddDate(0, 0, -1)
	in.Date = yesterday.Format("2006-01-02")

	uc := NewCreateAppointment(repo, audit.Discard())
	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, "time_in_past"))
	assert.Empty(t, repo.created)
}

func TestCreateAppointmentValidatesPhone(t *testing.T) {
	repo := newStubRepo()
	in := validInput(repo)
	in.ClientPhone = "abc"

	uc := NewCreateAppointment(repo, audit.Discard())
	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, "invalid_phone"))
}

func TestCreateAppointmentMissingFields(t *testing.T) {
	repo := newStubRepo()
	in := validInput(repo)
	in.ClientName = "   "

	uc := NewCreateAppointment(repo, audit.Discard())
	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, "missing_fields"))
}

func TestCreateAppointmentInactiveService(t *testing.T) {
	repo := newStubRepo()
	in := validInput(repo)
	repo.services[1].Active = false

	uc := NewCreateAppointment(repo, audit.Discard())
	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateAppointmentTimeConflict(t *testing.T) {
	repo := newStubRepo()
	in := validInput(repo)
	repo.conflictErr = httperr.ErrBusiness("time_conflict")

	uc := NewCreateAppointment(repo, audit.Discard())
	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.Empty(t, repo.created)
}

// ── Availability ──────────────────────────────────────────────────────────────

func TestAvailability(t *testing.T) {
	repo := newStubRepo()
	repo.shop.OpeningTime = "09:00"
	repo.shop.ClosingTime = "11:00"

	loc := timezone.Location(repo.shop.Timezone)
	tomorrow := timezone.NowIn(repo.shop.Timezone).AddDate(0, 0, 1)

	// El repositorio devuelve el timestamp en UTC, como lo entrega el
	// driver; la reserva igual debe caer en el bloque local de las 09:30.
	booked := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 9, 30, 0, 0, loc)
	repo.day = []models.Appointment{
		{StartTime: booked.UTC()},
	}

	uc := NewAvailability(repo)
	res, err := uc.Execute(context.Background(), 1, 7, tomorrow.Format("2006-01-02"))

	require.NoError(t, err)
	assert.Equal(t, []string{"09:30"}, res.Reservadas)
	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, res.Disponibles)
}

func TestAvailabilityInvalidDate(t *testing.T) {
	repo := newStubRepo()

	uc := NewAvailability(repo)
	_, err := uc.Execute(context.Background(), 1, 7, "10-03-2026")

	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}
