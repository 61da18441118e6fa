package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corteexpress/barberia-api/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReservedSlots(t *testing.T) {
	appointments := []models.Appointment{
		{StartTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
		{StartTime: time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)},
	}

	reserved := ReservedSlots(appointments, time.UTC)

	assert.Equal(t, map[string]bool{"09:00": true, "10:30": true}, reserved)
}

func TestReservedSlotsProjectToShopTimezone(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	// El driver entrega el timestamp en UTC: las 14:00 UTC son las 09:00
	// en Bogotá y ese es el bloque que debe quedar reservado.
	appointments := []models.Appointment{
		{StartTime: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)},
	}

	reserved := ReservedSlots(appointments, bogota)
	assert.Equal(t, map[string]bool{"09:00": true}, reserved)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, bogota)
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, bogota)

	slots := AvailableSlots("09:00", "10:00", date, reserved, now)
	assert.NotContains(t, slots, "09:00")
	assert.Equal(t, []string{"09:30"}, slots)
}

func TestAvailableSlotsFutureDate(t *testing.T) {
	date := day(2026, 3, 20)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	reserved := map[string]bool{"09:00": true, "09:30": true}

	slots := AvailableSlots("09:00", "11:00", date, reserved, now)

	assert.Equal(t, []string{"10:00", "10:30"}, slots)
}

func TestAvailableSlotsSameDayDropsElapsed(t *testing.T) {
	date := day(2026, 3, 10)
	now := time.Date(2026, 3, 10, 10, 10, 0, 0, time.UTC)

	slots := AvailableSlots("09:00", "11:00", date, map[string]bool{}, now)

	// 09:00, 09:30 y 10:00 ya pasaron.
	assert.Equal(t, []string{"10:30"}, slots)
}

func TestAvailableSlotsSlotExactlyNowIsGone(t *testing.T) {
	date := day(2026, 3, 10)
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	slots := AvailableSlots("09:00", "11:00", date, map[string]bool{}, now)

	assert.Equal(t, []string{"10:30"}, slots)
}

func TestAvailableSlotsInvalidWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	assert.Empty(t, AvailableSlots("20:00", "08:00", day(2026, 3, 11), map[string]bool{}, now))
	assert.Empty(t, AvailableSlots("mediodía", "13:00", day(2026, 3, 11), map[string]bool{}, now))
}

func TestAvailableSlotsFullDayBooked(t *testing.T) {
	reserved := map[string]bool{"09:00": true, "09:30": true, "10:00": true, "10:30": true}
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	slots := AvailableSlots("09:00", "11:00", day(2026, 3, 11), reserved, now)

	assert.Empty(t, slots)
}
