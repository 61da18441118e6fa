package booking

import (
	"time"

	"github.com/corteexpress/barberia-api/internal/models"
)

// SlotMinutes es el tamaño fijo de los bloques de agenda.
const SlotMinutes = 30

// ReservedSlots extrae las horas de inicio ya ocupadas por citas activas.
// Las horas se proyectan a la zona de la barbería: el driver puede devolver
// los timestamps en UTC y la grilla se arma en hora local.
func ReservedSlots(appointments []models.Appointment, loc *time.Location) map[string]bool {
	reserved := make(map[string]bool, len(appointments))
	for _, ap := range appointments {
		reserved[ap.StartTime.In(loc).Format("15:04")] = true
	}
	return reserved
}

// AvailableSlots lista los bloques de media hora entre apertura y cierre,
// quitando los reservados y, cuando la fecha es hoy, los bloques cuya hora ya
// pasó (o es exactamente ahora).
func AvailableSlots(
	opening string,
	closing string,
	date time.Time,
	reserved map[string]bool,
	now time.Time,
) []string {

	loc := date.Location()

	parseHM := func(hm string) time.Time {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	open := parseHM(opening)
	close := parseHM(closing)
	if open.IsZero() || close.IsZero() || !open.Before(close) {
		return []string{}
	}

	sameDay := date.Year() == now.Year() && date.YearDay() == now.YearDay()

	slots := []string{}
	for cur := open; cur.Before(close); cur = cur.Add(SlotMinutes * time.Minute) {
		hm := cur.Format("15:04")

		if reserved[hm] {
			continue
		}
		if sameDay && !cur.After(now) {
			continue
		}

		slots = append(slots, hm)
	}

	return slots
}
