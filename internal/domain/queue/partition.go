package queue

import (
	"sort"
	"time"

	"github.com/corteexpress/barberia-api/internal/models"
)

// DisplayCap limita las listas de finalizadas y rechazadas del día.
const DisplayCap = 5

// View son las cuatro particiones disjuntas de las citas de hoy.
type View struct {
	Queue     []models.Appointment
	InService *models.Appointment
	Finalized []models.Appointment
	Rejected  []models.Appointment
}

// Partition proyecta la lista completa del día. Es una función pura: no toca
// el repositorio y puede recalcularse en cada refresco.
func Partition(appointments []models.Appointment, now time.Time) View {
	var v View

	for i := range appointments {
		ap := appointments[i]

		switch ap.FinalOutcome {
		case OutcomeCompleted:
			v.Finalized = append(v.Finalized, ap)
			continue
		case OutcomeRejected:
			v.Rejected = append(v.Rejected, ap)
			continue
		}

		s := Status(ap.Status)

		if active(s) {
			if v.InService == nil {
				v.InService = &appointments[i]
			}
			continue
		}

		if !queueable(s) {
			continue
		}

		// Una cita agendada cuyo horario ya pasó sale de la cola; los
		// walk-in en espera se quedan aunque su hora quede atrás.
		if s != StatusWaiting && ap.StartTime.Before(now) {
			continue
		}

		v.Queue = append(v.Queue, ap)
	}

	sort.SliceStable(v.Queue, func(i, j int) bool {
		a, b := v.Queue[i], v.Queue[j]

		pa, pb := Priority(Status(a.Status)), Priority(Status(b.Status))
		if pa != pb {
			return pa < pb
		}

		if Status(a.Status) == StatusWaiting && Status(b.Status) == StatusWaiting {
			return a.QueuePosition < b.QueuePosition
		}

		return a.StartTime.Before(b.StartTime)
	})

	sortByOutcomeDesc(v.Finalized)
	sortByOutcomeDesc(v.Rejected)

	if len(v.Finalized) > DisplayCap {
		v.Finalized = v.Finalized[:DisplayCap]
	}
	if len(v.Rejected) > DisplayCap {
		v.Rejected = v.Rejected[:DisplayCap]
	}

	return v
}

func sortByOutcomeDesc(aps []models.Appointment) {
	sort.SliceStable(aps, func(i, j int) bool {
		ti, tj := outcomeTime(aps[i]), outcomeTime(aps[j])
		return ti.After(tj)
	})
}

func outcomeTime(ap models.Appointment) time.Time {
	if ap.FinalOutcomeAt != nil {
		return *ap.FinalOutcomeAt
	}
	return ap.UpdatedAt
}
