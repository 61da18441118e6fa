package queue

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corteexpress/barberia-api/internal/models"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestPartitionIsExclusive(t *testing.T) {
	now := at(10, 0)
	done := at(9, 30)

	appointments := []models.Appointment{
		{ID: 1, Status: string(StatusWaiting), QueuePosition: 1, StartTime: at(9, 0)},
		{ID: 2, Status: string(StatusInProgress), StartTime: at(9, 30)},
		{ID: 3, Status: string(StatusScheduled), StartTime: at(11, 0)},
		{ID: 4, Status: string(StatusCompleted), FinalOutcome: OutcomeCompleted, FinalOutcomeAt: &done},
		{ID: 5, Status: string(StatusCancelled), FinalOutcome: OutcomeRejected, FinalOutcomeAt: &done},
	}

	v := Partition(appointments, now)

	seen := map[uint]int{}
	for _, ap := range v.Queue {
		seen[ap.ID]++
	}
	if v.InService != nil {
		seen[v.InService.ID]++
	}
	for _, ap := range v.Finalized {
		seen[ap.ID]++
	}
	for _, ap := range v.Rejected {
		seen[ap.ID]++
	}

	for id, n := range seen {
		assert.Equal(t, 1, n, "cita %d aparece %d veces", id, n)
	}
	assert.Len(t, seen, 5)

	require.NotNil(t, v.InService)
	assert.Equal(t, uint(2), v.InService.ID)
}

func TestPartitionQueueOrdering(t *testing.T) {
	now := at(8, 0)

	appointments := []models.Appointment{
		{ID: 1, Status: string(StatusScheduled), StartTime: at(10, 0)},
		{ID: 2, Status: string(StatusWaiting), QueuePosition: 2, StartTime: at(9, 0)},
		{ID: 3, Status: string(StatusConfirmed), StartTime: at(9, 30)},
		{ID: 4, Status: string(StatusWaiting), QueuePosition: 1, StartTime: at(9, 45)},
		{ID: 5, Status: string(StatusScheduled), StartTime: at(9, 0)},
	}

	v := Partition(appointments, now)

	got := make([]uint, 0, len(v.Queue))
	for _, ap := range v.Queue {
		got = append(got, ap.ID)
	}

	// waiting por posición, luego confirmadas, luego agendadas por hora.
	assert.Equal(t, []uint{4, 2, 3, 5, 1}, got)
}

func TestPartitionDropsPastScheduledButKeepsWaiting(t *testing.T) {
	now := at(12, 0)

	appointments := []models.Appointment{
		{ID: 1, Status: string(StatusScheduled), StartTime: at(10, 0)},
		{ID: 2, Status: string(StatusWaiting), QueuePosition: 1, StartTime: at(9, 0)},
		{ID: 3, Status: string(StatusConfirmed), StartTime: at(11, 0)},
	}

	v := Partition(appointments, now)

	got := make([]uint, 0, len(v.Queue))
	for _, ap := range v.Queue {
		got = append(got, ap.ID)
	}

	// La agendada y la confirmada ya pasaron; el walk-in en espera sigue.
	assert.Equal(t, []uint{2}, got)
}

func TestPartitionSingleChair(t *testing.T) {
	now := at(10, 0)

	appointments := []models.Appointment{
		{ID: 1, Status: string(StatusInChair), StartTime: at(9, 0)},
		{ID: 2, Status: string(StatusInProgress), StartTime: at(9, 30)},
	}

	v := Partition(appointments, now)

	// Estado anómalo (dos activas): la vista muestra una sola silla.
	require.NotNil(t, v.InService)
	assert.Equal(t, uint(1), v.InService.ID)
	assert.Empty(t, v.Queue)
}

func TestPartitionOutcomeListsCappedAndSorted(t *testing.T) {
	now := at(18, 0)

	var appointments []models.Appointment
	for i := 1; i <= 7; i++ {
		doneAt := at(9+i, 0)
		appointments = append(appointments, models.Appointment{
			ID:             uint(i),
			Status:         string(StatusCompleted),
			FinalOutcome:   OutcomeCompleted,
			FinalOutcomeAt: &doneAt,
		})
	}

	rejectedAt := at(12, 30)
	appointments = append(appointments, models.Appointment{
		ID:             100,
		Status:         string(StatusCancelled),
		FinalOutcome:   OutcomeRejected,
		FinalOutcomeAt: &rejectedAt,
	})

	v := Partition(appointments, now)

	require.Len(t, v.Finalized, DisplayCap)
	// Más recientes primero: la 7 (16:00) encabeza, la 1 y la 2 salen.
	assert.Equal(t, uint(7), v.Finalized[0].ID)
	assert.Equal(t, uint(3), v.Finalized[DisplayCap-1].ID)
	for i := 1; i < len(v.Finalized); i++ {
		prev := *v.Finalized[i-1].FinalOutcomeAt
		cur := *v.Finalized[i].FinalOutcomeAt
		assert.False(t, cur.After(prev), fmt.Sprintf("posición %d fuera de orden", i))
	}

	require.Len(t, v.Rejected, 1)
	assert.Equal(t, uint(100), v.Rejected[0].ID)
}
