package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/models"
)

func newScheduled() *models.Appointment {
	return &models.Appointment{
		ID:           1,
		Status:       string(StatusScheduled),
		StageHistory: models.StageHistory{},
	}
}

func TestEnqueue(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	ap := newScheduled()
	require.NoError(t, Enqueue(ap, 3, now))

	assert.Equal(t, string(StatusWaiting), ap.Status)
	assert.Equal(t, 3, ap.QueuePosition)
	assert.Equal(t, string(StageQueued), ap.QueueStage)
	require.Len(t, ap.StageHistory, 1)
	assert.Equal(t, string(StageQueued), ap.StageHistory[0].Stage)

	// Re-encolar una cita ya en espera es invalid_state.
	err := Enqueue(ap, 4, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, 3, ap.QueuePosition)
}

func TestStartServiceFromWaitingRecordsChairStage(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	ap := newScheduled()
	require.NoError(t, Enqueue(ap, 1, now))
	require.NoError(t, StartService(ap, now.Add(time.Minute)))

	assert.Equal(t, string(StatusInProgress), ap.Status)
	assert.Equal(t, string(StageServing), ap.QueueStage)

	// Saltar de la espera directo al servicio igual deja rastro del paso
	// por la silla.
	stages := make([]string, 0, len(ap.StageHistory))
	for _, e := range ap.StageHistory {
		stages = append(stages, e.Stage)
	}
	assert.Equal(t, []string{"queued", "in_chair", "serving"}, stages)
}

func TestFinalizeRequiresActiveService(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	ap := newScheduled()
	require.NoError(t, Enqueue(ap, 1, now))

	err := Finalize(ap, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Empty(t, ap.FinalOutcome)

	require.NoError(t, Accept(ap, now))
	require.NoError(t, Finalize(ap, now))

	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Equal(t, OutcomeCompleted, ap.FinalOutcome)
	require.NotNil(t, ap.FinalOutcomeAt)
	require.NotNil(t, ap.CompletedAt)
}

func TestFinalOutcomeIsWriteOnce(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	ap := newScheduled()
	require.NoError(t, Reject(ap, "cliente no llegó", now))

	assert.Equal(t, OutcomeRejected, ap.FinalOutcome)
	assert.Equal(t, "cliente no llegó", ap.CancelReason)
	outcomeAt := *ap.FinalOutcomeAt
	historyLen := len(ap.StageHistory)

	// Ninguna acción reabre una cita cerrada ni toca su desenlace.
	for _, act := range []func() error{
		func() error { return Enqueue(ap, 1, now.Add(time.Hour)) },
		func() error { return Accept(ap, now.Add(time.Hour)) },
		func() error { return StartService(ap, now.Add(time.Hour)) },
		func() error { return Finalize(ap, now.Add(time.Hour)) },
		func() error { return Reject(ap, "otro motivo", now.Add(time.Hour)) },
	} {
		err := act()
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	}

	assert.Equal(t, OutcomeRejected, ap.FinalOutcome)
	assert.Equal(t, outcomeAt, *ap.FinalOutcomeAt)
	assert.Equal(t, "cliente no llegó", ap.CancelReason)
	assert.Len(t, ap.StageHistory, historyLen)
}

func TestStageHistoryTimestampsNeverGoBack(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	ap := newScheduled()
	require.NoError(t, Enqueue(ap, 1, base))

	// El reloj retrocede entre etapas (NTP, cambio de zona): la entrada se
	// clava al timestamp anterior en vez de romper el orden.
	require.NoError(t, Accept(ap, base.Add(-time.Minute)))
	require.NoError(t, StartService(ap, base.Add(time.Minute)))
	require.NoError(t, Finalize(ap, base.Add(30*time.Second)))

	require.GreaterOrEqual(t, len(ap.StageHistory), 2)
	for i := 1; i < len(ap.StageHistory); i++ {
		prev, cur := ap.StageHistory[i-1].At, ap.StageHistory[i].At
		assert.False(t, cur.Before(prev), "entrada %d retrocede: %v < %v", i, cur, prev)
	}
}
