package queue

import (
	"time"

	"github.com/corteexpress/barberia-api/internal/httperr"
	"github.com/corteexpress/barberia-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Cada acción valida el estado actual, muta la cita y anota la etapa en el
// historial. El desenlace final se escribe una sola vez: cualquier acción
// sobre una cita ya cerrada falla con invalid_state.

// Enqueue marca la cita como en espera y le asigna posición en la cola.
func Enqueue(ap *models.Appointment, position int, now time.Time) error {
	if err := ensureOpen(ap); err != nil {
		return err
	}
	if err := CanEnqueue(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusWaiting)
	ap.QueuePosition = position
	recordStage(ap, StageQueued, now)
	return nil
}

// Accept pasa la cita a la silla. El guard de "una sola silla ocupada" vive
// en el repositorio (update condicional) y en el usecase (chequeo rápido).
func Accept(ap *models.Appointment, now time.Time) error {
	if err := ensureOpen(ap); err != nil {
		return err
	}
	if err := CanAccept(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusInChair)
	recordStage(ap, StageInChair, now)
	return nil
}

// StartService arranca el servicio de una cita ya aceptada.
func StartService(ap *models.Appointment, now time.Time) error {
	if err := ensureOpen(ap); err != nil {
		return err
	}
	if err := CanStartService(Status(ap.Status)); err != nil {
		return err
	}

	if ap.Status != string(StatusInChair) {
		ap.Status = string(StatusInChair)
		recordStage(ap, StageInChair, now)
	}

	ap.Status = string(StatusInProgress)
	recordStage(ap, StageServing, now)
	return nil
}

// Reject cancela la cita con motivo y fija el desenlace rechazado.
// Irreversible una vez aplicado.
func Reject(ap *models.Appointment, reason string, now time.Time) error {
	if err := ensureOpen(ap); err != nil {
		return err
	}
	if err := CanReject(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelReason = reason
	ap.CancelledAt = &now
	recordStage(ap, StageRejected, now)
	setOutcome(ap, OutcomeRejected, now)
	return nil
}

// Finalize cierra la cita en servicio como completada. La venta asociada se
// registra en la misma transacción del repositorio.
func Finalize(ap *models.Appointment, now time.Time) error {
	if err := ensureOpen(ap); err != nil {
		return err
	}
	if err := CanFinalize(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	recordStage(ap, StageFinished, now)
	setOutcome(ap, OutcomeCompleted, now)
	return nil
}

// ===============================
// Helpers
// ===============================

func ensureOpen(ap *models.Appointment) error {
	if ap.FinalOutcome != "" {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// recordStage anota la etapa manteniendo el historial append-only y con
// timestamps no decrecientes aun si el reloj retrocede.
func recordStage(ap *models.Appointment, stage Stage, now time.Time) {
	if n := len(ap.StageHistory); n > 0 {
		if last := ap.StageHistory[n-1].At; now.Before(last) {
			now = last
		}
	}

	ap.QueueStage = string(stage)
	ap.StageHistory = append(ap.StageHistory, models.StageEntry{
		Stage: string(stage),
		At:    now,
	})
}

func setOutcome(ap *models.Appointment, outcome string, now time.Time) {
	ap.FinalOutcome = outcome
	ap.FinalOutcomeAt = &now
}
