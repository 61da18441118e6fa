package queue

import "github.com/corteexpress/barberia-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusWaiting    Status = "waiting"
	StatusInChair    Status = "in_chair"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// ===============================
// Queue Stage
// ===============================

type Stage string

const (
	StageQueued   Stage = "queued"
	StageInChair  Stage = "in_chair"
	StageServing  Stage = "serving"
	StageFinished Stage = "finished"
	StageRejected Stage = "rejected"
)

// ===============================
// Final Outcome
// ===============================

const (
	OutcomeCompleted = "completed"
	OutcomeRejected  = "rejected"
)

// queueable reúne los estados que pueden aparecer en la cola del día.
func queueable(s Status) bool {
	switch s {
	case StatusWaiting, StatusPending, StatusScheduled, StatusConfirmed:
		return true
	}
	return false
}

// active marca los estados con un cliente en la silla.
func active(s Status) bool {
	return s == StatusInChair || s == StatusInProgress
}

// Priority ordena la cola: waiting primero, luego confirmados, luego
// agendados, el resto al final.
func Priority(s Status) int {
	switch s {
	case StatusWaiting:
		return 0
	case StatusConfirmed:
		return 1
	case StatusScheduled:
		return 2
	}
	return 3
}

// ===============================
// Validations
// ===============================

func CanEnqueue(current Status) error {
	switch current {
	case StatusPending, StatusScheduled, StatusConfirmed:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

func CanAccept(current Status) error {
	if !queueable(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanStartService(current Status) error {
	if current != StatusWaiting && current != StatusInChair {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReject(current Status) error {
	if !queueable(current) && !active(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanFinalize(current Status) error {
	if !active(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
