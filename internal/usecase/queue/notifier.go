package queue

import "context"

// Notifier avisa a los paneles suscritos que una cita del barbero cambió.
// La publicación es best-effort: el poll periódico reconcilia si se pierde.
type Notifier interface {
	AppointmentChanged(
		ctx context.Context,
		barberID uint,
		appointmentID uint,
		action string,
	)
}

// NopNotifier se usa en tests y cuando no hay broker configurado.
type NopNotifier struct{}

func (NopNotifier) AppointmentChanged(context.Context, uint, uint, string) {}
