package audit

import "github.com/rs/zerolog/log"

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

// Dispatcher desacopla la escritura de auditoría del request: encola en un
// canal con buffer y un worker la persiste. La auditoría nunca tumba la API:
// con la cola llena el evento se descarta.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

// Discard devuelve un dispatcher sin worker que descarta todo. Para tests.
func Discard() *Dispatcher {
	return &Dispatcher{}
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.BarbershopID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d.queue == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}
