package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// Event es el cambio de fila que dispara un re-fetch en los clientes.
type Event struct {
	AppointmentID uint      `json:"appointment_id"`
	Action        string    `json:"action"`
	At            time.Time `json:"at"`
}

// Notifier publica cambios de citas por pub/sub, un canal por barbero. Los
// paneles suscritos (SSE) re-consultan la cola al recibir cualquier evento.
type Notifier struct {
	rdb *redis.Client
}

func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

func Channel(barberID uint) string {
	return fmt.Sprintf("cola:barbero:%d", barberID)
}

// AppointmentChanged publica sin bloquear el flujo principal: un fallo del
// broker se registra y el poll de los clientes reconcilia la vista.
func (n *Notifier) AppointmentChanged(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
	action string,
) {
	payload, err := json.Marshal(Event{
		AppointmentID: appointmentID,
		Action:        action,
		At:            time.Now().UTC(),
	})
	if err != nil {
		return
	}

	if err := n.rdb.Publish(ctx, Channel(barberID), payload).Err(); err != nil {
		log.Warn().Err(err).Uint("barber_id", barberID).Msg("realtime publish failed")
	}
}

// Subscribe entrega los eventos del barbero hasta que se llame cancel o se
// cierre el contexto.
func (n *Notifier) Subscribe(ctx context.Context, barberID uint) (<-chan Event, func()) {
	sub := n.rdb.Subscribe(ctx, Channel(barberID))
	out := make(chan Event, 16)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() { _ = sub.Close() }
	return out, cancel
}
