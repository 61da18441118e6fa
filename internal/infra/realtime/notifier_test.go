package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(t *testing.T) *Notifier {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewNotifier(rdb)
}

func TestChannelPerBarber(t *testing.T) {
	assert.Equal(t, "cola:barbero:7", Channel(7))
	assert.NotEqual(t, Channel(7), Channel(8))
}

func TestPublishAndSubscribe(t *testing.T) {
	n := newTestNotifier(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, stop := n.Subscribe(ctx, 7)
	defer stop()

	// El SUBSCRIBE viaja asíncrono; se reintenta la publicación hasta que
	// el suscriptor esté escuchando.
	deadline := time.After(3 * time.Second)
	for {
		n.AppointmentChanged(ctx, 7, 42, "queued")

		select {
		case ev := <-events:
			assert.Equal(t, uint(42), ev.AppointmentID)
			assert.Equal(t, "queued", ev.Action)
			assert.False(t, ev.At.IsZero())
			return
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatal("evento nunca llegó al suscriptor")
		}
	}
}

func TestSubscriberOnlySeesOwnChannel(t *testing.T) {
	n := newTestNotifier(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, stop := n.Subscribe(ctx, 7)
	defer stop()

	// Dar tiempo a que la suscripción quede activa antes de publicar a
	// otro barbero.
	require.Eventually(t, func() bool {
		n.AppointmentChanged(ctx, 7, 1, "ping")
		select {
		case <-events:
			return true
		default:
			return false
		}
	}, 3*time.Second, 50*time.Millisecond)

	n.AppointmentChanged(ctx, 8, 99, "queued")
	n.AppointmentChanged(ctx, 7, 2, "accepted")

	// Ignorar pings rezagados del arranque; lo publicado al barbero 8 no
	// debe aparecer nunca.
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Action == "ping" {
				continue
			}
			assert.Equal(t, uint(2), ev.AppointmentID)
			assert.Equal(t, "accepted", ev.Action)
			return
		case <-deadline:
			t.Fatal("evento propio nunca llegó")
		}
	}
}
