package broadcast

import (
	"context"
	"encoding/json"
	"log/slog"

	"ecotrivia/backend/internal/hub"
)

const eventRoomsChanged = "rooms_changed"

// Local delivers signals between clients of the same process through a hub.
type Local struct {
	hub     *hub.Hub
	topic   string
	inboxSz int
}

// NewLocal publishes on topic of h.
func NewLocal(h *hub.Hub, topic string) *Local {
	return &Local{hub: h, topic: topic, inboxSz: 16}
}

func (l *Local) Publish(_ context.Context, sig Signal) error {
	l.hub.Broadcast(l.topic, hub.Event{Type: eventRoomsChanged, Payload: sig})
	return nil
}

func (l *Local) Subscribe(ctx context.Context) (<-chan Signal, error) {
	inbox := make(hub.Client, l.inboxSz)
	l.hub.Subscribe(l.topic, inbox)

	out := make(chan Signal)
	go func() {
		defer close(out)
		defer l.hub.Unsubscribe(l.topic, inbox)

		for {
			select {
			case <-ctx.Done():
				return
			case data, ok := <-inbox:
				if !ok {
					return
				}
				var event struct {
					Type    string          `json:"type"`
					Payload json.RawMessage `json:"payload"`
				}
				if err := json.Unmarshal(data, &event); err != nil || event.Type != eventRoomsChanged {
					continue
				}
				sig, err := decode(event.Payload)
				if err != nil {
					slog.Warn("broadcast: dropping malformed signal", "err", err)
					continue
				}
				if !deliver(ctx, out, sig) {
					return
				}
			}
		}
	}()
	return out, nil
}

func (l *Local) Close() error { return nil }
