package broadcast

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Redis uses redis pub/sub, so clients in different processes sharing the
// redis store also share signals.
type Redis struct {
	client  *redis.Client
	channel string
}

// NewRedis publishes on channel through client.
func NewRedis(client *redis.Client, channel string) *Redis {
	return &Redis{client: client, channel: channel}
}

func (r *Redis) Publish(ctx context.Context, sig Signal) error {
	data, err := encode(sig)
	if err != nil {
		return fmt.Errorf("failed to encode signal: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish signal: %w", err)
	}
	return nil
}

func (r *Redis) Subscribe(ctx context.Context) (<-chan Signal, error) {
	ps := r.client.Subscribe(ctx, r.channel)
	// wait for the confirmation so no signal published after return is missed
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}

	out := make(chan Signal)
	go func() {
		defer close(out)
		defer ps.Close()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				sig, err := decode([]byte(msg.Payload))
				if err != nil {
					slog.Warn("broadcast: dropping malformed signal", "channel", r.channel, "err", err)
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

func (r *Redis) Close() error {
	return r.client.Close()
}
