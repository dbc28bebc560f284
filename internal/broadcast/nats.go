package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATS publishes signals on a core NATS subject.
type NATS struct {
	nc      *nats.Conn
	subject string
}

// ConnectNATS dials url with reconnects enabled.
func ConnectNATS(url, subject string) (*NATS, error) {
	nc, err := nats.Connect(url,
		nats.Name("ecotrivia"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATS{nc: nc, subject: subject}, nil
}

func (n *NATS) Publish(_ context.Context, sig Signal) error {
	data, err := encode(sig)
	if err != nil {
		return fmt.Errorf("failed to encode signal: %w", err)
	}
	if err := n.nc.Publish(n.subject, data); err != nil {
		return fmt.Errorf("failed to publish signal: %w", err)
	}
	return nil
}

func (n *NATS) Subscribe(ctx context.Context) (<-chan Signal, error) {
	msgs := make(chan *nats.Msg, 64)
	sub, err := n.nc.ChanSubscribe(n.subject, msgs)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", n.subject, err)
	}
	if err := n.nc.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("failed to flush subscription: %w", err)
	}

	out := make(chan Signal)
	go func() {
		defer close(out)
		defer sub.Unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				sig, err := decode(msg.Data)
				if err != nil {
					slog.Warn("broadcast: dropping malformed signal", "subject", n.subject, "err", err)
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

func (n *NATS) Close() error {
	return n.nc.Drain()
}
