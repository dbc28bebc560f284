// Package reconcile keeps a client's room view converged with the shared
// store: it reacts to change signals, polls as a fallback and sweeps
// abandoned rooms.
package reconcile

import (
	"context"
	"log/slog"
	"time"

	"ecotrivia/backend/internal/broadcast"

	"golang.org/x/sync/errgroup"
)

// Client is the part of room.Store the runner drives.
type Client interface {
	ClientID() string
	Sync(ctx context.Context) error
	Sweep(ctx context.Context) ([]string, error)
}

// Config sets the loop periods. A zero period disables that loop.
type Config struct {
	PollInterval  time.Duration
	SweepInterval time.Duration
}

// DefaultConfig polls every 5 seconds and sweeps every 10.
func DefaultConfig() Config {
	return Config{
		PollInterval:  5 * time.Second,
		SweepInterval: 10 * time.Second,
	}
}

// Runner runs the listener, poll and sweep loops for one client.
type Runner struct {
	client Client
	bus    broadcast.Broadcaster
	cfg    Config
	log    *slog.Logger
}

// NewRunner creates a runner. bus may be nil, leaving only the poll loop to reconcile.
func NewRunner(client Client, bus broadcast.Broadcaster, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		client: client,
		bus:    bus,
		cfg:    cfg,
		log:    logger.With("client", client.ClientID()),
	}
}

// Run blocks until ctx is done. It fails only if the signal subscription cannot be set up.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if r.bus != nil {
		signals, err := r.bus.Subscribe(ctx)
		if err != nil {
			return err
		}
		g.Go(func() error {
			r.listen(ctx, signals)
			return nil
		})
	}
	if r.cfg.PollInterval > 0 {
		g.Go(func() error {
			r.every(ctx, r.cfg.PollInterval, r.sync)
			return nil
		})
	}
	if r.cfg.SweepInterval > 0 {
		g.Go(func() error {
			r.every(ctx, r.cfg.SweepInterval, r.sweep)
			return nil
		})
	}

	return g.Wait()
}

func (r *Runner) listen(ctx context.Context, signals <-chan broadcast.Signal) {
	for sig := range signals {
		if sig.Origin == r.client.ClientID() {
			continue
		}
		r.log.Debug("change signal received", "from", sig.Origin, "revision", sig.Revision)
		r.sync(ctx)
	}
}

func (r *Runner) every(ctx context.Context, d time.Duration, fn func(context.Context)) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

func (r *Runner) sync(ctx context.Context) {
	if err := r.client.Sync(ctx); err != nil && ctx.Err() == nil {
		r.log.Warn("room sync failed", "err", err)
	}
}

func (r *Runner) sweep(ctx context.Context) {
	if _, err := r.client.Sweep(ctx); err != nil && ctx.Err() == nil {
		r.log.Warn("room sweep failed", "err", err)
	}
}
