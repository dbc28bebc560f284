// Package broadcast carries "room collection changed" signals between clients.
// A signal carries no room data: receivers reconcile by reading the store.
package broadcast

import (
	"context"
	"encoding/json"
	"time"
)

// DefaultChannel is the topic, redis channel or NATS subject signals travel on.
const DefaultChannel = "ecotrivia.rooms"

// Signal announces that a stored key changed.
type Signal struct {
	Key      string    `json:"key"`
	Origin   string    `json:"origin"`
	Revision int64     `json:"revision"`
	At       time.Time `json:"at"`
}

// Broadcaster publishes signals and hands them to subscribers.
type Broadcaster interface {
	Publish(ctx context.Context, sig Signal) error
	// Subscribe delivers signals until ctx is done, then closes the channel.
	Subscribe(ctx context.Context) (<-chan Signal, error)
	Close() error
}

func encode(sig Signal) ([]byte, error) {
	return json.Marshal(sig)
}

func decode(data []byte) (Signal, error) {
	var sig Signal
	err := json.Unmarshal(data, &sig)
	return sig, err
}

// deliver forwards sig unless ctx ends first.
func deliver(ctx context.Context, out chan<- Signal, sig Signal) bool {
	select {
	case out <- sig:
		return true
	case <-ctx.Done():
		return false
	}
}
