package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	fieldValue    = "value"
	fieldRevision = "rev"
)

// Redis keeps each record as a hash of value and revision and uses
// WATCH/MULTI for compare-and-swap.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps a connected client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) (Entry, error) {
	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if len(fields) == 0 {
		return Entry{}, ErrNotFound
	}
	rev, err := strconv.ParseInt(fields[fieldRevision], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("corrupt revision for %s: %w", key, err)
	}
	return Entry{Value: []byte(fields[fieldValue]), Revision: rev}, nil
}

func (r *Redis) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	var next int64
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.HGet(ctx, key, fieldRevision).Int64()
		if errors.Is(err, redis.Nil) {
			cur = 0
		} else if err != nil {
			return err
		}
		if expected != AnyRevision && cur != expected {
			return ErrRevisionMismatch
		}
		next = cur + 1

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fieldValue, value, fieldRevision, next)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return next, nil
	case errors.Is(err, ErrRevisionMismatch), errors.Is(err, redis.TxFailedErr):
		return 0, ErrRevisionMismatch
	default:
		return 0, fmt.Errorf("failed to write %s: %w", key, err)
	}
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
