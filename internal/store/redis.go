package store

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	REDIS_KEY_PREFIX        = "folio:"
	REDIS_CHANGES_CHANNEL   = "folio:changes"
	REDIS_MIN_RETRY_BACKOFF = 3 * time.Second
	REDIS_MAX_RETRY_BACKOFF = 5 * time.Second
)

// Redis keeps values as plain redis strings and publishes every write on a
// channel so other processes sharing the database hear about it.
type Redis struct {
	rdb    *redis.Client
	origin string
}

func OpenRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        password,
		DB:              db,
		MinRetryBackoff: REDIS_MIN_RETRY_BACKOFF,
		MaxRetryBackoff: REDIS_MAX_RETRY_BACKOFF,
		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			log.Println("redis:", "OnConnect()", addr)
			return nil
		},
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Redis{
		rdb:    rdb,
		origin: uuid.NewString(),
	}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.rdb.Get(ctx, REDIS_KEY_PREFIX+key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	return value, err
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := pipe.Set(ctx, REDIS_KEY_PREFIX+key, value, 0).Err(); err != nil {
			return err
		}
		return pipe.Publish(ctx, REDIS_CHANGES_CHANNEL, r.origin+"|"+key).Err()
	})
	return err
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := pipe.Del(ctx, REDIS_KEY_PREFIX+key).Err(); err != nil {
			return err
		}
		return pipe.Publish(ctx, REDIS_CHANGES_CHANNEL, r.origin+"|"+key).Err()
	})
	return err
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}

// Watch reports keys written by other processes. Writes made through this
// Redis value are skipped; the Store already published them.
func (r *Redis) Watch(ctx context.Context, changed func(key string)) error {
	ps := r.rdb.Subscribe(ctx, REDIS_CHANGES_CHANNEL)
	defer ps.Close()

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			origin, key, found := strings.Cut(msg.Payload, "|")
			if !found || origin == r.origin {
				continue
			}
			changed(key)
		}
	}
}
