// Package store is the key/value layer every collection is persisted through.
//
// A Store wraps one Backend (memory, sqlite, file, redis or postgres) and owns the
// change Hub: each successful Set or Delete is published to subscribers in the same
// process, and backends that can see writes from other processes report those too.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

var ErrNotFound = errors.New("store: key not found")

// Backend is the raw persistence a Store runs on.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Watcher is implemented by backends that can observe writes made by other
// processes. Watch blocks until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, changed func(key string)) error
}

// KV is the subset of a Store the repositories depend on.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Subscriber hands out change notifications.
type Subscriber interface {
	Subscribe() (<-chan Change, func())
}

type Store struct {
	backend Backend
	hub     *Hub
	cancel  context.CancelFunc
	done    chan struct{}
}

// New wraps backend. If the backend is a Watcher its external changes are
// republished on the hub until Close.
func New(backend Backend) *Store {
	s := &Store{
		backend: backend,
		hub:     NewHub(),
	}

	if w, ok := backend.(Watcher); ok {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		s.done = make(chan struct{})
		go func() {
			defer close(s.done)
			err := w.Watch(ctx, func(key string) {
				s.hub.Publish(Change{Key: key, External: true})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("store: watcher stopped: %v", err)
			}
		}()
	}

	return s
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	return s.backend.Get(ctx, key)
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.backend.Set(ctx, key, value); err != nil {
		return fmt.Errorf("store: set %q: %w", key, err)
	}
	s.hub.Publish(Change{Key: key})
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("store: delete %q: %w", key, err)
	}
	s.hub.Publish(Change{Key: key})
	return nil
}

// Subscribe registers for change notifications. The returned func unsubscribes.
func (s *Store) Subscribe() (<-chan Change, func()) {
	return s.hub.Subscribe()
}

// Close stops the watcher, closes every subscription and then the backend.
func (s *Store) Close() error {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	s.hub.Close()
	return s.backend.Close()
}

// DecodeError reports a stored value that is not valid JSON for its type.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("store: decode %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Load reads key and unmarshals it into dst. Fields missing from the stored
// value keep whatever dst already held.
func Load[T any](ctx context.Context, kv KV, key string, dst *T) error {
	data, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &DecodeError{Key: key, Err: err}
	}
	return nil
}

// Save marshals v and writes it under key, replacing the previous value.
func Save[T any](ctx context.Context, kv KV, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %q: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}
