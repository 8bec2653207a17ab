// Package repository keeps each domain collection as one JSON value in the
// store. Every mutation reads the whole list, changes it and writes the whole
// list back.
package repository

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/Zachkp/folio/internal/store"
)

// Store keys. The layout matches what the site has always persisted.
const (
	KeyProjects      = "projects"
	KeySkills        = "portfolio_skills"
	KeyAbout         = "aboutData"
	KeyMessages      = "messages"
	KeyAuthenticated = "isAuthenticated"
	KeyTheme         = "theme"
)

var ErrNotFound = errors.New("record not found")

// collection is a list of T persisted under one key. A missing key yields
// seed(), which is written back when persistSeed is set. A value that does
// not decode also yields seed(); it is logged and left in place until the
// next write replaces it.
type collection[T any] struct {
	kv          store.KV
	key         string
	seed        func() []T
	persistSeed bool
	id          func(T) string

	mu sync.Mutex
}

func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	var items []T
	err := store.Load(ctx, c.kv, c.key, &items)

	var decodeErr *store.DecodeError
	switch {
	case err == nil:
		if items == nil {
			items = []T{}
		}
		return items, nil
	case errors.Is(err, store.ErrNotFound):
		items = c.seed()
		if c.persistSeed {
			if err := store.Save(ctx, c.kv, c.key, items); err != nil {
				return nil, err
			}
		}
		return items, nil
	case errors.As(err, &decodeErr):
		log.Printf("Warning: %v; falling back to defaults", err)
		return c.seed(), nil
	default:
		return nil, err
	}
}

func (c *collection[T]) list(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *collection[T]) get(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := c.list(ctx)
	if err != nil {
		return zero, err
	}
	i := c.indexOf(items, id)
	if i < 0 {
		return zero, ErrNotFound
	}
	return items[i], nil
}

// mutate runs fn over the current list and persists what it returns.
func (c *collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return store.Save(ctx, c.kv, c.key, items)
}

func (c *collection[T]) replace(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if items == nil {
		items = []T{}
	}
	return store.Save(ctx, c.kv, c.key, items)
}

func (c *collection[T]) indexOf(items []T, id string) int {
	for i, item := range items {
		if c.id(item) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) remove(ctx context.Context, id string) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		i := c.indexOf(items, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		out := make([]T, 0, len(items)-1)
		out = append(out, items[:i]...)
		return append(out, items[i+1:]...), nil
	})
}

func empty[T any]() []T { return []T{} }

func newID() string {
	return uuid.NewString()
}
