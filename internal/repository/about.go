package repository

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/Zachkp/folio/internal/domain"
	"github.com/Zachkp/folio/internal/store"
)

// About is the about-me singleton.
type About struct {
	kv store.KV
	mu sync.Mutex
}

func NewAbout(kv store.KV) *About {
	return &About{kv: kv}
}

// Load merges the stored record over domain.DefaultAbout, so records saved
// before a field existed still come back complete.
func (r *About) Load(ctx context.Context) (domain.AboutData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	about := domain.DefaultAbout()
	err := store.Load(ctx, r.kv, KeyAbout, &about)

	var decodeErr *store.DecodeError
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
	case errors.As(err, &decodeErr):
		log.Printf("Warning: %v; falling back to defaults", err)
		about = domain.DefaultAbout()
	default:
		return domain.AboutData{}, err
	}

	about.Normalize()
	return about, nil
}

// Save validates and replaces the stored record.
func (r *About) Save(ctx context.Context, about domain.AboutData) error {
	if err := about.Validate(); err != nil {
		return err
	}
	about.Normalize()

	r.mu.Lock()
	defer r.mu.Unlock()
	return store.Save(ctx, r.kv, KeyAbout, about)
}
