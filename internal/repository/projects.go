package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Zachkp/folio/internal/domain"
	"github.com/Zachkp/folio/internal/store"
)

var (
	ErrImportNotList    = errors.New("import: file must contain a JSON array of projects")
	ErrImportUnreadable = errors.New("import: file could not be read")
)

type Projects struct {
	c collection[domain.Project]
}

// NewProjects returns the project collection. A store without projects is
// seeded with domain.DefaultProjects.
func NewProjects(kv store.KV) *Projects {
	return &Projects{
		c: collection[domain.Project]{
			kv:          kv,
			key:         KeyProjects,
			seed:        domain.DefaultProjects,
			persistSeed: true,
			id:          func(p domain.Project) string { return p.ID },
		},
	}
}

func (r *Projects) List(ctx context.Context) ([]domain.Project, error) {
	return r.c.list(ctx)
}

func (r *Projects) Get(ctx context.Context, id string) (domain.Project, error) {
	return r.c.get(ctx, id)
}

// Add validates in and puts the new project at the front of the list.
func (r *Projects) Add(ctx context.Context, in domain.ProjectInput) (domain.Project, error) {
	if err := in.Validate(); err != nil {
		return domain.Project{}, err
	}

	p := domain.NewProject(newID(), in)
	err := r.c.mutate(ctx, func(items []domain.Project) ([]domain.Project, error) {
		return append([]domain.Project{p}, items...), nil
	})
	if err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

// Update replaces the fields of project id in place.
func (r *Projects) Update(ctx context.Context, id string, in domain.ProjectInput) (domain.Project, error) {
	if err := in.Validate(); err != nil {
		return domain.Project{}, err
	}

	var updated domain.Project
	err := r.c.mutate(ctx, func(items []domain.Project) ([]domain.Project, error) {
		i := r.c.indexOf(items, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		in.Apply(&items[i])
		updated = items[i]
		return items, nil
	})
	if err != nil {
		return domain.Project{}, err
	}
	return updated, nil
}

func (r *Projects) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}

// Export writes the whole list as indented JSON.
func (r *Projects) Export(ctx context.Context, w io.Writer) error {
	items, err := r.c.list(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Import replaces the collection with the array read from rd. Only the
// top-level shape is checked and ids may be strings or numbers; on any error
// the collection is left alone.
func (r *Projects) Import(ctx context.Context, rd io.Reader) (int, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImportUnreadable, err)
	}

	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImportUnreadable, err)
	}
	if _, ok := top.([]any); !ok {
		return 0, ErrImportNotList
	}

	var items []domain.Project
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImportUnreadable, err)
	}
	if err := r.c.replace(ctx, items); err != nil {
		return 0, err
	}
	return len(items), nil
}
