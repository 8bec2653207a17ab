// Package site holds what the public page shows and keeps it current.
package site

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Zachkp/folio/internal/domain"
	"github.com/Zachkp/folio/internal/repository"
	"github.com/Zachkp/folio/internal/store"
)

const refreshTimeout = 5 * time.Second

// Shown reports whether the public page renders the value under key.
// Messages, the auth flag and the theme are not shown there.
func Shown(key string) bool {
	switch key {
	case repository.KeyProjects, repository.KeySkills, repository.KeyAbout:
		return true
	}
	return false
}

type ProjectLister interface {
	List(ctx context.Context) ([]domain.Project, error)
}

type SkillLister interface {
	List(ctx context.Context) ([]domain.Skill, error)
}

type AboutLoader interface {
	Load(ctx context.Context) (domain.AboutData, error)
}

// Snapshot is one consistent read of the public data.
type Snapshot struct {
	Projects []domain.Project
	Skills   []domain.Skill
	About    domain.AboutData
	Loaded   time.Time
}

// View caches a Snapshot and re-reads all of it whenever the store reports a
// change. After each refresh it publishes the change to its own subscribers,
// so they never see a notification before the data behind it.
type View struct {
	projects ProjectLister
	skills   SkillLister
	about    AboutLoader

	mu   sync.RWMutex
	snap Snapshot

	hub         *store.Hub
	unsubscribe func()
	done        chan struct{}
}

// NewView loads the first snapshot and starts following changes from sub.
func NewView(ctx context.Context, projects ProjectLister, skills SkillLister, about AboutLoader, sub store.Subscriber) (*View, error) {
	v := &View{
		projects: projects,
		skills:   skills,
		about:    about,
		hub:      store.NewHub(),
		done:     make(chan struct{}),
	}

	snap, err := v.load(ctx)
	if err != nil {
		return nil, err
	}
	v.snap = snap

	changes, unsubscribe := sub.Subscribe()
	v.unsubscribe = unsubscribe
	go v.follow(changes)

	return v, nil
}

func (v *View) follow(changes <-chan store.Change) {
	defer close(v.done)

	for change := range changes {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		snap, err := v.load(ctx)
		cancel()
		if err != nil {
			log.Printf("site: refresh after change to %q failed: %v", change.Key, err)
			continue
		}

		v.mu.Lock()
		v.snap = snap
		v.mu.Unlock()

		if Shown(change.Key) {
			v.hub.Publish(change)
		}
	}
}

func (v *View) load(ctx context.Context) (Snapshot, error) {
	projects, err := v.projects.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	skills, err := v.skills.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	about, err := v.about.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Projects: projects,
		Skills:   skills,
		About:    about,
		Loaded:   time.Now(),
	}, nil
}

// Snapshot returns the current data. The slices must not be modified.
func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snap
}

// Subscribe is notified after a refresh caused by a change to data the
// public page shows.
func (v *View) Subscribe() (<-chan store.Change, func()) {
	return v.hub.Subscribe()
}

// Close stops following the store and closes all subscriptions.
func (v *View) Close() {
	v.unsubscribe()
	<-v.done
	v.hub.Close()
}
