package app

import (
	"context"
	"fmt"
	"log"

	"github.com/Zachkp/folio/internal/auth"
	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/mailer"
	"github.com/Zachkp/folio/internal/repository"
	"github.com/Zachkp/folio/internal/store"
)

// App holds the store and everything built on it.
type App struct {
	Store    *store.Store
	Projects *repository.Projects
	Skills   *repository.Skills
	About    *repository.About
	Messages *repository.Messages
	Theme    *repository.Theme
	Auth     *auth.Gate
	Mailer   *mailer.Mailer
}

// New opens the configured store backend.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	s, err := store.Open(ctx, store.Options{
		Driver:        cfg.Store.Driver,
		DataDir:       cfg.Store.DataDir,
		RedisAddr:     cfg.Store.RedisAddr,
		RedisPassword: cfg.Store.RedisPassword,
		RedisDB:       cfg.Store.RedisDB,
		PostgresURL:   cfg.Store.PostgresURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	log.Printf("Store: using %s backend", driverName(cfg.Store.Driver))

	return WithStore(s, cfg), nil
}

// WithStore builds the application on an already open store.
func WithStore(s *store.Store, cfg config.Config) *App {
	return &App{
		Store:    s,
		Projects: repository.NewProjects(s),
		Skills:   repository.NewSkills(s),
		About:    repository.NewAbout(s),
		Messages: repository.NewMessages(s),
		Theme:    repository.NewTheme(s),
		Auth:     auth.NewGate(s, cfg.Admin.Username, cfg.Admin.Password),
		Mailer:   mailer.New(cfg.SMTP),
	}
}

func (a *App) Close() error {
	return a.Store.Close()
}

func driverName(driver string) string {
	if driver == "" {
		return store.DriverSQLite
	}
	return driver
}
