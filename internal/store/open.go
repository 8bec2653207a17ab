package store

import (
	"context"
	"fmt"
	"path/filepath"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Driver        string
	DataDir       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresURL   string
}

// Open builds the backend named by opts.Driver and wraps it in a Store.
func Open(ctx context.Context, opts Options) (*Store, error) {
	var (
		backend Backend
		err     error
	)

	switch opts.Driver {
	case DriverMemory:
		backend = NewMemory()
	case DriverSQLite, "":
		backend, err = OpenSQLite(filepath.Join(opts.DataDir, "folio.db"))
	case DriverFile:
		backend, err = OpenFile(filepath.Join(opts.DataDir, "kv"))
	case DriverRedis:
		backend, err = OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
	case DriverPostgres:
		backend, err = OpenPostgres(ctx, opts.PostgresURL)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	return New(backend), nil
}
