// Package store provides the string key-value stores the pet profile is
// persisted to. Every backend stores one record per key.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Store is a local, single-writer string key-value store.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Kind selects a backend.
type Kind string

const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindRedis  Kind = "redis"
)

// Options configures Open.
type Options struct {
	Kind         Kind
	Path         string        // file and sqlite
	SaveInterval time.Duration // file autosave period
	RedisAddr    string
	RedisPrefix  string
	Logger       zerolog.Logger
}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// Open creates the backend selected by opts.Kind.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Kind {
	case KindMemory, "":
		return NewMemory(), nil
	case KindFile:
		return NewFile(opts.Path, opts.SaveInterval, opts.Logger)
	case KindSQLite:
		return NewSQLite(ctx, opts.Path)
	case KindRedis:
		return NewRedis(ctx, opts.RedisAddr, opts.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown store kind %q", opts.Kind)
	}
}
