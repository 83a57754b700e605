package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/keshon/datastore"
	"github.com/rs/zerolog"
)

// DefaultSaveInterval is how often the file store writes to disk when no
// interval is configured.
const DefaultSaveInterval = 2 * time.Second

// File is a JSON file store backed by datastore. Writes land in memory and
// reach disk on the autosave tick and on Close.
type File struct {
	ds     *datastore.DataStore
	cancel context.CancelFunc
}

// NewFile opens or creates the JSON file at path. interval <= 0 uses
// DefaultSaveInterval.
func NewFile(path string, interval time.Duration, logger zerolog.Logger) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("empty file store path")
	}
	if interval <= 0 {
		interval = DefaultSaveInterval
	}
	zl := logger.With().Str("component", "datastore").Logger()
	sl := slog.New(slog.NewTextHandler(zl, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// The autosave loop runs until Close cancels it.
	ctx, cancel := context.WithCancel(context.Background())
	ds, err := datastore.New(ctx, path,
		datastore.WithSaveInterval(interval),
		datastore.WithLogger(sl),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("opening file store %s: %w", path, err)
	}
	return &File{ds: ds, cancel: cancel}, nil
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	var s string
	ok, err := f.ds.Get(key, &s)
	if err != nil {
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return s, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	if err := f.ds.Set(key, value); err != nil {
		if errors.Is(err, datastore.ErrClosed) {
			return ErrClosed
		}
		return err
	}
	return nil
}

// Close stops the autosave loop and writes the file one last time.
func (f *File) Close() error {
	f.cancel()
	return f.ds.Close()
}
