// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IronBlyzer/Movies/cliparse"
)

// Opener establishes a Store. It is called by a Handle until it succeeds.
type Opener func(ctx context.Context) (Store, error)

// Handle is the process-wide store connection. The store is opened on the
// first Get and shared by every caller afterwards; a failed open is not
// remembered, so the next Get tries again.
type Handle struct {
	open Opener

	// sem is a one-slot lock that callers can stop waiting for when their
	// context ends. It guards store.
	sem   chan struct{}
	store Store
}

func NewHandle(open Opener) *Handle {
	return &Handle{open: open, sem: make(chan struct{}, 1)}
}

func (h *Handle) lock(ctx context.Context) error {
	select {
	case h.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for store: %w", ctx.Err())
	}
}

func (h *Handle) unlock() {
	<-h.sem
}

// Get returns the shared store, opening it if needed. While another caller
// is opening the store, Get waits at most until ctx is done.
func (h *Handle) Get(ctx context.Context) (Store, error) {
	if err := h.lock(ctx); err != nil {
		return nil, err
	}
	defer h.unlock()

	if h.store != nil {
		return h.store, nil
	}

	s, err := h.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	h.store = s
	return s, nil
}

// Collection opens the store if needed and returns the named collection.
func (h *Handle) Collection(ctx context.Context, name string) (Collection, error) {
	s, err := h.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.Collection(name), nil
}

// Ping opens the store if needed and checks it is reachable.
func (h *Handle) Ping(ctx context.Context) error {
	s, err := h.Get(ctx)
	if err != nil {
		return err
	}
	return s.Ping(ctx)
}

// Close releases the store if it was ever opened.
func (h *Handle) Close(ctx context.Context) error {
	if err := h.lock(ctx); err != nil {
		return err
	}
	defer h.unlock()

	if h.store == nil {
		return nil
	}
	err := h.store.Close(ctx)
	h.store = nil
	return err
}

// NewOpener returns an Opener for the backend selected by cfg. Every store
// it opens is instrumented.
func NewOpener(cfg cliparse.Config) Opener {
	return func(ctx context.Context) (Store, error) {
		var (
			s   Store
			err error
		)

		switch cfg.DatabaseType {
		case cliparse.DatabaseMongo:
			s, err = OpenMongo(ctx, cfg.DatabaseURL, cfg.DatabaseName)
		case cliparse.DatabaseSQLite, cliparse.DatabasePostgres:
			s, err = OpenSQL(ctx, cfg.DatabaseType, cfg.DatabaseURL)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownDatabaseType, cfg.DatabaseType)
		}
		if err != nil {
			return nil, err
		}

		slog.Info("store opened", "type", cfg.DatabaseType, "database", cfg.DatabaseName)
		return Instrument(s), nil
	}
}
