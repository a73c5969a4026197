// Persistence contract
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

// Package store is the persistent key-value layer the pipeline writes
// through: a single table keyed by gameId, supporting a conditional put
// predicate of stored.version == v (§6). Two implementations are
// provided: Memory, for tests and single-process deployments, and
// SQLite, grounded on the teacher's channel-of-closures database
// manager.
package store

import (
	"context"
	"errors"

	"go-rspfb"
)

// ErrNotFound is returned by Load when gameId has no record
var ErrNotFound = errors.New("store: game not found")

// ErrExists is returned by Create when gameId already has a record and
// the store was not opened with AllowOverwrites
var ErrExists = errors.New("store: game already exists")

// ErrConflict is returned by ConditionalPut when the stored version no
// longer matches the expected version — the pipeline's signal to retry
var ErrConflict = errors.New("store: version conflict")

// ListFilter narrows List's result set (§6 GET /list-games)
type ListFilter struct {
	// AvailableOnly restricts to games with an open away seat
	AvailableOnly bool
	// User restricts to games involving this user, if non-empty
	User string
}

// Store is the persistence contract the pipeline and the web layer
// depend on. Every method is safe for concurrent use.
type Store interface {
	// Create inserts a new game record. It returns ErrExists if gameId
	// is taken, unless the store allows overwrites.
	Create(ctx context.Context, g *rspfb.Game) error

	// Load fetches a game by id. It returns ErrNotFound if absent.
	Load(ctx context.Context, gameId string) (*rspfb.Game, error)

	// ConditionalPut stores g iff the currently stored version equals
	// expectedVersion, then stamps g.Version = expectedVersion + 1. It
	// returns ErrConflict on a predicate mismatch and ErrNotFound if
	// the record was deleted out from under the caller.
	ConditionalPut(ctx context.Context, g *rspfb.Game, expectedVersion int64) error

	// List returns games matching filter.
	List(ctx context.Context, filter ListFilter) ([]*rspfb.Game, error)
}
