// SQLite-backed Store tests
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

package store

import (
	"context"
	"path/filepath"
	"testing"

	"go-rspfb"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.sqlite3")
	s, err := OpenSQLite(dsn, false)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestSQLiteCreateLoad(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	g := rspfb.New("g1", "alice")
	if err := s.Create(ctx, g); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Load(ctx, "g1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.GameId != "g1" || *got.Players[rspfb.Home] != "alice" {
		t.Errorf("Load returned %+v", got)
	}
}

func TestSQLiteCreateDuplicateRejected(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	if err := s.Create(ctx, rspfb.New("g1", "alice")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(ctx, rspfb.New("g1", "bob")); err != ErrExists {
		t.Errorf("Create on existing id = %v, want ErrExists", err)
	}
}

func TestSQLiteConditionalPutConflict(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	g := rspfb.New("g1", "alice")
	if err := s.Create(ctx, g); err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := s.Load(ctx, "g1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := s.Load(ctx, "g1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	first.PlayCount = 2
	if err := s.ConditionalPut(ctx, first, first.Version); err != nil {
		t.Fatalf("ConditionalPut: %v", err)
	}

	second.PlayCount = 3
	if err := s.ConditionalPut(ctx, second, second.Version); err != ErrConflict {
		t.Errorf("ConditionalPut on a stale version = %v, want ErrConflict", err)
	}
}

func TestSQLiteListAvailableOnly(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	if err := s.Create(ctx, rspfb.New("open", "alice")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	full := rspfb.New("full", "bob")
	carol := "carol"
	full.Players[rspfb.Away] = &carol
	if err := s.Create(ctx, full); err != nil {
		t.Fatalf("Create: %v", err)
	}

	games, err := s.List(ctx, ListFilter{AvailableOnly: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(games) != 1 || games[0].GameId != "open" {
		t.Errorf("List(AvailableOnly) = %+v, want only %q", games, "open")
	}
}
