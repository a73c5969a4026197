// SQLite-backed Store
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"path"
	"strings"

	"go-rspfb"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed sql
var sqlDir embed.FS

// dbAction is a unit of work against the database, mirroring the
// teacher's DBAction: a closure queued onto a worker rather than run
// inline, so every statement against a *sql.DB is serialised through
// one goroutine.
type dbAction func(*sql.DB) error

// SQLite is a Store backed by a single SQLite file, opened in WAL
// mode. All statements run on one background worker reading from a
// channel of dbAction closures.
type SQLite struct {
	allowOverwrites bool

	db      *sql.DB
	queries map[string]*sql.Stmt
	acts    chan dbAction
	done    chan struct{}
}

// OpenSQLite opens (creating if necessary) the SQLite database at dsn,
// applies the pragmas the teacher's database manager uses, loads the
// embedded schema and prepared queries, and starts the worker.
func OpenSQLite(dsn string, allowOverwrites bool) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dsn+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dsn, err)
	}

	for _, pragma := range []string{
		"journal_mode = WAL",
		"synchronous = normal",
		"foreign_keys = on",
	} {
		if _, err := db.Exec("PRAGMA " + pragma + ";"); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: pragma %s: %w", pragma, err)
		}
	}

	s := &SQLite{
		allowOverwrites: allowOverwrites,
		db:              db,
		queries:         make(map[string]*sql.Stmt),
		acts:            make(chan dbAction, 8),
		done:            make(chan struct{}),
	}

	if err := s.loadSchema(); err != nil {
		db.Close()
		return nil, err
	}

	go s.worker()
	return s, nil
}

func (s *SQLite) loadSchema() error {
	return fs.WalkDir(sqlDir, "sql", func(file string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
		}

		data, err := fs.ReadFile(sqlDir, file)
		if err != nil {
			return err
		}

		base := path.Base(file)
		if strings.HasPrefix(base, "create-") {
			_, err = s.db.Exec(string(data))
			return err
		}

		stmt, err := s.db.Prepare(string(data))
		if err != nil {
			return fmt.Errorf("store: prepare %s: %w", base, err)
		}
		s.queries[strings.TrimSuffix(base, ".sql")] = stmt
		return nil
	})
}

func (s *SQLite) worker() {
	for act := range s.acts {
		if err := act(s.db); err != nil {
			log.Println(err)
		}
	}
	close(s.done)
}

// Close stops accepting new actions and waits for the worker to drain
func (s *SQLite) Close() error {
	close(s.acts)
	<-s.done
	return s.db.Close()
}

// run submits act to the worker and blocks for its result, respecting
// ctx cancellation while waiting to be scheduled.
func (s *SQLite) run(ctx context.Context, act dbAction) error {
	errc := make(chan error, 1)
	wrapped := func(db *sql.DB) error {
		err := act(db)
		errc <- err
		return err
	}

	select {
	case s.acts <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func homeUser(g *rspfb.Game) string {
	if v := g.Players[rspfb.Home]; v != nil {
		return *v
	}
	return ""
}

func awayUser(g *rspfb.Game) *string {
	return g.Players[rspfb.Away]
}

func (s *SQLite) Create(ctx context.Context, g *rspfb.Game) error {
	return s.run(ctx, func(db *sql.DB) error {
		data, err := json.Marshal(g)
		if err != nil {
			return err
		}

		query := "insert-game"
		if s.allowOverwrites {
			query = "upsert-game"
		}

		_, err = s.queries[query].ExecContext(ctx, g.GameId, g.Version, homeUser(g), awayUser(g), data)
		if err != nil && !s.allowOverwrites && isUniqueViolation(err) {
			return ErrExists
		}
		return err
	})
}

func (s *SQLite) Load(ctx context.Context, gameId string) (*rspfb.Game, error) {
	var out *rspfb.Game
	err := s.run(ctx, func(db *sql.DB) error {
		var data []byte
		err := s.queries["select-game"].QueryRowContext(ctx, gameId).Scan(&data)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var g rspfb.Game
		if err := json.Unmarshal(data, &g); err != nil {
			return err
		}
		out = &g
		return nil
	})
	return out, err
}

func (s *SQLite) ConditionalPut(ctx context.Context, g *rspfb.Game, expectedVersion int64) error {
	return s.run(ctx, func(db *sql.DB) error {
		next := *g
		next.Version = expectedVersion + 1
		data, err := json.Marshal(&next)
		if err != nil {
			return err
		}

		res, err := s.queries["update-game"].ExecContext(ctx,
			next.Version, homeUser(g), awayUser(g), data, g.GameId, expectedVersion)
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			var exists int
			err := db.QueryRowContext(ctx, "SELECT 1 FROM games WHERE game_id = ?", g.GameId).Scan(&exists)
			if err == sql.ErrNoRows {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			return ErrConflict
		}
		g.Version = next.Version
		return nil
	})
}

func (s *SQLite) List(ctx context.Context, filter ListFilter) ([]*rspfb.Game, error) {
	var out []*rspfb.Game
	err := s.run(ctx, func(db *sql.DB) error {
		rows, err := s.queries["select-all-games"].QueryContext(ctx)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var data []byte
			if err := rows.Scan(&data); err != nil {
				return err
			}

			var g rspfb.Game
			if err := json.Unmarshal(data, &g); err != nil {
				return err
			}

			if filter.AvailableOnly && g.Players[rspfb.Away] != nil {
				continue
			}
			if filter.User != "" {
				if _, ok := g.PlayerFor(filter.User); !ok {
					continue
				}
			}
			out = append(out, &g)
		}
		return rows.Err()
	})
	return out, err
}

// isUniqueViolation reports whether err is a SQLite primary-key
// conflict. go-sqlite3 surfaces this as a driver-specific error type;
// matching on its message keeps this file free of a direct type
// assertion against an internal driver package.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
