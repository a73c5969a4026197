// In-process Store
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

package store

import (
	"context"
	"encoding/json"
	"sync"

	"go-rspfb"
)

// Memory is a Store backed by a mutex-guarded map, suitable for tests
// and single-process deployments with no durability requirement.
type Memory struct {
	allowOverwrites bool

	mu    sync.Mutex
	games map[string]*rspfb.Game
}

// NewMemory returns an empty Memory store
func NewMemory(allowOverwrites bool) *Memory {
	return &Memory{
		allowOverwrites: allowOverwrites,
		games:           make(map[string]*rspfb.Game),
	}
}

// clone round-trips through JSON so callers can never mutate stored
// state through a returned pointer.
func clone(g *rspfb.Game) *rspfb.Game {
	data, err := json.Marshal(g)
	if err != nil {
		panic(err)
	}
	var out rspfb.Game
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}

func (m *Memory) Create(_ context.Context, g *rspfb.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.games[g.GameId]; exists && !m.allowOverwrites {
		return ErrExists
	}
	m.games[g.GameId] = clone(g)
	return nil
}

func (m *Memory) Load(_ context.Context, gameId string) (*rspfb.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[gameId]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(g), nil
}

func (m *Memory) ConditionalPut(_ context.Context, g *rspfb.Game, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.games[g.GameId]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != expectedVersion {
		return ErrConflict
	}

	g.Version = expectedVersion + 1
	m.games[g.GameId] = clone(g)
	return nil
}

func (m *Memory) List(_ context.Context, filter ListFilter) ([]*rspfb.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*rspfb.Game
	for _, g := range m.games {
		if filter.AvailableOnly && g.Players[rspfb.Away] != nil {
			continue
		}
		if filter.User != "" {
			if _, ok := g.PlayerFor(filter.User); !ok {
				continue
			}
		}
		out = append(out, clone(g))
	}
	return out, nil
}
