// Action dispatch pipeline and long-poll query
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

// Package pipeline is the action-dispatch pipeline (§4.3) and the
// long-poll query (§4.6). Handlers in package engine never perform I/O;
// this package is where persistence and the state machine meet. Game
// creation, joining and listing go to the Store directly from package web.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go-rspfb"
	"go-rspfb/engine"
	"go-rspfb/rng"
	"go-rspfb/store"
)

// ClientError is a request-shaped failure (§7, kind 1): bad gameId,
// wrong player, disallowed action, or a handler-raised IllegalAction.
// The web layer maps it to a 400.
type ClientError struct {
	Msg string
}

func (e *ClientError) Error() string { return e.Msg }

func clientError(format string, args ...interface{}) error {
	return &ClientError{Msg: fmt.Sprintf(format, args...)}
}

// Pipeline wires the Store, the action dispatcher and the random
// source together under the retry and poll budgets of §6.
type Pipeline struct {
	Store store.Store
	Roll  rng.Source

	MaxUpdateAttempts uint
	MaxPollTime       time.Duration
	PollInterval      time.Duration
}

// New returns a Pipeline ready to process actions
func New(st store.Store, roll rng.Source, maxUpdateAttempts uint, maxPollTime, pollInterval time.Duration) *Pipeline {
	return &Pipeline{
		Store:             st,
		Roll:              roll,
		MaxUpdateAttempts: maxUpdateAttempts,
		MaxPollTime:       maxPollTime,
		PollInterval:      pollInterval,
	}
}

// ProcessAction implements §4.3's dispatch pipeline: load, validate,
// snapshot, dispatch, conditional write, retrying on a version
// conflict up to MaxUpdateAttempts times.
func (p *Pipeline) ProcessAction(ctx context.Context, gameId, user string, action rspfb.Action) (*rspfb.Game, error) {
	var lastErr error

	for attempt := uint(0); attempt < p.MaxUpdateAttempts; attempt++ {
		g, err := p.Store.Load(ctx, gameId)
		if err == store.ErrNotFound {
			return nil, clientError("Game not found")
		}
		if err != nil {
			return nil, err
		}

		player, ok := g.PlayerFor(user)
		if !ok {
			return nil, clientError("Player not in game")
		}
		if !g.Allows(player, action.Name) {
			return nil, clientError("Action not allowed")
		}

		snapshot := g.Version
		g.Result = []rspfb.Result{}
		g.Actions = map[rspfb.Player][]rspfb.ActionName{
			rspfb.Home: {rspfb.ActionPoll},
			rspfb.Away: {rspfb.ActionPoll},
		}

		if err := engine.Dispatch(g, player, action, p.Roll); err != nil {
			if illegal, ok := err.(*engine.IllegalAction); ok {
				return nil, clientError("Illegal action: %s", illegal.Msg)
			}
			return nil, err
		}

		err = p.Store.ConditionalPut(ctx, g, snapshot)
		switch err {
		case nil:
			return g, nil
		case store.ErrNotFound:
			return nil, clientError("Game not found")
		case store.ErrConflict:
			lastErr = err
			continue
		default:
			return nil, err
		}
	}

	if lastErr == nil {
		return nil, fmt.Errorf("Failed to update game: MaxUpdateAttempts is %d, must be at least 1", p.MaxUpdateAttempts)
	}
	return nil, fmt.Errorf("Failed to update game: %w", lastErr)
}

// Poll implements §4.6: block until the stored version advances past
// clientVersion, or MaxPollTime elapses, then return the snapshot.
func (p *Pipeline) Poll(ctx context.Context, gameId string, clientVersion int64) (*rspfb.Game, error) {
	deadline := time.Now().Add(p.MaxPollTime)

	for {
		g, err := p.Store.Load(ctx, gameId)
		if err == store.ErrNotFound {
			return nil, clientError("Game not found")
		}
		if err != nil {
			return nil, err
		}

		if g.Version > clientVersion || time.Now().After(deadline) {
			return g, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.PollInterval):
		}
	}
}
