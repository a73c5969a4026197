// Action dispatch table
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

package engine

import (
	"fmt"

	"go-rspfb"
	"go-rspfb/rng"
)

// IllegalAction is raised by a handler when an action's payload is
// well-formed but not legal in context (e.g. a die-count mismatch). The
// pipeline surfaces this as a client error, not a fault.
type IllegalAction struct {
	Msg string
}

func (e *IllegalAction) Error() string { return e.Msg }

func illegal(format string, args ...interface{}) error {
	return &IllegalAction{Msg: fmt.Sprintf(format, args...)}
}

// Handler encapsulates the legal state set and accepted action kind(s)
// for one slice of the state machine, plus the mutation it performs.
// This mirrors the source's class-based ActionHandler (states/actions
// class attributes + handle_action method), modelled here as a record
// of functions rather than a type hierarchy (§9).
type Handler struct {
	States  []rspfb.State
	Actions []rspfb.ActionName
	Handle  func(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error
}

type dispatchKey struct {
	state  rspfb.State
	action rspfb.ActionName
}

var table = map[dispatchKey]*Handler{}

// register adds a handler to the dispatch table, keyed by every
// (state, action) pair it advertises. A duplicate key is a startup-time
// error (§9, Handler-registration property), not something handled at
// request time.
func register(h *Handler) {
	for _, s := range h.States {
		for _, a := range h.Actions {
			k := dispatchKey{s, a}
			if _, exists := table[k]; exists {
				panic(fmt.Sprintf("engine: duplicate handler registered for (%s, %s)", s, a))
			}
			table[k] = h
		}
	}
}

// Dispatch looks up and invokes the handler for the game's current state
// and the action's name. The absence of a handler is a programming error
// per §4.3 step 5, not a bad request, so Dispatch panics rather than
// returning a sentinel error. POLL and PENALTY appear in permitted action
// sets but no handler accepts them, so submitting either one reaches
// this panic.
func Dispatch(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	h, ok := table[dispatchKey{g.State, action.Name}]
	if !ok {
		panic(fmt.Sprintf("engine: no handler for action %s in state %s", action.Name, g.State))
	}
	return h.Handle(g, player, action, roll)
}
