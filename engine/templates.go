// Shared RSP- and roll-resolving templates
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

package engine

import (
	"go-rspfb"
	"go-rspfb/rng"
)

// rspWinner returns the winning player, or nil for a tie
func rspWinner(home, away rspfb.RSPChoice) *rspfb.Player {
	if home == away {
		return nil
	}
	if home.Beats(away) {
		return playerp(rspfb.Home)
	}
	return playerp(rspfb.Away)
}

// resolveRSP batches both players' RSP submissions (§9, "RSP-resolving
// template"): it records the submitter's choice, and once both sides
// have thrown, appends the RspResult, clears the pending choices, and
// invokes onResolved with the winner (nil for a tie). Until both sides
// have thrown, only the opponent's permitted action set is touched.
func resolveRSP(g *rspfb.Game, player rspfb.Player, action rspfb.Action, onResolved func(winner *rspfb.Player)) error {
	choice := rspfb.RSPChoice(action.Choice)
	g.RSP[player] = &choice

	opponent := player.Opponent()
	if g.RSP[opponent] == nil {
		g.Actions[opponent] = []rspfb.ActionName{rspfb.ActionRSP}
		return nil
	}

	home, away := g.RSP[rspfb.Home], g.RSP[rspfb.Away]
	appendResult(g, rspfb.Result{Name: rspfb.ResultRSP, Home: *home, Away: *away})
	winner := rspWinner(*home, *away)

	g.RSP[rspfb.Home] = nil
	g.RSP[rspfb.Away] = nil

	onResolved(winner)
	return nil
}

// resolveRoll validates the requested die count, rolls the dice,
// appends the RollResult, and invokes onRolled (§9, "roll-validating
// template").
func resolveRoll(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source, allowed []int, onRolled func(roll []int)) error {
	ok := false
	for _, n := range allowed {
		if action.Count == n {
			ok = true
			break
		}
	}
	if !ok {
		return illegal("must roll %v dice in state %s", allowed, g.State)
	}

	rolled := roll.Roll(action.Count)
	appendResult(g, rspfb.Result{Name: rspfb.ResultRoll, Player: player, Roll: rolled})
	onRolled(rolled)
	return nil
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
