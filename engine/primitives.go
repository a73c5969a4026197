// State-machine primitives
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

// Package engine is the game state machine and action-dispatch pipeline
// core: the shared transition primitives (§4.4), the handler catalogue
// (§4.5), and the (State, ActionName) dispatch table (§9).
//
// Handlers mutate the Game in place, mirroring board.go's style in the
// teacher repository rather than returning a new Game on every transition.
package engine

import (
	"go-rspfb"
)

func intp(v int) *int { return &v }

func playerp(p rspfb.Player) *rspfb.Player { return &p }

func playp(p rspfb.Play) *rspfb.Play { return &p }

// appendResult appends an entry to the per-turn event log
func appendResult(g *rspfb.Game, r rspfb.Result) {
	g.Result = append(g.Result, r)
}

// switchPossession swaps the offense and mirrors the ball position
func switchPossession(g *rspfb.Game) {
	next := g.Possession.Opponent()
	g.Possession = &next
	g.Ballpos = 100 - g.Ballpos
}

// setFirstDown resets the down counter and marks a fresh first-down line
func setFirstDown(g *rspfb.Game) {
	g.Down = 1
	line := g.Ballpos + 10
	if line > 100 {
		line = 100
	}
	g.FirstDown = intp(line)
}

// setGameOver ends the game; neither player may act further
func setGameOver(g *rspfb.Game) {
	g.State = rspfb.GameOver
	g.Actions = map[rspfb.Player][]rspfb.ActionName{
		rspfb.Home: {},
		rspfb.Away: {},
	}
}

// setCallPlayState returns control to the offense to call the next play
func setCallPlayState(g *rspfb.Game) {
	g.State = rspfb.PlayCall
	g.Actions[*g.Possession] = []rspfb.ActionName{rspfb.ActionCallPlay, rspfb.ActionPenalty}
	g.Actions[g.Possession.Opponent()] = []rspfb.ActionName{rspfb.ActionPoll, rspfb.ActionPenalty}
	g.Play = nil
}

// setKickoffState lines the ball up for the next kickoff
func setKickoffState(g *rspfb.Game, yardline int) {
	g.Ballpos = yardline
	g.FirstDown = nil
	g.State = rspfb.KickoffChoiceState
	g.Actions[*g.Possession] = []rspfb.ActionName{rspfb.ActionKickoffChoice}
}

// touchdown credits the offense and moves to the PAT decision
func touchdown(g *rspfb.Game) {
	g.Score[*g.Possession] += 6
	appendResult(g, rspfb.Result{Name: rspfb.ResultScore, Score: rspfb.ScoreTouchdown})
	g.State = rspfb.PatChoiceState
	g.Actions[*g.Possession] = []rspfb.ActionName{rspfb.ActionPatChoice}
	g.Actions[g.Possession.Opponent()] = []rspfb.ActionName{rspfb.ActionPoll}
}

// safety credits the defense and, unless the game has ended, lines the
// scored-on team up to kick off again. Possession is not switched: the
// team that conceded the safety is the one that now kicks.
func safety(g *rspfb.Game) {
	g.Score[g.Possession.Opponent()] += 2
	appendResult(g, rspfb.Result{Name: rspfb.ResultScore, Score: rspfb.ScoreSafety})

	if g.Ballpos <= -10 {
		g.Ballpos = -5
	}

	if g.PlayCount > rspfb.GameLength {
		setGameOver(g)
	} else {
		setKickoffState(g, 20)
	}
}

// endPlay closes out the current down: it applies the touchdown/safety/
// game-over checks, advances the down/first-down bookkeeping, and
// finally hands control back to the offense via setCallPlayState,
// unless a touchdown, safety or game over already set the next state.
func endPlay(g *rspfb.Game) {
	g.Play = nil
	g.PlayCount++
	g.Down++

	if g.Ballpos >= 100 {
		touchdown(g)
		return
	}
	if g.Ballpos <= 0 {
		safety(g)
		return
	}
	if g.PlayCount > rspfb.GameLength {
		setGameOver(g)
		return
	}

	if g.FirstDown != nil && g.Ballpos >= *g.FirstDown {
		setFirstDown(g)
	} else if g.Down > 4 {
		switchPossession(g)
		setFirstDown(g)
		appendResult(g, rspfb.Result{Name: rspfb.ResultTurnover, Turnover: rspfb.TurnoverDowns})
	}
	setCallPlayState(g)
}

// endPat either ends the game or lines up the scoring team's kickoff
func endPat(g *rspfb.Game) {
	if g.PlayCount > rspfb.GameLength {
		setGameOver(g)
	} else {
		setKickoffState(g, 35)
	}
}

// completeInterception resolves an interception for a throw of the given
// length: it either rules the pass out of bounds, or hands the ball to
// the defender at the new spot, giving them a touchback choice or a
// return roll depending on where the interception landed.
func completeInterception(g *rspfb.Game, throw int) {
	defender := g.Possession.Opponent()

	if g.Ballpos+throw >= 110 {
		appendResult(g, rspfb.Result{Name: rspfb.ResultOutOfBoundsPass})
		endPlay(g)
		return
	}

	g.Ballpos += throw
	if g.Ballpos >= 100 {
		g.State = rspfb.PickTouchbackChoice
		g.Actions[defender] = []rspfb.ActionName{rspfb.ActionTouchbackChoice}
	} else {
		g.State = rspfb.PickReturn
		g.Actions[defender] = []rspfb.ActionName{rspfb.ActionRoll}
	}

	appendResult(g, rspfb.Result{Name: rspfb.ResultTurnover, Turnover: rspfb.TurnoverPick})
	switchPossession(g)
	g.FirstDown = nil
}

// completePickReturn closes out an interception return: the new offense
// gets a fresh first down without crediting the down that was already
// in progress when the pick happened.
func completePickReturn(g *rspfb.Game) {
	setFirstDown(g)
	g.Down = 0
	endPlay(g)
}

// endBomb resolves the accumulated dice for a bomb attempt: an even sum
// is an incomplete pass, an odd sum travels max(35, 5*sum) yards.
func endBomb(g *rspfb.Game) {
	sum := 0
	for _, r := range g.Roll {
		sum += r
	}

	if sum%2 == 0 {
		appendResult(g, rspfb.Result{Name: rspfb.ResultIncompletePass})
		endPlay(g)
		return
	}

	distance := 5 * sum
	if distance < 35 {
		distance = 35
	}

	if g.Ballpos+distance >= 110 {
		appendResult(g, rspfb.Result{Name: rspfb.ResultOutOfBoundsPass})
	} else {
		g.Ballpos += distance
		appendResult(g, rspfb.Result{Name: rspfb.ResultGain, Play: rspfb.PlayBomb, Player: *g.Possession, Yards: distance})
	}
	endPlay(g)
}
