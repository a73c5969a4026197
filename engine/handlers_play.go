// Play-call, run and pass handlers
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

package engine

import (
	"go-rspfb"
	"go-rspfb/rng"
)

func init() {
	register(&Handler{
		States:  []rspfb.State{rspfb.PlayCall},
		Actions: []rspfb.ActionName{rspfb.ActionCallPlay},
		Handle:  handleCallPlay,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.ShortRun, rspfb.ShortRunCont},
		Actions: []rspfb.ActionName{rspfb.ActionRSP},
		Handle:  handleShortRun,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.ShortPass, rspfb.ShortPassCont},
		Actions: []rspfb.ActionName{rspfb.ActionRSP},
		Handle:  handleShortPass,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.LongRun},
		Actions: []rspfb.ActionName{rspfb.ActionRSP},
		Handle:  handleLongRun,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.LongRunRoll},
		Actions: []rspfb.ActionName{rspfb.ActionRoll},
		Handle:  handleLongRunRoll,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.LongPass},
		Actions: []rspfb.ActionName{rspfb.ActionRSP},
		Handle:  handleLongPass,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.LongPassRoll},
		Actions: []rspfb.ActionName{rspfb.ActionRoll},
		Handle:  handleLongPassRoll,
	})
}

func handleCallPlay(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	g.Play = playp(action.Play)

	switch action.Play {
	case rspfb.PlayShortRun:
		g.State = rspfb.ShortRun
	case rspfb.PlayLongRun:
		g.State = rspfb.LongRun
	case rspfb.PlayShortPass:
		g.State = rspfb.ShortPass
	case rspfb.PlayLongPass:
		g.State = rspfb.LongPass
	case rspfb.PlayBomb:
		g.State = rspfb.Bomb
	default:
		return illegal("unknown play %q", action.Play)
	}

	g.Actions[rspfb.Home] = []rspfb.ActionName{rspfb.ActionRSP}
	g.Actions[rspfb.Away] = []rspfb.ActionName{rspfb.ActionRSP}
	return nil
}

// continuationSpec captures what differs between the short-run and
// short-pass continuation chains; resolveContinuationPlay carries what
// they share (§9, handler reuse).
type continuationSpec struct {
	contState       rspfb.State
	play            rspfb.Play
	yards           int
	lossState       rspfb.State
	lossAction      rspfb.ActionName
	tieIsIncomplete bool
}

// resolveContinuationPlay implements the short-run/short-pass "win and
// go again, lose and concede a sack attempt, tie and end the play"
// shape. In the *_CONT state a loss is downgraded to a tie and a tie
// never appends a second result event (§9).
func resolveContinuationPlay(g *rspfb.Game, player rspfb.Player, action rspfb.Action, spec continuationSpec) error {
	cont := g.State == spec.contState

	return resolveRSP(g, player, action, func(winner *rspfb.Player) {
		possessor := *g.Possession

		switch {
		case winner != nil && *winner == possessor:
			g.Ballpos += spec.yards
			appendResult(g, rspfb.Result{Name: rspfb.ResultGain, Play: spec.play, Player: possessor, Yards: spec.yards})
			if g.Ballpos >= 100 {
				endPlay(g)
				return
			}
			g.State = spec.contState
			g.Actions[rspfb.Home] = []rspfb.ActionName{rspfb.ActionRSP}
			g.Actions[rspfb.Away] = []rspfb.ActionName{rspfb.ActionRSP}

		case winner != nil:
			if cont {
				endPlay(g)
				return
			}
			g.State = spec.lossState
			g.Actions[possessor.Opponent()] = []rspfb.ActionName{spec.lossAction}

		default:
			if spec.tieIsIncomplete && !cont {
				appendResult(g, rspfb.Result{Name: rspfb.ResultIncompletePass})
			}
			endPlay(g)
		}
	})
}

func handleShortRun(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	return resolveContinuationPlay(g, player, action, continuationSpec{
		contState:  rspfb.ShortRunCont,
		play:       rspfb.PlayShortRun,
		yards:      5,
		lossState:  rspfb.SackRoll,
		lossAction: rspfb.ActionRoll,
	})
}

func handleShortPass(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	return resolveContinuationPlay(g, player, action, continuationSpec{
		contState:       rspfb.ShortPassCont,
		play:            rspfb.PlayShortPass,
		yards:           10,
		lossState:       rspfb.SackChoiceState,
		lossAction:      rspfb.ActionSackChoice,
		tieIsIncomplete: true,
	})
}

func handleLongRun(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	return resolveRSP(g, player, action, func(winner *rspfb.Player) {
		possessor := *g.Possession
		switch {
		case winner != nil && *winner == possessor:
			g.State = rspfb.LongRunRoll
			g.Actions[possessor] = []rspfb.ActionName{rspfb.ActionRoll}
		case winner != nil:
			g.State = rspfb.SackRoll
			g.Actions[possessor.Opponent()] = []rspfb.ActionName{rspfb.ActionRoll}
		default:
			endPlay(g)
		}
	})
}

// handleLongRunRoll emits a LONG_RUN gain, diverging from the source's
// SHORT_RUN mislabel here (§9 open question).
func handleLongRunRoll(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	return resolveRoll(g, player, action, roll, []int{1}, func(dice []int) {
		distance := 5 * dice[0]
		g.Ballpos += distance
		appendResult(g, rspfb.Result{Name: rspfb.ResultGain, Play: rspfb.PlayLongRun, Player: *g.Possession, Yards: distance})

		if dice[0] == 1 {
			g.State = rspfb.Fumble
			g.Actions[rspfb.Home] = []rspfb.ActionName{rspfb.ActionRSP}
			g.Actions[rspfb.Away] = []rspfb.ActionName{rspfb.ActionRSP}
			return
		}
		endPlay(g)
	})
}

func handleLongPass(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	return resolveRSP(g, player, action, func(winner *rspfb.Player) {
		possessor := *g.Possession
		switch {
		case winner != nil && *winner == possessor:
			g.State = rspfb.LongPassRoll
			g.Actions[possessor] = []rspfb.ActionName{rspfb.ActionRoll}
		case winner != nil:
			g.State = rspfb.SackChoiceState
			g.Actions[possessor.Opponent()] = []rspfb.ActionName{rspfb.ActionSackChoice}
		default:
			appendResult(g, rspfb.Result{Name: rspfb.ResultIncompletePass})
			endPlay(g)
		}
	})
}

func handleLongPassRoll(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	return resolveRoll(g, player, action, roll, []int{1}, func(dice []int) {
		distance := 10 + 5*dice[0]
		if g.Ballpos+distance >= 110 {
			appendResult(g, rspfb.Result{Name: rspfb.ResultOutOfBoundsPass})
		} else {
			g.Ballpos += distance
			appendResult(g, rspfb.Result{Name: rspfb.ResultGain, Play: rspfb.PlayLongPass, Player: *g.Possession, Yards: distance})
		}
		endPlay(g)
	})
}
