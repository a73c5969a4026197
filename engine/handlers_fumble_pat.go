// Fumble and point-after-touchdown handlers
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
		States:  []rspfb.State{rspfb.Fumble},
		Actions: []rspfb.ActionName{rspfb.ActionRSP},
		Handle:  handleFumble,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.PatChoiceState},
		Actions: []rspfb.ActionName{rspfb.ActionPatChoice},
		Handle:  handlePatChoice,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.ExtraPoint},
		Actions: []rspfb.ActionName{rspfb.ActionRoll},
		Handle:  handleExtraPointKick,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.ExtraPoint2},
		Actions: []rspfb.ActionName{rspfb.ActionRSP},
		Handle:  handleTwoPointConversion,
	})
}

// handleFumble resolves the RSP: the defender recovering switches
// possession and, unlike the regular turnover clamp, only resets the
// ball spot to 20 in this branch. A tie or the offense winning retains
// possession untouched. Either way setCallPlayState then endPlay run
// unconditionally, matching the source's literal double call.
func handleFumble(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	return resolveRSP(g, player, action, func(winner *rspfb.Player) {
		possessor := *g.Possession

		if winner != nil && *winner == possessor.Opponent() {
			switchPossession(g)
			appendResult(g, rspfb.Result{Name: rspfb.ResultTurnover, Turnover: rspfb.TurnoverFumble})
			if g.Ballpos <= 0 {
				g.Ballpos = 20
			}
			setFirstDown(g)
			g.Down = 0
		}

		setCallPlayState(g)
		endPlay(g)
	})
}

func handlePatChoice(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	g.Ballpos = 95

	switch rspfb.PatChoice(action.Choice) {
	case rspfb.OnePoint:
		g.State = rspfb.ExtraPoint
		g.Actions[*g.Possession] = []rspfb.ActionName{rspfb.ActionRoll}
	case rspfb.TwoPoint:
		g.State = rspfb.ExtraPoint2
		g.Actions[rspfb.Home] = []rspfb.ActionName{rspfb.ActionRSP}
		g.Actions[rspfb.Away] = []rspfb.ActionName{rspfb.ActionRSP}
	default:
		return illegal("unknown pat choice %q", action.Choice)
	}
	return nil
}

func handleExtraPointKick(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	return resolveRoll(g, player, action, roll, []int{2}, func(dice []int) {
		if sum(dice) >= 4 {
			g.Score[*g.Possession]++
			appendResult(g, rspfb.Result{Name: rspfb.ResultScore, Score: rspfb.ScorePat1})
		}
		endPat(g)
	})
}

func handleTwoPointConversion(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	return resolveRSP(g, player, action, func(winner *rspfb.Player) {
		if winner != nil && *winner == *g.Possession {
			g.Score[*g.Possession] += 2
			appendResult(g, rspfb.Result{Name: rspfb.ResultScore, Score: rspfb.ScorePat2})
		}
		endPat(g)
	})
}
