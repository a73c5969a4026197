// Bomb play handlers
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
		States:  []rspfb.State{rspfb.Bomb},
		Actions: []rspfb.ActionName{rspfb.ActionRSP},
		Handle:  handleBomb,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.BombRoll},
		Actions: []rspfb.ActionName{rspfb.ActionRoll},
		Handle:  handleBombRoll,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.BombChoiceState},
		Actions: []rspfb.ActionName{rspfb.ActionRollAgainChoice},
		Handle:  handleBombChoice,
	})
}

func handleBomb(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	return resolveRSP(g, player, action, func(winner *rspfb.Player) {
		possessor := *g.Possession
		switch {
		case winner != nil && *winner == possessor:
			g.Roll = []int{}
			g.State = rspfb.BombRoll
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

func handleBombRoll(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	return resolveRoll(g, player, action, roll, []int{1}, func(dice []int) {
		advanceBomb(g, dice[0])
	})
}

// handleBombChoice rolls inline on ROLL, mirroring KickReturn1's
// ROLL_AGAIN_CHOICE handling: the choice action itself performs the
// roll rather than merely transitioning to a ROLL-accepting state.
func handleBombChoice(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	if rspfb.RollAgainChoice(action.Choice) == rspfb.Hold {
		endBomb(g)
		return nil
	}

	dice := roll.Roll(1)
	appendResult(g, rspfb.Result{Name: rspfb.ResultRoll, Player: player, Roll: dice})
	advanceBomb(g, dice[0])
	return nil
}

// advanceBomb appends a die to the accumulated bomb roll and decides
// whether to finalize (three dice thrown), force another roll (running
// total even), or offer a hold/roll-again choice (running total odd).
func advanceBomb(g *rspfb.Game, die int) {
	g.Roll = append(g.Roll, die)

	if len(g.Roll) == 3 {
		endBomb(g)
		return
	}
	if sum(g.Roll)%2 == 0 {
		g.State = rspfb.BombRoll
		g.Actions[*g.Possession] = []rspfb.ActionName{rspfb.ActionRoll}
		return
	}
	g.State = rspfb.BombChoiceState
	g.Actions[*g.Possession] = []rspfb.ActionName{rspfb.ActionRollAgainChoice}
}
