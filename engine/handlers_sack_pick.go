// Sack and interception handlers
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
		States:  []rspfb.State{rspfb.SackRoll},
		Actions: []rspfb.ActionName{rspfb.ActionRoll},
		Handle:  handleSackRoll,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.SackChoiceState},
		Actions: []rspfb.ActionName{rspfb.ActionSackChoice},
		Handle:  handleSackChoice,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.PickRoll},
		Actions: []rspfb.ActionName{rspfb.ActionRoll},
		Handle:  handlePickRoll,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.DistanceRoll},
		Actions: []rspfb.ActionName{rspfb.ActionRoll},
		Handle:  handleDistanceRoll,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.PickReturn},
		Actions: []rspfb.ActionName{rspfb.ActionRoll},
		Handle:  handlePickReturn,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.PickReturn6},
		Actions: []rspfb.ActionName{rspfb.ActionRoll},
		Handle:  handlePickReturn6,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.PickTouchbackChoice},
		Actions: []rspfb.ActionName{rspfb.ActionTouchbackChoice},
		Handle:  handlePickTouchbackChoice,
	})
}

func handleSackRoll(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	return resolveRoll(g, player, action, roll, []int{1}, func(dice []int) {
		r := dice[0]
		var distance int
		switch *g.Play {
		case rspfb.PlayShortRun:
			if r >= 5 {
				distance = 5
			}
		case rspfb.PlayLongRun:
			if r == 6 {
				distance = 10
			} else {
				distance = 5
			}
		}

		g.Ballpos -= distance
		appendResult(g, rspfb.Result{Name: rspfb.ResultLoss, Play: *g.Play, Player: *g.Possession, Yards: distance})
		endPlay(g)
	})
}

func handleSackChoice(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	switch rspfb.SackChoice(action.Choice) {
	case rspfb.Sack:
		var distance int
		switch *g.Play {
		case rspfb.PlayShortPass:
			distance = 5
		case rspfb.PlayLongPass:
			distance = 10
		case rspfb.PlayBomb:
			distance = 15
		}
		g.Ballpos -= distance
		appendResult(g, rspfb.Result{Name: rspfb.ResultLoss, Play: *g.Play, Player: *g.Possession, Yards: distance})
		endPlay(g)
	case rspfb.Pick:
		g.State = rspfb.PickRoll
		g.Actions[g.Possession.Opponent()] = []rspfb.ActionName{rspfb.ActionRoll}
	default:
		return illegal("unknown sack choice %q", action.Choice)
	}
	return nil
}

func handlePickRoll(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	return resolveRoll(g, player, action, roll, []int{1}, func(dice []int) {
		r := dice[0]
		var success bool
		switch *g.Play {
		case rspfb.PlayShortPass:
			success = r == 6
		case rspfb.PlayLongPass:
			success = r >= 5
		case rspfb.PlayBomb:
			success = r%2 == 0
		}

		if !success {
			appendResult(g, rspfb.Result{Name: rspfb.ResultIncompletePass})
			endPlay(g)
			return
		}

		if *g.Play == rspfb.PlayShortPass {
			completeInterception(g, 10)
			return
		}

		// The pre-switch offense rolls for interception distance;
		// possession has not moved yet at this point.
		g.State = rspfb.DistanceRoll
		g.Actions[*g.Possession] = []rspfb.ActionName{rspfb.ActionRoll}
	})
}

func handleDistanceRoll(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	var allowed int
	switch *g.Play {
	case rspfb.PlayLongPass:
		allowed = 1
	case rspfb.PlayBomb:
		allowed = 3
	default:
		return illegal("distance roll not valid for play %s", *g.Play)
	}

	return resolveRoll(g, player, action, roll, []int{allowed}, func(dice []int) {
		total := sum(dice)
		var distance int
		if *g.Play == rspfb.PlayLongPass {
			distance = 10 + 5*total
		} else {
			distance = 5 * total
		}
		completeInterception(g, distance)
	})
}

func handlePickReturn(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	return resolveRoll(g, player, action, roll, []int{1}, func(dice []int) {
		g.Ballpos += 5 * dice[0]
		if dice[0] == 6 {
			g.State = rspfb.PickReturn6
			g.Actions[*g.Possession] = []rspfb.ActionName{rspfb.ActionRoll}
			return
		}
		completePickReturn(g)
	})
}

func handlePickReturn6(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	return resolveRoll(g, player, action, roll, []int{1}, func(dice []int) {
		if dice[0] == 6 {
			g.Ballpos = 100
			endPlay(g)
			return
		}
		g.Ballpos += 5 * dice[0]
		completePickReturn(g)
	})
}

func handlePickTouchbackChoice(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	switch rspfb.TouchbackChoice(action.Choice) {
	case rspfb.Touchback:
		appendResult(g, rspfb.Result{Name: rspfb.ResultTouchback})
		g.Ballpos = 20
		completePickReturn(g)
	case rspfb.Return:
		g.State = rspfb.PickReturn
		g.Actions[player] = []rspfb.ActionName{rspfb.ActionRoll}
	default:
		return illegal("unknown touchback choice %q", action.Choice)
	}
	return nil
}
