// Coin toss, kickoff election and kickoff handlers
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
		States:  []rspfb.State{rspfb.CoinToss},
		Actions: []rspfb.ActionName{rspfb.ActionRSP},
		Handle:  handleCoinToss,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.KickoffElection},
		Actions: []rspfb.ActionName{rspfb.ActionKickoffElection},
		Handle:  handleKickoffElection,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.KickoffChoiceState},
		Actions: []rspfb.ActionName{rspfb.ActionKickoffChoice},
		Handle:  handleKickoffChoice,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.Kickoff},
		Actions: []rspfb.ActionName{rspfb.ActionRoll},
		Handle:  handleKickoff,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.OnsideKick},
		Actions: []rspfb.ActionName{rspfb.ActionRoll},
		Handle:  handleOnsideKick,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.KickReturn},
		Actions: []rspfb.ActionName{rspfb.ActionRoll},
		Handle:  handleKickReturn,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.KickReturn6},
		Actions: []rspfb.ActionName{rspfb.ActionRoll},
		Handle:  handleKickReturn6,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.KickReturn1},
		Actions: []rspfb.ActionName{rspfb.ActionRollAgainChoice},
		Handle:  handleKickReturn1,
	})
	register(&Handler{
		States:  []rspfb.State{rspfb.TouchbackChoiceState},
		Actions: []rspfb.ActionName{rspfb.ActionTouchbackChoice},
		Handle:  handleTouchbackChoice,
	})
}

// handleCoinToss resolves the opening RSP. A tie is a redo; a decisive
// winner moves to the kickoff election.
func handleCoinToss(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	return resolveRSP(g, player, action, func(winner *rspfb.Player) {
		if winner == nil {
			g.Actions[rspfb.Home] = []rspfb.ActionName{rspfb.ActionRSP}
			g.Actions[rspfb.Away] = []rspfb.ActionName{rspfb.ActionRSP}
			return
		}
		g.State = rspfb.KickoffElection
		g.Actions[*winner] = []rspfb.ActionName{rspfb.ActionKickoffElection}
		g.Actions[winner.Opponent()] = []rspfb.ActionName{rspfb.ActionPoll}
	})
}

func handleKickoffElection(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	kicker := player
	if rspfb.KickoffElectionChoice(action.Choice) == rspfb.Recieve {
		kicker = player.Opponent()
	}

	g.FirstKick = playerp(kicker)
	g.Possession = playerp(kicker)
	appendResult(g, rspfb.Result{Name: rspfb.ResultKickoffElection, Choice: rspfb.KickoffElectionChoice(action.Choice)})
	setKickoffState(g, 35)
	return nil
}

func handleKickoffChoice(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	switch rspfb.KickoffChoice(action.Choice) {
	case rspfb.Regular:
		g.State = rspfb.Kickoff
	case rspfb.Onside:
		g.State = rspfb.OnsideKick
	default:
		return illegal("unknown kickoff choice %q", action.Choice)
	}
	g.Actions[player] = []rspfb.ActionName{rspfb.ActionRoll}
	return nil
}

func handleKickoff(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	return resolveRoll(g, player, action, roll, []int{3}, func(dice []int) {
		g.Play = nil
		g.Ballpos += 5 * sum(dice)
		switchPossession(g)

		switch {
		case sum(dice) <= 8:
			appendResult(g, rspfb.Result{Name: rspfb.ResultOutOfBoundsKick})
			g.Ballpos = 40
			setFirstDown(g)
			setCallPlayState(g)
		case g.Ballpos <= -10:
			g.Ballpos = 20
			setFirstDown(g)
			setCallPlayState(g)
		case g.Ballpos <= 0:
			g.State = rspfb.TouchbackChoiceState
			g.Actions[*g.Possession] = []rspfb.ActionName{rspfb.ActionTouchbackChoice}
		default:
			g.State = rspfb.KickReturn
			g.Actions[*g.Possession] = []rspfb.ActionName{rspfb.ActionRoll}
		}
	})
}

func handleOnsideKick(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	return resolveRoll(g, player, action, roll, []int{2}, func(dice []int) {
		g.Ballpos += 10
		if sum(dice) > 5 {
			switchPossession(g)
		}
		setCallPlayState(g)
		setFirstDown(g)
	})
}

func handleKickReturn(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	return resolveRoll(g, player, action, roll, []int{1}, func(dice []int) {
		r := dice[0]
		g.Ballpos += 5 * r

		switch r {
		case 1:
			g.State = rspfb.KickReturn1
			g.Actions[*g.Possession] = []rspfb.ActionName{rspfb.ActionRollAgainChoice}
		case 6:
			g.State = rspfb.KickReturn6
			g.Actions[*g.Possession] = []rspfb.ActionName{rspfb.ActionRoll}
		default:
			setCallPlayState(g)
			setFirstDown(g)
		}
	})
}

func handleKickReturn6(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	return resolveRoll(g, player, action, roll, []int{1}, func(dice []int) {
		if dice[0] == 6 {
			touchdown(g)
			return
		}
		g.Ballpos += 5 * dice[0]
		setFirstDown(g)
		setCallPlayState(g)
	})
}

// handleKickReturn1 is not a roll-resolving handler in the generic
// sense: ROLL_AGAIN_CHOICE itself decides whether a die is even thrown.
func handleKickReturn1(g *rspfb.Game, player rspfb.Player, action rspfb.Action, roll rng.Source) error {
	if rspfb.RollAgainChoice(action.Choice) == rspfb.Hold {
		setCallPlayState(g)
		setFirstDown(g)
		return nil
	}

	dice := roll.Roll(1)
	appendResult(g, rspfb.Result{Name: rspfb.ResultRoll, Player: player, Roll: dice})
	g.Ballpos += 5 * dice[0]

	if dice[0] == 1 {
		g.State = rspfb.Fumble
		g.Actions[rspfb.Home] = []rspfb.ActionName{rspfb.ActionRSP}
		g.Actions[rspfb.Away] = []rspfb.ActionName{rspfb.ActionRSP}
		return nil
	}

	setCallPlayState(g)
	setFirstDown(g)
	return nil
}

func handleTouchbackChoice(g *rspfb.Game, player rspfb.Player, action rspfb.Action, _ rng.Source) error {
	if rspfb.TouchbackChoice(action.Choice) == rspfb.Touchback {
		appendResult(g, rspfb.Result{Name: rspfb.ResultTouchback})
		g.Ballpos = 20
		setFirstDown(g)
		setCallPlayState(g)
		return nil
	}

	g.Play = nil
	g.State = rspfb.KickReturn
	g.Actions[player] = []rspfb.ActionName{rspfb.ActionRoll}
	return nil
}
