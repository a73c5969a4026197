// Handler catalogue tests
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.

package engine

import (
	"reflect"
	"testing"

	"go-rspfb"
	"go-rspfb/rng"
)

func newPlayer(p rspfb.Player) *rspfb.Player { return &p }

func newChoice(c rspfb.RSPChoice) *rspfb.RSPChoice { return &c }

// baseGame returns a minimally-populated Game with the maps Dispatch and
// its handlers assume to be non-nil, leaving state-specific fields to be
// overridden by each test case.
func baseGame() *rspfb.Game {
	return &rspfb.Game{
		GameId:  "seed",
		Players: map[rspfb.Player]*string{},
		RSP:     map[rspfb.Player]*rspfb.RSPChoice{},
		Roll:    []int{},
		Score:   map[rspfb.Player]int{rspfb.Home: 0, rspfb.Away: 0},
		Actions: map[rspfb.Player][]rspfb.ActionName{},
		Result:  []rspfb.Result{},
	}
}

func containsResult(results []rspfb.Result, want rspfb.Result) bool {
	for _, r := range results {
		if reflect.DeepEqual(r, want) {
			return true
		}
	}
	return false
}

// TestSeedScenarios exercises the six literal scenarios laid out in the
// testable-properties section: one Dispatch call against a hand-built
// Game, checked against the expected post-condition.
func TestSeedScenarios(t *testing.T) {
	for _, test := range []struct {
		name   string
		setup  func() *rspfb.Game
		player rspfb.Player
		action rspfb.Action
		roll   rng.Source
		check  func(t *testing.T, g *rspfb.Game)
	}{
		{
			name: "coin toss win",
			setup: func() *rspfb.Game {
				g := baseGame()
				g.State = rspfb.CoinToss
				g.RSP[rspfb.Away] = newChoice(rspfb.Rock)
				return g
			},
			player: rspfb.Home,
			action: rspfb.Action{Name: rspfb.ActionRSP, Choice: string(rspfb.Paper)},
			roll:   rng.NewScripted(),
			check: func(t *testing.T, g *rspfb.Game) {
				if g.State != rspfb.KickoffElection {
					t.Errorf("state = %s, want KICKOFF_ELECTION", g.State)
				}
				if g.RSP[rspfb.Home] != nil || g.RSP[rspfb.Away] != nil {
					t.Errorf("rsp not cleared: %+v", g.RSP)
				}
				if !containsResult(g.Result, rspfb.Result{Name: rspfb.ResultRSP, Home: rspfb.Paper, Away: rspfb.Rock}) {
					t.Errorf("result missing RSP{home:PAPER, away:ROCK}: %+v", g.Result)
				}
			},
		},
		{
			name: "kickoff normal return",
			setup: func() *rspfb.Game {
				g := baseGame()
				g.State = rspfb.Kickoff
				g.Possession = newPlayer(rspfb.Home)
				g.Ballpos = 0
				return g
			},
			player: rspfb.Home,
			action: rspfb.Action{Name: rspfb.ActionRoll, Count: 3},
			roll:   rng.NewScripted(3, 3, 3),
			check: func(t *testing.T, g *rspfb.Game) {
				if g.State != rspfb.KickReturn {
					t.Errorf("state = %s, want KICK_RETURN", g.State)
				}
				if *g.Possession != rspfb.Away {
					t.Errorf("possession = %s, want away", *g.Possession)
				}
				want := []rspfb.ActionName{rspfb.ActionRoll}
				got := g.Actions[rspfb.Away]
				if len(got) != len(want) || got[0] != want[0] {
					t.Errorf("actions[away] = %v, want %v", got, want)
				}
			},
		},
		{
			name: "short run win then touchdown",
			setup: func() *rspfb.Game {
				g := baseGame()
				g.State = rspfb.ShortRun
				g.Ballpos = 95
				g.Possession = newPlayer(rspfb.Home)
				g.RSP[rspfb.Away] = newChoice(rspfb.Rock)
				return g
			},
			player: rspfb.Home,
			action: rspfb.Action{Name: rspfb.ActionRSP, Choice: string(rspfb.Paper)},
			roll:   rng.NewScripted(),
			check: func(t *testing.T, g *rspfb.Game) {
				if g.State != rspfb.PatChoiceState {
					t.Errorf("state = %s, want PAT_CHOICE", g.State)
				}
				if g.Score[rspfb.Home] != 6 {
					t.Errorf("score[home] = %d, want 6", g.Score[rspfb.Home])
				}
				if !containsResult(g.Result, rspfb.Result{Name: rspfb.ResultGain, Play: rspfb.PlayShortRun, Player: rspfb.Home, Yards: 5}) {
					t.Errorf("result missing GAIN{SHORT_RUN,home,5}: %+v", g.Result)
				}
				if !containsResult(g.Result, rspfb.Result{Name: rspfb.ResultScore, Score: rspfb.ScoreTouchdown}) {
					t.Errorf("result missing SCORE{TOUCHDOWN}: %+v", g.Result)
				}
			},
		},
		{
			name: "bomb three-roll over 35",
			setup: func() *rspfb.Game {
				g := baseGame()
				g.State = rspfb.BombChoiceState
				g.Roll = []int{4, 5}
				g.Ballpos = 10
				g.Possession = newPlayer(rspfb.Home)
				g.FirstDown = func() *int { v := 70; return &v }()
				g.Play = func() *rspfb.Play { p := rspfb.PlayBomb; return &p }()
				return g
			},
			player: rspfb.Home,
			action: rspfb.Action{Name: rspfb.ActionRollAgainChoice, Choice: string(rspfb.RollAgain)},
			roll:   rng.NewScripted(4),
			check: func(t *testing.T, g *rspfb.Game) {
				if g.State != rspfb.PlayCall {
					t.Errorf("state = %s, want PLAY_CALL", g.State)
				}
				if g.Ballpos != 75 {
					t.Errorf("ballpos = %d, want 75", g.Ballpos)
				}
				if g.FirstDown == nil || *g.FirstDown != 85 {
					t.Errorf("firstDown = %v, want 85", g.FirstDown)
				}
				if !containsResult(g.Result, rspfb.Result{Name: rspfb.ResultGain, Play: rspfb.PlayBomb, Player: rspfb.Home, Yards: 65}) {
					t.Errorf("result missing GAIN{BOMB,home,65}: %+v", g.Result)
				}
			},
		},
		{
			name: "safety on sack",
			setup: func() *rspfb.Game {
				g := baseGame()
				g.State = rspfb.SackRoll
				g.Possession = newPlayer(rspfb.Away)
				g.Play = func() *rspfb.Play { p := rspfb.PlayShortRun; return &p }()
				g.Ballpos = 5
				g.PlayCount = 1
				return g
			},
			player: rspfb.Home,
			action: rspfb.Action{Name: rspfb.ActionRoll, Count: 1},
			roll:   rng.NewScripted(5),
			check: func(t *testing.T, g *rspfb.Game) {
				if g.State != rspfb.KickoffChoiceState {
					t.Errorf("state = %s, want KICKOFF_CHOICE", g.State)
				}
				if g.Ballpos != 20 {
					t.Errorf("ballpos = %d, want 20", g.Ballpos)
				}
				if g.Score[rspfb.Home] != 2 {
					t.Errorf("score[home] = %d, want 2", g.Score[rspfb.Home])
				}
				if !containsResult(g.Result, rspfb.Result{Name: rspfb.ResultScore, Score: rspfb.ScoreSafety}) {
					t.Errorf("result missing SCORE{SAFETY}: %+v", g.Result)
				}
			},
		},
		{
			name: "pick from long pass then touchback",
			setup: func() *rspfb.Game {
				g := baseGame()
				g.State = rspfb.DistanceRoll
				g.Possession = newPlayer(rspfb.Home)
				g.Play = func() *rspfb.Play { p := rspfb.PlayLongPass; return &p }()
				g.Ballpos = 90
				return g
			},
			player: rspfb.Home,
			action: rspfb.Action{Name: rspfb.ActionRoll, Count: 1},
			roll:   rng.NewScripted(1),
			check: func(t *testing.T, g *rspfb.Game) {
				if g.State != rspfb.PickTouchbackChoice {
					t.Errorf("state = %s, want PICK_TOUCHBACK_CHOICE", g.State)
				}
				if *g.Possession != rspfb.Away {
					t.Errorf("possession = %s, want away", *g.Possession)
				}
				if g.Ballpos != -5 {
					t.Errorf("ballpos = %d, want -5", g.Ballpos)
				}
				if !containsResult(g.Result, rspfb.Result{Name: rspfb.ResultTurnover, Turnover: rspfb.TurnoverPick}) {
					t.Errorf("result missing TURNOVER{PICK}: %+v", g.Result)
				}
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			g := test.setup()
			if err := Dispatch(g, test.player, test.action, test.roll); err != nil {
				t.Fatalf("Dispatch: %v", err)
			}
			test.check(t, g)
		})
	}
}

// TestDispatchUnknownStatePanics exercises the "programming error"
// branch of §4.3 step 5: no handler is registered for GAME_OVER against
// ActionRSP, so Dispatch must panic rather than return an error.
func TestDispatchUnknownStatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Dispatch did not panic on an unregistered (state, action) pair")
		}
	}()

	g := baseGame()
	g.State = rspfb.GameOver
	Dispatch(g, rspfb.Home, rspfb.Action{Name: rspfb.ActionRSP}, rng.NewScripted())
}

// TestRegisterDuplicatePanics exercises the handler-registration property
// of §8: two handlers advertising the same (state, action) pair is a
// startup-time error, not a runtime one.
func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("register did not panic on a duplicate (state, action) key")
		}
	}()

	register(&Handler{
		States:  []rspfb.State{rspfb.CoinToss},
		Actions: []rspfb.ActionName{rspfb.ActionRSP},
		Handle:  handleCoinToss,
	})
}

// TestResolveRollRejectsWrongCount exercises the roll-validating template
// directly: a count outside the allowed set is an IllegalAction, not a
// panic or a silent roll.
func TestResolveRollRejectsWrongCount(t *testing.T) {
	g := baseGame()
	g.State = rspfb.Kickoff
	g.Possession = newPlayer(rspfb.Home)

	err := Dispatch(g, rspfb.Home, rspfb.Action{Name: rspfb.ActionRoll, Count: 2}, rng.NewScripted(1, 1))
	if err == nil {
		t.Fatal("expected an error for a 2-die roll in KICKOFF")
	}
	if _, ok := err.(*IllegalAction); !ok {
		t.Fatalf("err = %T, want *IllegalAction", err)
	}
}

// TestResolveRSPTie exercises the tie branch of the RSP template: a
// matched throw at COIN_TOSS is a redo, not a winner.
func TestResolveRSPTie(t *testing.T) {
	g := baseGame()
	g.State = rspfb.CoinToss
	g.RSP[rspfb.Away] = newChoice(rspfb.Rock)

	if err := Dispatch(g, rspfb.Home, rspfb.Action{Name: rspfb.ActionRSP, Choice: string(rspfb.Rock)}, rng.NewScripted()); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if g.State != rspfb.CoinToss {
		t.Errorf("state = %s, want COIN_TOSS (tie redo)", g.State)
	}
	if g.RSP[rspfb.Home] != nil || g.RSP[rspfb.Away] != nil {
		t.Errorf("rsp not cleared after tie: %+v", g.RSP)
	}
	for _, p := range []rspfb.Player{rspfb.Home, rspfb.Away} {
		if len(g.Actions[p]) != 1 || g.Actions[p][0] != rspfb.ActionRSP {
			t.Errorf("actions[%s] = %v, want [RSP]", p, g.Actions[p])
		}
	}
}

// TestGameLengthEndsGame exercises the playCount-crossing-GAME_LENGTH
// boundary from §8: with the ball between the goal lines, endPlay must
// transition straight to GAME_OVER with empty action sets.
func TestGameLengthEndsGame(t *testing.T) {
	g := baseGame()
	g.State = rspfb.SackRoll
	g.Ballpos = 50
	g.Possession = newPlayer(rspfb.Home)
	g.Play = func() *rspfb.Play { p := rspfb.PlayShortRun; return &p }()
	g.PlayCount = rspfb.GameLength + 1

	if err := Dispatch(g, rspfb.Home, rspfb.Action{Name: rspfb.ActionRoll, Count: 1}, rng.NewScripted(2)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if g.State != rspfb.GameOver {
		t.Errorf("state = %s, want GAME_OVER", g.State)
	}
	for _, p := range []rspfb.Player{rspfb.Home, rspfb.Away} {
		if len(g.Actions[p]) != 0 {
			t.Errorf("actions[%s] = %v, want empty", p, g.Actions[p])
		}
	}
}
