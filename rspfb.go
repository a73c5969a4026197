// Domain model
//
// go-rspfb is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-rspfb is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.

// Package rspfb holds the shared vocabulary of the RSP football game: the
// state enumeration, the action and result tagged unions, and the Game
// record itself. Every other package imports this one.
package rspfb

import "fmt"

// Player represents a seat at the table
type Player string

const (
	Home Player = "home"
	Away Player = "away"
)

// Opponent returns the other seat
func (p Player) Opponent() Player {
	switch p {
	case Home:
		return Away
	case Away:
		return Home
	default:
		panic(fmt.Sprintf("unknown player %q", p))
	}
}

func (p Player) String() string {
	return string(p)
}

// GameLength is the number of plays after which the game ends (§3 playCount)
const GameLength = 80

// State is a node in the game's state machine (§4.1)
type State string

const (
	CoinToss              State = "COIN_TOSS"
	KickoffElection       State = "KICKOFF_ELECTION"
	KickoffChoiceState    State = "KICKOFF_CHOICE"
	Kickoff               State = "KICKOFF"
	OnsideKick            State = "ONSIDE_KICK"
	TouchbackChoiceState  State = "TOUCHBACK_CHOICE"
	KickReturn            State = "KICK_RETURN"
	KickReturn1           State = "KICK_RETURN_1"
	KickReturn6           State = "KICK_RETURN_6"
	Fumble                State = "FUMBLE"
	PatChoiceState        State = "PAT_CHOICE"
	ExtraPoint            State = "EXTRA_POINT"
	ExtraPoint2           State = "EXTRA_POINT_2"
	PlayCall              State = "PLAY_CALL"
	ShortRun              State = "SHORT_RUN"
	ShortRunCont          State = "SHORT_RUN_CONT"
	LongRun               State = "LONG_RUN"
	LongRunRoll           State = "LONG_RUN_ROLL"
	ShortPass             State = "SHORT_PASS"
	ShortPassCont         State = "SHORT_PASS_CONT"
	LongPass              State = "LONG_PASS"
	LongPassRoll          State = "LONG_PASS_ROLL"
	Bomb                  State = "BOMB"
	BombRoll              State = "BOMB_ROLL"
	BombChoiceState       State = "BOMB_CHOICE"
	SackRoll              State = "SACK_ROLL"
	SackChoiceState       State = "SACK_CHOICE"
	PickRoll              State = "PICK_ROLL"
	DistanceRoll          State = "DISTANCE_ROLL"
	PickReturn            State = "PICK_RETURN"
	PickReturn6           State = "PICK_RETURN_6"
	PickTouchbackChoice   State = "PICK_TOUCHBACK_CHOICE"
	GameOver              State = "GAME_OVER"
)

// Play identifies the offensive play called at PLAY_CALL
type Play string

const (
	PlayShortRun   Play = "SHORT_RUN"
	PlayLongRun    Play = "LONG_RUN"
	PlayShortPass  Play = "SHORT_PASS"
	PlayLongPass   Play = "LONG_PASS"
	PlayBomb       Play = "BOMB"
)

// RSPChoice is a Rock-Paper-Scissors throw
type RSPChoice string

const (
	Rock     RSPChoice = "ROCK"
	Paper    RSPChoice = "PAPER"
	Scissors RSPChoice = "SCISSORS"
)

// Beats reports whether c beats other
func (c RSPChoice) Beats(other RSPChoice) bool {
	switch c {
	case Rock:
		return other == Scissors
	case Paper:
		return other == Rock
	case Scissors:
		return other == Paper
	default:
		panic(fmt.Sprintf("unknown RSP choice %q", c))
	}
}

type KickoffElectionChoice string

const (
	Kick    KickoffElectionChoice = "KICK"
	Recieve KickoffElectionChoice = "RECIEVE"
)

type KickoffChoice string

const (
	Regular KickoffChoice = "REGULAR"
	Onside  KickoffChoice = "ONSIDE"
)

type TouchbackChoice string

const (
	Touchback TouchbackChoice = "TOUCHBACK"
	Return    TouchbackChoice = "RETURN"
)

type RollAgainChoice string

const (
	RollAgain RollAgainChoice = "ROLL"
	Hold      RollAgainChoice = "HOLD"
)

type SackChoice string

const (
	Sack SackChoice = "SACK"
	Pick SackChoice = "PICK"
)

type PatChoice string

const (
	OnePoint PatChoice = "ONE_POINT"
	TwoPoint PatChoice = "TWO_POINT"
)

// ActionName discriminates the Action tagged union (§4.2)
type ActionName string

const (
	ActionRSP               ActionName = "RSP"
	ActionRoll              ActionName = "ROLL"
	ActionKickoffElection   ActionName = "KICKOFF_ELECTION"
	ActionKickoffChoice     ActionName = "KICKOFF_CHOICE"
	ActionCallPlay          ActionName = "CALL_PLAY"
	ActionTouchbackChoice   ActionName = "TOUCHBACK_CHOICE"
	ActionRollAgainChoice   ActionName = "ROLL_AGAIN_CHOICE"
	ActionSackChoice        ActionName = "SACK_CHOICE"
	ActionPatChoice         ActionName = "PAT_CHOICE"
	ActionPoll              ActionName = "POLL"
	ActionPenalty           ActionName = "PENALTY"
)

// Action is the tagged union submitted by a player. Only the field(s)
// relevant to Name are populated; JSON encoding preserves Name as the
// discriminator.
type Action struct {
	Name   ActionName `json:"name"`
	Choice string     `json:"choice,omitempty"`
	Count  int        `json:"count,omitempty"`
	Play   Play       `json:"play,omitempty"`
}

// ResultName discriminates the Result tagged union (§4.5)
type ResultName string

const (
	ResultRSP             ResultName = "RSP"
	ResultRoll            ResultName = "ROLL"
	ResultGain            ResultName = "GAIN"
	ResultLoss            ResultName = "LOSS"
	ResultIncompletePass  ResultName = "INCOMPLETE_PASS"
	ResultOutOfBoundsPass ResultName = "OUT_OF_BOUNDS_PASS"
	ResultOutOfBoundsKick ResultName = "OUT_OF_BOUNDS_KICK"
	ResultTouchback       ResultName = "TOUCHBACK"
	ResultTurnover        ResultName = "TURNOVER"
	ResultKickoffElection ResultName = "KICKOFF_ELECTION"
	ResultScore           ResultName = "SCORE"
)

type TurnoverType string

const (
	TurnoverDowns  TurnoverType = "DOWNS"
	TurnoverFumble TurnoverType = "FUMBLE"
	TurnoverPick   TurnoverType = "PICK"
)

type ScoreType string

const (
	ScoreTouchdown ScoreType = "TOUCHDOWN"
	ScoreSafety    ScoreType = "SAFETY"
	ScorePat1      ScoreType = "PAT_1"
	ScorePat2      ScoreType = "PAT_2"
)

// Result is one entry of the per-turn event log
type Result struct {
	Name ResultName `json:"name"`

	// RSP
	Home RSPChoice `json:"home,omitempty"`
	Away RSPChoice `json:"away,omitempty"`

	// ROLL
	Player Player `json:"player,omitempty"`
	Roll   []int  `json:"roll,omitempty"`

	// GAIN / LOSS
	Play  Play `json:"play,omitempty"`
	Yards int  `json:"yards,omitempty"`

	// TURNOVER
	Turnover TurnoverType `json:"turnover,omitempty"`

	// SCORE
	Score ScoreType `json:"score,omitempty"`

	// KICKOFF_ELECTION
	Choice KickoffElectionChoice `json:"choice,omitempty"`
}

// Game is the single authoritative entity, keyed by GameId (§3)
type Game struct {
	GameId     string                `json:"gameId"`
	Version    int64                 `json:"version"`
	Players    map[Player]*string    `json:"players"`
	State      State                 `json:"state"`
	Play       *Play                 `json:"play"`
	Possession *Player               `json:"possession"`
	FirstKick  *Player               `json:"firstKick"`
	Ballpos    int                   `json:"ballpos"`
	FirstDown  *int                  `json:"firstDown"`
	PlayCount  int                   `json:"playCount"`
	Down       int                   `json:"down"`
	RSP        map[Player]*RSPChoice `json:"rsp"`
	Roll       []int                 `json:"roll"`
	Score      map[Player]int        `json:"score"`
	Penalties  map[Player]int        `json:"penalties"`
	Actions    map[Player][]ActionName `json:"actions"`
	Result     []Result              `json:"result"`
}

// PlayerFor returns the seat occupied by user, if any
func (g *Game) PlayerFor(user string) (Player, bool) {
	for _, p := range []Player{Home, Away} {
		if v := g.Players[p]; v != nil && *v == user {
			return p, true
		}
	}
	return "", false
}

// Allows reports whether player may currently submit an action named name
func (g *Game) Allows(player Player, name ActionName) bool {
	for _, a := range g.Actions[player] {
		if a == name {
			return true
		}
	}
	return false
}

// New creates a fresh game with the home seat filled, per §6 POST /new-game
func New(gameId, user string) *Game {
	home := user
	return &Game{
		GameId:  gameId,
		Version: 0,
		Players: map[Player]*string{
			Home: &home,
			Away: nil,
		},
		State:     CoinToss,
		Play:      nil,
		Ballpos:   35,
		PlayCount: 1,
		Down:      1,
		RSP: map[Player]*RSPChoice{
			Home: nil,
			Away: nil,
		},
		Roll: []int{},
		Score: map[Player]int{
			Home: 0,
			Away: 0,
		},
		Penalties: map[Player]int{
			Home: 2,
			Away: 2,
		},
		Actions: map[Player][]ActionName{
			Home: {ActionRSP},
			Away: {ActionRSP},
		},
		Result: []Result{},
	}
}
