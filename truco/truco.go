package truco

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"
)

// PendingKind discriminates what the engine is waiting for, replacing the
// implicit "waiting for response" flag of older implementations.
type PendingKind string

const (
	PendingEnvidoResponse    PendingKind = "envido-response"
	PendingTrucoResponse     PendingKind = "truco-response"
	PendingEnvidoDeclaration PendingKind = "envido-declaration"
)

// Pending is the single discriminated "what am I waiting for" value. Nil means
// regular card play.
type Pending struct {
	Kind PendingKind `json:"kind"`

	// TeamID is the team that must act next.
	TeamID int `json:"teamID"`

	// TrucoInterrupted is true while an envido interjection ("envido primero")
	// has put a truco response on hold; the truco response is requested again
	// once envido fully resolves.
	TrucoInterrupted bool `json:"trucoInterrupted"`

	// DeclarersLeft lists the players still due to declare envido points.
	DeclarersLeft []int `json:"declarersLeft,omitempty"`
}

// HandResult summarizes a finished hand.
type HandResult struct {
	WinnerTeamID       int `json:"winnerTeamID"`
	TrucoPoints        int `json:"trucoPoints"`
	EnvidoWinnerTeamID int `json:"envidoWinnerTeamID"`
	EnvidoPoints       int `json:"envidoPoints"`
}

// GameState represents the state of a Truco match. It is fully
// JSON-serializable: restoring a snapshot reproduces the same legal-action set.
type GameState struct {
	// RoundNumber counts hands ("rondas") dealt, starting from 1.
	RoundNumber int `json:"roundNumber"`

	// TargetScore is the match target, 15 or 30.
	TargetScore int `json:"targetScore"`

	// Players maps player id to player. Relations are ids, never pointers.
	Players map[int]*Player `json:"players"`

	// TurnOrder is the seat order for the current hand. The first seat is the
	// mano; each team's last seat is its pie. It rotates one seat per hand.
	TurnOrder []int `json:"turnOrder"`

	// TurnPlayerID is the player whose turn it is to play a card.
	TurnPlayerID int `json:"turnPlayerID"`

	// TeamScores maps team id (0 or 1) to cumulative match score.
	TeamScores map[int]int `json:"teamScores"`

	// Tricks are the tricks of the current hand, at most three.
	Tricks []*Trick `json:"tricks"`

	EnvidoSequence *EnvidoSequence `json:"envidoSequence"`
	TrucoSequence  *TrucoSequence  `json:"trucoSequence"`

	Pending *Pending `json:"pending"`

	// EnvidoPointsWon accumulates envido points per team across the match,
	// used to settle the envido portion for rewards.
	EnvidoPointsWon map[int]int `json:"envidoPointsWon"`

	// EnvidoContested is true once any envido chain resolved during the match.
	EnvidoContested bool `json:"envidoContested"`

	// AbandonedPlayerID is the player who abandoned the match, or -1.
	AbandonedPlayerID int `json:"abandonedPlayerID"`

	RoundJustStarted bool        `json:"roundJustStarted"`
	LastHandResults  *HandResult `json:"lastHandResults"`

	IsEnded      bool `json:"isEnded"`
	WinnerTeamID int  `json:"winnerTeamID"`

	// PossibleActions is the serialized legal-action set for the current state.
	PossibleActions []json.RawMessage `json:"possibleActions"`

	// Actions is the list of actions run so far, with their owners.
	Actions              []json.RawMessage `json:"actions"`
	ActionOwnerPlayerIDs []int             `json:"actionOwnerPlayerIDs"`

	deck   *deck
	rng    *rand.Rand
	events []Event
}

// New creates a Truco match. Defaults: two players on opposing teams, target
// score 30, wall-clock seeded shuffling.
func New(opts ...func(*GameState)) *GameState {
	gs := &GameState{
		TargetScore: 30,
		Players: map[int]*Player{
			0: {ID: 0, Name: "Player 0", TeamID: 0, IsConnected: true},
			1: {ID: 1, Name: "Player 1", TeamID: 1, IsConnected: true},
		},
		TurnOrder:         []int{0, 1},
		TeamScores:        map[int]int{0: 0, 1: 0},
		EnvidoPointsWon:   map[int]int{0: 0, 1: 0},
		AbandonedPlayerID: -1,
		WinnerTeamID:      -1,
		Actions:           []json.RawMessage{},
	}

	for _, opt := range opts {
		opt(gs)
	}

	if err := gs.startNewHand(); err != nil {
		// Only reachable with a broken roster configuration.
		panic(err)
	}
	return gs
}

// Seat describes one player at match start.
type Seat struct {
	ID     int
	Name   string
	TeamID int
}

// WithSeats configures the roster and turn order. Seats must alternate teams;
// 2, 4 or 6 seats are supported.
func WithSeats(seats []Seat) func(*GameState) {
	return func(gs *GameState) {
		gs.Players = map[int]*Player{}
		gs.TurnOrder = []int{}
		for _, seat := range seats {
			gs.Players[seat.ID] = &Player{ID: seat.ID, Name: seat.Name, TeamID: seat.TeamID, IsConnected: true}
			gs.TurnOrder = append(gs.TurnOrder, seat.ID)
		}
	}
}

// WithTargetScore sets the match target, 15 or 30.
func WithTargetScore(target int) func(*GameState) {
	return func(gs *GameState) {
		gs.TargetScore = target
	}
}

// WithRand injects the random source used for shuffling, so tests can assert
// exact outcomes.
func WithRand(rng *rand.Rand) func(*GameState) {
	return func(gs *GameState) {
		gs.rng = rng
	}
}

func (g *GameState) randSource() *rand.Rand {
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g.rng
}

// startNewHand deals a fresh hand: rotated seats, fresh deck, fresh ladder
// instances. Per-hand state is replaced, never reused.
func (g *GameState) startNewHand() error {
	if g.RoundNumber > 0 {
		g.TurnOrder = append(g.TurnOrder[1:], g.TurnOrder[0])
	}
	g.RoundNumber++

	g.deck = newDeck()
	g.deck.shuffle(g.randSource())
	for _, playerID := range g.TurnOrder {
		cards, err := g.deck.deal(3)
		if err != nil {
			return err
		}
		g.Players[playerID].receiveCards(cards)
	}

	g.Tricks = []*Trick{newTrick()}
	g.TurnPlayerID = g.TurnOrder[0]
	g.EnvidoSequence = newEnvidoSequence()
	g.TrucoSequence = newTrucoSequence()
	g.Pending = nil
	g.RoundJustStarted = true
	g.PossibleActions = _serializeActions(g.CalculatePossibleActions())
	return nil
}

// RunAction validates and applies one action, returning the outward-facing
// events it produced. A validation failure mutates nothing.
func (g *GameState) RunAction(action Action) ([]Event, error) {
	if g.IsEnded {
		return nil, ErrGameIsEnded
	}
	if err := action.validate(*g); err != nil {
		return nil, err
	}

	g.events = g.events[:0]

	// Cleared before running so that an action which deals a new hand leaves
	// the flag raised for the next broadcast.
	g.RoundJustStarted = false

	if err := action.Run(g); err != nil {
		return nil, err
	}

	g.Actions = append(g.Actions, SerializeAction(action))
	g.ActionOwnerPlayerIDs = append(g.ActionOwnerPlayerIDs, action.GetPlayerID())

	if g.IsEnded {
		g.PossibleActions = []json.RawMessage{}
	} else {
		g.PossibleActions = _serializeActions(g.CalculatePossibleActions())
	}

	events := make([]Event, len(g.events))
	copy(events, g.events)
	return events, nil
}

func (g *GameState) emit(event Event) {
	g.events = append(g.events, event)
}

func (g *GameState) currentTrick() *Trick {
	return g.Tricks[len(g.Tricks)-1]
}

// creditEnvido applies a resolved envido award immediately, so a falta envido
// can end the match mid-hand.
func (g *GameState) creditEnvido(teamID, points int) {
	g.TeamScores[teamID] += points
	g.EnvidoPointsWon[teamID] += points
	g.EnvidoContested = true
}

// resumeAfterEnvido restores an interrupted truco response (envido primero) or
// returns to regular play.
func (g *GameState) resumeAfterEnvido() {
	if g.Pending != nil && g.Pending.TrucoInterrupted {
		g.Pending = &Pending{
			Kind:   PendingTrucoResponse,
			TeamID: g.OpponentTeamOf(g.TrucoSequence.OwnerTeamID),
		}
		return
	}
	g.Pending = nil
}

// finishHand applies the truco-side points of a finished hand and either ends
// the match or deals the next hand. A deal failure is fatal for the hand but
// must not take down the match process, so it surfaces as an error.
func (g *GameState) finishHand(winnerTeamID, trucoPoints int) error {
	envidoWinnerTeamID := -1
	envidoPoints := 0
	if g.EnvidoSequence.IsResolved() {
		envidoWinnerTeamID = g.EnvidoSequence.WinnerTeamID
		envidoPoints = g.EnvidoSequence.Points
	}

	g.LastHandResults = &HandResult{
		WinnerTeamID:       winnerTeamID,
		TrucoPoints:        trucoPoints,
		EnvidoWinnerTeamID: envidoWinnerTeamID,
		EnvidoPoints:       envidoPoints,
	}
	g.emit(newEventHandResolved(winnerTeamID, trucoPoints, envidoWinnerTeamID, envidoPoints))

	g.TeamScores[winnerTeamID] += trucoPoints
	if g.checkMatchEnd() {
		return nil
	}
	if err := g.startNewHand(); err != nil {
		// A fresh 40-card deck covers up to 6 seats; failing here means a
		// broken roster configuration.
		return fmt.Errorf("dealing next hand: %w", err)
	}
	return nil
}

func (g *GameState) checkMatchEnd() bool {
	for teamID, score := range g.TeamScores {
		if score >= g.TargetScore {
			g.endMatch(teamID)
			return true
		}
	}
	return false
}

func (g *GameState) endMatch(winnerTeamID int) {
	g.IsEnded = true
	g.WinnerTeamID = winnerTeamID
	g.Pending = nil
	g.emit(newEventMatchResolved(winnerTeamID))
}

// CalculatePossibleActions enumerates every legal action for every seat in the
// current state. Responses and envido calls can come from non-turn players, so
// each action is tagged with its player id.
func (g GameState) CalculatePossibleActions() []Action {
	actions := []Action{}

	if g.IsEnded {
		return actions
	}

	if g.Pending == nil {
		player := g.Players[g.TurnPlayerID]
		for _, card := range player.Hand {
			actions = append(actions, NewActionPlayCard(g.TurnPlayerID, card))
		}
		if next, ok := g.TrucoSequence.NextLevel(); ok {
			candidate := NewActionCallTruco(g.TurnPlayerID, next)
			if candidate.IsPossible(g) {
				actions = append(actions, candidate)
			}
		}
		if g.EnvidoSequence.WindowOpen && !g.EnvidoSequence.IsStarted() {
			for _, teamID := range []int{0, 1} {
				pie := g.PieOf(teamID)
				for _, level := range envidoTransitions[""] {
					actions = append(actions, NewActionCallEnvido(pie, level))
				}
			}
		}
	} else {
		switch g.Pending.Kind {
		case PendingEnvidoResponse:
			pie := g.PieOf(g.Pending.TeamID)
			actions = append(actions,
				NewActionRespondToCall(pie, true),
				NewActionRespondToCall(pie, false),
			)
			for _, level := range envidoTransitions[g.EnvidoSequence.key()] {
				actions = append(actions, NewActionCallEnvido(pie, level))
			}
		case PendingTrucoResponse:
			pie := g.PieOf(g.Pending.TeamID)
			actions = append(actions,
				NewActionRespondToCall(pie, true),
				NewActionRespondToCall(pie, false),
			)
			if g.EnvidoSequence.WindowOpen && !g.EnvidoSequence.IsStarted() {
				for _, level := range envidoTransitions[""] {
					actions = append(actions, NewActionCallEnvido(pie, level))
				}
			}
		case PendingEnvidoDeclaration:
			declarer := g.Pending.DeclarersLeft[0]
			actions = append(actions, NewActionDeclareEnvidoPoints(declarer, g.TeamEnvidoPoints(g.TeamOf(declarer))))
		}
	}

	// Going to the deck is open to every seat at any point of the hand.
	for _, playerID := range g.TurnOrder {
		actions = append(actions, NewActionAbandon(playerID))
	}

	return actions
}

func _serializeActions(as []Action) []json.RawMessage {
	_as := []json.RawMessage{}
	for _, a := range as {
		_as = append(_as, json.RawMessage(SerializeAction(a)))
	}
	return _as
}

// Serialize marshals the whole match state.
func (g *GameState) Serialize() ([]byte, error) {
	return json.Marshal(g)
}

// Deserialize restores a match snapshot. The deck and random source are
// rebuilt lazily on the next deal.
func Deserialize(bs []byte, opts ...func(*GameState)) (*GameState, error) {
	gs := &GameState{}
	if err := json.Unmarshal(bs, gs); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(gs)
	}
	return gs, nil
}
