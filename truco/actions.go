package truco

import (
	"encoding/json"
	"fmt"
)

const (
	PLAY_CARD             = "play_card"
	CALL_ENVIDO           = "call_envido"
	CALL_TRUCO            = "call_truco"
	RESPOND_TO_CALL       = "respond_to_call"
	DECLARE_ENVIDO_POINTS = "declare_envido_points"
	ABANDON               = "abandon"
)

// Action is a single player input. Validation never mutates state: an action
// either passes the gate untouched or is rejected with a taxonomy error.
type Action interface {
	IsPossible(g GameState) bool
	Run(g *GameState) error
	GetName() string
	GetPlayerID() int
	String() string

	validate(g GameState) error
}

type act struct {
	Name     string `json:"name"`
	PlayerID int    `json:"playerID"`
}

func (a act) GetName() string {
	return a.Name
}

func (a act) GetPlayerID() int {
	return a.PlayerID
}

// ActionPlayCard throws a card into the current trick.
type ActionPlayCard struct {
	act
	Card Card `json:"card"`
}

// ActionCallEnvido opens or escalates the envido ladder.
type ActionCallEnvido struct {
	act
	Level string `json:"level"`
}

// ActionCallTruco opens or escalates the truco ladder.
type ActionCallTruco struct {
	act
	Level string `json:"level"`
}

// ActionRespondToCall accepts (quiero) or rejects (no quiero) the pending call.
type ActionRespondToCall struct {
	act
	Accept bool `json:"accept"`
}

// ActionDeclareEnvidoPoints reveals the team's envido value after an accepted
// chain.
type ActionDeclareEnvidoPoints struct {
	act
	Points int `json:"points"`
}

// ActionAbandon forfeits the match for the abandoning player's team.
type ActionAbandon struct {
	act
}

func NewActionPlayCard(playerID int, card Card) Action {
	return ActionPlayCard{act: act{Name: PLAY_CARD, PlayerID: playerID}, Card: card}
}

func NewActionCallEnvido(playerID int, level string) Action {
	return ActionCallEnvido{act: act{Name: CALL_ENVIDO, PlayerID: playerID}, Level: level}
}

func NewActionCallTruco(playerID int, level string) Action {
	return ActionCallTruco{act: act{Name: CALL_TRUCO, PlayerID: playerID}, Level: level}
}

func NewActionRespondToCall(playerID int, accept bool) Action {
	return ActionRespondToCall{act: act{Name: RESPOND_TO_CALL, PlayerID: playerID}, Accept: accept}
}

func NewActionDeclareEnvidoPoints(playerID int, points int) Action {
	return ActionDeclareEnvidoPoints{act: act{Name: DECLARE_ENVIDO_POINTS, PlayerID: playerID}, Points: points}
}

func NewActionAbandon(playerID int) Action {
	return ActionAbandon{act: act{Name: ABANDON, PlayerID: playerID}}
}

func (a ActionPlayCard) IsPossible(g GameState) bool            { return a.validate(g) == nil }
func (a ActionCallEnvido) IsPossible(g GameState) bool          { return a.validate(g) == nil }
func (a ActionCallTruco) IsPossible(g GameState) bool           { return a.validate(g) == nil }
func (a ActionRespondToCall) IsPossible(g GameState) bool       { return a.validate(g) == nil }
func (a ActionDeclareEnvidoPoints) IsPossible(g GameState) bool { return a.validate(g) == nil }
func (a ActionAbandon) IsPossible(g GameState) bool             { return a.validate(g) == nil }

func (a ActionPlayCard) validate(g GameState) error {
	player, ok := g.Players[a.PlayerID]
	if !ok {
		return ErrUnauthorizedCaller
	}
	if g.Pending != nil {
		return ErrNotYourTurn
	}
	if a.PlayerID != g.TurnPlayerID {
		return ErrNotYourTurn
	}
	if !player.HasCard(a.Card) {
		return ErrCardNotInHand
	}
	return nil
}

func (a ActionPlayCard) Run(g *GameState) error {
	player := g.Players[a.PlayerID]
	if err := player.playCard(a.Card); err != nil {
		return err
	}

	// The first recorded card closes the envido window for the hand.
	g.EnvidoSequence.WindowOpen = false

	trick := g.currentTrick()
	trick.add(a.PlayerID, a.Card)

	if len(trick.Cards) < len(g.TurnOrder) {
		g.TurnPlayerID = g.nextPlayerAfter(a.PlayerID)
		return nil
	}

	winnerTeamID := trick.resolve(g.TeamOf)
	g.emit(newEventTrickResolved(len(g.Tricks)-1, winnerTeamID))

	results := make([]int, len(g.Tricks))
	for i, t := range g.Tricks {
		results[i] = t.WinnerTeamID
	}
	if handWinner, decided := resolveHandWinner(results, g.ManoTeamID()); decided {
		return g.finishHand(handWinner, g.TrucoSequence.HandValue())
	}

	g.TurnPlayerID = trick.winnerPlayerID(g.TeamOf)
	g.Tricks = append(g.Tricks, newTrick())
	return nil
}

func (a ActionPlayCard) String() string {
	return fmt.Sprintf("play %s", a.Card.String())
}

func (a ActionCallEnvido) validate(g GameState) error {
	if _, ok := g.Players[a.PlayerID]; !ok {
		return ErrUnauthorizedCaller
	}
	if !g.IsPie(a.PlayerID) {
		return ErrUnauthorizedCaller
	}
	seq := g.EnvidoSequence
	if !seq.WindowOpen || seq.IsResolved() {
		return ErrInvalidCallSequence
	}

	team := g.TeamOf(a.PlayerID)
	if g.Pending != nil {
		switch g.Pending.Kind {
		case PendingEnvidoResponse:
			// Escalation: only the responding team may raise.
			if team != g.Pending.TeamID {
				return ErrUnauthorizedCaller
			}
		case PendingTrucoResponse:
			// Envido primero: the team due to answer truco may interject envido.
			if team != g.Pending.TeamID {
				return ErrNotYourTurn
			}
		default:
			return ErrInvalidCallSequence
		}
	}

	if !seq.CanCall(a.Level) {
		return ErrInvalidCallSequence
	}
	return nil
}

func (a ActionCallEnvido) Run(g *GameState) error {
	team := g.TeamOf(a.PlayerID)
	trucoInterrupted := false
	if g.Pending != nil && (g.Pending.Kind == PendingTrucoResponse || g.Pending.TrucoInterrupted) {
		trucoInterrupted = true
	}

	g.EnvidoSequence.call(a.Level, team)
	g.Pending = &Pending{
		Kind:             PendingEnvidoResponse,
		TeamID:           g.OpponentTeamOf(team),
		TrucoInterrupted: trucoInterrupted,
	}
	g.emit(newEventCallMade(LadderEnvido, a.Level, team))
	return nil
}

func (a ActionCallEnvido) String() string {
	return fmt.Sprintf("call %s", a.Level)
}

func (a ActionCallTruco) validate(g GameState) error {
	if _, ok := g.Players[a.PlayerID]; !ok {
		return ErrUnauthorizedCaller
	}
	team := g.TeamOf(a.PlayerID)
	if g.Pending != nil {
		// A pending envido must resolve before any truco call; a pending truco
		// cannot be raised over, least of all by its own team.
		if g.Pending.Kind == PendingTrucoResponse && team == g.TrucoSequence.OwnerTeamID {
			return ErrUnauthorizedCaller
		}
		return ErrInvalidCallSequence
	}
	if a.PlayerID != g.TurnPlayerID {
		return ErrNotYourTurn
	}
	if next, ok := g.TrucoSequence.NextLevel(); ok && next == a.Level && team == g.TrucoSequence.OwnerTeamID {
		return ErrUnauthorizedCaller
	}
	if !g.TrucoSequence.CanCall(a.Level, team) {
		return ErrInvalidCallSequence
	}
	return nil
}

func (a ActionCallTruco) Run(g *GameState) error {
	team := g.TeamOf(a.PlayerID)
	g.TrucoSequence.call(a.Level, team)
	g.Pending = &Pending{Kind: PendingTrucoResponse, TeamID: g.OpponentTeamOf(team)}
	g.emit(newEventCallMade(LadderTruco, a.Level, team))
	return nil
}

func (a ActionCallTruco) String() string {
	return fmt.Sprintf("call %s", a.Level)
}

func (a ActionRespondToCall) validate(g GameState) error {
	if _, ok := g.Players[a.PlayerID]; !ok {
		return ErrUnauthorizedCaller
	}
	if g.Pending == nil || g.Pending.Kind == PendingEnvidoDeclaration {
		return ErrNoActiveCall
	}
	if g.TeamOf(a.PlayerID) != g.Pending.TeamID {
		return ErrNotYourTurn
	}
	if !g.IsPie(a.PlayerID) {
		return ErrUnauthorizedCaller
	}
	return nil
}

func (a ActionRespondToCall) Run(g *GameState) error {
	switch g.Pending.Kind {
	case PendingEnvidoResponse:
		return a.runEnvidoResponse(g)
	case PendingTrucoResponse:
		return a.runTrucoResponse(g)
	}
	return ErrNoActiveCall
}

func (a ActionRespondToCall) runEnvidoResponse(g *GameState) error {
	seq := g.EnvidoSequence

	if a.Accept {
		seq.Resolution = ResolutionAccepted
		seq.Points = seq.AcceptedPoints(g.TargetScore, g.TeamScores)

		manoTeamID := g.ManoTeamID()
		g.Pending = &Pending{
			Kind:             PendingEnvidoDeclaration,
			TeamID:           manoTeamID,
			DeclarersLeft:    []int{g.PieOf(manoTeamID), g.PieOf(g.OpponentTeamOf(manoTeamID))},
			TrucoInterrupted: g.Pending.TrucoInterrupted,
		}
		return nil
	}

	seq.Resolution = ResolutionRejected
	points := seq.RejectedPoints()
	winnerTeamID := seq.LastCallTeamID()
	seq.Points = points
	seq.WinnerTeamID = winnerTeamID
	g.creditEnvido(winnerTeamID, points)
	g.emit(newEventCallResolved(LadderEnvido, ResolutionRejected, points, winnerTeamID))
	if g.checkMatchEnd() {
		return nil
	}
	g.resumeAfterEnvido()
	return nil
}

func (a ActionRespondToCall) runTrucoResponse(g *GameState) error {
	seq := g.TrucoSequence

	if a.Accept {
		seq.accept()
		g.Pending = nil
		g.emit(newEventCallResolved(LadderTruco, ResolutionAccepted, seq.HandValue(), -1))
		return nil
	}

	seq.Resolution = ResolutionRejected
	points := seq.RejectedPoints()
	winnerTeamID := seq.OwnerTeamID
	g.Pending = nil
	g.emit(newEventCallResolved(LadderTruco, ResolutionRejected, points, winnerTeamID))
	return g.finishHand(winnerTeamID, points)
}

func (a ActionRespondToCall) String() string {
	if a.Accept {
		return "quiero"
	}
	return "no quiero"
}

func (a ActionDeclareEnvidoPoints) validate(g GameState) error {
	if _, ok := g.Players[a.PlayerID]; !ok {
		return ErrUnauthorizedCaller
	}
	if g.Pending == nil || g.Pending.Kind != PendingEnvidoDeclaration {
		return ErrNoActiveCall
	}
	if len(g.Pending.DeclarersLeft) == 0 || a.PlayerID != g.Pending.DeclarersLeft[0] {
		return ErrNotYourTurn
	}
	if a.Points != g.TeamEnvidoPoints(g.TeamOf(a.PlayerID)) {
		return ErrInvalidDeclaration
	}
	return nil
}

func (a ActionDeclareEnvidoPoints) Run(g *GameState) error {
	seq := g.EnvidoSequence
	team := g.TeamOf(a.PlayerID)
	seq.Declared[team] = a.Points

	g.Pending.DeclarersLeft = g.Pending.DeclarersLeft[1:]
	if len(g.Pending.DeclarersLeft) > 0 {
		g.Pending.TeamID = g.TeamOf(g.Pending.DeclarersLeft[0])
		return nil
	}

	// Both teams revealed: higher value wins, ties favor the mano's team.
	manoTeamID := g.ManoTeamID()
	otherTeamID := g.OpponentTeamOf(manoTeamID)
	winnerTeamID := manoTeamID
	if seq.Declared[otherTeamID] > seq.Declared[manoTeamID] {
		winnerTeamID = otherTeamID
	}

	seq.WinnerTeamID = winnerTeamID
	g.creditEnvido(winnerTeamID, seq.Points)
	g.emit(newEventCallResolved(LadderEnvido, ResolutionAccepted, seq.Points, winnerTeamID))
	if g.checkMatchEnd() {
		return nil
	}
	g.resumeAfterEnvido()
	return nil
}

func (a ActionDeclareEnvidoPoints) String() string {
	return fmt.Sprintf("declare %d", a.Points)
}

func (a ActionAbandon) validate(g GameState) error {
	if _, ok := g.Players[a.PlayerID]; !ok {
		return ErrUnauthorizedCaller
	}
	return nil
}

func (a ActionAbandon) Run(g *GameState) error {
	g.AbandonedPlayerID = a.PlayerID
	g.endMatch(g.OpponentTeamOf(g.TeamOf(a.PlayerID)))
	return nil
}

func (a ActionAbandon) String() string {
	return "abandon"
}

// SerializeAction marshals an action to JSON.
func SerializeAction(action Action) []byte {
	bs, _ := json.Marshal(action)
	return bs
}

// DeserializeAction unmarshals an action from JSON, dispatching on its name.
func DeserializeAction(bs []byte) (Action, error) {
	var actionName struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(bs, &actionName); err != nil {
		return nil, err
	}

	switch actionName.Name {
	case PLAY_CARD:
		action := ActionPlayCard{}
		err := json.Unmarshal(bs, &action)
		return action, err
	case CALL_ENVIDO:
		action := ActionCallEnvido{}
		err := json.Unmarshal(bs, &action)
		return action, err
	case CALL_TRUCO:
		action := ActionCallTruco{}
		err := json.Unmarshal(bs, &action)
		return action, err
	case RESPOND_TO_CALL:
		action := ActionRespondToCall{}
		err := json.Unmarshal(bs, &action)
		return action, err
	case DECLARE_ENVIDO_POINTS:
		action := ActionDeclareEnvidoPoints{}
		err := json.Unmarshal(bs, &action)
		return action, err
	case ABANDON:
		action := ActionAbandon{}
		err := json.Unmarshal(bs, &action)
		return action, err
	default:
		return nil, fmt.Errorf("unknown action type %v", actionName.Name)
	}
}
