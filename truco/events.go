package truco

import (
	"encoding/json"
	"fmt"
)

const (
	TRICK_RESOLVED = "trick_resolved"
	HAND_RESOLVED  = "hand_resolved"
	MATCH_RESOLVED = "match_resolved"
	CALL_MADE      = "call_made"
	CALL_RESOLVED  = "call_resolved"
)

// Ladder names used in call events.
const (
	LadderEnvido = "envido"
	LadderTruco  = "truco"
)

// Event is one outward-facing fact produced by an action. The engine never
// calls outward: the caller receives the event list from RunAction and decides
// how to broadcast it.
type Event interface {
	GetName() string
}

type ev struct {
	Name string `json:"name"`
}

func (e ev) GetName() string {
	return e.Name
}

// EventTrickResolved reports a finished trick. WinnerTeamID is TeamNone for a
// parda.
type EventTrickResolved struct {
	ev
	TrickIndex   int `json:"trickIndex"`
	WinnerTeamID int `json:"winnerTeamID"`
}

// EventHandResolved reports a finished hand with its two independent point
// awards. EnvidoWinnerTeamID is -1 when envido was never resolved.
type EventHandResolved struct {
	ev
	WinnerTeamID       int `json:"winnerTeamID"`
	TrucoPoints        int `json:"trucoPoints"`
	EnvidoWinnerTeamID int `json:"envidoWinnerTeamID"`
	EnvidoPoints       int `json:"envidoPoints"`
}

// EventMatchResolved reports the end of the match.
type EventMatchResolved struct {
	ev
	WinnerTeamID int `json:"winnerTeamID"`
}

// EventCallMade reports a new call on one of the bidding ladders.
type EventCallMade struct {
	ev
	Ladder   string `json:"ladder"`
	Level    string `json:"level"`
	ByTeamID int    `json:"byTeamID"`
}

// EventCallResolved reports a ladder reaching acceptance or rejection. For an
// accepted truco nothing is awarded yet, so PointsAwarded carries the value now
// at stake and WinnerTeamID is -1.
type EventCallResolved struct {
	ev
	Ladder        string     `json:"ladder"`
	Outcome       Resolution `json:"outcome"`
	PointsAwarded int        `json:"pointsAwarded"`
	WinnerTeamID  int        `json:"winnerTeamID"`
}

func newEventTrickResolved(trickIndex, winnerTeamID int) Event {
	return EventTrickResolved{ev: ev{Name: TRICK_RESOLVED}, TrickIndex: trickIndex, WinnerTeamID: winnerTeamID}
}

func newEventHandResolved(winnerTeamID, trucoPoints, envidoWinnerTeamID, envidoPoints int) Event {
	return EventHandResolved{
		ev:                 ev{Name: HAND_RESOLVED},
		WinnerTeamID:       winnerTeamID,
		TrucoPoints:        trucoPoints,
		EnvidoWinnerTeamID: envidoWinnerTeamID,
		EnvidoPoints:       envidoPoints,
	}
}

func newEventMatchResolved(winnerTeamID int) Event {
	return EventMatchResolved{ev: ev{Name: MATCH_RESOLVED}, WinnerTeamID: winnerTeamID}
}

func newEventCallMade(ladder, level string, byTeamID int) Event {
	return EventCallMade{ev: ev{Name: CALL_MADE}, Ladder: ladder, Level: level, ByTeamID: byTeamID}
}

func newEventCallResolved(ladder string, outcome Resolution, pointsAwarded, winnerTeamID int) Event {
	return EventCallResolved{
		ev:            ev{Name: CALL_RESOLVED},
		Ladder:        ladder,
		Outcome:       outcome,
		PointsAwarded: pointsAwarded,
		WinnerTeamID:  winnerTeamID,
	}
}

// SerializeEvent marshals an event to JSON.
func SerializeEvent(event Event) []byte {
	bs, _ := json.Marshal(event)
	return bs
}

// DeserializeEvent unmarshals an event from JSON, dispatching on its name.
func DeserializeEvent(bs []byte) (Event, error) {
	var eventName struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(bs, &eventName); err != nil {
		return nil, err
	}

	var event Event
	switch eventName.Name {
	case TRICK_RESOLVED:
		event = &EventTrickResolved{}
	case HAND_RESOLVED:
		event = &EventHandResolved{}
	case MATCH_RESOLVED:
		event = &EventMatchResolved{}
	case CALL_MADE:
		event = &EventCallMade{}
	case CALL_RESOLVED:
		event = &EventCallResolved{}
	default:
		return nil, fmt.Errorf("unknown event type %v", eventName.Name)
	}

	if err := json.Unmarshal(bs, event); err != nil {
		return nil, err
	}
	return event, nil
}
