package server

import (
	"encoding/json"

	"github.com/marianogappa/truco/truco"
)

const (
	MessageTypeHello = iota
	MessageTypeHeresGameState
	MessageTypeAction
	MessageTypeGimmeGameState
	MessageTypeEvents
	MessageTypeError
)

type WebsocketMessage struct {
	Type int `json:"type"`
}

func (m WebsocketMessage) GetType() int {
	return m.Type
}

type MessageHello struct {
	WebsocketMessage
	PlayerID int    `json:"playerID"`
	Name     string `json:"name"`
}

func NewMessageHello(playerID int, name string) MessageHello {
	return MessageHello{WebsocketMessage: WebsocketMessage{Type: MessageTypeHello}, PlayerID: playerID, Name: name}
}

type MessageHeresGameState struct {
	WebsocketMessage
	GameState json.RawMessage `json:"gameState"`
}

func NewMessageHeresGameState(gameState *truco.GameState) (MessageHeresGameState, error) {
	bs, err := json.Marshal(gameState)
	return MessageHeresGameState{WebsocketMessage: WebsocketMessage{Type: MessageTypeHeresGameState}, GameState: bs}, err
}

func (m MessageHeresGameState) Deserialize() (truco.GameState, error) {
	var gameState truco.GameState
	err := json.Unmarshal(m.GameState, &gameState)
	return gameState, err
}

type MessageGimmeGameState struct {
	WebsocketMessage
}

func NewMessageGimmeGameState() MessageGimmeGameState {
	return MessageGimmeGameState{WebsocketMessage: WebsocketMessage{Type: MessageTypeGimmeGameState}}
}

type MessageAction struct {
	WebsocketMessage
	Action json.RawMessage `json:"action"`
}

func NewMessageAction(action truco.Action) (MessageAction, error) {
	bs, err := json.Marshal(action)
	return MessageAction{WebsocketMessage: WebsocketMessage{Type: MessageTypeAction}, Action: bs}, err
}

func (m MessageAction) Deserialize() (truco.Action, error) {
	return truco.DeserializeAction(m.Action)
}

type MessageEvents struct {
	WebsocketMessage
	Events []json.RawMessage `json:"events"`
}

func NewMessageEvents(events []truco.Event) MessageEvents {
	bss := []json.RawMessage{}
	for _, event := range events {
		bss = append(bss, json.RawMessage(truco.SerializeEvent(event)))
	}
	return MessageEvents{WebsocketMessage: WebsocketMessage{Type: MessageTypeEvents}, Events: bss}
}

func (m MessageEvents) Deserialize() ([]truco.Event, error) {
	events := []truco.Event{}
	for _, bs := range m.Events {
		event, err := truco.DeserializeEvent(bs)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

type MessageError struct {
	WebsocketMessage
	Reason string `json:"reason"`
}

func NewMessageError(reason string) MessageError {
	return MessageError{WebsocketMessage: WebsocketMessage{Type: MessageTypeError}, Reason: reason}
}
