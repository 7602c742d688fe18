// Package exampleclient is a terminal client for the truco server, useful for
// trying out the engine end to end.
package exampleclient

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/marianogappa/truco/server"
	"github.com/marianogappa/truco/truco"
)

// Player connects to the given server address, takes the given seat and plays
// interactively until the match ends.
func Player(playerID int, name, address string) error {
	ui := NewUI()
	defer ui.Close()

	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://%v/ws", address), nil)
	if err != nil {
		return fmt.Errorf("dialing server: %w", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(server.NewMessageHello(playerID, name)); err != nil {
		return fmt.Errorf("sending hello: %w", err)
	}

	for {
		_, bs, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("reading from server: %w", err)
		}

		var envelope server.WebsocketMessage
		if err := json.Unmarshal(bs, &envelope); err != nil {
			continue
		}

		switch envelope.Type {
		case server.MessageTypeHeresGameState:
			var msg server.MessageHeresGameState
			if err := json.Unmarshal(bs, &msg); err != nil {
				continue
			}
			gameState, err := msg.Deserialize()
			if err != nil {
				continue
			}
			if err := handleGameState(ui, conn, playerID, gameState); err != nil {
				return err
			}
			if gameState.IsEnded {
				return nil
			}
		case server.MessageTypeError:
			// The server re-broadcasts state on every accepted action, so a
			// rejected action just leaves the current render in place.
		}
	}
}

func handleGameState(u *ui, conn *websocket.Conn, playerID int, gameState truco.GameState) error {
	if gameState.RoundJustStarted && gameState.LastHandResults != nil {
		if err := u.render(playerID, gameState, PRINT_MODE_SHOW_HAND_RESULT); err != nil {
			return err
		}
	}
	if gameState.IsEnded {
		return u.render(playerID, gameState, PRINT_MODE_END)
	}

	action, err := u.play(playerID, gameState)
	if err != nil {
		return err
	}
	if action == nil {
		return nil
	}

	msg, err := server.NewMessageAction(action)
	if err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}
