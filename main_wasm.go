//go:build tinygo
// +build tinygo

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/marianogappa/truco/truco"
)

func main() {
	js.Global().Set("trucoNew", js.FuncOf(trucoNew))
	js.Global().Set("trucoRunAction", js.FuncOf(trucoRunAction))
	js.Global().Set("trucoBotRunAction", js.FuncOf(trucoBotRunAction))
	select {}
}

var (
	state *truco.GameState
	bot   truco.Bot
)

func trucoNew(this js.Value, p []js.Value) interface{} {
	state = truco.New()
	bot = truco.NewBot()

	nbs, err := json.Marshal(state)
	if err != nil {
		panic(err)
	}

	buffer := js.Global().Get("Uint8Array").New(len(nbs))
	js.CopyBytesToJS(buffer, nbs)
	return buffer
}

func trucoRunAction(this js.Value, p []js.Value) interface{} {
	jsonBytes := make([]byte, p[0].Length())
	js.CopyBytesToGo(jsonBytes, p[0])

	newBytes := _runAction(jsonBytes)

	buffer := js.Global().Get("Uint8Array").New(len(newBytes))
	js.CopyBytesToJS(buffer, newBytes)
	return buffer
}

// trucoBotRunAction lets the bot act for the given player id, typically the
// non-human seat.
func trucoBotRunAction(this js.Value, p []js.Value) interface{} {
	if !state.IsEnded {
		playerID := p[0].Int()
		action := bot.ChooseAction(*state, playerID)
		if action != nil {
			if _, err := state.RunAction(action); err != nil {
				panic(fmt.Errorf("running action: %w", err))
			}
		}
	}

	nbs, err := json.Marshal(state)
	if err != nil {
		panic(fmt.Errorf("marshalling game state: %w", err))
	}

	buffer := js.Global().Get("Uint8Array").New(len(nbs))
	js.CopyBytesToJS(buffer, nbs)
	return buffer
}

func _runAction(bs []byte) []byte {
	action, err := truco.DeserializeAction(bs)
	if err != nil {
		panic(err)
	}
	if _, err := state.RunAction(action); err != nil {
		panic(err)
	}
	nbs, err := json.Marshal(state)
	if err != nil {
		panic(err)
	}
	return nbs
}
