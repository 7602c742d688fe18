package exampleclient

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/marianogappa/truco/truco"
	"github.com/nsf/termbox-go"
)

type ui struct {
	wantKeyPressCh chan struct{}
	sendKeyPressCh chan rune
}

func NewUI() *ui {
	ui := &ui{
		wantKeyPressCh: make(chan struct{}),
		sendKeyPressCh: make(chan rune),
	}
	ui.startKeyEventLoop()
	err := termbox.Init()
	if err != nil {
		panic(err)
	}
	return ui
}

func (u *ui) Close() {
	termbox.Close()
}

func (u *ui) play(playerID int, gameState truco.GameState) (truco.Action, error) {
	if err := u.render(playerID, gameState, PRINT_MODE_NORMAL); err != nil {
		return nil, err
	}

	if gameState.IsEnded {
		return nil, nil
	}

	possibleActions := []truco.Action{}
	hasOwnMove := false
	for _, action := range _deserializeActions(gameState.PossibleActions) {
		if action.GetPlayerID() != playerID {
			continue
		}
		if action.GetName() != truco.ABANDON {
			hasOwnMove = true
		}
		possibleActions = append(possibleActions, action)
	}
	// Abandoning is always possible, but a player whose only option is to leave
	// is really just waiting for the other team.
	if !hasOwnMove {
		return nil, nil
	}

	var action truco.Action
	for {
		num := u.pressAnyNumber()
		if num == 0 || num > len(possibleActions) {
			continue
		}
		action = possibleActions[num-1]
		break
	}
	return action, nil
}

type printMode int

const (
	PRINT_MODE_NORMAL printMode = iota
	PRINT_MODE_SHOW_HAND_RESULT
	PRINT_MODE_END
)

func (u *ui) render(playerID int, state truco.GameState, mode printMode) error {
	err := termbox.Clear(termbox.ColorWhite, termbox.ColorBlack)
	if err != nil {
		return err
	}

	var (
		mx, my   = termbox.Size()
		you      = playerID
		yourTeam = state.TeamOf(you)
		themTeam = state.OpponentTeamOf(yourTeam)
	)

	// Opponents' hands stay face down; their played cards are on the table.
	row := 0
	for _, opponentID := range state.TeamPlayerIDs(themTeam) {
		opponent := state.Players[opponentID]
		unrevealed := strings.Repeat("[] ", len(opponent.Hand))
		printAt(0, row, fmt.Sprintf("%v: %v", opponent.Name, unrevealed))
		row++
	}

	printUpToAt(mx-1, 0, fmt.Sprintf("Ronda %d", state.RoundNumber))

	youMano := ""
	themMano := ""
	if state.ManoTeamID() == yourTeam {
		youMano = " (mano)"
	} else {
		themMano = " (mano)"
	}

	printUpToAt(mx-1, 1, fmt.Sprintf("Vos%v: %v puntos", youMano, state.TeamScores[yourTeam]))
	printUpToAt(mx-1, 2, fmt.Sprintf("Ellos%v: %v puntos", themMano, state.TeamScores[themTeam]))

	// The table: one line per trick played so far.
	for i, trick := range state.Tricks {
		cs := []string{}
		for _, pc := range trick.Cards {
			cs = append(cs, fmt.Sprintf("%v:%v", state.Players[pc.PlayerID].Name, getCardString(pc.Card)))
		}
		printAt(0, my/2-3+i, fmt.Sprintf("Mano %d: %v", i+1, strings.Join(cs, "  ")))
	}

	if status := getCallStatusString(yourTeam, state); status != "" {
		printAt(0, my/2-4, status)
	}

	yourCards := getCardsString(state.Players[you].Hand, true)
	printAt(0, my-4, "Tus cartas: "+yourCards)

	switch mode {
	case PRINT_MODE_NORMAL:
		printAt(0, my/2, getLastActionString(you, state))
	case PRINT_MODE_SHOW_HAND_RESULT:
		if state.LastHandResults != nil {
			result := state.LastHandResults
			resultStr := fmt.Sprintf("Terminó la ronda: %v puntos de truco para %v",
				result.TrucoPoints, teamLabel(result.WinnerTeamID, yourTeam))
			if result.EnvidoWinnerTeamID != -1 {
				resultStr += fmt.Sprintf(", %v de envido para %v",
					result.EnvidoPoints, teamLabel(result.EnvidoWinnerTeamID, yourTeam))
			}
			printAt(0, my/2, resultStr)
		}
	case PRINT_MODE_END:
		if state.WinnerTeamID == yourTeam {
			printAt(0, my/2, "¡Ganaste la partida! 🥰")
		} else {
			printAt(0, my/2, "Perdiste la partida 😭")
		}
	}

	if mode == PRINT_MODE_SHOW_HAND_RESULT || mode == PRINT_MODE_END {
		printAt(0, my-2, "Presioná cualquier tecla para continuar...")
		termbox.Flush()
		u.pressAnyKey()
		return nil
	}

	actionsString := ""
	i := 0
	hasOwnMove := false
	for _, action := range _deserializeActions(state.PossibleActions) {
		if action.GetPlayerID() != playerID {
			continue
		}
		if action.GetName() != truco.ABANDON {
			hasOwnMove = true
		}
		i++
		actionsString += fmt.Sprintf("%d. %s   ", i, spanishAction(action))
	}
	if !hasOwnMove {
		actionsString = "Esperando al otro equipo..."
	}
	printAt(0, my-2, actionsString)

	termbox.Flush()
	return nil
}

func printAt(x, y int, s string) {
	_s := []rune(s)
	for i, r := range _s {
		termbox.SetCell(x+i, y, r, termbox.ColorDefault, termbox.ColorDefault)
	}
}

// Write so that the output ends at x, y
func printUpToAt(x, y int, s string) {
	_s := []rune(s)
	for i, r := range _s {
		termbox.SetCell(x-len(_s)+i, y, r, termbox.ColorDefault, termbox.ColorDefault)
	}
}

func getCardsString(cards []truco.Card, withNumbers bool) string {
	var cs []string
	for i, card := range cards {
		if withNumbers {
			cs = append(cs, fmt.Sprintf("%v. %v", i+1, getCardString(card)))
		} else {
			cs = append(cs, getCardString(card))
		}
	}
	return strings.Join(cs, "  ")
}

func getCardString(card truco.Card) string {
	return fmt.Sprintf("[%v%v]", card.Number, suitEmoji(card.Suit))
}

func suitEmoji(suit string) string {
	switch suit {
	case truco.ESPADA:
		return "🔪"
	case truco.BASTO:
		return "🌿"
	case truco.ORO:
		return "💰"
	case truco.COPA:
		return "🍷"
	default:
		return "❓"
	}
}

func teamLabel(teamID, yourTeam int) string {
	if teamID == yourTeam {
		return "vos"
	}
	return "ellos"
}

func getCallStatusString(yourTeam int, state truco.GameState) string {
	parts := []string{}
	if state.EnvidoSequence.IsStarted() {
		labels := []string{}
		for _, call := range state.EnvidoSequence.Calls {
			labels = append(labels, spanishLevel(call.Level))
		}
		parts = append(parts, "Envido: "+strings.Join(labels, ", "))
	}
	if state.TrucoSequence.IsStarted() {
		labels := []string{}
		for _, call := range state.TrucoSequence.Calls {
			labels = append(labels, spanishLevel(call.Level))
		}
		parts = append(parts, "Truco: "+strings.Join(labels, ", "))
	}
	return strings.Join(parts, "   ")
}

func spanishLevel(level string) string {
	switch level {
	case truco.ENVIDO:
		return "Envido"
	case truco.REAL_ENVIDO:
		return "Real envido"
	case truco.FALTA_ENVIDO:
		return "Falta envido"
	case truco.TRUCO:
		return "Truco"
	case truco.RETRUCO:
		return "Retruco"
	case truco.VALE_CUATRO:
		return "Vale cuatro"
	default:
		return "???"
	}
}

func getLastActionString(playerID int, state truco.GameState) string {
	if len(state.Actions) == 0 {
		return "¡Empezó el juego!"
	}
	if state.RoundJustStarted {
		return "¡Empezó la ronda!"
	}

	lastActionBs := state.Actions[len(state.Actions)-1]
	lastActionOwnerPlayerID := state.ActionOwnerPlayerIDs[len(state.ActionOwnerPlayerIDs)-1]
	return getActionString(lastActionBs, lastActionOwnerPlayerID, playerID)
}

func getActionString(lastActionBs json.RawMessage, lastActionOwnerPlayerID int, playerID int) string {
	lastAction, err := truco.DeserializeAction(lastActionBs)
	if err != nil {
		return "Error deserializando acción"
	}

	who := "Vos"
	suffix := "ste"
	if playerID != lastActionOwnerPlayerID {
		who = "Oponente"
		suffix = ""
	}

	var what string
	switch lastAction.GetName() {
	case truco.PLAY_CARD:
		action := lastAction.(truco.ActionPlayCard)
		what = fmt.Sprintf("tira%v %v", suffix, getCardString(action.Card))
	case truco.CALL_ENVIDO:
		action := lastAction.(truco.ActionCallEnvido)
		what = fmt.Sprintf("canta%v %v", suffix, spanishLevel(action.Level))
	case truco.CALL_TRUCO:
		action := lastAction.(truco.ActionCallTruco)
		what = fmt.Sprintf("canta%v %v", suffix, spanishLevel(action.Level))
	case truco.RESPOND_TO_CALL:
		action := lastAction.(truco.ActionRespondToCall)
		if action.Accept {
			what = fmt.Sprintf("dij%v quiero", pastSuffix(suffix))
		} else {
			what = fmt.Sprintf("dij%v no quiero", pastSuffix(suffix))
		}
	case truco.DECLARE_ENVIDO_POINTS:
		action := lastAction.(truco.ActionDeclareEnvidoPoints)
		what = fmt.Sprintf("canta%v %v de envido", suffix, action.Points)
	case truco.ABANDON:
		what = "te fuiste al mazo"
		if who == "Oponente" {
			what = "se fue al mazo"
		}
	default:
		what = "acción desconocida"
	}

	return fmt.Sprintf("%v %v", who, what)
}

func pastSuffix(suffix string) string {
	if suffix == "ste" {
		return "iste"
	}
	return "o"
}

func (u *ui) startKeyEventLoop() {
	keyPressesCh := make(chan termbox.Event)
	go func() {
		for {
			event := termbox.PollEvent()
			if event.Type != termbox.EventKey {
				continue
			}
			if event.Key == termbox.KeyEsc || event.Key == termbox.KeyCtrlC || event.Key == termbox.KeyCtrlD || event.Key == termbox.KeyCtrlZ || event.Ch == 'q' {
				termbox.Close()
				log.Println("¡Chau!")
				os.Exit(0)
			}
			keyPressesCh <- event
		}
	}()

	go func() {
		for {
			select {
			case <-keyPressesCh:
			case <-u.wantKeyPressCh:
				event := <-keyPressesCh
				u.sendKeyPressCh <- event.Ch
			}
		}
	}()
}

func (u *ui) pressAnyKey() {
	u.wantKeyPressCh <- struct{}{}
	<-u.sendKeyPressCh
}

func (u *ui) pressAnyNumber() int {
	u.wantKeyPressCh <- struct{}{}
	r := <-u.sendKeyPressCh
	num, err := strconv.Atoi(string(r))
	if err != nil {
		return u.pressAnyNumber()
	}
	return num
}

func spanishAction(action truco.Action) string {
	switch action.GetName() {
	case truco.PLAY_CARD:
		return getCardString(action.(truco.ActionPlayCard).Card)
	case truco.CALL_ENVIDO:
		return spanishLevel(action.(truco.ActionCallEnvido).Level)
	case truco.CALL_TRUCO:
		return spanishLevel(action.(truco.ActionCallTruco).Level)
	case truco.RESPOND_TO_CALL:
		if action.(truco.ActionRespondToCall).Accept {
			return "Quiero"
		}
		return "No quiero"
	case truco.DECLARE_ENVIDO_POINTS:
		return fmt.Sprintf("Cantar %v", action.(truco.ActionDeclareEnvidoPoints).Points)
	case truco.ABANDON:
		return "Irse al mazo"
	default:
		return "???"
	}
}

func _deserializeActions(as []json.RawMessage) []truco.Action {
	_as := []truco.Action{}
	for _, a := range as {
		_a, _ := truco.DeserializeAction(a)
		_as = append(_as, _a)
	}
	return _as
}
