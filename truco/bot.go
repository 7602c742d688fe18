package truco

import "sort"

// Bot chooses an action on behalf of a player. Callers can use it for AI
// opponents or to inject a default action when a turn clock elapses; the
// engine treats either identically to player input.
type Bot interface {
	ChooseAction(gameState GameState, playerID int) Action
}

// SimpleBot plays conservative, rule-of-thumb truco.
type SimpleBot struct{}

// NewBot creates a new simple bot.
func NewBot() Bot {
	return &SimpleBot{}
}

// ChooseAction picks one of the player's legal actions, or nil if none.
func (b *SimpleBot) ChooseAction(g GameState, playerID int) Action {
	actions := []Action{}
	for _, action := range g.CalculatePossibleActions() {
		if action.GetPlayerID() == playerID {
			actions = append(actions, action)
		}
	}
	if len(actions) == 0 {
		return nil
	}

	if action := b.chooseDeclaration(actions); action != nil {
		return action
	}
	if action := b.chooseResponse(g, playerID, actions); action != nil {
		return action
	}
	if action := b.chooseCall(g, playerID, actions); action != nil {
		return action
	}
	return b.chooseCard(g, playerID, actions)
}

func (b *SimpleBot) chooseDeclaration(actions []Action) Action {
	for _, action := range actions {
		if action.GetName() == DECLARE_ENVIDO_POINTS {
			return action
		}
	}
	return nil
}

func (b *SimpleBot) chooseResponse(g GameState, playerID int, actions []Action) Action {
	var accept, reject Action
	for _, action := range actions {
		respond, ok := action.(ActionRespondToCall)
		if !ok {
			continue
		}
		if respond.Accept {
			accept = action
		} else {
			reject = action
		}
	}
	if accept == nil || reject == nil {
		return nil
	}

	team := g.TeamOf(playerID)
	if g.Pending != nil && g.Pending.Kind == PendingEnvidoResponse {
		if g.TeamEnvidoPoints(team) >= 26 {
			return accept
		}
		return reject
	}
	if bestCardValue(g, team) >= 10 {
		return accept
	}
	return reject
}

func (b *SimpleBot) chooseCall(g GameState, playerID int, actions []Action) Action {
	team := g.TeamOf(playerID)
	envidoPoints := g.TeamEnvidoPoints(team)

	for _, action := range actions {
		call, ok := action.(ActionCallEnvido)
		if !ok {
			continue
		}
		if call.Level == FALTA_ENVIDO && envidoPoints >= 31 {
			return action
		}
		if call.Level == ENVIDO && envidoPoints >= 28 {
			return action
		}
	}
	for _, action := range actions {
		if _, ok := action.(ActionCallTruco); ok && bestCardValue(g, team) >= 12 {
			return action
		}
	}
	return nil
}

func (b *SimpleBot) chooseCard(g GameState, playerID int, actions []Action) Action {
	plays := []ActionPlayCard{}
	for _, action := range actions {
		if play, ok := action.(ActionPlayCard); ok {
			plays = append(plays, play)
		}
	}
	if len(plays) == 0 {
		return nil
	}

	sort.Slice(plays, func(i, j int) bool {
		return plays[i].Card.TrucoValue() < plays[j].Card.TrucoValue()
	})

	// Play the weakest card that still beats the table; otherwise dump the
	// weakest card.
	toBeat := topOpposingValue(g, g.TeamOf(playerID))
	for _, play := range plays {
		if play.Card.TrucoValue() > toBeat {
			return play
		}
	}
	return plays[0]
}

func bestCardValue(g GameState, teamID int) int {
	best := -1
	for _, playerID := range g.TeamPlayerIDs(teamID) {
		for _, card := range g.Players[playerID].Hand {
			if card.TrucoValue() > best {
				best = card.TrucoValue()
			}
		}
	}
	return best
}

func topOpposingValue(g GameState, teamID int) int {
	top := -1
	if len(g.Tricks) == 0 {
		return top
	}
	for _, pc := range g.Tricks[len(g.Tricks)-1].Cards {
		if g.TeamOf(pc.PlayerID) != teamID && pc.Card.TrucoValue() > top {
			top = pc.Card.TrucoValue()
		}
	}
	return top
}
