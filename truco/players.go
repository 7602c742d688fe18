package truco

import "fmt"

// Player represents a seated player. Relations are expressed through ids so the
// whole game state stays snapshot-serializable.
type Player struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	TeamID int    `json:"teamID"`

	// Hand holds the cards not yet played this hand.
	Hand []Card `json:"hand"`

	// PlayedCards holds the cards already played this hand, in play order.
	PlayedCards []Card `json:"playedCards"`

	// EnvidoPoints is the player's best envido score for the current hand,
	// computed once at deal time.
	EnvidoPoints int `json:"envidoPoints"`

	IsConnected bool `json:"isConnected"`
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (team %d)", p.Name, p.TeamID)
}

// HasCard reports whether the player still holds the given card.
func (p *Player) HasCard(card Card) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// playCard moves a card from the player's hand to their played pile.
func (p *Player) playCard(card Card) error {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			p.PlayedCards = append(p.PlayedCards, card)
			return nil
		}
	}
	return ErrCardNotInHand
}

// receiveCards replaces the player's hand for a new deal.
func (p *Player) receiveCards(cards []Card) {
	p.Hand = cards
	p.PlayedCards = []Card{}
	p.EnvidoPoints = CalculateEnvido(cards)
}

// TeamOf returns the team id of the given player, or -1 if unknown.
func (g GameState) TeamOf(playerID int) int {
	player, ok := g.Players[playerID]
	if !ok {
		return -1
	}
	return player.TeamID
}

// OpponentTeamOf returns the id of the other team.
func (g GameState) OpponentTeamOf(teamID int) int {
	return 1 - teamID
}

// ManoPlayerID returns the player holding the "mano" role for the current hand:
// the first seat in turn order, who leads the first trick and owns tie-breaks.
func (g GameState) ManoPlayerID() int {
	return g.TurnOrder[0]
}

// ManoTeamID returns the team of the mano player.
func (g GameState) ManoTeamID() int {
	return g.TeamOf(g.ManoPlayerID())
}

// PieOf returns the player id of the given team's "pie": the team's last seat
// in turn order, authorized to speak for envido and to answer calls.
func (g GameState) PieOf(teamID int) int {
	pie := -1
	for _, playerID := range g.TurnOrder {
		if g.TeamOf(playerID) == teamID {
			pie = playerID
		}
	}
	return pie
}

// IsPie reports whether the player is their team's pie.
func (g GameState) IsPie(playerID int) bool {
	return g.PieOf(g.TeamOf(playerID)) == playerID
}

// TeamEnvidoPoints returns the best envido score across the team's players.
func (g GameState) TeamEnvidoPoints(teamID int) int {
	best := 0
	for _, playerID := range g.TurnOrder {
		player := g.Players[playerID]
		if player.TeamID == teamID && player.EnvidoPoints > best {
			best = player.EnvidoPoints
		}
	}
	return best
}

// TeamPlayerIDs returns the given team's player ids in turn order.
func (g GameState) TeamPlayerIDs(teamID int) []int {
	ids := []int{}
	for _, playerID := range g.TurnOrder {
		if g.TeamOf(playerID) == teamID {
			ids = append(ids, playerID)
		}
	}
	return ids
}

func (g GameState) nextPlayerAfter(playerID int) int {
	for i, id := range g.TurnOrder {
		if id == playerID {
			return g.TurnOrder[(i+1)%len(g.TurnOrder)]
		}
	}
	return g.TurnOrder[0]
}
