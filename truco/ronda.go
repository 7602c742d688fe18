package truco

// TeamNone marks a tied ("parda") trick.
const TeamNone = -1

// PlayedCard is a card on the table, tagged with the player who threw it.
type PlayedCard struct {
	PlayerID int  `json:"playerID"`
	Card     Card `json:"card"`
}

// Trick is one card-per-player exchange within a hand.
type Trick struct {
	Cards []PlayedCard `json:"cards"`

	// WinnerTeamID is the winning team once resolved, or TeamNone for a parda.
	WinnerTeamID int `json:"winnerTeamID"`

	Resolved bool `json:"resolved"`
}

func newTrick() *Trick {
	return &Trick{Cards: []PlayedCard{}, WinnerTeamID: TeamNone}
}

func (t *Trick) add(playerID int, card Card) {
	t.Cards = append(t.Cards, PlayedCard{PlayerID: playerID, Card: card})
}

func (t *Trick) hasPlayed(playerID int) bool {
	for _, pc := range t.Cards {
		if pc.PlayerID == playerID {
			return true
		}
	}
	return false
}

// resolve determines the trick outcome once every active player has thrown.
// The highest truco value wins; if both teams share the top value the trick is
// a parda and no winner is recorded.
func (t *Trick) resolve(teamOf func(playerID int) int) int {
	top := -1
	for _, pc := range t.Cards {
		if pc.Card.TrucoValue() > top {
			top = pc.Card.TrucoValue()
		}
	}

	winnerTeamID := TeamNone
	parda := false
	for _, pc := range t.Cards {
		if pc.Card.TrucoValue() != top {
			continue
		}
		team := teamOf(pc.PlayerID)
		if winnerTeamID == TeamNone {
			winnerTeamID = team
		} else if winnerTeamID != team {
			parda = true
		}
	}
	if parda {
		winnerTeamID = TeamNone
	}

	t.WinnerTeamID = winnerTeamID
	t.Resolved = true
	return winnerTeamID
}

// winnerPlayerID returns the player who leads the next trick: the first player
// in play order holding the top card of the winning team. For a parda the
// trick's leader keeps the lead.
func (t *Trick) winnerPlayerID(teamOf func(playerID int) int) int {
	if t.WinnerTeamID == TeamNone {
		return t.Cards[0].PlayerID
	}
	top := -1
	for _, pc := range t.Cards {
		if pc.Card.TrucoValue() > top {
			top = pc.Card.TrucoValue()
		}
	}
	for _, pc := range t.Cards {
		if pc.Card.TrucoValue() == top && teamOf(pc.PlayerID) == t.WinnerTeamID {
			return pc.PlayerID
		}
	}
	return t.Cards[0].PlayerID
}

// resolveHandWinner evaluates the hand-winner rule over the trick results so
// far (TeamNone entries are pardas). It reports the winning team and whether
// the hand is decided:
//   - two decisive trick wins end the hand immediately;
//   - a parda followed by a decisive trick goes to that trick's winner;
//   - a decisive trick followed by a parda goes to the earlier winner;
//   - a 1-1 split is settled by the third trick, falling back to the first
//     decisive trick if the third is a parda;
//   - three pardas go to the mano's team.
func resolveHandWinner(results []int, manoTeamID int) (int, bool) {
	switch len(results) {
	case 2:
		first, second := results[0], results[1]
		if first != TeamNone && (second == first || second == TeamNone) {
			return first, true
		}
		if first == TeamNone && second != TeamNone {
			return second, true
		}
		return TeamNone, false
	case 3:
		if results[2] != TeamNone {
			return results[2], true
		}
		for _, r := range results {
			if r != TeamNone {
				return r, true
			}
		}
		return manoTeamID, true
	default:
		return TeamNone, false
	}
}
