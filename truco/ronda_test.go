package truco

import "testing"

func twoPlayerTeamOf(playerID int) int {
	return playerID
}

func TestTrickResolveWinner(t *testing.T) {
	trick := newTrick()
	trick.add(0, Card{Suit: ESPADA, Number: 1})
	trick.add(1, Card{Suit: ORO, Number: 3})

	winner := trick.resolve(twoPlayerTeamOf)
	if winner != 0 {
		t.Errorf("Espada 1 should win the trick, got team %d", winner)
	}
	if !trick.Resolved {
		t.Error("Trick should be marked resolved")
	}
	if trick.winnerPlayerID(twoPlayerTeamOf) != 0 {
		t.Errorf("Player 0 should lead the next trick, got %d", trick.winnerPlayerID(twoPlayerTeamOf))
	}
}

func TestTrickResolveParda(t *testing.T) {
	trick := newTrick()
	trick.add(0, Card{Suit: ORO, Number: 3})
	trick.add(1, Card{Suit: COPA, Number: 3})

	winner := trick.resolve(twoPlayerTeamOf)
	if winner != TeamNone {
		t.Errorf("Equal 3s should tie the trick, got team %d", winner)
	}

	// The trick's leader keeps the lead after a parda.
	if trick.winnerPlayerID(twoPlayerTeamOf) != 0 {
		t.Errorf("Leader should keep the lead after a parda, got %d", trick.winnerPlayerID(twoPlayerTeamOf))
	}
}

func TestResolveHandWinner(t *testing.T) {
	const parda = TeamNone
	tests := []struct {
		name       string
		results    []int
		manoTeamID int
		winner     int
		decided    bool
	}{
		{"two wins same team", []int{0, 0}, 0, 0, true},
		{"split needs third trick", []int{0, 1}, 0, parda, false},
		{"win then parda goes to earlier winner", []int{1, parda}, 0, 1, true},
		{"parda then win goes to that winner", []int{parda, 0}, 1, 0, true},
		{"two pardas undecided", []int{parda, parda}, 0, parda, false},
		{"split decided by third", []int{0, 1, 1}, 0, 1, true},
		{"split with parda third falls back to first decisive", []int{1, 0, parda}, 0, 1, true},
		{"two pardas decided by third", []int{parda, parda, 1}, 0, 1, true},
		{"three pardas go to mano", []int{parda, parda, parda}, 1, 1, true},
		{"one trick never decides", []int{0}, 0, parda, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, decided := resolveHandWinner(tt.results, tt.manoTeamID)
			if decided != tt.decided {
				t.Errorf("Expected decided=%v, got %v", tt.decided, decided)
			}
			if decided && winner != tt.winner {
				t.Errorf("Expected winner team %d, got %d", tt.winner, winner)
			}
		})
	}
}
