package truco

import (
	"math/rand"
	"testing"
)

func TestNewDeckHas40Cards(t *testing.T) {
	d := newDeck()
	if len(d.cards) != 40 {
		t.Errorf("Expected 40 cards in deck, got %d", len(d.cards))
	}
	for _, card := range d.cards {
		if card.Number == 8 || card.Number == 9 {
			t.Errorf("Deck should not contain 8s or 9s, found %v", card)
		}
	}
}

func TestTrucoRankingIsTotalOrder(t *testing.T) {
	// Strongest to weakest. Cards within one group tie by construction.
	ranking := [][]Card{
		{{Suit: ESPADA, Number: 1}},
		{{Suit: BASTO, Number: 1}},
		{{Suit: ESPADA, Number: 7}},
		{{Suit: ORO, Number: 7}},
		{{Suit: ORO, Number: 3}, {Suit: COPA, Number: 3}, {Suit: ESPADA, Number: 3}, {Suit: BASTO, Number: 3}},
		{{Suit: ORO, Number: 2}, {Suit: COPA, Number: 2}, {Suit: ESPADA, Number: 2}, {Suit: BASTO, Number: 2}},
		{{Suit: ORO, Number: 1}, {Suit: COPA, Number: 1}},
		{{Suit: ORO, Number: 12}, {Suit: COPA, Number: 12}, {Suit: ESPADA, Number: 12}, {Suit: BASTO, Number: 12}},
		{{Suit: ORO, Number: 11}, {Suit: COPA, Number: 11}, {Suit: ESPADA, Number: 11}, {Suit: BASTO, Number: 11}},
		{{Suit: ORO, Number: 10}, {Suit: COPA, Number: 10}, {Suit: ESPADA, Number: 10}, {Suit: BASTO, Number: 10}},
		{{Suit: COPA, Number: 7}, {Suit: BASTO, Number: 7}},
		{{Suit: ORO, Number: 6}, {Suit: COPA, Number: 6}, {Suit: ESPADA, Number: 6}, {Suit: BASTO, Number: 6}},
		{{Suit: ORO, Number: 5}, {Suit: COPA, Number: 5}, {Suit: ESPADA, Number: 5}, {Suit: BASTO, Number: 5}},
		{{Suit: ORO, Number: 4}, {Suit: COPA, Number: 4}, {Suit: ESPADA, Number: 4}, {Suit: BASTO, Number: 4}},
	}

	for i := 0; i < len(ranking)-1; i++ {
		for _, stronger := range ranking[i] {
			for _, weaker := range ranking[i+1] {
				if stronger.TrucoValue() <= weaker.TrucoValue() {
					t.Errorf("%v (value %d) should beat %v (value %d)",
						stronger, stronger.TrucoValue(), weaker, weaker.TrucoValue())
				}
			}
		}
	}

	// Same-group cards tie.
	for _, group := range ranking {
		for _, a := range group {
			for _, b := range group {
				if a.TrucoValue() != b.TrucoValue() {
					t.Errorf("%v and %v should have equal truco value", a, b)
				}
			}
		}
	}
}

func TestEnvidoValues(t *testing.T) {
	tests := []struct {
		number        int
		expectedValue int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 4},
		{5, 5},
		{6, 6},
		{7, 7},
		{10, 0},
		{11, 0},
		{12, 0},
	}

	for _, tt := range tests {
		card := Card{Suit: COPA, Number: tt.number}
		if card.EnvidoValue() != tt.expectedValue {
			t.Errorf("Card %d should have envido value %d, got %d", tt.number, tt.expectedValue, card.EnvidoValue())
		}
	}
}

func TestCalculateEnvido(t *testing.T) {
	tests := []struct {
		name     string
		cards    []Card
		expected int
	}{
		{
			name:     "two cards same suit",
			cards:    []Card{{Suit: ORO, Number: 7}, {Suit: ORO, Number: 6}, {Suit: ESPADA, Number: 1}},
			expected: 33,
		},
		{
			name:     "figure counts as zero within suit",
			cards:    []Card{{Suit: COPA, Number: 12}, {Suit: COPA, Number: 4}, {Suit: BASTO, Number: 2}},
			expected: 24,
		},
		{
			name:     "no shared suit takes highest single value",
			cards:    []Card{{Suit: ORO, Number: 5}, {Suit: COPA, Number: 3}, {Suit: ESPADA, Number: 7}},
			expected: 7,
		},
		{
			name:     "three same suit picks the best pair",
			cards:    []Card{{Suit: BASTO, Number: 2}, {Suit: BASTO, Number: 5}, {Suit: BASTO, Number: 7}},
			expected: 32,
		},
		{
			name:     "all figures no shared suit",
			cards:    []Card{{Suit: ORO, Number: 10}, {Suit: COPA, Number: 11}, {Suit: ESPADA, Number: 12}},
			expected: 0,
		},
		{
			name:     "two figures same suit",
			cards:    []Card{{Suit: ORO, Number: 10}, {Suit: ORO, Number: 11}, {Suit: ESPADA, Number: 3}},
			expected: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateEnvido(tt.cards)
			if got != tt.expected {
				t.Errorf("Expected envido %d, got %d", tt.expected, got)
			}

			// Order must not matter.
			reversed := []Card{tt.cards[2], tt.cards[0], tt.cards[1]}
			if got2 := CalculateEnvido(reversed); got2 != got {
				t.Errorf("Envido should be order-independent, got %d and %d", got, got2)
			}
		})
	}
}

func TestDealInsufficientCards(t *testing.T) {
	d := newDeck()
	d.shuffle(rand.New(rand.NewSource(1)))

	if _, err := d.deal(40); err != nil {
		t.Errorf("Dealing the whole deck should succeed, got %v", err)
	}
	if _, err := d.deal(1); err != ErrInsufficientCards {
		t.Errorf("Expected ErrInsufficientCards, got %v", err)
	}
}
