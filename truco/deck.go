package truco

import (
	"fmt"
	"math/rand"
)

const (
	ORO    = "oro"
	COPA   = "copa"
	ESPADA = "espada"
	BASTO  = "basto"
)

// Card represents a Spanish deck card.
type Card struct {
	// Suit is the card's suit, which can be "oro", "copa", "espada" or "basto".
	Suit string `json:"suit"`

	// Number is the card's number, from 1 to 12 (8s and 9s are not used).
	Number int `json:"number"`
}

func (c Card) String() string {
	return fmt.Sprintf("%d de %s", c.Number, c.Suit)
}

// trucoSpecialValues holds the four "manilla" cards that outrank everything else.
var trucoSpecialValues = map[Card]int{
	{Suit: ESPADA, Number: 1}: 13,
	{Suit: BASTO, Number: 1}:  12,
	{Suit: ESPADA, Number: 7}: 11,
	{Suit: ORO, Number: 7}:    10,
}

// trucoCommonValues ranks the remaining cards by number alone.
var trucoCommonValues = map[int]int{
	3:  9,
	2:  8,
	1:  7,
	12: 6,
	11: 5,
	10: 4,
	7:  3,
	6:  2,
	5:  1,
	4:  0,
}

// TrucoValue returns the card's strength for winning tricks. Higher wins.
func (c Card) TrucoValue() int {
	if value, ok := trucoSpecialValues[c]; ok {
		return value
	}
	return trucoCommonValues[c.Number]
}

// EnvidoValue returns the card's value for envido: 1-7 count as their number,
// 10/11/12 count as zero.
func (c Card) EnvidoValue() int {
	if c.Number <= 7 {
		return c.Number
	}
	return 0
}

// CalculateEnvido returns the best envido score obtainable from the given cards:
// 20 plus the two highest envido values sharing a suit, or the single highest
// envido value when no two cards share a suit.
func CalculateEnvido(cards []Card) int {
	best := 0
	for i := 0; i < len(cards); i++ {
		if v := cards[i].EnvidoValue(); v > best {
			best = v
		}
		for j := i + 1; j < len(cards); j++ {
			if cards[i].Suit != cards[j].Suit {
				continue
			}
			if v := 20 + cards[i].EnvidoValue() + cards[j].EnvidoValue(); v > best {
				best = v
			}
		}
	}
	return best
}

type deck struct {
	cards []Card
}

func makeSpanishCards() []Card {
	cards := []Card{}
	suits := []string{ORO, COPA, ESPADA, BASTO}
	for _, suit := range suits {
		for i := 1; i <= 12; i++ {
			if i == 8 || i == 9 {
				continue
			}
			cards = append(cards, Card{Suit: suit, Number: i})
		}
	}
	return cards
}

func newDeck() *deck {
	return &deck{cards: makeSpanishCards()}
}

func (d *deck) shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// deal removes and returns n cards from the top of the deck.
func (d *deck) deal(n int) ([]Card, error) {
	if len(d.cards) < n {
		return nil, ErrInsufficientCards
	}
	dealt := make([]Card, n)
	copy(dealt, d.cards[:n])
	d.cards = d.cards[n:]
	return dealt, nil
}
