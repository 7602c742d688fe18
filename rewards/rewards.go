// Package rewards computes post-match rating, coin and statistics deltas.
// It performs no I/O: the caller persists the returned batch atomically.
package rewards

import (
	"math"
	"math/rand"
)

// RatingFloor is the minimum rating a player can drop to.
const RatingFloor = 100

// AbandonPenalty is subtracted from an abandoning player on top of the loss.
const AbandonPenalty = 5

// AbandonEnvidoPenalty is additionally subtracted when envido had already been
// decided against the abandoner.
const AbandonEnvidoPenalty = 2

// PlayerResult is one player's final match outcome, as reported by the engine
// plus the caller's stored ratings.
type PlayerResult struct {
	PlayerID       string
	Rating         int
	OpponentRating int

	Won       bool
	Abandoned bool

	// EnvidoContested is true if any envido chain was resolved in the match.
	EnvidoContested bool

	// WonEnvido is true if the player's team took the envido portion.
	WonEnvido bool
}

// Reward is the computed delta batch for one player. All rewards of a match
// must be persisted together or not at all.
type Reward struct {
	PlayerID    string
	RatingDelta int
	NewRating   int
	Coins       int
	Wins        int
	Losses      int
	Abandons    int
}

// KFactor returns the rating-banded K used for the base delta.
func KFactor(rating int) int {
	switch {
	case rating < 800:
		return 40
	case rating < 1200:
		return 32
	case rating < 1600:
		return 24
	case rating < 2000:
		return 16
	case rating < 2400:
		return 12
	default:
		return 8
	}
}

// ExpectedScore is the logistic expectation of winning against the opponent.
func ExpectedScore(rating, opponentRating int) float64 {
	return 1 / (1 + math.Pow(10, float64(opponentRating-rating)/400))
}

// Calculate turns the final per-player outcomes into reward deltas. The random
// source is injected so coin rolls are testable; one roll covers the whole
// winning side. Abandonment-derived results earn nobody any coins.
func Calculate(results []PlayerResult, rng *rand.Rand) []Reward {
	abandonedMatch := false
	for _, r := range results {
		if r.Abandoned {
			abandonedMatch = true
		}
	}

	coins := 0
	if !abandonedMatch {
		coins = 5 + rng.Intn(6)
	}

	rewards := make([]Reward, len(results))
	for i, r := range results {
		rewards[i] = calculateOne(r, coins)
	}
	return rewards
}

func calculateOne(r PlayerResult, coins int) Reward {
	actual := 0.0
	if r.Won && !r.Abandoned {
		actual = 1.0
	}

	expected := ExpectedScore(r.Rating, r.OpponentRating)
	delta := int(math.Round(float64(KFactor(r.Rating)) * (actual - expected)))

	// The result always moves the rating by at least 1 in its own direction.
	if actual == 1 && delta < 1 {
		delta = 1
	}
	if actual == 0 && delta > -1 {
		delta = -1
	}

	if r.EnvidoContested {
		if r.WonEnvido {
			delta++
		} else {
			delta--
		}
	}

	if r.Abandoned {
		delta -= AbandonPenalty
		if r.EnvidoContested && !r.WonEnvido {
			delta -= AbandonEnvidoPenalty
		}
	}

	newRating := r.Rating + delta
	if newRating < RatingFloor {
		newRating = RatingFloor
	}

	reward := Reward{
		PlayerID:    r.PlayerID,
		RatingDelta: newRating - r.Rating,
		NewRating:   newRating,
	}

	switch {
	case r.Abandoned:
		reward.Abandons = 1
		reward.Losses = 1
	case r.Won:
		reward.Wins = 1
		reward.Coins = coins
	default:
		reward.Losses = 1
	}
	return reward
}
