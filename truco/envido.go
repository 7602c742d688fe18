package truco

import "strings"

// Resolution is the lifecycle of a bidding ladder within one hand.
type Resolution string

const (
	ResolutionNone             Resolution = "none"
	ResolutionAwaitingResponse Resolution = "awaiting-response"
	ResolutionAccepted         Resolution = "accepted"
	ResolutionRejected         Resolution = "rejected"
)

const (
	ENVIDO       = "envido"
	REAL_ENVIDO  = "real_envido"
	FALTA_ENVIDO = "falta_envido"
)

// EnvidoCall is one call in the envido chain, tagged with the calling team.
type EnvidoCall struct {
	Level  string `json:"level"`
	TeamID int    `json:"teamID"`
}

// EnvidoSequence is the envido bidding ladder for one hand. A fresh instance is
// created per hand and never reused.
type EnvidoSequence struct {
	Calls      []EnvidoCall `json:"calls"`
	Resolution Resolution   `json:"resolution"`

	// WindowOpen is true until the first card of the hand is played.
	WindowOpen bool `json:"windowOpen"`

	// Points is the value at stake, fixed at acceptance or rejection time.
	Points int `json:"points"`

	// WinnerTeamID is set once the ladder resolves with a winner, else -1.
	WinnerTeamID int `json:"winnerTeamID"`

	// Declared maps team id to the envido value its pie declared after an
	// accepted chain.
	Declared map[int]int `json:"declared"`
}

func newEnvidoSequence() *EnvidoSequence {
	return &EnvidoSequence{
		Calls:        []EnvidoCall{},
		Resolution:   ResolutionNone,
		WindowOpen:   true,
		WinnerTeamID: -1,
		Declared:     map[int]int{},
	}
}

// envidoTransitions is the transition table of the ladder, keyed by the call
// chain so far. A chain with no entry is terminal: nothing can be called over
// it.
var envidoTransitions = map[string][]string{
	"":                          {ENVIDO, REAL_ENVIDO, FALTA_ENVIDO},
	"envido":                    {ENVIDO, REAL_ENVIDO, FALTA_ENVIDO},
	"envido,envido":             {REAL_ENVIDO, FALTA_ENVIDO},
	"real_envido":               {FALTA_ENVIDO},
	"envido,real_envido":        {FALTA_ENVIDO},
	"envido,envido,real_envido": {FALTA_ENVIDO},
}

// envidoAcceptedPoints values each complete accepted chain that does not
// contain falta envido.
var envidoAcceptedPoints = map[string]int{
	"envido":                    2,
	"envido,envido":             4,
	"real_envido":               3,
	"envido,real_envido":        5,
	"envido,envido,real_envido": 7,
}

// envidoRejectedPoints values each rejected chain: the declined value of the
// call preceding the rejected one (bare call = 1, second envido = 2,
// real envido = 3).
var envidoRejectedPoints = map[string]int{
	"envido":                                 1,
	"real_envido":                            1,
	"falta_envido":                           1,
	"envido,envido":                          1,
	"envido,real_envido":                     1,
	"envido,falta_envido":                    1,
	"envido,envido,real_envido":              2,
	"envido,envido,falta_envido":             2,
	"real_envido,falta_envido":               3,
	"envido,real_envido,falta_envido":        3,
	"envido,envido,real_envido,falta_envido": 3,
}

func (s *EnvidoSequence) key() string {
	levels := make([]string, len(s.Calls))
	for i, call := range s.Calls {
		levels[i] = call.Level
	}
	return strings.Join(levels, ",")
}

// IsStarted reports whether any envido call has been made this hand.
func (s *EnvidoSequence) IsStarted() bool {
	return len(s.Calls) > 0
}

// IsResolved reports whether the ladder has reached a terminal state.
func (s *EnvidoSequence) IsResolved() bool {
	return s.Resolution == ResolutionAccepted || s.Resolution == ResolutionRejected
}

// CanCall reports whether the given level is reachable from the current chain.
func (s *EnvidoSequence) CanCall(level string) bool {
	for _, next := range envidoTransitions[s.key()] {
		if next == level {
			return true
		}
	}
	return false
}

// LastCallTeamID returns the team holding the outstanding call, or -1.
func (s *EnvidoSequence) LastCallTeamID() int {
	if len(s.Calls) == 0 {
		return -1
	}
	return s.Calls[len(s.Calls)-1].TeamID
}

func (s *EnvidoSequence) call(level string, teamID int) {
	s.Calls = append(s.Calls, EnvidoCall{Level: level, TeamID: teamID})
	s.Resolution = ResolutionAwaitingResponse
}

func (s *EnvidoSequence) hasFalta() bool {
	for _, call := range s.Calls {
		if call.Level == FALTA_ENVIDO {
			return true
		}
	}
	return false
}

// AcceptedPoints returns the value of the accepted chain. A chain containing
// falta envido is worth whatever the leading team still needs to reach the
// match target, replacing the running sum.
func (s *EnvidoSequence) AcceptedPoints(targetScore int, teamScores map[int]int) int {
	if s.hasFalta() {
		maxScore := 0
		for _, score := range teamScores {
			if score > maxScore {
				maxScore = score
			}
		}
		points := targetScore - maxScore
		if points < 1 {
			points = 1
		}
		return points
	}
	return envidoAcceptedPoints[s.key()]
}

// RejectedPoints returns the value awarded to the last caller when the
// outstanding call is rejected. Minimum 1.
func (s *EnvidoSequence) RejectedPoints() int {
	if points, ok := envidoRejectedPoints[s.key()]; ok {
		return points
	}
	return 1
}
