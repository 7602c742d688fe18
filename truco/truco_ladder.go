package truco

const (
	TRUCO       = "truco"
	RETRUCO     = "retruco"
	VALE_CUATRO = "vale_cuatro"
)

// TrucoCall is one call in the truco chain, tagged with the calling team.
type TrucoCall struct {
	Level  string `json:"level"`
	TeamID int    `json:"teamID"`
}

// TrucoSequence is the truco bidding ladder for one hand: truco, retruco,
// vale cuatro, strictly sequential. A fresh instance is created per hand.
type TrucoSequence struct {
	Calls      []TrucoCall `json:"calls"`
	Resolution Resolution  `json:"resolution"`

	// OwnerTeamID is the team that made the last call, or -1. Only the other
	// team may respond to it or raise the next level once accepted.
	OwnerTeamID int `json:"ownerTeamID"`

	// AcceptedLevel is the highest level that has been accepted, or "".
	AcceptedLevel string `json:"acceptedLevel"`
}

func newTrucoSequence() *TrucoSequence {
	return &TrucoSequence{
		Calls:       []TrucoCall{},
		Resolution:  ResolutionNone,
		OwnerTeamID: -1,
	}
}

// trucoEscalations maps the last accepted level to the only callable next one.
var trucoEscalations = map[string]string{
	"":      TRUCO,
	TRUCO:   RETRUCO,
	RETRUCO: VALE_CUATRO,
}

// trucoLevelPoints is the hand's base value once a level is accepted.
var trucoLevelPoints = map[string]int{
	TRUCO:       2,
	RETRUCO:     3,
	VALE_CUATRO: 4,
}

// IsStarted reports whether any truco call has been made this hand.
func (s *TrucoSequence) IsStarted() bool {
	return len(s.Calls) > 0
}

// NextLevel returns the next callable level, if any. Escalation requires the
// prior level to have been accepted.
func (s *TrucoSequence) NextLevel() (string, bool) {
	if s.Resolution == ResolutionAwaitingResponse || s.Resolution == ResolutionRejected {
		return "", false
	}
	next, ok := trucoEscalations[s.AcceptedLevel]
	return next, ok
}

// CanCall reports whether teamID may call the given level now. You cannot
// re-raise your own call: once a level is accepted, the right to raise belongs
// to the team that did not make it.
func (s *TrucoSequence) CanCall(level string, teamID int) bool {
	next, ok := s.NextLevel()
	if !ok || next != level {
		return false
	}
	return s.OwnerTeamID != teamID
}

func (s *TrucoSequence) call(level string, teamID int) {
	s.Calls = append(s.Calls, TrucoCall{Level: level, TeamID: teamID})
	s.OwnerTeamID = teamID
	s.Resolution = ResolutionAwaitingResponse
}

func (s *TrucoSequence) accept() {
	s.AcceptedLevel = s.Calls[len(s.Calls)-1].Level
	s.Resolution = ResolutionAccepted
}

// HandValue returns what the hand is worth to its winner via the trick engine:
// 1 if no truco level was ever accepted, else the accepted level's value.
func (s *TrucoSequence) HandValue() int {
	if s.AcceptedLevel == "" {
		return 1
	}
	return trucoLevelPoints[s.AcceptedLevel]
}

// RejectedPoints returns the value awarded to the caller when the outstanding
// call is rejected: the level preceding the rejected one.
func (s *TrucoSequence) RejectedPoints() int {
	if len(s.Calls) == 0 {
		return 0
	}
	return trucoLevelPoints[s.Calls[len(s.Calls)-1].Level] - 1
}
