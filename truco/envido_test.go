package truco

import "testing"

func envidoSequenceWith(levels ...string) *EnvidoSequence {
	seq := newEnvidoSequence()
	for i, level := range levels {
		seq.call(level, i%2)
	}
	return seq
}

func TestEnvidoTransitions(t *testing.T) {
	tests := []struct {
		chain   []string
		level   string
		allowed bool
	}{
		{[]string{}, ENVIDO, true},
		{[]string{}, REAL_ENVIDO, true},
		{[]string{}, FALTA_ENVIDO, true},
		{[]string{ENVIDO}, ENVIDO, true},
		{[]string{ENVIDO}, REAL_ENVIDO, true},
		{[]string{ENVIDO}, FALTA_ENVIDO, true},
		{[]string{ENVIDO, ENVIDO}, ENVIDO, false},
		{[]string{ENVIDO, ENVIDO}, REAL_ENVIDO, true},
		{[]string{ENVIDO, ENVIDO}, FALTA_ENVIDO, true},
		{[]string{REAL_ENVIDO}, ENVIDO, false},
		{[]string{REAL_ENVIDO}, REAL_ENVIDO, false},
		{[]string{REAL_ENVIDO}, FALTA_ENVIDO, true},
		{[]string{ENVIDO, REAL_ENVIDO}, FALTA_ENVIDO, true},
		{[]string{ENVIDO, REAL_ENVIDO}, ENVIDO, false},
		{[]string{ENVIDO, ENVIDO, REAL_ENVIDO}, FALTA_ENVIDO, true},
		{[]string{FALTA_ENVIDO}, ENVIDO, false},
		{[]string{FALTA_ENVIDO}, REAL_ENVIDO, false},
		{[]string{FALTA_ENVIDO}, FALTA_ENVIDO, false},
		{[]string{ENVIDO, ENVIDO, REAL_ENVIDO, FALTA_ENVIDO}, FALTA_ENVIDO, false},
	}

	for _, tt := range tests {
		seq := envidoSequenceWith(tt.chain...)
		if got := seq.CanCall(tt.level); got != tt.allowed {
			t.Errorf("Chain %v, call %s: expected allowed=%v, got %v", tt.chain, tt.level, tt.allowed, got)
		}
	}
}

func TestEnvidoAcceptedPoints(t *testing.T) {
	scores := map[int]int{0: 0, 1: 0}
	tests := []struct {
		chain    []string
		expected int
	}{
		{[]string{ENVIDO}, 2},
		{[]string{ENVIDO, ENVIDO}, 4},
		{[]string{REAL_ENVIDO}, 3},
		{[]string{ENVIDO, REAL_ENVIDO}, 5},
		{[]string{ENVIDO, ENVIDO, REAL_ENVIDO}, 7},
	}

	for _, tt := range tests {
		seq := envidoSequenceWith(tt.chain...)
		if got := seq.AcceptedPoints(30, scores); got != tt.expected {
			t.Errorf("Chain %v: expected %d points, got %d", tt.chain, tt.expected, got)
		}
	}
}

func TestFaltaEnvidoPointsDependOnScores(t *testing.T) {
	tests := []struct {
		scores   map[int]int
		target   int
		expected int
	}{
		{map[int]int{0: 24, 1: 20}, 30, 6},
		{map[int]int{0: 0, 1: 0}, 30, 30},
		{map[int]int{0: 10, 1: 14}, 15, 1},
		{map[int]int{0: 29, 1: 29}, 30, 1},
	}

	for _, tt := range tests {
		seq := envidoSequenceWith(ENVIDO, FALTA_ENVIDO)
		if got := seq.AcceptedPoints(tt.target, tt.scores); got != tt.expected {
			t.Errorf("Scores %v target %d: expected %d points, got %d", tt.scores, tt.target, tt.expected, got)
		}
	}
}

func TestEnvidoRejectedPoints(t *testing.T) {
	tests := []struct {
		chain    []string
		expected int
	}{
		{[]string{ENVIDO}, 1},
		{[]string{REAL_ENVIDO}, 1},
		{[]string{FALTA_ENVIDO}, 1},
		{[]string{ENVIDO, ENVIDO}, 1},
		{[]string{ENVIDO, REAL_ENVIDO}, 1},
		{[]string{ENVIDO, FALTA_ENVIDO}, 1},
		{[]string{ENVIDO, ENVIDO, REAL_ENVIDO}, 2},
		{[]string{ENVIDO, ENVIDO, FALTA_ENVIDO}, 2},
		{[]string{REAL_ENVIDO, FALTA_ENVIDO}, 3},
		{[]string{ENVIDO, REAL_ENVIDO, FALTA_ENVIDO}, 3},
		{[]string{ENVIDO, ENVIDO, REAL_ENVIDO, FALTA_ENVIDO}, 3},
	}

	for _, tt := range tests {
		seq := envidoSequenceWith(tt.chain...)
		if got := seq.RejectedPoints(); got != tt.expected {
			t.Errorf("Chain %v rejected: expected %d points, got %d", tt.chain, tt.expected, got)
		}
	}
}

func TestEnvidoSequenceLifecycle(t *testing.T) {
	seq := newEnvidoSequence()

	if seq.IsStarted() {
		t.Error("Fresh sequence should not be started")
	}
	if seq.IsResolved() {
		t.Error("Fresh sequence should not be resolved")
	}
	if seq.LastCallTeamID() != -1 {
		t.Errorf("Expected no last caller, got %d", seq.LastCallTeamID())
	}

	seq.call(ENVIDO, 1)
	if !seq.IsStarted() {
		t.Error("Sequence should be started after a call")
	}
	if seq.Resolution != ResolutionAwaitingResponse {
		t.Errorf("Expected awaiting-response, got %v", seq.Resolution)
	}
	if seq.LastCallTeamID() != 1 {
		t.Errorf("Expected last caller team 1, got %d", seq.LastCallTeamID())
	}

	seq.Resolution = ResolutionRejected
	if !seq.IsResolved() {
		t.Error("Rejected sequence should be resolved")
	}
}
