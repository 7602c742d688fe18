package truco

import "testing"

func TestTrucoEscalationRequiresAcceptance(t *testing.T) {
	seq := newTrucoSequence()

	if next, ok := seq.NextLevel(); !ok || next != TRUCO {
		t.Errorf("Fresh ladder should offer %s, got %q (%v)", TRUCO, next, ok)
	}
	if !seq.CanCall(TRUCO, 0) {
		t.Error("Team 0 should be able to open with truco")
	}

	seq.call(TRUCO, 0)
	if _, ok := seq.NextLevel(); ok {
		t.Error("No escalation should be possible while a call awaits response")
	}
	if seq.CanCall(RETRUCO, 1) {
		t.Error("Retruco should not be callable before truco is accepted")
	}

	seq.accept()
	if seq.AcceptedLevel != TRUCO {
		t.Errorf("Expected accepted level %s, got %s", TRUCO, seq.AcceptedLevel)
	}
	if next, ok := seq.NextLevel(); !ok || next != RETRUCO {
		t.Errorf("Expected next level %s, got %q (%v)", RETRUCO, next, ok)
	}
}

func TestTrucoOwnerCannotRaiseOwnCall(t *testing.T) {
	seq := newTrucoSequence()
	seq.call(TRUCO, 0)
	seq.accept()

	if seq.CanCall(RETRUCO, 0) {
		t.Error("Team 0 should not be able to raise its own accepted truco")
	}
	if !seq.CanCall(RETRUCO, 1) {
		t.Error("Team 1 should be able to raise to retruco")
	}

	seq.call(RETRUCO, 1)
	seq.accept()
	if seq.CanCall(VALE_CUATRO, 1) {
		t.Error("Team 1 should not be able to raise its own accepted retruco")
	}
	if !seq.CanCall(VALE_CUATRO, 0) {
		t.Error("Team 0 should be able to raise to vale cuatro")
	}

	seq.call(VALE_CUATRO, 0)
	seq.accept()
	if _, ok := seq.NextLevel(); ok {
		t.Error("Nothing should be callable above vale cuatro")
	}
}

func TestTrucoHandValue(t *testing.T) {
	seq := newTrucoSequence()
	if seq.HandValue() != 1 {
		t.Errorf("Hand with no truco should be worth 1, got %d", seq.HandValue())
	}

	seq.call(TRUCO, 0)
	if seq.HandValue() != 1 {
		t.Errorf("Unaccepted truco should leave hand value at 1, got %d", seq.HandValue())
	}

	seq.accept()
	if seq.HandValue() != 2 {
		t.Errorf("Accepted truco should be worth 2, got %d", seq.HandValue())
	}

	seq.call(RETRUCO, 1)
	seq.accept()
	if seq.HandValue() != 3 {
		t.Errorf("Accepted retruco should be worth 3, got %d", seq.HandValue())
	}

	seq.call(VALE_CUATRO, 0)
	seq.accept()
	if seq.HandValue() != 4 {
		t.Errorf("Accepted vale cuatro should be worth 4, got %d", seq.HandValue())
	}
}

func TestTrucoRejectedPoints(t *testing.T) {
	tests := []struct {
		levels   []string
		expected int
	}{
		{[]string{TRUCO}, 1},
		{[]string{TRUCO, RETRUCO}, 2},
		{[]string{TRUCO, RETRUCO, VALE_CUATRO}, 3},
	}

	for _, tt := range tests {
		seq := newTrucoSequence()
		for i, level := range tt.levels {
			seq.call(level, i%2)
			if i < len(tt.levels)-1 {
				seq.accept()
			}
		}
		if got := seq.RejectedPoints(); got != tt.expected {
			t.Errorf("Rejecting %s should award %d, got %d", tt.levels[len(tt.levels)-1], tt.expected, got)
		}
	}
}
