package show

import (
	"math"
	"testing"
)

const dt = 1.0 / 60

// run ticks s for the given seconds and counts index changes.
func run(s *Sequencer, seconds float64) int {
	changes := 0
	for i := 0; i < int(math.Round(seconds/dt)); i++ {
		if s.Tick(dt) {
			changes++
		}
	}
	return changes
}

func TestSequencerAdvances(t *testing.T) {
	s := NewSequencer(3, 2, 0.5, false)
	if s.Current() != 0 || s.State() != StateRunning || s.From() != -1 {
		t.Fatalf("initial state %v index %d from %d", s.State(), s.Current(), s.From())
	}

	if n := run(s, 1.9); n != 0 {
		t.Fatalf("changed %d times before the duration", n)
	}
	if n := run(s, 0.2); n != 1 {
		t.Fatalf("changed %d times, want 1", n)
	}
	if s.Current() != 1 || s.From() != 0 || s.State() != StateTransition {
		t.Fatalf("after first change: index %d from %d state %v", s.Current(), s.From(), s.State())
	}

	run(s, 0.6)
	if s.State() != StateRunning || s.From() != -1 {
		t.Errorf("transition did not end: %v from %d", s.State(), s.From())
	}
}

func TestSequencerDone(t *testing.T) {
	s := NewSequencer(2, 1, 0, false)
	if n := run(s, 1.05); n != 1 || s.Current() != 1 {
		t.Fatalf("changes %d index %d", n, s.Current())
	}
	if s.State() != StateRunning {
		t.Errorf("no transition configured, state %v", s.State())
	}
	if n := run(s, 1.05); n != 0 {
		t.Errorf("finishing reported %d changes", n)
	}
	if !s.Done() || s.State() != StateDone {
		t.Errorf("state %v, want done", s.State())
	}
	if s.Skip() || s.Next() || s.Tick(dt) {
		t.Error("a finished sequencer must not change")
	}
}

func TestSequencerLoop(t *testing.T) {
	s := NewSequencer(2, 0, 0, true)
	s.Skip()
	if s.Current() != 1 {
		t.Fatalf("index %d", s.Current())
	}
	if !s.Skip() || s.Current() != 0 || s.Done() {
		t.Errorf("loop did not wrap: index %d state %v", s.Current(), s.State())
	}
}

func TestSequencerWaitsForKey(t *testing.T) {
	s := NewSequencer(2, 0, 1, false)
	if n := run(s, 60); n != 0 {
		t.Fatalf("duration 0 advanced %d times", n)
	}
	if s.Progress() != 0 {
		t.Errorf("progress %v without a duration", s.Progress())
	}
	if !s.Skip() || s.State() != StateTransition {
		t.Errorf("Skip: index %d state %v", s.Current(), s.State())
	}
}

func TestSequencerNextSkipsTransition(t *testing.T) {
	s := NewSequencer(3, 5, 1, false)
	if !s.Next() {
		t.Fatal("Next did not advance")
	}
	if s.State() != StateRunning || s.From() != -1 || s.Blend() != 1 {
		t.Errorf("Next started a transition: %v", s.State())
	}
}

func TestSequencerEmpty(t *testing.T) {
	s := NewSequencer(0, 1, 1, true)
	if !s.Done() {
		t.Error("empty sequence should be done")
	}
}

func TestSequencerBlend(t *testing.T) {
	s := NewSequencer(2, 0, 1, false)
	if s.Blend() != 1 {
		t.Errorf("blend %v while running", s.Blend())
	}
	s.Skip()
	if s.Blend() != 0 {
		t.Errorf("blend %v at transition start", s.Blend())
	}

	prev := 0.0
	for i := 0; i < 30; i++ {
		s.Tick(dt)
		b := s.Blend()
		if b < prev {
			t.Fatalf("blend went back from %v to %v", prev, b)
		}
		prev = b
	}
	if math.Abs(prev-0.5) > 1e-6 {
		t.Errorf("blend at half time = %v, want 0.5", prev)
	}
}

func TestSequencerProgress(t *testing.T) {
	s := NewSequencer(2, 2, 0, false)
	run(s, 1)
	if p := s.Progress(); math.Abs(p-0.5) > 1e-6 {
		t.Errorf("progress %v, want 0.5", p)
	}
}

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{0.25, 0.0625},
		{0.5, 0.5},
		{0.75, 0.9375},
		{1, 1},
	}
	for _, tt := range tests {
		if got := easeInOutCubic(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("easeInOutCubic(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateRunning:    "running",
		StateTransition: "transition",
		StateDone:       "done",
		State(42):       "unknown",
	} {
		if s.String() != want {
			t.Errorf("%d.String() = %q", int(s), s.String())
		}
	}
}
