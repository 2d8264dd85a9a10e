package show

import "math"

// State of the sequencer.
type State int

const (
	StateRunning State = iota
	StateTransition
	StateDone
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTransition:
		return "transition"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Sequencer decides which effect of a list is on screen. It knows nothing
// about rendering: the runner feeds it time and key presses and reacts when
// the current index changes.
type Sequencer struct {
	count      int
	duration   float64 // seconds per effect, 0 waits for Skip
	transition float64 // seconds of cross-fade
	loop       bool

	index          int
	from           int
	state          State
	stateTimer     float64
	transitionTime float64
}

// NewSequencer plays count effects, starting with the first one.
func NewSequencer(count int, duration, transition float64, loop bool) *Sequencer {
	s := &Sequencer{
		count:      count,
		duration:   duration,
		transition: transition,
		loop:       loop,
		from:       -1,
	}
	if count == 0 {
		s.state = StateDone
	}
	return s
}

// Cubic ease in-out
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Tick advances the clock by dt seconds and reports whether Current changed.
func (s *Sequencer) Tick(dt float64) bool {
	switch s.state {
	case StateRunning:
		s.stateTimer += dt
		if s.duration > 0 && s.stateTimer >= s.duration {
			return s.advance(true)
		}
	case StateTransition:
		s.transitionTime += dt
		s.stateTimer += dt
		if s.transitionTime >= s.transition {
			s.state = StateRunning
			s.from = -1
		}
	}
	return false
}

// Skip moves on to the next effect with a transition, as when a key is hit.
func (s *Sequencer) Skip() bool {
	return s.advance(true)
}

// Next moves on at once, without a transition. Used to step over an effect
// that failed to start.
func (s *Sequencer) Next() bool {
	return s.advance(false)
}

func (s *Sequencer) advance(fade bool) bool {
	if s.state == StateDone {
		return false
	}
	next := s.index + 1
	if next >= s.count {
		if !s.loop {
			s.state = StateDone
			s.from = -1
			return false
		}
		next = 0
	}
	s.from = s.index
	s.index = next
	s.stateTimer = 0
	s.transitionTime = 0
	if fade && s.transition > 0 {
		s.state = StateTransition
	} else {
		s.state = StateRunning
		s.from = -1
	}
	return true
}

// Current is the index of the effect on screen.
func (s *Sequencer) Current() int { return s.index }

// From is the index being faded out, or -1 outside a transition.
func (s *Sequencer) From() int { return s.from }

func (s *Sequencer) State() State { return s.state }

func (s *Sequencer) Done() bool { return s.state == StateDone }

// Blend is how much of the current effect shows during a transition, eased,
// 1 otherwise.
func (s *Sequencer) Blend() float64 {
	if s.state != StateTransition || s.transition <= 0 {
		return 1
	}
	return easeInOutCubic(math.Min(s.transitionTime/s.transition, 1))
}

// Progress is the share of the current effect's time used up, 0 when effects
// wait for a key.
func (s *Sequencer) Progress() float64 {
	if s.duration <= 0 {
		return 0
	}
	return math.Min(s.stateTimer/s.duration, 1)
}
