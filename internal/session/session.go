// Package session implements the practice lifecycle and live metrics.
package session

import (
	"time"

	"github.com/verte-zerg/dikte/internal/model"
	"github.com/verte-zerg/dikte/internal/stats"
)

// Phase is the lifecycle position of a practice session.
type Phase int

const (
	NotStarted Phase = iota
	Running
	Complete
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// State is the full session state. Values are replaced, never patched.
type State struct {
	Phase     Phase
	Phrase    model.PhrasePair
	Input     string
	StartedAt time.Time
	EndedAt   time.Time
	WPM       int
	Accuracy  int
}

// Initial returns the state before the first start.
func Initial() State {
	return State{Phase: NotStarted, Accuracy: 100}
}

// Begin returns a fresh running state for phrase with cleared metrics.
func Begin(phrase model.PhrasePair) State {
	return State{Phase: Running, Phrase: phrase, Accuracy: 100}
}

// WithInput applies one edit of the transcription at now. Input is only
// accepted while running; any other phase returns s unchanged.
func (s State) WithInput(input string, now time.Time) State {
	if s.Phase != Running {
		return s
	}
	next := s
	next.Input = input
	if next.StartedAt.IsZero() {
		next.StartedAt = now
	}
	next.Accuracy = stats.Accuracy(next.Phrase.Source, input)
	next.WPM = stats.WPM(len([]rune(input)), now.Sub(next.StartedAt))
	if input == next.Phrase.Source {
		next.Phase = Complete
		next.EndedAt = now
	}
	return next
}

// Picker supplies phrases for new sessions.
type Picker interface {
	Pick() model.PhrasePair
}

// Controller owns the session state and applies transitions to it.
type Controller struct {
	picker Picker
	now    func() time.Time
	state  State
}

// NewController returns a controller in the NotStarted phase.
func NewController(picker Picker, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{picker: picker, now: now, state: Initial()}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Start picks a phrase and enters Running. Calling it again restarts.
func (c *Controller) Start() State {
	c.state = Begin(c.picker.Pick())
	return c.state
}

// Reset moves to Running with a freshly picked phrase.
func (c *Controller) Reset() State {
	return c.Start()
}

// Input records the current transcription. Ignored unless Running.
func (c *Controller) Input(input string) State {
	if c.state.Phase != Running {
		return c.state
	}
	c.state = c.state.WithInput(input, c.now())
	return c.state
}

// Result summarizes a completed session. ok is false unless the phase is Complete.
func (c *Controller) Result(locale, voiceID string) (res model.PracticeResult, ok bool) {
	s := c.state
	if s.Phase != Complete {
		return model.PracticeResult{}, false
	}
	return model.PracticeResult{
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
		Source:      s.Phrase.Source,
		Translation: s.Phrase.Translation,
		Locale:      locale,
		VoiceID:     voiceID,
		TypedRunes:  len([]rune(s.Input)),
		Accuracy:    s.Accuracy,
		WPM:         s.WPM,
		DurationMs:  s.EndedAt.Sub(s.StartedAt).Milliseconds(),
	}, true
}
