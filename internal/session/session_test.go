package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/verte-zerg/dikte/internal/model"
	"github.com/verte-zerg/dikte/internal/phrases"
)

type fixedPicker struct {
	queue []model.PhrasePair
	calls int
}

func (p *fixedPicker) Pick() model.PhrasePair {
	pair := p.queue[p.calls%len(p.queue)]
	p.calls++
	return pair
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func phrase(source string) model.PhrasePair {
	for _, p := range phrases.All() {
		if p.Source == source {
			return p
		}
	}
	return model.PhrasePair{Source: source}
}

func newTestController(sources ...string) (*Controller, *fakeClock, *fixedPicker) {
	picker := &fixedPicker{}
	for _, s := range sources {
		picker.queue = append(picker.queue, phrase(s))
	}
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewController(picker, clock.now), clock, picker
}

func TestInitialState(t *testing.T) {
	c, _, _ := newTestController("Sila duduk di sini.")
	s := c.State()
	if s.Phase != NotStarted {
		t.Fatalf("expected NotStarted, got %s", s.Phase)
	}
	if s.Accuracy != 100 || s.WPM != 0 {
		t.Fatalf("unexpected initial metrics: %+v", s)
	}
}

func TestInputIgnoredBeforeStart(t *testing.T) {
	c, _, _ := newTestController("Sila duduk di sini.")
	s := c.Input("Sila")
	if s.Phase != NotStarted || s.Input != "" || !s.StartedAt.IsZero() {
		t.Fatalf("expected input to be ignored, got %+v", s)
	}
}

func TestExactMatchCompletes(t *testing.T) {
	c, clock, _ := newTestController("Sila duduk di sini.")
	c.Start()
	c.Input("S")
	clock.advance(6 * time.Second)
	s := c.Input("Sila duduk di sini.")
	if s.Phase != Complete {
		t.Fatalf("expected Complete, got %s", s.Phase)
	}
	if s.Accuracy != 100 {
		t.Fatalf("expected accuracy 100, got %d", s.Accuracy)
	}
	// 19 runes / 5 = 3.8 words in 0.1 minutes.
	if s.WPM != 38 {
		t.Fatalf("expected 38 wpm, got %d", s.WPM)
	}
	after := c.Input("Sila duduk di sini.!")
	if after.Input != "Sila duduk di sini." || after.Phase != Complete {
		t.Fatalf("expected input ignored after completion, got %+v", after)
	}
}

func TestCompletionIsCaseAndSpaceSensitive(t *testing.T) {
	c, _, _ := newTestController("Sila duduk di sini.")
	c.Start()
	for _, input := range []string{"sila duduk di sini.", "Sila duduk di sini. ", "Sila  duduk di sini."} {
		if s := c.Input(input); s.Phase != Running {
			t.Fatalf("expected %q to keep session running, got %s", input, s.Phase)
		}
	}
}

func TestAccuracyScenario(t *testing.T) {
	c, _, _ := newTestController("Terima kasih banyak-banyak.")
	c.Start()
	if s := c.Input("Terima"); s.Accuracy != 100 {
		t.Fatalf("expected 100, got %d", s.Accuracy)
	}
	if s := c.Input("Terimb"); s.Accuracy != 83 {
		t.Fatalf("expected 83, got %d", s.Accuracy)
	}
}

func TestAccuracyRecomputedNotAccumulated(t *testing.T) {
	c, clock, _ := newTestController("Boleh saya tolong anda?")
	c.Start()
	first := c.Input("Bolx")
	clock.advance(time.Second)
	c.Input("Bolxh saya")
	clock.advance(time.Second)
	again := c.Input("Bolx")
	if first.Accuracy != again.Accuracy {
		t.Fatalf("expected accuracy %d after deleting back, got %d", first.Accuracy, again.Accuracy)
	}
	if s := c.Input(""); s.Accuracy != 100 {
		t.Fatalf("expected 100 for cleared input, got %d", s.Accuracy)
	}
}

func TestFirstKeystrokeStartsClock(t *testing.T) {
	c, clock, _ := newTestController("Selamat pagi! Apa khabar?")
	c.Start()
	clock.advance(time.Minute)
	s := c.Input("S")
	if !s.StartedAt.Equal(clock.t) {
		t.Fatalf("expected clock to start at first keystroke")
	}
	if s.WPM != 0 {
		t.Fatalf("expected 0 wpm at zero elapsed time, got %d", s.WPM)
	}
	clock.advance(30 * time.Second)
	s = c.Input("Selamat pa")
	if s.WPM != 4 {
		t.Fatalf("expected 4 wpm, got %d", s.WPM)
	}
}

func TestResetPicksNewPhraseAndClears(t *testing.T) {
	c, _, picker := newTestController("Sila duduk di sini.", "Boleh saya tolong anda?")
	c.Start()
	c.Input("Sila duduk di sini.")
	if c.State().Phase != Complete {
		t.Fatalf("expected Complete before reset")
	}
	s := c.Reset()
	if s.Phase != Running {
		t.Fatalf("expected Running after reset, got %s", s.Phase)
	}
	if s.Phrase.Source != "Boleh saya tolong anda?" {
		t.Fatalf("expected next picked phrase, got %q", s.Phrase.Source)
	}
	if s.Input != "" || !s.StartedAt.IsZero() || s.WPM != 0 || s.Accuracy != 100 {
		t.Fatalf("expected cleared state, got %+v", s)
	}
	if picker.calls != 2 {
		t.Fatalf("expected 2 picks, got %d", picker.calls)
	}
}

func TestStartIsReentrant(t *testing.T) {
	c, _, _ := newTestController("Sila duduk di sini.")
	c.Start()
	c.Input("Sil")
	s := c.Start()
	if s.Phase != Running || s.Input != "" || s.Accuracy != 100 {
		t.Fatalf("expected restart, got %+v", s)
	}
}

func TestStartUsesBuiltinPhrases(t *testing.T) {
	c := NewController(phrases.NewWithSource(rand.NewSource(1)), nil)
	known := map[string]struct{}{}
	for _, p := range phrases.All() {
		known[p.Source] = struct{}{}
	}
	for i := 0; i < 50; i++ {
		s := c.Reset()
		if _, ok := known[s.Phrase.Source]; !ok {
			t.Fatalf("unexpected phrase %q", s.Phrase.Source)
		}
		if s.Input != "" || s.Accuracy != 100 {
			t.Fatalf("expected cleared state, got %+v", s)
		}
	}
}

func TestResult(t *testing.T) {
	c, clock, _ := newTestController("Sila duduk di sini.")
	c.Start()
	if _, ok := c.Result("ms-MY", ""); ok {
		t.Fatalf("expected no result while running")
	}
	c.Input("S")
	clock.advance(12 * time.Second)
	c.Input("Sila duduk di sini.")
	res, ok := c.Result("ms-MY", "voice-1")
	if !ok {
		t.Fatalf("expected result after completion")
	}
	if res.DurationMs != 12000 || res.TypedRunes != 19 || res.VoiceID != "voice-1" || res.Accuracy != 100 {
		t.Fatalf("unexpected result: %+v", res)
	}
}
