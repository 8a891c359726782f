// Package speech plays practice phrases through a local speech synthesizer.
//
// A Speaker enumerates voices and speaks utterances. Speaking is
// fire-and-forget: Speak returns once the synthesizer has been asked to talk
// and never waits for audio to finish. A missing synthesizer is represented
// by None, which has no voices and speaks nothing.
package speech

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"strings"

	"golang.org/x/text/language"

	"github.com/verte-zerg/dikte/internal/model"
)

// Rate is the fixed speaking rate relative to the synthesizer's normal speed.
const Rate = 0.8

// baseWPM is the normal speaking rate of espeak and say in words per minute.
const baseWPM = 175

// Utterance is one request to speak text.
type Utterance struct {
	Text  string
	Voice *model.Voice
	Lang  string
	Rate  float64
}

// Speaker is a speech synthesis backend.
type Speaker interface {
	Name() string
	Voices(ctx context.Context) ([]model.Voice, error)
	Speak(ctx context.Context, u Utterance) error
}

// NewUtterance binds text to the selected voice, or to locale when no voice
// is selected.
func NewUtterance(text string, selected *model.Voice, locale string) Utterance {
	u := Utterance{Text: text, Rate: Rate}
	if selected != nil {
		v := *selected
		u.Voice = &v
		return u
	}
	u.Lang = locale
	return u
}

// Play asks sp to speak text and returns immediately. Failures are logged
// and otherwise ignored.
func Play(ctx context.Context, sp Speaker, text string, selected *model.Voice, locale string) {
	if sp == nil || text == "" {
		return
	}
	u := NewUtterance(text, selected, locale)
	if err := sp.Speak(ctx, u); err != nil {
		slog.Debug("speech playback failed", "backend", sp.Name(), "err", err)
	}
}

// Resolve returns the backend named by name. "auto" or "" picks the first
// installed synthesizer and falls back to None.
func Resolve(name string) (Speaker, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		if sp, err := newEspeak(); err == nil {
			return sp, nil
		}
		if sp, err := newSay(); err == nil {
			return sp, nil
		}
		slog.Debug("no speech synthesizer found; playback disabled")
		return None{}, nil
	case "espeak":
		return newEspeak()
	case "say":
		return newSay()
	case "none":
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown speech backend %q (expected auto, espeak, say, or none)", name)
	}
}

// None is the backend used when no synthesizer is available.
type None struct{}

// Name implements Speaker.
func (None) Name() string { return "none" }

// Voices implements Speaker.
func (None) Voices(context.Context) ([]model.Voice, error) { return nil, nil }

// Speak implements Speaker.
func (None) Speak(context.Context, Utterance) error { return nil }

// runner abstracts process execution so backends can be tested.
type runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	Start(name string, stdin string, args ...string) error
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (execRunner) Start(name string, stdin string, args ...string) error {
	cmd := exec.Command(name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("speech process exited with error", "cmd", name, "err", err)
		}
	}()
	return nil
}

// normalizeTag converts synthesizer language codes such as "en_us" to
// canonical BCP 47 form. Unparseable codes are returned unchanged.
func normalizeTag(code string) string {
	code = strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	return tag.String()
}

// baseLanguage returns the primary language subtag of locale, e.g. "ms" for
// "ms-MY".
func baseLanguage(locale string) string {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		if i := strings.IndexAny(locale, "-_"); i > 0 {
			return strings.ToLower(locale[:i])
		}
		return strings.ToLower(locale)
	}
	base, _ := tag.Base()
	return base.String()
}

func wordsPerMinute(rate float64) int {
	if rate <= 0 {
		rate = 1
	}
	return int(math.Round(float64(baseWPM) * rate))
}
