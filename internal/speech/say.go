package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/verte-zerg/dikte/internal/model"
)

// Say speaks through the macOS say command.
type Say struct {
	bin string
	run runner
}

func newSay() (*Say, error) {
	path, err := exec.LookPath("say")
	if err != nil {
		return nil, fmt.Errorf("say not found in PATH")
	}
	return &Say{bin: path, run: execRunner{}}, nil
}

// Name implements Speaker.
func (s *Say) Name() string { return "say" }

// Voices implements Speaker.
func (s *Say) Voices(ctx context.Context) ([]model.Voice, error) {
	out, err := s.run.Output(ctx, s.bin, "-v", "?")
	if err != nil {
		return nil, fmt.Errorf("failed to list say voices: %w", err)
	}
	return parseSayVoices(out), nil
}

// Speak implements Speaker. say has no language option, so an utterance
// without a voice uses the first voice of the same base language, if any.
func (s *Say) Speak(ctx context.Context, u Utterance) error {
	args := []string{"-r", strconv.Itoa(wordsPerMinute(u.Rate))}
	name := ""
	if u.Voice != nil {
		name = u.Voice.ID
	} else if u.Lang != "" {
		voices, err := s.Voices(ctx)
		if err == nil {
			name = voiceForLanguage(voices, u.Lang)
		}
	}
	if name != "" {
		args = append(args, "-v", name)
	}
	args = append(args, "--", u.Text)
	if err := s.run.Start(s.bin, "", args...); err != nil {
		return fmt.Errorf("failed to start say: %w", err)
	}
	return nil
}

func voiceForLanguage(voices []model.Voice, locale string) string {
	if v, ok := findExact(voices, normalizeTag(locale)); ok {
		return v.ID
	}
	base := baseLanguage(locale)
	for _, v := range voices {
		if baseLanguage(v.Lang) == base {
			return v.ID
		}
	}
	return ""
}

func findExact(voices []model.Voice, tag string) (model.Voice, bool) {
	for _, v := range voices {
		if v.Lang == tag {
			return v, true
		}
	}
	return model.Voice{}, false
}

// parseSayVoices reads `say -v ?` lines such as
//
//	Amira               ms_MY    # Hai, nama saya Amira.
//	Bad News            en_US    # Hello! My name is Bad News.
func parseSayVoices(out []byte) []model.Voice {
	var voices []model.Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		lang := fields[len(fields)-1]
		name := strings.Join(fields[:len(fields)-1], " ")
		voices = append(voices, model.Voice{
			ID:    name,
			Name:  name,
			Lang:  normalizeTag(lang),
			Local: true,
		})
	}
	return voices
}
