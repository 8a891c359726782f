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

// Espeak speaks through espeak-ng, or the older espeak binary.
type Espeak struct {
	bin string
	run runner
}

func newEspeak() (*Espeak, error) {
	for _, bin := range []string{"espeak-ng", "espeak"} {
		if path, err := exec.LookPath(bin); err == nil {
			return &Espeak{bin: path, run: execRunner{}}, nil
		}
	}
	return nil, fmt.Errorf("espeak-ng not found in PATH")
}

// Name implements Speaker.
func (e *Espeak) Name() string { return "espeak" }

// Voices implements Speaker.
func (e *Espeak) Voices(ctx context.Context) ([]model.Voice, error) {
	out, err := e.run.Output(ctx, e.bin, "--voices")
	if err != nil {
		return nil, fmt.Errorf("failed to list espeak voices: %w", err)
	}
	return parseEspeakVoices(out), nil
}

// Speak implements Speaker.
func (e *Espeak) Speak(_ context.Context, u Utterance) error {
	voiceArg := baseLanguage(u.Lang)
	if u.Voice != nil {
		voiceArg = u.Voice.ID
	}
	args := []string{"-s", strconv.Itoa(wordsPerMinute(u.Rate)), "--stdin"}
	if voiceArg != "" {
		args = append([]string{"-v", voiceArg}, args...)
	}
	if err := e.run.Start(e.bin, u.Text, args...); err != nil {
		return fmt.Errorf("failed to start espeak: %w", err)
	}
	return nil
}

// parseEspeakVoices reads the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  ms              --/M      Malay              zls/ms
func parseEspeakVoices(out []byte) []model.Voice {
	var voices []model.Voice
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}
		id := fields[1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		voices = append(voices, model.Voice{
			ID:    id,
			Name:  strings.ReplaceAll(fields[3], "_", " "),
			Lang:  normalizeTag(id),
			Local: true,
		})
	}
	return voices
}
