package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/dikte/internal/model"
	"github.com/verte-zerg/dikte/internal/voice"
)

func writeVoices(w io.Writer, backend, locale string, voices []model.Voice) error {
	if len(voices) == 0 {
		_, err := fmt.Fprintf(w, "No voices available from %s backend; playback uses the %s default.\n", backend, locale)
		return err
	}
	auto, hasAuto := voice.FindLocale(voices, locale)
	idWidth := len("ID")
	for _, v := range voices {
		if n := runewidth.StringWidth(v.ID); n > idWidth {
			idWidth = n
		}
	}
	for _, v := range voices {
		marker := " "
		if hasAuto && v.ID == auto.ID {
			marker = "*"
		}
		var flags []string
		if v.Default {
			flags = append(flags, "default")
		}
		if v.Local {
			flags = append(flags, "local")
		}
		line := fmt.Sprintf("%s %s  %-10s %s", marker, runewidth.FillRight(v.ID, idWidth), v.Lang, v.Name)
		if len(flags) > 0 {
			line += " (" + strings.Join(flags, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if !hasAuto {
		_, err := fmt.Fprintf(w, "No voice matches %s; playback uses the %s default.\n", locale, backend)
		return err
	}
	return nil
}

func writePhrases(w io.Writer, pairs []model.PhrasePair) error {
	for i, p := range pairs {
		if _, err := fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, p.Source, p.Translation); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
