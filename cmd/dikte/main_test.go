package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/dikte/internal/config"
	"github.com/verte-zerg/dikte/internal/model"
	"github.com/verte-zerg/dikte/internal/phrases"
)

func TestWriteVoicesMarksAutoSelection(t *testing.T) {
	var buf bytes.Buffer
	voices := []model.Voice{
		{ID: "en-us", Name: "English", Lang: "en-US", Local: true},
		{ID: "amira", Name: "Amira", Lang: "ms-MY", Default: true},
	}
	if err := writeVoices(&buf, "say", "ms-MY", voices); err != nil {
		t.Fatalf("write voices: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[1], "* amira") || !strings.Contains(lines[1], "(default)") {
		t.Fatalf("expected marked malay voice, got %q", lines[1])
	}
	if strings.HasPrefix(lines[0], "*") {
		t.Fatalf("expected english voice unmarked, got %q", lines[0])
	}
}

func TestWriteVoicesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeVoices(&buf, "none", "ms-MY", nil); err != nil {
		t.Fatalf("write voices: %v", err)
	}
	if !strings.Contains(buf.String(), "No voices available") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestWritePhrases(t *testing.T) {
	var buf bytes.Buffer
	if err := writePhrases(&buf, phrases.All()); err != nil {
		t.Fatalf("write phrases: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "4. Sila duduk di sini.") || !strings.Contains(out, "ここにお座りください。") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(model.Config{Locale: "ms-MY", Speech: "auto"}); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if err := validateConfig(model.Config{Locale: "", Speech: "auto"}); err == nil {
		t.Fatalf("expected empty locale error")
	}
	if err := validateConfig(model.Config{Locale: "ms-MY", Speech: "festival"}); err == nil {
		t.Fatalf("expected unknown backend error")
	}
}

func TestParseLevel(t *testing.T) {
	debug := "DEBUG"
	if lvl, err := parseLevel(&debug); err != nil || lvl != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v %v", lvl, err)
	}
	if lvl, err := parseLevel(nil); err != nil || lvl != slog.LevelInfo {
		t.Fatalf("expected info default, got %v %v", lvl, err)
	}
	bad := "loud"
	if _, err := parseLevel(&bad); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestPhrasesCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"phrases"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "Selamat pagi! Apa khabar?") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestVoicesCommandWithNoneBackend(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"voices", "--speech", "none"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "No voices available from none backend") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestHistoryCommandEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"history"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "No practices found.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestSetupLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dikte.log")
	level := "debug"
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	closeLog, err := setupLogger(config.LogConfig{Level: &level, File: &path})
	if err != nil {
		t.Fatalf("setup logger: %v", err)
	}
	slog.Debug("voice list updated", "count", 3)
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "voice list updated") || !strings.Contains(string(data), "count=3") {
		t.Fatalf("unexpected log contents %q", string(data))
	}
}

func TestPhrasesCommandWithFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "phrases.tsv")
	if err := os.WriteFile(path, []byte("Jumpa lagi.\tまた会いましょう。\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"phrases", "--phrases", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := buf.String(); got != "1. Jumpa lagi.\n   また会いましょう。\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
