// Package tui provides the Bubble Tea listening and typing interface.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/dikte/internal/model"
	"github.com/verte-zerg/dikte/internal/session"
	"github.com/verte-zerg/dikte/internal/speech"
	"github.com/verte-zerg/dikte/internal/voice"
)

const (
	voiceListTimeout = 5 * time.Second
	// minCharLimit is the input limit for short phrases; longer phrases get
	// their own length plus charLimitSlack so mistypes still fit.
	minCharLimit   = 256
	charLimitSlack = 32
)

// HistoryWriter records completed practices.
type HistoryWriter interface {
	InsertPractice(ctx context.Context, res model.PracticeResult) (int64, error)
}

// voicesLoadedMsg carries a fresh voice list from the speech backend.
type voicesLoadedMsg struct {
	voices []model.Voice
	err    error
}

// Model implements the Bubble Tea practice UI.
type Model struct {
	config  model.Config
	ctrl    *session.Controller
	voices  *voice.Registry
	speaker speech.Speaker
	history HistoryWriter

	input textinput.Model
	keys  keyMap
	help  help.Model

	width  int
	height int

	preferredApplied bool
	voiceErr         string
	saved            bool
}

// NewModel constructs a practice TUI model. history may be nil to disable
// recording.
func NewModel(cfg model.Config, ctrl *session.Controller, registry *voice.Registry, speaker speech.Speaker, history HistoryWriter) *Model {
	in := textinput.New()
	in.Placeholder = "Type what you hear..."
	in.Prompt = "> "
	in.CharLimit = minCharLimit
	in.Blur()

	m := &Model{
		config:  cfg,
		ctrl:    ctrl,
		voices:  registry,
		speaker: speaker,
		history: history,
		input:   in,
		keys:    newKeyMap(),
		help:    help.New(),
	}
	if cfg.Voice == "" {
		m.preferredApplied = true
	}
	m.syncKeys()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return loadVoices(m.speaker)
}

func loadVoices(sp speech.Speaker) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), voiceListTimeout)
		defer cancel()
		voices, err := sp.Voices(ctx)
		return voicesLoadedMsg{voices: voices, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = m.contentWidth() - len(m.input.Prompt) - 1
		return m, nil
	case voicesLoadedMsg:
		m.handleVoices(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleVoices(msg voicesLoadedMsg) {
	if msg.err != nil {
		slog.Warn("failed to load voices", "backend", m.speaker.Name(), "err", msg.err)
		m.voiceErr = msg.err.Error()
		m.voices.OnVoiceListAvailable(nil)
		return
	}
	m.voiceErr = ""
	m.voices.OnVoiceListAvailable(msg.voices)
	if !m.preferredApplied {
		m.voices.SelectVoice(m.config.Voice)
		m.preferredApplied = true
		if m.voices.Selected() == nil {
			slog.Warn("configured voice not found", "voice", m.config.Voice)
		}
	}
	slog.Debug("voice list updated", "count", len(msg.voices), "selected", m.selectedVoiceID())
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	phase := m.ctrl.State().Phase
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextVoice):
		m.voices.Cycle(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevVoice):
		m.voices.Cycle(-1)
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, loadVoices(m.speaker)
	}

	switch phase {
	case session.NotStarted:
		if key.Matches(msg, m.keys.Start) {
			return m, m.begin(m.ctrl.Start)
		}
		return m, nil
	case session.Complete:
		switch {
		case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Restart):
			return m, m.begin(m.ctrl.Reset)
		case key.Matches(msg, m.keys.Play):
			m.play()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Restart):
		return m, m.begin(m.ctrl.Reset)
	case key.Matches(msg, m.keys.Play):
		m.play()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.onInput(value)
	}
	return m, cmd
}

func (m *Model) begin(transition func() session.State) tea.Cmd {
	state := transition()
	m.saved = false
	m.input.Reset()
	m.input.CharLimit = charLimitFor(state.Phrase.Source)
	m.syncKeys()
	slog.Debug("practice started", "phrase", state.Phrase.Source)
	return m.input.Focus()
}

func charLimitFor(source string) int {
	return max(minCharLimit, len([]rune(source))+charLimitSlack)
}

func (m *Model) onInput(value string) {
	state := m.ctrl.Input(value)
	if state.Phase != session.Complete {
		return
	}
	m.input.Blur()
	m.syncKeys()
	m.recordResult()
}

func (m *Model) recordResult() {
	if m.saved || m.history == nil {
		return
	}
	res, ok := m.ctrl.Result(m.voices.Locale(), m.selectedVoiceID())
	if !ok {
		return
	}
	m.saved = true
	if _, err := m.history.InsertPractice(context.Background(), res); err != nil {
		slog.Error("failed to save practice", "err", err)
		return
	}
	slog.Info("practice completed", "wpm", res.WPM, "accuracy", res.Accuracy, "duration_ms", res.DurationMs)
}

func (m *Model) play() {
	state := m.ctrl.State()
	speech.Play(context.Background(), m.speaker, state.Phrase.Source, m.voices.Selected(), m.voices.Locale())
}

func (m *Model) selectedVoiceID() string {
	if v := m.voices.Selected(); v != nil {
		return v.ID
	}
	return ""
}

func (m *Model) syncKeys() {
	phase := m.ctrl.State().Phase
	m.keys.Start.SetEnabled(phase == session.NotStarted)
	m.keys.Next.SetEnabled(phase == session.Complete)
	m.keys.Restart.SetEnabled(phase != session.NotStarted)
	m.keys.Play.SetEnabled(phase != session.NotStarted)
}
