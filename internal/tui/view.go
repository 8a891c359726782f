package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/dikte/internal/session"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	doneStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle        = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// View implements tea.Model.
func (m *Model) View() string {
	width := m.contentWidth()
	sections := []string{
		titleStyle.Render("Malay typing practice"),
		m.renderVoice(),
		"",
	}
	state := m.ctrl.State()
	if state.Phase == session.NotStarted {
		sections = append(sections, "Press enter when you are ready.")
	} else {
		sections = append(sections, m.renderPhrase(state, width)...)
	}
	sections = append(sections, "", m.help.View(m.keys))
	content := lipgloss.NewStyle().Width(width).Render(strings.Join(sections, "\n"))
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderPhrase(state session.State, width int) []string {
	target := []rune(state.Phrase.Source)
	typed := []rune(state.Input)
	cursorIndex := -1
	if state.Phase == session.Running && len(typed) < len(target) {
		cursorIndex = len(typed)
	}
	phrase := wrapStyledRunes(buildStyledRunes(target, typed, cursorIndex), width)
	lines := []string{
		phrase,
		mutedStyle.Render(wrapPlain(state.Phrase.Translation, width)),
		"",
		m.input.View(),
		"",
		renderMetrics(state.WPM, state.Accuracy),
	}
	if state.Phase == session.Complete {
		lines = append(lines, "", doneStyle.Render("Well done!")+" "+mutedStyle.Render("Press enter for the next phrase."))
	}
	return lines
}

func (m *Model) renderVoice() string {
	if m.voiceErr != "" {
		return errorStyle.Render("Voices unavailable: " + m.voiceErr)
	}
	sel := m.voices.Selected()
	if sel == nil {
		return mutedStyle.Render(fmt.Sprintf("Voice: default (%s) · %d available · %s", m.voices.Locale(), len(m.voices.Voices()), m.speaker.Name()))
	}
	return mutedStyle.Render(fmt.Sprintf("Voice: %s (%s) · default: %s · local: %s",
		sel.Name, sel.Lang, yesNo(sel.Default), yesNo(sel.Local)))
}

func renderMetrics(wpm, accuracy int) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("WPM", fmt.Sprintf("%d", wpm)),
		" ",
		renderCard("Accuracy", fmt.Sprintf("%d%%", accuracy)),
	)
}

func renderCard(title, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(title) + "\n" + cardValueStyle.Render(value))
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 60
	}
	w := int(float64(m.width) * 0.70)
	if w < 20 {
		w = m.width
	}
	if w < 1 {
		w = 1
	}
	return w
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
