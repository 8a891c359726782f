// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Locale  string
	Voice   string
	Speech  string
	History bool
	// Phrases is an optional phrase file replacing the built-in set.
	Phrases string
}

// StatsConfig defines filters and options for history output.
type StatsConfig struct {
	Since *time.Time
	Last  int
}

// PhrasePair is a practice sentence plus its translation.
type PhrasePair struct {
	Source      string
	Translation string
}

// Voice describes a speech synthesis voice reported by a backend.
type Voice struct {
	ID      string
	Name    string
	Lang    string
	Default bool
	Local   bool
}

// PracticeResult captures a completed practice.
type PracticeResult struct {
	StartedAt   time.Time
	EndedAt     time.Time
	Source      string
	Translation string
	Locale      string
	VoiceID     string
	TypedRunes  int
	Accuracy    int
	WPM         int
	DurationMs  int64
}

// PracticeAggregate summarizes a stored practice for reporting.
type PracticeAggregate struct {
	PracticeID int64
	EndedAt    time.Time
	Source     string
	Accuracy   int
	WPM        int
	DurationMs int64
}
