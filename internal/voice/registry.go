// Package voice mirrors the speech backend's voice list and tracks the
// selected voice.
package voice

import (
	"strings"

	"github.com/verte-zerg/dikte/internal/model"
)

// Registry holds the latest voice list and the current selection.
type Registry struct {
	locale   string
	voices   []model.Voice
	selected *model.Voice
	explicit bool
}

// NewRegistry returns an empty registry that auto-selects voices whose
// language tag contains locale.
func NewRegistry(locale string) *Registry {
	return &Registry{locale: locale}
}

// Locale returns the target locale.
func (r *Registry) Locale() string {
	return r.locale
}

// OnVoiceListAvailable replaces the stored list. Until the user selects a
// voice explicitly, the first voice matching the locale becomes selected.
func (r *Registry) OnVoiceListAvailable(list []model.Voice) {
	r.voices = append([]model.Voice(nil), list...)
	if r.explicit {
		return
	}
	if v, ok := FindLocale(r.voices, r.locale); ok {
		r.selected = &v
	}
}

// SelectVoice selects the voice with the given id. An empty or unknown id
// clears the selection. Either way later list updates keep the choice.
func (r *Registry) SelectVoice(id string) {
	r.explicit = true
	r.selected = nil
	if id == "" {
		return
	}
	for _, v := range r.voices {
		if v.ID == id {
			v := v
			r.selected = &v
			return
		}
	}
}

// Cycle moves the explicit selection by step through the default entry
// followed by every listed voice, wrapping at both ends.
func (r *Registry) Cycle(step int) {
	ids := make([]string, 0, len(r.voices)+1)
	ids = append(ids, "")
	current := 0
	for i, v := range r.voices {
		ids = append(ids, v.ID)
		if r.selected != nil && r.selected.ID == v.ID {
			current = i + 1
		}
	}
	next := ((current+step)%len(ids) + len(ids)) % len(ids)
	r.SelectVoice(ids[next])
}

// Voices returns a copy of the stored list.
func (r *Registry) Voices() []model.Voice {
	return append([]model.Voice(nil), r.voices...)
}

// Selected returns the selected voice, or nil for the default.
func (r *Registry) Selected() *model.Voice {
	if r.selected == nil {
		return nil
	}
	v := *r.selected
	return &v
}

// FindLocale returns the first voice whose language tag contains locale.
func FindLocale(voices []model.Voice, locale string) (model.Voice, bool) {
	if locale == "" {
		return model.Voice{}, false
	}
	for _, v := range voices {
		if strings.Contains(v.Lang, locale) {
			return v, true
		}
	}
	return model.Voice{}, false
}
