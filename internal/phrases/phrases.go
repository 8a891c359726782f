// Package phrases holds the built-in practice phrases and random selection.
package phrases

import (
	"math/rand"

	"github.com/verte-zerg/dikte/internal/model"
)

var builtin = []model.PhrasePair{
	{Source: "Selamat pagi! Apa khabar?", Translation: "おはようございます！お元気ですか？"},
	{Source: "Saya suka makan nasi lemak.", Translation: "私はナシレマックが好きです。"},
	{Source: "Terima kasih banyak-banyak.", Translation: "どうもありがとうございます。"},
	{Source: "Sila duduk di sini.", Translation: "ここにお座りください。"},
	{Source: "Boleh saya tolong anda?", Translation: "お手伝いできますか？"},
}

// All returns a copy of the built-in phrase set.
func All() []model.PhrasePair {
	out := make([]model.PhrasePair, len(builtin))
	copy(out, builtin)
	return out
}

// Picker selects phrases uniformly at random.
type Picker struct {
	rnd     *rand.Rand
	phrases []model.PhrasePair
}

// NewWithSource returns a Picker over the built-in phrases using src.
func NewWithSource(src rand.Source) *Picker {
	return &Picker{rnd: rand.New(src), phrases: builtin}
}

// NewFromPairs returns a Picker over pairs, falling back to the built-in set
// when pairs is empty.
func NewFromPairs(pairs []model.PhrasePair, src rand.Source) *Picker {
	if len(pairs) == 0 {
		return NewWithSource(src)
	}
	own := make([]model.PhrasePair, len(pairs))
	copy(own, pairs)
	return &Picker{rnd: rand.New(src), phrases: own}
}

// Pick returns a phrase chosen uniformly by index. Repeats are allowed.
func (p *Picker) Pick() model.PhrasePair {
	return p.phrases[p.rnd.Intn(len(p.phrases))]
}
