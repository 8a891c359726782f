// Package stats contains metric calculations and history reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/dikte/internal/model"
)

const sparkChars = " .:-=+*#%@"

// maxPhraseWidth bounds the phrase column of the practice table.
const maxPhraseWidth = 40

// Accuracy returns the percentage of typed runes that match target at the
// same position, rounded half up. Empty input is 100. Runes typed past the
// end of target count as misses.
func Accuracy(target, input string) int {
	typed := []rune(input)
	if len(typed) == 0 {
		return 100
	}
	want := []rune(target)
	correct := 0
	for i, r := range typed {
		if i < len(want) && want[i] == r {
			correct++
		}
	}
	return roundHalfUp(float64(correct) / float64(len(typed)) * 100)
}

// WPM returns (runes/5)/minutes rounded half up. Zero or negative elapsed
// time and non-finite results yield 0.
func WPM(typedRunes int, elapsed time.Duration) int {
	if elapsed <= 0 || typedRunes <= 0 {
		return 0
	}
	minutes := elapsed.Minutes()
	v := (float64(typedRunes) / 5.0) / minutes
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return roundHalfUp(v)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary block for practices.
func RenderSummary(w io.Writer, practices []model.PracticeAggregate) error {
	if len(practices) == 0 {
		_, err := fmt.Fprintln(w, "No practices found.")
		return err
	}
	var totalWPM, totalAcc float64
	bestWPM := 0
	var totalMs int64
	for _, p := range practices {
		totalWPM += float64(p.WPM)
		totalAcc += float64(p.Accuracy)
		totalMs += p.DurationMs
		if p.WPM > bestWPM {
			bestWPM = p.WPM
		}
	}
	count := float64(len(practices))
	lines := []string{
		"Summary",
		fmt.Sprintf("Practices: %d", len(practices)),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %d", bestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", totalAcc/count),
		fmt.Sprintf("Time typing: %s", (time.Duration(totalMs) * time.Millisecond).Round(time.Second)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints WPM and accuracy sparklines, smoothed over window and
// limited to the last width practices when width is positive.
func RenderCurves(w io.Writer, practices []model.PracticeAggregate, window, width int) error {
	if len(practices) == 0 {
		return nil
	}
	if width > 0 && len(practices) > width {
		practices = practices[len(practices)-width:]
	}
	wpms := make([]float64, len(practices))
	accs := make([]float64, len(practices))
	for i, p := range practices {
		wpms[i] = float64(p.WPM)
		accs[i] = float64(p.Accuracy)
	}
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)

	cols := []column{{title: "Curve"}, {title: "Trend"}, {title: "Latest", right: true}}
	rows := [][]string{
		{"WPM", Sparkline(wpms), fmt.Sprintf("%.1f", wpms[len(wpms)-1])},
		{"Accuracy", Sparkline(accs), fmt.Sprintf("%.1f%%", accs[len(accs)-1])},
	}
	if err := writeTable(w, "Learning Curves", cols, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderPracticeTable prints one row per practice, most recent last.
func RenderPracticeTable(w io.Writer, practices []model.PracticeAggregate) error {
	if len(practices) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(practices))
	for _, p := range practices {
		rows = append(rows, []string{
			p.EndedAt.Local().Format("2006-01-02 15:04"),
			p.Source,
			fmt.Sprintf("%d", p.WPM),
			fmt.Sprintf("%d%%", p.Accuracy),
			fmt.Sprintf("%.1fs", float64(p.DurationMs)/1000),
		})
	}
	cols := []column{
		{title: "Ended"},
		{title: "Phrase", max: maxPhraseWidth},
		{title: "WPM", right: true},
		{title: "Accuracy", right: true},
		{title: "Time", right: true},
	}
	return writeTable(w, "Practices", cols, rows)
}
