package stats

import (
	"bytes"
	"testing"
)

func TestTableLinesAlignsColumns(t *testing.T) {
	cols := []column{{title: "Phrase"}, {title: "WPM", right: true}, {title: "Accuracy", right: true}}
	lines := tableLines(cols, [][]string{
		{"Sila duduk", "41", "97%"},
		{"Boleh", "8", "100%"},
	})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Phrase     WPM Accuracy" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Sila duduk  41      97%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Boleh        8     100%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTableLinesWideRunes(t *testing.T) {
	lines := tableLines([]column{{title: "Text"}, {title: "N"}}, [][]string{
		{"どうも", "1"},
		{"abc", "2"},
	})
	if lines[1] != "どうも 1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "abc    2" {
		t.Fatalf("expected padding to display width, got %q", lines[2])
	}
}

func TestTableLinesTruncatesLongCells(t *testing.T) {
	lines := tableLines([]column{{title: "Phrase", max: 8}, {title: "N"}}, [][]string{
		{"Terima kasih banyak-banyak.", "1"},
	})
	if lines[1] != "Terim... 1" {
		t.Fatalf("expected truncated phrase, got %q", lines[1])
	}
}

func TestWriteTableTitle(t *testing.T) {
	var buf bytes.Buffer
	if err := writeTable(&buf, "Practices", []column{{title: "A"}, {title: "B"}}, [][]string{{"x"}}); err != nil {
		t.Fatalf("write table: %v", err)
	}
	if got := buf.String(); got != "Practices\nA B\nx\n" {
		t.Fatalf("unexpected table: %q", got)
	}
}
