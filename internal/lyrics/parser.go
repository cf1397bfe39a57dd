// Package lyrics splits raw lyric text into labeled structural sections.
package lyrics

import (
	"strings"
)

// UnlabeledType is the section type assigned to text appearing before the
// first section marker (or to marker-free input).
const UnlabeledType = "Unlabeled"

// Section is one structural block of a song. Created once by Parse and
// immutable afterwards.
type Section struct {
	// Type is the display label from the marker, original casing
	// preserved, e.g. "Verse 1", "Chorus", "Hook".
	Type string `json:"type"`

	// RawText holds the section's original lines joined by newlines,
	// including its marker line and any blank lines. Joining all
	// sections' RawText with newlines reconstructs the input.
	RawText string `json:"content"`

	// Lines are the cleaned non-empty lines: trimmed, with internal
	// whitespace runs collapsed to single spaces.
	Lines []string `json:"lines"`

	// BarCount is the number of cleaned non-empty lines.
	BarCount int `json:"bar_count"`
}

// parseState tracks whether the scanner has seen a section marker yet.
type parseState int

const (
	outsideSection parseState = iota
	insideSection
)

// Parse splits raw lyric text into an ordered sequence of sections.
// It is total: any input, including marker-free or marker-only text,
// yields a well-formed result. Sections with no content between two
// markers are kept with BarCount 0.
func Parse(raw string) []Section {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	inputLines := strings.Split(normalized, "\n")

	var sections []Section

	state := outsideSection
	label := ""
	var rawLines []string

	flush := func() {
		if state == outsideSection {
			// Text before the first marker. Only becomes a section when
			// it has visible content; pure whitespace is carried into
			// the next section's raw text for round-trip fidelity.
			if !hasContent(rawLines) {
				return
			}
			sections = append(sections, newSection(UnlabeledType, rawLines))
			rawLines = nil
			return
		}
		sections = append(sections, newSection(label, rawLines))
		rawLines = nil
	}

	for _, line := range inputLines {
		if markerLabel, ok := matchMarker(line); ok {
			carried := rawLines
			if state == outsideSection && hasContent(carried) {
				flush()
				carried = nil
			} else if state == insideSection {
				flush()
				carried = nil
			}
			state = insideSection
			label = markerLabel
			rawLines = append(carried, line)
			continue
		}
		rawLines = append(rawLines, line)
	}
	flush()

	// Marker-free input with no visible content still yields one section
	// so callers always see the full document.
	if len(sections) == 0 {
		sections = append(sections, newSection(UnlabeledType, rawLines))
	}

	return sections
}

// matchMarker reports whether a line is a well-formed section marker of
// the form "[Label]". Unterminated or nested brackets are literal text.
func matchMarker(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return "", false
	}
	inner := trimmed[1 : len(trimmed)-1]
	if strings.ContainsAny(inner, "[]") {
		return "", false
	}
	label := strings.TrimSpace(inner)
	if label == "" {
		return "", false
	}
	return label, true
}

func newSection(label string, rawLines []string) Section {
	var lines []string
	for _, l := range rawLines {
		if _, isMarker := matchMarker(l); isMarker {
			continue
		}
		if cleaned := CleanLine(l); cleaned != "" {
			lines = append(lines, cleaned)
		}
	}
	return Section{
		Type:     label,
		RawText:  strings.Join(rawLines, "\n"),
		Lines:    lines,
		BarCount: len(lines),
	}
}

// CleanLine trims a line and collapses internal whitespace runs to
// single spaces.
func CleanLine(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

func hasContent(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}
