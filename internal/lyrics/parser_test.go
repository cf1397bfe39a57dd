package lyrics

import (
	"strings"
	"testing"
)

func TestParse_TwoSections(t *testing.T) {
	input := "[Verse 1]\nI'm in the studio, cooking up the heat\nEvery bar I spit, got the crowd on their feet\n\n[Chorus]\nScore my bars, let's see what you got\nAI analysis, give it all you've got"

	sections := Parse(input)
	if len(sections) != 2 {
		t.Fatalf("Parse() returned %d sections, want 2", len(sections))
	}

	if sections[0].Type != "Verse 1" {
		t.Errorf("sections[0].Type = %q, want %q", sections[0].Type, "Verse 1")
	}
	if sections[1].Type != "Chorus" {
		t.Errorf("sections[1].Type = %q, want %q", sections[1].Type, "Chorus")
	}
	for i, sec := range sections {
		if sec.BarCount != 2 {
			t.Errorf("sections[%d].BarCount = %d, want 2", i, sec.BarCount)
		}
	}
}

func TestParse_NoMarkers(t *testing.T) {
	input := "just one line\nand another"
	sections := Parse(input)
	if len(sections) != 1 {
		t.Fatalf("Parse() returned %d sections, want 1", len(sections))
	}
	if sections[0].Type != UnlabeledType {
		t.Errorf("Type = %q, want %q", sections[0].Type, UnlabeledType)
	}
	if sections[0].BarCount != 2 {
		t.Errorf("BarCount = %d, want 2", sections[0].BarCount)
	}
}

func TestParse_TextBeforeFirstMarker(t *testing.T) {
	input := "stray opening line\n[Verse]\nactual verse line"
	sections := Parse(input)
	if len(sections) != 2 {
		t.Fatalf("Parse() returned %d sections, want 2", len(sections))
	}
	if sections[0].Type != UnlabeledType {
		t.Errorf("sections[0].Type = %q, want %q", sections[0].Type, UnlabeledType)
	}
	if sections[1].Type != "Verse" {
		t.Errorf("sections[1].Type = %q, want %q", sections[1].Type, "Verse")
	}
}

func TestParse_EmptySectionKept(t *testing.T) {
	input := "[Verse]\n\n\n[Chorus]\nsing it loud"
	sections := Parse(input)
	if len(sections) != 2 {
		t.Fatalf("Parse() returned %d sections, want 2", len(sections))
	}
	if sections[0].BarCount != 0 {
		t.Errorf("empty section BarCount = %d, want 0", sections[0].BarCount)
	}
	if sections[1].BarCount != 1 {
		t.Errorf("sections[1].BarCount = %d, want 1", sections[1].BarCount)
	}
}

func TestParse_ConsecutiveMarkers(t *testing.T) {
	sections := Parse("[Intro]\n[Verse 1]\nline one")
	if len(sections) != 2 {
		t.Fatalf("Parse() returned %d sections, want 2", len(sections))
	}
	if sections[0].Type != "Intro" || sections[0].BarCount != 0 {
		t.Errorf("sections[0] = %q/%d, want Intro/0", sections[0].Type, sections[0].BarCount)
	}
}

func TestParse_MalformedMarkers(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unterminated", "[Verse 1"},
		{"nested", "[Verse [1]]"},
		{"empty label", "[]"},
		{"whitespace label", "[   ]"},
		{"trailing text", "[Verse 1] extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := Parse(tt.line)
			if len(sections) != 1 {
				t.Fatalf("Parse() returned %d sections, want 1", len(sections))
			}
			if sections[0].Type != UnlabeledType {
				t.Errorf("malformed marker %q treated as marker", tt.line)
			}
		})
	}
}

func TestParse_MarkerCasingAndWhitespace(t *testing.T) {
	sections := Parse("[  ChOrUs  ]\nhands up")
	if len(sections) != 1 {
		t.Fatalf("Parse() returned %d sections, want 1", len(sections))
	}
	// Original casing preserved for display, surrounding whitespace trimmed.
	if sections[0].Type != "ChOrUs" {
		t.Errorf("Type = %q, want %q", sections[0].Type, "ChOrUs")
	}
}

func TestParse_LineCleaning(t *testing.T) {
	sections := Parse("[Verse]\n   too    many\t spaces   \n\n")
	if got := sections[0].Lines[0]; got != "too many spaces" {
		t.Errorf("cleaned line = %q, want %q", got, "too many spaces")
	}
	if sections[0].BarCount != 1 {
		t.Errorf("BarCount = %d, want 1", sections[0].BarCount)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"[Verse 1]\nfirst line\n\nsecond line\n[Chorus]\nhook line",
		"no markers at all\njust lines",
		"\n\n[Verse]\ncontent after blank prefix",
		"[Intro]\n[Verse]\n[Outro]",
		"trailing newline\n",
		"",
		"windows\r\nline endings\r\n[Hook]\r\nyo",
	}

	for _, input := range inputs {
		normalized := strings.ReplaceAll(input, "\r\n", "\n")
		sections := Parse(input)
		var parts []string
		for _, s := range sections {
			parts = append(parts, s.RawText)
		}
		if got := strings.Join(parts, "\n"); got != normalized {
			t.Errorf("round trip failed:\n input: %q\noutput: %q", normalized, got)
		}
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Verse 1", "verse"},
		{"VERSE", "verse"},
		{"Chorus", "chorus"},
		{"Hook", "chorus"},
		{"Pre-Chorus", "pre_chorus"},
		{"Post-Chorus", "post_chorus"},
		{"Intro", "intro"},
		{"Outro", "outro"},
		{"Bridge", "bridge"},
		{"Unlabeled", "verse"},
		{"Interlude", "other"},
	}
	for _, tt := range tests {
		if got := Kind(tt.label); got != tt.want {
			t.Errorf("Kind(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	sections := Parse("[Verse 1]\na\nb\nc\nd\n[Chorus]\ne\nf\n[Verse 2]\ng\nh\ni")
	s := Summarize(sections)

	if s.TotalSections != 3 {
		t.Errorf("TotalSections = %d, want 3", s.TotalSections)
	}
	if s.TotalBars != 9 {
		t.Errorf("TotalBars = %d, want 9", s.TotalBars)
	}
	if s.SectionCounts["verse"] != 2 || s.SectionCounts["chorus"] != 1 {
		t.Errorf("SectionCounts = %v", s.SectionCounts)
	}
	if s.AverageBars != 3.0 {
		t.Errorf("AverageBars = %v, want 3.0", s.AverageBars)
	}
	want := []string{"verse", "chorus", "verse"}
	for i, k := range want {
		if s.Pattern[i] != k {
			t.Errorf("Pattern[%d] = %q, want %q", i, s.Pattern[i], k)
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalSections != 0 || s.TotalBars != 0 || s.AverageBars != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero summary", s)
	}
}
