package lyrics

import (
	"math"
	"strings"
)

// StructureSummary describes the overall shape of a song.
type StructureSummary struct {
	TotalSections int            `json:"total_sections"`
	SectionCounts map[string]int `json:"section_counts"`
	TotalBars     int            `json:"total_bars"`
	AverageBars   float64        `json:"average_bars_per_section"`
	Pattern       []string       `json:"structure_pattern"`
}

// Kind maps a display label onto a canonical section kind used for
// structure statistics. Unlabeled text is counted as a verse.
func Kind(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case l == "" || l == strings.ToLower(UnlabeledType):
		return "verse"
	case strings.HasPrefix(l, "verse"):
		return "verse"
	case strings.HasPrefix(l, "chorus") || strings.HasPrefix(l, "hook"):
		return "chorus"
	case strings.HasPrefix(l, "pre-chorus") || strings.HasPrefix(l, "pre chorus") || strings.HasPrefix(l, "prechorus"):
		return "pre_chorus"
	case strings.HasPrefix(l, "post-chorus") || strings.HasPrefix(l, "post chorus") || strings.HasPrefix(l, "postchorus"):
		return "post_chorus"
	case strings.HasPrefix(l, "intro"):
		return "intro"
	case strings.HasPrefix(l, "outro"):
		return "outro"
	case strings.HasPrefix(l, "bridge"):
		return "bridge"
	default:
		return "other"
	}
}

// Summarize computes structure statistics over parsed sections.
func Summarize(sections []Section) StructureSummary {
	s := StructureSummary{
		TotalSections: len(sections),
		SectionCounts: make(map[string]int),
	}
	for _, sec := range sections {
		kind := Kind(sec.Type)
		s.SectionCounts[kind]++
		s.TotalBars += sec.BarCount
		s.Pattern = append(s.Pattern, kind)
	}
	if len(sections) > 0 {
		avg := float64(s.TotalBars) / float64(len(sections))
		s.AverageBars = math.Round(avg*10) / 10
	}
	return s
}
