package score

import (
	"fmt"
	"sort"
	"strings"

	"github.com/raphaelgruber/scorebars/internal/lyrics"
	"github.com/raphaelgruber/scorebars/internal/rhyme"
)

const maxHighlights = 5

// metaphor and reference marker words used by the per-line cleverness
// heuristic.
var (
	metaphorMarkers = []string{"like", "as", "compare", "imagine", "picture", "seems", "appears"}
	cultureMarkers  = []string{"money", "fame", "success", "struggle", "hustle", "grind", "dream", "life", "love", "hate"}
	punMarkers      = []string{"play", "word", "double", "meaning", "flip", "switch", "turn"}
)

type lineScore struct {
	index      int
	line       string
	cleverness float64
	wordplay   float64
	rhyme      float64
	combined   float64
}

// Highlights picks up to five standout lines from a section, each with a
// short note on what makes it work. Purely rule-based; the enhanced path
// may replace these when available.
func Highlights(section lyrics.Section, analysis rhyme.Analysis) []string {
	if section.BarCount == 0 {
		return nil
	}

	endParticipation := make(map[int]int)
	for _, p := range analysis.EndRhymes {
		endParticipation[p.LineA]++
		endParticipation[p.LineB]++
	}
	internalCount := make(map[int]int)
	for _, p := range analysis.InternalRhymes {
		internalCount[p.LineA]++
	}

	scored := make([]lineScore, 0, len(section.Lines))
	for i, line := range section.Lines {
		ls := lineScore{
			index:      i,
			line:       line,
			cleverness: lineCleverness(line),
			wordplay:   lineWordplay(line),
			rhyme:      lineRhyme(endParticipation[i], internalCount[i]),
		}
		ls.combined = ls.cleverness*0.4 + ls.wordplay*0.4 + ls.rhyme*0.2
		scored = append(scored, ls)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].combined > scored[j].combined
	})

	n := len(scored)
	if n > maxHighlights {
		n = maxHighlights
	}
	out := make([]string, 0, n)
	for _, ls := range scored[:n] {
		out = append(out, describeLine(ls))
	}
	return out
}

func lineCleverness(line string) float64 {
	lower := strings.ToLower(line)
	score := 50.0
	for _, m := range metaphorMarkers {
		if containsWord(lower, m) {
			score += 10
		}
	}
	for _, m := range cultureMarkers {
		if containsWord(lower, m) {
			score += 5
		}
	}
	words := strings.Fields(line)
	if len(words) > 0 {
		totalLen := 0
		for _, w := range words {
			totalLen += len(w)
		}
		if float64(totalLen)/float64(len(words)) > 6 {
			score += 15
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}

func lineWordplay(line string) float64 {
	lower := strings.ToLower(line)
	score := 50.0
	for _, m := range punMarkers {
		if containsWord(lower, m) {
			score += 12
		}
	}

	words := strings.Fields(lower)
	for i := 0; i+1 < len(words); i++ {
		a, b := normalizeToken(words[i]), normalizeToken(words[i+1])
		if a != "" && b != "" && a != b && a[0] == b[0] {
			score += 8
		}
	}

	freq := make(map[string]int, len(words))
	for _, w := range words {
		if norm := normalizeToken(w); len(norm) > 2 {
			freq[norm]++
		}
	}
	for _, c := range freq {
		if c > 1 {
			score += float64(c) * 5
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

func lineRhyme(endPairs, internalPairs int) float64 {
	score := 50.0 + 20.0*float64(endPairs) + 8.0*float64(internalPairs)
	if score > 100 {
		score = 100
	}
	return score
}

func describeLine(ls lineScore) string {
	var strengths []string
	if ls.cleverness > 75 {
		strengths = append(strengths, "clever metaphor")
	} else if ls.cleverness > 65 {
		strengths = append(strengths, "good metaphor")
	}
	if ls.wordplay > 75 {
		strengths = append(strengths, "strong wordplay")
	} else if ls.wordplay > 65 {
		strengths = append(strengths, "good wordplay")
	}
	if ls.rhyme > 75 {
		strengths = append(strengths, "excellent rhyme")
	} else if ls.rhyme > 65 {
		strengths = append(strengths, "good rhyme")
	}

	if len(strengths) == 0 {
		if ls.combined > 70 {
			return fmt.Sprintf("%q - Well-crafted line with balanced elements", ls.line)
		}
		return fmt.Sprintf("%q - Solid lyrical content", ls.line)
	}

	quality := "Good"
	if ls.combined > 80 {
		quality = "Outstanding"
	} else if ls.combined > 70 {
		quality = "Strong"
	}
	return fmt.Sprintf("%q - %s %s", ls.line, quality, strings.Join(strengths, ", "))
}

// containsWord reports whether lower contains w as a whole word.
func containsWord(lower, w string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], w)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(w)
		beforeOK := start == 0 || !isWordChar(lower[start-1])
		afterOK := end == len(lower) || !isWordChar(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '\''
}
