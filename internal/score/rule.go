package score

import (
	"context"
	"math"
	"strings"

	"github.com/raphaelgruber/scorebars/internal/phonetics"
)

// RuleScorer is the deterministic, always-available scoring path. It
// never errors and performs no I/O.
type RuleScorer struct{}

// NewRuleScorer returns the rule-based scorer.
func NewRuleScorer() RuleScorer {
	return RuleScorer{}
}

// Name implements Scorer.
func (RuleScorer) Name() string { return "rule" }

// Score implements Scorer. Empty sections score zero on all metrics.
func (RuleScorer) Score(_ context.Context, in Input) (ScoreSet, error) {
	if in.Section.BarCount == 0 {
		return ScoreSet{}, nil
	}

	words := sectionWords(in.Section.Lines)

	return ScoreSet{
		Cleverness:   clevernessScore(words),
		RhymeDensity: rhymeDensityScore(in),
		Wordplay:     wordplayScore(in, words),
		RadioScore:   radioScore(in.Section.Lines),
	}.Clamped(), nil
}

// multiSyllabicBonus is added per multi-syllabic end-rhyme pair on top
// of the base density score.
const multiSyllabicBonus = 8

func rhymeDensityScore(in Input) int {
	base := int(math.Round(100 * in.Rhyme.Density))
	return clamp(base + multiSyllabicBonus*in.Rhyme.MultiSyllabicCount())
}

// clevernessScore combines the unique-vocabulary ratio with average word
// length as a cheap rarity proxy. Monotonic in both.
func clevernessScore(words []string) int {
	if len(words) == 0 {
		return 0
	}
	unique := make(map[string]bool, len(words))
	totalLen := 0
	for _, w := range words {
		unique[w] = true
		totalLen += len(w)
	}
	uniqueRatio := float64(len(unique)) / float64(len(words))
	avgLen := float64(totalLen) / float64(len(words))

	rarity := (avgLen - 3.0) * 12.0
	if rarity < 0 {
		rarity = 0
	} else if rarity > 45 {
		rarity = 45
	}
	return clamp(int(math.Round(uniqueRatio*55 + rarity)))
}

// wordplayScore counts wordplay markers: internal rhymes, alliteration
// runs, and repeated word stems reused across the section. Marker counts
// map monotonically into the banded 0-100 range.
func wordplayScore(in Input, words []string) int {
	internal := len(in.Rhyme.InternalRhymes)
	allit := alliterationCount(in.Section.Lines)
	reuse := repeatedStems(words)

	return clamp(25 + internal*12 + allit*6 + reuse*5)
}

func alliterationCount(lines []string) int {
	count := 0
	for _, line := range lines {
		fields := strings.Fields(strings.ToLower(line))
		for i := 0; i+1 < len(fields); i++ {
			a, b := phonetics.Normalize(fields[i]), phonetics.Normalize(fields[i+1])
			if a != "" && b != "" && a != b && a[0] == b[0] {
				count++
			}
		}
	}
	return count
}

// repeatedStems counts words longer than two characters that recur in
// the section, a proxy for deliberate reuse in different senses.
func repeatedStems(words []string) int {
	freq := make(map[string]int, len(words))
	for _, w := range words {
		if len(w) > 2 {
			freq[w]++
		}
	}
	n := 0
	for _, c := range freq {
		if c > 1 {
			n++
		}
	}
	return n
}

// radioScore rewards hook repetition and short, simple lines.
func radioScore(lines []string) int {
	score := 35.0

	// Hook detection: a line repeated at least twice.
	lineFreq := make(map[string]int, len(lines))
	maxRepeat := 0
	for _, line := range lines {
		key := strings.ToLower(line)
		lineFreq[key]++
		if lineFreq[key] > maxRepeat {
			maxRepeat = lineFreq[key]
		}
	}
	if maxRepeat >= 2 {
		bonus := 25.0 * float64(maxRepeat-1)
		if bonus > 40 {
			bonus = 40
		}
		score += bonus
	}

	// Brevity: shorter average line length raises the score.
	totalWords := 0
	for _, line := range lines {
		totalWords += len(strings.Fields(line))
	}
	if len(lines) > 0 {
		avgWords := float64(totalWords) / float64(len(lines))
		brevity := 30.0 - 3.0*avgWords
		if brevity > 0 {
			score += brevity
		}
	}

	return clamp(int(math.Round(score)))
}

// sectionWords returns all normalized word tokens across the section's
// cleaned lines, dropping tokens that normalize to nothing.
func sectionWords(lines []string) []string {
	var out []string
	for _, line := range lines {
		for _, f := range strings.Fields(line) {
			if norm := normalizeToken(f); norm != "" {
				out = append(out, norm)
			}
		}
	}
	return out
}

// normalizeToken lowercases and keeps only letters and digits, the Word
// Token normalization used for vocabulary statistics.
func normalizeToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
