// Package score computes the four lyric quality metrics, genre-weighted
// aggregates, popularity prediction and improvement suggestions.
package score

import (
	"context"
	"math"

	"github.com/raphaelgruber/scorebars/internal/genres"
	"github.com/raphaelgruber/scorebars/internal/lyrics"
	"github.com/raphaelgruber/scorebars/internal/rhyme"
)

// ScoreSet holds the four quality metrics, each in [0,100]. All four are
// always present regardless of which scoring path produced them.
type ScoreSet struct {
	Cleverness   int `json:"cleverness"`
	RhymeDensity int `json:"rhyme_density"`
	Wordplay     int `json:"wordplay"`
	RadioScore   int `json:"radio_score"`
}

// Clamped returns a copy with every metric clamped to [0,100].
func (s ScoreSet) Clamped() ScoreSet {
	return ScoreSet{
		Cleverness:   clamp(s.Cleverness),
		RhymeDensity: clamp(s.RhymeDensity),
		Wordplay:     clamp(s.Wordplay),
		RadioScore:   clamp(s.RadioScore),
	}
}

// Weighted applies a genre weight table to the four metrics.
func (s ScoreSet) Weighted(w genres.Weights) float64 {
	return w.Apply(s.Cleverness, s.RhymeDensity, s.Wordplay, s.RadioScore)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Input carries everything a scorer needs for one section.
type Input struct {
	Section lyrics.Section
	Rhyme   rhyme.Analysis
	Genre   genres.Genre
	Title   string
	Artist  string
}

// Scorer scores one section. Implementations must return a complete
// ScoreSet or an error; the coordinator falls back to the rule-based
// scorer when an implementation fails.
type Scorer interface {
	Name() string
	Score(ctx context.Context, in Input) (ScoreSet, error)
}

// Aggregate computes the per-metric arithmetic mean of section scores,
// rounded to the nearest integer. Empty input yields the zero ScoreSet.
func Aggregate(sets []ScoreSet) ScoreSet {
	if len(sets) == 0 {
		return ScoreSet{}
	}
	var c, r, w, rad int
	for _, s := range sets {
		c += s.Cleverness
		r += s.RhymeDensity
		w += s.Wordplay
		rad += s.RadioScore
	}
	n := float64(len(sets))
	return ScoreSet{
		Cleverness:   int(math.Round(float64(c) / n)),
		RhymeDensity: int(math.Round(float64(r) / n)),
		Wordplay:     int(math.Round(float64(w) / n)),
		RadioScore:   int(math.Round(float64(rad) / n)),
	}.Clamped()
}

// AdjustToReference nudges raw scores toward a genre's chart baselines.
// Scores near the reference average get a boost, scores far below stay
// put. Without reference data the raw scores pass through unchanged.
// The result feeds the genre-weighted aggregate only; raw per-metric
// scores shown to the user are never overwritten.
func AdjustToReference(raw ScoreSet, g genres.Genre) ScoreSet {
	if len(g.ReferenceSongs) == 0 {
		return raw
	}

	var avg ScoreSet
	for _, song := range g.ReferenceSongs {
		avg.Cleverness += song.Scores.Cleverness
		avg.RhymeDensity += song.Scores.RhymeDensity
		avg.Wordplay += song.Scores.Wordplay
		avg.RadioScore += song.Scores.RadioScore
	}
	n := len(g.ReferenceSongs)
	avg.Cleverness /= n
	avg.RhymeDensity /= n
	avg.Wordplay /= n
	avg.RadioScore /= n

	return ScoreSet{
		Cleverness:   adjustMetric(raw.Cleverness, avg.Cleverness),
		RhymeDensity: adjustMetric(raw.RhymeDensity, avg.RhymeDensity),
		Wordplay:     adjustMetric(raw.Wordplay, avg.Wordplay),
		RadioScore:   adjustMetric(raw.RadioScore, avg.RadioScore),
	}.Clamped()
}

func adjustMetric(raw, reference int) int {
	diff := raw - reference
	switch {
	case diff > -10 && diff < 10:
		return raw + 10
	case raw < reference-20:
		return raw
	default:
		return raw + 5
	}
}
