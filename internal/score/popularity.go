package score

import (
	"github.com/raphaelgruber/scorebars/internal/genres"
)

// PopularityPrediction maps the genre-weighted aggregate onto one of
// five ordered tiers.
type PopularityPrediction struct {
	Score          float64 `json:"score"`
	Level          string  `json:"level"`
	Description    string  `json:"description"`
	ViralPotential bool    `json:"viral_potential"`
	CriticalAppeal bool    `json:"critical_appeal"`
}

// Popularity tiers over the weighted aggregate. Intervals are
// closed-open except the top tier, which is closed at 100.
const (
	TierViral        = "viral"
	TierPopular      = "popular"
	TierNiche        = "niche"
	TierExperimental = "experimental"
	TierAmateur      = "amateur"
)

var tierDescriptions = map[string]string{
	TierViral:        "Strong commercial potential with viral appeal",
	TierPopular:      "Radio-ready with broad mainstream reach",
	TierNiche:        "Good potential for niche success",
	TierExperimental: "Distinct voice, better suited to a dedicated scene",
	TierAmateur:      "More suited for underground audiences while the craft develops",
}

// PredictPopularity maps a genre-weighted aggregate (0-100) to a tier.
func PredictPopularity(weighted float64, overall ScoreSet) PopularityPrediction {
	var level string
	switch {
	case weighted >= 85:
		level = TierViral
	case weighted >= 70:
		level = TierPopular
	case weighted >= 50:
		level = TierNiche
	case weighted >= 30:
		level = TierExperimental
	default:
		level = TierAmateur
	}

	return PopularityPrediction{
		Score:          weighted,
		Level:          level,
		Description:    tierDescriptions[level],
		ViralPotential: overall.RadioScore > 70,
		CriticalAppeal: overall.Cleverness > 75,
	}
}

// Suggestion thresholds: metrics below suggestionThreshold get one
// targeted suggestion each; if nothing is below it, a single positive
// note is returned instead.
const (
	suggestionThreshold = 60
	praiseThreshold     = 80
)

// Suggestions produces at most one improvement suggestion per metric.
func Suggestions(overall ScoreSet) []string {
	var out []string

	if overall.Cleverness < suggestionThreshold {
		out = append(out, "Add more metaphors and cultural references to increase cleverness")
	}
	if overall.RhymeDensity < suggestionThreshold {
		out = append(out, "Incorporate more internal rhymes and complex rhyme schemes")
	}
	if overall.Wordplay < suggestionThreshold {
		out = append(out, "Include more puns and punchlines to enhance wordplay")
	}
	if overall.RadioScore < suggestionThreshold {
		out = append(out, "Simplify some lines and add more hook-like phrases for radio appeal")
	}

	if len(out) == 0 {
		return []string{"Great work! Your lyrics show strong balance across all categories."}
	}
	return out
}

// AllPraiseworthy reports whether every metric clears the praise band.
func AllPraiseworthy(overall ScoreSet) bool {
	return overall.Cleverness >= praiseThreshold &&
		overall.RhymeDensity >= praiseThreshold &&
		overall.Wordplay >= praiseThreshold &&
		overall.RadioScore >= praiseThreshold
}

// GenrePrediction names the genre whose weight table best fits the
// computed raw scores.
type GenrePrediction struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Weighted float64 `json:"weighted_score"`
	Selected bool    `json:"selected"` // true when echoing an explicit user choice
}

// PredictGenre picks the genre maximizing the weighted aggregate of the
// raw scores. Ties break toward the earlier catalog entry.
func PredictGenre(raw ScoreSet, catalog *genres.Catalog) GenrePrediction {
	var best GenrePrediction
	first := true
	for _, g := range catalog.List() {
		weighted := raw.Weighted(g.Weights)
		if first || weighted > best.Weighted {
			best = GenrePrediction{Key: g.Key, Name: g.Name, Weighted: weighted}
			first = false
		}
	}
	return best
}
