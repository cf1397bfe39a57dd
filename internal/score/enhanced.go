package score

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/raphaelgruber/scorebars/internal/llm"
)

const scoringSystemPrompt = `You are an expert music analyst comparing lyrics to chart hits. Analyze the given lyrics and provide scores (0-100) for four categories: cleverness, rhyme_density, wordplay, and radio_score. Compare to chart #1 hits in the specified genre. Return only a JSON object.`

// EnhancedScorer delegates scoring to an external LLM. Any failure is
// returned as an error; the coordinator decides to fall back to the
// rule-based path, never this type.
type EnhancedScorer struct {
	model *llm.Model
}

// NewEnhancedScorer wraps an LLM model as a Scorer.
func NewEnhancedScorer(model *llm.Model) *EnhancedScorer {
	return &EnhancedScorer{model: model}
}

// Name implements Scorer.
func (s *EnhancedScorer) Name() string { return "enhanced" }

// Score implements Scorer by prompting the model with the section text,
// genre context and a rhyme-analysis summary.
func (s *EnhancedScorer) Score(ctx context.Context, in Input) (ScoreSet, error) {
	if in.Section.BarCount == 0 {
		return ScoreSet{}, nil
	}

	response, err := s.model.GenerateWithSystem(ctx, scoringSystemPrompt, buildScoringPrompt(in))
	if err != nil {
		return ScoreSet{}, fmt.Errorf("llm score: %w", err)
	}

	scores, err := parseScores(response)
	if err != nil {
		return ScoreSet{}, fmt.Errorf("llm score: %w", err)
	}
	return scores, nil
}

func buildScoringPrompt(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze this %s section and score it (0-100) against chart hits in the %s genre.\n\n",
		in.Section.Type, in.Genre.Name)
	fmt.Fprintf(&b, "Section type: %s\nBars: %d\nLyrics:\n%s\n\n",
		in.Section.Type, in.Section.BarCount, strings.Join(in.Section.Lines, "\n"))

	fmt.Fprintf(&b, "Rhyme analysis: scheme %s, density %.2f, %d end-rhyme pairs, %d internal rhymes, %d multi-syllabic.\n",
		in.Rhyme.Scheme, in.Rhyme.Density, len(in.Rhyme.EndRhymes), len(in.Rhyme.InternalRhymes), in.Rhyme.MultiSyllabicCount())

	if len(in.Genre.ReferenceSongs) > 0 {
		fmt.Fprintf(&b, "\nChart context for %s:\n", in.Genre.Name)
		for i, song := range in.Genre.ReferenceSongs {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "- %q by %s (peak #%d): cleverness %d, rhyme %d, wordplay %d, radio %d\n",
				song.Title, song.Artist, song.PeakPosition,
				song.Scores.Cleverness, song.Scores.RhymeDensity, song.Scores.Wordplay, song.Scores.RadioScore)
		}
	}

	b.WriteString(`
Scoring criteria:
1. Cleverness: metaphors, double entendres, unique angles, cultural references
2. Rhyme Density: end rhymes, internal rhymes, multi-syllabic rhymes, scheme complexity
3. Wordplay: puns, punchlines, literary devices, word manipulation
4. Radio Score: hook potential, simplicity, replay value, commercial appeal

Return only a JSON object like:
{"cleverness": 85, "rhyme_density": 78, "wordplay": 92, "radio_score": 65}`)

	return b.String()
}

// parseScores extracts a score object from an LLM response that may wrap
// the JSON in prose or code fences.
func parseScores(response string) (ScoreSet, error) {
	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start < 0 || end <= start {
		return ScoreSet{}, fmt.Errorf("no JSON object in response")
	}

	// Models sometimes add commentary fields, so decode loosely and pull
	// out just the numbers.
	var raw map[string]any
	if err := json.Unmarshal([]byte(response[start:end+1]), &raw); err != nil {
		return ScoreSet{}, fmt.Errorf("parse scores: %w", err)
	}

	get := func(key string) (int, error) {
		v, ok := raw[key]
		if !ok {
			return 0, fmt.Errorf("response missing %q", key)
		}
		n, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("field %q is not a number", key)
		}
		return int(n), nil
	}

	var s ScoreSet
	var err error
	if s.Cleverness, err = get("cleverness"); err != nil {
		return ScoreSet{}, err
	}
	if s.RhymeDensity, err = get("rhyme_density"); err != nil {
		return ScoreSet{}, err
	}
	if s.Wordplay, err = get("wordplay"); err != nil {
		return ScoreSet{}, err
	}
	if s.RadioScore, err = get("radio_score"); err != nil {
		return ScoreSet{}, err
	}
	return s.Clamped(), nil
}
