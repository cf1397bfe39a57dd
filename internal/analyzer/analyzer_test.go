package analyzer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/raphaelgruber/scorebars/internal/genres"
	"github.com/raphaelgruber/scorebars/internal/llm"
	"github.com/raphaelgruber/scorebars/internal/metrics"
	"github.com/raphaelgruber/scorebars/internal/phonetics"
	"github.com/raphaelgruber/scorebars/internal/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLyrics = `[Verse 1]
I'm cooking up heat in the studio
Every line I drop got that flow

[Chorus]
Money on my mind, honey on the side
Every single day I ride`

func newTestAnalyzer(t *testing.T, enhanced score.Scorer) *Analyzer {
	t.Helper()

	dict, err := phonetics.Embedded()
	require.NoError(t, err)
	catalog, err := genres.Embedded()
	require.NoError(t, err)

	a, err := New(Options{
		Dictionary:      dict,
		Catalog:         catalog,
		Enhanced:        enhanced,
		EnhancedTimeout: time.Second,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return a
}

// stubScorer is a canned enhanced path for tests. Sections are scored
// in parallel, so the call counter is guarded.
type stubScorer struct {
	scores score.ScoreSet
	err    error

	mu    sync.Mutex
	calls int
}

func (s *stubScorer) Name() string { return "stub" }

func (s *stubScorer) Score(_ context.Context, _ score.Input) (score.ScoreSet, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return score.ScoreSet{}, s.err
	}
	return s.scores, nil
}

func (s *stubScorer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestNewValidation(t *testing.T) {
	catalog, err := genres.Embedded()
	require.NoError(t, err)
	dict, err := phonetics.Embedded()
	require.NoError(t, err)

	_, err = New(Options{Catalog: catalog})
	assert.Error(t, err)

	_, err = New(Options{Dictionary: dict})
	assert.Error(t, err)
}

func TestAnalyzeEmptyLyrics(t *testing.T) {
	a := newTestAnalyzer(t, nil)

	for _, input := range []string{"", "   \n\t\n  "} {
		_, err := a.Analyze(context.Background(), Request{Lyrics: input})
		assert.ErrorIs(t, err, ErrEmptyLyrics)
	}
}

func TestAnalyzeUnknownGenre(t *testing.T) {
	a := newTestAnalyzer(t, nil)

	_, err := a.Analyze(context.Background(), Request{Lyrics: sampleLyrics, GenreKey: "polka"})
	assert.ErrorIs(t, err, ErrUnknownGenre)
	assert.Contains(t, err.Error(), "polka")
}

func TestAnalyzeRuleBased(t *testing.T) {
	a := newTestAnalyzer(t, nil)

	result, err := a.Analyze(context.Background(), Request{Lyrics: sampleLyrics, GenreKey: "hip_hop_rap"})
	require.NoError(t, err)

	require.Len(t, result.Sections, 2)
	assert.Equal(t, "Verse 1", result.Sections[0].Section.Type)
	assert.Equal(t, "Chorus", result.Sections[1].Section.Type)
	assert.Equal(t, 2, result.Sections[0].Section.BarCount)
	assert.Equal(t, 4, result.TotalBars)

	for _, sr := range result.Sections {
		for name, v := range map[string]int{
			"cleverness":    sr.Scores.Cleverness,
			"rhyme_density": sr.Scores.RhymeDensity,
			"wordplay":      sr.Scores.Wordplay,
			"radio_score":   sr.Scores.RadioScore,
		} {
			assert.GreaterOrEqual(t, v, 0, name)
			assert.LessOrEqual(t, v, 100, name)
		}
	}

	assert.NotEmpty(t, result.RequestID)
	assert.True(t, result.Genre.Selected)
	assert.Equal(t, "hip_hop_rap", result.Genre.Key)
	assert.NotEmpty(t, result.Popularity.Level)
	assert.NotEmpty(t, result.Suggestions)
	assert.Equal(t, 2, result.Structure.TotalSections)
}

func TestAnalyzePredictsGenreWhenUnselected(t *testing.T) {
	a := newTestAnalyzer(t, nil)

	result, err := a.Analyze(context.Background(), Request{Lyrics: sampleLyrics})
	require.NoError(t, err)

	assert.False(t, result.Genre.Selected)
	_, ok := a.Catalog().Get(result.Genre.Key)
	assert.True(t, ok, "predicted genre must come from the catalog")
}

func TestAnalyzeEnhancedPath(t *testing.T) {
	stub := &stubScorer{scores: score.ScoreSet{Cleverness: 81, RhymeDensity: 82, Wordplay: 83, RadioScore: 84}}
	a := newTestAnalyzer(t, stub)

	result, err := a.Analyze(context.Background(), Request{Lyrics: sampleLyrics, GenreKey: "pop"})
	require.NoError(t, err)

	assert.Equal(t, 2, stub.callCount())
	for _, sr := range result.Sections {
		assert.Equal(t, stub.scores, sr.Scores)
	}
	assert.Equal(t, stub.scores, result.Overall)
}

func TestAnalyzeFallsBackOnEnhancedFailure(t *testing.T) {
	stub := &stubScorer{err: errors.New("model unavailable")}
	a := newTestAnalyzer(t, stub)

	result, err := a.Analyze(context.Background(), Request{Lyrics: sampleLyrics, GenreKey: "hip_hop_rap"})
	require.NoError(t, err, "enhanced failures must never surface")

	assert.Equal(t, 2, stub.callCount(), "transient failures keep the enhanced path enabled")
	rule := score.NewRuleScorer()
	for _, sr := range result.Sections {
		want, scoreErr := rule.Score(context.Background(), score.Input{
			Section: sr.Section,
			Rhyme:   sr.Rhyme,
		})
		require.NoError(t, scoreErr)
		assert.Equal(t, want, sr.Scores)
	}

	snap := a.Metrics().Snapshot()
	assert.Equal(t, int64(2), snap.Operations[metrics.OpLLMScore].Failures)
	assert.Equal(t, int64(2), snap.Operations[metrics.OpRuleScore].Count)
}

func TestAnalyzeDisablesEnhancedOnFatalError(t *testing.T) {
	stub := &stubScorer{err: errors.Join(llm.ErrFatalAPI, errors.New("invalid api key"))}
	a := newTestAnalyzer(t, stub)

	_, err := a.Analyze(context.Background(), Request{Lyrics: sampleLyrics, GenreKey: "hip_hop_rap"})
	require.NoError(t, err)

	// Sections run in parallel, so the first batch may call the stub up
	// to once per section, but a second run must not call it at all.
	calls := stub.callCount()
	assert.GreaterOrEqual(t, calls, 1)

	_, err = a.Analyze(context.Background(), Request{Lyrics: sampleLyrics, GenreKey: "hip_hop_rap"})
	require.NoError(t, err)
	assert.Equal(t, calls, stub.callCount())
}

func TestAnalyzeSectionOrderStable(t *testing.T) {
	a := newTestAnalyzer(t, nil)
	input := `[Intro]
Yeah

[Verse 1]
First verse line here

[Chorus]
Chorus line here

[Verse 2]
Second verse line here

[Outro]
Gone`

	for i := 0; i < 5; i++ {
		result, err := a.Analyze(context.Background(), Request{Lyrics: input, GenreKey: "hip_hop_rap"})
		require.NoError(t, err)

		types := make([]string, len(result.Sections))
		for j, sr := range result.Sections {
			types[j] = sr.Section.Type
		}
		assert.Equal(t, []string{"Intro", "Verse 1", "Chorus", "Verse 2", "Outro"}, types)
	}
}

func TestAnalyzeUnlabeledLyrics(t *testing.T) {
	a := newTestAnalyzer(t, nil)

	result, err := a.Analyze(context.Background(), Request{Lyrics: "Money on my mind\nHoney by my side"})
	require.NoError(t, err)

	require.Len(t, result.Sections, 1)
	assert.Equal(t, "Unlabeled", result.Sections[0].Section.Type)
	assert.Equal(t, 2, result.Sections[0].Section.BarCount)
}
