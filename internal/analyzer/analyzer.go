// Package analyzer coordinates the full pipeline: section parsing,
// rhyme analysis, scoring with enhanced/rule fallback, and song-level
// aggregation.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/raphaelgruber/scorebars/internal/genres"
	"github.com/raphaelgruber/scorebars/internal/llm"
	"github.com/raphaelgruber/scorebars/internal/lyrics"
	"github.com/raphaelgruber/scorebars/internal/metrics"
	"github.com/raphaelgruber/scorebars/internal/phonetics"
	"github.com/raphaelgruber/scorebars/internal/rhyme"
	"github.com/raphaelgruber/scorebars/internal/score"
)

// Input validation errors. Raised before analysis begins; the engine
// never sees wholly empty input.
var (
	ErrEmptyLyrics  = errors.New("no lyrics provided")
	ErrUnknownGenre = errors.New("unknown genre")
)

const defaultEnhancedTimeout = 15 * time.Second

// Options configures an Analyzer. Dictionary and Catalog are required;
// Enhanced is optional and nil disables the enhanced scoring path.
type Options struct {
	Dictionary *phonetics.Dictionary
	Catalog    *genres.Catalog
	Enhanced   score.Scorer
	// EnhancedTimeout bounds each enhanced scoring call. On expiry the
	// section falls back to the rule-based path; the rest of the
	// pipeline is never blocked.
	EnhancedTimeout time.Duration
	Metrics         *metrics.Collector
	Logger          *slog.Logger
}

// Analyzer runs lyric analysis. Safe for concurrent use across
// independent requests; all shared state is read-only.
type Analyzer struct {
	catalog         *genres.Catalog
	rhymes          *rhyme.Engine
	rule            score.RuleScorer
	enhanced        score.Scorer
	enhancedTimeout time.Duration
	enhancedDown    atomic.Bool
	metrics         *metrics.Collector
	logger          *slog.Logger
}

// New creates an Analyzer from options.
func New(opts Options) (*Analyzer, error) {
	if opts.Dictionary == nil {
		return nil, fmt.Errorf("analyzer requires a pronunciation dictionary")
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("analyzer requires a genre catalog")
	}
	if opts.EnhancedTimeout <= 0 {
		opts.EnhancedTimeout = defaultEnhancedTimeout
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewCollector()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Analyzer{
		catalog:         opts.Catalog,
		rhymes:          rhyme.NewEngine(opts.Dictionary),
		rule:            score.NewRuleScorer(),
		enhanced:        opts.Enhanced,
		enhancedTimeout: opts.EnhancedTimeout,
		metrics:         opts.Metrics,
		logger:          opts.Logger,
	}, nil
}

// Request is one analysis invocation.
type Request struct {
	Lyrics string
	// GenreKey selects the comparison genre. Empty means predict one
	// from the computed scores.
	GenreKey string
	Title    string
	Artist   string
}

// SectionResult is the per-section output.
type SectionResult struct {
	Section    lyrics.Section          `json:"section"`
	Scores     score.ScoreSet          `json:"scores"`
	Rhyme      rhyme.Analysis          `json:"rhyme_analysis"`
	Highlights []string                `json:"highlights"`
}

// Result is the full song-level output.
type Result struct {
	RequestID   string                     `json:"request_id"`
	Sections    []SectionResult            `json:"sections"`
	Overall     score.ScoreSet             `json:"overall_scores"`
	Genre       score.GenrePrediction      `json:"genre_prediction"`
	Popularity  score.PopularityPrediction `json:"popularity_prediction"`
	Suggestions []string                   `json:"suggestions"`
	TotalBars   int                        `json:"total_bars"`
	Structure   lyrics.StructureSummary    `json:"structure"`
	Description score.SongDescription      `json:"description"`
	Elapsed     time.Duration              `json:"-"`
}

// Metrics exposes the collector for callers that report statistics.
func (a *Analyzer) Metrics() *metrics.Collector {
	return a.metrics
}

// Catalog exposes the genre catalog.
func (a *Analyzer) Catalog() *genres.Catalog {
	return a.catalog
}

// Analyze runs the full pipeline on one request.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	if strings.TrimSpace(req.Lyrics) == "" {
		return nil, ErrEmptyLyrics
	}

	genre := a.catalog.Default()
	if req.GenreKey != "" {
		g, ok := a.catalog.Get(req.GenreKey)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGenre, req.GenreKey)
		}
		genre = g
	}

	requestID := uuid.NewString()
	logger := a.logger.With("request_id", requestID)

	parseStart := time.Now()
	sections := lyrics.Parse(req.Lyrics)
	a.metrics.Observe(metrics.OpParse, time.Since(parseStart))
	logger.Debug("parsed lyrics", "sections", len(sections))

	// Section analyses are independent; run them in parallel but keep
	// document order in the result.
	results := make([]SectionResult, len(sections))
	var wg sync.WaitGroup
	for i, section := range sections {
		wg.Add(1)
		go func(i int, section lyrics.Section) {
			defer wg.Done()
			results[i] = a.analyzeSection(ctx, logger, section, genre, req)
		}(i, section)
	}
	wg.Wait()

	sets := make([]score.ScoreSet, len(results))
	for i, r := range results {
		sets[i] = r.Scores
	}
	overall := score.Aggregate(sets)

	prediction := score.GenrePrediction{
		Key:      genre.Key,
		Name:     genre.Name,
		Weighted: overall.Weighted(genre.Weights),
		Selected: req.GenreKey != "",
	}
	if req.GenreKey == "" {
		prediction = score.PredictGenre(overall, a.catalog)
		if g, ok := a.catalog.Get(prediction.Key); ok {
			genre = g
		}
	}

	// The genre-weighted aggregate (with chart-reference adjustment)
	// drives popularity only; raw metric scores are reported untouched.
	adjusted := score.AdjustToReference(overall, genre)
	weighted := adjusted.Weighted(genre.Weights)

	structure := lyrics.Summarize(sections)

	result := &Result{
		RequestID:   requestID,
		Sections:    results,
		Overall:     overall,
		Genre:       prediction,
		Popularity:  score.PredictPopularity(weighted, overall),
		Suggestions: score.Suggestions(overall),
		TotalBars:   structure.TotalBars,
		Structure:   structure,
		Description: score.Describe(req.Lyrics, req.Title, req.Artist, genre),
		Elapsed:     time.Since(start),
	}

	a.metrics.Observe(metrics.OpAnalyze, result.Elapsed)
	logger.Info("analysis complete",
		"sections", len(sections),
		"total_bars", result.TotalBars,
		"popularity", result.Popularity.Level,
		"elapsed_ms", result.Elapsed.Milliseconds())
	return result, nil
}

func (a *Analyzer) analyzeSection(ctx context.Context, logger *slog.Logger, section lyrics.Section, genre genres.Genre, req Request) SectionResult {
	rhymeStart := time.Now()
	analysis := a.rhymes.Analyze(section)
	a.metrics.Observe(metrics.OpRhyme, time.Since(rhymeStart))

	in := score.Input{
		Section: section,
		Rhyme:   analysis,
		Genre:   genre,
		Title:   req.Title,
		Artist:  req.Artist,
	}

	return SectionResult{
		Section:    section,
		Scores:     a.scoreSection(ctx, logger, in),
		Rhyme:      analysis,
		Highlights: score.Highlights(section, analysis),
	}
}

// scoreSection applies the strategy selection: enhanced path when
// configured and healthy, rule-based otherwise. Enhanced failures and
// timeouts are recovered here and never surfaced to the caller.
func (a *Analyzer) scoreSection(ctx context.Context, logger *slog.Logger, in score.Input) score.ScoreSet {
	if a.enhanced != nil && !a.enhancedDown.Load() {
		ectx, cancel := context.WithTimeout(ctx, a.enhancedTimeout)
		start := time.Now()
		scores, err := a.enhanced.Score(ectx, in)
		cancel()
		if err == nil {
			a.metrics.Observe(metrics.OpLLMScore, time.Since(start))
			return scores
		}
		a.metrics.ObserveFailure(metrics.OpLLMScore, time.Since(start))
		logger.Warn("enhanced scoring failed, using rule-based path",
			"scorer", a.enhanced.Name(), "section", in.Section.Type, "error", err)
		if errors.Is(err, llm.ErrFatalAPI) {
			// Credentials or quota problems will not fix themselves;
			// stop paying the timeout on every remaining section.
			a.enhancedDown.Store(true)
			logger.Warn("enhanced scoring disabled for this process", "error", err)
		}
	}

	start := time.Now()
	scores, _ := a.rule.Score(ctx, in)
	a.metrics.Observe(metrics.OpRuleScore, time.Since(start))
	return scores
}
