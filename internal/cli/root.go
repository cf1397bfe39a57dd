// Package cli provides the command-line interface for scorebars.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/raphaelgruber/scorebars/internal/analyzer"
	"github.com/raphaelgruber/scorebars/internal/config"
	"github.com/raphaelgruber/scorebars/internal/genres"
	"github.com/raphaelgruber/scorebars/internal/llm"
	"github.com/raphaelgruber/scorebars/internal/phonetics"
	"github.com/raphaelgruber/scorebars/internal/score"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Loaded in PersistentPreRunE
	cfg          config.Config
	logger       *slog.Logger
	logCleanup   func() error
	dict         *phonetics.Dictionary
	genreCatalog *genres.Catalog
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scorebars",
	Short: "Lyric structure and rhyme analysis",
	Long: `Scorebars analyzes song lyrics bar by bar: it splits them into
sections, detects end and internal rhymes phonetically, and scores each
section on cleverness, rhyme density, wordplay and radio appeal against
genre chart baselines.

Scoring is rule-based by default. Configure an LLM provider via
SCOREBARS_LLM_PROVIDER (ollama, openai, anthropic) for enhanced scoring
with automatic fallback to the rule-based path.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, logCleanup = config.SetupLogger(cfg.LogFile, level)
		slog.SetDefault(logger)

		var err error
		dict, err = loadDictionary(cfg)
		if err != nil {
			return fmt.Errorf("load pronunciation dictionary: %w", err)
		}
		genreCatalog, err = loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("load genre catalog: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

func loadDictionary(cfg config.Config) (*phonetics.Dictionary, error) {
	if cfg.DictionaryPath == "" {
		return phonetics.Embedded()
	}
	f, err := os.Open(cfg.DictionaryPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return phonetics.Load(f)
}

func loadCatalog(cfg config.Config) (*genres.Catalog, error) {
	if cfg.GenreCatalog == "" {
		return genres.Embedded()
	}
	f, err := os.Open(cfg.GenreCatalog)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return genres.Load(f)
}

// getAnalyzer builds the analyzer, initializing the LLM only when the
// enhanced path is both configured and wanted.
func getAnalyzer(wantEnhanced bool) (*analyzer.Analyzer, error) {
	var enhanced score.Scorer
	if wantEnhanced && cfg.EnhancedEnabled() {
		model, err := llm.NewModel(cfg)
		if err != nil {
			return nil, fmt.Errorf("init LLM model: %w", err)
		}
		enhanced = score.NewEnhancedScorer(model)
		logger.Debug("enhanced scoring enabled", "provider", cfg.LLMProvider, "model", model.Model())
	}

	return analyzer.New(analyzer.Options{
		Dictionary:      dict,
		Catalog:         genreCatalog,
		Enhanced:        enhanced,
		EnhancedTimeout: cfg.LLMTimeout,
		Logger:          logger,
	})
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(sampleCmd)
}
