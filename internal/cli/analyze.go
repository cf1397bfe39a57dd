package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/raphaelgruber/scorebars/internal/analyzer"
	"github.com/spf13/cobra"
)

var (
	analyzeGenre   string
	analyzeTitle   string
	analyzeArtist  string
	analyzeOffline bool
	analyzeJSON    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze lyrics from a file or stdin",
	Long: `Analyze lyrics bar by bar and print per-section scores, rhyme
analysis, highlights and a song-level popularity prediction.

Reads from the given file, or from stdin when the file is "-" or omitted.
Section markers like [Verse 1] or [Chorus] split the lyrics; unlabeled
input is analyzed as a single section.

Examples:
  scorebars analyze song.txt
  scorebars analyze song.txt --genre pop --title "My Song"
  cat song.txt | scorebars analyze --json
  scorebars analyze song.txt --offline`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeGenre, "genre", "g", "", "genre to compare against (see 'scorebars genres')")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "song title for the description")
	analyzeCmd.Flags().StringVar(&analyzeArtist, "artist", "", "artist name for the description")
	analyzeCmd.Flags().BoolVar(&analyzeOffline, "offline", false, "skip LLM scoring even when configured")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full result as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	lyricsText, err := readLyrics(args)
	if err != nil {
		return err
	}

	a, err := getAnalyzer(!analyzeOffline)
	if err != nil {
		return err
	}

	result, err := a.Analyze(context.Background(), analyzer.Request{
		Lyrics:   lyricsText,
		GenreKey: analyzeGenre,
		Title:    analyzeTitle,
		Artist:   analyzeArtist,
	})
	if err != nil {
		return err
	}

	if analyzeJSON {
		return printJSON(result)
	}

	fmt.Print(renderResult(result))

	if verbose {
		printMetrics(a)
	}
	return nil
}

// readLyrics reads from the named file, or stdin for "-" or no argument.
func readLyrics(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read lyrics file: %w", err)
	}
	return string(data), nil
}

func printJSON(result *analyzer.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printMetrics(a *analyzer.Analyzer) {
	snap := a.Metrics().Snapshot()
	fmt.Println("\nOperation metrics:")
	for op, m := range snap.Operations {
		fmt.Printf("  %-12s count=%d failures=%d avg=%.1fms\n", op, m.Count, m.Failures, m.AvgTimeMs)
	}
}
