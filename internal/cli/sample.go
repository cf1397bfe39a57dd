package cli

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/raphaelgruber/scorebars/internal/analyzer"
	"github.com/spf13/cobra"
)

//go:embed sample_lyrics.txt
var sampleLyrics string

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Analyze the bundled sample lyrics",
	Long: `Run a full analysis on the bundled sample lyrics. Useful for a
quick look at the output format without providing your own song.`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

func runSample(cmd *cobra.Command, args []string) error {
	a, err := getAnalyzer(false)
	if err != nil {
		return err
	}

	result, err := a.Analyze(context.Background(), analyzer.Request{
		Lyrics:   sampleLyrics,
		GenreKey: "hip_hop_rap",
		Title:    "Studio Heat",
	})
	if err != nil {
		return err
	}

	fmt.Print(renderResult(result))
	return nil
}
