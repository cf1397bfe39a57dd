package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the available comparison genres",
	Long: `List the genres available for the --genre flag, with their metric
weight tables and chart reference songs.`,
	Args: cobra.NoArgs,
	RunE: runGenres,
}

func runGenres(cmd *cobra.Command, args []string) error {
	t := defaultTheme

	for _, g := range genreCatalog.List() {
		fmt.Printf("%s (%s)\n", t.headerStyle().Render(g.Name), g.Key)
		if g.Description != "" {
			fmt.Printf("  %s\n", g.Description)
		}
		fmt.Printf("  Weights: cleverness %.2f, rhyme density %.2f, wordplay %.2f, radio %.2f\n",
			g.Weights.Cleverness, g.Weights.RhymeDensity, g.Weights.Wordplay, g.Weights.RadioScore)

		if verbose && len(g.ReferenceSongs) > 0 {
			fmt.Println("  Reference songs:")
			for _, song := range g.ReferenceSongs {
				fmt.Printf("    %q by %s (peak #%d)\n", song.Title, song.Artist, song.PeakPosition)
			}
		}
		fmt.Println()
	}
	return nil
}
