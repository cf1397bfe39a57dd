package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/scorebars/internal/analyzer"
	"github.com/raphaelgruber/scorebars/internal/score"
)

const scoreBarWidth = 20

// Theme holds the color scheme for terminal output.
type Theme struct {
	Header  lipgloss.Color
	Strong  lipgloss.Color
	Weak    lipgloss.Color
	Neutral lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Header:  lipgloss.Color("#5FAFD7"), // light blue
	Strong:  lipgloss.Color("#00D787"), // green
	Weak:    lipgloss.Color("#FF005F"), // red
	Neutral: lipgloss.Color("#FFD75F"), // yellow
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Header).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) scoreStyle(v int) lipgloss.Style {
	switch {
	case v >= 70:
		return lipgloss.NewStyle().Foreground(t.Strong)
	case v >= 40:
		return lipgloss.NewStyle().Foreground(t.Neutral)
	default:
		return lipgloss.NewStyle().Foreground(t.Weak)
	}
}

// renderResult builds the human-readable report for an analysis result.
func renderResult(result *analyzer.Result) string {
	t := defaultTheme
	var b strings.Builder

	for _, sr := range result.Sections {
		fmt.Fprintf(&b, "%s\n", t.headerStyle().Render(fmt.Sprintf("[%s] (%d bars)", sr.Section.Type, sr.Section.BarCount)))
		writeScores(&b, t, sr.Scores)

		if sr.Rhyme.Scheme != "" {
			fmt.Fprintf(&b, "  Rhyme scheme: %s (density %.2f", sr.Rhyme.Scheme, sr.Rhyme.Density)
			if n := sr.Rhyme.MultiSyllabicCount(); n > 0 {
				fmt.Fprintf(&b, ", %d multi-syllabic", n)
			}
			if n := len(sr.Rhyme.InternalRhymes); n > 0 {
				fmt.Fprintf(&b, ", %d internal", n)
			}
			b.WriteString(")\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(t.headerStyle().Render("Overall") + "\n")
	writeScores(&b, t, result.Overall)
	b.WriteString("\n")

	genreLabel := "compared to"
	if !result.Genre.Selected {
		genreLabel = "predicted genre"
	}
	fmt.Fprintf(&b, "Genre (%s): %s, weighted score %.1f\n", genreLabel, result.Genre.Name, result.Genre.Weighted)
	fmt.Fprintf(&b, "Popularity: %s (%.1f) %s\n", result.Popularity.Level, result.Popularity.Score, result.Popularity.Description)
	if result.Popularity.ViralPotential {
		b.WriteString("  Viral potential detected\n")
	}
	if result.Popularity.CriticalAppeal {
		b.WriteString("  Critical appeal detected\n")
	}

	fmt.Fprintf(&b, "Structure: %s, %d bars across %d sections\n",
		strings.Join(result.Structure.Pattern, " - "), result.Structure.TotalBars, result.Structure.TotalSections)
	fmt.Fprintf(&b, "Style: %s\n", result.Description.LyricalStyle)
	fmt.Fprintf(&b, "Mood: %s\n", result.Description.Mood)
	if len(result.Description.Themes) > 0 {
		fmt.Fprintf(&b, "Themes: %s\n", strings.Join(result.Description.Themes, ", "))
	}

	if highlights := collectHighlights(result); len(highlights) > 0 {
		b.WriteString("\n" + t.headerStyle().Render("Highlights") + "\n")
		for _, h := range highlights {
			fmt.Fprintf(&b, "  %s\n", h)
		}
	}

	if len(result.Suggestions) > 0 {
		b.WriteString("\n" + t.headerStyle().Render("Suggestions") + "\n")
		for _, s := range result.Suggestions {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}

	b.WriteString("\n" + t.hintStyle().Render(fmt.Sprintf("Analyzed in %s", result.Elapsed.Round(time.Millisecond))) + "\n")
	return b.String()
}

func writeScores(b *strings.Builder, t Theme, s score.ScoreSet) {
	writeScore(b, t, "Cleverness", s.Cleverness)
	writeScore(b, t, "Rhyme density", s.RhymeDensity)
	writeScore(b, t, "Wordplay", s.Wordplay)
	writeScore(b, t, "Radio score", s.RadioScore)
}

func writeScore(b *strings.Builder, t Theme, label string, v int) {
	filled := v * scoreBarWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", scoreBarWidth-filled)
	fmt.Fprintf(b, "  %-14s %s %s\n", label, t.scoreStyle(v).Render(bar), t.scoreStyle(v).Render(fmt.Sprintf("%3d", v)))
}

// collectHighlights merges per-section highlights, keeping the first few.
func collectHighlights(result *analyzer.Result) []string {
	var out []string
	for _, sr := range result.Sections {
		for _, h := range sr.Highlights {
			out = append(out, h)
			if len(out) == 5 {
				return out
			}
		}
	}
	return out
}
