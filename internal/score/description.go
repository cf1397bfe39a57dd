package score

import (
	"fmt"
	"strings"

	"github.com/raphaelgruber/scorebars/internal/genres"
)

// SongDescription summarizes a song's style and content. Rule-based;
// the enhanced path may produce a richer version.
type SongDescription struct {
	Description    string   `json:"description"`
	SubGenre       string   `json:"sub_genre"`
	Themes         []string `json:"themes"`
	Mood           string   `json:"mood"`
	TargetAudience string   `json:"target_audience"`
	LyricalStyle   string   `json:"lyrical_style"`
}

// subGenreIndicators maps genre keys to sub-genre marker vocabularies.
// Order within each genre decides ties (first listed wins).
var subGenreIndicators = map[string][]struct {
	name    string
	markers []string
}{
	"hip_hop_rap": {
		{"Drill", []string{"drill", "opps", "gang", "shoot", "war"}},
		{"Trap", []string{"trap", "bands", "racks", "cash", "million"}},
		{"Conscious", []string{"justice", "equality", "freedom", "rights", "change"}},
		{"Boom Bap", []string{"knowledge", "wisdom", "philosophy", "metaphor"}},
		{"Alternative", []string{"experimental", "abstract", "artistic", "different"}},
	},
	"pop": {
		{"Electropop", []string{"electronic", "synth", "digital", "neon"}},
		{"Teen Pop", []string{"school", "crush", "young", "first love"}},
		{"Pop Rock", []string{"guitar", "band", "stage", "concert"}},
	},
	"country": {
		{"Outlaw Country", []string{"outlaw", "rebel", "jail", "whiskey"}},
		{"Bluegrass", []string{"banjo", "fiddle", "mandolin"}},
		{"Country Pop", []string{"radio", "chart", "mainstream"}},
	},
	"r_b": {
		{"Neo Soul", []string{"soul", "spiritual", "jazz"}},
		{"Hip-Hop Soul", []string{"street", "urban", "gritty"}},
	},
	"rock": {
		{"Hard Rock", []string{"heavy", "metal", "power"}},
		{"Alternative Rock", []string{"indie", "underground", "experimental"}},
	},
	"electronic_dance": {
		{"House", []string{"groove", "rhythm", "club"}},
		{"Dubstep", []string{"bass", "heavy", "drop"}},
	},
}

var themeIndicators = []struct {
	theme   string
	markers []string
}{
	{"Success", []string{"success", "win", "victory", "champion", "king", "boss"}},
	{"Struggle", []string{"struggle", "pain", "suffering", "hardship"}},
	{"Money", []string{"money", "cash", "rich", "wealth", "dollar", "million"}},
	{"Love", []string{"love", "heart", "romance", "baby"}},
	{"Social Issues", []string{"justice", "equality", "rights", "freedom", "change"}},
	{"Lifestyle", []string{"luxury", "cars", "jewelry", "designer", "fashion"}},
	{"Motivation", []string{"dream", "goal", "ambition", "inspire", "motivation"}},
}

// Describe builds a rule-based song description for the selected genre.
func Describe(rawLyrics, title, artist string, genre genres.Genre) SongDescription {
	lower := strings.ToLower(rawLyrics)
	words := strings.Fields(lower)

	subGenre := detectSubGenre(lower, genre)
	themes := detectThemes(lower)
	mood := detectMood(words)
	style := lyricalStyle(words)

	return SongDescription{
		Description:    buildDescription(title, artist, subGenre, themes, genre.Name, len(words)),
		SubGenre:       subGenre,
		Themes:         themes,
		Mood:           mood,
		TargetAudience: fmt.Sprintf("%s listeners drawn to %s", genre.Name, strings.ToLower(subGenre)),
		LyricalStyle:   style,
	}
}

func detectSubGenre(lower string, genre genres.Genre) string {
	indicators, ok := subGenreIndicators[genre.Key]
	if !ok {
		return "Mainstream " + genre.Name
	}

	best := ""
	bestCount := 0
	for _, sg := range indicators {
		count := 0
		for _, m := range sg.markers {
			if containsWord(lower, m) {
				count++
			}
		}
		if count > bestCount {
			best = sg.name
			bestCount = count
		}
	}
	if best == "" {
		return "Mainstream " + genre.Name
	}
	return best
}

func detectThemes(lower string) []string {
	var themes []string
	for _, ti := range themeIndicators {
		for _, m := range ti.markers {
			if containsWord(lower, m) {
				themes = append(themes, ti.theme)
				break
			}
		}
		if len(themes) == 5 {
			break
		}
	}
	return themes
}

var (
	positiveWords   = []string{"happy", "joy", "success", "win", "love", "good", "great", "shine"}
	negativeWords   = []string{"sad", "pain", "hate", "fear", "death", "struggle", "cry"}
	aggressiveWords = []string{"fight", "war", "attack", "destroy", "kill", "anger"}
)

func detectMood(words []string) string {
	var pos, neg, agg int
	for _, w := range words {
		norm := normalizeToken(w)
		for _, p := range positiveWords {
			if norm == p {
				pos++
			}
		}
		for _, n := range negativeWords {
			if norm == n {
				neg++
			}
		}
		for _, a := range aggressiveWords {
			if norm == a {
				agg++
			}
		}
	}

	switch {
	case agg > pos && agg > neg:
		return "Aggressive and confrontational"
	case pos > neg:
		return "Positive and uplifting"
	case neg > pos:
		return "Dark and introspective"
	default:
		return "Balanced and reflective"
	}
}

func lyricalStyle(words []string) string {
	if len(words) == 0 {
		return "No lyrical content to analyze"
	}

	totalLen := 0
	unique := make(map[string]bool, len(words))
	for _, w := range words {
		totalLen += len(w)
		unique[normalizeToken(w)] = true
	}
	avgLen := float64(totalLen) / float64(len(words))

	var style string
	switch {
	case avgLen > 8:
		style = "Sophisticated vocabulary with complex word choices"
	case avgLen > 6:
		style = "Moderate complexity with accessible language"
	default:
		style = "Direct and straightforward lyrical approach"
	}

	ratio := float64(len(unique)) / float64(len(words))
	switch {
	case ratio < 0.6:
		style += " with significant repetition for emphasis"
	case ratio < 0.8:
		style += " with moderate repetition"
	default:
		style += " with varied vocabulary"
	}
	return style
}

func buildDescription(title, artist, subGenre string, themes []string, genreName string, wordCount int) string {
	if title == "" {
		title = "This track"
	}
	artistPart := ""
	if artist != "" {
		artistPart = " by " + artist
	}
	themePart := "various themes"
	if len(themes) > 0 {
		n := len(themes)
		if n > 3 {
			n = 3
		}
		themePart = strings.Join(themes[:n], ", ")
	}

	complexity := "straightforward"
	if wordCount > 200 {
		complexity = "high"
	} else if wordCount > 100 {
		complexity = "moderate"
	}

	return fmt.Sprintf("%s%s is a %s %s song that explores %s, with %s lyrical complexity across roughly %d words.",
		title, artistPart, strings.ToLower(subGenre), genreName, themePart, complexity, wordCount)
}
