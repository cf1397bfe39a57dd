// Package rhyme detects end rhymes, internal rhymes, rhyme schemes and
// rhyme density within a lyric section using phonetic comparison.
package rhyme

import (
	"encoding/json"
	"strings"

	"github.com/raphaelgruber/scorebars/internal/lyrics"
	"github.com/raphaelgruber/scorebars/internal/phonetics"
)

// Class ranks how strongly two words rhyme. Higher values are stronger
// matches for scoring purposes.
type Class int

const (
	None Class = iota
	Slant
	Perfect
	MultiSyllabic
)

func (c Class) String() string {
	switch c {
	case Slant:
		return "slant"
	case Perfect:
		return "perfect"
	case MultiSyllabic:
		return "multi_syllabic"
	default:
		return "none"
	}
}

// MarshalJSON emits the class name rather than its numeric rank.
func (c Class) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Pair records a rhyme between two words. For end rhymes LineA < LineB;
// for internal rhymes both indexes name the same line.
type Pair struct {
	LineA int    `json:"line_a"`
	LineB int    `json:"line_b"`
	WordA string `json:"word_a"`
	WordB string `json:"word_b"`
	Class Class  `json:"class"`
}

// Analysis is the rhyme profile of one section.
type Analysis struct {
	EndRhymes      []Pair   `json:"end_rhymes"`
	InternalRhymes []Pair   `json:"internal_rhymes"`
	Scheme         string   `json:"rhyme_scheme"`
	Density        float64  `json:"rhyme_density"`
	Words          []string `json:"rhymes"`
}

// MultiSyllabicCount returns the number of multi-syllabic end-rhyme pairs.
func (a Analysis) MultiSyllabicCount() int {
	n := 0
	for _, p := range a.EndRhymes {
		if p.Class == MultiSyllabic {
			n++
		}
	}
	return n
}

// Engine performs rhyme analysis against an injected pronunciation
// dictionary. Safe for concurrent use; the dictionary is read-only.
type Engine struct {
	dict *phonetics.Dictionary
}

// NewEngine creates an engine backed by the given dictionary.
func NewEngine(dict *phonetics.Dictionary) *Engine {
	return &Engine{dict: dict}
}

// Analyze computes the rhyme profile of a section. Sections with fewer
// than two lines yield an empty Analysis, not an error.
func (e *Engine) Analyze(section lyrics.Section) Analysis {
	return e.AnalyzeLines(section.Lines)
}

// AnalyzeLines is Analyze over pre-cleaned lines.
func (e *Engine) AnalyzeLines(lines []string) Analysis {
	if len(lines) < 2 {
		return Analysis{}
	}

	finals := make([]string, len(lines))
	for i, line := range lines {
		finals[i] = lastWord(line)
	}

	var a Analysis

	// End rhymes: every line pair, not just adjacent lines.
	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			if finals[i] == "" || finals[j] == "" {
				continue
			}
			if class := e.Classify(finals[i], finals[j]); class != None {
				a.EndRhymes = append(a.EndRhymes, Pair{
					LineA: i, LineB: j,
					WordA: finals[i], WordB: finals[j],
					Class: class,
				})
			}
		}
	}

	a.InternalRhymes = e.internalRhymes(lines)
	a.Scheme = scheme(len(lines), a.EndRhymes)
	a.Density = density(len(lines), a.EndRhymes)
	a.Words = highlightWords(a.EndRhymes, a.InternalRhymes)
	return a
}

// Classify determines the strongest rhyme class between two words.
// Identical words do not rhyme, and words missing from the dictionary
// yield None: "cannot determine" is never treated as a rhyme or counted
// against one.
func (e *Engine) Classify(wordA, wordB string) Class {
	normA := phonetics.Normalize(wordA)
	normB := phonetics.Normalize(wordB)
	if normA == "" || normB == "" || normA == normB {
		return None
	}

	pronsA := e.dict.Pronounce(wordA)
	pronsB := e.dict.Pronounce(wordB)
	if len(pronsA) == 0 || len(pronsB) == 0 {
		return None
	}

	// Homographs: the pair rhymes if any pronunciation combination does.
	best := None
	for _, pa := range pronsA {
		for _, pb := range pronsB {
			if c := classifyProns(pa, pb); c > best {
				best = c
			}
		}
	}
	return best
}

func classifyProns(a, b phonetics.Pronunciation) Class {
	tailA := a.RhymeTail()
	tailB := b.RhymeTail()
	if len(tailA) == 0 || len(tailB) == 0 {
		return None
	}

	if tailA.Equal(tailB) {
		// An identical stretch spanning two or more syllables from a
		// stressed vowel onward outranks a single-syllable perfect rhyme.
		suffix := commonSuffix(a, b)
		if suffix.Syllables() >= 2 && hasStressedVowel(suffix) {
			return MultiSyllabic
		}
		return Perfect
	}

	if slantMatch(tailA, tailB) {
		return Slant
	}
	return None
}

// commonSuffix returns the longest shared phone suffix of two
// pronunciations.
func commonSuffix(a, b phonetics.Pronunciation) phonetics.Pronunciation {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return a[len(a)-n:]
}

func hasStressedVowel(p phonetics.Pronunciation) bool {
	for _, ph := range p {
		if s := ph.Stress(); s == 1 || s == 2 {
			return true
		}
	}
	return false
}

// slantMatch reports a near rhyme: matching vowel sounds with differing
// consonant codas, or matching codas over differing vowels. An empty
// coda never counts as a match on its own.
func slantMatch(tailA, tailB phonetics.Pronunciation) bool {
	if equalBases(vowels(tailA), vowels(tailB)) {
		return true
	}
	cA, cB := consonants(tailA), consonants(tailB)
	return len(cA) > 0 && equalBases(cA, cB)
}

func vowels(p phonetics.Pronunciation) []string {
	var out []string
	for _, ph := range p {
		if ph.IsVowel() {
			out = append(out, ph.Base())
		}
	}
	return out
}

func consonants(p phonetics.Pronunciation) []string {
	var out []string
	for _, ph := range p {
		if !ph.IsVowel() {
			out = append(out, ph.Base())
		}
	}
	return out
}

func equalBases(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// internalRhymes finds rhymes between words within a single line,
// excluding the line-final word already covered by end-rhyme detection.
// Pairs are deduplicated by unordered word pair per line.
func (e *Engine) internalRhymes(lines []string) []Pair {
	var pairs []Pair
	for idx, line := range lines {
		words := tokens(line)
		if len(words) < 3 {
			continue
		}
		inner := words[:len(words)-1]
		seen := make(map[string]bool)
		for i := 0; i < len(inner); i++ {
			for j := i + 1; j < len(inner); j++ {
				class := e.Classify(inner[i], inner[j])
				if class == None {
					continue
				}
				key := pairKey(inner[i], inner[j])
				if seen[key] {
					continue
				}
				seen[key] = true
				pairs = append(pairs, Pair{
					LineA: idx, LineB: idx,
					WordA: inner[i], WordB: inner[j],
					Class: class,
				})
			}
		}
	}
	return pairs
}

func pairKey(a, b string) string {
	na, nb := phonetics.Normalize(a), phonetics.Normalize(b)
	if na > nb {
		na, nb = nb, na
	}
	return na + "|" + nb
}

// scheme assigns rhyme-scheme letters: each line takes the letter of the
// earliest prior line it end-rhymes with, otherwise the next unused one.
func scheme(lineCount int, endRhymes []Pair) string {
	rhymes := make(map[[2]int]bool, len(endRhymes))
	for _, p := range endRhymes {
		rhymes[[2]int{p.LineA, p.LineB}] = true
	}

	letters := make([]rune, lineCount)
	next := 'A'
	for j := 0; j < lineCount; j++ {
		assigned := false
		for i := 0; i < j; i++ {
			if rhymes[[2]int{i, j}] {
				letters[j] = letters[i]
				assigned = true
				break
			}
		}
		if !assigned {
			letters[j] = next
			next++
		}
	}
	return string(letters)
}

// density is the fraction of lines participating in at least one
// end-rhyme pair, clamped to [0,1].
func density(lineCount int, endRhymes []Pair) float64 {
	if lineCount == 0 {
		return 0
	}
	participating := make(map[int]bool)
	for _, p := range endRhymes {
		participating[p.LineA] = true
		participating[p.LineB] = true
	}
	d := float64(len(participating)) / float64(lineCount)
	if d > 1 {
		d = 1
	}
	return d
}

// highlightWords collects the distinct rhyming words in first-appearance
// order for downstream highlighting.
func highlightWords(endRhymes, internalRhymes []Pair) []string {
	var words []string
	seen := make(map[string]bool)
	add := func(w string) {
		norm := phonetics.Normalize(w)
		if norm == "" || seen[norm] {
			return
		}
		seen[norm] = true
		words = append(words, w)
	}
	for _, p := range endRhymes {
		add(p.WordA)
		add(p.WordB)
	}
	for _, p := range internalRhymes {
		add(p.WordA)
		add(p.WordB)
	}
	return words
}

// tokens splits a line into word tokens, dropping tokens that normalize
// to nothing (bare punctuation).
func tokens(line string) []string {
	var out []string
	for _, f := range strings.Fields(line) {
		if phonetics.Normalize(f) != "" {
			out = append(out, f)
		}
	}
	return out
}

// lastWord returns the final word token of a line, or "".
func lastWord(line string) string {
	ts := tokens(line)
	if len(ts) == 0 {
		return ""
	}
	return ts[len(ts)-1]
}
