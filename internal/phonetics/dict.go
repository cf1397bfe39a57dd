// Package phonetics provides ARPABET pronunciation lookup backed by a
// CMU-format dictionary. The dictionary is immutable after loading and
// safe for concurrent readers.
package phonetics

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"unicode"
)

//go:embed cmudict.txt
var embeddedDict []byte

// Phone is a single ARPABET symbol, e.g. "HH" or "IY1". Vowel phones
// carry a trailing stress digit (0 = unstressed, 1 = primary, 2 = secondary).
type Phone string

// IsVowel reports whether the phone is a vowel (carries a stress digit).
func (p Phone) IsVowel() bool {
	if len(p) == 0 {
		return false
	}
	last := p[len(p)-1]
	return last >= '0' && last <= '2'
}

// Stress returns the stress digit of a vowel phone, or -1 for consonants.
func (p Phone) Stress() int {
	if !p.IsVowel() {
		return -1
	}
	return int(p[len(p)-1] - '0')
}

// Base returns the phone symbol without its stress digit.
func (p Phone) Base() string {
	if p.IsVowel() {
		return string(p[:len(p)-1])
	}
	return string(p)
}

// Pronunciation is an ordered phone sequence for one word.
type Pronunciation []Phone

// Syllables counts syllables as the number of vowel phones.
func (pr Pronunciation) Syllables() int {
	n := 0
	for _, p := range pr {
		if p.IsVowel() {
			n++
		}
	}
	return n
}

// RhymeTail returns the phones from the last stressed vowel (stress 1 or 2)
// to the end of the word. Words with no stressed vowel fall back to the
// last vowel of any stress. Returns nil if the pronunciation has no vowel.
func (pr Pronunciation) RhymeTail() Pronunciation {
	idx := -1
	for i, p := range pr {
		if s := p.Stress(); s == 1 || s == 2 {
			idx = i
		}
	}
	if idx < 0 {
		for i, p := range pr {
			if p.IsVowel() {
				idx = i
			}
		}
	}
	if idx < 0 {
		return nil
	}
	return pr[idx:]
}

// Equal reports whether two pronunciations are phone-for-phone identical.
func (pr Pronunciation) Equal(other Pronunciation) bool {
	if len(pr) != len(other) {
		return false
	}
	for i := range pr {
		if pr[i] != other[i] {
			return false
		}
	}
	return true
}

// Dictionary maps normalized words to their pronunciations. It is
// read-only after Load and must be injected into consumers rather than
// accessed as a package-level singleton.
type Dictionary struct {
	entries map[string][]Pronunciation
}

// Load parses a CMU-format pronunciation dictionary. Lines starting with
// ";;;" are comments. Alternate pronunciations use the WORD(n) convention.
func Load(r io.Reader) (*Dictionary, error) {
	entries := make(map[string][]Pronunciation)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";;;") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: malformed entry %q", lineNo, line)
		}

		word := fields[0]
		// Strip alternate-pronunciation suffix, e.g. "READ(1)".
		if i := strings.IndexByte(word, '('); i > 0 {
			word = word[:i]
		}
		word = Normalize(word)
		if word == "" {
			continue
		}

		pron := make(Pronunciation, 0, len(fields)-1)
		for _, f := range fields[1:] {
			pron = append(pron, Phone(f))
		}
		entries[word] = append(entries[word], pron)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}

	return &Dictionary{entries: entries}, nil
}

// Embedded loads the bundled dictionary shipped with the binary.
func Embedded() (*Dictionary, error) {
	return Load(bytes.NewReader(embeddedDict))
}

// FromEntries builds a dictionary from an in-memory map. Intended for
// small fixture dictionaries in tests.
func FromEntries(entries map[string][]Pronunciation) *Dictionary {
	copied := make(map[string][]Pronunciation, len(entries))
	for w, prons := range entries {
		copied[Normalize(w)] = prons
	}
	return &Dictionary{entries: copied}
}

// Len returns the number of distinct words in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Pronounce returns all known pronunciations for a word, or nil when the
// word is not in the dictionary. A nil result means "cannot determine",
// not "does not rhyme"; callers exclude such words from rhyme comparison.
func (d *Dictionary) Pronounce(word string) []Pronunciation {
	return d.entries[Normalize(word)]
}

// Normalize lowercases a word and strips everything that is not a letter
// or an apostrophe, matching the dictionary's key format.
func Normalize(word string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if unicode.IsLetter(r) || r == '\'' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
