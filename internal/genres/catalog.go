// Package genres provides the read-only genre catalog: per-genre metric
// weight tables plus chart reference data used for score comparison.
package genres

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

//go:embed genres.yaml
var embeddedCatalog []byte

// DefaultKey is the genre assumed when the caller selects none.
const DefaultKey = "hip_hop_rap"

// Weights is a per-genre linear weighting over the four score metrics.
// Weights are non-negative and sum to 1.
type Weights struct {
	Cleverness   float64 `yaml:"cleverness"`
	RhymeDensity float64 `yaml:"rhyme_density"`
	Wordplay     float64 `yaml:"wordplay"`
	RadioScore   float64 `yaml:"radio_score"`
}

// Apply computes the weighted aggregate of four raw metric scores.
func (w Weights) Apply(cleverness, rhymeDensity, wordplay, radioScore int) float64 {
	return w.Cleverness*float64(cleverness) +
		w.RhymeDensity*float64(rhymeDensity) +
		w.Wordplay*float64(wordplay) +
		w.RadioScore*float64(radioScore)
}

// ReferenceScores holds the four metric scores of a chart reference song.
type ReferenceScores struct {
	Cleverness   int `yaml:"cleverness"`
	RhymeDensity int `yaml:"rhyme_density"`
	Wordplay     int `yaml:"wordplay"`
	RadioScore   int `yaml:"radio_score"`
}

// ReferenceSong is a chart hit used as a comparison baseline.
type ReferenceSong struct {
	Title        string          `yaml:"title"`
	Artist       string          `yaml:"artist"`
	PeakPosition int             `yaml:"peak_position"`
	Scores       ReferenceScores `yaml:"scores"`
}

// Genre is one catalog entry. ReferenceSongs may be empty; consumers
// must degrade gracefully to the weight table alone.
type Genre struct {
	Key            string          `yaml:"key"`
	Name           string          `yaml:"name"`
	Description    string          `yaml:"description"`
	Weights        Weights         `yaml:"weights"`
	ReferenceSongs []ReferenceSong `yaml:"reference_songs"`
}

// Catalog is the closed set of known genres in declaration order.
type Catalog struct {
	genres []Genre
	byKey  map[string]int
}

type catalogFile struct {
	Genres []Genre `yaml:"genres"`
}

// Load parses a YAML genre catalog and validates its weight tables.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Genres) == 0 {
		return nil, fmt.Errorf("catalog contains no genres")
	}

	byKey := make(map[string]int, len(file.Genres))
	for i, g := range file.Genres {
		if g.Key == "" {
			return nil, fmt.Errorf("genre %d: missing key", i)
		}
		if _, dup := byKey[g.Key]; dup {
			return nil, fmt.Errorf("duplicate genre key %q", g.Key)
		}
		if err := validateWeights(g.Weights); err != nil {
			return nil, fmt.Errorf("genre %q: %w", g.Key, err)
		}
		byKey[g.Key] = i
	}

	return &Catalog{genres: file.Genres, byKey: byKey}, nil
}

// Embedded loads the catalog bundled with the binary.
func Embedded() (*Catalog, error) {
	return Load(bytes.NewReader(embeddedCatalog))
}

func validateWeights(w Weights) error {
	vals := []float64{w.Cleverness, w.RhymeDensity, w.Wordplay, w.RadioScore}
	sum := 0.0
	for _, v := range vals {
		if v < 0 {
			return fmt.Errorf("negative weight %v", v)
		}
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("weights sum to %v, want 1.0", sum)
	}
	return nil
}

// Get returns the genre for a key.
func (c *Catalog) Get(key string) (Genre, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Genre{}, false
	}
	return c.genres[i], true
}

// Default returns the default genre, falling back to the catalog's first
// entry if the default key is absent.
func (c *Catalog) Default() Genre {
	if g, ok := c.Get(DefaultKey); ok {
		return g
	}
	return c.genres[0]
}

// List returns all genres in declaration order. The order is load-bearing:
// genre prediction breaks ties by taking the earlier entry.
func (c *Catalog) List() []Genre {
	out := make([]Genre, len(c.genres))
	copy(out, c.genres)
	return out
}
