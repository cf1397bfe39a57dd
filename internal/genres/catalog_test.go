package genres

import (
	"math"
	"strings"
	"testing"
)

func TestEmbedded(t *testing.T) {
	cat, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}

	list := cat.List()
	if len(list) < 4 {
		t.Fatalf("catalog has %d genres, expected at least 4", len(list))
	}

	// Declaration order is the tie-break order for genre prediction.
	if list[0].Key != "hip_hop_rap" {
		t.Errorf("first genre = %q, want hip_hop_rap", list[0].Key)
	}

	for _, g := range list {
		w := g.Weights
		sum := w.Cleverness + w.RhymeDensity + w.Wordplay + w.RadioScore
		if math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("genre %q weights sum to %v", g.Key, sum)
		}
		if g.Name == "" || g.Description == "" {
			t.Errorf("genre %q missing name or description", g.Key)
		}
	}
}

func TestGet(t *testing.T) {
	cat, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}

	if _, ok := cat.Get("hip_hop_rap"); !ok {
		t.Error("Get(hip_hop_rap) not found")
	}
	if _, ok := cat.Get("polka"); ok {
		t.Error("Get(polka) unexpectedly found")
	}
	if got := cat.Default().Key; got != DefaultKey {
		t.Errorf("Default().Key = %q, want %q", got, DefaultKey)
	}
}

func TestWeightsApply(t *testing.T) {
	w := Weights{Cleverness: 0.25, RhymeDensity: 0.30, Wordplay: 0.25, RadioScore: 0.20}
	got := w.Apply(80, 100, 60, 40)
	want := 0.25*80 + 0.30*100 + 0.25*60 + 0.20*40
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "weights do not sum to one",
			yaml: `genres:
  - key: broken
    name: Broken
    weights: { cleverness: 0.5, rhyme_density: 0.5, wordplay: 0.5, radio_score: 0.5 }`,
		},
		{
			name: "negative weight",
			yaml: `genres:
  - key: broken
    name: Broken
    weights: { cleverness: -0.5, rhyme_density: 0.5, wordplay: 0.5, radio_score: 0.5 }`,
		},
		{
			name: "missing key",
			yaml: `genres:
  - name: Broken
    weights: { cleverness: 0.25, rhyme_density: 0.25, wordplay: 0.25, radio_score: 0.25 }`,
		},
		{
			name: "duplicate key",
			yaml: `genres:
  - key: dup
    weights: { cleverness: 0.25, rhyme_density: 0.25, wordplay: 0.25, radio_score: 0.25 }
  - key: dup
    weights: { cleverness: 0.25, rhyme_density: 0.25, wordplay: 0.25, radio_score: 0.25 }`,
		},
		{
			name: "empty catalog",
			yaml: `genres: []`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.yaml)); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}
