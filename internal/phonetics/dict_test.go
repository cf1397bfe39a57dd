package phonetics

import (
	"strings"
	"testing"
)

func TestLoad_ParsesEntries(t *testing.T) {
	src := `;;; comment line
HEAT  HH IY1 T
FEET  F IY1 T
READ  R IY1 D
READ(1)  R EH1 D
`
	dict, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if dict.Len() != 3 {
		t.Errorf("Len() = %d, want 3", dict.Len())
	}

	prons := dict.Pronounce("read")
	if len(prons) != 2 {
		t.Fatalf("Pronounce(read) returned %d pronunciations, want 2", len(prons))
	}
	if !prons[0].Equal(Pronunciation{"R", "IY1", "D"}) {
		t.Errorf("first pronunciation = %v", prons[0])
	}
	if !prons[1].Equal(Pronunciation{"R", "EH1", "D"}) {
		t.Errorf("alternate pronunciation = %v", prons[1])
	}
}

func TestLoad_MalformedEntry(t *testing.T) {
	_, err := Load(strings.NewReader("LONELYWORD\n"))
	if err == nil {
		t.Fatal("expected error for entry without phones")
	}
}

func TestPronounce_Normalization(t *testing.T) {
	dict := FromEntries(map[string][]Pronunciation{
		"heat":   {{"HH", "IY1", "T"}},
		"you've": {{"Y", "UW1", "V"}},
	})

	tests := []struct {
		word string
		want bool
	}{
		{"heat", true},
		{"HEAT", true},
		{"Heat,", true},
		{"heat!?", true},
		{"you've", true},
		{"You've", true},
		{"zzyzx", false},
		{"", false},
		{"123", false},
	}

	for _, tt := range tests {
		got := dict.Pronounce(tt.word)
		if (got != nil) != tt.want {
			t.Errorf("Pronounce(%q) found = %v, want %v", tt.word, got != nil, tt.want)
		}
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		phone  Phone
		vowel  bool
		stress int
		base   string
	}{
		{"IY1", true, 1, "IY"},
		{"AH0", true, 0, "AH"},
		{"OW2", true, 2, "OW"},
		{"T", false, -1, "T"},
		{"HH", false, -1, "HH"},
	}

	for _, tt := range tests {
		if got := tt.phone.IsVowel(); got != tt.vowel {
			t.Errorf("%s.IsVowel() = %v, want %v", tt.phone, got, tt.vowel)
		}
		if got := tt.phone.Stress(); got != tt.stress {
			t.Errorf("%s.Stress() = %d, want %d", tt.phone, got, tt.stress)
		}
		if got := tt.phone.Base(); got != tt.base {
			t.Errorf("%s.Base() = %q, want %q", tt.phone, got, tt.base)
		}
	}
}

func TestRhymeTail(t *testing.T) {
	tests := []struct {
		name string
		pron Pronunciation
		want Pronunciation
	}{
		{
			name: "single stressed vowel",
			pron: Pronunciation{"HH", "IY1", "T"},
			want: Pronunciation{"IY1", "T"},
		},
		{
			name: "last stressed vowel wins",
			pron: Pronunciation{"S", "T", "UW1", "D", "IY0", "OW2"},
			want: Pronunciation{"OW2"},
		},
		{
			name: "no stressed vowel falls back to last vowel",
			pron: Pronunciation{"DH", "AH0"},
			want: Pronunciation{"AH0"},
		},
		{
			name: "no vowel at all",
			pron: Pronunciation{"SH", "T"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pron.RhymeTail()
			if (got == nil) != (tt.want == nil) || (got != nil && !got.Equal(tt.want)) {
				t.Errorf("RhymeTail() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSyllables(t *testing.T) {
	money := Pronunciation{"M", "AH1", "N", "IY0"}
	if got := money.Syllables(); got != 2 {
		t.Errorf("Syllables() = %d, want 2", got)
	}
}

func TestEmbedded(t *testing.T) {
	dict, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}
	if dict.Len() < 300 {
		t.Errorf("embedded dictionary has %d words, expected at least 300", dict.Len())
	}
	if dict.Pronounce("heat") == nil {
		t.Error("embedded dictionary missing 'heat'")
	}
	if dict.Pronounce("feet") == nil {
		t.Error("embedded dictionary missing 'feet'")
	}
}
