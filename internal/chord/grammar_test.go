package chord

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Am7", "Am7"},
		{" Am7 ", "Am7"},
		{"Hm", "Bm"},
		{"CØ", "Cm7b5"},
		{"C°7", "Cdim7"},
		{"C°", "Cdim7"},
		{"Co7", "Cdim7"},
		{"C9no7", "C9no7"},
		{"CΔ7", "Cmaj7"},
		{"CΔ", "Cmaj7"},
		{"CM7", "Cmaj7"},
		{"F♯m", "F#m"},
		{"B♭7", "Bb7"},
		{"Ａｍ７", "Am7"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Symbol
	}{
		{
			input: "C",
			want:  Symbol{Tonic: "C", Character: Major},
		},
		{
			input: "Am7",
			want: Symbol{Tonic: "A", Character: Minor,
				Alterations: []Alteration{{OpExtend, "", 7}}},
		},
		{
			input: "Cmaj7",
			want: Symbol{Tonic: "C", Character: Major,
				Alterations: []Alteration{{OpMajor, "maj", 7}}},
		},
		{
			input: "Cmaj",
			want:  Symbol{Tonic: "C", Character: Major},
		},
		{
			input: "Dsus",
			want:  Symbol{Tonic: "D", Character: Suspended},
		},
		{
			input: "Dsus4/B",
			want: Symbol{Tonic: "D", Character: Major,
				Alterations: []Alteration{{OpSuspend, "sus", 4}},
				Bass:        []string{"B"}},
		},
		{
			input: "F#dim7/A",
			want: Symbol{Tonic: "F#", Character: Major, Modifier: Diminished,
				Alterations: []Alteration{{OpExtend, "", 7}},
				Bass:        []string{"A"}},
		},
		{
			input: "Bbm7b5",
			want: Symbol{Tonic: "Bb", Character: Minor,
				Alterations: []Alteration{{OpExtend, "", 7}, {OpLower, "b", 5}}},
		},
		{
			input: "C7#9",
			want: Symbol{Tonic: "C", Character: Major,
				Alterations: []Alteration{{OpExtend, "", 7}, {OpRaise, "#", 9}}},
		},
		{
			input: "Cadd9(no3)",
			want: Symbol{Tonic: "C", Character: Major,
				Alterations: []Alteration{{OpAdd, "add", 9}, {OpOmit, "no", 3}}},
		},
		{
			input: "C/9omit5",
			want: Symbol{Tonic: "C", Character: Major,
				Alterations: []Alteration{{OpAdd, "/", 9}, {OpOmit, "omit", 5}}},
		},
		{
			input: "Caug",
			want:  Symbol{Tonic: "C", Character: Major, Modifier: Augmented},
		},
		{
			input: "C+",
			want:  Symbol{Tonic: "C", Character: Major, AppendedPlus: true},
		},
		{
			input: "G7-9",
			want: Symbol{Tonic: "G", Character: Major,
				Alterations: []Alteration{{OpExtend, "", 7}, {OpLower, "-", 9}}},
		},
		{
			input: "C/E/G",
			want:  Symbol{Tonic: "C", Character: Major, Bass: []string{"E", "G"}},
		},
		{
			input: "Am/Gb",
			want:  Symbol{Tonic: "A", Character: Minor, Bass: []string{"Gb"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			got.Input, got.Normalized = "", ""
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseKeepsInput(t *testing.T) {
	sym, err := Parse("CM7")
	require.NoError(t, err)
	assert.Equal(t, "CM7", sym.Input)
	assert.Equal(t, "Cmaj7", sym.Normalized)
}

func TestParseUnparseable(t *testing.T) {
	for _, in := range []string{"", "   ", "+", "am7", "X7", "7", "Δ", "#C", "/E"} {
		_, err := Parse(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrUnparseableSymbol), in)
		var se *SymbolError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, in, se.Symbol)
	}
}

func TestParseHugeDegree(t *testing.T) {
	sym, err := Parse("C99999999999999999999")
	require.NoError(t, err)
	require.Len(t, sym.Alterations, 1)
	assert.Greater(t, sym.Alterations[0].Degree, MaxDegree)
}
