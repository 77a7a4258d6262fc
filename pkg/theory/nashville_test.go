package theory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChordToDegree(t *testing.T) {
	tests := []struct {
		symbol string
		key    string
		want   string
	}{
		{"C", "C", "1"},
		{"Dm", "C", "2m"},
		{"Em", "C", "3m"},
		{"F", "C", "4"},
		{"G", "C", "5"},
		{"Am", "C", "6m"},
		{"Bdim", "C", "7dim"},
		{"G7", "C", "57"},
		{"Cmaj7", "C", "1maj7"},
		{"Am7", "C", "6m7"},
		{"A", "G", "2"},
		{"D7", "G", "57"},
		// Chromatic roots pick the idiomatic accidental.
		{"Eb", "C", "b3"},
		{"Ab", "C", "b6"},
		{"Bb", "C", "b7"},
		{"C#", "C", "#1"},
		{"F#", "C", "#4"},
		{"Bb7", "C", "b77"},
	}

	for _, tt := range tests {
		t.Run(tt.symbol+" in "+tt.key, func(t *testing.T) {
			chord, err := ParseChord(tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ChordToDegree(chord, MustParseNote(tt.key)))
		})
	}
}

func TestDegreeToChord(t *testing.T) {
	tests := []struct {
		symbol string
		key    string
		want   string
	}{
		{"1", "C", "C"},
		{"2m", "C", "Dm"},
		{"57", "C", "G7"},
		{"6m7", "C", "Am7"},
		{"b7", "C", "A#"},
		{"#4", "C", "F#"},
		{"b3", "A", "C"},
		{"5", "G", "D"},
	}

	for _, tt := range tests {
		t.Run(tt.symbol+" in "+tt.key, func(t *testing.T) {
			chord, err := DegreeToChord(tt.symbol, MustParseNote(tt.key))
			require.NoError(t, err)
			assert.Equal(t, tt.want, chord.String())
		})
	}
}

// Every diatonic chord must survive a degree round-trip in every key.
func TestNashvilleRoundTrip(t *testing.T) {
	qualitiesByDegree := map[int][]ChordQuality{
		1: {ChordMajor, ChordMaj7},
		2: {ChordMinor, ChordMin7},
		3: {ChordMinor, ChordMin7},
		4: {ChordMajor, ChordMaj7},
		5: {ChordMajor, ChordDom7},
		6: {ChordMinor, ChordMin7},
		7: {ChordDiminished, ChordHalfDim7},
	}

	for key := Note(0); key < 12; key++ {
		for degree := 1; degree <= 7; degree++ {
			for _, quality := range qualitiesByDegree[degree] {
				chord := Chord{
					Root:    key.Transpose(majorScaleIntervals[degree-1]),
					Quality: quality,
				}

				symbol := ChordToDegree(chord, key)
				back, err := DegreeToChord(symbol, key)
				require.NoError(t, err, "key=%s degree=%d", key, degree)
				assert.True(t, chord.Equal(back),
					"round-trip failed in %s: %s -> %s -> %s", key, chord, symbol, back)
			}
		}
	}
}

func TestNashvilleChromaticRoundTrip(t *testing.T) {
	key := NoteC
	for interval, want := range chromaticDegrees {
		chord := Chord{Root: key.Transpose(interval), Quality: ChordMajor}
		symbol := ChordToDegree(chord, key)
		assert.Equal(t, want, symbol)

		back, err := DegreeToChord(symbol, key)
		require.NoError(t, err)
		assert.True(t, chord.Equal(back), "chromatic round-trip for %s", symbol)
	}
}

func TestDegreeToChordFallback(t *testing.T) {
	key := MustParseNote("G")

	for _, symbol := range []string{"", "8", "0", "x", "#", "1zz"} {
		t.Run(fmt.Sprintf("%q", symbol), func(t *testing.T) {
			chord, err := DegreeToChord(symbol, key)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, ErrCodeInvalidDegree, parseErr.Code)

			// Fallback is the bare key root, not a hardcoded C.
			assert.Equal(t, "G", chord.String())
		})
	}
}

func TestProgressionToDegrees(t *testing.T) {
	chords := ParseProgression([]string{"C", "Am", "F", "G7"})
	degrees := ProgressionToDegrees(chords, NoteC)
	assert.Equal(t, []string{"1", "6m", "4", "57"}, degrees)
}

func TestIsDiatonic(t *testing.T) {
	key := NoteC

	assert.True(t, IsDiatonic(MustChord("C"), key))
	assert.True(t, IsDiatonic(MustChord("Dm"), key))
	assert.True(t, IsDiatonic(MustChord("Bdim"), key))
	assert.False(t, IsDiatonic(MustChord("D"), key))  // major on degree 2
	assert.False(t, IsDiatonic(MustChord("Eb"), key)) // chromatic root
	assert.False(t, IsDiatonic(MustChord("Cm"), key)) // minor on degree 1
}

// MustChord parses a chord symbol or panics; test helper.
func MustChord(symbol string) Chord {
	chord, err := ParseChord(symbol)
	if err != nil {
		panic(err)
	}
	return chord
}
