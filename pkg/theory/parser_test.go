package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		symbol  string
		root    string
		quality ChordQuality
		bass    string
	}{
		{"C", "C", ChordMajor, ""},
		{"Am", "A", ChordMinor, ""},
		{"Am7", "A", ChordMin7, ""},
		{"G7", "G", ChordDom7, ""},
		{"Cmaj7", "C", ChordMaj7, ""},
		{"CM7", "C", ChordMaj7, ""},
		{"F#maj7/A#", "F#", ChordMaj7, "A#"},
		{"Bdim", "B", ChordDiminished, ""},
		{"B°", "B", ChordDiminished, ""},
		{"Caug", "C", ChordAugmented, ""},
		{"C+", "C", ChordAugmented, ""},
		{"Dsus2", "D", ChordSus2, ""},
		{"Dsus4", "D", ChordSus4, ""},
		{"Cadd9", "C", ChordAdd9, ""},
		{"E9", "E", ChordDom9, ""},
		{"Emaj13", "E", ChordMaj13, ""},
		{"Am7b5", "A", ChordHalfDim7, ""},
		{"Aø7", "A", ChordHalfDim7, ""},
		{"Bbdim7", "A#", ChordDim7, ""},
		{"A-", "A", ChordMinor, ""},
		{"C/E", "C", ChordMajor, "E"},
		{"D/F#", "D", ChordMajor, "F#"},
		{"  G7  ", "G", ChordDom7, ""},
		{"am7", "A", ChordMin7, ""},
		{"E5", "E", ChordPower, ""},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			chord, err := ParseChord(tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.root, chord.Root.String())
			assert.Equal(t, tt.quality, chord.Quality)
			if tt.bass == "" {
				assert.Nil(t, chord.Bass)
			} else {
				require.NotNil(t, chord.Bass)
				assert.Equal(t, tt.bass, chord.Bass.String())
			}
		})
	}
}

func TestParseChordEnharmonicCanonicalization(t *testing.T) {
	tests := []struct {
		symbol string
		root   string
	}{
		{"Db", "C#"},
		{"Eb", "D#"},
		{"Gb", "F#"},
		{"Ab", "G#"},
		{"Bb", "A#"},
		{"Cb", "B"},
		{"Fb", "E"},
	}

	for _, tt := range tests {
		chord, err := ParseChord(tt.symbol)
		require.NoError(t, err, tt.symbol)
		assert.Equal(t, tt.root, chord.Root.String(), tt.symbol)
	}
}

func TestParseChordFailures(t *testing.T) {
	tests := []struct {
		symbol string
		code   string
	}{
		{"", ErrCodeEmptyInput},
		{"   ", ErrCodeEmptyInput},
		{"H", ErrCodeInvalidRoot},
		{"X7", ErrCodeInvalidRoot},
		{"Cxyz", ErrCodeUnknownQuality},
		{"Cmaj7extra", ErrCodeUnknownQuality},
		{"C/H", ErrCodeInvalidBass},
		{"C/", ErrCodeInvalidBass},
		{"/E", ErrCodeInvalidBass},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			_, err := ParseChord(tt.symbol)
			require.Error(t, err)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.code, parseErr.Code)
		})
	}
}

func TestParseChordOrDefault(t *testing.T) {
	// Lenient path: failures and empty input fall back to C major.
	chord := ParseChordOrDefault("")
	assert.Equal(t, "C", chord.String())

	chord = ParseChordOrDefault("not-a-chord")
	assert.Equal(t, "C", chord.String())

	chord = ParseChordOrDefault("Em")
	assert.Equal(t, "Em", chord.String())
}

func TestParseProgressionFiltersInvalid(t *testing.T) {
	chords := ParseProgression([]string{"C", "bogus", "Am", "", "F"})
	require.Len(t, chords, 3)
	assert.Equal(t, "C", chords[0].String())
	assert.Equal(t, "Am", chords[1].String())
	assert.Equal(t, "F", chords[2].String())
}

func TestChordString(t *testing.T) {
	tests := []struct {
		symbol string
		want   string
	}{
		{"Db", "C#"},
		{"Am7", "Am7"},
		{"G7", "G7"},
		{"Eb/Bb", "D#/A#"},
		{"CM7", "Cmaj7"},
	}

	for _, tt := range tests {
		chord, err := ParseChord(tt.symbol)
		require.NoError(t, err)
		assert.Equal(t, tt.want, chord.String())
	}
}
