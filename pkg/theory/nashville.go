package theory

import (
	"fmt"
	"strings"
)

// The Nashville translator converts chords to key-relative degree symbols
// and back. A degree symbol is an optional accidental, a scale degree 1-7,
// and the chord's quality suffix appended verbatim: in the key of C, "G7"
// becomes "57" and "Dm" becomes "2m".

// majorScaleIntervals lists the chromatic intervals of the major scale
// degrees 1..7 relative to the key root.
var majorScaleIntervals = [7]int{0, 2, 4, 5, 7, 9, 11}

// intervalToDegree maps each diatonic chromatic interval onto its 1-based
// scale degree.
var intervalToDegree = map[int]int{0: 1, 2: 2, 4: 3, 5: 4, 7: 5, 9: 6, 11: 7}

// chromaticDegrees maps the five non-diatonic intervals onto their
// idiomatic accidental spelling. Where both a sharp and a flat reading are
// valid the commonly used one wins: flats for b3/b6/b7, sharps for #1/#4.
// The mapping is fixed so degree round-trips stay reproducible.
var chromaticDegrees = map[int]string{
	1:  "#1",
	3:  "b3",
	6:  "#4",
	8:  "b6",
	10: "b7",
}

// ChordToDegree translates a chord into its degree symbol relative to the
// given major key. The quality suffix is carried verbatim after the degree,
// so diatonic minors render as "2m" rather than a bare "2" plus a
// redundant marker.
func ChordToDegree(chord Chord, key Note) string {
	interval := key.Interval(chord.Root)

	var degree string
	if d, ok := intervalToDegree[interval]; ok {
		degree = fmt.Sprintf("%d", d)
	} else {
		degree = chromaticDegrees[interval]
	}

	return degree + chord.Quality.Suffix()
}

// ProgressionToDegrees translates a whole progression into degree symbols
// relative to the given key.
func ProgressionToDegrees(chords []Chord, key Note) []string {
	degrees := make([]string, len(chords))
	for i, chord := range chords {
		degrees[i] = ChordToDegree(chord, key)
	}
	return degrees
}

// DegreeToChord inverts ChordToDegree: it parses a degree symbol relative
// to the given key back into a chord. Invalid symbols (empty input, a
// degree outside 1-7, an unknown quality suffix) fall back to the bare key
// root and report an ErrCodeInvalidDegree parse error; display paths may
// ignore the error and use the fallback chord.
func DegreeToChord(symbol string, key Note) (Chord, error) {
	fallback := Chord{Root: key, Quality: ChordMajor}

	s := strings.TrimSpace(symbol)
	if s == "" {
		return fallback, newParseError(ErrCodeInvalidDegree, symbol, "empty degree symbol")
	}

	shift := 0
	switch s[0] {
	case '#':
		shift = 1
		s = s[1:]
	case 'b':
		shift = -1
		s = s[1:]
	}

	if s == "" || s[0] < '1' || s[0] > '7' {
		return fallback, newParseError(ErrCodeInvalidDegree, symbol, "degree must be 1-7")
	}
	degree := int(s[0] - '0')

	quality, ok := lookupQuality(s[1:])
	if !ok {
		return fallback, newParseError(ErrCodeInvalidDegree, symbol, fmt.Sprintf("unrecognized quality suffix %q", s[1:]))
	}

	interval := majorScaleIntervals[degree-1] + shift
	return Chord{Root: key.Transpose(interval), Quality: quality}, nil
}

// DiatonicQuality returns the quality a chord built on the given scale
// degree (1-7) carries in a major key: I/IV/V major, ii/iii/vi minor and
// vii diminished.
func DiatonicQuality(degree int) ChordQuality {
	switch degree {
	case 2, 3, 6:
		return ChordMinor
	case 7:
		return ChordDiminished
	default:
		return ChordMajor
	}
}

// IsDiatonic reports whether a chord is diatonic to the given major key:
// its root sits on the major scale and its quality matches the expected
// quality for that degree.
func IsDiatonic(chord Chord, key Note) bool {
	degree, ok := intervalToDegree[key.Interval(chord.Root)]
	if !ok {
		return false
	}
	return chord.Quality == DiatonicQuality(degree)
}
