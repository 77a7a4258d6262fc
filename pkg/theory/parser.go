package theory

import (
	"fmt"
	"strings"
)

// qualityTokens maps quality suffix tokens onto the closed ChordQuality
// enum. Lookup tries the token verbatim first and falls back to its
// lowercase form, so "Am7" and "am7" parse alike while "M7" (major seventh)
// stays distinct from "m7" (minor seventh).
var qualityTokens = map[string]ChordQuality{
	"":        ChordMajor,
	"maj":     ChordMajor,
	"major":   ChordMajor,
	"M":       ChordMajor,
	"m":       ChordMinor,
	"min":     ChordMinor,
	"minor":   ChordMinor,
	"-":       ChordMinor,
	"dim":     ChordDiminished,
	"°":       ChordDiminished,
	"o":       ChordDiminished,
	"aug":     ChordAugmented,
	"+":       ChordAugmented,
	"7":       ChordDom7,
	"dom7":    ChordDom7,
	"maj7":    ChordMaj7,
	"M7":      ChordMaj7,
	"Δ":       ChordMaj7,
	"Δ7":      ChordMaj7,
	"m7":      ChordMin7,
	"min7":    ChordMin7,
	"-7":      ChordMin7,
	"dim7":    ChordDim7,
	"°7":      ChordDim7,
	"o7":      ChordDim7,
	"m7b5":    ChordHalfDim7,
	"min7b5":  ChordHalfDim7,
	"ø":       ChordHalfDim7,
	"ø7":      ChordHalfDim7,
	"mmaj7":   ChordMinMaj7,
	"mM7":     ChordMinMaj7,
	"minmaj7": ChordMinMaj7,
	"aug7":    ChordAug7,
	"+7":      ChordAug7,
	"sus2":    ChordSus2,
	"sus4":    ChordSus4,
	"sus":     ChordSus4,
	"add9":    ChordAdd9,
	"maj9":    ChordMaj9,
	"M9":      ChordMaj9,
	"m9":      ChordMin9,
	"min9":    ChordMin9,
	"9":       ChordDom9,
	"maj11":   ChordMaj11,
	"M11":     ChordMaj11,
	"m11":     ChordMin11,
	"min11":   ChordMin11,
	"11":      ChordDom11,
	"maj13":   ChordMaj13,
	"M13":     ChordMaj13,
	"m13":     ChordMin13,
	"min13":   ChordMin13,
	"13":      ChordDom13,
	"5":       ChordPower,
}

// ParseChord parses a chord symbol such as "Am7", "F#maj7/A#" or "Db" into
// a Chord. Roots and basses are canonicalized to sharp spellings. The
// parser is strict: an empty symbol, a bad root or bass letter, or an
// unrecognized quality token all fail with a ParseError. Callers that want
// a lenient display-path default should use ParseChordOrDefault.
func ParseChord(symbol string) (Chord, error) {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return Chord{}, newParseError(ErrCodeEmptyInput, symbol, "empty chord symbol")
	}

	// Split off a trailing slash bass before touching the quality token.
	var bassToken string
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		bassToken = strings.TrimSpace(s[idx+1:])
		s = strings.TrimSpace(s[:idx])
		if s == "" || bassToken == "" {
			return Chord{}, newParseError(ErrCodeInvalidBass, symbol, "malformed slash chord")
		}
	}

	root, rest, err := splitRoot(s)
	if err != nil {
		return Chord{}, err
	}

	quality, ok := lookupQuality(rest)
	if !ok {
		return Chord{}, newParseError(ErrCodeUnknownQuality, symbol, fmt.Sprintf("unrecognized chord quality %q", rest))
	}

	chord := Chord{Root: root, Quality: quality}

	if bassToken != "" {
		bass, err := ParseNote(bassToken)
		if err != nil {
			return Chord{}, newParseError(ErrCodeInvalidBass, symbol, fmt.Sprintf("invalid bass note %q", bassToken))
		}
		chord.Bass = &bass
	}

	return chord, nil
}

// ParseChordOrDefault parses a chord symbol leniently for display and
// preview paths: empty input yields a C major chord, and any parse failure
// falls back to C major as well. Validation paths must use ParseChord.
func ParseChordOrDefault(symbol string) Chord {
	chord, err := ParseChord(symbol)
	if err != nil {
		return Chord{Root: NoteC, Quality: ChordMajor}
	}
	return chord
}

// ParseProgression parses a list of chord symbols, silently dropping
// entries that fail to parse. Batch normalization is a filter: one bad
// symbol never fails the whole progression.
func ParseProgression(symbols []string) []Chord {
	chords := make([]Chord, 0, len(symbols))
	for _, symbol := range symbols {
		chord, err := ParseChord(symbol)
		if err != nil {
			continue
		}
		chords = append(chords, chord)
	}
	return chords
}

// splitRoot extracts the root note token from the front of a chord symbol
// and returns the remaining quality token.
func splitRoot(s string) (Note, string, error) {
	letter := s[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	offset, ok := letterOffsets[letter]
	if !ok {
		return 0, "", newParseError(ErrCodeInvalidRoot, s, fmt.Sprintf("invalid root letter %q", string(s[0])))
	}

	rest := s[1:]
	if len(rest) > 0 {
		switch rest[0] {
		case '#':
			offset++
			rest = rest[1:]
		case 'b':
			// A lone "b" or a "b" starting a known token (e.g. "Cb", "Ab7")
			// is an accidental; "Cadd9"-style tokens never start with 'b'.
			offset--
			rest = rest[1:]
		}
	}

	return Note(((offset % 12) + 12) % 12), rest, nil
}

// lookupQuality resolves a quality token against the token table, trying
// the verbatim token first and then its lowercase form.
func lookupQuality(token string) (ChordQuality, bool) {
	if q, ok := qualityTokens[token]; ok {
		return q, true
	}
	if q, ok := qualityTokens[strings.ToLower(token)]; ok {
		return q, true
	}
	return ChordMajor, false
}
