package theory

// ChordQuality represents the quality/type of a chord. The enum is closed:
// every quality the parser accepts maps onto exactly one member, and every
// member has a canonical symbol suffix used when rendering.
type ChordQuality int

const (
	ChordMajor ChordQuality = iota
	ChordMinor
	ChordDiminished
	ChordAugmented
	ChordDom7
	ChordMaj7
	ChordMin7
	ChordDim7
	ChordHalfDim7
	ChordMinMaj7
	ChordAug7
	ChordSus2
	ChordSus4
	ChordAdd9
	ChordMaj9
	ChordMin9
	ChordDom9
	ChordMaj11
	ChordMin11
	ChordDom11
	ChordMaj13
	ChordMin13
	ChordDom13
	ChordPower
)

// qualitySuffixes holds the canonical symbol suffix per quality, indexed by
// the enum value. Rendering a chord is rootName + suffix (+ "/" + bassName).
var qualitySuffixes = [...]string{
	ChordMajor:      "",
	ChordMinor:      "m",
	ChordDiminished: "dim",
	ChordAugmented:  "aug",
	ChordDom7:       "7",
	ChordMaj7:       "maj7",
	ChordMin7:       "m7",
	ChordDim7:       "dim7",
	ChordHalfDim7:   "m7b5",
	ChordMinMaj7:    "mMaj7",
	ChordAug7:       "aug7",
	ChordSus2:       "sus2",
	ChordSus4:       "sus4",
	ChordAdd9:       "add9",
	ChordMaj9:       "maj9",
	ChordMin9:       "m9",
	ChordDom9:       "9",
	ChordMaj11:      "maj11",
	ChordMin11:      "m11",
	ChordDom11:      "11",
	ChordMaj13:      "maj13",
	ChordMin13:      "m13",
	ChordDom13:      "13",
	ChordPower:      "5",
}

// qualityNames holds human-readable names per quality.
var qualityNames = [...]string{
	ChordMajor:      "major",
	ChordMinor:      "minor",
	ChordDiminished: "diminished",
	ChordAugmented:  "augmented",
	ChordDom7:       "dominant7",
	ChordMaj7:       "major7",
	ChordMin7:       "minor7",
	ChordDim7:       "diminished7",
	ChordHalfDim7:   "half-diminished7",
	ChordMinMaj7:    "minor-major7",
	ChordAug7:       "augmented7",
	ChordSus2:       "sus2",
	ChordSus4:       "sus4",
	ChordAdd9:       "add9",
	ChordMaj9:       "major9",
	ChordMin9:       "minor9",
	ChordDom9:       "dominant9",
	ChordMaj11:      "major11",
	ChordMin11:      "minor11",
	ChordDom11:      "dominant11",
	ChordMaj13:      "major13",
	ChordMin13:      "minor13",
	ChordDom13:      "dominant13",
	ChordPower:      "power",
}

// Suffix returns the canonical symbol suffix for the quality ("" for major,
// "m7" for minor seventh, and so on).
func (q ChordQuality) Suffix() string {
	if int(q) < 0 || int(q) >= len(qualitySuffixes) {
		return ""
	}
	return qualitySuffixes[q]
}

// Name returns the human-readable quality name.
func (q ChordQuality) Name() string {
	if int(q) < 0 || int(q) >= len(qualityNames) {
		return "unknown"
	}
	return qualityNames[q]
}

func (q ChordQuality) String() string {
	return q.Name()
}

// Chord is a parsed chord symbol: a root pitch class, a quality and an
// optional bass note for slash chords. Chords are plain value types; there
// is no shared state between them.
type Chord struct {
	Root    Note         `json:"root"`
	Quality ChordQuality `json:"quality"`
	Bass    *Note        `json:"bass,omitempty"`
}

// String renders the chord back into canonical symbol form with sharp
// spellings, e.g. "Am7" or "D/F#".
func (c Chord) String() string {
	s := c.Root.String() + c.Quality.Suffix()
	if c.Bass != nil {
		s += "/" + c.Bass.String()
	}
	return s
}

// Equal reports whether two chords are identical in root, quality and bass.
func (c Chord) Equal(other Chord) bool {
	if c.Root != other.Root || c.Quality != other.Quality {
		return false
	}
	if (c.Bass == nil) != (other.Bass == nil) {
		return false
	}
	return c.Bass == nil || *c.Bass == *other.Bass
}

// SupportedQualities returns the canonical names of every quality the parser
// understands, in enum order.
func SupportedQualities() []string {
	names := make([]string, len(qualityNames))
	for i, name := range qualityNames {
		names[i] = name
	}
	return names
}
