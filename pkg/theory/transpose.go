package theory

// TransposeChord shifts a chord by the given number of semitones. Root and
// bass move independently, preserving their interval relationship. Shifts
// of any sign and magnitude wrap modulo 12.
func TransposeChord(chord Chord, semitones int) Chord {
	out := Chord{
		Root:    chord.Root.Transpose(semitones),
		Quality: chord.Quality,
	}
	if chord.Bass != nil {
		bass := chord.Bass.Transpose(semitones)
		out.Bass = &bass
	}
	return out
}

// TransposeProgression shifts every chord in a progression by the given
// number of semitones.
func TransposeProgression(chords []Chord, semitones int) []Chord {
	out := make([]Chord, len(chords))
	for i, chord := range chords {
		out[i] = TransposeChord(chord, semitones)
	}
	return out
}

// TransposeSymbols parses and transposes a progression of chord symbols.
// Symbols that fail to parse are dropped rather than failing the whole
// progression.
func TransposeSymbols(symbols []string, semitones int) []Chord {
	return TransposeProgression(ParseProgression(symbols), semitones)
}
