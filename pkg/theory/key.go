package theory

import "sort"

// KeyCandidate represents a potential key with its harmonic score.
type KeyCandidate struct {
	Key   Note    `json:"key"`
	Score float64 `json:"score"`
}

// DetectKey infers the most probable major key of a progression from chord
// root frequency weighted by harmonic context: each candidate root scores
// twice its own frequency plus the frequencies of the notes a perfect
// fourth and a perfect fifth above it (its IV and V). Ties break toward the
// candidate whose root appears first in the progression; an empty or
// fully-invalid progression defaults to C. The result feeds display rather
// than a correctness-critical path, so the function never fails.
func DetectKey(chords []Chord) Note {
	candidates := DetectKeyCandidates(chords)
	if len(candidates) == 0 {
		return NoteC
	}
	return candidates[0].Key
}

// DetectKeyCandidates returns every root present in the progression with
// its harmonic score, ordered best-first. Ordering is deterministic: score
// descending, then first appearance in the progression.
func DetectKeyCandidates(chords []Chord) []KeyCandidate {
	if len(chords) == 0 {
		return nil
	}

	counts := make(map[Note]int, 12)
	var order []Note
	for _, chord := range chords {
		if counts[chord.Root] == 0 {
			order = append(order, chord.Root)
		}
		counts[chord.Root]++
	}

	candidates := make([]KeyCandidate, 0, len(order))
	for _, root := range order {
		score := 2.0 * float64(counts[root])
		score += float64(counts[root.Transpose(5)]) // IV
		score += float64(counts[root.Transpose(7)]) // V
		candidates = append(candidates, KeyCandidate{Key: root, Score: score})
	}

	// Stable sort keeps first-appearance order between equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}

// DetectKeyFromSymbols parses the symbols (dropping invalid entries) and
// detects the key of what remains.
func DetectKeyFromSymbols(symbols []string) Note {
	return DetectKey(ParseProgression(symbols))
}
