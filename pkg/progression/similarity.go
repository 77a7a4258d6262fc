package progression

import (
	"github.com/RyanBlaney/chord-scout/pkg/theory"
)

// Similarity component weights. Set overlap dominates, positional
// agreement refines, and length similarity keeps very different-sized
// progressions from scoring high on overlap alone.
const (
	weightSetOverlap = 0.5
	weightPositional = 0.3
	weightLength     = 0.2
)

// Similarity computes a 0-1 harmonic similarity between two progressions.
// Both are translated to key-relative degree sequences first, so the
// comparison is key-independent: a I-V-vi-IV in G scores 1.0 against a
// I-V-vi-IV in C. Identical degree sequences short-circuit to 1.0;
// otherwise the score combines Jaccard set overlap of distinct degree
// symbols, positional agreement up to the shorter length, and length
// similarity. The measure is symmetric in its arguments.
func Similarity(progA []theory.Chord, keyA theory.Note, progB []theory.Chord, keyB theory.Note) float64 {
	if len(progA) == 0 || len(progB) == 0 {
		return 0
	}

	degreesA := theory.ProgressionToDegrees(progA, keyA)
	degreesB := theory.ProgressionToDegrees(progB, keyB)

	if equalSequences(degreesA, degreesB) {
		return 1.0
	}

	score := weightSetOverlap * jaccard(degreesA, degreesB)
	score += weightPositional * positionalAgreement(degreesA, degreesB)
	score += weightLength * lengthSimilarity(len(degreesA), len(degreesB))

	return clamp01(score)
}

func equalSequences(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// jaccard computes the Jaccard index over the sets of distinct degree
// symbols used by each sequence.
func jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// positionalAgreement is the fraction of identical degree symbols at the
// same index, up to the shorter sequence length.
func positionalAgreement(a, b []string) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	agree := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			agree++
		}
	}
	return float64(agree) / float64(n)
}

// lengthSimilarity is 1 - |lenA-lenB| / max(lenA, lenB).
func lengthSimilarity(lenA, lenB int) float64 {
	max := lenA
	if lenB > max {
		max = lenB
	}
	if max == 0 {
		return 0
	}
	diff := lenA - lenB
	if diff < 0 {
		diff = -diff
	}
	return 1.0 - float64(diff)/float64(max)
}
