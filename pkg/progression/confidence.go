package progression

// Confidence scoring constants. The heuristic rewards coverage first,
// then absolute match length, then matches anchored at the start of a
// section, and penalizes short matches buried in long sections.
const (
	lengthBonusMax    = 0.2
	lengthBonusCap    = 8
	startBonus        = 0.1
	shortMatchPenalty = 0.8
	shortMatchLen     = 3
	longCandidateLen  = 6
)

// Confidence computes the 0-1 confidence score for a match found inside a
// candidate progression of the given length.
//
// Base is 1.0 for exact matches and the coverage ratio otherwise. A length
// bonus of up to +0.2 scales with the absolute match length, capped at
// eight chords. Matches starting at candidate index 0 earn +0.1. Matches
// shorter than three chords inside candidates longer than six chords are
// scaled by 0.8 to suppress noise hits in long sections. The result is
// clamped to [0, 1].
func Confidence(match Match, candidateLen int) float64 {
	score := match.Coverage
	if match.Kind == MatchExact {
		score = 1.0
	}

	length := match.Length()
	capped := length
	if capped > lengthBonusCap {
		capped = lengthBonusCap
	}
	score += lengthBonusMax * float64(capped) / float64(lengthBonusCap)

	if match.Start == 0 {
		score += startBonus
	}

	if length < shortMatchLen && candidateLen > longCandidateLen {
		score *= shortMatchPenalty
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
