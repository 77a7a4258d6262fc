package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidenceExactMatch(t *testing.T) {
	match := Match{Kind: MatchExact, Start: 2, End: 5, Coverage: 1.0}
	// Base 1.0 + length bonus already exceeds 1; must clamp.
	assert.Equal(t, 1.0, Confidence(match, 6))
}

func TestConfidencePartialCoverageBase(t *testing.T) {
	match := Match{Kind: MatchPartial, Start: 3, End: 5, Coverage: 0.5}
	// 0.5 + 0.2*3/8 = 0.575; no start bonus, no short-match penalty.
	assert.InDelta(t, 0.575, Confidence(match, 6), 1e-9)
}

func TestConfidenceStartBonus(t *testing.T) {
	atStart := Match{Kind: MatchPartial, Start: 0, End: 2, Coverage: 0.5}
	inside := Match{Kind: MatchPartial, Start: 1, End: 3, Coverage: 0.5}

	assert.InDelta(t, startBonus, Confidence(atStart, 6)-Confidence(inside, 6), 1e-9)
}

func TestConfidenceShortMatchPenalty(t *testing.T) {
	short := Match{Kind: MatchPartial, Start: 4, End: 5, Coverage: 0.5}

	// Candidate of 8 chords triggers the penalty, candidate of 6 does not.
	penalized := Confidence(short, 8)
	plain := Confidence(short, 6)

	assert.InDelta(t, plain*shortMatchPenalty, penalized, 1e-9)
}

func TestConfidenceLengthBonusCap(t *testing.T) {
	eight := Match{Kind: MatchPartial, Start: 1, End: 8, Coverage: 0.4}
	twelve := Match{Kind: MatchPartial, Start: 1, End: 12, Coverage: 0.4}

	// Length bonus saturates at eight chords.
	assert.InDelta(t, Confidence(eight, 20), Confidence(twelve, 20), 1e-9)
}

func TestConfidenceBounds(t *testing.T) {
	matches := []Match{
		{Kind: MatchExact, Start: 0, End: 11, Coverage: 1.0},
		{Kind: MatchPartial, Start: 0, End: 0, Coverage: 0.01},
		{Kind: MatchPartial, Start: 9, End: 9, Coverage: 0.0},
		{Kind: MatchPartial, Start: 3, End: 10, Coverage: 0.9},
	}

	for _, m := range matches {
		for _, candidateLen := range []int{1, 4, 7, 50} {
			score := Confidence(m, candidateLen)
			require.GreaterOrEqual(t, score, 0.0)
			require.LessOrEqual(t, score, 1.0)
		}
	}
}
