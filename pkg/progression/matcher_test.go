package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/chord-scout/pkg/theory"
)

func chords(symbols ...string) []theory.Chord {
	return theory.ParseProgression(symbols)
}

func TestSearchExactLiteral(t *testing.T) {
	matcher := NewMatcherWithOptions(SearchOptions{ExactMatch: true})

	candidate := chords("C", "Am", "F", "G", "C", "Am")
	matches := matcher.Search(chords("C", "Am"), candidate)

	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].Start)
	assert.Equal(t, 1, matches[0].End)
	assert.Equal(t, 4, matches[1].Start)
	assert.Equal(t, MatchExact, matches[0].Kind)
	assert.Equal(t, 1.0, matches[0].Coverage)
}

// Every contiguous sub-slice of a progression must be found at its own
// position by an exact search.
func TestSearchExactCompleteness(t *testing.T) {
	matcher := NewMatcherWithOptions(SearchOptions{ExactMatch: true})
	candidate := chords("C", "Am", "F", "G", "Em", "Am", "Dm", "G7")

	for start := 0; start < len(candidate); start++ {
		for end := start + 1; end <= len(candidate); end++ {
			sub := candidate[start:end]
			matches := matcher.Search(sub, candidate)

			found := false
			for _, m := range matches {
				if m.Start == start && m.End == end-1 {
					found = true
					break
				}
			}
			assert.True(t, found, "sub-slice [%d:%d] not found at its own position", start, end)
		}
	}
}

func TestSearchExactTransposed(t *testing.T) {
	matcher := NewMatcherWithOptions(SearchOptions{ExactMatch: true, AllowTransposition: true})

	// D-Bm is C-Am up two semitones.
	matches := matcher.Search(chords("C", "Am"), chords("D", "Bm", "E7"))
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].Start)

	// Inconsistent deltas must not match: C->D is +2 but Am->Cm is +3.
	matches = matcher.Search(chords("C", "Am"), chords("D", "Cm"))
	assert.Empty(t, matches)

	// Without transposition the same shifted window is rejected.
	literal := NewMatcherWithOptions(SearchOptions{ExactMatch: true})
	assert.Empty(t, literal.Search(chords("C", "Am"), chords("D", "Bm")))
}

func TestSearchTransposedSlashChords(t *testing.T) {
	matcher := NewMatcherWithOptions(SearchOptions{ExactMatch: true, AllowTransposition: true})

	// Bass moves with the root: C/E up 2 is D/F#.
	matches := matcher.Search(chords("C/E", "F"), chords("D/F#", "G"))
	require.Len(t, matches, 1)

	// A bass that does not follow the shift breaks the match.
	assert.Empty(t, matcher.Search(chords("C/E", "F"), chords("D/G", "G")))

	// Bass presence must line up.
	assert.Empty(t, matcher.Search(chords("C/E"), chords("D")))
}

func TestSearchPartial(t *testing.T) {
	matcher := NewMatcher()

	// Only C-Am of the three-chord search appears in the candidate.
	matches := matcher.Search(chords("C", "Am", "Bb"), chords("C", "Am", "F", "G"))
	require.NotEmpty(t, matches)

	best := matches[0]
	assert.Equal(t, MatchPartial, best.Kind)
	assert.Equal(t, 0, best.Start)
	assert.Equal(t, 1, best.End)
	assert.InDelta(t, 2.0/3.0, best.Coverage, 1e-9)
}

func TestSearchPartialSkipsSingleChordNoise(t *testing.T) {
	matcher := NewMatcherWithOptions(SearchOptions{})

	// "C" alone occurs in the candidate, but single-chord sub-slices of a
	// longer search are degenerate and skipped.
	matches := matcher.Search(chords("C", "Bb"), chords("C", "G", "D"))
	assert.Empty(t, matches)

	// A one-chord search is still allowed to match as itself.
	matches = matcher.Search(chords("C"), chords("C", "G", "D"))
	require.Len(t, matches, 1)
	assert.Equal(t, 1.0, matches[0].Coverage)
}

func TestSearchPartialDeduplicatesWindows(t *testing.T) {
	matcher := NewMatcherWithOptions(SearchOptions{})

	// Both the full search and its two-chord prefix hit window (0,1); only
	// the higher-coverage full match may survive for that window.
	matches := matcher.Search(chords("C", "Am"), chords("C", "Am", "C", "Am"))

	seen := make(map[[2]int]int)
	for _, m := range matches {
		seen[[2]int{m.Start, m.End}]++
	}
	for window, count := range seen {
		assert.Equal(t, 1, count, "window %v reported more than once", window)
	}
}

func TestSearchPartialMaxSubsliceLength(t *testing.T) {
	bounded := NewMatcherWithOptions(SearchOptions{MaxSubsliceLength: 2})

	matches := bounded.Search(chords("C", "Am", "F", "G"), chords("C", "Am", "F", "G"))
	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.LessOrEqual(t, m.Length(), 2)
	}
}

func TestSearchEmptyInputs(t *testing.T) {
	matcher := NewMatcher()

	assert.Empty(t, matcher.Search(nil, chords("C")))
	assert.Empty(t, matcher.Search(chords("C"), nil))
	assert.Empty(t, matcher.Search(nil, nil))
}

func TestSearchSymbols(t *testing.T) {
	insensitive := NewMatcherWithOptions(SearchOptions{ExactMatch: true})
	matches := insensitive.SearchSymbols([]string{"c", "am"}, []string{"C", "Am", "F"})
	require.Len(t, matches, 1)

	sensitive := NewMatcherWithOptions(SearchOptions{ExactMatch: true, CaseSensitive: true})
	assert.Empty(t, sensitive.SearchSymbols([]string{"c", "am"}, []string{"C", "Am", "F"}))

	matches = sensitive.SearchSymbols([]string{"C", "Am"}, []string{"C", "Am", "F"})
	require.Len(t, matches, 1)
}
