package progression

import (
	"sort"
	"strings"

	"github.com/RyanBlaney/chord-scout/pkg/theory"
)

// MatchKind distinguishes full-search matches from partial sub-slice
// matches.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchPartial
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchPartial:
		return "partial"
	default:
		return "unknown"
	}
}

// Match records one hit of the search progression (or a sub-slice of it)
// inside a candidate progression. Start and End index into the candidate;
// Coverage is the fraction of the full search progression the hit
// reproduces. Matches are immutable values assembled per search call.
type Match struct {
	Kind     MatchKind      `json:"kind"`
	Start    int            `json:"start"`
	End      int            `json:"end"`
	Matched  []theory.Chord `json:"matched"`
	Search   []theory.Chord `json:"search"`
	Coverage float64        `json:"coverage"`
}

// Length returns the number of candidate chords the match covers.
func (m Match) Length() int {
	return m.End - m.Start + 1
}

// SearchOptions controls matching semantics.
type SearchOptions struct {
	// ExactMatch restricts results to full-length window matches. When
	// false, contiguous sub-slices of the search progression also match.
	ExactMatch bool `json:"exact_match"`
	// CaseSensitive applies to symbol-level searches (SearchSymbols): raw
	// tokens must then match byte-for-byte instead of being parsed and
	// compared structurally.
	CaseSensitive bool `json:"case_sensitive"`
	// AllowTransposition accepts windows related to the search by a single
	// consistent semitone shift, verified through successive root-interval
	// deltas rather than absolute pitches.
	AllowTransposition bool `json:"allow_transposition"`
	// MaxSubsliceLength bounds the partial-match enumeration, which is
	// quadratic in the search length. Zero means unbounded.
	MaxSubsliceLength int `json:"max_subslice_length"`
}

// DefaultSearchOptions returns the options used by the CLI and API layers
// unless overridden.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		ExactMatch:         false,
		CaseSensitive:      false,
		AllowTransposition: true,
		MaxSubsliceLength:  0,
	}
}

// Matcher finds occurrences of a search progression inside candidate
// progressions. It holds only options: every call is synchronous,
// stateless and side-effect free, so a single Matcher is safe for
// concurrent use.
type Matcher struct {
	opts SearchOptions
}

// NewMatcher creates a matcher with default options.
func NewMatcher() *Matcher {
	return NewMatcherWithOptions(DefaultSearchOptions())
}

// NewMatcherWithOptions creates a matcher with custom options.
func NewMatcherWithOptions(opts SearchOptions) *Matcher {
	return &Matcher{opts: opts}
}

// Options returns the matcher's options.
func (m *Matcher) Options() SearchOptions {
	return m.opts
}

// Search finds all matches of the search progression inside the candidate.
// An empty search or candidate yields no matches; "no matches" is a valid
// outcome, not a failure. Results are ordered by start index, longer
// matches first within the same window start.
func (m *Matcher) Search(search, candidate []theory.Chord) []Match {
	if len(search) == 0 || len(candidate) == 0 {
		return nil
	}

	if m.opts.ExactMatch {
		return m.searchExact(search, candidate)
	}
	return m.searchPartial(search, candidate)
}

// SearchSymbols searches raw chord symbol sequences. With CaseSensitive
// set, tokens are compared byte-for-byte after trimming; otherwise both
// sides are parsed (invalid symbols dropped) and compared structurally.
func (m *Matcher) SearchSymbols(search, candidate []string) []Match {
	if m.opts.CaseSensitive {
		return m.searchLiteralSymbols(search, candidate)
	}
	return m.Search(theory.ParseProgression(search), theory.ParseProgression(candidate))
}

// searchExact slides a full-length window across the candidate.
func (m *Matcher) searchExact(search, candidate []theory.Chord) []Match {
	var matches []Match
	for offset := 0; offset+len(search) <= len(candidate); offset++ {
		if m.windowMatches(search, candidate[offset:offset+len(search)]) {
			matches = append(matches, Match{
				Kind:     MatchExact,
				Start:    offset,
				End:      offset + len(search) - 1,
				Matched:  candidate[offset : offset+len(search)],
				Search:   search,
				Coverage: 1.0,
			})
		}
	}
	return matches
}

// searchPartial enumerates contiguous sub-slices of the search progression
// and looks for each anywhere in the candidate. Sub-slices of length 1 are
// skipped when the full search is longer than one chord; single-chord hits
// inside a multi-chord search are noise. Overlapping hits on the same
// (start,end) window keep only the highest-coverage match.
func (m *Matcher) searchPartial(search, candidate []theory.Chord) []Match {
	minLen := 1
	if len(search) > 1 {
		minLen = 2
	}
	maxLen := len(search)
	if m.opts.MaxSubsliceLength > 0 && m.opts.MaxSubsliceLength < maxLen {
		maxLen = m.opts.MaxSubsliceLength
	}

	type window struct{ start, end int }
	best := make(map[window]Match)

	for subLen := maxLen; subLen >= minLen; subLen-- {
		coverage := float64(subLen) / float64(len(search))

		for subStart := 0; subStart+subLen <= len(search); subStart++ {
			sub := search[subStart : subStart+subLen]

			for offset := 0; offset+subLen <= len(candidate); offset++ {
				if !m.windowMatches(sub, candidate[offset:offset+subLen]) {
					continue
				}

				kind := MatchPartial
				if subLen == len(search) {
					kind = MatchExact
				}
				match := Match{
					Kind:     kind,
					Start:    offset,
					End:      offset + subLen - 1,
					Matched:  candidate[offset : offset+subLen],
					Search:   sub,
					Coverage: coverage,
				}

				key := window{match.Start, match.End}
				if existing, ok := best[key]; !ok || match.Coverage > existing.Coverage {
					best[key] = match
				}
			}
		}
	}

	matches := make([]Match, 0, len(best))
	for _, match := range best {
		matches = append(matches, match)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		return matches[i].End > matches[j].End
	})

	return matches
}

// windowMatches compares a search slice against an equally sized candidate
// window, literally or under a single consistent transposition.
func (m *Matcher) windowMatches(search, window []theory.Chord) bool {
	if len(search) != len(window) {
		return false
	}

	if !m.opts.AllowTransposition {
		for i := range search {
			if !search[i].Equal(window[i]) {
				return false
			}
		}
		return true
	}

	// Transposed equality: qualities line up and every root (and bass, when
	// present) sits the same semitone delta away.
	delta := search[0].Root.Interval(window[0].Root)
	for i := range search {
		if search[i].Quality != window[i].Quality {
			return false
		}
		if search[i].Root.Interval(window[i].Root) != delta {
			return false
		}
		if (search[i].Bass == nil) != (window[i].Bass == nil) {
			return false
		}
		if search[i].Bass != nil && search[i].Bass.Interval(*window[i].Bass) != delta {
			return false
		}
	}
	return true
}

// searchLiteralSymbols is the case-sensitive raw-token path.
func (m *Matcher) searchLiteralSymbols(search, candidate []string) []Match {
	trimmed := func(in []string) []string {
		out := make([]string, len(in))
		for i, s := range in {
			out[i] = strings.TrimSpace(s)
		}
		return out
	}
	searchTokens := trimmed(search)
	candTokens := trimmed(candidate)

	if len(searchTokens) == 0 || len(candTokens) == 0 {
		return nil
	}

	var matches []Match
	for offset := 0; offset+len(searchTokens) <= len(candTokens); offset++ {
		equal := true
		for i := range searchTokens {
			if searchTokens[i] != candTokens[offset+i] {
				equal = false
				break
			}
		}
		if equal {
			matches = append(matches, Match{
				Kind:     MatchExact,
				Start:    offset,
				End:      offset + len(searchTokens) - 1,
				Coverage: 1.0,
			})
		}
	}
	return matches
}
