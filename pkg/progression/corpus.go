package progression

import (
	"sort"
	"sync"

	"github.com/RyanBlaney/chord-scout/pkg/theory"
)

// ScoredMatch pairs a match with the song and section it was found in and
// the computed confidence. Results are owned solely by the call that
// produced them.
type ScoredMatch struct {
	SongID      string  `json:"song_id"`
	SongTitle   string  `json:"song_title"`
	Artist      string  `json:"artist"`
	SectionName string  `json:"section_name"`
	Match       Match   `json:"match"`
	Confidence  float64 `json:"confidence"`
}

// SearchCorpus runs the matcher over every section of every song and
// returns all scored matches sorted by confidence descending. Equal
// confidences preserve corpus iteration order, so results are
// reproducible for a given corpus slice. Scoring fans out across songs
// with a bounded worker pool; an empty search or corpus yields an empty
// result list.
func SearchCorpus(search []theory.Chord, corpus []Song, opts SearchOptions) []ScoredMatch {
	return SearchCorpusConcurrently(search, corpus, opts, defaultWorkers)
}

const defaultWorkers = 4

// SearchCorpusConcurrently is SearchCorpus with an explicit worker count.
// Candidate scoring is embarrassingly parallel: per-song results are
// collected into an indexed slice so the final merge order never depends
// on goroutine scheduling.
func SearchCorpusConcurrently(search []theory.Chord, corpus []Song, opts SearchOptions, workers int) []ScoredMatch {
	if len(search) == 0 || len(corpus) == 0 {
		return []ScoredMatch{}
	}
	if workers < 1 {
		workers = 1
	}

	matcher := NewMatcherWithOptions(opts)
	perSong := make([][]ScoredMatch, len(corpus))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i := range corpus {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			perSong[idx] = searchSong(matcher, search, corpus[idx])
		}(i)
	}
	wg.Wait()

	var results []ScoredMatch
	for _, songMatches := range perSong {
		results = append(results, songMatches...)
	}
	if results == nil {
		results = []ScoredMatch{}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	return results
}

// searchSong scores one song's sections in corpus order.
func searchSong(matcher *Matcher, search []theory.Chord, song Song) []ScoredMatch {
	var results []ScoredMatch
	for _, section := range song.Sections {
		for _, match := range matcher.Search(search, section.Chords) {
			results = append(results, ScoredMatch{
				SongID:      song.ID,
				SongTitle:   song.Title,
				Artist:      song.Artist,
				SectionName: section.Name,
				Match:       match,
				Confidence:  Confidence(match, len(section.Chords)),
			})
		}
	}
	return results
}

// SearchSymbolsInCorpus parses the search symbols strictly and runs the
// corpus search. A parse failure on the primary search input surfaces to
// the caller instead of being silently coerced.
func SearchSymbolsInCorpus(symbols []string, corpus []Song, opts SearchOptions) ([]ScoredMatch, error) {
	search := make([]theory.Chord, 0, len(symbols))
	for _, symbol := range symbols {
		chord, err := theory.ParseChord(symbol)
		if err != nil {
			return nil, err
		}
		search = append(search, chord)
	}
	return SearchCorpus(search, corpus, opts), nil
}
