package progression

import (
	"sort"
	"strings"
	"sync"
)

// RelatedOptions controls related-song ranking.
type RelatedOptions struct {
	MinSimilarity   float64 `json:"min_similarity"`
	MaxResults      int     `json:"max_results"`
	SameArtistBonus float64 `json:"same_artist_bonus"`
	SameGenreBonus  float64 `json:"same_genre_bonus"`
}

// DefaultRelatedOptions returns the ranking defaults used by the CLI and
// API layers.
func DefaultRelatedOptions() RelatedOptions {
	return RelatedOptions{
		MinSimilarity:   0.3,
		MaxResults:      10,
		SameArtistBonus: 0.1,
		SameGenreBonus:  0.05,
	}
}

// RelatedSong is one ranked discovery result: a candidate song, its final
// similarity to the target (bonuses applied, clamped to 1.0), and the
// section pair that produced the best raw similarity.
type RelatedSong struct {
	Song           Song    `json:"song"`
	Similarity     float64 `json:"similarity"`
	TargetSection  string  `json:"target_section"`
	RelatedSection string  `json:"related_section"`
}

// FindRelatedSongs ranks corpus songs by harmonic similarity to the
// target. For each candidate the maximum similarity over all
// (target-section x candidate-section) pairs is taken, same-artist and
// same-genre bonuses are added (clamped to 1.0), candidates below
// MinSimilarity are dropped, and the survivors are sorted descending and
// truncated to MaxResults. The target itself (matched by ID) is skipped.
// Candidate scoring fans out across songs; equal similarities preserve
// corpus iteration order.
func FindRelatedSongs(target Song, corpus []Song, opts RelatedOptions) []RelatedSong {
	if len(target.Sections) == 0 || len(corpus) == 0 {
		return []RelatedSong{}
	}

	scored := make([]*RelatedSong, len(corpus))

	var wg sync.WaitGroup
	sem := make(chan struct{}, defaultWorkers)

	for i := range corpus {
		if corpus[i].ID == target.ID {
			continue
		}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			scored[idx] = scoreCandidate(target, corpus[idx], opts)
		}(i)
	}
	wg.Wait()

	results := make([]RelatedSong, 0, len(corpus))
	for _, r := range scored {
		if r != nil && r.Similarity >= opts.MinSimilarity {
			results = append(results, *r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}

	return results
}

// scoreCandidate computes the best section-pair similarity between target
// and candidate and applies ranking bonuses.
func scoreCandidate(target, candidate Song, opts RelatedOptions) *RelatedSong {
	best := -1.0
	var bestTarget, bestRelated string

	for _, targetSection := range target.Sections {
		for _, candSection := range candidate.Sections {
			sim := Similarity(targetSection.Chords, target.Key, candSection.Chords, candidate.Key)
			if sim > best {
				best = sim
				bestTarget = targetSection.Name
				bestRelated = candSection.Name
			}
		}
	}

	if best < 0 {
		return nil
	}

	if sameField(target.Artist, candidate.Artist) {
		best += opts.SameArtistBonus
	}
	if sameField(target.Genre, candidate.Genre) {
		best += opts.SameGenreBonus
	}

	return &RelatedSong{
		Song:           candidate,
		Similarity:     clamp01(best),
		TargetSection:  bestTarget,
		RelatedSection: bestRelated,
	}
}

func sameField(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
