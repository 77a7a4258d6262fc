package progression

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ResultStats summarizes the confidence (or similarity) distribution of a
// result set; the CLI and API layers report it alongside ranked results.
type ResultStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P95    float64 `json:"p95"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// SummarizeMatches computes distribution statistics over scored-match
// confidences.
func SummarizeMatches(matches []ScoredMatch) ResultStats {
	scores := make([]float64, len(matches))
	for i, m := range matches {
		scores[i] = m.Confidence
	}
	return summarize(scores)
}

// SummarizeRelated computes distribution statistics over related-song
// similarities.
func SummarizeRelated(related []RelatedSong) ResultStats {
	scores := make([]float64, len(related))
	for i, r := range related {
		scores[i] = r.Similarity
	}
	return summarize(scores)
}

func summarize(scores []float64) ResultStats {
	if len(scores) == 0 {
		return ResultStats{}
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	stats := ResultStats{
		Count:  len(scores),
		Mean:   stat.Mean(scores, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
		Min:    floats.Min(scores),
		Max:    floats.Max(scores),
	}
	if len(scores) >= 2 {
		stats.StdDev = math.Sqrt(stat.Variance(scores, nil))
	}
	return stats
}
