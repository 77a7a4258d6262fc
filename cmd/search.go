package cmd

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/chord-scout/internal/app"
	"github.com/RyanBlaney/chord-scout/pkg/logging"
	"github.com/RyanBlaney/chord-scout/pkg/progression"
	"github.com/RyanBlaney/chord-scout/pkg/theory"
)

var (
	// Search command flags
	searchExactOnly   bool
	searchNoTranspose bool
	searchMaxWindow   int
	searchLimit       int
	searchWithStats   bool
	searchWorkerCount int
	searchCaseStrict  bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [chords...]",
	Short: "Search the song library for a chord progression",
	Long: `Search every song in the library (or a corpus file) for a chord
progression and rank the matches by confidence.

By default both exact occurrences and partial sub-progressions count, and a
progression matches in any key as long as the interval pattern lines up.
Exact full-progression hits score 1.0; partial hits score by coverage with
bonuses for longer matches and matches at the start of a section.

Examples:
  # Search the library
  chord-scout search C G Am F

  # Only exact occurrences, no transposition
  chord-scout search --exact --no-transpose C G Am F

  # Search a corpus file and keep the top five
  chord-scout search --corpus songs.yaml --limit 5 G D Em C`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolVar(&searchExactOnly, "exact", false,
		"only report exact full-progression occurrences")
	searchCmd.Flags().BoolVar(&searchNoTranspose, "no-transpose", false,
		"require matches in the original key")
	searchCmd.Flags().BoolVar(&searchCaseStrict, "case-sensitive", false,
		"compare chord symbols byte-for-byte instead of musically")
	searchCmd.Flags().IntVar(&searchMaxWindow, "max-window", 0,
		"largest sub-progression length to try (0 = no limit)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0,
		"maximum number of results (0 = all)")
	searchCmd.Flags().BoolVar(&searchWithStats, "stats", false,
		"include summary statistics over the confidence scores")
	searchCmd.Flags().IntVar(&searchWorkerCount, "workers", 0,
		"number of concurrent search workers (0 = configured default)")
}

// searchOutput is the output of a library search.
type searchOutput struct {
	Query   []string                  `json:"query"`
	Results []progression.ScoredMatch `json:"results"`
	Stats   *progression.ResultStats  `json:"stats,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	application, err := app.NewApp(newAppContext())
	if err != nil {
		return err
	}
	defer application.Close()

	corpus, err := application.Corpus()
	if err != nil {
		return err
	}

	opts := application.SearchOptions()
	if searchExactOnly {
		opts.ExactMatch = true
	}
	if searchNoTranspose {
		opts.AllowTransposition = false
	}
	if searchCaseStrict {
		opts.CaseSensitive = true
	}
	if searchMaxWindow > 0 {
		opts.MaxSubsliceLength = searchMaxWindow
	}

	workers := application.Config().Search.MaxConcurrency
	if searchWorkerCount > 0 {
		workers = searchWorkerCount
	}

	application.Logger().Debug("searching corpus", logging.Fields{
		"corpus_size": len(corpus),
		"query_len":   len(args),
		"workers":     workers,
	})

	search := make([]theory.Chord, 0, len(args))
	for _, symbol := range args {
		chord, err := theory.ParseChord(symbol)
		if err != nil {
			return err
		}
		search = append(search, chord)
	}

	results := progression.SearchCorpusConcurrently(search, corpus, opts, workers)

	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	out := searchOutput{Query: args, Results: results}
	if searchWithStats {
		stats := progression.SummarizeMatches(results)
		out.Stats = &stats
	}

	return application.OutputResults(out)
}
