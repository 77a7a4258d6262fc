package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/chord-scout/internal/app"
	"github.com/RyanBlaney/chord-scout/pkg/progression"
)

var (
	// Related command flags
	relatedSongID        string
	relatedTitle         string
	relatedMinSimilarity float64
	relatedMaxResults    int
	relatedWithStats     bool
)

// relatedCmd represents the related command
var relatedCmd = &cobra.Command{
	Use:   "related [chords...]",
	Short: "Find songs harmonically related to a target",
	Long: `Rank library songs by harmonic similarity to a target song or an
ad-hoc progression.

The target is a stored song (--song-id or --title) or the chord arguments
treated as a one-section song. Similarity compares Nashville degree
sequences, so a progression relates to its transpositions; songs sharing the
target's artist or genre get a small ranking bonus.

Examples:
  # Songs related to a stored song
  chord-scout related --title "Let It Be"

  # Songs related to an ad-hoc progression
  chord-scout related C G Am F

  # Cast a wider net
  chord-scout related --min-similarity 0.2 --max-results 25 C G Am F`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && relatedSongID == "" && relatedTitle == "" {
			return fmt.Errorf("requires chord arguments, --song-id, or --title")
		}
		return nil
	},
	RunE: runRelated,
}

func init() {
	rootCmd.AddCommand(relatedCmd)

	relatedCmd.Flags().StringVar(&relatedSongID, "song-id", "",
		"ID of a stored song to use as the target")
	relatedCmd.Flags().StringVar(&relatedTitle, "title", "",
		"title of a stored song to use as the target")
	relatedCmd.Flags().Float64Var(&relatedMinSimilarity, "min-similarity", 0,
		"minimum similarity to include (0 = configured default)")
	relatedCmd.Flags().IntVarP(&relatedMaxResults, "max-results", "n", 0,
		"maximum number of results (0 = configured default)")
	relatedCmd.Flags().BoolVar(&relatedWithStats, "stats", false,
		"include summary statistics over the similarity scores")
}

// relatedOutput is the output of related-song discovery.
type relatedOutput struct {
	Target  string                    `json:"target"`
	Results []progression.RelatedSong `json:"results"`
	Stats   *progression.ResultStats  `json:"stats,omitempty"`
}

func runRelated(cmd *cobra.Command, args []string) error {
	application, err := app.NewApp(newAppContext())
	if err != nil {
		return err
	}
	defer application.Close()

	corpus, err := application.Corpus()
	if err != nil {
		return err
	}

	target, err := resolveTarget(corpus, args)
	if err != nil {
		return err
	}

	opts := application.RelatedOptions()
	if relatedMinSimilarity > 0 {
		opts.MinSimilarity = relatedMinSimilarity
	}
	if relatedMaxResults > 0 {
		opts.MaxResults = relatedMaxResults
	}

	results := progression.FindRelatedSongs(target, corpus, opts)

	out := relatedOutput{Target: targetLabel(target), Results: results}
	if relatedWithStats {
		stats := progression.SummarizeRelated(results)
		out.Stats = &stats
	}

	return application.OutputResults(out)
}

// resolveTarget picks the target song from the corpus by ID or title, or
// builds a one-section song from chord arguments.
func resolveTarget(corpus []progression.Song, args []string) (progression.Song, error) {
	if relatedSongID != "" {
		for _, song := range corpus {
			if song.ID == relatedSongID {
				return song, nil
			}
		}
		return progression.Song{}, fmt.Errorf("no song with ID %q", relatedSongID)
	}

	if relatedTitle != "" {
		for _, song := range corpus {
			if song.Title == relatedTitle {
				return song, nil
			}
		}
		return progression.Song{}, fmt.Errorf("no song titled %q", relatedTitle)
	}

	target := progression.Song{
		Title: "query",
		Sections: []progression.Section{
			progression.NewSection("query", args),
		},
	}
	if len(target.Sections[0].Chords) == 0 {
		return progression.Song{}, fmt.Errorf("no valid chords in %v", args)
	}
	target.Key = progression.DetectSongKey(target)
	return target, nil
}

func targetLabel(target progression.Song) string {
	if target.ID != "" {
		return fmt.Sprintf("%s (%s)", target.Title, target.ID)
	}
	return target.Title
}
