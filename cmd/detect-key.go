package cmd

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/chord-scout/internal/app"
	"github.com/RyanBlaney/chord-scout/pkg/theory"
)

var (
	// Detect-key command flags
	detectKeyCandidates bool
)

// detectKeyCmd represents the detect-key command
var detectKeyCmd = &cobra.Command{
	Use:   "detect-key [chords...]",
	Short: "Detect the most likely key of a progression",
	Long: `Detect the most likely key of a chord progression.

Each possible key is scored from the chord roots: two points per chord built
on the key itself plus one point for each chord on its fourth or fifth.
Ties go to the root that appears first in the progression. With --candidates
every scored key is listed instead of just the winner.

Examples:
  # Most likely key
  chord-scout detect-key G D Em C

  # Full scored ranking
  chord-scout detect-key --candidates C G Am F`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetectKey,
}

func init() {
	rootCmd.AddCommand(detectKeyCmd)

	detectKeyCmd.Flags().BoolVar(&detectKeyCandidates, "candidates", false,
		"list every scored key candidate")
}

// detectKeyResult is the output of key detection.
type detectKeyResult struct {
	Key        string           `json:"key"`
	Candidates []scoredKeyEntry `json:"candidates,omitempty"`
}

type scoredKeyEntry struct {
	Key   string  `json:"key"`
	Score float64 `json:"score"`
}

func runDetectKey(cmd *cobra.Command, args []string) error {
	application, err := app.NewApp(newAppContext())
	if err != nil {
		return err
	}
	defer application.Close()

	chords := make([]theory.Chord, 0, len(args))
	for _, symbol := range args {
		chord, err := theory.ParseChord(symbol)
		if err != nil {
			return err
		}
		chords = append(chords, chord)
	}

	result := detectKeyResult{
		Key: theory.DetectKey(chords).String(),
	}

	if detectKeyCandidates {
		for _, candidate := range theory.DetectKeyCandidates(chords) {
			result.Candidates = append(result.Candidates, scoredKeyEntry{
				Key:   candidate.Key.String(),
				Score: candidate.Score,
			})
		}
	}

	return application.OutputResults(result)
}
