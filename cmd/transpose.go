package cmd

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/chord-scout/internal/app"
	"github.com/RyanBlaney/chord-scout/pkg/theory"
)

var (
	// Transpose command flags
	transposeSemitones int
)

// transposeCmd represents the transpose command
var transposeCmd = &cobra.Command{
	Use:   "transpose --semitones N [chords...]",
	Short: "Transpose a chord progression by semitones",
	Long: `Transpose a chord progression up or down by a number of semitones.

Roots and slash basses move together, and results are spelled with sharps.
Transposing by +14 is the same as transposing by +2; -1 wraps B around to C.

Examples:
  # Up a whole step
  chord-scout transpose --semitones 2 C G Am F

  # Down a fourth, slash chords included
  chord-scout transpose --semitones -5 "G/B" Em C D`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranspose,
}

func init() {
	rootCmd.AddCommand(transposeCmd)

	transposeCmd.Flags().IntVarP(&transposeSemitones, "semitones", "s", 0,
		"number of semitones to transpose by (negative for down)")
	transposeCmd.MarkFlagRequired("semitones")
}

// transposedProgression is the output of a transposition.
type transposedProgression struct {
	Semitones int      `json:"semitones"`
	Input     []string `json:"input"`
	Output    []string `json:"output"`
}

func runTranspose(cmd *cobra.Command, args []string) error {
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

	transposed := theory.TransposeProgression(chords, transposeSemitones)

	out := make([]string, 0, len(transposed))
	for _, chord := range transposed {
		out = append(out, chord.String())
	}

	return application.OutputResults(transposedProgression{
		Semitones: transposeSemitones,
		Input:     args,
		Output:    out,
	})
}
