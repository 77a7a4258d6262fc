package cmd

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/chord-scout/internal/app"
	"github.com/RyanBlaney/chord-scout/pkg/theory"
)

var (
	// Numbers command flags
	numbersKey         string
	numbersFromDegrees bool
)

// numbersCmd represents the numbers command
var numbersCmd = &cobra.Command{
	Use:   "numbers [chords...]",
	Short: "Convert chords to Nashville numbers and back",
	Long: `Convert a chord progression to Nashville number notation relative to a
key, or convert degrees back to chords with --from-degrees.

Without --key the key is detected from the progression. Chromatic roots get
accidental-prefixed degrees (Eb in C is "b3"); quality suffixes carry over
verbatim, so G7 in C is "57".

Examples:
  # Degrees in a detected key
  chord-scout numbers C G Am F

  # Degrees relative to an explicit key
  chord-scout numbers --key G C G Am F

  # Degrees back to chords
  chord-scout numbers --from-degrees --key C 1 5 6m 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNumbers,
}

func init() {
	rootCmd.AddCommand(numbersCmd)

	numbersCmd.Flags().StringVarP(&numbersKey, "key", "k", "",
		"key to interpret the progression in (detected when omitted)")
	numbersCmd.Flags().BoolVar(&numbersFromDegrees, "from-degrees", false,
		"treat the arguments as degrees and convert them to chords")
}

// numbersResult is the output of a Nashville conversion.
type numbersResult struct {
	Key      string   `json:"key"`
	Input    []string `json:"input"`
	Degrees  []string `json:"degrees,omitempty"`
	Chords   []string `json:"chords,omitempty"`
	Diatonic []bool   `json:"diatonic,omitempty"`
}

func runNumbers(cmd *cobra.Command, args []string) error {
	application, err := app.NewApp(newAppContext())
	if err != nil {
		return err
	}
	defer application.Close()

	if numbersFromDegrees {
		return runDegreesToChords(application, args)
	}

	chords := make([]theory.Chord, 0, len(args))
	for _, symbol := range args {
		chord, err := theory.ParseChord(symbol)
		if err != nil {
			return err
		}
		chords = append(chords, chord)
	}

	var songKey theory.Note
	if numbersKey != "" {
		songKey, err = theory.ParseNote(numbersKey)
		if err != nil {
			return err
		}
	} else {
		songKey = theory.DetectKey(chords)
	}

	diatonic := make([]bool, 0, len(chords))
	for _, chord := range chords {
		diatonic = append(diatonic, theory.IsDiatonic(chord, songKey))
	}

	return application.OutputResults(numbersResult{
		Key:      songKey.String(),
		Input:    args,
		Degrees:  theory.ProgressionToDegrees(chords, songKey),
		Diatonic: diatonic,
	})
}

func runDegreesToChords(application *app.App, degrees []string) error {
	if numbersKey == "" {
		numbersKey = "C"
	}
	songKey, err := theory.ParseNote(numbersKey)
	if err != nil {
		return err
	}

	chords := make([]string, 0, len(degrees))
	for _, degree := range degrees {
		chord, err := theory.DegreeToChord(degree, songKey)
		if err != nil {
			return err
		}
		chords = append(chords, chord.String())
	}

	return application.OutputResults(numbersResult{
		Key:    songKey.String(),
		Input:  degrees,
		Chords: chords,
	})
}
