package cmd

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/chord-scout/internal/app"
	"github.com/RyanBlaney/chord-scout/pkg/theory"
)

var (
	// Parse command flags
	parseLenient bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [chords...]",
	Short: "Parse chord symbols into their components",
	Long: `Parse chord symbols and report the root, quality and bass of each.

Roots and basses are canonicalized to sharp spellings, so "Db" parses as C#.
Parsing is strict: an unrecognized symbol fails the command. With --lenient,
unrecognized symbols fall back to C major instead.

Examples:
  # Parse a progression
  chord-scout parse C G Am F

  # Slash chords and enharmonic spellings
  chord-scout parse "C/E" Db "F#m7b5"

  # Lenient parsing for messy input
  chord-scout parse --lenient C G Xm9`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseLenient, "lenient", false,
		"fall back to C major for unrecognized symbols")
}

// newAppContext builds the application context from global flags.
func newAppContext() *app.Context {
	return &app.Context{
		ConfigFile:   configFile,
		CorpusFile:   corpusFile,
		DatabasePath: databasePath,
		OutputFile:   outputFile,
		OutputFormat: outputFormat,
		Verbose:      verbose,
		Quiet:        quiet,
	}
}

// parsedChord is the output row for one parsed symbol.
type parsedChord struct {
	Symbol  string `json:"symbol"`
	Chord   string `json:"chord"`
	Root    string `json:"root"`
	Quality string `json:"quality"`
	Bass    string `json:"bass,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	application, err := app.NewApp(newAppContext())
	if err != nil {
		return err
	}
	defer application.Close()

	results := make([]parsedChord, 0, len(args))
	for _, symbol := range args {
		var chord theory.Chord
		if parseLenient {
			chord = theory.ParseChordOrDefault(symbol)
		} else {
			chord, err = theory.ParseChord(symbol)
			if err != nil {
				return err
			}
		}

		row := parsedChord{
			Symbol:  symbol,
			Chord:   chord.String(),
			Root:    chord.Root.String(),
			Quality: chord.Quality.Name(),
		}
		if chord.Bass != nil {
			row.Bass = chord.Bass.String()
		}
		results = append(results, row)
	}

	return application.OutputResults(results)
}
