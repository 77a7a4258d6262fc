package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/chord-scout/internal/app"
	"github.com/RyanBlaney/chord-scout/pkg/logging"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import songs into the library from JSON or YAML",
	Long: `Import songs into the library from a JSON or YAML document, chosen by
file extension. A song whose title and artist already exist is replaced.

Examples:
  chord-scout import songs.json
  chord-scout import --database ./test.db songs.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the song library to JSON or YAML",
	Long: `Export every song in the library to a JSON or YAML document, chosen by
file extension.

Examples:
  chord-scout export songs.json
  chord-scout export backup.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

// songsCmd represents the songs command
var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "List the songs in the library",
	Long: `List every song in the library with its key and section layout.

Examples:
  chord-scout songs
  chord-scout songs -o json`,
	Args: cobra.NoArgs,
	RunE: runSongs,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(songsCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	application, err := app.NewApp(newAppContext())
	if err != nil {
		return err
	}
	defer application.Close()

	store, err := application.Store()
	if err != nil {
		return err
	}

	imported, err := store.ImportFile(args[0])
	if err != nil {
		return err
	}

	application.Logger().Info("import complete", logging.Fields{
		"file":  args[0],
		"songs": imported,
	})

	return application.OutputResults(map[string]any{
		"imported": imported,
		"file":     args[0],
	})
}

func runExport(cmd *cobra.Command, args []string) error {
	application, err := app.NewApp(newAppContext())
	if err != nil {
		return err
	}
	defer application.Close()

	store, err := application.Store()
	if err != nil {
		return err
	}

	exported, err := store.ExportFile(args[0])
	if err != nil {
		return err
	}

	application.Logger().Info("export complete", logging.Fields{
		"file":  args[0],
		"songs": exported,
	})

	return application.OutputResults(map[string]any{
		"exported": exported,
		"file":     args[0],
	})
}

// songListing is one row of the songs command output.
type songListing struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Genre    string `json:"genre,omitempty"`
	Key      string `json:"key"`
	Sections string `json:"sections"`
}

func runSongs(cmd *cobra.Command, args []string) error {
	application, err := app.NewApp(newAppContext())
	if err != nil {
		return err
	}
	defer application.Close()

	songs, err := application.Corpus()
	if err != nil {
		return err
	}

	listings := make([]songListing, 0, len(songs))
	for _, song := range songs {
		sections := ""
		for i, section := range song.Sections {
			if i > 0 {
				sections += ", "
			}
			sections += fmt.Sprintf("%s(%d)", section.Name, len(section.Chords))
		}
		listings = append(listings, songListing{
			ID:       song.ID,
			Title:    song.Title,
			Artist:   song.Artist,
			Genre:    song.Genre,
			Key:      song.Key.String(),
			Sections: sections,
		})
	}

	return application.OutputResults(listings)
}
