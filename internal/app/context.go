// Package app wires configuration, logging, storage and output formatting
// into the application object the CLI commands run against.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RyanBlaney/chord-scout/configs"
	"github.com/RyanBlaney/chord-scout/internal/library"
	"github.com/RyanBlaney/chord-scout/pkg/logging"
	"github.com/RyanBlaney/chord-scout/pkg/output"
	"github.com/RyanBlaney/chord-scout/pkg/progression"
)

// Context holds the CLI arguments and runtime state shared by commands.
type Context struct {
	// CLI arguments
	ConfigFile   string
	CorpusFile   string // optional corpus file used instead of the database
	DatabasePath string
	OutputFile   string
	OutputFormat string
	Verbose      bool
	Quiet        bool

	// Runtime context
	Logger logging.Logger
	Config *configs.Config
}

// App handles the application lifecycle for CLI commands.
type App struct {
	ctx    *Context
	config *configs.Config
	logger logging.Logger
	store  *library.Store
}

// NewApp builds the application from CLI context: logging, merged
// configuration, and (lazily) the library store.
func NewApp(ctx *Context) (*App, error) {
	logger := setupLogging(ctx)
	ctx.Logger = logger

	config, err := loadAndMergeConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	ctx.Config = config

	logger.Debug("application initialized", logging.Fields{
		"config_file":   ctx.ConfigFile,
		"corpus_file":   ctx.CorpusFile,
		"database_path": config.Library.DatabasePath,
		"output_format": config.OutputFormat,
	})

	return &App{
		ctx:    ctx,
		config: config,
		logger: logger,
	}, nil
}

// Config returns the merged configuration.
func (app *App) Config() *configs.Config {
	return app.config
}

// Logger returns the application logger.
func (app *App) Logger() logging.Logger {
	return app.logger
}

// Store opens (once) and returns the library store.
func (app *App) Store() (*library.Store, error) {
	if app.store != nil {
		return app.store, nil
	}
	store, err := library.Open(app.config.Library.DatabasePath, app.config.Library.AutoMigrate)
	if err != nil {
		return nil, fmt.Errorf("failed to open song library: %w", err)
	}
	app.store = store
	return store, nil
}

// Close releases the store if it was opened.
func (app *App) Close() error {
	if app.store == nil {
		return nil
	}
	return app.store.Close()
}

// Corpus loads the song corpus, preferring an explicit corpus file over the
// library database.
func (app *App) Corpus() ([]progression.Song, error) {
	if app.ctx.CorpusFile != "" {
		docs, err := library.ReadDocuments(app.ctx.CorpusFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load corpus file: %w", err)
		}
		songs := make([]progression.Song, 0, len(docs))
		for i, doc := range docs {
			song := doc.ToSong()
			if song.ID == "" {
				song.ID = fmt.Sprintf("corpus-%d", i)
			}
			songs = append(songs, song)
		}
		return songs, nil
	}

	store, err := app.Store()
	if err != nil {
		return nil, err
	}
	return store.ListSongs()
}

// SearchOptions returns matcher options from the merged configuration.
func (app *App) SearchOptions() progression.SearchOptions {
	return progression.SearchOptions{
		ExactMatch:         app.config.Search.ExactMatch,
		CaseSensitive:      app.config.Search.CaseSensitive,
		AllowTransposition: app.config.Search.AllowTransposition,
		MaxSubsliceLength:  app.config.Search.MaxSubsliceLength,
	}
}

// RelatedOptions returns related-song ranking options from the merged
// configuration.
func (app *App) RelatedOptions() progression.RelatedOptions {
	return progression.RelatedOptions{
		MinSimilarity:   app.config.Related.MinSimilarity,
		MaxResults:      app.config.Related.MaxResults,
		SameArtistBonus: app.config.Related.SameArtistBonus,
		SameGenreBonus:  app.config.Related.SameGenreBonus,
	}
}

// OutputResults formats data per the configured output format and writes it
// to the output file or stdout.
func (app *App) OutputResults(data any) error {
	formatter := output.NewFormatter(app.ctx.OutputFormat)

	formatted, err := formatter.Format(data, app.config.Output.Pretty)
	if err != nil {
		return fmt.Errorf("failed to format output data: %w", err)
	}

	if app.ctx.OutputFile != "" {
		return app.writeToFile(formatted)
	}

	_, err = os.Stdout.Write(formatted)
	return err
}

func (app *App) writeToFile(data []byte) error {
	dir := filepath.Dir(app.ctx.OutputFile)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(app.ctx.OutputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	app.logger.Info("results written", logging.Fields{"file": app.ctx.OutputFile})
	return nil
}

// setupLogging configures the global logger from CLI flags.
func setupLogging(ctx *Context) logging.Logger {
	logger := logging.NewDefaultLogger()

	switch {
	case ctx.Quiet:
		logger.SetLevel(logging.ErrorLevel)
	case ctx.Verbose:
		logger.SetLevel(logging.DebugLevel)
	}

	logging.SetGlobalLogger(logger)
	return logger
}
