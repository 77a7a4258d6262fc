package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/chord-scout/configs"
	"github.com/RyanBlaney/chord-scout/internal/library"
)

func newTestApp(t *testing.T, ctx *Context) *App {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	configs.SetDefaults(viper.GetViper())

	if ctx.DatabasePath == "" {
		ctx.DatabasePath = filepath.Join(t.TempDir(), "library.db")
	}

	application, err := NewApp(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { application.Close() })
	return application
}

func TestNewAppMergesFlags(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "custom.db")
	application := newTestApp(t, &Context{
		OutputFormat: "json",
		DatabasePath: dbPath,
		Verbose:      true,
	})

	config := application.Config()
	assert.Equal(t, "json", config.OutputFormat)
	assert.Equal(t, dbPath, config.Library.DatabasePath)
	assert.True(t, config.Verbose)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestNewAppDefaultsOutputFormat(t *testing.T) {
	ctx := &Context{}
	application := newTestApp(t, ctx)

	assert.Equal(t, "table", ctx.OutputFormat)
	assert.Equal(t, "table", application.Config().OutputFormat)
}

func TestSearchAndRelatedOptions(t *testing.T) {
	application := newTestApp(t, &Context{})

	searchOpts := application.SearchOptions()
	assert.False(t, searchOpts.ExactMatch)
	assert.True(t, searchOpts.AllowTransposition)

	relatedOpts := application.RelatedOptions()
	assert.InDelta(t, 0.3, relatedOpts.MinSimilarity, 1e-9)
	assert.Equal(t, 10, relatedOpts.MaxResults)
}

func TestOutputResultsToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "out", "results.json")
	application := newTestApp(t, &Context{
		OutputFormat: "json",
		OutputFile:   outputFile,
	})

	require.NoError(t, application.OutputResults(map[string]string{"key": "G"}))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "G", decoded["key"])
}

func TestCorpusFromFile(t *testing.T) {
	corpusFile := filepath.Join(t.TempDir(), "corpus.json")
	doc := `[{"title":"Let It Be","artist":"The Beatles","sections":[{"name":"verse","chords":["C","G","Am","F"]}]}]`
	require.NoError(t, os.WriteFile(corpusFile, []byte(doc), 0o644))

	application := newTestApp(t, &Context{CorpusFile: corpusFile})

	corpus, err := application.Corpus()
	require.NoError(t, err)
	require.Len(t, corpus, 1)
	assert.Equal(t, "Let It Be", corpus[0].Title)
	assert.Equal(t, "corpus-0", corpus[0].ID)
	require.Len(t, corpus[0].Sections, 1)
	assert.Len(t, corpus[0].Sections[0].Chords, 4)
}

func TestCorpusFromStore(t *testing.T) {
	application := newTestApp(t, &Context{})

	store, err := application.Store()
	require.NoError(t, err)

	_, err = store.SaveSong(library.SongDocument{
		Title:  "Creep",
		Artist: "Radiohead",
		Sections: []library.SectionDocument{
			{Name: "verse", Chords: []string{"G", "B", "C", "Cm"}},
		},
	}.ToSong())
	require.NoError(t, err)

	corpus, err := application.Corpus()
	require.NoError(t, err)
	require.Len(t, corpus, 1)
	assert.Equal(t, "Creep", corpus[0].Title)
}
