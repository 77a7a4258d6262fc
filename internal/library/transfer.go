package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/chord-scout/pkg/progression"
	"github.com/RyanBlaney/chord-scout/pkg/theory"
)

// SongDocument is the interchange form of a song, with chords as plain
// symbols so documents stay hand-editable.
type SongDocument struct {
	ID       string            `json:"id,omitempty" yaml:"id,omitempty"`
	Title    string            `json:"title" yaml:"title"`
	Artist   string            `json:"artist" yaml:"artist"`
	Genre    string            `json:"genre,omitempty" yaml:"genre,omitempty"`
	Key      string            `json:"key,omitempty" yaml:"key,omitempty"`
	Sections []SectionDocument `json:"sections" yaml:"sections"`
}

// SectionDocument is the interchange form of one section.
type SectionDocument struct {
	Name   string   `json:"name" yaml:"name"`
	Chords []string `json:"chords" yaml:"chords"`
}

// ToSong converts a document into an engine song. Chord symbols that fail
// to parse are dropped; a missing key is detected from the chords.
func (d SongDocument) ToSong() progression.Song {
	song := progression.Song{
		ID:     d.ID,
		Title:  d.Title,
		Artist: d.Artist,
		Genre:  d.Genre,
	}
	for _, sec := range d.Sections {
		song.Sections = append(song.Sections, progression.NewSection(sec.Name, sec.Chords))
	}
	if key, err := theory.ParseNote(d.Key); err == nil {
		song.Key = key
	} else {
		song.Key = progression.DetectSongKey(song)
	}
	return song
}

// DocumentFromSong converts an engine song into its interchange form.
func DocumentFromSong(song progression.Song) SongDocument {
	doc := SongDocument{
		ID:     song.ID,
		Title:  song.Title,
		Artist: song.Artist,
		Genre:  song.Genre,
		Key:    song.Key.String(),
	}
	for _, sec := range song.Sections {
		symbols := make([]string, 0, len(sec.Chords))
		for _, chord := range sec.Chords {
			symbols = append(symbols, chord.String())
		}
		doc.Sections = append(doc.Sections, SectionDocument{Name: sec.Name, Chords: symbols})
	}
	return doc
}

// ReadDocuments reads song documents from a JSON or YAML file, chosen by
// extension.
func ReadDocuments(path string) ([]SongDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	var docs []SongDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &docs); err != nil {
			return nil, fmt.Errorf("parsing YAML import: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, fmt.Errorf("parsing JSON import: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported import format: %s", filepath.Ext(path))
	}
	return docs, nil
}

// ImportFile reads songs from a JSON or YAML file (chosen by extension) and
// stores them. Returns the number of songs imported.
func (s *Store) ImportFile(path string) (int, error) {
	docs, err := ReadDocuments(path)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, doc := range docs {
		if doc.Title == "" {
			continue
		}
		if _, err := s.SaveSong(doc.ToSong()); err != nil {
			return imported, fmt.Errorf("importing %q: %w", doc.Title, err)
		}
		imported++
	}
	return imported, nil
}

// ExportFile writes the full corpus to a JSON or YAML file (chosen by
// extension). Returns the number of songs exported.
func (s *Store) ExportFile(path string) (int, error) {
	songs, err := s.ListSongs()
	if err != nil {
		return 0, err
	}

	docs := make([]SongDocument, 0, len(songs))
	for _, song := range songs {
		docs = append(docs, DocumentFromSong(song))
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(docs)
	case ".json":
		data, err = json.MarshalIndent(docs, "", "  ")
	default:
		return 0, fmt.Errorf("unsupported export format: %s", filepath.Ext(path))
	}
	if err != nil {
		return 0, fmt.Errorf("encoding export: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing export file: %w", err)
	}
	return len(docs), nil
}
