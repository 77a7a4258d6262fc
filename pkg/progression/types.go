package progression

import (
	"github.com/RyanBlaney/chord-scout/pkg/theory"
)

// Section is a named passage of a song (verse, chorus, bridge) holding its
// chord progression. Order inside Chords is significant.
type Section struct {
	Name   string         `json:"name"`
	Chords []theory.Chord `json:"chords"`
}

// Song is a corpus entry. The engine treats the corpus as an externally
// supplied, read-only slice of songs; nothing here is mutated during a
// search.
type Song struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Artist   string      `json:"artist"`
	Genre    string      `json:"genre"`
	Key      theory.Note `json:"key"`
	Sections []Section   `json:"sections"`
}

// NewSection builds a section from raw chord symbols, dropping entries that
// fail to parse.
func NewSection(name string, symbols []string) Section {
	return Section{
		Name:   name,
		Chords: theory.ParseProgression(symbols),
	}
}

// DetectSongKey infers the key of a song from all of its sections combined.
func DetectSongKey(song Song) theory.Note {
	var all []theory.Chord
	for _, section := range song.Sections {
		all = append(all, section.Chords...)
	}
	return theory.DetectKey(all)
}
