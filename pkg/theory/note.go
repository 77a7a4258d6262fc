package theory

import (
	"fmt"
	"strings"
)

// Note represents one of the 12 chromatic pitch classes (0=C, 1=C#, ..., 11=B).
// All notes are stored using the sharp spelling so equality and transposition
// arithmetic stay trivial.
type Note int

const (
	NoteC Note = iota
	NoteCSharp
	NoteD
	NoteDSharp
	NoteE
	NoteF
	NoteFSharp
	NoteG
	NoteGSharp
	NoteA
	NoteASharp
	NoteB
)

// noteNames holds the canonical sharp spellings indexed by pitch class.
var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// letterOffsets maps natural note letters to their semitone offset from C.
var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

func (n Note) String() string {
	return noteNames[((int(n)%12)+12)%12]
}

// Transpose shifts the note by the given number of semitones. Arbitrary
// positive and negative shifts wrap modulo 12.
func (n Note) Transpose(semitones int) Note {
	return Note((((int(n) + semitones) % 12) + 12) % 12)
}

// Interval returns the chromatic interval from n up to other, in 0..11.
func (n Note) Interval(other Note) int {
	return ((int(other)-int(n))%12 + 12) % 12
}

// ParseNote parses a note name such as "C", "f#" or "Bb" into its pitch
// class. Flat spellings are canonicalized to sharps (Db -> C#).
func ParseNote(name string) (Note, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, newParseError(ErrCodeEmptyInput, name, "empty note name")
	}

	letter := s[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	offset, ok := letterOffsets[letter]
	if !ok {
		return 0, newParseError(ErrCodeInvalidRoot, name, fmt.Sprintf("invalid note letter %q", string(s[0])))
	}

	switch rest := s[1:]; rest {
	case "":
	case "#":
		offset++
	case "b":
		offset--
	default:
		return 0, newParseError(ErrCodeInvalidRoot, name, fmt.Sprintf("invalid accidental %q", rest))
	}

	return Note(((offset % 12) + 12) % 12), nil
}

// MustParseNote is a convenience for tests and literal keys; it panics on a
// malformed name.
func MustParseNote(name string) Note {
	n, err := ParseNote(name)
	if err != nil {
		panic(err)
	}
	return n
}
