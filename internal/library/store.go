// Package library persists the song corpus in a local SQLite database and
// handles bulk import/export of songs as JSON or YAML documents.
package library

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RyanBlaney/chord-scout/pkg/progression"
	"github.com/RyanBlaney/chord-scout/pkg/theory"
)

const DefaultDBFile = "library.db"

var errStoreNil = errors.New("library store is nil")

// Store wraps the SQLite-backed song library.
type Store struct {
	DB *gorm.DB
	db *sql.DB
}

// SongRecord is the persisted form of a song. Chord content lives in the
// associated SectionRecord rows.
type SongRecord struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Title     string `gorm:"uniqueIndex:idx_song_unique,priority:1" json:"title"`
	Artist    string `gorm:"uniqueIndex:idx_song_unique,priority:2" json:"artist"`
	Genre     string `gorm:"index:idx_genre" json:"genre"`
	Key       string `json:"key"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SectionRecord stores one named section of a song. Chords holds the chord
// symbols space-separated, in progression order.
type SectionRecord struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	SongID   string `gorm:"type:varchar(36);index:idx_section_song" json:"song_id"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Chords   string `json:"chords"`
}

// Open opens (creating if needed) the library database at dbPath.
func Open(dbPath string, autoMigrate bool) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !os.IsExist(err) {
		if filepath.Dir(dbPath) != "." {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if autoMigrate {
		if err := db.AutoMigrate(&SongRecord{}, &SectionRecord{}); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	return &Store{DB: db, db: sqlDB}, nil
}

// OpenInMemory opens an ephemeral in-memory library, used in tests.
func OpenInMemory() (*Store, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening in-memory db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	if err := db.AutoMigrate(&SongRecord{}, &SectionRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &Store{DB: db, db: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSong inserts or updates a song. A song with no ID gets a fresh UUID;
// a song whose title and artist already exist replaces the stored sections.
// Returns the song's ID.
func (s *Store) SaveSong(song progression.Song) (string, error) {
	if s == nil || s.DB == nil {
		return "", errStoreNil
	}

	var existing SongRecord
	err := s.DB.Where("title = ? AND artist = ?", song.Title, song.Artist).First(&existing).Error
	switch {
	case err == nil:
		song.ID = existing.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		if song.ID == "" {
			song.ID = uuid.NewString()
		}
	default:
		return "", fmt.Errorf("querying existing song: %w", err)
	}

	record := SongRecord{
		ID:     song.ID,
		Title:  song.Title,
		Artist: song.Artist,
		Genre:  song.Genre,
		Key:    song.Key.String(),
	}
	sections := make([]SectionRecord, 0, len(song.Sections))
	for i, section := range song.Sections {
		sections = append(sections, SectionRecord{
			SongID:   song.ID,
			Position: i,
			Name:     section.Name,
			Chords:   joinChords(section.Chords),
		})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("saving song: %w", err)
		}
		if err := tx.Where("song_id = ?", song.ID).Delete(&SectionRecord{}).Error; err != nil {
			return fmt.Errorf("clearing sections: %w", err)
		}
		if len(sections) > 0 {
			if err := tx.CreateInBatches(sections, 100).Error; err != nil {
				return fmt.Errorf("saving sections: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return song.ID, nil
}

// GetSong loads a single song by ID.
func (s *Store) GetSong(id string) (progression.Song, error) {
	if s == nil || s.DB == nil {
		return progression.Song{}, errStoreNil
	}

	var record SongRecord
	if err := s.DB.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return progression.Song{}, fmt.Errorf("song %s not found", id)
		}
		return progression.Song{}, fmt.Errorf("querying song: %w", err)
	}

	sections, err := s.sectionsFor(record.ID)
	if err != nil {
		return progression.Song{}, err
	}

	return fromRecord(record, sections), nil
}

// ListSongs loads the full corpus ordered by title then artist.
func (s *Store) ListSongs() ([]progression.Song, error) {
	if s == nil || s.DB == nil {
		return nil, errStoreNil
	}

	var records []SongRecord
	if err := s.DB.Order("title, artist").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("querying songs: %w", err)
	}

	var allSections []SectionRecord
	if err := s.DB.Find(&allSections).Error; err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	bySong := make(map[string][]SectionRecord)
	for _, sec := range allSections {
		bySong[sec.SongID] = append(bySong[sec.SongID], sec)
	}

	songs := make([]progression.Song, 0, len(records))
	for _, record := range records {
		sections := bySong[record.ID]
		sort.SliceStable(sections, func(i, j int) bool {
			return sections[i].Position < sections[j].Position
		})
		songs = append(songs, fromRecord(record, sections))
	}
	return songs, nil
}

// DeleteSong removes a song and its sections.
func (s *Store) DeleteSong(id string) error {
	if s == nil || s.DB == nil {
		return errStoreNil
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("song_id = ?", id).Delete(&SectionRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&SongRecord{}).Error; err != nil {
			return err
		}
		return nil
	})
}

// Count reports the number of stored songs.
func (s *Store) Count() (int64, error) {
	if s == nil || s.DB == nil {
		return 0, errStoreNil
	}
	var count int64
	if err := s.DB.Model(&SongRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting songs: %w", err)
	}
	return count, nil
}

func (s *Store) sectionsFor(songID string) ([]SectionRecord, error) {
	var sections []SectionRecord
	if err := s.DB.Where("song_id = ?", songID).Order("position").Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	return sections, nil
}

func fromRecord(record SongRecord, sections []SectionRecord) progression.Song {
	song := progression.Song{
		ID:     record.ID,
		Title:  record.Title,
		Artist: record.Artist,
		Genre:  record.Genre,
	}
	if key, err := theory.ParseNote(record.Key); err == nil {
		song.Key = key
	}
	for _, sec := range sections {
		song.Sections = append(song.Sections, progression.Section{
			Name:   sec.Name,
			Chords: theory.ParseProgression(strings.Fields(sec.Chords)),
		})
	}
	return song
}

func joinChords(chords []theory.Chord) string {
	symbols := make([]string, 0, len(chords))
	for _, chord := range chords {
		symbols = append(symbols, chord.String())
	}
	return strings.Join(symbols, " ")
}
