package configs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// SetDefaults sets default configuration values for all components
func SetDefaults(v *viper.Viper) {
	// Search defaults
	v.SetDefault("search.exact_match", false)
	v.SetDefault("search.case_sensitive", false)
	v.SetDefault("search.allow_transposition", true)
	v.SetDefault("search.max_subslice_length", 0)
	v.SetDefault("search.max_concurrency", 4)

	// Related-song defaults
	v.SetDefault("related.min_similarity", 0.3)
	v.SetDefault("related.max_results", 10)
	v.SetDefault("related.same_artist_bonus", 0.1)
	v.SetDefault("related.same_genre_bonus", 0.05)

	// Library defaults
	home, _ := os.UserHomeDir()
	v.SetDefault("library.database_path", filepath.Join(home, ".local", "share", "chord-scout", "library.db"))
	v.SetDefault("library.auto_migrate", true)

	// Server defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Output defaults
	v.SetDefault("output.precision", 3)
	v.SetDefault("output.include_metadata", true)
	v.SetDefault("output.pretty", true)
	v.SetDefault("output.colors", true)

	// Application defaults
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", "table")
}

// GetDefaultConfig returns a Config struct with all default values set
func GetDefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		// Application settings defaults
		Verbose:      false,
		LogLevel:     "info",
		OutputFormat: "table",
		ConfigDir:    filepath.Join(home, ".config", "chord-scout"),
		DataDir:      filepath.Join(home, ".local", "share", "chord-scout"),

		Search:  GetDefaultSearchConfig(),
		Related: GetDefaultRelatedConfig(),
		Library: GetDefaultLibraryConfig(),
		Server:  GetDefaultServerConfig(),
		Output:  GetDefaultOutputConfig(),
	}
}

// GetDefaultSearchConfig returns default progression search settings
func GetDefaultSearchConfig() SearchConfig {
	return SearchConfig{
		ExactMatch:         false,
		CaseSensitive:      false,
		AllowTransposition: true,
		MaxSubsliceLength:  0,
		MaxConcurrency:     4,
	}
}

// GetDefaultRelatedConfig returns default related-song scoring settings
func GetDefaultRelatedConfig() RelatedConfig {
	return RelatedConfig{
		MinSimilarity:   0.3,
		MaxResults:      10,
		SameArtistBonus: 0.1,
		SameGenreBonus:  0.05,
	}
}

// GetDefaultLibraryConfig returns default song library storage settings
func GetDefaultLibraryConfig() LibraryConfig {
	home, _ := os.UserHomeDir()

	return LibraryConfig{
		DatabasePath: filepath.Join(home, ".local", "share", "chord-scout", "library.db"),
		AutoMigrate:  true,
	}
}

// GetDefaultServerConfig returns default HTTP server settings
func GetDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:            "127.0.0.1",
		Port:            8080,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		AllowedOrigins:  []string{"*"},
	}
}

// GetDefaultOutputConfig returns default output formatting settings
func GetDefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Precision:       3,
		IncludeMetadata: true,
		Pretty:          true,
		Colors:          true,
	}
}

// StrictSearchConfig returns search settings for exact, untransposed matching
func StrictSearchConfig() SearchConfig {
	return SearchConfig{
		ExactMatch:         true,
		CaseSensitive:      true,
		AllowTransposition: false,
		MaxSubsliceLength:  0,
		MaxConcurrency:     4,
	}
}

// LenientRelatedConfig returns relaxed related-song thresholds for discovery
func LenientRelatedConfig() RelatedConfig {
	return RelatedConfig{
		MinSimilarity:   0.15,
		MaxResults:      25,
		SameArtistBonus: 0.1,
		SameGenreBonus:  0.05,
	}
}
