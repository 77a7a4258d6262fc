package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`
	ConfigDir    string `mapstructure:"config_dir"`
	DataDir      string `mapstructure:"data_dir"`

	// Progression search configuration
	Search SearchConfig `mapstructure:"search"`

	// Related-song scoring configuration
	Related RelatedConfig `mapstructure:"related"`

	// Song library storage configuration
	Library LibraryConfig `mapstructure:"library"`

	// HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`
}

// SearchConfig contains progression search settings
type SearchConfig struct {
	ExactMatch         bool `mapstructure:"exact_match"`
	CaseSensitive      bool `mapstructure:"case_sensitive"`
	AllowTransposition bool `mapstructure:"allow_transposition"`
	MaxSubsliceLength  int  `mapstructure:"max_subslice_length"`
	MaxConcurrency     int  `mapstructure:"max_concurrency"`
}

// RelatedConfig contains related-song scoring settings
type RelatedConfig struct {
	MinSimilarity   float64 `mapstructure:"min_similarity"`
	MaxResults      int     `mapstructure:"max_results"`
	SameArtistBonus float64 `mapstructure:"same_artist_bonus"`
	SameGenreBonus  float64 `mapstructure:"same_genre_bonus"`
}

// LibraryConfig contains song library storage settings
type LibraryConfig struct {
	DatabasePath string `mapstructure:"database_path"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Precision       int  `mapstructure:"precision"`
	IncludeMetadata bool `mapstructure:"include_metadata"`
	Pretty          bool `mapstructure:"pretty"`
	Colors          bool `mapstructure:"colors"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config.Search.MaxConcurrency <= 0 {
		return fmt.Errorf("search max concurrency must be positive")
	}

	if config.Search.MaxSubsliceLength < 0 {
		return fmt.Errorf("max subslice length cannot be negative")
	}

	if config.Related.MinSimilarity < 0 || config.Related.MinSimilarity > 1 {
		return fmt.Errorf("minimum similarity must be between 0 and 1")
	}

	if config.Related.MaxResults < 0 {
		return fmt.Errorf("max results cannot be negative")
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	return nil
}
