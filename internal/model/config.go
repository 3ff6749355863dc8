package model

import (
	"fmt"
	"time"

	"github.com/ppiankov/bacitit/internal/phoneme"
)

// Candidate modes
const (
	CandidatesWeighted = "weighted" // Consonants with recorded weight for the slot
	CandidatesAll      = "all"      // Every consonant in the inventory
)

// Candidate orders
const (
	OrderPhoneme = "phoneme" // Inventory order
	OrderWeight  = "weight"  // Descending weight, inventory order breaks ties
)

// Config holds all runtime configuration
type Config struct {
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// SearchConfig controls the enumeration and its external budget
type SearchConfig struct {
	Consonants       []string      `yaml:"consonants" mapstructure:"consonants"`               // Global consonant list, in order
	Vowels           []string      `yaml:"vowels" mapstructure:"vowels"`                       // Slot i uses vowels[i % len]
	Candidates       string        `yaml:"candidates" mapstructure:"candidates"`               // weighted | all
	Order            string        `yaml:"order" mapstructure:"order"`                         // phoneme | weight
	Timeout          time.Duration `yaml:"timeout" mapstructure:"timeout"`                     // Wall-clock budget, 0 = none
	MaxStates        int64         `yaml:"max_states" mapstructure:"max_states"`               // Examined-state budget, 0 = none
	ProgressInterval time.Duration `yaml:"progress_interval" mapstructure:"progress_interval"` // Min gap between progress lines
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool   `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool   `yaml:"include_footer" mapstructure:"include_footer"`
	JSON          string `yaml:"json" mapstructure:"json"`         // JSON report path, empty = skip
	Markdown      string `yaml:"markdown" mapstructure:"markdown"` // Markdown report path, empty = skip
	HTML          string `yaml:"html" mapstructure:"html"`         // HTML report path, empty = skip
}

// CacheConfig controls in-process memoization of prepared weights
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console | json
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Consonants:       names(phoneme.Consonants),
			Vowels:           names(phoneme.Vowels),
			Candidates:       CandidatesWeighted,
			Order:            OrderPhoneme,
			Timeout:          time.Minute,
			ProgressInterval: 5 * time.Second,
		},
		Output: OutputConfig{
			IncludeFooter: true,
			JSON:          "numerals.json",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Inventory parses the configured consonant and vowel lists
func (c *Config) Inventory() (phoneme.Inventory, error) {
	consonants, err := phoneme.ParseList(c.Search.Consonants)
	if err != nil {
		return phoneme.Inventory{}, fmt.Errorf("search.consonants: %w", err)
	}
	vowels, err := phoneme.ParseList(c.Search.Vowels)
	if err != nil {
		return phoneme.Inventory{}, fmt.Errorf("search.vowels: %w", err)
	}
	return phoneme.NewInventory(consonants, vowels)
}

// Validate reports configuration errors before any work starts
func (c *Config) Validate() error {
	if _, err := c.Inventory(); err != nil {
		return err
	}
	switch c.Search.Candidates {
	case CandidatesWeighted, CandidatesAll:
	default:
		return fmt.Errorf("search.candidates: unknown mode %q", c.Search.Candidates)
	}
	switch c.Search.Order {
	case OrderPhoneme, OrderWeight:
	default:
		return fmt.Errorf("search.order: unknown order %q", c.Search.Order)
	}
	if c.Search.Timeout < 0 {
		return fmt.Errorf("search.timeout: must not be negative")
	}
	if c.Search.MaxStates < 0 {
		return fmt.Errorf("search.max_states: must not be negative")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}

func names(ps []phoneme.Phoneme) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}
