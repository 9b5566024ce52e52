package contract

import (
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	MaxCompareItems    = 4
	DefaultGeocodeURL  = "https://api.postcodes.io"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for every command.
// This struct is the "final, validated" config.
type Config struct {
	ResultLimit int
	Workers     int
	Output      schema.OutputMode
	OutputFile  string
	SortBy      schema.SortMode
	Detail      bool
	Width       int // Terminal width override (0 = auto-detect)

	// CatalogPath is empty when the built-in catalogue is used.
	CatalogPath string
	Catalog     *catalog.Catalog

	// WeightOverrides come from the config file and --weights-override, and
	// take precedence over stored settings.
	WeightOverrides schema.Weights

	RecordBackend   schema.DatabaseBackend
	RecordDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	WorkPostcode string
	Geocode      bool
	GeocodeURL   string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile       string `mapstructure:"output-file"`
	Limit            int    `mapstructure:"limit"`
	Workers          int    `mapstructure:"workers"`
	Output           string `mapstructure:"output"`
	Sort             string `mapstructure:"sort"`
	Detail           bool   `mapstructure:"detail"`
	Width            int    `mapstructure:"width"`
	Catalog          string `mapstructure:"catalog"`
	RecordBackend    string `mapstructure:"record-backend"`
	RecordDBConnect  string `mapstructure:"record-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	WorkPostcode     string `mapstructure:"work-postcode"`
	Geocode          string `mapstructure:"geocode"`
	GeocodeURL       string `mapstructure:"geocode-url"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`
	WeightsStr       string `mapstructure:"weights-override"`

	// --- Custom weights from config file ---
	Weights map[string]int `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct. The catalogue is shared
// since it is immutable.
func (c *Config) Clone() *Config {
	clone := *c
	if c.WeightOverrides != nil {
		clone.WeightOverrides = make(schema.Weights, len(c.WeightOverrides))
		maps.Copy(clone.WeightOverrides, c.WeightOverrides)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processCatalog(cfg, input); err != nil {
		return err
	}
	if err := processWeightOverrides(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.MemoryBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates record and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Record Backend Validation ---
	cfg.RecordBackend = schema.DatabaseBackend(strings.ToLower(input.RecordBackend))
	if cfg.RecordBackend == "" {
		cfg.RecordBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidRecordBackends[cfg.RecordBackend]; !ok {
		return fmt.Errorf("invalid record backend '%s'. must be sqlite, mysql, postgresql, memory", input.RecordBackend)
	}
	cfg.RecordDBConnect = input.RecordDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RecordBackend, cfg.RecordDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// Validate that records and history use different SQLite files
	if cfg.RecordBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		recordDBPath := cfg.RecordDBConnect
		if recordDBPath == "" {
			recordDBPath = GetRecordDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if recordDBPath == historyDBPath {
			return fmt.Errorf("record and history storage must use different SQLite database files. Both resolve to %q", recordDBPath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.WorkPostcode = strings.TrimSpace(input.WorkPostcode)

	emojis, err := parseBoolOrDefault(input.Emoji, false)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := parseBoolOrDefault(input.Color, true)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	geocode, err := parseBoolOrDefault(input.Geocode, false)
	if err != nil {
		return fmt.Errorf("invalid --geocode value: %w", err)
	}
	cfg.Geocode = geocode
	cfg.GeocodeURL = strings.TrimRight(input.GeocodeURL, "/")
	if cfg.GeocodeURL == "" {
		cfg.GeocodeURL = DefaultGeocodeURL
	}

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Output and Sort Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	cfg.SortBy = schema.SortMode(strings.ToLower(input.Sort))
	if cfg.SortBy == "" {
		cfg.SortBy = schema.SortByScore
	}
	if _, ok := schema.ValidSortModes[cfg.SortBy]; !ok {
		return fmt.Errorf("invalid sort mode '%s'. must be score, name, created, price", input.Sort)
	}

	return nil
}

// parseBoolOrDefault is ParseBoolString with a fallback for unset values.
func parseBoolOrDefault(s string, def bool) (bool, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return ParseBoolString(s)
}

// processCatalog loads the catalogue from a file, or falls back to the built-in one.
func processCatalog(cfg *Config, input *ConfigRawInput) error {
	cfg.CatalogPath = strings.TrimSpace(input.Catalog)
	if cfg.CatalogPath == "" {
		cfg.Catalog = catalog.Default()
		return nil
	}
	c, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("invalid catalogue: %w", err)
	}
	cfg.Catalog = c
	return nil
}

// processWeightOverrides merges config-file weights with --weights-override,
// the flag taking precedence, and checks them against the catalogue.
func processWeightOverrides(cfg *Config, input *ConfigRawInput) error {
	overrides := make(schema.Weights, len(input.Weights))
	maps.Copy(overrides, input.Weights)

	if input.WeightsStr != "" {
		parsed, err := ParseWeightsString(input.WeightsStr)
		if err != nil {
			return fmt.Errorf("invalid --weights-override format: %w", err)
		}
		maps.Copy(overrides, parsed)
	}

	if err := ValidateWeights(cfg.Catalog, overrides); err != nil {
		return err
	}

	if len(overrides) > 0 {
		cfg.WeightOverrides = overrides
	}
	return nil
}

// ValidateWeights checks that every weight names a known category and is non-negative.
func ValidateWeights(c *catalog.Catalog, weights schema.Weights) error {
	for _, id := range slices.Sorted(maps.Keys(weights)) {
		if _, ok := c.Category(id); !ok {
			return fmt.Errorf("unknown category '%s' in weights", id)
		}
		if weights[id] < 0 {
			return fmt.Errorf("weight for category %s must be non-negative (received %d)", id, weights[id])
		}
	}
	return nil
}

// ParseWeightsString parses a string like "location:30,legal:5" (or with '=')
// into a weights map.
func ParseWeightsString(s string) (schema.Weights, error) {
	weights := make(schema.Weights)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, ok := strings.Cut(part, ":")
		if !ok {
			key, value, ok = strings.Cut(part, "=")
		}
		if !ok {
			return nil, fmt.Errorf("invalid weight format '%s', expected 'category:value'", part)
		}

		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return nil, fmt.Errorf("missing category in '%s'", part)
		}

		w, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid weight value '%s' for category %s: %w", value, key, err)
		}
		weights[key] = w
	}

	return weights, nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
