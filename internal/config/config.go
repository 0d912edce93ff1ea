// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// tokenpress.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.tokenpress/config.toml
//   - ~/.tokenpress/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/tokenpress/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete tokenpress configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`
	// Model is the model id used for cost attribution. When set it wins
	// over every environment-based detection source.
	Model string `toml:"model" json:"model"`

	// Compressor configuration
	Compressor CompressorConfig `toml:"compressor" json:"compressor"`

	// Stats configuration
	Stats StatsConfig `toml:"stats" json:"stats"`

	// Dashboard configuration
	Dashboard DashboardConfig `toml:"dashboard" json:"dashboard"`
}

// CompressorConfig configures how compression runs are executed.
type CompressorConfig struct {
	// Path is the compressor binary. Empty means "tpc" resolved via PATH.
	Path string `toml:"path" json:"path"`
	// Args are extra arguments passed before the level/format flags.
	Args []string `toml:"args" json:"args"`
	// DefaultLevel is the compression level when none is given: "full",
	// "signatures", "minimal"
	DefaultLevel string `toml:"default_level" json:"default_level"`
	// DefaultFormat is the output format when none is given: "text",
	// "summary", "json"
	DefaultFormat string `toml:"default_format" json:"default_format"`
	// TimeoutSecs bounds a single compression run. 0 means the default.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// MaxFileBytes skips files larger than this. 0 means unlimited.
	MaxFileBytes int64 `toml:"max_file_bytes" json:"max_file_bytes"`
}

// StatsConfig configures the usage-statistics store.
type StatsConfig struct {
	// DataDir overrides the directory holding usage.json (empty = ~/.tokenpress)
	DataDir string `toml:"data_dir" json:"data_dir"`
	// Enabled controls whether runs are recorded at all
	Enabled bool `toml:"enabled" json:"enabled"`
	// ReconcileSummary rebuilds the lifetime summary from the retained
	// tiers after every aggregation pass. Off by default: the summary is
	// a lifetime figure and normally survives pruning untouched.
	ReconcileSummary bool `toml:"reconcile_summary" json:"reconcile_summary"`
	// DetailLimit is the default number of per-record details shown
	DetailLimit int `toml:"detail_limit" json:"detail_limit"`
}

// DashboardConfig configures the live stats dashboard.
type DashboardConfig struct {
	// Theme is the dashboard theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// RefreshSecs is the periodic refresh interval for the dashboard
	RefreshSecs int `toml:"refresh_secs" json:"refresh_secs"`
	// ShowCost displays cost estimates alongside token counts
	ShowCost bool `toml:"show_cost" json:"show_cost"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "2.0",
		Model:   "",

		Compressor: CompressorConfig{
			Path:          "tpc",
			DefaultLevel:  "full",
			DefaultFormat: "text",
			TimeoutSecs:   60,
			MaxFileBytes:  0, // unlimited
		},

		Stats: StatsConfig{
			DataDir:          "",
			Enabled:          true,
			ReconcileSummary: false,
			DetailLimit:      10,
		},

		Dashboard: DashboardConfig{
			Theme:       "dark",
			RefreshSecs: 5,
			ShowCost:    true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the tokenpress configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".tokenpress"), nil
}

// PathTOML returns the path to the TOML config file.
func PathTOML() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// PathJSON returns the path to the JSON config file.
func PathJSON() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// StatsPath returns the path to the usage statistics file, honoring the
// stats.data_dir override.
func (c *Config) StatsPath() (string, error) {
	dir := c.Stats.DataDir
	if dir == "" {
		var err error
		dir, err = Dir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "usage.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	tomlPath, err := PathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return loadAndFinish(cfg, tomlPath, LoadTOML)
		}
	}

	jsonPath, err := PathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return loadAndFinish(cfg, jsonPath, LoadJSON)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadAndFinish(cfg *Config, path string, load func(*Config, string) error) (*Config, error) {
	if err := load(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. JSON is selected by extension, everything else parses as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := PathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# tokenpress configuration file")
	fmt.Fprintln(file, "# Generated by tokenpress - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
// Atomic write with fsync prevents data loss on crash.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	validLevels := map[string]bool{"full": true, "signatures": true, "minimal": true}
	if !validLevels[strings.ToLower(c.Compressor.DefaultLevel)] {
		errs = append(errs, ValidationError{
			Field:   "compressor.default_level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: full, signatures, minimal", c.Compressor.DefaultLevel),
		})
	}

	validFormats := map[string]bool{"text": true, "summary": true, "json": true}
	if !validFormats[strings.ToLower(c.Compressor.DefaultFormat)] {
		errs = append(errs, ValidationError{
			Field:   "compressor.default_format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: text, summary, json", c.Compressor.DefaultFormat),
		})
	}

	if c.Compressor.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "compressor.timeout_secs",
			Message: "must be non-negative",
		})
	}
	if c.Compressor.MaxFileBytes < 0 {
		errs = append(errs, ValidationError{
			Field:   "compressor.max_file_bytes",
			Message: "must be non-negative",
		})
	}

	if c.Stats.DetailLimit < 0 || c.Stats.DetailLimit > 100 {
		errs = append(errs, ValidationError{
			Field:   "stats.detail_limit",
			Message: fmt.Sprintf("detail_limit must be 0-100, got %d", c.Stats.DetailLimit),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.Dashboard.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "dashboard.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.Dashboard.Theme),
		})
	}
	if c.Dashboard.RefreshSecs < 1 || c.Dashboard.RefreshSecs > 3600 {
		errs = append(errs, ValidationError{
			Field:   "dashboard.refresh_secs",
			Message: fmt.Sprintf("refresh_secs must be 1-3600, got %d", c.Dashboard.RefreshSecs),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Compressor.Path == "" {
		c.Compressor.Path = defaults.Compressor.Path
	}
	if c.Compressor.DefaultLevel == "" {
		c.Compressor.DefaultLevel = defaults.Compressor.DefaultLevel
	}
	if c.Compressor.DefaultFormat == "" {
		c.Compressor.DefaultFormat = defaults.Compressor.DefaultFormat
	}
	if c.Compressor.TimeoutSecs == 0 {
		c.Compressor.TimeoutSecs = defaults.Compressor.TimeoutSecs
	}
	if c.Stats.DetailLimit == 0 {
		c.Stats.DetailLimit = defaults.Stats.DetailLimit
	}
	if c.Dashboard.Theme == "" {
		c.Dashboard.Theme = defaults.Dashboard.Theme
	}
	if c.Dashboard.RefreshSecs == 0 {
		c.Dashboard.RefreshSecs = defaults.Dashboard.RefreshSecs
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TOKENPRESS_MODEL: overrides model (cost attribution)
//   - TOKENPRESS_DATA_DIR: overrides stats.data_dir
//   - TOKENPRESS_COMPRESSOR: overrides compressor.path
//   - TOKENPRESS_NO_STATS: set to "1" or "true" to disable recording
//   - TOKENPRESS_LEVEL: overrides compressor.default_level
//   - TOKENPRESS_FORMAT: overrides compressor.default_format
//   - TOKENPRESS_RECONCILE: set to "1" or "true" to reconcile the summary
func (c *Config) ApplyEnvOverrides() {
	if model := os.Getenv("TOKENPRESS_MODEL"); model != "" {
		c.Model = model
	}
	if dir := os.Getenv("TOKENPRESS_DATA_DIR"); dir != "" {
		c.Stats.DataDir = dir
	}
	if bin := os.Getenv("TOKENPRESS_COMPRESSOR"); bin != "" {
		c.Compressor.Path = bin
	}
	if noStats := os.Getenv("TOKENPRESS_NO_STATS"); noStats != "" {
		c.Stats.Enabled = !(noStats == "1" || strings.ToLower(noStats) == "true")
	}
	if level := os.Getenv("TOKENPRESS_LEVEL"); level != "" {
		c.Compressor.DefaultLevel = level
	}
	if format := os.Getenv("TOKENPRESS_FORMAT"); format != "" {
		c.Compressor.DefaultFormat = format
	}
	if rec := os.Getenv("TOKENPRESS_RECONCILE"); rec != "" {
		c.Stats.ReconcileSummary = rec == "1" || strings.ToLower(rec) == "true"
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "stats.data_dir").
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return nil, errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field.Interface(), nil
		}

		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return nil, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return nil, fmt.Errorf("invalid key: %s", key)
}

// Set sets a configuration value using dot notation (e.g., "stats.data_dir").
func (c *Config) Set(key string, value interface{}) error {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if !field.CanSet() {
				return fmt.Errorf("cannot set field: %s", key)
			}
			return setFieldValue(field, value)
		}

		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field
// equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type
// conversion. String input converts to the field's kind so CLI `config set`
// can pass raw argument text.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"model",
		"compressor.path",
		"compressor.args",
		"compressor.default_level",
		"compressor.default_format",
		"compressor.timeout_secs",
		"compressor.max_file_bytes",
		"stats.data_dir",
		"stats.enabled",
		"stats.reconcile_summary",
		"stats.detail_limit",
		"dashboard.theme",
		"dashboard.refresh_secs",
		"dashboard.show_cost",
	}
}

// String returns a string representation of the config for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
			cfg.ApplyEnvOverrides()
			cfg.SetDefaults()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
