package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/HamStudy/vscroll/internal/core"
)

// Config represents the configuration file
type Config struct {
	Version        string                `yaml:"version"`
	Theme          string                `yaml:"theme,omitempty"`
	Dataset        *DatasetConfig        `yaml:"dataset,omitempty"`
	Layout         *LayoutConfig         `yaml:"layout,omitempty"`
	Virtualization *VirtualizationConfig `yaml:"virtualization,omitempty"`
}

// DatasetConfig shapes the generated demo grid
type DatasetConfig struct {
	Rows         *int   `yaml:"rows,omitempty"`
	Columns      *int   `yaml:"columns,omitempty"`
	WordsPerCell *int   `yaml:"wordsPerCell,omitempty"`
	Seed         *int64 `yaml:"seed,omitempty"`
}

// LayoutConfig defines cell geometry in terminal units
type LayoutConfig struct {
	RowEstimate *int `yaml:"rowEstimate,omitempty"`
	ColumnWidth *int `yaml:"columnWidth,omitempty"`
}

// VirtualizationConfig tunes the windowing engine
type VirtualizationConfig struct {
	RowOverscan    *int     `yaml:"rowOverscan,omitempty"`
	ColumnOverscan *int     `yaml:"columnOverscan,omitempty"`
	ScrollingDelay Duration `yaml:"scrollingDelay,omitempty"`
	CacheCapacity  *int     `yaml:"cacheCapacity,omitempty"`
}

// Duration is a time.Duration written as a Go duration string
type Duration struct {
	time.Duration
	Set bool
}

// UnmarshalYAML parses strings such as "150ms"
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	d.Duration = parsed
	d.Set = true
	return nil
}

// MarshalYAML writes the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// IsZero lets omitempty skip unset durations
func (d Duration) IsZero() bool {
	return !d.Set
}

// Loader handles configuration loading and management
type Loader struct {
	configDir string
	defaults  *Config
	user      *Config
	merged    *Config
	mu        sync.RWMutex
}

// NewLoader creates a new configuration loader
func NewLoader(configDir string) *Loader {
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config", "vscroll")
	}

	return &Loader{
		configDir: configDir,
		defaults:  getDefaultConfig(),
	}
}

// Path returns the location of the user configuration file
func (l *Loader) Path() string {
	return filepath.Join(l.configDir, "config.yaml")
}

// Load loads the user configuration if it exists
func (l *Loader) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := os.Stat(l.Path()); err == nil {
		userConfig, err := l.loadConfigFile(l.Path())
		if err != nil {
			return fmt.Errorf("failed to load user config: %w", err)
		}
		l.user = userConfig
	}

	l.merged = l.mergeConfigs(l.defaults, l.user)
	return nil
}

// LoadFile loads a specific configuration file and merges it over the defaults
func (l *Loader) LoadFile(path string) error {
	cfg, err := l.loadConfigFile(path)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.user = cfg
	l.merged = l.mergeConfigs(l.defaults, l.user)
	return nil
}

func (l *Loader) loadConfigFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return l.parseConfig(file)
}

// LoadString parses configuration from a string
func (l *Loader) LoadString(content string) (*Config, error) {
	return l.parseConfig(strings.NewReader(content))
}

func (l *Loader) parseConfig(r io.Reader) (*Config, error) {
	var config Config
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true) // Strict parsing

	if err := decoder.Decode(&config); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := l.validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// validateConfig fills defaults and reports every invalid value at once
func (l *Loader) validateConfig(config *Config) error {
	if config.Version == "" {
		config.Version = "1.0.0"
	}

	var errs []error
	positive := func(name string, v *int) {
		if v != nil && *v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, *v))
		}
	}
	nonNegative := func(name string, v *int) {
		if v != nil && *v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", name, *v))
		}
	}

	if d := config.Dataset; d != nil {
		nonNegative("dataset.rows", d.Rows)
		nonNegative("dataset.columns", d.Columns)
		positive("dataset.wordsPerCell", d.WordsPerCell)
	}
	if lc := config.Layout; lc != nil {
		positive("layout.rowEstimate", lc.RowEstimate)
		positive("layout.columnWidth", lc.ColumnWidth)
	}
	if v := config.Virtualization; v != nil {
		nonNegative("virtualization.rowOverscan", v.RowOverscan)
		nonNegative("virtualization.columnOverscan", v.ColumnOverscan)
		nonNegative("virtualization.cacheCapacity", v.CacheCapacity)
		if v.ScrollingDelay.Set && v.ScrollingDelay.Duration <= 0 {
			errs = append(errs, fmt.Errorf("virtualization.scrollingDelay must be positive, got %s", v.ScrollingDelay.Duration))
		}
	}

	return utilerrors.NewAggregate(errs)
}

// mergeConfigs merges user config over defaults
func (l *Loader) mergeConfigs(defaults, user *Config) *Config {
	if user == nil {
		return defaults
	}
	if defaults == nil {
		return user
	}

	merged := *defaults
	if user.Version != "" {
		merged.Version = user.Version
	}
	if user.Theme != "" {
		merged.Theme = user.Theme
	}
	if user.Dataset != nil {
		merged.Dataset = user.Dataset
	}
	if user.Layout != nil {
		merged.Layout = user.Layout
	}
	if user.Virtualization != nil {
		merged.Virtualization = user.Virtualization
	}
	return &merged
}

// Get returns the current configuration
func (l *Loader) Get() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.merged != nil {
		return l.merged
	}
	return l.defaults
}

// Apply copies every value set in the current configuration onto cfg. The
// built-in theme does not replace a color scheme chosen elsewhere.
func (l *Loader) Apply(cfg *core.Config) {
	c := l.Get()

	l.mu.RLock()
	user := l.user
	l.mu.RUnlock()
	if user != nil && user.Theme != "" {
		cfg.ColorScheme = user.Theme
	}
	if d := c.Dataset; d != nil {
		setInt(&cfg.Rows, d.Rows)
		setInt(&cfg.Columns, d.Columns)
		setInt(&cfg.WordsPerCell, d.WordsPerCell)
		if d.Seed != nil {
			cfg.Seed = *d.Seed
		}
	}
	if lc := c.Layout; lc != nil {
		setInt(&cfg.RowEstimate, lc.RowEstimate)
		setInt(&cfg.ColumnWidth, lc.ColumnWidth)
	}
	if v := c.Virtualization; v != nil {
		setInt(&cfg.RowOverscan, v.RowOverscan)
		setInt(&cfg.ColumnOverscan, v.ColumnOverscan)
		setInt(&cfg.CacheCapacity, v.CacheCapacity)
		if v.ScrollingDelay.Set {
			cfg.ScrollingDelay = v.ScrollingDelay.Duration
		}
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// Save writes the current configuration to the user configuration file
func (l *Loader) Save() error {
	l.mu.RLock()
	config := l.user
	if config == nil {
		config = l.merged
	}
	if config == nil {
		config = l.defaults
	}
	l.mu.RUnlock()

	if err := os.MkdirAll(l.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(l.Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Theme:   "default",
	}
}
