package core

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	Rows           int
	Columns        int
	WordsPerCell   int
	Seed           int64
	RowEstimate    int // in lines
	ColumnWidth    int // in cells
	RowOverscan    int
	ColumnOverscan int
	ScrollingDelay time.Duration
	CacheCapacity  int
	ColorScheme    string
}

// LoadConfig loads the application configuration
func LoadConfig() (*Config, error) {
	config := &Config{
		Rows:           100,
		Columns:        100,
		WordsPerCell:   10,
		Seed:           1,
		RowEstimate:    3,
		ColumnWidth:    24,
		RowOverscan:    3,
		ColumnOverscan: 1,
		ScrollingDelay: 150 * time.Millisecond,
		ColorScheme:    "default",
	}

	ints := map[string]*int{
		"VSCROLL_ROWS":            &config.Rows,
		"VSCROLL_COLUMNS":         &config.Columns,
		"VSCROLL_ROW_ESTIMATE":    &config.RowEstimate,
		"VSCROLL_COLUMN_WIDTH":    &config.ColumnWidth,
		"VSCROLL_CACHE_CAPACITY":  &config.CacheCapacity,
		"VSCROLL_ROW_OVERSCAN":    &config.RowOverscan,
		"VSCROLL_COLUMN_OVERSCAN": &config.ColumnOverscan,
	}
	for name, target := range ints {
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
		*target = value
	}

	if raw := os.Getenv("VSCROLL_SCROLLING_DELAY"); raw != "" {
		delay, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid VSCROLL_SCROLLING_DELAY: %w", err)
		}
		config.ScrollingDelay = delay
	}

	if scheme := os.Getenv("VSCROLL_COLOR_SCHEME"); scheme != "" {
		config.ColorScheme = scheme
	}

	return config, nil
}

// Validate checks that the configuration describes a usable grid
func (c *Config) Validate() error {
	switch {
	case c.Rows < 0 || c.Columns < 0:
		return fmt.Errorf("rows and columns must not be negative")
	case c.RowEstimate <= 0:
		return fmt.Errorf("row estimate must be positive, got %d", c.RowEstimate)
	case c.ColumnWidth <= 0:
		return fmt.Errorf("column width must be positive, got %d", c.ColumnWidth)
	case c.RowOverscan < 0 || c.ColumnOverscan < 0:
		return fmt.Errorf("overscan must not be negative")
	case c.CacheCapacity < 0:
		return fmt.Errorf("cache capacity must not be negative")
	}
	return nil
}
