package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFlagsFromArgs(t *testing.T, args []string) (*CLIFlags, error) {
	t.Helper()
	flags := &CLIFlags{}
	fs := newFlagSet(flags)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, flags *CLIFlags)
	}{
		{
			name: "defaults",
			args: nil,
			validate: func(t *testing.T, flags *CLIFlags) {
				assert.Empty(t, flags.configFile)
				assert.Equal(t, -1, flags.rowOverscan)
				assert.False(t, flags.version)
			},
		},
		{
			name: "dataset flags",
			args: []string{"--rows=5000", "--columns", "40", "--seed=7"},
			validate: func(t *testing.T, flags *CLIFlags) {
				assert.Equal(t, 5000, flags.rows)
				assert.Equal(t, 40, flags.columns)
				assert.Equal(t, int64(7), flags.seed)
			},
		},
		{
			name: "config shorthand",
			args: []string{"-c", "/tmp/vscroll.yaml"},
			validate: func(t *testing.T, flags *CLIFlags) {
				assert.Equal(t, "/tmp/vscroll.yaml", flags.configFile)
			},
		},
		{
			name: "klog verbosity",
			args: []string{"-v=4", "--version"},
			validate: func(t *testing.T, flags *CLIFlags) {
				assert.True(t, flags.version)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := parseFlagsFromArgs(t, tt.args)
			require.NoError(t, err)
			tt.validate(t, flags)
		})
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	_, err := parseFlagsFromArgs(t, []string{"--namespace=default"})
	assert.Error(t, err)
}

func TestLoadConfigWithFlags(t *testing.T) {
	path := writeConfig(t, `
theme: light
dataset:
  rows: 300
  columns: 30
virtualization:
  rowOverscan: 5
  scrollingDelay: 250ms
`)

	t.Run("file values", func(t *testing.T) {
		flags := &CLIFlags{}
		fs := newFlagSet(flags)
		require.NoError(t, fs.Parse([]string{"--config", path}))

		cfg, err := loadConfigWithFlags(flags, fs)
		require.NoError(t, err)

		assert.Equal(t, 300, cfg.Rows)
		assert.Equal(t, 30, cfg.Columns)
		assert.Equal(t, 5, cfg.RowOverscan)
		assert.Equal(t, 250*time.Millisecond, cfg.ScrollingDelay)
		assert.Equal(t, "light", cfg.ColorScheme)
	})

	t.Run("flags override file", func(t *testing.T) {
		flags := &CLIFlags{}
		fs := newFlagSet(flags)
		require.NoError(t, fs.Parse([]string{"--config", path, "--rows=12", "--row-overscan=0", "--color-scheme=high-contrast"}))

		cfg, err := loadConfigWithFlags(flags, fs)
		require.NoError(t, err)

		assert.Equal(t, 12, cfg.Rows)
		assert.Equal(t, 30, cfg.Columns)
		assert.Equal(t, 0, cfg.RowOverscan)
		assert.Equal(t, "high-contrast", cfg.ColorScheme)
	})

	t.Run("environment below file", func(t *testing.T) {
		t.Setenv("VSCROLL_ROWS", "42")
		t.Setenv("VSCROLL_COLUMN_WIDTH", "18")

		flags := &CLIFlags{}
		fs := newFlagSet(flags)
		require.NoError(t, fs.Parse([]string{"--config", path}))

		cfg, err := loadConfigWithFlags(flags, fs)
		require.NoError(t, err)

		assert.Equal(t, 300, cfg.Rows)
		assert.Equal(t, 18, cfg.ColumnWidth)
	})

	t.Run("invalid flag values", func(t *testing.T) {
		flags := &CLIFlags{}
		fs := newFlagSet(flags)
		require.NoError(t, fs.Parse([]string{"--config", path, "--column-width=0"}))

		_, err := loadConfigWithFlags(flags, fs)
		assert.ErrorContains(t, err, "column width")
	})

	t.Run("missing config file", func(t *testing.T) {
		flags := &CLIFlags{}
		fs := newFlagSet(flags)
		require.NoError(t, fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))

		_, err := loadConfigWithFlags(flags, fs)
		assert.Error(t, err)
	})
}
