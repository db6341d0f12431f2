package main

import (
	goflag "flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/HamStudy/vscroll/internal/config"
	"github.com/HamStudy/vscroll/internal/core"
	"github.com/HamStudy/vscroll/internal/ui"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// CLIFlags holds all command-line flags
type CLIFlags struct {
	configFile string

	// Dataset flags
	rows         int
	columns      int
	wordsPerCell int
	seed         int64

	// Layout flags
	rowEstimate    int
	columnWidth    int
	rowOverscan    int
	columnOverscan int
	cacheCapacity  int
	colorScheme    string

	// Other flags
	version bool
	help    bool
}

// newFlagSet defines every flag on an isolated flag set. klog's flags are
// included and default to a log file so output does not corrupt the screen.
func newFlagSet(flags *CLIFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet("vscroll", pflag.ContinueOnError)

	fs.StringVarP(&flags.configFile, "config", "c", "", "Path to a configuration file (default ~/.config/vscroll/config.yaml)")

	fs.IntVar(&flags.rows, "rows", 0, "Number of generated rows")
	fs.IntVar(&flags.columns, "columns", 0, "Number of generated columns")
	fs.IntVar(&flags.wordsPerCell, "words", 0, "Number of words per cell")
	fs.Int64Var(&flags.seed, "seed", 0, "Seed of the generated dataset")

	fs.IntVar(&flags.rowEstimate, "row-estimate", 0, "Estimated row height in lines")
	fs.IntVar(&flags.columnWidth, "column-width", 0, "Column width in cells")
	fs.IntVar(&flags.rowOverscan, "row-overscan", -1, "Rows rendered beyond each edge of the window")
	fs.IntVar(&flags.columnOverscan, "column-overscan", -1, "Columns rendered beyond each edge of the window")
	fs.IntVar(&flags.cacheCapacity, "cache-capacity", -1, "Maximum measurements kept per axis, 0 for unbounded")
	fs.StringVar(&flags.colorScheme, "color-scheme", "", "Color scheme to use (default, light, high-contrast)")

	fs.BoolVar(&flags.version, "version", false, "Print version information and quit")
	fs.BoolVarP(&flags.help, "help", "h", false, "Show help message")

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	_ = klogFlags.Set("logtostderr", "false")
	_ = klogFlags.Set("log_file", defaultLogFile())
	fs.AddGoFlagSet(klogFlags)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "vscroll - virtualized grid scrolling demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  vscroll [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  # Scroll a 10000 row grid\n")
		fmt.Fprintf(os.Stderr, "  vscroll --rows=10000\n\n")
		fmt.Fprintf(os.Stderr, "  # Narrow columns with verbose engine logs\n")
		fmt.Fprintf(os.Stderr, "  vscroll --column-width=16 -v=4\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeyboard Shortcuts:\n")
		fmt.Fprintf(os.Stderr, "  j/k        - Move selection down/up\n")
		fmt.Fprintf(os.Stderr, "  h/l        - Scroll left/right\n")
		fmt.Fprintf(os.Stderr, "  g/G        - Go to top/bottom\n")
		fmt.Fprintf(os.Stderr, "  space      - Mark row\n")
		fmt.Fprintf(os.Stderr, "  r          - Reverse rows\n")
		fmt.Fprintf(os.Stderr, "  ?          - Show help\n")
		fmt.Fprintf(os.Stderr, "  q/Ctrl+C   - Quit\n")
	}
	return fs
}

func defaultLogFile() string {
	return filepath.Join(os.TempDir(), "vscroll.log")
}

func main() {
	flags := &CLIFlags{}
	fs := newFlagSet(flags)
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	defer klog.Flush()

	if flags.version {
		fmt.Printf("vscroll version %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
		return
	}
	if flags.help {
		fs.Usage()
		return
	}

	cfg, err := loadConfigWithFlags(flags, fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		klog.ErrorS(err, "Failed to load configuration")
		klog.FlushAndExit(klog.ExitFlushTimeout, 1)
	}
	klog.InfoS("Starting vscroll", "version", Version, "rows", cfg.Rows, "columns", cfg.Columns)

	state := core.NewState(cfg)
	app, err := ui.NewApp(state, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create application: %v\n", err)
		klog.FlushAndExit(klog.ExitFlushTimeout, 1)
	}
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	app.SetProgram(p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		klog.ErrorS(err, "Error running application")
		klog.FlushAndExit(klog.ExitFlushTimeout, 1)
	}
}

// loadConfigWithFlags builds the configuration from defaults, the
// environment, the configuration file and the flags, in that order
func loadConfigWithFlags(flags *CLIFlags, fs *pflag.FlagSet) (*core.Config, error) {
	cfg, err := core.LoadConfig()
	if err != nil {
		return nil, err
	}

	loader := config.NewLoader("")
	if flags.configFile != "" {
		err = loader.LoadFile(flags.configFile)
	} else {
		err = loader.Load()
	}
	if err != nil {
		return nil, err
	}
	loader.Apply(cfg)

	if fs.Changed("rows") {
		cfg.Rows = flags.rows
	}
	if fs.Changed("columns") {
		cfg.Columns = flags.columns
	}
	if fs.Changed("words") {
		cfg.WordsPerCell = flags.wordsPerCell
	}
	if fs.Changed("seed") {
		cfg.Seed = flags.seed
	}
	if fs.Changed("row-estimate") {
		cfg.RowEstimate = flags.rowEstimate
	}
	if fs.Changed("column-width") {
		cfg.ColumnWidth = flags.columnWidth
	}
	if fs.Changed("row-overscan") {
		cfg.RowOverscan = flags.rowOverscan
	}
	if fs.Changed("column-overscan") {
		cfg.ColumnOverscan = flags.columnOverscan
	}
	if fs.Changed("cache-capacity") {
		cfg.CacheCapacity = flags.cacheCapacity
	}
	if fs.Changed("color-scheme") {
		cfg.ColorScheme = flags.colorScheme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
