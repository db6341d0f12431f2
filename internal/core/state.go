package core

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

var words = []string{
	"amber", "anchor", "arrow", "atlas", "basin", "beacon", "birch", "bramble",
	"breeze", "canyon", "cedar", "cinder", "clover", "comet", "coral", "crest",
	"delta", "drift", "dune", "ember", "fable", "fern", "fjord", "flint",
	"frost", "glade", "granite", "harbor", "hazel", "heron", "island", "ivory",
	"juniper", "kelp", "lagoon", "lantern", "larch", "lumen", "maple", "marsh",
	"meadow", "mesa", "nectar", "nimbus", "oak", "orbit", "pebble", "pine",
	"prairie", "quartz", "quill", "raven", "reef", "ridge", "river", "saffron",
	"sage", "shale", "sierra", "slate", "spruce", "summit", "thistle", "tide",
	"timber", "tundra", "umber", "valley", "velvet", "willow", "wren", "zephyr",
}

// Cell is one grid cell of the dataset
type Cell struct {
	ID   string
	Text string
}

// Row is one grid row. ID is stable across reordering.
type Row struct {
	ID      string
	Columns []Cell
}

// State holds the application state
type State struct {
	mu sync.RWMutex

	rows     []Row
	columns  int
	reversed bool

	config *Config
}

// NewState creates a new application state with a generated dataset
func NewState(config *Config) *State {
	rng := rand.New(rand.NewSource(config.Seed))

	rows := make([]Row, config.Rows)
	for i := range rows {
		cells := make([]Cell, config.Columns)
		for j := range cells {
			cells[j] = Cell{ID: randomID(rng), Text: sentence(rng, config.WordsPerCell)}
		}
		rows[i] = Row{ID: randomID(rng), Columns: cells}
	}

	return &State{
		rows:    rows,
		columns: config.Columns,
		config:  config,
	}
}

// RowCount returns the number of rows
func (s *State) RowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// ColumnCount returns the number of columns
func (s *State) ColumnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.columns
}

// RowID returns the stable id of the row at index
func (s *State) RowID(index int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows[index].ID
}

// RowIDs returns every row id in display order
func (s *State) RowIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.rows))
	for i, row := range s.rows {
		ids[i] = row.ID
	}
	return ids
}

// CellAt returns the cell at row and column
func (s *State) CellAt(row, column int) Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows[row].Columns[column]
}

// Reverse reverses the row order and the column order within every row
func (s *State) Reverse() {
	s.mu.Lock()
	defer s.mu.Unlock()

	reversed := make([]Row, len(s.rows))
	for i, row := range s.rows {
		cells := make([]Cell, len(row.Columns))
		for j, cell := range row.Columns {
			cells[len(cells)-1-j] = cell
		}
		reversed[len(s.rows)-1-i] = Row{ID: row.ID, Columns: cells}
	}
	s.rows = reversed
	s.reversed = !s.reversed
}

// Reversed reports whether the dataset is currently reversed
func (s *State) Reversed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reversed
}

func randomID(rng *rand.Rand) string {
	return strconv.FormatInt(rng.Int63(), 36)
}

func sentence(rng *rand.Rand, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[rng.Intn(len(words))]
	}
	return strings.Join(parts, " ")
}
