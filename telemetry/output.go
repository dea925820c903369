package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/dogfight/config"
)

// csvTable is one append-only CSV file. The header goes out with the first row.
type csvTable struct {
	name   string
	file   *os.File
	header bool
}

func openTable(dir, name string) (*csvTable, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvTable{name: name, file: f}, nil
}

func appendRow[T any](t *csvTable, row T) error {
	rows := []T{row}
	var err error
	if t.header {
		err = gocsv.MarshalWithoutHeaders(rows, t.file)
	} else {
		err = gocsv.Marshal(rows, t.file)
		t.header = err == nil
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", t.name, err)
	}
	return nil
}

// OutputManager records a run on disk: combat windows in telemetry.csv,
// tick timing in perf.csv, notable moments in bookmarks.csv and the config
// the run used. A nil manager discards everything.
type OutputManager struct {
	dir       string
	windows   *csvTable
	perf      *csvTable
	bookmarks *csvTable
}

// NewOutputManager creates dir and the run's CSV files. An empty dir
// disables output and returns a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, slot := range []struct {
		table **csvTable
		name  string
	}{
		{&om.windows, "telemetry.csv"},
		{&om.perf, "perf.csv"},
		{&om.bookmarks, "bookmarks.csv"},
	} {
		t, err := openTable(dir, slot.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*slot.table = t
	}
	return om, nil
}

// WriteConfig snapshots cfg as config.yaml next to the CSVs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends one combat window.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return appendRow(om.windows, stats)
}

// WritePerf appends the timing of the window ending at windowEnd.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int) error {
	if om == nil {
		return nil
	}
	return appendRow(om.perf, stats.ToCSV(windowEnd))
}

// WriteBookmark appends a bookmark.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return appendRow(om.bookmarks, b)
}

// Dir returns the output directory, or "" when output is off.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every file that was opened.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, t := range []*csvTable{om.windows, om.perf, om.bookmarks} {
		if t != nil {
			errs = append(errs, t.file.Close())
		}
	}
	return errors.Join(errs...)
}
