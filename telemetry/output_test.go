package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager() error: %v", err)
	}

	for _, end := range []int{600, 1200} {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: end, AlliedShots: 4, AlliedHits: 1}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkSideEliminated, Tick: 1200, Description: "hostile eliminated"}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	windows := readLines(t, filepath.Join(dir, "telemetry.csv"))
	if len(windows) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header + 2 rows", len(windows))
	}
	if !strings.HasPrefix(windows[0], "window_end") || !strings.HasPrefix(windows[2], "1200") {
		t.Errorf("telemetry.csv = %q", windows)
	}
	if marks := readLines(t, filepath.Join(dir, "bookmarks.csv")); len(marks) != 2 {
		t.Errorf("bookmarks.csv has %d lines, want header + 1 row", len(marks))
	}
	if _, err := os.Stat(filepath.Join(dir, "perf.csv")); err != nil {
		t.Errorf("perf.csv missing: %v", err)
	}
}

func TestNilOutputManagerDiscards(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteBookmark(Bookmark{}); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager should be inert")
	}
}
