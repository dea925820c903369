package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSideEliminated BookmarkType = "side_eliminated"
	BookmarkKillBurst      BookmarkType = "kill_burst"
	BookmarkStalemate      BookmarkType = "stalemate"
)

// stalemateWindows is how many quiet windows in a row make a stalemate.
const stalemateWindows = 3

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments of a fight.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	eliminated  [2]bool // side already reported as wiped out
	quietStreak int     // consecutive windows without hits
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkEliminated(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkKillBurst(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkStalemate(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkEliminated fires once when a side has no ships left, and re-arms
// when ships of that side fly again.
func (bd *BookmarkDetector) checkEliminated(stats WindowStats) *Bookmark {
	counts := [2]int{stats.AlliedShips, stats.HostileShips}
	names := [2]string{"allied", "hostile"}
	for side, n := range counts {
		if n > 0 {
			bd.eliminated[side] = false
			continue
		}
		if bd.eliminated[side] {
			continue
		}
		bd.eliminated[side] = true
		return &Bookmark{
			Type:        BookmarkSideEliminated,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%s side eliminated, %d %s ships remain", names[side], counts[1-side], names[1-side]),
		}
	}
	return nil
}

// checkKillBurst fires when losses in a window are at least twice the
// rolling average.
func (bd *BookmarkDetector) checkKillBurst(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 2 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.AlliedLosses + h.HostileLosses
	}
	avg := float64(total) / float64(len(history))
	current := stats.AlliedLosses + stats.HostileLosses
	if current < 2 || float64(current) < avg*2 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkKillBurst,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d ships lost in one window, average %.2f", current, avg),
	}
}

// checkStalemate fires once after several windows in which both sides
// fly but nobody lands a hit.
func (bd *BookmarkDetector) checkStalemate(stats WindowStats) *Bookmark {
	if stats.AlliedShips == 0 || stats.HostileShips == 0 || stats.AlliedHits+stats.HostileHits > 0 {
		bd.quietStreak = 0
		return nil
	}
	bd.quietStreak++
	if bd.quietStreak != stalemateWindows {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStalemate,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("no hits for %d windows", stalemateWindows),
	}
}
