package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_SideEliminated(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{WindowEndTick: 600, AlliedShips: 3, HostileShips: 3})
	bms := bd.Check(WindowStats{WindowEndTick: 1200, AlliedShips: 2, HostileShips: 0})
	if !hasBookmark(bms, BookmarkSideEliminated) {
		t.Fatal("expected side_eliminated bookmark")
	}

	// Reported once while the side stays gone.
	bms = bd.Check(WindowStats{WindowEndTick: 1800, AlliedShips: 2, HostileShips: 0})
	if hasBookmark(bms, BookmarkSideEliminated) {
		t.Error("side_eliminated reported twice")
	}

	// Re-armed by a respawn.
	bd.Check(WindowStats{WindowEndTick: 2400, AlliedShips: 2, HostileShips: 1})
	bms = bd.Check(WindowStats{WindowEndTick: 3000, AlliedShips: 2, HostileShips: 0})
	if !hasBookmark(bms, BookmarkSideEliminated) {
		t.Error("expected side_eliminated after the side came back and fell again")
	}
}

func TestBookmarkDetector_KillBurst(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 4; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 600, AlliedShips: 3, HostileShips: 3, AlliedLosses: i % 2, AlliedHits: 1})
	}
	bms := bd.Check(WindowStats{WindowEndTick: 3000, AlliedShips: 3, HostileShips: 1, HostileLosses: 2, AlliedLosses: 1, AlliedHits: 6})
	if !hasBookmark(bms, BookmarkKillBurst) {
		t.Error("expected kill_burst bookmark")
	}
}

func TestBookmarkDetector_Stalemate(t *testing.T) {
	bd := NewBookmarkDetector(10)

	var fired int
	for i := 0; i < 6; i++ {
		bms := bd.Check(WindowStats{WindowEndTick: i * 600, AlliedShips: 3, HostileShips: 3})
		if hasBookmark(bms, BookmarkStalemate) {
			fired++
			if i != stalemateWindows-1 {
				t.Errorf("stalemate on window %d, want %d", i, stalemateWindows-1)
			}
		}
	}
	if fired != 1 {
		t.Errorf("stalemate fired %d times, want 1", fired)
	}
}
