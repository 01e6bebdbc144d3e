package game

import (
	"testing"
	"time"

	"github.com/robalobadob/wordsearch/internal/puzzle"
	"github.com/robalobadob/wordsearch/internal/selection"
)

// fakeClock is a manually advanced clock.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// fixedResult places PURIM across row 0 and HAMAN down column 9.
func fixedResult(t *testing.T) *puzzle.Result {
	t.Helper()
	g := puzzle.NewGrid(puzzle.DefaultSize)
	purim, ok := g.Place(puzzle.Entry{Word: "PURIM", Label: "פורים"}, puzzle.Coord{Row: 0, Col: 0}, puzzle.Horizontal, 0)
	if !ok {
		t.Fatal("place PURIM")
	}
	haman, ok := g.Place(puzzle.Entry{Word: "HAMAN", Label: "המן"}, puzzle.Coord{Row: 2, Col: 9}, puzzle.Vertical, 1)
	if !ok {
		t.Fatal("place HAMAN")
	}
	for r := range g.Cells {
		for c := range g.Cells[r] {
			if g.Cells[r][c].Letter == "" {
				g.Cells[r][c].Letter = "X"
			}
		}
	}
	return &puzzle.Result{
		Grid:    g,
		Placed:  []puzzle.PlacedWord{purim, haman},
		Dropped: []puzzle.Entry{{Word: "MORDECAI"}},
	}
}

func newTestSession(t *testing.T) (*Session, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	return NewSession("purim", fixedResult(t), WithClock(clk.now), WithID("test")), clk
}

func cell(r, c int) puzzle.Coord { return puzzle.Coord{Row: r, Col: c} }

func TestNewSession(t *testing.T) {
	s, clk := newTestSession(t)
	if s.ID != "test" {
		t.Errorf("ID %q, want test", s.ID)
	}
	if s.Mode != ModeNormal {
		t.Errorf("Mode %q, want normal", s.Mode)
	}
	snap := s.Snapshot(clk.now())
	if snap.Total != 2 {
		t.Errorf("Total %d, want 2 (placed, not the theme list)", snap.Total)
	}
	if len(snap.Rows) != puzzle.DefaultSize || snap.Rows[0][:5] != "PURIM" {
		t.Errorf("Rows %v", snap.Rows)
	}
	for _, w := range snap.Words {
		if len(w.Cells) != 0 {
			t.Errorf("unfound word %s exposes cells", w.Word)
		}
	}
}

func TestSession_TapMatch(t *testing.T) {
	s, clk := newTestSession(t)
	var ev Event
	for c := 0; c < 5; c++ {
		ev = s.Tap(cell(0, c))
	}
	if ev.Match == nil || ev.Match.Word != "PURIM" {
		t.Fatalf("Match %+v, want PURIM", ev.Match)
	}
	if ev.Match.Color != Palette[0] {
		t.Errorf("Color %q, want %q", ev.Match.Color, Palette[0])
	}
	if ev.Finished {
		t.Error("Finished after first of two words")
	}

	// Input during the freeze window is dropped.
	clk.advance(100 * time.Millisecond)
	if ev := s.Tap(cell(5, 5)); !ev.Dropped {
		t.Error("tap during freeze should be dropped")
	}
	if snap := s.Snapshot(clk.now()); !snap.Processing || len(snap.Selection) != 5 {
		t.Errorf("during freeze: Processing=%v Selection=%v", snap.Processing, snap.Selection)
	}

	// After the window the selection is cleared and input unlocks.
	clk.advance(FreezeDelay)
	snap := s.Snapshot(clk.now())
	if snap.Processing || len(snap.Selection) != 0 {
		t.Errorf("after freeze: Processing=%v Selection=%v", snap.Processing, snap.Selection)
	}
	if snap.FoundCount != 1 || !snap.Words[0].Found || len(snap.Words[0].Cells) != 5 {
		t.Errorf("after freeze: %+v", snap)
	}
	if ev := s.Tap(cell(5, 5)); ev.Dropped || ev.Outcome != selection.Started {
		t.Errorf("tap after freeze: %+v", ev)
	}
}

func TestSession_ReverseDragMatchAndFinish(t *testing.T) {
	s, clk := newTestSession(t)
	b := selection.Bounds{Width: 100, Height: 100} // 10px cells

	// PURIM traced right-to-left.
	s.PointerDown(45, 5, b)
	s.PointerMove(35, 5)
	ev := s.PointerMove(5, 5)
	if ev.Match == nil || ev.Match.Word != "PURIM" {
		t.Fatalf("reverse drag Match %+v, want PURIM", ev.Match)
	}
	clk.advance(FreezeDelay)
	s.PointerUp()

	// HAMAN bottom-up: (6,9) .. (2,9).
	clk.advance(5 * time.Second)
	s.PointerDown(95, 65, b)
	s.PointerMove(95, 55)
	ev = s.PointerMove(95, 25)
	if ev.Match == nil || ev.Match.Word != "HAMAN" {
		t.Fatalf("Match %+v, want HAMAN", ev.Match)
	}
	if ev.Match.Color != Palette[1] {
		t.Errorf("Color %q, want %q", ev.Match.Color, Palette[1])
	}
	if !ev.Finished || !s.Finished() {
		t.Error("session should be finished after last placed word")
	}

	elapsed := s.Elapsed(clk.now())
	clk.advance(time.Minute)
	if got := s.Elapsed(clk.now()); got != elapsed {
		t.Errorf("Elapsed moved after finish: %v -> %v", elapsed, got)
	}
	if snap := s.Snapshot(clk.now()); snap.FoundCount != snap.Total {
		t.Errorf("FoundCount %d, Total %d", snap.FoundCount, snap.Total)
	}
}

func TestSession_ReleaseWithoutMatchClears(t *testing.T) {
	s, clk := newTestSession(t)
	b := selection.Bounds{Width: 100, Height: 100}
	s.PointerDown(5, 5, b)
	s.PointerMove(15, 5)
	s.PointerMove(35, 5) // PURI
	s.PointerUp()
	snap := s.Snapshot(clk.now())
	if len(snap.Selection) != 0 || snap.FoundCount != 0 {
		t.Errorf("after release: Selection=%v FoundCount=%d", snap.Selection, snap.FoundCount)
	}
}

func TestSession_FoundSetIdempotent(t *testing.T) {
	s, clk := newTestSession(t)
	for c := 0; c < 5; c++ {
		s.Tap(cell(0, c))
	}
	clk.advance(FreezeDelay)
	// Select the same cells again.
	var ev Event
	for c := 0; c < 5; c++ {
		ev = s.Tap(cell(0, c))
	}
	if ev.Match != nil {
		t.Fatalf("re-selecting a found word matched again: %+v", ev.Match)
	}
	found := s.Found()
	if len(found) != 1 || found[0].Color != Palette[0] {
		t.Errorf("Found %+v, want PURIM once with first colour", found)
	}

	// Direct re-record is a no-op too.
	s.mu.Lock()
	_, added := s.recordFoundLocked(s.Placed[0], clk.now())
	s.mu.Unlock()
	if added {
		t.Error("recordFoundLocked added a duplicate")
	}
}

func TestSession_TwoCellPathNeverMatches(t *testing.T) {
	s, _ := newTestSession(t)
	s.Tap(cell(0, 0))
	if ev := s.Tap(cell(0, 1)); ev.Match != nil {
		t.Errorf("two-cell path matched %q", ev.Match.Word)
	}
}

func TestSession_Reset(t *testing.T) {
	s, clk := newTestSession(t)
	for c := 0; c < 5; c++ {
		s.Tap(cell(0, c))
	}
	clk.advance(time.Second)
	s.Reset(fixedResult(t), 99)
	snap := s.Snapshot(clk.now())
	if snap.FoundCount != 0 || snap.Processing || snap.ElapsedSeconds != 0 {
		t.Errorf("after reset: %+v", snap)
	}
	if s.Seed != 99 {
		t.Errorf("Seed %d, want 99", s.Seed)
	}
	if snap.ID != "test" {
		t.Errorf("ID changed to %q", snap.ID)
	}
}

func TestSession_Options(t *testing.T) {
	s := NewSession("pesach", fixedResult(t), WithDaily("2026-04-01"), WithOwner("u1"), WithSeed(7))
	if s.Mode != ModeDaily || s.Date != "2026-04-01" || s.Owner != "u1" || s.Seed != 7 {
		t.Errorf("options not applied: %+v", s)
	}
	if s.ID == "" {
		t.Error("ID is empty")
	}
}

func TestSession_RepeatedThemeWordStillFinishes(t *testing.T) {
	entries := []puzzle.Entry{{Word: "SEDER", Label: "a"}, {Word: "seder", Label: "b"}}
	res, err := puzzle.GenerateWithSeed(entries, 1)
	if err != nil {
		t.Fatal(err)
	}
	clk := &fakeClock{t: time.Date(2026, 4, 1, 20, 0, 0, 0, time.UTC)}
	s := NewSession("pesach", res, WithClock(clk.now))

	for _, pw := range s.Placed {
		for _, c := range pw.Cells {
			s.Tap(c)
		}
		clk.advance(FreezeDelay)
	}
	snap := s.Snapshot(clk.now())
	if !s.Finished() || snap.FoundCount != snap.Total || snap.Total != 1 {
		t.Errorf("found %d total %d finished %v, want 1/1/true", snap.FoundCount, snap.Total, s.Finished())
	}
}
