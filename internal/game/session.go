// internal/game/session.go
//
// Session controller for a single word search puzzle.
// Responsibilities:
//   - Own the grid, placed words, selection path, and found set together.
//   - Translate taps and pointer gestures into selection-engine calls.
//   - Run the match verifier after every path extension.
//   - Lock input for FreezeDelay after a match, then clear the selection.
//   - Track elapsed time and completion.
//
// Notes:
//   - A session is the single writer of its state; all methods take s.mu.
//   - The freeze window is settled lazily by the next input or snapshot, so
//     no timer goroutine is needed per session.
//   - The target word count is the number of placed words, not the size of
//     the theme's word list.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/robalobadob/wordsearch/internal/puzzle"
	"github.com/robalobadob/wordsearch/internal/selection"
)

// Session holds the state of one puzzle instance.
type Session struct {
	mu sync.Mutex

	ID     string
	Theme  string
	Mode   Mode
	Date   string // YYYY-MM-DD for daily sessions
	Seed   int64
	Owner  string // user or anonymous id that started the session
	Placed []puzzle.PlacedWord
	// Dropped lists theme words the generator could not fit.
	Dropped []puzzle.Entry

	grid        *puzzle.Grid
	path        *selection.Path
	click       *selection.ClickAdapter
	drag        *selection.DragAdapter
	found       []FoundWord
	foundSet    map[string]bool
	processing  bool
	freezeUntil time.Time
	startedAt   time.Time
	finishedAt  time.Time
	touchedAt   time.Time
	now         func() time.Time
}

// Option customizes a new Session.
type Option func(*Session)

// WithClock replaces time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID fixes the session identifier.
func WithID(id string) Option {
	return func(s *Session) { s.ID = id }
}

// WithDaily marks the session as the daily puzzle for date.
func WithDaily(date string) Option {
	return func(s *Session) {
		s.Mode = ModeDaily
		s.Date = date
	}
}

// WithOwner records who started the session.
func WithOwner(owner string) Option {
	return func(s *Session) { s.Owner = owner }
}

// WithSeed records the generator seed the grid came from.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.Seed = seed }
}

// NewSession starts a session over a generated puzzle.
func NewSession(theme string, res *puzzle.Result, opts ...Option) *Session {
	s := &Session{
		ID:    randomID(),
		Theme: theme,
		Mode:  ModeNormal,
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.load(res)
	return s
}

// Reset discards the current puzzle and starts over on res (refresh).
func (s *Session) Reset(res *puzzle.Result, seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Seed = seed
	s.load(res)
}

func (s *Session) load(res *puzzle.Result) {
	s.grid = res.Grid
	s.Placed = res.Placed
	s.Dropped = res.Dropped
	s.path = selection.NewPath(res.Grid.Size)
	s.click = selection.NewClickAdapter(s.path)
	s.drag = selection.NewDragAdapter(s.path, res.Grid.Size)
	s.found = nil
	s.foundSet = make(map[string]bool)
	s.processing = false
	s.freezeUntil = time.Time{}
	s.startedAt = s.now()
	s.finishedAt = time.Time{}
	s.touchedAt = s.startedAt
}

// Tap applies a discrete tap on c.
func (s *Session) Tap(c puzzle.Coord) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if s.blockedLocked(now) {
		return s.droppedLocked()
	}
	return s.afterInputLocked(s.click.Tap(c), now)
}

// PointerDown starts a drag at (x, y) within the grid's on-screen bounds.
func (s *Session) PointerDown(x, y float64, b selection.Bounds) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if s.blockedLocked(now) {
		return s.droppedLocked()
	}
	s.drag.SetBounds(b)
	return s.afterInputLocked(s.drag.Down(x, y), now)
}

// PointerMove extends the current drag to the cell under (x, y).
func (s *Session) PointerMove(x, y float64) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if s.blockedLocked(now) {
		return s.droppedLocked()
	}
	return s.afterInputLocked(s.drag.Move(x, y), now)
}

// PointerUp ends the drag. An unmatched path is discarded.
func (s *Session) PointerUp() Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if s.blockedLocked(now) {
		return s.droppedLocked()
	}
	s.touchedAt = now
	s.drag.Up()
	return Event{Outcome: selection.Rejected, Path: []puzzle.Coord{}}
}

// blockedLocked reports whether input is frozen, settling an expired freeze.
func (s *Session) blockedLocked(now time.Time) bool {
	if !s.processing {
		return false
	}
	if now.Before(s.freezeUntil) {
		return true
	}
	s.settleLocked()
	return false
}

// settleLocked ends the post-match freeze: the selection clears and input unlocks.
func (s *Session) settleLocked() {
	s.path.Clear()
	s.drag.Cancel()
	s.processing = false
	s.freezeUntil = time.Time{}
}

func (s *Session) droppedLocked() Event {
	return Event{Outcome: selection.Rejected, Path: s.path.Cells(), Dropped: true}
}

// afterInputLocked runs the verifier when the path grew and records a match.
func (s *Session) afterInputLocked(out selection.Outcome, now time.Time) Event {
	s.touchedAt = now
	ev := Event{Outcome: out, Path: s.path.Cells()}
	if out != selection.Extended {
		return ev
	}
	pw, ok := puzzle.CheckForWord(ev.Path, s.grid, s.Placed, s.foundSet)
	if !ok {
		return ev
	}
	fw, added := s.recordFoundLocked(pw, now)
	if !added {
		return ev
	}
	ev.Match = &fw
	ev.Finished = !s.finishedAt.IsZero()
	s.processing = true
	s.freezeUntil = now.Add(FreezeDelay)
	return ev
}

// recordFoundLocked adds pw to the found set once; later calls are no-ops.
func (s *Session) recordFoundLocked(pw puzzle.PlacedWord, now time.Time) (FoundWord, bool) {
	if s.foundSet[pw.Word] {
		return FoundWord{}, false
	}
	fw := FoundWord{
		Word:    pw.Word,
		Label:   pw.Label,
		Color:   Palette[len(s.found)%len(Palette)],
		Cells:   append([]puzzle.Coord(nil), pw.Cells...),
		FoundAt: now,
	}
	s.found = append(s.found, fw)
	s.foundSet[pw.Word] = true
	if len(s.found) == len(s.Placed) && s.finishedAt.IsZero() {
		s.finishedAt = now
	}
	return fw, true
}

// Found returns the found words in the order they were matched.
func (s *Session) Found() []FoundWord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FoundWord(nil), s.found...)
}

// Finished reports whether every placed word has been found.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.finishedAt.IsZero()
}

// Elapsed is the time since the session started, frozen once finished.
func (s *Session) Elapsed(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked(now)
}

func (s *Session) elapsedLocked(now time.Time) time.Duration {
	end := now
	if !s.finishedAt.IsZero() {
		end = s.finishedAt
	}
	if end.Before(s.startedAt) {
		return 0
	}
	return end.Sub(s.startedAt)
}

// LastActivity is the time of the most recent input (or the start).
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

// Grid returns the puzzle grid. Callers must not mutate it.
func (s *Session) Grid() *puzzle.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid
}

// Snapshot returns a render-ready view, settling an expired freeze first.
func (s *Session) Snapshot(now time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing && !now.Before(s.freezeUntil) {
		s.settleLocked()
	}

	colors := make(map[string]FoundWord, len(s.found))
	for _, fw := range s.found {
		colors[fw.Word] = fw
	}
	views := make([]WordView, 0, len(s.Placed))
	for _, pw := range s.Placed {
		v := WordView{Word: pw.Word, Label: pw.Label}
		if fw, ok := colors[pw.Word]; ok {
			v.Found = true
			v.Color = fw.Color
			v.Cells = fw.Cells
		}
		views = append(views, v)
	}

	return Snapshot{
		ID:             s.ID,
		Theme:          s.Theme,
		Mode:           s.Mode,
		Date:           s.Date,
		Size:           s.grid.Size,
		Rows:           s.grid.Rows(),
		Words:          views,
		Selection:      s.path.Cells(),
		FoundCount:     len(s.found),
		Total:          len(s.Placed),
		ElapsedSeconds: int(s.elapsedLocked(now) / time.Second),
		Processing:     s.processing,
		Finished:       !s.finishedAt.IsZero(),
	}
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
