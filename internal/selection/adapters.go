package selection

import "github.com/robalobadob/wordsearch/internal/puzzle"

// ClickAdapter drives an Engine from discrete taps: the first tap starts a
// path, each later tap extends it, and a tap off the line starts over there.
type ClickAdapter struct {
	engine Engine
}

// NewClickAdapter wraps e.
func NewClickAdapter(e Engine) *ClickAdapter {
	return &ClickAdapter{engine: e}
}

// Tap applies a single tap on c.
func (a *ClickAdapter) Tap(c puzzle.Coord) Outcome {
	if a.engine.Len() == 0 {
		if a.engine.Start(c) {
			return Started
		}
		return Rejected
	}
	return a.engine.Extend(c, Restart)
}

// Bounds is the grid's on-screen bounding box.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CellAt maps a pointer position to the grid cell beneath it.
func (b Bounds) CellAt(x, y float64, size int) (puzzle.Coord, bool) {
	if size <= 0 || b.Width <= 0 || b.Height <= 0 {
		return puzzle.Coord{}, false
	}
	if x < b.X || y < b.Y || x >= b.X+b.Width || y >= b.Y+b.Height {
		return puzzle.Coord{}, false
	}
	col := int((x - b.X) / (b.Width / float64(size)))
	row := int((y - b.Y) / (b.Height / float64(size)))
	return puzzle.Coord{Row: min(row, size-1), Col: min(col, size-1)}, true
}

// DragAdapter drives an Engine from a press-move-release pointer gesture.
// Positions are resolved against the last reported grid bounds; cells that
// break the line are ignored until the pointer comes back onto it.
type DragAdapter struct {
	engine   Engine
	size     int
	bounds   Bounds
	dragging bool
}

// NewDragAdapter wraps e for a size x size grid.
func NewDragAdapter(e Engine, size int) *DragAdapter {
	return &DragAdapter{engine: e, size: size}
}

// SetBounds updates the grid's on-screen bounding box.
func (a *DragAdapter) SetBounds(b Bounds) { a.bounds = b }

// Dragging reports whether a gesture is in progress.
func (a *DragAdapter) Dragging() bool { return a.dragging }

// Down starts a gesture at (x, y).
func (a *DragAdapter) Down(x, y float64) Outcome {
	c, ok := a.bounds.CellAt(x, y, a.size)
	if !ok || !a.engine.Start(c) {
		return Rejected
	}
	a.dragging = true
	return Started
}

// Move extends the gesture to the cell under (x, y).
func (a *DragAdapter) Move(x, y float64) Outcome {
	if !a.dragging {
		return Rejected
	}
	c, ok := a.bounds.CellAt(x, y, a.size)
	if !ok {
		return Rejected
	}
	return a.engine.Extend(c, Ignore)
}

// Up finishes the gesture and returns the selected path.
func (a *DragAdapter) Up() []puzzle.Coord {
	if !a.dragging {
		return nil
	}
	a.dragging = false
	return a.engine.End()
}

// Cancel abandons the gesture without reading the path.
func (a *DragAdapter) Cancel() { a.dragging = false }
