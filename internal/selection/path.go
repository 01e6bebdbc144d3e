// internal/selection/path.go
//
// Selection-path engine.
// A Path is the ordered, duplicate-free run of cells a player has selected.
// Once it holds two cells the direction is fixed and every later cell must
// lie on the same straight ray from the start.
//
// Input sources (taps, pointer drags) are adapted onto the Engine interface
// in adapters.go; the policy for an off-ray cell is chosen by the adapter.

package selection

import "github.com/robalobadob/wordsearch/internal/puzzle"

// Policy decides what an off-ray cell does to an active path.
type Policy int

const (
	// Ignore leaves the path untouched (continuous drag).
	Ignore Policy = iota
	// Restart starts a new path at the cell (discrete taps).
	Restart
)

// Outcome reports what an input did to the path.
type Outcome string

const (
	Rejected  Outcome = "rejected"
	Started   Outcome = "started"
	Extended  Outcome = "extended"
	Restarted Outcome = "restarted"
)

// Engine is the input-source independent selection state machine.
type Engine interface {
	Start(c puzzle.Coord) bool
	Extend(c puzzle.Coord, policy Policy) Outcome
	End() []puzzle.Coord
	Cells() []puzzle.Coord
	Len() int
	Clear()
}

// Path implements Engine for a square grid of a fixed size.
type Path struct {
	size   int
	cells  []puzzle.Coord
	dr, dc int
}

// NewPath returns an empty path for a size x size grid.
func NewPath(size int) *Path {
	return &Path{size: size}
}

// Start seeds a new path with c. Out-of-bounds cells are ignored.
func (p *Path) Start(c puzzle.Coord) bool {
	if !p.inBounds(c) {
		return false
	}
	p.cells = append(p.cells[:0], c)
	p.dr, p.dc = 0, 0
	return true
}

// Extend adds c to the path when it continues the straight line, applying
// policy otherwise. An idle path is started at c.
func (p *Path) Extend(c puzzle.Coord, policy Policy) Outcome {
	if !p.inBounds(c) {
		return Rejected
	}
	switch len(p.cells) {
	case 0:
		p.Start(c)
		return Started
	case 1:
		first := p.cells[0]
		if c != first && chebyshev(first, c) == 1 {
			p.dr, p.dc = sign(c.Row-first.Row), sign(c.Col-first.Col)
			p.cells = append(p.cells, c)
			return Extended
		}
	default:
		last := p.cells[len(p.cells)-1]
		if k, ok := stepsAlong(last, c, p.dr, p.dc); ok {
			for i := 1; i <= k; i++ {
				next := last.Step(p.dr, p.dc, i)
				if !p.contains(next) {
					p.cells = append(p.cells, next)
				}
			}
			return Extended
		}
	}

	if policy == Restart {
		p.Start(c)
		return Restarted
	}
	return Rejected
}

// End returns the final path and clears it.
func (p *Path) End() []puzzle.Coord {
	out := p.Cells()
	p.Clear()
	return out
}

// Cells returns a copy of the current path.
func (p *Path) Cells() []puzzle.Coord {
	out := make([]puzzle.Coord, len(p.cells))
	copy(out, p.cells)
	return out
}

// Len is the number of selected cells.
func (p *Path) Len() int { return len(p.cells) }

// Clear drops the path.
func (p *Path) Clear() {
	p.cells = p.cells[:0]
	p.dr, p.dc = 0, 0
}

// Direction returns the fixed unit step, or (0, 0) before two cells are selected.
func (p *Path) Direction() (dr, dc int) { return p.dr, p.dc }

func (p *Path) inBounds(c puzzle.Coord) bool {
	return c.Row >= 0 && c.Row < p.size && c.Col >= 0 && c.Col < p.size
}

func (p *Path) contains(c puzzle.Coord) bool {
	for _, x := range p.cells {
		if x == c {
			return true
		}
	}
	return false
}

// stepsAlong returns k > 0 when to == from + k*(dr, dc).
func stepsAlong(from, to puzzle.Coord, dr, dc int) (int, bool) {
	drow, dcol := to.Row-from.Row, to.Col-from.Col
	k := 0
	switch {
	case dr != 0:
		k = drow / dr
		if k*dr != drow || k*dc != dcol {
			return 0, false
		}
	case dc != 0:
		k = dcol / dc
		if k*dc != dcol || drow != 0 {
			return 0, false
		}
	default:
		return 0, false
	}
	return k, k > 0
}

func chebyshev(a, b puzzle.Coord) int {
	return max(abs(a.Row-b.Row), abs(a.Col-b.Col))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
