// internal/puzzle/grid.go
//
// Grid model for the word search puzzle.
// Defines:
//   - Coord:      a (row, col) position on the grid.
//   - Direction:  one of the four placement orientations.
//   - Cell:       a single letter plus the placed words that cross it.
//   - Grid:       a square matrix of cells.
//   - PlacedWord: a word written into the grid along a recorded path.

package puzzle

import "strings"

// DefaultSize is the side length of a standard puzzle grid.
const DefaultSize = 10

// Coord addresses a single grid cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the coord k unit steps away along (dr, dc).
func (c Coord) Step(dr, dc, k int) Coord {
	return Coord{Row: c.Row + dr*k, Col: c.Col + dc*k}
}

// Direction is a placement orientation.
type Direction string

const (
	Horizontal   Direction = "horizontal"
	Vertical     Direction = "vertical"
	DiagonalDown Direction = "diagonal-down"
	DiagonalUp   Direction = "diagonal-up"
)

// Directions lists every supported orientation in a fixed order.
var Directions = []Direction{Horizontal, Vertical, DiagonalDown, DiagonalUp}

// Delta returns the unit (row, col) step for d.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Horizontal:
		return 0, 1
	case Vertical:
		return 1, 0
	case DiagonalDown:
		return 1, 1
	case DiagonalUp:
		return -1, 1
	}
	return 0, 0
}

// Cell holds one letter and the indices of the placed words that use it.
// Letter is empty only while the grid is still being generated.
type Cell struct {
	Letter string `json:"letter"`
	InWord bool   `json:"inWord"`
	Words  []int  `json:"words,omitempty"`
}

// Grid is a Size x Size matrix of cells, indexed [row][col].
type Grid struct {
	Size  int      `json:"size"`
	Cells [][]Cell `json:"cells"`
}

// PlacedWord records a word that was successfully written into the grid.
type PlacedWord struct {
	Word      string    `json:"word"`
	Label     string    `json:"label"`
	Start     Coord     `json:"start"`
	Direction Direction `json:"direction"`
	Cells     []Coord   `json:"cells"`
}

// Entry is a dictionary word offered to the generator.
type Entry struct {
	Word  string `json:"word"`
	Label string `json:"label"`
}

// NewGrid returns an empty grid of the given size.
func NewGrid(size int) *Grid {
	cells := make([][]Cell, size)
	for r := range cells {
		cells[r] = make([]Cell, size)
	}
	return &Grid{Size: size, Cells: cells}
}

// InBounds reports whether c addresses a cell of g.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Size && c.Col >= 0 && c.Col < g.Size
}

// Letter returns the letter at c, or "" when c is outside the grid.
func (g *Grid) Letter(c Coord) string {
	if !g.InBounds(c) {
		return ""
	}
	return g.Cells[c.Row][c.Col].Letter
}

// Complete reports whether every cell holds exactly one letter A–Z.
func (g *Grid) Complete() bool {
	for _, row := range g.Cells {
		for _, cell := range row {
			if len(cell.Letter) != 1 || cell.Letter[0] < 'A' || cell.Letter[0] > 'Z' {
				return false
			}
		}
	}
	return true
}

// Rows renders the grid as one string per row.
func (g *Grid) Rows() []string {
	out := make([]string, g.Size)
	var b strings.Builder
	for r, row := range g.Cells {
		b.Reset()
		for _, cell := range row {
			if cell.Letter == "" {
				b.WriteByte('.')
				continue
			}
			b.WriteString(cell.Letter)
		}
		out[r] = b.String()
	}
	return out
}

// ReadPath concatenates the letters along path in order.
func (g *Grid) ReadPath(path []Coord) string {
	var b strings.Builder
	for _, c := range path {
		b.WriteString(g.Letter(c))
	}
	return b.String()
}

// fits reports whether word can be written from start along (dr, dc)
// without leaving the grid or overwriting a different letter.
func (g *Grid) fits(word string, start Coord, dr, dc int) bool {
	for i := 0; i < len(word); i++ {
		c := start.Step(dr, dc, i)
		if !g.InBounds(c) {
			return false
		}
		if l := g.Cells[c.Row][c.Col].Letter; l != "" && l != word[i:i+1] {
			return false
		}
	}
	return true
}

// write commits word to the grid and returns the cells it occupies.
// Callers must check fits first.
func (g *Grid) write(word string, start Coord, dr, dc, index int) []Coord {
	cells := make([]Coord, len(word))
	for i := 0; i < len(word); i++ {
		c := start.Step(dr, dc, i)
		cell := &g.Cells[c.Row][c.Col]
		cell.Letter = word[i : i+1]
		cell.InWord = true
		cell.Words = append(cell.Words, index)
		cells[i] = c
	}
	return cells
}

// Place writes word from start along dir when it fits and returns the
// resulting PlacedWord. index is recorded against every cell it occupies.
func (g *Grid) Place(e Entry, start Coord, dir Direction, index int) (PlacedWord, bool) {
	word := Normalize(e.Word)
	dr, dc := dir.Delta()
	if word == "" || (dr == 0 && dc == 0) || !g.fits(word, start, dr, dc) {
		return PlacedWord{}, false
	}
	return PlacedWord{
		Word:      word,
		Label:     e.Label,
		Start:     start,
		Direction: dir,
		Cells:     g.write(word, start, dr, dc, index),
	}, true
}
