// internal/puzzle/generator.go
//
// Word placement engine.
// Responsibilities:
//   - Place each dictionary word at a random position/orientation without
//     overwriting a conflicting letter (words may cross on a shared letter).
//   - Report words that could not be placed within the attempt budget.
//   - Fill every untouched cell with a random letter A–Z.
//
// Placement is best effort: a word that never finds a free slot within
// MaxAttempts is dropped and listed in Result.Dropped.

package puzzle

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultMaxAttempts bounds random placement attempts per word.
	DefaultMaxAttempts = 100
	// MinWordLength is the shortest word the generator will place.
	MinWordLength = MinMatchLength
	// MinSize is the smallest grid that can hold a minimum-length word.
	MinSize = MinWordLength
)

var ErrInvalidSize = errors.New("grid size must be at least 3")

// Generator builds word search grids.
type Generator struct {
	options *Options
	seed    int64
	rng     *rand.Rand
}

// Result is the outcome of one generation run.
type Result struct {
	Grid    *Grid        `json:"grid"`
	Placed  []PlacedWord `json:"placed"`
	Dropped []Entry      `json:"dropped,omitempty"`
}

// New creates a generator with the given options.
func New(options *Options) *Generator {
	if options == nil {
		options = DefaultOptions()
	}
	opts := *options
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		options: &opts,
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed actually in use, so a random grid can be reproduced.
func (g *Generator) Seed() int64 { return g.seed }

// Generate places entries into a fresh grid and fills the remaining cells.
// Longer words are attempted first. A word that repeats an earlier entry
// keeps the first label; the repeats go to Dropped.
func (g *Generator) Generate(entries []Entry) (*Result, error) {
	size := g.options.Size
	if size < MinSize {
		return nil, ErrInvalidSize
	}

	grid := NewGrid(size)
	res := &Result{Grid: grid, Placed: []PlacedWord{}}

	candidates := make([]Entry, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		e.Word = Normalize(e.Word)
		if !validWord(e.Word, size) || seen[e.Word] {
			res.Dropped = append(res.Dropped, e)
			continue
		}
		seen[e.Word] = true
		candidates = append(candidates, e)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].Word) > len(candidates[j].Word)
	})

	for _, e := range candidates {
		pw, ok := g.place(grid, e, len(res.Placed))
		if !ok {
			res.Dropped = append(res.Dropped, e)
			continue
		}
		res.Placed = append(res.Placed, pw)
	}

	g.fill(grid)
	return res, nil
}

// place tries up to MaxAttempts random slots for e.
func (g *Generator) place(grid *Grid, e Entry, index int) (PlacedWord, bool) {
	n := len(e.Word)
	span := grid.Size - n + 1
	for attempt := 0; attempt < g.options.MaxAttempts; attempt++ {
		dir := Directions[g.rng.Intn(len(Directions))]
		if span <= 0 {
			continue
		}

		var start Coord
		switch dir {
		case Horizontal:
			start = Coord{Row: g.rng.Intn(grid.Size), Col: g.rng.Intn(span)}
		case Vertical:
			start = Coord{Row: g.rng.Intn(span), Col: g.rng.Intn(grid.Size)}
		case DiagonalDown:
			start = Coord{Row: g.rng.Intn(span), Col: g.rng.Intn(span)}
		case DiagonalUp:
			start = Coord{Row: n - 1 + g.rng.Intn(span), Col: g.rng.Intn(span)}
		}

		if pw, ok := grid.Place(e, start, dir, index); ok {
			return pw, true
		}
	}
	return PlacedWord{}, false
}

// fill writes an independent random letter into every empty cell.
func (g *Generator) fill(grid *Grid) {
	for r := range grid.Cells {
		for c := range grid.Cells[r] {
			if grid.Cells[r][c].Letter == "" {
				grid.Cells[r][c].Letter = string(rune('A' + g.rng.Intn(26)))
			}
		}
	}
}

// Normalize upper-cases w and strips surrounding whitespace.
func Normalize(w string) string {
	return strings.ToUpper(strings.TrimSpace(w))
}

// validWord reports whether w is A–Z only and can fit a grid of size.
func validWord(w string, size int) bool {
	if len(w) < MinWordLength || len(w) > size {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return false
		}
	}
	return true
}

// GenerateWithSeed is a convenience wrapper for a default-sized grid.
func GenerateWithSeed(entries []Entry, seed int64) (*Result, error) {
	opts := DefaultOptions()
	opts.Seed = seed
	return New(opts).Generate(entries)
}
