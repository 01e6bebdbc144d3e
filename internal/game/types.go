// internal/game/types.go
//
// Core type definitions for a word search session.
// Defines:
//   - FoundWord: a matched word with its highlight colour.
//   - Event:     the result of one input (tap or pointer event).
//   - Snapshot:  a render-ready view of the session that never leaks
//                the cells of words the player has not found yet.

package game

import (
	"time"

	"github.com/robalobadob/wordsearch/internal/puzzle"
	"github.com/robalobadob/wordsearch/internal/selection"
)

// Mode distinguishes free play from the shared daily puzzle.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeDaily  Mode = "daily"
)

// Palette colours found words by insertion order.
var Palette = []string{
	"#f87171", // red
	"#fb923c", // orange
	"#facc15", // yellow
	"#4ade80", // green
	"#2dd4bf", // teal
	"#60a5fa", // blue
	"#a78bfa", // violet
	"#f472b6", // pink
}

// FreezeDelay is how long input stays locked after a match so the
// highlight can play before the selection clears.
const FreezeDelay = 300 * time.Millisecond

// FoundWord is a placed word the player has matched.
type FoundWord struct {
	Word    string         `json:"word"`
	Label   string         `json:"label"`
	Color   string         `json:"color"`
	Cells   []puzzle.Coord `json:"cells"`
	FoundAt time.Time      `json:"foundAt"`
}

// Event describes the effect of one input on the session.
type Event struct {
	Outcome  selection.Outcome `json:"outcome"`
	Path     []puzzle.Coord    `json:"path"`
	Match    *FoundWord        `json:"match,omitempty"`
	Dropped  bool              `json:"dropped,omitempty"`  // input arrived during the freeze window
	Finished bool              `json:"finished,omitempty"` // this input found the last word
}

// WordView is one entry of the word list shown to the player.
type WordView struct {
	Word  string         `json:"word"`
	Label string         `json:"label"`
	Found bool           `json:"found"`
	Color string         `json:"color,omitempty"`
	Cells []puzzle.Coord `json:"cells,omitempty"` // only once found
}

// Snapshot is a consistent, render-ready view of the session.
type Snapshot struct {
	ID             string         `json:"id"`
	Theme          string         `json:"theme"`
	Mode           Mode           `json:"mode"`
	Date           string         `json:"date,omitempty"`
	Size           int            `json:"size"`
	Rows           []string       `json:"rows"`
	Words          []WordView     `json:"words"`
	Selection      []puzzle.Coord `json:"selection"`
	FoundCount     int            `json:"foundCount"`
	Total          int            `json:"total"`
	ElapsedSeconds int            `json:"elapsedSeconds"`
	Processing     bool           `json:"processing"`
	Finished       bool           `json:"finished"`
}
