// internal/words/words.go
//
// Themed word lists for puzzle generation.
//
// Responsibilities:
//   - Load theme files from a configured directory or fall back to the
//     embedded defaults under assets/themes.
//   - Expose lookups by slug, a stable listing, and a random pick.
//
// Theme file format (one entry per line):
//   # title: Purim
//   ESTHER|אסתר
//   HAMAN|המן
//
// The slug is the file name without ".txt". Words are upper-cased; lines
// whose word is not A–Z or is outside 3..MaxWordLength letters are skipped.
//
// Environment variables:
//   THEMES_DIR=/path/to/themes   (optional override of the embedded set)

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/robalobadob/wordsearch/assets"
	"github.com/robalobadob/wordsearch/internal/puzzle"
)

// MaxWordLength is the longest word that fits the default grid.
const MaxWordLength = puzzle.DefaultSize

var (
	ErrUnknownTheme = errors.New("unknown theme")
	ErrNoThemes     = errors.New("words: no themes loaded")
)

// Theme is a named word list.
type Theme struct {
	Slug    string         `json:"slug"`
	Title   string         `json:"title"`
	Entries []puzzle.Entry `json:"entries"`
}

var (
	mu     sync.RWMutex
	themes map[string]*Theme
	slugs  []string
)

// Init loads themes from dir, or the embedded defaults when dir is empty.
// It may be called again to reload.
func Init(dir string) error {
	var fsys fs.FS = assets.Themes()
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	loaded, err := Load(fsys)
	if err != nil {
		return err
	}
	if len(loaded) == 0 {
		return ErrNoThemes
	}

	mu.Lock()
	defer mu.Unlock()
	themes = make(map[string]*Theme, len(loaded))
	slugs = slugs[:0]
	for _, t := range loaded {
		themes[t.Slug] = t
		slugs = append(slugs, t.Slug)
	}
	sort.Strings(slugs)
	return nil
}

// Load parses every *.txt file at the root of fsys.
func Load(fsys fs.FS) ([]*Theme, error) {
	names, err := fs.Glob(fsys, "*.txt")
	if err != nil {
		return nil, err
	}
	out := make([]*Theme, 0, len(names))
	for _, name := range names {
		lines, err := assets.ReadLines(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read theme %s: %w", name, err)
		}
		slug := strings.TrimSuffix(path.Base(name), ".txt")
		t := &Theme{Slug: slug, Title: lines.Title}
		if t.Title == "" {
			t.Title = slug
		}
		seen := make(map[string]bool)
		for _, l := range lines.Lines {
			if e, ok := parseEntry(l); ok && !seen[e.Word] {
				seen[e.Word] = true
				t.Entries = append(t.Entries, e)
			}
		}
		if len(t.Entries) == 0 {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// parseEntry splits "WORD|label" and validates the word.
func parseEntry(line string) (puzzle.Entry, bool) {
	word, label, _ := strings.Cut(line, "|")
	w := puzzle.Normalize(word)
	if len(w) < puzzle.MinWordLength || len(w) > MaxWordLength || !isAlpha(w) {
		return puzzle.Entry{}, false
	}
	return puzzle.Entry{Word: w, Label: strings.TrimSpace(label)}, true
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Get returns the theme with the given slug.
func Get(slug string) (*Theme, error) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := themes[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, ErrUnknownTheme
	}
	return t, nil
}

// Themes lists loaded themes ordered by slug.
func Themes() []*Theme {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]*Theme, 0, len(slugs))
	for _, s := range slugs {
		out = append(out, themes[s])
	}
	return out
}

// At returns the i-th theme in slug order, wrapping around.
func At(i int) (*Theme, error) {
	mu.RLock()
	defer mu.RUnlock()
	if len(slugs) == 0 {
		return nil, ErrNoThemes
	}
	n := len(slugs)
	return themes[slugs[((i%n)+n)%n]], nil
}

// Random returns a cryptographically random theme.
func Random() (*Theme, error) {
	mu.RLock()
	n := len(slugs)
	mu.RUnlock()
	if n == 0 {
		return nil, ErrNoThemes
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return At(int(nBig.Int64()))
}

// Stats returns (themes, total entries).
func Stats() (themeCount int, entryCount int) {
	mu.RLock()
	defer mu.RUnlock()
	for _, t := range themes {
		entryCount += len(t.Entries)
	}
	return len(themes), entryCount
}
