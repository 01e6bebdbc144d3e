package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed themes/*.txt
var FS embed.FS

// Themes returns the embedded theme files rooted at themes/.
func Themes() fs.FS {
	sub, err := fs.Sub(FS, "themes")
	if err != nil {
		panic(err)
	}
	return sub
}

// Lines is the parsed content of one theme file.
type Lines struct {
	Title string   // from a leading "# title:" comment, if any
	Lines []string // non-empty, non-comment lines, trimmed
}

// ReadLines reads name from fsys, skipping blanks and # comments.
func ReadLines(fsys fs.FS, name string) (Lines, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return Lines{}, err
	}
	defer f.Close()

	var out Lines
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		if strings.HasPrefix(s, "#") {
			if t, ok := strings.CutPrefix(strings.TrimSpace(s[1:]), "title:"); ok && out.Title == "" {
				out.Title = strings.TrimSpace(t)
			}
			continue
		}
		out.Lines = append(out.Lines, s)
	}
	return out, sc.Err()
}
