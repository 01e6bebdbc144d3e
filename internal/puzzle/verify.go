package puzzle

// MinMatchLength is the shortest selection that can ever match a word.
const MinMatchLength = 3

// CheckForWord reports the first placed word, in placement order, that the
// selection path spells. The letters must match forward or reversed and the
// path must trace exactly the word's recorded cells in either direction, so a
// coincidental run of letters across crossing words never counts.
// Words already in found are skipped.
func CheckForWord(path []Coord, g *Grid, placed []PlacedWord, found map[string]bool) (PlacedWord, bool) {
	if len(path) < MinMatchLength || g == nil {
		return PlacedWord{}, false
	}
	for _, c := range path {
		if !g.InBounds(c) {
			return PlacedWord{}, false
		}
	}

	forward := g.ReadPath(path)
	backward := reverseString(forward)

	for _, pw := range placed {
		if found[pw.Word] {
			continue
		}
		if pw.Word != forward && pw.Word != backward {
			continue
		}
		if sameCells(path, pw.Cells) || sameCellsReversed(path, pw.Cells) {
			return pw, true
		}
	}
	return PlacedWord{}, false
}

func sameCells(a, b []Coord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameCellsReversed(a, b []Coord) bool {
	if len(a) != len(b) {
		return false
	}
	n := len(b)
	for i := range a {
		if a[i] != b[n-1-i] {
			return false
		}
	}
	return true
}

// reverseString reverses an ASCII string.
func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
