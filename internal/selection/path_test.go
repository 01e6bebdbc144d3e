package selection

import (
	"testing"

	"github.com/robalobadob/wordsearch/internal/puzzle"
)

func at(r, c int) puzzle.Coord { return puzzle.Coord{Row: r, Col: c} }

func assertPath(t *testing.T, got []puzzle.Coord, want ...puzzle.Coord) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("path %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("path %v, want %v", got, want)
		}
	}
}

// assertCollinear checks every consecutive pair shares one constant step.
func assertCollinear(t *testing.T, cells []puzzle.Coord) {
	t.Helper()
	if len(cells) < 2 {
		return
	}
	dr, dc := cells[1].Row-cells[0].Row, cells[1].Col-cells[0].Col
	for i := 2; i < len(cells); i++ {
		if cells[i].Row-cells[i-1].Row != dr || cells[i].Col-cells[i-1].Col != dc {
			t.Fatalf("path %v is not collinear at %d", cells, i)
		}
	}
}

func TestPath_StartAndNeighbour(t *testing.T) {
	p := NewPath(10)
	if !p.Start(at(4, 4)) {
		t.Fatal("Start in bounds returned false")
	}
	if got := p.Extend(at(5, 5), Ignore); got != Extended {
		t.Fatalf("Extend neighbour: %s, want extended", got)
	}
	dr, dc := p.Direction()
	if dr != 1 || dc != 1 {
		t.Errorf("Direction (%d,%d), want (1,1)", dr, dc)
	}
	assertPath(t, p.Cells(), at(4, 4), at(5, 5))
}

func TestPath_SecondCellMustBeNeighbour(t *testing.T) {
	p := NewPath(10)
	p.Start(at(0, 0))
	if got := p.Extend(at(0, 2), Ignore); got != Rejected {
		t.Fatalf("non-neighbour with Ignore: %s, want rejected", got)
	}
	assertPath(t, p.Cells(), at(0, 0))

	if got := p.Extend(at(0, 0), Ignore); got != Rejected {
		t.Fatalf("same cell: %s, want rejected", got)
	}
	if got := p.Extend(at(0, 2), Restart); got != Restarted {
		t.Fatalf("non-neighbour with Restart: %s, want restarted", got)
	}
	assertPath(t, p.Cells(), at(0, 2))
}

func TestPath_JumpFillsIntermediateCells(t *testing.T) {
	p := NewPath(10)
	p.Start(at(0, 0))
	p.Extend(at(0, 1), Ignore)
	if got := p.Extend(at(0, 4), Ignore); got != Extended {
		t.Fatalf("jump along ray: %s, want extended", got)
	}
	assertPath(t, p.Cells(), at(0, 0), at(0, 1), at(0, 2), at(0, 3), at(0, 4))
	assertCollinear(t, p.Cells())
}

func TestPath_OffRayPolicies(t *testing.T) {
	p := NewPath(10)
	p.Start(at(5, 0))
	p.Extend(at(4, 1), Ignore) // diagonal up

	if got := p.Extend(at(3, 3), Ignore); got != Rejected {
		t.Fatalf("off ray with Ignore: %s, want rejected", got)
	}
	assertPath(t, p.Cells(), at(5, 0), at(4, 1))

	// Behind the last cell is not a positive step.
	if got := p.Extend(at(5, 0), Ignore); got != Rejected {
		t.Fatalf("backwards with Ignore: %s, want rejected", got)
	}

	if got := p.Extend(at(2, 3), Ignore); got != Extended {
		t.Fatalf("on ray: %s, want extended", got)
	}
	assertPath(t, p.Cells(), at(5, 0), at(4, 1), at(3, 2), at(2, 3))
	assertCollinear(t, p.Cells())

	if got := p.Extend(at(9, 9), Restart); got != Restarted {
		t.Fatalf("off ray with Restart: %s, want restarted", got)
	}
	assertPath(t, p.Cells(), at(9, 9))
}

func TestPath_OutOfBoundsIgnored(t *testing.T) {
	p := NewPath(10)
	if p.Start(at(-1, 0)) {
		t.Error("Start out of bounds returned true")
	}
	p.Start(at(0, 9))
	if got := p.Extend(at(0, 10), Restart); got != Rejected {
		t.Fatalf("out of bounds extend: %s, want rejected", got)
	}
	assertPath(t, p.Cells(), at(0, 9))
}

func TestPath_EndClears(t *testing.T) {
	p := NewPath(10)
	p.Start(at(1, 1))
	p.Extend(at(2, 1), Ignore)
	got := p.End()
	assertPath(t, got, at(1, 1), at(2, 1))
	if p.Len() != 0 {
		t.Errorf("Len after End %d, want 0", p.Len())
	}
	if dr, dc := p.Direction(); dr != 0 || dc != 0 {
		t.Errorf("Direction after End (%d,%d), want (0,0)", dr, dc)
	}
}

func TestPath_IdleExtendStarts(t *testing.T) {
	p := NewPath(10)
	if got := p.Extend(at(3, 3), Ignore); got != Started {
		t.Fatalf("Extend on idle path: %s, want started", got)
	}
	assertPath(t, p.Cells(), at(3, 3))
}

func TestStepsAlong(t *testing.T) {
	cases := []struct {
		from, to puzzle.Coord
		dr, dc   int
		k        int
		ok       bool
	}{
		{at(0, 0), at(0, 3), 0, 1, 3, true},
		{at(0, 3), at(0, 0), 0, 1, -3, false},
		{at(2, 2), at(5, 5), 1, 1, 3, true},
		{at(2, 2), at(5, 4), 1, 1, 0, false},
		{at(5, 0), at(2, 3), -1, 1, 3, true},
		{at(1, 0), at(4, 0), 1, 0, 3, true},
		{at(1, 0), at(4, 1), 1, 0, 0, false},
		{at(1, 1), at(1, 1), 0, 1, 0, false},
	}
	for _, tc := range cases {
		k, ok := stepsAlong(tc.from, tc.to, tc.dr, tc.dc)
		if ok != tc.ok || (ok && k != tc.k) {
			t.Errorf("stepsAlong(%v,%v,%d,%d) = %d,%v; want %d,%v",
				tc.from, tc.to, tc.dr, tc.dc, k, ok, tc.k, tc.ok)
		}
	}
}
