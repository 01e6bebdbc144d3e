package puzzle

import (
	"testing"
)

var purimEntries = []Entry{
	{Word: "purim", Label: "פורים"},
	{Word: "ESTHER", Label: "אסתר"},
	{Word: "MORDECAI", Label: "מרדכי"},
	{Word: "HAMAN", Label: "המן"},
	{Word: "MEGILLAH", Label: "מגילה"},
	{Word: "GROGGER", Label: "רעשן"},
	{Word: "COSTUME", Label: "תחפושת"},
	{Word: "SHUSHAN", Label: "שושן"},
}

func TestGenerate_GridComplete(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		res, err := GenerateWithSeed(purimEntries, seed)
		if err != nil {
			t.Fatalf("seed %d: Generate: %v", seed, err)
		}
		if res.Grid.Size != DefaultSize {
			t.Fatalf("seed %d: Size %d, want %d", seed, res.Grid.Size, DefaultSize)
		}
		if !res.Grid.Complete() {
			t.Errorf("seed %d: grid has blank or non A-Z cells: %v", seed, res.Grid.Rows())
		}
	}
}

func TestGenerate_PlacementFidelity(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		res, err := GenerateWithSeed(purimEntries, seed)
		if err != nil {
			t.Fatalf("seed %d: Generate: %v", seed, err)
		}
		if len(res.Placed)+len(res.Dropped) != len(purimEntries) {
			t.Errorf("seed %d: placed %d + dropped %d, want %d",
				seed, len(res.Placed), len(res.Dropped), len(purimEntries))
		}
		for i, pw := range res.Placed {
			if got := res.Grid.ReadPath(pw.Cells); got != pw.Word {
				t.Errorf("seed %d: path of %s reads %q", seed, pw.Word, got)
			}
			if len(pw.Cells) != len(pw.Word) {
				t.Errorf("seed %d: %s has %d cells", seed, pw.Word, len(pw.Cells))
			}
			dr, dc := pw.Direction.Delta()
			for k := 1; k < len(pw.Cells); k++ {
				prev, cur := pw.Cells[k-1], pw.Cells[k]
				if cur.Row-prev.Row != dr || cur.Col-prev.Col != dc {
					t.Errorf("seed %d: %s step %d is (%d,%d), want (%d,%d)",
						seed, pw.Word, k, cur.Row-prev.Row, cur.Col-prev.Col, dr, dc)
				}
			}
			if pw.Cells[0] != pw.Start {
				t.Errorf("seed %d: %s first cell %v, want start %v", seed, pw.Word, pw.Cells[0], pw.Start)
			}
			for _, c := range pw.Cells {
				cell := res.Grid.Cells[c.Row][c.Col]
				if !cell.InWord {
					t.Errorf("seed %d: cell %v of %s not marked InWord", seed, c, pw.Word)
				}
				if !containsInt(cell.Words, i) {
					t.Errorf("seed %d: cell %v does not record word index %d", seed, c, i)
				}
			}
		}
	}
}

func TestGenerate_SharedCellsAgree(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		res, _ := GenerateWithSeed(purimEntries, seed)
		for r, row := range res.Grid.Cells {
			for c, cell := range row {
				for _, wi := range cell.Words {
					pw := res.Placed[wi]
					for k, pc := range pw.Cells {
						if pc.Row == r && pc.Col == c && pw.Word[k:k+1] != cell.Letter {
							t.Errorf("seed %d: %s expects %q at (%d,%d), grid has %q",
								seed, pw.Word, pw.Word[k:k+1], r, c, cell.Letter)
						}
					}
				}
			}
		}
	}
}

func TestGenerate_LongestFirst(t *testing.T) {
	res, _ := GenerateWithSeed(purimEntries, 7)
	for i := 1; i < len(res.Placed); i++ {
		if len(res.Placed[i].Word) > len(res.Placed[i-1].Word) {
			t.Errorf("placed %s before longer %s", res.Placed[i-1].Word, res.Placed[i].Word)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, _ := GenerateWithSeed(purimEntries, 42)
	b, _ := GenerateWithSeed(purimEntries, 42)
	ra, rb := a.Grid.Rows(), b.Grid.Rows()
	for i := range ra {
		if ra[i] != rb[i] {
			t.Fatalf("row %d differs: %q vs %q", i, ra[i], rb[i])
		}
	}
	if len(a.Placed) != len(b.Placed) {
		t.Fatalf("placed %d vs %d", len(a.Placed), len(b.Placed))
	}
}

func TestGenerator_SeedReproducesRandomGrid(t *testing.T) {
	g := New(DefaultOptions())
	if g.Seed() == 0 {
		t.Fatal("random generator reported seed 0")
	}
	a, err := g.Generate(purimEntries)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := GenerateWithSeed(purimEntries, g.Seed())
	ra, rb := a.Grid.Rows(), b.Grid.Rows()
	for i := range ra {
		if ra[i] != rb[i] {
			t.Fatalf("row %d differs: %q vs %q", i, ra[i], rb[i])
		}
	}
}

func TestGenerate_DropsInvalidWords(t *testing.T) {
	entries := []Entry{
		{Word: "OK"},                  // too short
		{Word: "ABCDEFGHIJK"},         // longer than grid
		{Word: "SHA'BAT"},             // not A-Z
		{Word: "ROSH HASHANAH"},       // space, too long
		{Word: "SEDER", Label: "סדר"}, // fine
	}
	res, err := GenerateWithSeed(entries, 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Placed) != 1 || res.Placed[0].Word != "SEDER" {
		t.Fatalf("Placed %+v, want only SEDER", res.Placed)
	}
	if len(res.Dropped) != 4 {
		t.Errorf("len(Dropped) %d, want 4", len(res.Dropped))
	}
}

func TestGenerate_UnplaceableWordIsDropped(t *testing.T) {
	// A 3x3 grid fits at most three disjoint rows; conflicting letters
	// force some of these nine words out.
	entries := []Entry{
		{Word: "AAA"}, {Word: "BBB"}, {Word: "CCC"},
		{Word: "DDD"}, {Word: "EEE"}, {Word: "FFF"},
		{Word: "GGG"}, {Word: "HHH"}, {Word: "III"},
	}
	res, err := New(&Options{Size: 3, Seed: 11}).Generate(entries)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Dropped) == 0 {
		t.Fatal("expected dropped words")
	}
	if len(res.Placed)+len(res.Dropped) != len(entries) {
		t.Errorf("placed %d + dropped %d, want %d", len(res.Placed), len(res.Dropped), len(entries))
	}
	if !res.Grid.Complete() {
		t.Error("grid should still be complete")
	}
}

func TestGenerate_EmptyInput(t *testing.T) {
	res, err := GenerateWithSeed(nil, 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Placed) != 0 {
		t.Errorf("len(Placed) %d, want 0", len(res.Placed))
	}
	if !res.Grid.Complete() {
		t.Error("empty-input grid should be filled")
	}
}

func TestGenerate_InvalidSize(t *testing.T) {
	_, err := New(&Options{Size: 2}).Generate(purimEntries)
	if err != ErrInvalidSize {
		t.Fatalf("err %v, want ErrInvalidSize", err)
	}
}

func TestGrid_PlaceRejectsConflict(t *testing.T) {
	g := NewGrid(5)
	if _, ok := g.Place(Entry{Word: "CAT"}, Coord{2, 0}, Horizontal, 0); !ok {
		t.Fatal("CAT should fit")
	}
	// CAR down column 0 ends on (2,0) which holds C, not R.
	if _, ok := g.Place(Entry{Word: "CAR"}, Coord{0, 0}, Vertical, 1); ok {
		t.Fatal("CAR should conflict at (2,0)")
	}
	// CAR up from (2,0) shares the C.
	pw, ok := g.Place(Entry{Word: "CAR"}, Coord{2, 0}, DiagonalUp, 1)
	if !ok {
		t.Fatal("CAR sharing C should fit")
	}
	if g.Letter(Coord{2, 0}) != "C" {
		t.Errorf("shared cell %q, want C", g.Letter(Coord{2, 0}))
	}
	if got := g.Cells[2][0].Words; len(got) != 2 {
		t.Errorf("shared cell words %v, want two indices", got)
	}
	if pw.Cells[2] != (Coord{0, 2}) {
		t.Errorf("last cell %v, want (0,2)", pw.Cells[2])
	}
	if _, ok := g.Place(Entry{Word: "TOOLONG"}, Coord{0, 0}, Horizontal, 2); ok {
		t.Error("word past the edge should not fit")
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func TestGenerate_RepeatedWordPlacedOnce(t *testing.T) {
	entries := []Entry{{Word: "SEDER", Label: "a"}, {Word: "seder", Label: "b"}, {Word: "MATZAH", Label: "c"}}
	res, err := GenerateWithSeed(entries, 1)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for _, pw := range res.Placed {
		if pw.Word == "SEDER" {
			n++
			if pw.Label != "a" {
				t.Errorf("Label %q, want first entry's label a", pw.Label)
			}
		}
	}
	if n != 1 {
		t.Errorf("SEDER placed %d times, want 1", n)
	}
	if len(res.Dropped) != 1 || res.Dropped[0].Word != "SEDER" || res.Dropped[0].Label != "b" {
		t.Errorf("Dropped %+v, want the repeated SEDER|b", res.Dropped)
	}
}

func TestNew_LeavesOptionsUntouched(t *testing.T) {
	opts := &Options{Size: DefaultSize, Seed: 3}
	g := New(opts)
	if opts.MaxAttempts != 0 {
		t.Errorf("caller's MaxAttempts %d, want 0", opts.MaxAttempts)
	}
	if g.options.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("generator MaxAttempts %d, want %d", g.options.MaxAttempts, DefaultMaxAttempts)
	}
}
