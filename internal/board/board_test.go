package board

import (
	"errors"
	"testing"

	"github.com/ddanilov/tetrion/internal/tetromino"
)

// fillRow occupies a full row except for the listed gap columns.
func fillRow(t *testing.T, b *Board, y int, gaps ...int) {
	t.Helper()
	skip := make(map[int]bool, len(gaps))
	for _, g := range gaps {
		skip[g] = true
	}
	for x := 0; x < b.Width(); x++ {
		if !skip[x] {
			b.cells[y][x] = Cell(tetromino.KindJ)
		}
	}
}

func TestNewBoardEmpty(t *testing.T) {
	b := New(10, 20, 2)

	if b.Rows() != 22 {
		t.Fatalf("Rows() = %d, want 22", b.Rows())
	}
	for y := 0; y < b.Rows(); y++ {
		for x := 0; x < b.Width(); x++ {
			if !b.At(x, y).Empty() {
				t.Fatalf("cell (%d,%d) not empty on a new board", x, y)
			}
		}
	}
}

func TestCanPlaceBounds(t *testing.T) {
	b := New(10, 20, 2)

	// Horizontal I occupies box row 1, columns 0..3.
	if !b.CanPlace(tetromino.KindI, 0, 0, 0) {
		t.Error("I at origin should fit on an empty board")
	}
	if !b.CanPlace(tetromino.KindI, 0, 6, 0) {
		t.Error("I at x=6 should touch the right wall and fit")
	}
	if b.CanPlace(tetromino.KindI, 0, 7, 0) {
		t.Error("I at x=7 should collide with the right wall")
	}
	if b.CanPlace(tetromino.KindI, 0, -1, 0) {
		t.Error("I at x=-1 should collide with the left wall")
	}
	if b.CanPlace(tetromino.KindI, 0, 0, b.Rows()) {
		t.Error("piece below the floor should not fit")
	}
	// Above the top is allowed for collision purposes.
	if !b.CanPlace(tetromino.KindT, 0, 3, -1) {
		t.Error("piece partially above the grid should still be placeable")
	}
}

func TestCanPlaceCollision(t *testing.T) {
	b := New(10, 20, 2)
	b.cells[21][4] = Cell(tetromino.KindO)

	// T spawn occupies (x+1,y) and (x..x+2, y+1); its (5,21) cell hits.
	if b.CanPlace(tetromino.KindT, 0, 4, 20) {
		t.Error("T overlapping an occupied cell should not fit")
	}
	if !b.CanPlace(tetromino.KindT, 0, 0, 20) {
		t.Error("T away from the occupied cell should fit")
	}
}

func TestLockWritesCells(t *testing.T) {
	b := New(10, 20, 2)

	if err := b.Lock(tetromino.KindO, 0, 0, 19); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	for _, o := range tetromino.Cells(tetromino.KindO, 0) {
		c := b.At(0+o.X, 19+o.Y)
		if c.Empty() || c.Kind() != tetromino.KindO {
			t.Errorf("cell (%d,%d) = %v, want O", o.X, 19+o.Y, c)
		}
	}
}

func TestLockInvalid(t *testing.T) {
	b := New(10, 20, 2)
	if err := b.Lock(tetromino.KindO, 0, 0, 19); err != nil {
		t.Fatalf("first lock: %v", err)
	}

	err := b.Lock(tetromino.KindO, 0, 0, 19)
	if !errors.Is(err, ErrInvalidLock) {
		t.Fatalf("overlapping lock error = %v, want ErrInvalidLock", err)
	}
	// Failed lock must leave the board unchanged.
	if b.FullLines() != nil {
		t.Error("failed lock changed the board")
	}
}

func TestLockAboveTop(t *testing.T) {
	b := New(10, 20, 2)

	err := b.Lock(tetromino.KindT, 0, 3, -1)
	if !errors.Is(err, ErrToppedOut) {
		t.Fatalf("lock above the grid error = %v, want ErrToppedOut", err)
	}
	for y := 0; y < b.Rows(); y++ {
		for x := 0; x < b.Width(); x++ {
			if !b.At(x, y).Empty() {
				t.Fatalf("topped-out lock wrote cell (%d,%d)", x, y)
			}
		}
	}
}

func TestDropY(t *testing.T) {
	b := New(10, 20, 2)

	// O spawn occupies box rows 1-2, so it rests with the origin at Rows()-3.
	y, ok := b.DropY(tetromino.KindO, 0, 0, 0)
	if !ok || y != b.Rows()-3 {
		t.Fatalf("DropY on empty board = (%d, %v), want (%d, true)", y, ok, b.Rows()-3)
	}

	// A filled bottom row raises the landing by one.
	fillRow(t, b, 21)
	y, ok = b.DropY(tetromino.KindO, 0, 0, 0)
	if !ok || y != b.Rows()-4 {
		t.Fatalf("DropY onto stack = (%d, %v), want (%d, true)", y, ok, b.Rows()-4)
	}
}

func TestFullLines(t *testing.T) {
	b := New(10, 20, 2)
	fillRow(t, b, 20)
	fillRow(t, b, 21, 4) // gap at column 4

	full := b.FullLines()
	if len(full) != 1 || full[0] != 20 {
		t.Fatalf("FullLines() = %v, want [20]", full)
	}
}

func TestClearLinesAtomic(t *testing.T) {
	b := New(10, 20, 2)

	// Stack: full, partial, full, partial from row 18 down. Clearing both
	// full rows in one call must keep the partial rows adjacent at the
	// bottom, with everything above shifted down by exactly two.
	fillRow(t, b, 18)
	fillRow(t, b, 19, 2)
	fillRow(t, b, 20)
	fillRow(t, b, 21, 7)
	b.cells[17][0] = Cell(tetromino.KindI) // lone marker above the stack

	n := b.ClearLines(b.FullLines())
	if n != 2 {
		t.Fatalf("ClearLines removed %d rows, want 2", n)
	}

	if b.At(0, 19).Empty() {
		t.Error("marker cell did not shift down by two rows")
	}
	if !b.At(2, 20).Empty() || b.At(0, 20).Empty() {
		t.Error("partial row with gap at column 2 not at row 20")
	}
	if !b.At(7, 21).Empty() || b.At(0, 21).Empty() {
		t.Error("partial row with gap at column 7 not at row 21")
	}
	if got := b.FullLines(); got != nil {
		t.Errorf("rows %v still full after clearing", got)
	}
}

func TestClearLinesNoop(t *testing.T) {
	b := New(10, 20, 2)
	before := b.Hash()
	if n := b.ClearLines(nil); n != 0 {
		t.Fatalf("ClearLines(nil) = %d, want 0", n)
	}
	if b.Hash() != before {
		t.Error("ClearLines(nil) changed the board")
	}
}

func TestCloneIndependent(t *testing.T) {
	b := New(10, 20, 2)
	fillRow(t, b, 21, 3)

	c := b.Clone()
	if c.Hash() != b.Hash() {
		t.Fatal("clone hash differs from original")
	}

	c.cells[21][3] = Cell(tetromino.KindL)
	if !b.At(3, 21).Empty() {
		t.Error("mutating the clone changed the original")
	}
}

func TestHashSensitivity(t *testing.T) {
	a := New(10, 20, 2)
	b := New(10, 20, 2)
	if a.Hash() != b.Hash() {
		t.Fatal("identical boards hash differently")
	}

	b.cells[21][0] = Cell(tetromino.KindI)
	if a.Hash() == b.Hash() {
		t.Error("boards differing in one cell hash the same")
	}

	// Same occupancy, different kind: still a different state.
	a.cells[21][0] = Cell(tetromino.KindO)
	if a.Hash() == b.Hash() {
		t.Error("boards differing only in cell kind hash the same")
	}
}

func TestMetrics(t *testing.T) {
	b := New(10, 20, 2)

	// Column 0: height 3 with a hole in the middle.
	b.cells[19][0] = Cell(tetromino.KindI)
	b.cells[21][0] = Cell(tetromino.KindI)
	// Column 1: height 1, solid.
	b.cells[21][1] = Cell(tetromino.KindI)

	heights := b.ColumnHeights()
	if heights[0] != 3 || heights[1] != 1 || heights[2] != 0 {
		t.Errorf("ColumnHeights() = %v, want [3 1 0 ...]", heights)
	}
	if got := b.AggregateHeight(); got != 4 {
		t.Errorf("AggregateHeight() = %d, want 4", got)
	}
	if got := b.Holes(); got != 1 {
		t.Errorf("Holes() = %d, want 1", got)
	}
	// |3-1| + |1-0| = 3, remaining columns flat.
	if got := b.Bumpiness(); got != 3 {
		t.Errorf("Bumpiness() = %d, want 3", got)
	}
}
