// Package board implements the Tetris playfield: cell occupancy, placement
// and lock rules, and line-clear detection and resolution.
//
// The grid is row-major with row 0 at the top. A few hidden buffer rows sit
// above the visible area so pieces can spawn and kick without leaving the
// grid; coordinates are always in full-grid rows. Cells above row 0 are
// treated as empty for collision purposes but can never be locked.
package board

import (
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/ddanilov/tetrion/internal/tetromino"
)

var (
	// ErrInvalidLock reports a lock attempted on out-of-bounds or occupied
	// cells. This is an engine invariant violation, not a user error: with
	// correct piece sequencing it never happens.
	ErrInvalidLock = errors.New("board: lock on colliding cells")

	// ErrToppedOut reports a lock whose cells extend above the grid,
	// meaning the stack has reached the spawn area.
	ErrToppedOut = errors.New("board: piece locked above the top")
)

// Cell holds the contents of one square: empty, or the kind that locked there.
type Cell int8

// CellEmpty marks an unoccupied square.
const CellEmpty Cell = -1

// Empty reports whether the cell is unoccupied.
func (c Cell) Empty() bool {
	return c < 0
}

// Kind returns the tetromino kind locked in this cell.
// Only meaningful when Empty() is false.
func (c Cell) Kind() tetromino.Kind {
	return tetromino.Kind(c)
}

// Board is the playfield grid.
type Board struct {
	width  int
	height int // visible rows
	hidden int // buffer rows above the visible area
	cells  [][]Cell
}

// New creates an empty board of the given visible size with hidden buffer
// rows on top.
func New(width, height, hidden int) *Board {
	b := &Board{
		width:  width,
		height: height,
		hidden: hidden,
	}
	b.cells = make([][]Cell, b.Rows())
	for y := range b.cells {
		b.cells[y] = emptyRow(width)
	}
	return b
}

func emptyRow(width int) []Cell {
	row := make([]Cell, width)
	for x := range row {
		row[x] = CellEmpty
	}
	return row
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// VisibleHeight returns the number of visible rows.
func (b *Board) VisibleHeight() int {
	return b.height
}

// HiddenRows returns the number of buffer rows above the visible area.
func (b *Board) HiddenRows() int {
	return b.hidden
}

// Rows returns the total number of grid rows (hidden + visible).
func (b *Board) Rows() int {
	return b.height + b.hidden
}

// At returns the cell at (x, y). Coordinates above the grid (y < 0) read
// as empty; out-of-range x or y below the floor read as empty too, but
// CanPlace treats them as collisions.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.Rows() {
		return CellEmpty
	}
	return b.cells[y][x]
}

// CanPlace reports whether every cell of kind k in rotation rot, with the
// bounding-box origin at (x, y), is inside the side and floor bounds and
// maps to an empty cell. Cells above the top of the grid are allowed; they
// only matter at lock time.
func (b *Board) CanPlace(k tetromino.Kind, rot, x, y int) bool {
	for _, o := range tetromino.Cells(k, rot) {
		cx := x + o.X
		cy := y + o.Y

		if cx < 0 || cx >= b.width {
			return false
		}
		if cy >= b.Rows() {
			return false
		}
		if cy >= 0 && !b.cells[cy][cx].Empty() {
			return false
		}
	}
	return true
}

// Lock writes the piece's cells as occupied. It fails with ErrInvalidLock
// if CanPlace does not hold at call time, and with ErrToppedOut if any
// cell lies above the grid; in both cases the board is unchanged.
func (b *Board) Lock(k tetromino.Kind, rot, x, y int) error {
	if !b.CanPlace(k, rot, x, y) {
		return fmt.Errorf("%w: %s rot=%d at (%d,%d)", ErrInvalidLock, k, rot, x, y)
	}

	cells := tetromino.Cells(k, rot)
	for _, o := range cells {
		if y+o.Y < 0 {
			return fmt.Errorf("%w: %s rot=%d at (%d,%d)", ErrToppedOut, k, rot, x, y)
		}
	}

	for _, o := range cells {
		b.cells[y+o.Y][x+o.X] = Cell(k)
	}
	return nil
}

// DropY returns the lowest y at which the piece can rest when dropped
// straight down from (x, y), and whether the starting position itself is
// legal. This is the hard-drop landing row and the ghost-piece row.
func (b *Board) DropY(k tetromino.Kind, rot, x, y int) (int, bool) {
	if !b.CanPlace(k, rot, x, y) {
		return y, false
	}
	for b.CanPlace(k, rot, x, y+1) {
		y++
	}
	return y, true
}

// FullLines returns the indices of completely occupied rows, ascending.
func (b *Board) FullLines() []int {
	var full []int
	for y := 0; y < b.Rows(); y++ {
		complete := true
		for x := 0; x < b.width; x++ {
			if b.cells[y][x].Empty() {
				complete = false
				break
			}
		}
		if complete {
			full = append(full, y)
		}
	}
	return full
}

// ClearLines removes the given rows, shifts everything above down, and
// returns the number of rows removed. The new grid keeps all non-cleared
// rows in order and pads empty rows at the top, so a multi-line clear is
// applied atomically.
func (b *Board) ClearLines(rows []int) int {
	if len(rows) == 0 {
		return 0
	}

	cleared := make(map[int]bool, len(rows))
	for _, y := range rows {
		if y >= 0 && y < b.Rows() {
			cleared[y] = true
		}
	}
	if len(cleared) == 0 {
		return 0
	}

	kept := make([][]Cell, 0, b.Rows())
	for y := 0; y < b.Rows(); y++ {
		if !cleared[y] {
			kept = append(kept, b.cells[y])
		}
	}

	next := make([][]Cell, 0, b.Rows())
	for i := 0; i < b.Rows()-len(kept); i++ {
		next = append(next, emptyRow(b.width))
	}
	next = append(next, kept...)

	b.cells = next
	return len(cleared)
}

// Clone returns a deep copy of the board. The AI planner simulates on
// clones so the live board is never touched by a search.
func (b *Board) Clone() *Board {
	c := &Board{
		width:  b.width,
		height: b.height,
		hidden: b.hidden,
	}
	c.cells = make([][]Cell, len(b.cells))
	for y := range b.cells {
		row := make([]Cell, b.width)
		copy(row, b.cells[y])
		c.cells[y] = row
	}
	return c
}

// Hash returns an FNV-1a digest of the cell grid, used for replay
// verification checkpoints.
func (b *Board) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, b.width)
	for y := 0; y < b.Rows(); y++ {
		buf = buf[:0]
		for x := 0; x < b.width; x++ {
			buf = append(buf, byte(b.cells[y][x]+1))
		}
		h.Write(buf)
	}
	return h.Sum64()
}
