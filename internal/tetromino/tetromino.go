// Package tetromino defines the seven tetromino shapes, their SRS rotation
// states and wall-kick tables, and the 7-bag piece generator.
//
// Coordinates are screen-style: x grows right, y grows down. Each shape
// lives in a fixed bounding box (4x4 for I and O, 3x3 for the rest); a
// rotation state is the set of 4 occupied cells inside that box. All four
// rotation states are precomputed at init from the spawn state.
package tetromino

import (
	"math"

	"github.com/ddanilov/tetrion/internal/core"
)

// Kind identifies one of the seven tetromino shapes.
type Kind int8

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// KindCount is the number of distinct tetromino kinds.
const KindCount = 7

// Kinds lists all tetromino kinds in canonical order.
var Kinds = [KindCount]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

// String returns the one-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "?"
	}
}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindL
}

// Color returns the conventional display color for the kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindI:
		return core.ColorBrightCyan
	case KindO:
		return core.ColorBrightYellow
	case KindT:
		return core.ColorBrightMagenta
	case KindS:
		return core.ColorBrightGreen
	case KindZ:
		return core.ColorBrightRed
	case KindJ:
		return core.ColorBrightBlue
	case KindL:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// Offset is a cell position relative to a piece's bounding-box origin.
type Offset struct {
	X, Y int
}

// Shape is the set of 4 cells a piece occupies in one rotation state.
type Shape [4]Offset

// spawnShapes holds the rotation-0 (spawn) state of each kind inside its
// fixed SRS bounding box. I and O use a 4x4 box, the rest use 3x3.
var spawnShapes = [KindCount]Shape{
	KindI: {{0, 1}, {1, 1}, {2, 1}, {3, 1}},
	KindO: {{1, 1}, {2, 1}, {1, 2}, {2, 2}},
	KindT: {{1, 0}, {0, 1}, {1, 1}, {2, 1}},
	KindS: {{1, 0}, {2, 0}, {0, 1}, {1, 1}},
	KindZ: {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	KindJ: {{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	KindL: {{2, 0}, {0, 1}, {1, 1}, {2, 1}},
}

// boxSizes holds the bounding box edge length per kind.
var boxSizes = [KindCount]int{
	KindI: 4,
	KindO: 4,
	KindT: 3,
	KindS: 3,
	KindZ: 3,
	KindJ: 3,
	KindL: 3,
}

// shapes caches all 4 rotation states per kind, filled in init.
var shapes [KindCount][4]Shape

func init() {
	for _, k := range Kinds {
		shapes[k][0] = normalized(spawnShapes[k])
		for r := 1; r < 4; r++ {
			shapes[k][r] = normalized(rotateCW(shapes[k][r-1], k))
		}
	}
}

// rotateCW rotates a shape 90 degrees clockwise about the box center.
// With y growing down, a clockwise screen rotation maps the offset
// (dx, dy) from the center to (-dy, dx). I and O rotate about the grid
// intersection (1.5, 1.5); the 3x3 pieces rotate about the cell (1, 1).
func rotateCW(s Shape, k Kind) Shape {
	c := 1.0
	if boxSizes[k] == 4 {
		c = 1.5
	}

	var out Shape
	for i, o := range s {
		dx := float64(o.X) - c
		dy := float64(o.Y) - c
		out[i] = Offset{
			X: int(math.Round(c - dy)),
			Y: int(math.Round(c + dx)),
		}
	}
	return out
}

// normalized returns the shape with cells in a stable (y, x) order so that
// equality checks and tests do not depend on rotation bookkeeping.
func normalized(s Shape) Shape {
	out := s
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a, b := out[j-1], out[j]
			if b.Y < a.Y || (b.Y == a.Y && b.X < a.X) {
				out[j-1], out[j] = b, a
			} else {
				break
			}
		}
	}
	return out
}

// Cells returns the 4 occupied cells of kind k in rotation state rot (0-3),
// relative to the piece's bounding-box origin.
func Cells(k Kind, rot int) Shape {
	return shapes[k][((rot%4)+4)%4]
}

// BoxSize returns the bounding box edge length for kind k.
func BoxSize(k Kind) int {
	return boxSizes[k]
}

// Bounds returns the minimal and maximal occupied offsets of kind k in
// rotation state rot: (minX, minY, maxX, maxY).
func Bounds(k Kind, rot int) (minX, minY, maxX, maxY int) {
	cells := Cells(k, rot)
	minX, minY = cells[0].X, cells[0].Y
	maxX, maxY = cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		minX = core.Min(minX, c.X)
		minY = core.Min(minY, c.Y)
		maxX = core.Max(maxX, c.X)
		maxY = core.Max(maxY, c.Y)
	}
	return minX, minY, maxX, maxY
}
