package board

// Surface metrics over the stack, as consumed by the AI evaluation
// function. All of them scan the full grid including the hidden buffer,
// so a stack poking into the buffer is penalized rather than invisible.

// ColumnHeights returns, per column, the number of rows from the topmost
// occupied cell down to the floor. An empty column has height 0.
func (b *Board) ColumnHeights() []int {
	heights := make([]int, b.width)
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.Rows(); y++ {
			if !b.cells[y][x].Empty() {
				heights[x] = b.Rows() - y
				break
			}
		}
	}
	return heights
}

// AggregateHeight returns the sum of all column heights.
func (b *Board) AggregateHeight() int {
	total := 0
	for _, h := range b.ColumnHeights() {
		total += h
	}
	return total
}

// Holes counts empty cells that have at least one occupied cell somewhere
// above them in the same column.
func (b *Board) Holes() int {
	holes := 0
	for x := 0; x < b.width; x++ {
		covered := false
		for y := 0; y < b.Rows(); y++ {
			if !b.cells[y][x].Empty() {
				covered = true
			} else if covered {
				holes++
			}
		}
	}
	return holes
}

// Bumpiness returns the sum of absolute height differences between
// adjacent columns. Flat surfaces score 0.
func (b *Board) Bumpiness() int {
	heights := b.ColumnHeights()
	bump := 0
	for x := 0; x+1 < len(heights); x++ {
		d := heights[x] - heights[x+1]
		if d < 0 {
			d = -d
		}
		bump += d
	}
	return bump
}
