package tetromino

import (
	"math/rand"
)

// Bag is a seedable 7-bag piece generator with a preview queue.
//
// Each refill appends a uniformly shuffled permutation of all seven kinds,
// so every kind appears exactly once per bag and at most twice within any
// window of 8 consecutive draws.
type Bag struct {
	rng     *rand.Rand
	queue   []Kind
	preview int
}

// NewBag creates a bag seeded with seed, keeping at least preview pieces
// visible ahead of the next draw. preview values below 1 are clamped to 1.
func NewBag(seed int64, preview int) *Bag {
	if preview < 1 {
		preview = 1
	}
	b := &Bag{
		rng:     rand.New(rand.NewSource(seed)),
		preview: preview,
	}
	b.ensure()
	return b
}

// Reset discards all queued pieces and reseeds the generator.
func (b *Bag) Reset(seed int64) {
	b.rng = rand.New(rand.NewSource(seed))
	b.queue = b.queue[:0]
	b.ensure()
}

// ensure tops the queue up so that at least preview+1 pieces are available.
func (b *Bag) ensure() {
	for len(b.queue) <= b.preview {
		bag := Kinds
		b.rng.Shuffle(len(bag), func(i, j int) {
			bag[i], bag[j] = bag[j], bag[i]
		})
		b.queue = append(b.queue, bag[:]...)
	}
}

// Next pops and returns the next piece kind.
func (b *Bag) Next() Kind {
	b.ensure()
	k := b.queue[0]
	b.queue = b.queue[1:]
	b.ensure()
	return k
}

// Peek returns up to n upcoming kinds without consuming them.
func (b *Bag) Peek(n int) []Kind {
	b.ensure()
	if n > len(b.queue) {
		n = len(b.queue)
	}
	out := make([]Kind, n)
	copy(out, b.queue[:n])
	return out
}

// Preview returns the configured preview length.
func (b *Bag) Preview() int {
	return b.preview
}

// SetPreview changes the preview length, refilling if it grew.
func (b *Bag) SetPreview(n int) {
	if n < 1 {
		n = 1
	}
	b.preview = n
	b.ensure()
}
