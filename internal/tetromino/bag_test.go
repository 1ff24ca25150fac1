package tetromino

import "testing"

func TestBagEveryKindOncePerBag(t *testing.T) {
	b := NewBag(42, 5)
	const bags = 100
	counts := map[Kind]int{}
	for i := 0; i < bags*KindCount; i++ {
		counts[b.Next()]++
	}
	for _, k := range Kinds {
		if counts[k] != bags {
			t.Errorf("kind %v drawn %d times in %d bags, want %d", k, counts[k], bags, bags)
		}
	}
}

func TestBagNoTripleInWindow(t *testing.T) {
	// A window of 8 draws touches at most two bags, so no kind can show
	// up in it three times.
	b := NewBag(7, 5)
	const draws = 7 * 200
	seq := make([]Kind, draws)
	for i := range seq {
		seq[i] = b.Next()
	}
	const window = 8
	for start := 0; start+window <= len(seq); start++ {
		counts := map[Kind]int{}
		for _, k := range seq[start : start+window] {
			counts[k]++
			if counts[k] > 2 {
				t.Fatalf("kind %v appears %d times in window starting at %d", k, counts[k], start)
			}
		}
	}
}

func TestBagDeterministic(t *testing.T) {
	a := NewBag(1234, 5)
	b := NewBag(1234, 5)
	for i := 0; i < 70; i++ {
		ka, kb := a.Next(), b.Next()
		if ka != kb {
			t.Fatalf("draw %d: %v != %v for identical seeds", i, ka, kb)
		}
	}
}

func TestBagResetReproduces(t *testing.T) {
	b := NewBag(99, 5)
	first := make([]Kind, 21)
	for i := range first {
		first[i] = b.Next()
	}
	b.Reset(99)
	for i := range first {
		if got := b.Next(); got != first[i] {
			t.Fatalf("draw %d after Reset: got %v, want %v", i, got, first[i])
		}
	}
}

func TestBagPeekDoesNotConsume(t *testing.T) {
	b := NewBag(5, 5)
	peeked := b.Peek(5)
	if len(peeked) != 5 {
		t.Fatalf("Peek(5) returned %d kinds", len(peeked))
	}
	for i, want := range peeked {
		if got := b.Next(); got != want {
			t.Errorf("draw %d: got %v, peeked %v", i, got, want)
		}
	}
}

func TestBagPreviewAlwaysAvailable(t *testing.T) {
	b := NewBag(11, 6)
	for i := 0; i < 50; i++ {
		if got := len(b.Peek(6)); got != 6 {
			t.Fatalf("after %d draws only %d preview pieces available", i, got)
		}
		b.Next()
	}
}
