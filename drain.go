package vec

import (
	"iter"

	"github.com/teenjuna/vec/internal/raw"
)

// Drain yields the former elements of a [Vec] that has been emptied by [Vec.Drain].
//
// The Vec stays borrowed until the iterator is exhausted or closed, and an abandoned Drain keeps
// it borrowed for good. Close drops the elements that were never yielded; the range functions
// returned by All and Backward close the iterator themselves, including on early break and on
// panic.
type Drain[T any] struct {
	iter raw.RangeIter[T]
	vec  *Vec[T]
}

// Next yields the front element. It reports false when the iterator is exhausted.
func (d *Drain[T]) Next() (T, bool) {
	value, ok := d.iter.Next()
	if !ok {
		d.Close()
	}
	return value, ok
}

// NextBack yields the back element. It reports false when the iterator is exhausted.
func (d *Drain[T]) NextBack() (T, bool) {
	value, ok := d.iter.NextBack()
	if !ok {
		d.Close()
	}
	return value, ok
}

// Len returns the exact number of elements not yet yielded.
func (d *Drain[T]) Len() int {
	return d.iter.Len()
}

// All returns a sequence that yields the remaining elements front to back and closes the
// iterator when it stops.
func (d *Drain[T]) All() iter.Seq[T] {
	return consume(d.Next, d.Close)
}

// Backward returns a sequence that yields the remaining elements back to front and closes the
// iterator when it stops.
func (d *Drain[T]) Backward() iter.Seq[T] {
	return consume(d.NextBack, d.Close)
}

// Close drops the elements not yet yielded and gives the Vec back to its owner. It is safe to
// call Close more than once.
func (d *Drain[T]) Close() {
	if d.vec == nil {
		return
	}
	defer func() {
		d.vec.drained = false
		d.vec = nil
	}()
	exhaust(&d.iter)
}
