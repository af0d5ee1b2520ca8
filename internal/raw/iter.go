package raw

import "unsafe"

// RangeIter moves elements out of a half-open span of initialized slots, from either end.
//
// It does not own the slots. Whoever created it must keep the block alive and must not read the
// span through any other path while the iterator is in use.
//
// The cursors are slot indices relative to base rather than addresses: an address one past the
// end of a block is not a valid Go pointer.
type RangeIter[T any] struct {
	base  unsafe.Pointer
	front int
	back  int
}

// NewRangeIter returns an iterator over slots [0, n) of the block at base.
func NewRangeIter[T any](base unsafe.Pointer, n int) RangeIter[T] {
	if base == nil {
		panic("base can't be nil")
	}
	if n < 0 {
		panic("span can't be < 0")
	}
	return RangeIter[T]{base: base, front: 0, back: n}
}

// Next moves out the element at the front cursor and advances it.
func (it *RangeIter[T]) Next() (v T, ok bool) {
	if it.front == it.back {
		return v, false
	}
	v = take(slot[T](it.base, it.front))
	it.front++
	return v, true
}

// NextBack retreats the back cursor and moves out the element it now points at.
func (it *RangeIter[T]) NextBack() (v T, ok bool) {
	if it.front == it.back {
		return v, false
	}
	it.back--
	return take(slot[T](it.base, it.back)), true
}

// Len returns the exact number of elements not yet yielded.
func (it *RangeIter[T]) Len() int {
	return it.back - it.front
}

// Cursors returns the front and back slot indices.
func (it *RangeIter[T]) Cursors() (front, back int) {
	return it.front, it.back
}
