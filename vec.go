// Package vec provides [Vec], a contiguous growable sequence that manages its own buffer, and
// two consuming iterators over it: [IntoIter], which takes the whole container, and [Drain],
// which empties it in place.
//
// A Vec is owned by a single goroutine and is not safe for concurrent use. Distinct Vecs share
// nothing but the global allocator, so they can live on different goroutines.
package vec

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/teenjuna/vec/internal/raw"
)

// Vec is a contiguous growable sequence. Slots [0, Len()) hold live elements; the remaining
// slots up to Cap() are spare storage.
//
// The zero value is an empty Vec ready to use. Call [Vec.Close] to drop the elements and
// release the buffer.
type Vec[T any] struct {
	buf raw.Buffer[T]
	len int

	consumed bool
	drained  bool
}

// New returns an empty Vec. It doesn't allocate. It panics if T is zero-sized.
func New[T any]() *Vec[T] {
	return &Vec[T]{
		buf: raw.NewBuffer[T](),
	}
}

// Of returns a Vec holding values in order.
func Of[T any](values ...T) *Vec[T] {
	v := New[T]()
	for _, value := range values {
		v.Push(value)
	}
	return v
}

// Len returns the number of elements.
func (v *Vec[T]) Len() int {
	v.mustBeLive()
	return v.len
}

// Cap returns the number of slots the Vec can hold before growing.
func (v *Vec[T]) Cap() int {
	v.mustBeLive()
	return v.buf.Cap()
}

// Push appends value, growing the buffer if it is full.
func (v *Vec[T]) Push(value T) {
	v.mustBeMutable()
	if v.len == v.buf.Cap() {
		v.buf.Grow()
	}
	v.buf.Put(v.len, value)
	v.len++
}

// Pop removes and returns the last element. It reports false if the Vec is empty.
func (v *Vec[T]) Pop() (value T, ok bool) {
	v.mustBeMutable()
	if v.len == 0 {
		return value, false
	}
	v.len--
	return v.buf.Take(v.len), true
}

// Insert places value at index i, shifting the elements at i and after one slot to the right.
// It panics unless 0 <= i <= Len().
func (v *Vec[T]) Insert(i int, value T) {
	v.mustBeMutable()
	if i < 0 || i > v.len {
		panic("index out of bounds")
	}
	if v.len == v.buf.Cap() {
		v.buf.Grow()
	}
	v.buf.Shift(i, i+1, v.len-i)
	v.buf.Put(i, value)
	v.len++
}

// Remove removes and returns the element at index i, shifting the elements after it one slot
// to the left. It panics unless 0 <= i < Len().
func (v *Vec[T]) Remove(i int) T {
	v.mustBeMutable()
	if i < 0 || i >= v.len {
		panic("index out of bounds")
	}
	value := v.buf.Take(i)
	v.buf.Shift(i+1, i, v.len-i-1)
	v.len--
	v.buf.Vacate(v.len)
	return value
}

// At returns the element at index i. It panics unless 0 <= i < Len().
func (v *Vec[T]) At(i int) T {
	v.mustBeLive()
	if i < 0 || i >= v.len {
		panic("index out of bounds")
	}
	return *v.buf.At(i)
}

// Set replaces the element at index i. The replaced element is not dropped. It panics unless
// 0 <= i < Len().
func (v *Vec[T]) Set(i int, value T) {
	v.mustBeLive()
	if i < 0 || i >= v.len {
		panic("index out of bounds")
	}
	*v.buf.At(i) = value
}

// Slice returns a view of the live elements. Writes through the view change the Vec. The view
// is invalidated by any operation that changes the length or capacity.
func (v *Vec[T]) Slice() []T {
	v.mustBeLive()
	return v.buf.Slice(v.len)
}

// Values returns a sequence of the elements, front to back. The elements stay in the Vec.
func (v *Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(*v.buf.At(i)) {
				return
			}
		}
	}
}

// All returns a sequence of index-element pairs, front to back.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(i, *v.buf.At(i)) {
				return
			}
		}
	}
}

// Backward returns a sequence of index-element pairs, back to front.
func (v *Vec[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.Len() - 1; i >= 0; i = min(i, v.Len()) - 1 {
			if !yield(i, *v.buf.At(i)) {
				return
			}
		}
	}
}

// IntoIter consumes the Vec and returns an iterator that owns its elements. Any later use of
// the Vec panics, except Close which does nothing.
func (v *Vec[T]) IntoIter() *IntoIter[T] {
	v.mustBeMutable()

	it := newIntoIter(raw.NewRangeIter[T](v.buf.Base(), v.len), v.buf)

	v.buf = raw.Buffer[T]{}
	v.len = 0
	v.consumed = true

	return it
}

// Drain empties the Vec and returns an iterator over its former elements. The buffer stays
// with the Vec. Until the iterator is closed or exhausted, the Vec reads as empty and any
// mutation of it panics.
//
// Drain always covers the whole Vec. The borrow is lifted only by Close or by exhausting the
// iterator: a Drain that is abandoned without either leaves the Vec unusable for mutation and
// Close, and its remaining elements are never dropped.
func (v *Vec[T]) Drain() *Drain[T] {
	v.mustBeMutable()

	d := Drain[T]{
		iter: raw.NewRangeIter[T](v.buf.Base(), v.len),
		vec:  v,
	}

	v.len = 0
	v.drained = true

	return &d
}

// Clear drops every element and keeps the buffer.
func (v *Vec[T]) Clear() {
	for {
		value, ok := v.Pop()
		if !ok {
			return
		}
		drop(value)
	}
}

// Close drops every element and releases the buffer. The Vec is left empty and can be reused.
// Closing a consumed Vec does nothing.
func (v *Vec[T]) Close() {
	if v.consumed {
		return
	}
	v.mustBeMutable()
	if v.buf.Cap() == 0 {
		return
	}
	v.Clear()
	v.buf.Release()
}

// String implements fmt.Stringer.
func (v *Vec[T]) String() string {
	b := bytes.NewBuffer(make([]byte, 0, 2+(4*v.Len())))

	b.WriteByte('[')
	for i, value := range v.All() {
		if i != 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%v", value)
	}
	b.WriteByte(']')

	return b.String()
}

// GoString implements fmt.GoStringer.
func (v *Vec[T]) GoString() string {
	return fmt.Sprintf("&Vec{Len: %d, Cap: %d, Data: %s}", v.Len(), v.Cap(), v.String())
}

func (v *Vec[T]) mustBeLive() {
	if v.consumed {
		panic("vec is consumed")
	}
}

func (v *Vec[T]) mustBeMutable() {
	v.mustBeLive()
	if v.drained {
		panic("vec is drained")
	}
}
