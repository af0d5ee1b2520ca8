// Package raw contains the unsafe primitives of the container: an owned block of slots and a
// cursor pair over initialized slots. All address arithmetic of the module lives here.
package raw

import (
	"math"
	"unsafe"

	"github.com/teenjuna/vec/internal/alloc"
)

// dangling is the address reported by an empty buffer. It is never dereferenced.
var dangling uintptr

// Buffer owns a block of slots and its capacity. It knows nothing about which slots are
// initialized.
//
// The zero value is an empty buffer.
type Buffer[T any] struct {
	block unsafe.Pointer
	cap   int
}

// NewBuffer returns an empty buffer. It panics if T is zero-sized.
func NewBuffer[T any]() Buffer[T] {
	mustHaveSize[T]()
	return Buffer[T]{}
}

// Base returns the address of the first slot. It is never nil, but for an empty buffer it
// points to a sentinel that must not be dereferenced.
func (b *Buffer[T]) Base() unsafe.Pointer {
	if b.block == nil {
		return unsafe.Pointer(&dangling)
	}
	return b.block
}

// Cap returns the number of allocated slots.
func (b *Buffer[T]) Cap() int {
	return b.cap
}

// Grow allocates a single slot for an empty buffer and doubles the capacity otherwise.
func (b *Buffer[T]) Grow() {
	mustHaveSize[T]()

	if b.cap == 0 {
		block := alloc.Allocate[T](1)
		b.block, b.cap = block, 1
		return
	}

	newCap := b.doubled()
	block := alloc.Reallocate[T](b.block, b.cap, newCap)
	b.block, b.cap = block, newCap
}

// doubled returns twice the capacity. Offsets are computed as signed integers, so the current
// block must not exceed half of the addressable range.
func (b *Buffer[T]) doubled() int {
	size := mustHaveSize[T]()
	if b.cap > (math.MaxInt/2)/int(size) {
		panic("capacity overflow")
	}
	return 2 * b.cap
}

// Release gives the block back to the allocator and leaves the buffer empty. Releasing an
// empty buffer does nothing.
func (b *Buffer[T]) Release() {
	if b.cap == 0 {
		return
	}
	alloc.Release[T](b.block, b.cap)
	b.block, b.cap = nil, 0
}

// At returns the address of slot i.
func (b *Buffer[T]) At(i int) *T {
	if i < 0 || i >= b.cap {
		panic("slot out of range")
	}
	return slot[T](b.block, i)
}

// Put writes v into slot i. The slot must not hold a live element.
func (b *Buffer[T]) Put(i int, v T) {
	*b.At(i) = v
}

// Take moves the element out of slot i, leaving the slot zeroed.
func (b *Buffer[T]) Take(i int) T {
	return take(b.At(i))
}

// Vacate zeroes slot i. Use it for slots whose element has been moved elsewhere.
func (b *Buffer[T]) Vacate(i int) {
	var zero T
	*b.At(i) = zero
}

// Shift moves n slots starting at from so that they start at to. The ranges may overlap.
// Slots left behind keep their old contents and must be treated as uninitialized.
func (b *Buffer[T]) Shift(from, to, n int) {
	if n == 0 {
		return
	}
	if from < 0 || to < 0 || from+n > b.cap || to+n > b.cap {
		panic("slot out of range")
	}
	slots := unsafe.Slice((*T)(b.block), b.cap)
	copy(slots[to:to+n], slots[from:from+n])
}

// Slice returns a view of the first n slots, clipped so that appending to it reallocates.
func (b *Buffer[T]) Slice(n int) []T {
	if n < 0 || n > b.cap {
		panic("slot out of range")
	}
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(b.block), b.cap)[:n:n]
}

func mustHaveSize[T any]() uintptr {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		panic("zero-sized element type is not supported")
	}
	return size
}

func slot[T any](base unsafe.Pointer, i int) *T {
	var zero T
	return (*T)(unsafe.Add(base, uintptr(i)*unsafe.Sizeof(zero)))
}

func take[T any](p *T) T {
	var zero T
	v := *p
	*p = zero
	return v
}
