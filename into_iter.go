package vec

import (
	"iter"
	"runtime"

	"github.com/teenjuna/vec/internal/raw"
)

// IntoIter owns the buffer and the elements of a consumed [Vec].
//
// Close must be called once the iterator is no longer needed: it drops the elements that were
// never yielded and releases the buffer. The range functions returned by All and Backward close
// the iterator themselves, including on early break and on panic. An iterator that becomes
// unreachable without being closed is closed by the garbage collector at some later point, on
// another goroutine.
type IntoIter[T any] struct {
	owned   *owned[T]
	cleanup runtime.Cleanup
}

// owned is the state released by Close. It never points back to its IntoIter, so it can be
// handed to the cleanup of an abandoned iterator.
type owned[T any] struct {
	iter raw.RangeIter[T]
	buf  raw.Buffer[T]
}

func newIntoIter[T any](iter raw.RangeIter[T], buf raw.Buffer[T]) *IntoIter[T] {
	it := &IntoIter[T]{
		owned: &owned[T]{iter: iter, buf: buf},
	}
	it.cleanup = runtime.AddCleanup(it, (*owned[T]).close, it.owned)
	return it
}

// Next yields the front element. It reports false when the iterator is exhausted.
func (it *IntoIter[T]) Next() (T, bool) {
	defer runtime.KeepAlive(it)
	return it.owned.iter.Next()
}

// NextBack yields the back element. It reports false when the iterator is exhausted.
func (it *IntoIter[T]) NextBack() (T, bool) {
	defer runtime.KeepAlive(it)
	return it.owned.iter.NextBack()
}

// Len returns the exact number of elements not yet yielded.
func (it *IntoIter[T]) Len() int {
	defer runtime.KeepAlive(it)
	return it.owned.iter.Len()
}

// All returns a sequence that yields the remaining elements front to back and closes the
// iterator when it stops.
func (it *IntoIter[T]) All() iter.Seq[T] {
	return consume(it.Next, it.Close)
}

// Backward returns a sequence that yields the remaining elements back to front and closes the
// iterator when it stops.
func (it *IntoIter[T]) Backward() iter.Seq[T] {
	return consume(it.NextBack, it.Close)
}

// Close drops the elements not yet yielded and releases the buffer. It is safe to call Close
// more than once.
func (it *IntoIter[T]) Close() {
	it.cleanup.Stop()
	it.owned.close()
}

func (o *owned[T]) close() {
	defer o.buf.Release()
	exhaust(&o.iter)
}

// exhaust drops every element left in it.
func exhaust[T any](it *raw.RangeIter[T]) {
	for {
		value, ok := it.Next()
		if !ok {
			return
		}
		drop(value)
	}
}

func consume[T any](next func() (T, bool), stop func()) iter.Seq[T] {
	return func(yield func(T) bool) {
		defer stop()
		for {
			value, ok := next()
			if !ok || !yield(value) {
				return
			}
		}
	}
}
