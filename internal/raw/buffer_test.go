package raw_test

import (
	"testing"

	"github.com/teenjuna/vec/internal/raw"
	"github.com/teenjuna/vec/internal/testing/require"
)

func TestNewBuffer(t *testing.T) {
	b := raw.NewBuffer[int]()
	require.Equal(t, b.Cap(), 0)
	require.NotNil(t, b.Base())
	require.Nil(t, b.Slice(0))

	require.PanicWithError(t, "zero-sized element type is not supported", func() {
		raw.NewBuffer[struct{}]()
	})

	var zero raw.Buffer[struct{}]
	require.PanicWithError(t, "zero-sized element type is not supported", func() {
		zero.Grow()
	})
}

func TestGrow(t *testing.T) {
	b := raw.NewBuffer[int]()

	for _, expected := range []int{1, 2, 4, 8, 16} {
		b.Grow()
		require.Equal(t, b.Cap(), expected)
	}

	b.Release()
	require.Equal(t, b.Cap(), 0)
}

func TestGrowKeepsContents(t *testing.T) {
	b := raw.NewBuffer[string]()
	b.Grow()
	b.Put(0, "a")
	b.Grow()
	b.Put(1, "b")
	b.Grow()
	b.Put(2, "c")

	require.Equal(t, b.Cap(), 4)
	require.Equal(t, b.Slice(3), []string{"a", "b", "c"})

	b.Release()
}

func TestGrowOverflow(t *testing.T) {
	b := raw.NewBuffer[int64]()
	defer raw.SetCap(&b, 0)

	raw.SetCap(&b, 1<<58)
	require.Equal(t, raw.Doubled(&b), 1<<59)

	raw.SetCap(&b, 1<<59)
	require.PanicWithError(t, "capacity overflow", func() {
		raw.Doubled(&b)
	})
}

func TestRelease(t *testing.T) {
	b := raw.NewBuffer[*int]()
	require.NotPanics(t, b.Release)

	b.Grow()
	b.Grow()
	v := 1
	b.Put(0, &v)

	b.Release()
	require.Equal(t, b.Cap(), 0)
	require.NotPanics(t, b.Release)
}

func TestPutTake(t *testing.T) {
	b := raw.NewBuffer[string]()
	b.Grow()
	b.Put(0, "a")

	require.Equal(t, *b.At(0), "a")
	require.Equal(t, b.Take(0), "a")
	require.Equal(t, *b.At(0), "")

	require.PanicWithError(t, "slot out of range", func() {
		b.At(1)
	})
	require.PanicWithError(t, "slot out of range", func() {
		b.At(-1)
	})

	b.Release()
}

func TestShift(t *testing.T) {
	b := raw.NewBuffer[int]()
	for range 3 {
		b.Grow()
	}
	for i := range 4 {
		b.Put(i, i+1)
	}

	t.Run("Right", func(t *testing.T) {
		b.Shift(1, 2, 2)
		require.Equal(t, b.Slice(4), []int{1, 2, 2, 3})
	})

	t.Run("Left", func(t *testing.T) {
		b.Shift(2, 1, 2)
		require.Equal(t, b.Slice(4), []int{1, 2, 3, 3})
	})

	t.Run("Out of range", func(t *testing.T) {
		require.PanicWithError(t, "slot out of range", func() {
			b.Shift(1, 2, 3)
		})
	})

	b.Release()
}

func TestSliceIsClipped(t *testing.T) {
	b := raw.NewBuffer[int]()
	b.Grow()
	b.Grow()
	b.Put(0, 1)
	b.Put(1, 2)

	s := b.Slice(1)
	require.Equal(t, cap(s), 1)

	s = append(s, 42)
	require.Equal(t, *b.At(1), 2)

	b.Release()
}
