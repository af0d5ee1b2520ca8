package gob_test

import (
	"bytes"
	stdgob "encoding/gob"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/teenjuna/vec"
	"github.com/teenjuna/vec/codec/gob"
	"github.com/teenjuna/vec/internal/testing/require"
)

type Item struct {
	ID string
	N1 int
	N2 float64
}

func TestCodec(t *testing.T) {
	v := vec.New[Item]()
	defer v.Close()

	var items []Item
	for i := range 1000 {
		item := Item{
			ID: strconv.Itoa(i),
			N1: rand.IntN(1000),
			N2: rand.Float64() * 1000,
		}
		items = append(items, item)
		v.Push(item)
	}

	codec := gob.New[Item]()

	data, err := vec.Encode(codec, v)
	require.Nil(t, err)
	require.NotEqual(t, len(data), 0)
	require.Equal(t, v.Len(), len(items))

	decoded, err := vec.Decode[Item](codec, data)
	require.Nil(t, err)
	defer decoded.Close()
	require.Equal(t, decoded.Slice(), items)
	require.True(t, vec.Equal(decoded, v))

	t.Run("Derive", func(t *testing.T) {
		derived := codec.Derive()
		derivedData, err := vec.Encode(derived, v)
		require.Nil(t, err)
		require.Equal(t, derivedData, data)
	})

	t.Run("Empty", func(t *testing.T) {
		empty := vec.New[Item]()

		data, err := vec.Encode(codec, empty)
		require.Nil(t, err)

		decoded, err := vec.Decode[Item](codec, data)
		require.Nil(t, err)
		require.Equal(t, decoded.Len(), 0)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := vec.Decode[Item](codec, data[:len(data)-5])
		require.NotNil(t, err)

		_, err = vec.Decode[Item](codec, nil)
		require.ErrorIs(t, err, gob.ErrTruncated)
	})
}

// frame mirrors the records of the codec stream field by field.
type frame struct {
	Value Item
	End   bool
	Count int
}

func stream(t *testing.T, frames ...frame) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := stdgob.NewEncoder(&buf)
	for _, f := range frames {
		if err := enc.Encode(&f); err != nil {
			t.Fatalf("encode frame: %v", err)
		}
	}
	return buf.Bytes()
}

func TestStream(t *testing.T) {
	codec := gob.New[Item]()
	a := Item{ID: "a", N1: 1}
	b := Item{ID: "b", N1: 2}

	t.Run("Complete", func(t *testing.T) {
		decoded, err := vec.Decode[Item](codec, stream(t, frame{Value: a}, frame{Value: b}, frame{End: true, Count: 2}))
		require.Nil(t, err)
		defer decoded.Close()
		require.Equal(t, decoded.Slice(), []Item{a, b})
	})

	t.Run("Cut at item boundary", func(t *testing.T) {
		decoded, err := vec.Decode[Item](codec, stream(t, frame{Value: a}, frame{Value: b}))
		require.ErrorIs(t, err, gob.ErrTruncated)
		require.Nil(t, decoded)
	})

	t.Run("Count mismatch", func(t *testing.T) {
		decoded, err := vec.Decode[Item](codec, stream(t, frame{Value: a}, frame{End: true, Count: 2}))
		require.NotNil(t, err)
		require.Nil(t, decoded)
	})

	t.Run("Zero items", func(t *testing.T) {
		decoded, err := vec.Decode[Item](codec, stream(t, frame{Value: Item{}}, frame{End: true, Count: 1}))
		require.Nil(t, err)
		defer decoded.Close()
		require.Equal(t, decoded.Slice(), []Item{{}})
	})
}
