package msgp_test

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/tinylib/msgp/msgp"

	"github.com/teenjuna/vec"
	vecmsgp "github.com/teenjuna/vec/codec/msgp"
	"github.com/teenjuna/vec/internal/testing/require"
)

type Item struct {
	ID string
	N1 int
	N2 float64
}

func (i *Item) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendArrayHeader(b, 3)
	b = msgp.AppendString(b, i.ID)
	b = msgp.AppendInt(b, i.N1)
	b = msgp.AppendFloat64(b, i.N2)
	return b, nil
}

func (i *Item) UnmarshalMsg(b []byte) ([]byte, error) {
	n, b, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return b, err
	}
	if n != 3 {
		return b, fmt.Errorf("expected 3 fields, got %d", n)
	}
	if i.ID, b, err = msgp.ReadStringBytes(b); err != nil {
		return b, err
	}
	if i.N1, b, err = msgp.ReadIntBytes(b); err != nil {
		return b, err
	}
	if i.N2, b, err = msgp.ReadFloat64Bytes(b); err != nil {
		return b, err
	}
	return b, nil
}

func TestCodec(t *testing.T) {
	codec := vecmsgp.New[Item]()

	for range 2 {
		v := vec.New[Item]()

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

		data, err := vec.Encode(codec, v)
		require.Nil(t, err)
		require.NotEqual(t, len(data), 0)

		decoded, err := vec.Decode[Item](codec, data)
		require.Nil(t, err)
		require.Equal(t, decoded.Slice(), items)

		derivedData, err := vec.Encode(codec.Derive(), v)
		require.Nil(t, err)
		require.Equal(t, derivedData, data)

		_, err = vec.Decode[Item](codec, data[:len(data)-1])
		require.ErrorIs(t, err, msgp.ErrShortBytes)

		v.Close()
		decoded.Close()
	}
}

func TestRaw(t *testing.T) {
	codec := vecmsgp.New[msgp.Raw]()

	v := vec.Of(
		msgp.Raw(msgp.AppendInt(nil, 1)),
		msgp.Raw(msgp.AppendString(nil, "two")),
		msgp.Raw(msgp.AppendBool(nil, true)),
	)
	defer v.Close()

	data, err := vec.Encode(codec, v)
	require.Nil(t, err)

	decoded, err := vec.Decode[msgp.Raw](codec, data)
	require.Nil(t, err)
	defer decoded.Close()

	require.Equal(t, decoded.Len(), 3)
	for i, raw := range decoded.All() {
		require.Equal(t, []byte(raw), []byte(v.At(i)))
	}
}
