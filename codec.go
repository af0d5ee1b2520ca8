package vec

import (
	"fmt"

	"github.com/teenjuna/vec/codec"
)

// Encode serializes the elements of v with c. The elements stay in v.
func Encode[T any](c codec.Codec[T], v *Vec[T]) ([]byte, error) {
	data, err := c.Encode(v.Values())
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return data, nil
}

// Decode deserializes data with c into a new Vec.
func Decode[T any](c codec.Codec[T], data []byte) (*Vec[T], error) {
	v := New[T]()
	if err := c.Decode(data, v.Push); err != nil {
		v.Close()
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return v, nil
}
