package json

import (
	"bytes"
	"iter"

	"github.com/goccy/go-json"

	"github.com/teenjuna/vec/codec"
)

var _ codec.Codec[any] = (*Codec[any])(nil)

// Codec encodes items as a stream of JSON values, one per line.
type Codec[Item any] struct {
	buf *bytes.Buffer
}

func New[Item any]() *Codec[Item] {
	return &Codec[Item]{
		buf: new(bytes.Buffer),
	}
}

func (c *Codec[Item]) Encode(items iter.Seq[Item]) ([]byte, error) {
	c.buf.Reset()
	enc := json.NewEncoder(c.buf)

	for item := range items {
		if err := enc.Encode(item); err != nil {
			return nil, err
		}
	}

	res := c.buf.Bytes()
	out := make([]byte, len(res))
	copy(out, res)

	return out, nil
}

func (c *Codec[Item]) Decode(data []byte, push func(Item)) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	for dec.More() {
		var item Item
		if err := dec.Decode(&item); err != nil {
			return err
		}
		push(item)
	}

	return nil
}

func (c *Codec[Item]) Derive() codec.Codec[Item] {
	return New[Item]()
}
