package yaml

import (
	"bytes"
	"errors"
	"io"
	"iter"

	"gopkg.in/yaml.v3"

	"github.com/teenjuna/vec/codec"
)

var _ codec.Codec[any] = (*Codec[any])(nil)

// Codec encodes items as a multi-document YAML stream, one document per item.
type Codec[Item any] struct {
	buf    *bytes.Buffer
	indent int
}

func New[Item any]() *Codec[Item] {
	return &Codec[Item]{
		buf:    new(bytes.Buffer),
		indent: 2,
	}
}

// WithIndent sets the number of spaces used for nested values.
func (c *Codec[Item]) WithIndent(indent int) *Codec[Item] {
	if indent < 1 {
		panic("indent can't be < 1")
	}
	c.indent = indent
	return c
}

func (c *Codec[Item]) Encode(items iter.Seq[Item]) ([]byte, error) {
	c.buf.Reset()
	enc := yaml.NewEncoder(c.buf)
	enc.SetIndent(c.indent)

	for item := range items {
		if err := enc.Encode(item); err != nil {
			return nil, err
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	res := c.buf.Bytes()
	out := make([]byte, len(res))
	copy(out, res)

	return out, nil
}

func (c *Codec[Item]) Decode(data []byte, push func(Item)) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	for {
		var item Item
		err := dec.Decode(&item)
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		push(item)
	}
}

func (c *Codec[Item]) Derive() codec.Codec[Item] {
	return New[Item]().WithIndent(c.indent)
}
