// Package gob encodes container elements with encoding/gob.
//
// Every encoded sequence is a self-contained gob stream: it carries its own type information,
// one record per element, and a closing record with the element count. Decode rejects streams
// that end before the closing record or whose count does not match, so a snapshot cut at an
// element boundary is reported instead of loading as a shorter Vec.
package gob

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/teenjuna/vec/codec"
)

var _ codec.Codec[any] = (*Codec[any])(nil)

// ErrTruncated is returned by Decode when the stream has no closing record.
var ErrTruncated = errors.New("gob stream is truncated")

type record[Item any] struct {
	Value Item
	End   bool
	Count int
}

// Codec encodes items as a gob stream of records.
//
// A new gob encoder is created for every Encode call, so each result can be decoded on its
// own. The output buffer is reused between calls.
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
	enc := gob.NewEncoder(c.buf)

	count := 0
	for item := range items {
		if err := enc.Encode(&record[Item]{Value: item}); err != nil {
			return nil, fmt.Errorf("item %d: %w", count, err)
		}
		count++
	}

	if err := enc.Encode(&record[Item]{End: true, Count: count}); err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	res := c.buf.Bytes()
	out := make([]byte, len(res))
	copy(out, res)

	return out, nil
}

func (c *Codec[Item]) Decode(data []byte, push func(Item)) error {
	dec := gob.NewDecoder(bytes.NewReader(data))

	for count := 0; ; count++ {
		var r record[Item]
		err := dec.Decode(&r)
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("after %d items: %w", count, ErrTruncated)
		} else if err != nil {
			return err
		}

		if r.End {
			if r.Count != count {
				return fmt.Errorf("stream has %d items, closing record says %d", count, r.Count)
			}
			return nil
		}

		push(r.Value)
	}
}

func (c *Codec[Item]) Derive() codec.Codec[Item] {
	return New[Item]()
}
