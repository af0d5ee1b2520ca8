// This package contains the [Codec] interface used to serialize container elements and several
// implementations inside subpackages.
package codec

import "iter"

// Codec encodes and decodes a sequence of elements.
//
// Implementations are not considered thread-safe. Use Derive to get an instance for another
// goroutine.
type Codec[Item any] interface {
	// Encode serializes a sequence of items into a byte slice. The returned slice is owned by
	// the caller.
	Encode(items iter.Seq[Item]) ([]byte, error)
	// Decode deserializes a byte slice into items, pushing each to the provided function in
	// encoding order.
	Decode(data []byte, push func(Item)) error
	// Derive returns a new Codec instance with the same settings.
	//
	// The returned codec maintains its own internal state independent of the original.
	Derive() Codec[Item]
}
