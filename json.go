package vec

import (
	"fmt"

	"github.com/goccy/go-json"
)

// MarshalJSON implements json.Marshaler. A Vec is encoded as an array.
func (v *Vec[T]) MarshalJSON() ([]byte, error) {
	if v.Len() == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Slice())
}

// UnmarshalJSON implements json.Unmarshaler. Existing elements are dropped and replaced by the
// decoded array.
func (v *Vec[T]) UnmarshalJSON(b []byte) error {
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("unmarshal items: %w", err)
	}

	v.Clear()
	for _, item := range items {
		v.Push(item)
	}

	return nil
}
