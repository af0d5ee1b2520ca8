package internal

import "github.com/oklog/ulid/v2"

// GenerateID returns a new lexicographically sortable identifier. IDs generated later sort
// after IDs generated earlier, so ordering by ID is ordering by creation time.
func GenerateID() string {
	return ulid.Make().String()
}
