package internal_test

import (
	"slices"
	"testing"

	"github.com/oklog/ulid/v2"

	"github.com/teenjuna/vec/internal"
	"github.com/teenjuna/vec/internal/testing/require"
)

func TestGenerateID(t *testing.T) {
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = internal.GenerateID()

		_, err := ulid.ParseStrict(ids[i])
		require.Nil(t, err)
	}

	require.True(t, slices.IsSorted(ids))
	require.Equal(t, len(slices.Compact(slices.Clone(ids))), len(ids))
}
