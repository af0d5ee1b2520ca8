package snapshot_test

import (
	"testing"

	"github.com/teenjuna/vec/internal/testing/require"
	"github.com/teenjuna/vec/snapshot"
)

func TestConfigValidation(t *testing.T) {
	cfg := &snapshot.Config[int]{}

	require.PanicWithError(t, "file can't be nil", func() {
		cfg.File(nil)
	})

	require.PanicWithError(t, "file can't be blank", func() {
		cfg.File(snapshot.File(" "))
	})

	require.PanicWithError(t, "codec can't be nil", func() {
		cfg.Codec(nil)
	})

	require.PanicWithError(t, "workers can't be < 1", func() {
		cfg.Workers(0)
	})
}
