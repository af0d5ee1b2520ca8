package snapshot

import (
	"testing"

	"github.com/teenjuna/vec/internal/testing/require"
)

func TestURI(t *testing.T) {
	var nilFile *FileConfig
	require.Equal(t, nilFile.uri(), ":memory:")
	require.Equal(t, File("myfile").uri(), "myfile")
	require.Equal(t, File(" myfile ").uri(), "myfile")
	require.Equal(t, File("myfile?foo=bar").uri(), "myfile")
	require.Equal(t, File("myfile").Durable(true).uri(), "myfile?_sync=full")
	require.Equal(t, File("myfile?foo=bar").Durable(true).uri(), "myfile?_sync=full")
	require.Equal(t, File("dir/my file").uri(), "dir/my file")
}
