package snapshot

import (
	"net/url"
	"strings"
)

// FileConfig describes the SQLite file that holds snapshots.
type FileConfig struct {
	path    string
	durable bool
}

// File returns a [FileConfig] for the provided path. Query parameters in the path are ignored.
func File(file string) *FileConfig {
	return &FileConfig{path: strings.TrimSpace(file)}
}

// Durable makes every commit wait until the data reaches the disk.
func (c *FileConfig) Durable(durable bool) *FileConfig {
	c.durable = durable
	return c
}

func (c *FileConfig) uri() string {
	if c == nil {
		return ":memory:"
	}

	query := url.Values{}
	if c.durable {
		query.Set("_sync", "full")
	}

	path, _, _ := strings.Cut(c.path, "?")
	if len(query) == 0 {
		return path
	}

	return path + "?" + query.Encode()
}
