package sqlite

import (
	"strings"
)

type Config struct {
	uri     string
	workers int
}

type ConfigFunc = func(c *Config)

// URI sets the location of the database. It is either ":memory:" or a file path that may carry
// go-sqlite3 query parameters, which take priority over the defaults.
func (c *Config) URI(uri string) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		panic("URI can't be blank")
	}
	c.uri = uri
}

// Workers sets the number of connections that may be open at the same time. In-memory
// databases always use a single connection.
func (c *Config) Workers(workers int) {
	if workers < 1 {
		panic("workers can't be < 1")
	}
	c.workers = workers
}

func WithURI(uri string) ConfigFunc {
	return func(c *Config) {
		c.URI(uri)
	}
}

func WithWorkers(workers int) ConfigFunc {
	return func(c *Config) {
		c.Workers(workers)
	}
}
