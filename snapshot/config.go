package snapshot

import (
	"github.com/rs/zerolog"

	"github.com/teenjuna/vec/codec"
	"github.com/teenjuna/vec/codec/json"
)

// Config is a configuration of the [Store].
type Config[Item any] struct {
	file    *FileConfig
	codec   codec.Codec[Item]
	workers int
	logger  zerolog.Logger
}

// ConfigFunc changes the configuration of the [Store] before it is created.
type ConfigFunc[Item any] = func(c *Config[Item])

// File sets the SQLite file of the store. By default snapshots are kept in memory and are lost
// on [Store.Close].
func (c *Config[Item]) File(file *FileConfig) {
	if file == nil {
		panic("file can't be nil")
	}
	if file.path == "" {
		panic("file can't be blank")
	}
	c.file = file
}

// Codec sets the codec that serializes snapshot items. Default is the JSON codec.
func (c *Config[Item]) Codec(codec codec.Codec[Item]) {
	if codec == nil {
		panic("codec can't be nil")
	}
	c.codec = codec
}

// Workers sets how many snapshots [Store.SaveAll] encodes at the same time. Default is 1.
func (c *Config[Item]) Workers(workers int) {
	if workers < 1 {
		panic("workers can't be < 1")
	}
	c.workers = workers
}

// Logger sets the logger that receives store events at debug level. By default nothing is
// logged.
func (c *Config[Item]) Logger(logger zerolog.Logger) {
	c.logger = logger
}

func newConfig[Item any](configFuncs ...ConfigFunc[Item]) *Config[Item] {
	cfg := &Config[Item]{}
	cfg.Codec(json.New[Item]())
	cfg.Workers(1)
	cfg.Logger(zerolog.Nop())
	for _, cf := range configFuncs {
		if cf != nil {
			cf(cfg)
		}
	}
	return cfg
}
