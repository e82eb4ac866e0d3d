package storage

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"codexdb/pkg/common"
	"codexdb/pkg/config"
)

var ErrUnknownDriver = errors.New("storage: unknown driver")

// Backend persists a whole catalog at once. Load reports a missing source
// with an error wrapping fs.ErrNotExist; Save replaces everything stored
// with the records of seq, in the order yielded.
type Backend interface {
	Load() ([]*common.Record, error)
	Save(records iter.Seq[*common.Record]) (int, error)
	Name() string
	Close() error
}

func Open(cfg config.StorageConfig) (Backend, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "text":
		return NewTextFile(cfg.Path), nil
	case "sqlite":
		return NewSQLiteBackend(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
