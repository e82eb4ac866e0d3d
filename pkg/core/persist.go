package core

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"strings"

	"codexdb/pkg/common"
	"codexdb/pkg/logger"
	"codexdb/pkg/storage"
)

// Order selects how Save walks the ID tree.
type Order int

const (
	// InOrder writes records sorted by ID.
	InOrder Order = iota
	// PreOrder writes parents before children, so a reload rebuilds the
	// same tree shape instead of a chain.
	PreOrder
)

func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inorder", "in-order":
		return InOrder, nil
	case "preorder", "pre-order":
		return PreOrder, nil
	default:
		return InOrder, fmt.Errorf("unknown save order %q", s)
	}
}

func (o Order) String() string {
	if o == PreOrder {
		return "preorder"
	}
	return "inorder"
}

// Load builds a catalog from b, inserting records in source order. A
// missing source is not an error: the catalog comes back empty.
func Load(b storage.Backend, log *logger.Logger) (*Catalog, error) {
	c := NewCatalog()

	records, err := b.Load()
	if errors.Is(err, fs.ErrNotExist) {
		log.LogLoad(b.Name(), 0, true, nil)
		return c, nil
	}
	if err != nil {
		log.LogLoad(b.Name(), 0, false, err)
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	skipped := 0
	for _, rec := range records {
		if !c.Insert(rec) {
			skipped++
		}
	}
	if skipped > 0 {
		log.WithSource(b.Name()).Debug("duplicate records ignored", "count", skipped)
	}
	log.LogLoad(b.Name(), c.Len(), false, nil)
	return c, nil
}

// Save rewrites b with every record of the ID tree. The catalog itself is
// never modified, whatever the outcome.
func (c *Catalog) Save(b storage.Backend, order Order, log *logger.Logger) error {
	var seq iter.Seq[*common.Record]
	if order == PreOrder {
		seq = c.byID.PreOrder()
	} else {
		seq = c.byID.All()
	}

	n, err := b.Save(seq)
	log.LogSave(b.Name(), n, err)
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}
