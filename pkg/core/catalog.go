package core

import (
	"errors"
	"fmt"
	"iter"

	"codexdb/pkg/common"
	"codexdb/pkg/core/bst"
	"codexdb/pkg/core/memory"
	"codexdb/pkg/monitor"
)

var ErrInvariant = errors.New("catalog invariant violated")

// Catalog indexes the same records twice, by ID and by title. Every record
// lives in both trees or in neither. The arena holds the one owning
// reference to each record, keyed by ID; the ID tree releases into it and
// the title tree never does.
type Catalog struct {
	byID    *bst.Tree[int]
	byTitle *bst.Tree[string]
	arena   *memory.Arena
	stats   *monitor.WorkloadStats
}

func NewCatalog() *Catalog {
	return &Catalog{
		byID:    bst.ByID(),
		byTitle: bst.ByTitle(),
		arena:   memory.NewArena(32),
		stats:   monitor.NewWorkloadStats(),
	}
}

// Insert adds rec to both indexes. It is a silent no-op returning false if
// either the ID or the title is already taken, or if rec could not be
// written back to a catalog file unchanged.
func (c *Catalog) Insert(rec *common.Record) bool {
	if !rec.Storable() {
		return false
	}
	if _, ok := c.byID.Get(rec.ID); ok {
		return false
	}
	if _, ok := c.byTitle.Get(rec.Title); ok {
		return false
	}

	c.byID.Insert(rec)
	c.byTitle.Insert(rec)
	c.arena.Put(rec)
	c.stats.RecordInsert()
	return true
}

// Add builds a record (truncating overlong fields) and inserts it.
func (c *Catalog) Add(id int, title, author string) (*common.Record, bool) {
	rec := common.NewRecord(id, title, author)
	if !c.Insert(rec) {
		return nil, false
	}
	return rec, true
}

func (c *Catalog) SearchByID(id int) (*common.Record, int) {
	n, visits := c.byID.Search(id)
	return c.found(n, visits)
}

func (c *Catalog) SearchByTitle(title string) (*common.Record, int) {
	n, visits := c.byTitle.Search(title)
	return c.found(n, visits)
}

func (c *Catalog) found(n *bst.Node, visits int) (*common.Record, int) {
	c.stats.RecordSearch(visits, n != nil)
	if n == nil {
		return nil, visits
	}
	return n.Record, visits
}

func (c *Catalog) DeleteByID(id int) bool {
	rec, ok := c.byID.Get(id)
	if !ok {
		return false
	}
	c.remove(rec)
	return true
}

func (c *Catalog) DeleteByTitle(title string) bool {
	rec, ok := c.byTitle.Get(title)
	if !ok {
		return false
	}
	c.remove(rec)
	return true
}

// remove unlinks rec from each tree by that tree's own key, then drops the
// owning reference. The keys are read before either delete runs because a
// two-child delete rewires node payloads.
func (c *Catalog) remove(rec *common.Record) {
	id, title := rec.ID, rec.Title
	c.byID.Delete(id)
	c.byTitle.Delete(title)
	c.arena.Release(rec)
	c.stats.RecordDelete()
}

func (c *Catalog) Len() int { return c.byID.Len() }

// Heights returns the height of the ID tree and of the title tree.
func (c *Catalog) Heights() (int, int) {
	return c.byID.Height(), c.byTitle.Height()
}

// ByID yields records in ascending ID order.
func (c *Catalog) ByID() iter.Seq[*common.Record] { return c.byID.All() }

// ByTitle yields records in ascending title order.
func (c *Catalog) ByTitle() iter.Seq[*common.Record] { return c.byTitle.All() }

func (c *Catalog) IDIndex() *bst.Tree[int] { return c.byID }

func (c *Catalog) TitleIndex() *bst.Tree[string] { return c.byTitle }

func (c *Catalog) Stats() *monitor.WorkloadStats { return c.stats }

// Verify checks that both trees and the arena hold exactly the same record
// pointers.
func (c *Catalog) Verify() error {
	if c.byID.Len() != c.byTitle.Len() || c.byID.Len() != c.arena.Len() {
		return fmt.Errorf("%w: sizes id=%d title=%d arena=%d",
			ErrInvariant, c.byID.Len(), c.byTitle.Len(), c.arena.Len())
	}

	seen := make(map[*common.Record]struct{}, c.byID.Len())
	for rec := range c.byID.All() {
		owned, ok := c.arena.Get(rec.ID)
		if !ok || owned != rec {
			return fmt.Errorf("%w: id %d not owned by arena", ErrInvariant, rec.ID)
		}
		seen[rec] = struct{}{}
	}
	for rec := range c.byTitle.All() {
		if _, ok := seen[rec]; !ok {
			return fmt.Errorf("%w: title %q missing from id index", ErrInvariant, rec.Title)
		}
	}
	return nil
}

// Close tears the catalog down: the borrowing title tree first, then the
// ID tree, whose release hook drops each record from the arena. Returns the
// number of records released.
func (c *Catalog) Close() int {
	c.byTitle.Clear(nil)
	return c.byID.Clear(func(rec *common.Record) {
		c.arena.Release(rec)
	})
}
