package memory

import (
	"codexdb/pkg/common"

	"github.com/google/btree"
)

// Arena holds the owning reference to every live record, ordered by ID.
// Index trees point into it; only the arena decides when a record is gone.
type Arena struct {
	tree *btree.BTreeG[*common.Record]
}

func NewArena(degree int) *Arena {
	return &Arena{
		tree: btree.NewG(degree, func(a, b *common.Record) bool {
			return a.ID < b.ID
		}),
	}
}

// Put adopts rec. It reports false, leaving the arena unchanged, if a
// record with the same ID is already owned.
func (a *Arena) Put(rec *common.Record) bool {
	if a.tree.Has(rec) {
		return false
	}
	a.tree.ReplaceOrInsert(rec)
	return true
}

func (a *Arena) Get(id int) (*common.Record, bool) {
	return a.tree.Get(&common.Record{ID: id})
}

// Release drops the record with rec's ID. It reports false if nothing was
// owned under that ID, which would mean a double release.
func (a *Arena) Release(rec *common.Record) bool {
	_, ok := a.tree.Delete(rec)
	return ok
}

func (a *Arena) Len() int {
	return a.tree.Len()
}

func (a *Arena) Iterator(fn func(rec *common.Record) bool) {
	a.tree.Ascend(func(rec *common.Record) bool {
		return fn(rec)
	})
}
