// Package bst implements the unbalanced binary search trees that index the
// catalog. One generic Tree is instantiated per key: ByID orders records
// numerically, ByTitle orders them byte-wise by title.
//
// Trees never rebalance; inserting sorted keys produces a chain whose height
// is n-1. Nodes are private to a tree, records are shared between trees.
package bst

import (
	"cmp"
	"iter"
	"strings"

	"codexdb/pkg/common"
)

type Node struct {
	Record *common.Record
	Left   *Node
	Right  *Node
}

type Tree[K any] struct {
	root    *Node
	size    int
	key     func(*common.Record) K
	compare func(a, b K) int
	owns    bool
}

// New creates an empty tree. owns marks the tree as responsible for
// releasing record payloads in Clear.
func New[K any](key func(*common.Record) K, compare func(a, b K) int, owns bool) *Tree[K] {
	return &Tree[K]{key: key, compare: compare, owns: owns}
}

// ByID returns a tree keyed by Record.ID that owns its payloads.
func ByID() *Tree[int] {
	return New(func(r *common.Record) int { return r.ID }, cmp.Compare[int], true)
}

// ByTitle returns a tree keyed by Record.Title that only borrows its payloads.
func ByTitle() *Tree[string] {
	return New(func(r *common.Record) string { return r.Title }, strings.Compare, false)
}

func (t *Tree[K]) Root() *Node { return t.root }

func (t *Tree[K]) Len() int { return t.size }

// Insert adds rec as a new leaf. A record whose key is already present is
// discarded and false is returned; the tree is left untouched.
func (t *Tree[K]) Insert(rec *common.Record) bool {
	var inserted bool
	t.root = t.insert(t.root, rec, &inserted)
	if inserted {
		t.size++
	}
	return inserted
}

func (t *Tree[K]) insert(n *Node, rec *common.Record, inserted *bool) *Node {
	if n == nil {
		*inserted = true
		return &Node{Record: rec}
	}

	c := t.compare(t.key(rec), t.key(n.Record))
	if c < 0 {
		n.Left = t.insert(n.Left, rec, inserted)
	} else if c > 0 {
		n.Right = t.insert(n.Right, rec, inserted)
	}
	return n
}

// Search returns the node holding key (nil if absent) and the number of
// nodes examined on the way, the match included.
func (t *Tree[K]) Search(key K) (*Node, int) {
	visits := 0
	return t.search(t.root, key, &visits), visits
}

func (t *Tree[K]) search(n *Node, key K, visits *int) *Node {
	if n == nil {
		return nil
	}

	*visits++
	c := t.compare(key, t.key(n.Record))
	switch {
	case c == 0:
		return n
	case c < 0:
		return t.search(n.Left, key, visits)
	default:
		return t.search(n.Right, key, visits)
	}
}

// Get is Search without the visit count.
func (t *Tree[K]) Get(key K) (*common.Record, bool) {
	n, _ := t.Search(key)
	if n == nil {
		return nil, false
	}
	return n.Record, true
}

// Delete unlinks the node holding key. The record itself is not released;
// it may still be reachable from another tree. Returns false if key is absent.
func (t *Tree[K]) Delete(key K) bool {
	var deleted bool
	t.root = t.delete(t.root, key, &deleted)
	if deleted {
		t.size--
	}
	return deleted
}

func (t *Tree[K]) delete(n *Node, key K, deleted *bool) *Node {
	if n == nil {
		return nil
	}

	c := t.compare(key, t.key(n.Record))
	if c < 0 {
		n.Left = t.delete(n.Left, key, deleted)
		return n
	}
	if c > 0 {
		n.Right = t.delete(n.Right, key, deleted)
		return n
	}

	if n.Left == nil {
		*deleted = true
		return n.Right
	}
	if n.Right == nil {
		*deleted = true
		return n.Left
	}

	// Two children: take over the successor's record, then remove the
	// successor's original slot, which has at most one child.
	succ := findMin(n.Right)
	n.Record = succ.Record
	n.Right = t.delete(n.Right, t.key(succ.Record), deleted)
	return n
}

func findMin(n *Node) *Node {
	cur := n
	for cur != nil && cur.Left != nil {
		cur = cur.Left
	}
	return cur
}

// Height is -1 for an empty tree and 0 for a single node.
func (t *Tree[K]) Height() int {
	return height(t.root)
}

func height(n *Node) int {
	if n == nil {
		return -1
	}
	return max(height(n.Left), height(n.Right)) + 1
}

// All yields records in ascending key order. Each call to the returned
// sequence walks the tree afresh.
func (t *Tree[K]) All() iter.Seq[*common.Record] {
	return func(yield func(*common.Record) bool) {
		inOrder(t.root, yield)
	}
}

func inOrder(n *Node, yield func(*common.Record) bool) bool {
	if n == nil {
		return true
	}
	return inOrder(n.Left, yield) && yield(n.Record) && inOrder(n.Right, yield)
}

// PreOrder yields node, left, right. Re-inserting records in this order
// rebuilds a tree of identical shape.
func (t *Tree[K]) PreOrder() iter.Seq[*common.Record] {
	return func(yield func(*common.Record) bool) {
		preOrder(t.root, yield)
	}
}

func preOrder(n *Node, yield func(*common.Record) bool) bool {
	if n == nil {
		return true
	}
	return yield(n.Record) && preOrder(n.Left, yield) && preOrder(n.Right, yield)
}

// Clear drops every node bottom-up. release is called once per record only
// if the tree owns its payloads; it may be nil. Returns the number of
// records handed to release.
func (t *Tree[K]) Clear(release func(*common.Record)) int {
	released := 0
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.Left)
		walk(n.Right)
		if t.owns && release != nil {
			release(n.Record)
			released++
		}
		n.Left, n.Right, n.Record = nil, nil, nil
	}
	walk(t.root)
	t.root = nil
	t.size = 0
	return released
}
