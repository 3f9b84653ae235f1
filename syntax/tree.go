package syntax

import (
	"errors"
	"fmt"
	"sync"
)

// ErrSharedNode is returned by CacheParents when one node appears under two
// parents. Edited trees must be produced with Clone.
var ErrSharedNode = errors.New("syntax: node has two parents")

// Tree is a rooted program together with the side tables computed from it.
// Nodes stay immutable; children and parents are memoized here by ID.
// Shares are definitions visible after every binding enclosure, such as
// native streams.
type Tree struct {
	root   Node
	shares []Node

	mu                sync.Mutex
	children          map[ID][]Node
	parents           map[ID]Node
	parentsCached     bool
	childComputations int
}

func NewTree(root Node, shares ...Node) *Tree {
	return &Tree{
		root:     root,
		shares:   shares,
		children: map[ID][]Node{},
		parents:  map[ID]Node{},
	}
}

func (t *Tree) Root() Node     { return t.root }
func (t *Tree) Shares() []Node { return t.shares }

// Children returns the direct children of n, computing them at most once.
func (t *Tree) Children(n Node) []Node {
	if n == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.childrenLocked(n)
}

func (t *Tree) childrenLocked(n Node) []Node {
	if cs, ok := t.children[n.ID()]; ok {
		return cs
	}
	cs := ComputeChildren(n)
	t.childComputations++
	t.children[n.ID()] = cs
	return cs
}

// ChildComputations reports how many times children were actually computed.
func (t *Tree) ChildComputations() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.childComputations
}

// CacheParents links every node of the root and of each share to its parent
// in a single top-down pass. It must run before any parent-dependent query.
func (t *Tree) CacheParents() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.parents = map[ID]Node{}
	roots := append([]Node{t.root}, t.shares...)
	for _, r := range roots {
		if r == nil {
			continue
		}
		if err := t.linkLocked(r); err != nil {
			return err
		}
	}
	t.parentsCached = true
	return nil
}

func (t *Tree) linkLocked(n Node) error {
	seen := map[ID]bool{}
	for _, c := range t.childrenLocked(n) {
		if seen[c.ID()] {
			return fmt.Errorf("%w: %s twice under %s", ErrSharedNode, describe(c), describe(n))
		}
		seen[c.ID()] = true
		if prev, ok := t.parents[c.ID()]; ok && prev.ID() != n.ID() {
			return fmt.Errorf("%w: %s under %s and %s", ErrSharedNode, describe(c), describe(prev), describe(n))
		}
		t.parents[c.ID()] = n
		if err := t.linkLocked(c); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) ParentsCached() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.parentsCached
}

// Parent returns the parent of n. ok is false for roots, for nodes outside
// the tree and before CacheParents.
func (t *Tree) Parent(n Node) (Node, bool) {
	if n == nil {
		return nil, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.parents[n.ID()]
	return p, ok
}

// Ancestors lists the parent of n first and the root last. It reports false
// when parents were never cached.
func (t *Tree) Ancestors(n Node) ([]Node, bool) {
	if !t.ParentsCached() {
		return nil, false
	}
	var out []Node
	for p, ok := t.Parent(n); ok; p, ok = t.Parent(p) {
		out = append(out, p)
	}
	return out, true
}

// Traverse visits the whole tree depth first, children before parents. It
// stops and returns false as soon as visit does.
func (t *Tree) Traverse(visit func(Node) bool) bool {
	return t.TraverseFrom(t.root, visit)
}

// TraverseFrom is Traverse restricted to the subtree of n.
func (t *Tree) TraverseFrom(n Node, visit func(Node) bool) bool {
	if n == nil {
		return true
	}
	for _, c := range t.Children(n) {
		if !t.TraverseFrom(c, visit) {
			return false
		}
	}
	return visit(n)
}

// Nodes returns every node of the tree accepted by include, or all of them
// when include is nil.
func (t *Tree) Nodes(include func(Node) bool) []Node {
	var out []Node
	t.Traverse(func(n Node) bool {
		if include == nil || include(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindByID searches the tree, then the shares, for the node with id.
func (t *Tree) FindByID(id ID) Node {
	var found Node
	find := func(n Node) bool {
		if n.ID() == id {
			found = n
			return false
		}
		return true
	}
	if !t.Traverse(find) {
		return found
	}
	for _, s := range t.shares {
		if !t.TraverseFrom(s, find) {
			return found
		}
	}
	return nil
}

// Contains reports whether n belongs to the tree rooted at Root.
func (t *Tree) Contains(n Node) bool { return t.ContainsIn(t.root, n) }

// ContainsIn reports whether n is ancestor or one of its descendants by
// walking the parent chain of n upward.
func (t *Tree) ContainsIn(ancestor, n Node) bool {
	if ancestor == nil || n == nil {
		return false
	}
	cur := n
	for {
		if cur.ID() == ancestor.ID() {
			return true
		}
		p, ok := t.Parent(cur)
		if !ok {
			return false
		}
		cur = p
	}
}

// NearestAncestor returns the closest ancestor of n accepted by match.
func (t *Tree) NearestAncestor(n Node, match func(Node) bool) Node {
	for p, ok := t.Parent(n); ok; p, ok = t.Parent(p) {
		if match(p) {
			return p
		}
	}
	return nil
}

// SlotOf returns the grammar slot of the parent of child that holds it.
func (t *Tree) SlotOf(child Node) (Slot, bool) {
	p, ok := t.Parent(child)
	if !ok {
		return Slot{}, false
	}
	for _, s := range p.Grammar() {
		for _, c := range s.Nodes {
			if c != nil && c.ID() == child.ID() {
				return s, true
			}
		}
	}
	return Slot{}, false
}

// Clone returns a new tree identical to t except that original is replaced.
// The new tree has fresh caches and its parents are already linked; t is left
// untouched.
func (t *Tree) Clone(original, replacement Node) (*Tree, error) {
	root, err := Clone(t.root, original, replacement)
	if err != nil {
		return nil, err
	}
	out := NewTree(root, t.shares...)
	if err := out.CacheParents(); err != nil {
		return nil, err
	}
	return out, nil
}

// Clone copies the subtree at root, substituting replacement for the node
// whose ID equals original's.
func Clone(root, original, replacement Node) (Node, error) {
	if root == nil {
		return nil, nil
	}
	if original != nil && root.ID() == original.ID() {
		if replacement == nil {
			return nil, fmt.Errorf("%w: root cannot be removed", ErrInvalidReplacement)
		}
		return replacement, nil
	}
	return root.Clone(original, replacement)
}

func same(a, b Node) bool {
	return a != nil && b != nil && a.ID() == b.ID()
}
