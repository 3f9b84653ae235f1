package syntax

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ID identifies a node for the lifetime of the process.
type ID uint64

var lastID atomic.Uint64

func nextID() ID { return ID(lastID.Add(1)) }

// NewID allocates an identity for a node implemented outside this package.
func NewID() ID { return nextID() }

// ErrInvalidReplacement is returned by Clone when a replacement does not fit the
// slot of the node it replaces.
var ErrInvalidReplacement = errors.New("syntax: replacement does not fit slot")

// Node is one element of a program tree. Nodes are immutable once built; edited
// trees are produced with Clone. Caches computed from nodes (children, parents,
// types, conflicts) live in side tables keyed by ID.
type Node interface {
	ID() ID
	Kind() Kind
	// Grammar lists the child slots of the node in parse order together with
	// their current children. Children are derived from it.
	Grammar() []Slot
	// Clone returns a structural copy of the subtree in which the node equal
	// to original (by ID) is replaced by replacement.
	Clone(original, replacement Node) (Node, error)
}

// Definition is a node that introduces a name into its binding enclosure.
type Definition interface {
	Node
	HasName(name string) bool
	Name() string
}

// Slot describes one child position of a node: its name, the categories it
// accepts and the children currently filling it.
type Slot struct {
	Name     string
	Accepts  Category
	List     bool
	Optional bool
	Nodes    []Node
}

// Fits reports whether n may fill the slot.
func (s Slot) Fits(n Node) bool { return n != nil && s.Accepts.Contains(n) }

// ComputeChildren flattens the grammar of n into its ordered direct children.
func ComputeChildren(n Node) []Node {
	if n == nil {
		return nil
	}
	var out []Node
	for _, s := range n.Grammar() {
		for _, c := range s.Nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

type base struct{ id ID }

func newBase() base { return base{id: nextID()} }

// ID returns the process-unique identity of the node.
func (b base) ID() ID { return b.id }

// ---- slot helpers ----

func one(name string, accepts Category, n Node) Slot {
	s := Slot{Name: name, Accepts: accepts}
	if n != nil {
		s.Nodes = []Node{n}
	}
	return s
}

func optional(name string, accepts Category, n Node) Slot {
	s := one(name, accepts, n)
	s.Optional = true
	return s
}

func list[T Node](name string, accepts Category, xs []T) Slot {
	s := Slot{Name: name, Accepts: accepts, List: true}
	for _, x := range xs {
		s.Nodes = append(s.Nodes, x)
	}
	return s
}

// ---- clone helpers ----

func cloneOrReplace(child Node, name string, accepts Category, original, replacement Node) (Node, error) {
	if child == nil {
		return nil, nil
	}
	if original != nil && child.ID() == original.ID() {
		if replacement == nil || !accepts.Contains(replacement) {
			return nil, fmt.Errorf("%w: %s cannot fill %q (accepts %s)", ErrInvalidReplacement, describe(replacement), name, accepts)
		}
		return replacement, nil
	}
	return child.Clone(original, replacement)
}

func cloneAs[T Node](child T, name string, accepts Category, original, replacement Node) (T, error) {
	var zero T
	n, err := cloneOrReplace(child, name, accepts, original, replacement)
	if err != nil || n == nil {
		return zero, err
	}
	out, ok := n.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s cannot fill %q", ErrInvalidReplacement, describe(n), name)
	}
	return out, nil
}

func cloneList[T Node](xs []T, name string, accepts Category, original, replacement Node) ([]T, error) {
	if xs == nil {
		return nil, nil
	}
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		c, err := cloneAs(x, name, accepts, original, replacement)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// cloner accumulates the first error of a sequence of child clones so that
// Clone implementations read as a single constructor call.
type cloner struct {
	original, replacement Node
	err                   error
}

func (c *cloner) node(child Node, name string, accepts Category) Node {
	if c.err != nil {
		return nil
	}
	n, err := cloneOrReplace(child, name, accepts, c.original, c.replacement)
	c.err = err
	return n
}

func (c *cloner) token(t *Token, name string) *Token {
	if c.err != nil || t == nil {
		return t
	}
	out, err := cloneAs(t, name, TokenCategory, c.original, c.replacement)
	c.err = err
	return out
}

func (c *cloner) tokens(ts []*Token, name string) []*Token {
	if c.err != nil {
		return nil
	}
	out, err := cloneList(ts, name, TokenCategory, c.original, c.replacement)
	c.err = err
	return out
}

func (c *cloner) docs(ds []*Doc) []*Doc {
	if c.err != nil {
		return nil
	}
	out, err := cloneList(ds, "docs", DocCategory, c.original, c.replacement)
	c.err = err
	return out
}

func (c *cloner) binds(bs []*Bind, name string) []*Bind {
	if c.err != nil {
		return nil
	}
	out, err := cloneList(bs, name, BindCategory, c.original, c.replacement)
	c.err = err
	return out
}

func (c *cloner) nodes(ns []Node, name string, accepts Category) []Node {
	if c.err != nil {
		return nil
	}
	out, err := cloneList(ns, name, accepts, c.original, c.replacement)
	c.err = err
	return out
}

func describe(n Node) string {
	if n == nil {
		return "nothing"
	}
	return n.Kind().String()
}
