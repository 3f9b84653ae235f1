package conflict

import (
	"fmt"

	"github.com/reoring/glint/syntax"
	"github.com/reoring/glint/types"
)

// Checker computes and memoizes the local conflicts of each node of one tree.
type Checker struct {
	tree         *syntax.Tree
	types        *types.Context
	cache        map[syntax.ID]Conflicts
	computations int
}

func NewChecker(ctx *types.Context) *Checker {
	return &Checker{tree: ctx.Tree(), types: ctx, cache: map[syntax.ID]Conflicts{}}
}

// Computations reports how many nodes had their conflicts actually computed.
func (k *Checker) Computations() int { return k.computations }

// Conflicts returns the conflicts local to n, not its descendants.
func (k *Checker) Conflicts(n syntax.Node) Conflicts {
	if cs, ok := k.cache[n.ID()]; ok {
		return cs
	}
	k.computations++
	var cs Conflicts
	for _, d := range detectors {
		cs = append(cs, k.run(d, n)...)
	}
	k.cache[n.ID()] = cs
	return cs
}

// All concatenates the conflicts of every node, children before parents.
func (k *Checker) All() Conflicts { return k.AllIn(k.tree.Root()) }

// AllIn is All restricted to the subtree of n.
func (k *Checker) AllIn(n syntax.Node) Conflicts {
	out := Conflicts{}
	k.tree.TraverseFrom(n, func(m syntax.Node) bool {
		out = append(out, k.Conflicts(m)...)
		return true
	})
	return out
}

func (k *Checker) run(d detector, n syntax.Node) (out []Conflict) {
	defer func() {
		if r := recover(); r != nil {
			out = []Conflict{newConflict(CodeInternal, n, "detail", fmt.Sprint(r))}
		}
	}()
	return d(k, n)
}
