package syntax

import (
	"strconv"
	"strings"
)

// Path is a child-index pointer from the root, written like a JSON Pointer:
// "/" is the root and "/0/2" is the third child of the first child.
type Path []int

func (p Path) Child(i int) Path {
	return append(append(Path{}, p...), i)
}

func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return "/" + strings.Join(parts, "/")
}

// ParsePath reads a pointer produced by Path.String.
func ParsePath(s string) (Path, bool) {
	if s == "" || s == "/" {
		return Path{}, true
	}
	var out Path
	for _, part := range strings.Split(s, "/") {
		if part == "" {
			continue
		}
		i, err := strconv.Atoi(part)
		if err != nil || i < 0 {
			return nil, false
		}
		out = append(out, i)
	}
	return out, true
}

// PathOf returns the pointer from Root to n. ok is false when n is not in the
// tree or parents were never cached.
func (t *Tree) PathOf(n Node) (Path, bool) {
	var rev []int
	cur := n
	for !same(cur, t.root) {
		p, ok := t.Parent(cur)
		if !ok {
			return nil, false
		}
		idx := -1
		for i, c := range t.Children(p) {
			if same(c, cur) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, false
		}
		rev = append(rev, idx)
		cur = p
	}
	out := make(Path, len(rev))
	for i := range rev {
		out[i] = rev[len(rev)-1-i]
	}
	return out, true
}

// NodeAt follows p from Root, returning nil when it leaves the tree.
func (t *Tree) NodeAt(p Path) Node {
	cur := t.root
	for _, i := range p {
		cs := t.Children(cur)
		if i < 0 || i >= len(cs) {
			return nil
		}
		cur = cs[i]
	}
	return cur
}
