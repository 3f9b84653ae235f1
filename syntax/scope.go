package syntax

// IsBindingEnclosureOf reports whether parent owns the names visible to its
// direct child. Blocks enclose their statements, function and stream
// definitions enclose their inputs and body, conversions enclose their body.
func IsBindingEnclosureOf(parent, child Node) bool {
	switch p := parent.(type) {
	case *Block:
		for _, s := range p.Statements {
			if same(s, child) {
				return true
			}
		}
	case *FunctionDefinition:
		return same(p.Expression, child) || containsBind(p.Inputs, child)
	case *StreamDefinition:
		return same(p.Expression, child) || containsBind(p.Inputs, child)
	case *ConversionDefinition:
		return same(p.Expression, child)
	}
	return false
}

func containsBind(bs []*Bind, n Node) bool {
	for _, b := range bs {
		if same(b, n) {
			return true
		}
	}
	return false
}

// DefinitionsOf lists the names an enclosure introduces.
func DefinitionsOf(enclosure Node) []Definition {
	var out []Definition
	switch e := enclosure.(type) {
	case *Block:
		for _, s := range e.Statements {
			switch d := s.(type) {
			case *Bind:
				out = append(out, d)
			case *FunctionDefinition:
				if len(d.Names) > 0 {
					out = append(out, d)
				}
			case *StreamDefinition:
				out = append(out, d)
			}
		}
	case *FunctionDefinition:
		for _, b := range e.Inputs {
			out = append(out, b)
		}
	case *StreamDefinition:
		for _, b := range e.Inputs {
			out = append(out, b)
		}
	}
	return out
}

// BindingEnclosureOf walks the parents of n until one encloses the path to n.
// It returns nil at the root.
func (t *Tree) BindingEnclosureOf(n Node) Node {
	cur := n
	for {
		p, ok := t.Parent(cur)
		if !ok {
			return nil
		}
		if IsBindingEnclosureOf(p, cur) {
			return p
		}
		cur = p
	}
}

// DefinitionOf resolves name as seen from the node from: enclosing scopes
// first, innermost outward, then the shares.
func (t *Tree) DefinitionOf(name string, from Node) Definition {
	all := t.collect(from, func(d Definition) bool { return d.HasName(name) }, true)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// AllDefinitionsOf lists every definition of name visible from from, in
// resolution order.
func (t *Tree) AllDefinitionsOf(name string, from Node) []Definition {
	return t.collect(from, func(d Definition) bool { return d.HasName(name) }, false)
}

// DefinitionsInScope lists every definition visible from from.
func (t *Tree) DefinitionsInScope(from Node) []Definition {
	return t.collect(from, func(Definition) bool { return true }, false)
}

func (t *Tree) collect(from Node, match func(Definition) bool, first bool) []Definition {
	var out []Definition
	for enc := t.BindingEnclosureOf(from); enc != nil; enc = t.BindingEnclosureOf(enc) {
		for _, d := range DefinitionsOf(enc) {
			if match(d) {
				out = append(out, d)
				if first {
					return out
				}
			}
		}
	}
	for _, s := range t.shares {
		if d, ok := s.(Definition); ok && match(d) {
			out = append(out, d)
			if first {
				return out
			}
		}
	}
	return out
}
