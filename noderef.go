package glint

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/glint/syntax"
)

// NodeRef names a node across process boundaries. ID is tried first; Path
// finds the node again in a clone whose identities differ.
type NodeRef struct {
	ID   syntax.ID `json:"id"`
	Path string    `json:"path,omitempty"`
}

// RefOf builds a reference to n. Path is empty for nodes outside the root
// tree, such as shared definitions.
func (p *Program) RefOf(n syntax.Node) NodeRef {
	ref := NodeRef{ID: n.ID()}
	if path, ok := p.tree.PathOf(n); ok {
		ref.Path = path.String()
	}
	return ref
}

// Resolve finds the node ref points to.
func (p *Program) Resolve(ref NodeRef) (syntax.Node, error) {
	if n := p.tree.FindByID(ref.ID); n != nil {
		return n, nil
	}
	if ref.Path != "" {
		if path, ok := syntax.ParsePath(ref.Path); ok {
			if n := p.tree.NodeAt(path); n != nil {
				return n, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: id %d path %q", ErrUnknownNode, ref.ID, ref.Path)
}

func (r NodeRef) String() string { return fmt.Sprintf("#%d%s", r.ID, r.Path) }

// MarshalRef writes ref as JSON.
func MarshalRef(ref NodeRef) ([]byte, error) { return json.Marshal(ref) }

// UnmarshalRef reads a reference written by MarshalRef.
func UnmarshalRef(data []byte) (NodeRef, error) {
	var ref NodeRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return NodeRef{}, fmt.Errorf("glint: node reference: %w", err)
	}
	return ref, nil
}
