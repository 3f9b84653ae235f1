package codec

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/reoring/glint/conflict"
	"github.com/reoring/glint/i18n"
	"github.com/reoring/glint/syntax"
)

// NodeInfo locates a node of a conflict and says what it has to do with it.
type NodeInfo struct {
	ID          syntax.ID `json:"id"`
	Kind        string    `json:"kind"`
	Path        string    `json:"path,omitempty"`
	Explanation string    `json:"explanation"`
}

type ConflictEntry struct {
	Code      string     `json:"code"`
	Primary   NodeInfo   `json:"primary"`
	Secondary []NodeInfo `json:"secondary,omitempty"`
}

// ConflictReport is the JSON document written for a set of conflicts.
type ConflictReport struct {
	Count     int             `json:"count"`
	Conflicts []ConflictEntry `json:"conflicts"`
}

// NewConflictReport explains cs through tr. Paths are filled in when tree is
// given and knows the node.
func NewConflictReport(tree *syntax.Tree, cs conflict.Conflicts, tr i18n.Translator) ConflictReport {
	r := ConflictReport{Count: len(cs), Conflicts: make([]ConflictEntry, 0, len(cs))}
	for _, c := range cs {
		e := ConflictEntry{Code: c.Code, Primary: nodeInfo(tree, c.Primary.Node, c.Explain(tr))}
		for i, msg := range c.ExplainSecondary(tr) {
			e.Secondary = append(e.Secondary, nodeInfo(tree, c.Secondary[i].Node, msg))
		}
		r.Conflicts = append(r.Conflicts, e)
	}
	return r
}

func nodeInfo(tree *syntax.Tree, n syntax.Node, explanation string) NodeInfo {
	info := NodeInfo{Explanation: explanation}
	if n == nil {
		return info
	}
	info.ID, info.Kind = n.ID(), n.Kind().String()
	if tree != nil {
		if p, ok := tree.PathOf(n); ok {
			info.Path = p.String()
		}
	}
	return info
}

// EncodeConflicts writes r as indented JSON.
func EncodeConflicts(w io.Writer, r ConflictReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("codec: encode conflicts: %w", err)
	}
	return nil
}

// DecodeConflicts reads a report written by EncodeConflicts.
func DecodeConflicts(rd io.Reader) (ConflictReport, error) {
	var r ConflictReport
	dec := json.NewDecoder(rd)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return ConflictReport{}, fmt.Errorf("codec: decode conflicts: %w", err)
	}
	if r.Count != len(r.Conflicts) {
		return ConflictReport{}, fmt.Errorf("codec: decode conflicts: count %d but %d entries", r.Count, len(r.Conflicts))
	}
	return r, nil
}
