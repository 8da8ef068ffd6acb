package types

// Kind distinguishes the three entity namespaces. Each kind has its own type
// names: a node type and an edge type may share a name.
type Kind string

const (
	KindNode      Kind = "node"
	KindEdge      Kind = "edge"
	KindHyperedge Kind = "hyperedge"
)

// Kinds lists every entity kind in load order: nodes before the relations
// that reference them.
var Kinds = []Kind{KindNode, KindEdge, KindHyperedge}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNode, KindEdge, KindHyperedge:
		return true
	}
	return false
}

// ParseKind converts a string to a Kind. Returns ErrUnknownKind for any other
// value.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", ErrUnknownKind
	}
	return k, nil
}
