package types

import "github.com/google/uuid"

// Node is an entity instance. Domain attributes declared by the node's type
// live in Attributes.
type Node struct {
	ID         uuid.UUID
	Type       string
	Config     NodeConfig
	Attributes map[string]any
}

// Clone returns a copy of the node that shares no maps with n.
func (n *Node) Clone() *Node {
	c := *n
	c.Attributes = cloneAttributes(n.Attributes)
	return &c
}

// Record returns the untyped attribute record for the node.
func (n *Node) Record() Record {
	rec := newRecord(KindNode, n.ID, n.Type, n.Attributes)
	rec[FieldConfig] = map[string]any{}
	return rec
}
