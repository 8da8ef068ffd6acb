// Package types defines the entity model (Node, Edge, Hyperedge), the
// constraint configurations shared by every instance of a relation type,
// the Graph interface implemented by relation stores, and the standard
// error types for hgraph.
package types
