// Package hgraph is the public entry point for building typed,
// constraint-validated graphs. Declare types on a Registry, build or load
// entities through it, and add them to a Graph; every edge and hyperedge is
// checked against the configuration of its type before it is stored.
package hgraph

import (
	"github.com/mesh-intelligence/hgraph/internal/memory"
	"github.com/mesh-intelligence/hgraph/internal/registry"
	"github.com/mesh-intelligence/hgraph/pkg/types"
)

// Version is the release version of the module.
const Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/hgraph"

type (
	// Registry maps type names to declarations. See NewRegistry.
	Registry = registry.Registry

	// Schema is the document form of a registry's declarations.
	Schema = registry.Schema

	// Graph is the in-memory relation store. See NewGraph.
	Graph = memory.Hypergraph

	// Option configures a Graph.
	Option = memory.Option

	// Observer receives store events.
	Observer = memory.Observer

	// Stats holds entity counts per kind.
	Stats = memory.Stats
)

// Store options.
var (
	WithLogger   = memory.WithLogger
	WithObserver = memory.WithObserver
)

// NewRegistry returns an empty type registry.
func NewRegistry() *Registry {
	return registry.New()
}

// NewGraph returns an empty store governed by settings.
func NewGraph(settings types.Settings, opts ...Option) (*Graph, error) {
	return memory.NewHypergraph(settings, opts...)
}
