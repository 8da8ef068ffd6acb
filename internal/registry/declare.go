package registry

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/hgraph/pkg/types"
)

// Schema is the document form of a set of type declarations.
//
//	nodes:
//	  - name: Person
//	    attributes:
//	      - {name: name, type: text, required: true}
//	edges:
//	  - name: parent_of
//	    config: {asymmetric: true, irreflexive: true}
type Schema struct {
	Nodes      []types.NodeType      `json:"nodes" yaml:"nodes,omitempty"`
	Edges      []types.EdgeType      `json:"edges" yaml:"edges,omitempty"`
	Hyperedges []types.HyperedgeType `json:"hyperedges" yaml:"hyperedges,omitempty"`
}

// Declare parses a YAML schema document from r and registers every type in
// it. Unknown keys are rejected so that a misspelled flag is not silently
// dropped. Registration stops at the first failing type.
func (r *Registry) Declare(src io.Reader) error {
	dec := yaml.NewDecoder(src)
	dec.KnownFields(true)

	var s Schema
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse schema: %w", err)
	}
	return r.RegisterSchema(s)
}

// DeclareFile reads a schema document from path and registers its types.
func (r *Registry) DeclareFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()

	if err := r.Declare(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// RegisterSchema registers every type of s, nodes first.
func (r *Registry) RegisterSchema(s Schema) error {
	for _, t := range s.Nodes {
		if err := r.RegisterNode(t); err != nil {
			return err
		}
	}
	for _, t := range s.Edges {
		if err := r.RegisterEdge(t); err != nil {
			return err
		}
	}
	for _, t := range s.Hyperedges {
		if err := r.RegisterHyperedge(t); err != nil {
			return err
		}
	}
	return nil
}

// Schema returns the registry's declarations as a document, each list
// sorted by name.
func (r *Registry) Schema() Schema {
	return Schema{
		Nodes:      r.NodeTypes(),
		Edges:      r.EdgeTypes(),
		Hyperedges: r.HyperedgeTypes(),
	}
}
