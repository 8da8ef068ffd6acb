package types

// NodeType declares a node type: its name, node-level config and the
// attributes its instances carry.
type NodeType struct {
	Name       string          `json:"name" yaml:"name"`
	Config     NodeConfig      `json:"config" yaml:"config"`
	Attributes []AttributeSpec `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// EdgeType declares a binary relation type. Config is shared by every edge
// of the type.
type EdgeType struct {
	Name       string          `json:"name" yaml:"name"`
	Config     EdgeConfig      `json:"config" yaml:"config"`
	Attributes []AttributeSpec `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// HyperedgeType declares an n-ary relation type.
type HyperedgeType struct {
	Name       string          `json:"name" yaml:"name"`
	Config     HyperedgeConfig `json:"config" yaml:"config"`
	Attributes []AttributeSpec `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}
