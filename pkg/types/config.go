package types

import "fmt"

// NodeConfig carries node-level constraints. No node constraints are defined
// yet; the type exists so every kind is declared the same way.
type NodeConfig struct{}

// EdgeConfig describes the logical properties of one binary relation type and
// is shared by every instance of that type. Flags describe possibility or
// prohibition, never obligation: Reflexive permits a self-loop but does not
// require one.
type EdgeConfig struct {
	// Symmetric: if A → B exists, B → A is logically valid.
	Symmetric bool `json:"symmetric" yaml:"symmetric" msgpack:"symmetric"`

	// Antisymmetric: A → B and B → A may coexist only when A == B.
	Antisymmetric bool `json:"antisymmetric" yaml:"antisymmetric" msgpack:"antisymmetric"`

	// Asymmetric: A → B forbids B → A.
	Asymmetric bool `json:"asymmetric" yaml:"asymmetric" msgpack:"asymmetric"`

	// Reflexive: an entity may relate to itself.
	Reflexive bool `json:"reflexive" yaml:"reflexive" msgpack:"reflexive"`

	// Irreflexive: an entity must never relate to itself.
	Irreflexive bool `json:"irreflexive" yaml:"irreflexive" msgpack:"irreflexive"`

	// Transitive is declarative metadata; no closure is computed.
	Transitive bool `json:"transitive" yaml:"transitive" msgpack:"transitive"`

	// Functional: a source has at most one outgoing edge of this type.
	Functional bool `json:"functional" yaml:"functional" msgpack:"functional"`

	// InverseFunctional: a target has at most one incoming edge of this type.
	InverseFunctional bool `json:"inverse_functional" yaml:"inverse_functional" msgpack:"inverse_functional"`

	// AllowsDuplicates permits several edges with the same (source, target).
	AllowsDuplicates bool `json:"allows_duplicates" yaml:"allows_duplicates" msgpack:"allows_duplicates"`

	// Inverse names the dual edge type, if any. Not enforced.
	Inverse string `json:"inverse,omitempty" yaml:"inverse,omitempty" msgpack:"inverse,omitempty"`
}

// HyperedgeConfig describes the logical properties of one n-ary relation
// type. Unordered switches every comparison between source or target lists
// from sequence equality to set equality.
type HyperedgeConfig struct {
	Unordered         bool   `json:"unordered" yaml:"unordered" msgpack:"unordered"`
	AllowsDuplicates  bool   `json:"allows_duplicates" yaml:"allows_duplicates" msgpack:"allows_duplicates"`
	Cyclic            bool   `json:"cyclic" yaml:"cyclic" msgpack:"cyclic"`
	Reflexive         bool   `json:"reflexive" yaml:"reflexive" msgpack:"reflexive"`
	Functional        bool   `json:"functional" yaml:"functional" msgpack:"functional"`
	InverseFunctional bool   `json:"inverse_functional" yaml:"inverse_functional" msgpack:"inverse_functional"`
	Transitive        bool   `json:"transitive" yaml:"transitive" msgpack:"transitive"`
	Inverse           string `json:"inverse,omitempty" yaml:"inverse,omitempty" msgpack:"inverse,omitempty"`
}

// Symmetry is the symmetric/antisymmetric/asymmetric flag family of an
// EdgeConfig collapsed into a single choice.
type Symmetry int

const (
	SymmetryNone Symmetry = iota
	SymmetrySymmetric
	SymmetryAntisymmetric
	SymmetryAsymmetric
)

func (s Symmetry) String() string {
	switch s {
	case SymmetryNone:
		return "none"
	case SymmetrySymmetric:
		return "symmetric"
	case SymmetryAntisymmetric:
		return "antisymmetric"
	case SymmetryAsymmetric:
		return "asymmetric"
	default:
		return fmt.Sprintf("Symmetry(%d)", int(s))
	}
}

// Reflexivity is the reflexive/irreflexive flag family of an EdgeConfig.
type Reflexivity int

const (
	ReflexivityNone Reflexivity = iota
	ReflexivityReflexive
	ReflexivityIrreflexive
)

func (r Reflexivity) String() string {
	switch r {
	case ReflexivityNone:
		return "none"
	case ReflexivityReflexive:
		return "reflexive"
	case ReflexivityIrreflexive:
		return "irreflexive"
	default:
		return fmt.Sprintf("Reflexivity(%d)", int(r))
	}
}

// Symmetry returns the symmetry family of the config. Asymmetric implies
// antisymmetric, so it wins when both are set. The result is only meaningful
// for a config that passes Validate.
func (c EdgeConfig) Symmetry() Symmetry {
	switch {
	case c.Asymmetric:
		return SymmetryAsymmetric
	case c.Antisymmetric:
		return SymmetryAntisymmetric
	case c.Symmetric:
		return SymmetrySymmetric
	default:
		return SymmetryNone
	}
}

// Reflexivity returns the reflexivity family of the config.
func (c EdgeConfig) Reflexivity() Reflexivity {
	switch {
	case c.Irreflexive:
		return ReflexivityIrreflexive
	case c.Reflexive:
		return ReflexivityReflexive
	default:
		return ReflexivityNone
	}
}

// WithSymmetry returns a copy of c with the symmetry flags set to s.
func (c EdgeConfig) WithSymmetry(s Symmetry) EdgeConfig {
	c.Symmetric = s == SymmetrySymmetric
	c.Antisymmetric = s == SymmetryAntisymmetric
	c.Asymmetric = s == SymmetryAsymmetric
	return c
}

// WithReflexivity returns a copy of c with the reflexivity flags set to r.
func (c EdgeConfig) WithReflexivity(r Reflexivity) EdgeConfig {
	c.Reflexive = r == ReflexivityReflexive
	c.Irreflexive = r == ReflexivityIrreflexive
	return c
}

// contradictions lists flag pairs that cannot both hold for a non-empty
// relation. Asymmetric together with antisymmetric is redundant and allowed.
var contradictions = []struct {
	a, b string
	both func(EdgeConfig) bool
}{
	{"symmetric", "asymmetric", func(c EdgeConfig) bool { return c.Symmetric && c.Asymmetric }},
	{"symmetric", "antisymmetric", func(c EdgeConfig) bool { return c.Symmetric && c.Antisymmetric }},
	{"reflexive", "irreflexive", func(c EdgeConfig) bool { return c.Reflexive && c.Irreflexive }},
	{"reflexive", "asymmetric", func(c EdgeConfig) bool { return c.Reflexive && c.Asymmetric }},
}

// Validate reports contradictory flag combinations. It wraps
// ErrContradictoryConfig and names the first offending pair.
func (c EdgeConfig) Validate() error {
	for _, p := range contradictions {
		if p.both(c) {
			return fmt.Errorf("%w: %s and %s are both set", ErrContradictoryConfig, p.a, p.b)
		}
	}
	return nil
}

// Validate accepts every combination of hyperedge flags.
func (c HyperedgeConfig) Validate() error {
	return nil
}
