package types

import "errors"

// Settings holds store behavior that callers choose at construction time.
type Settings struct {
	// OrphanPolicy decides what DeleteNode does with relations that still
	// reference the node. Empty means OrphanTolerate.
	OrphanPolicy string `json:"orphan_policy" yaml:"orphan_policy"`
}

// Orphan policies.
const (
	// OrphanTolerate deletes the node and leaves dangling references, which
	// Graph.Orphans reports.
	OrphanTolerate = "tolerate"
	// OrphanReject refuses to delete a referenced node with ErrNodeReferenced.
	OrphanReject = "reject"
	// OrphanCascade deletes every edge and hyperedge referencing the node.
	OrphanCascade = "cascade"
)

// Settings validation errors.
var (
	ErrOrphanPolicyUnknown = errors.New("unknown orphan policy")
)

// knownOrphanPolicies lists the policies that Validate accepts.
var knownOrphanPolicies = map[string]bool{
	OrphanTolerate: true,
	OrphanReject:   true,
	OrphanCascade:  true,
}

// Validate checks that the Settings are well-formed.
func (s Settings) Validate() error {
	if s.OrphanPolicy == "" {
		return nil
	}
	if !knownOrphanPolicies[s.OrphanPolicy] {
		return ErrOrphanPolicyUnknown
	}
	return nil
}

// EffectiveOrphanPolicy returns the orphan policy with the default applied.
func (s Settings) EffectiveOrphanPolicy() string {
	if s.OrphanPolicy == "" {
		return OrphanTolerate
	}
	return s.OrphanPolicy
}
