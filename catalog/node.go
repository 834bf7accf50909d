// Package catalog holds the hierarchical store of per-path metadata:
// ownership, source bindings, and access policies. Nodes are immutable once
// registered; the whole tree is replaced atomically on hot reload.
package catalog

import (
	"github.com/MSubhan6/open-moniker-sub000/binding"
	"github.com/MSubhan6/open-moniker-sub000/policy"
)

// Ownership carries six independently-nullable ownership fields. Each field
// inherits from the nearest ancestor that sets it, independent of the others.
type Ownership struct {
	// Simplified triple.
	AccountableOwner string `yaml:"accountable_owner" json:"accountable_owner,omitempty"`
	DataSpecialist   string `yaml:"data_specialist" json:"data_specialist,omitempty"`
	SupportChannel   string `yaml:"support_channel" json:"support_channel,omitempty"`

	// Formal governance roles.
	ADOP string `yaml:"adop" json:"adop,omitempty"`
	ADS  string `yaml:"ads" json:"ads,omitempty"`
	ADAL string `yaml:"adal" json:"adal,omitempty"`
}

// IsZero reports whether no ownership field is set.
func (o Ownership) IsZero() bool {
	return o == Ownership{}
}

// Node is one entry in the catalog tree. Nodes are created by catalog
// loading, held immutably inside the registry, and replaced wholesale on hot
// reload; they are never mutated field-by-field while live.
type Node struct {
	Path        string `yaml:"path" json:"path"`
	DisplayName string `yaml:"display_name" json:"display_name,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`

	// Domain is an explicit governance-domain override. It is surfaced for
	// lineage but does not drive ownership fallback, which keys off the first
	// path segment.
	Domain string `yaml:"domain" json:"domain,omitempty"`

	Ownership     Ownership              `yaml:"ownership" json:"ownership"`
	SourceBinding *binding.SourceBinding `yaml:"source_binding" json:"source_binding,omitempty"`
	AccessPolicy  *policy.AccessPolicy   `yaml:"access_policy" json:"access_policy,omitempty"`
	IsLeaf        bool                   `yaml:"is_leaf" json:"is_leaf"`
}

// clone returns a deep copy so registry reads never alias live nodes.
func (n *Node) clone() *Node {
	copied := *n
	if n.SourceBinding != nil {
		b := *n.SourceBinding
		b.Config = copyStringMap(n.SourceBinding.Config)
		b.Schema = copyStringMap(n.SourceBinding.Schema)
		copied.SourceBinding = &b
	}
	if n.AccessPolicy != nil {
		p := *n.AccessPolicy
		p.RequiredSegments = append([]int(nil), n.AccessPolicy.RequiredSegments...)
		p.BlockedPatterns = append([]string(nil), n.AccessPolicy.BlockedPatterns...)
		p.CardinalityMultipliers = append([]int64(nil), n.AccessPolicy.CardinalityMultipliers...)
		copied.AccessPolicy = &p
	}
	return &copied
}

func copyStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
