package catalog

import "strings"

// OwnerField is one resolved ownership value plus the path where it was
// defined. Source is "domain:<name>" when the value came from a domain
// fallback. The zero value means unset.
type OwnerField struct {
	Value  string `json:"value,omitempty"`
	Source string `json:"source,omitempty"`
}

// ResolvedOwnership is the effective ownership for a path, with per-field
// provenance for audit and lineage.
type ResolvedOwnership struct {
	AccountableOwner OwnerField `json:"accountable_owner"`
	DataSpecialist   OwnerField `json:"data_specialist"`
	SupportChannel   OwnerField `json:"support_channel"`
	ADOP             OwnerField `json:"adop"`
	ADS              OwnerField `json:"ads"`
	ADAL             OwnerField `json:"adal"`
}

// resolveOwnership walks the ancestor chain from the root to path inclusive.
// Each of the six fields is an independent scan: the ancestor nearest the
// path that sets a non-empty value wins, and overriding one field at a deeper
// node never disturbs the others.
//
// Callers must hold the registry read lock.
func (r *Registry) resolveOwnership(path string, domains DomainLookup) ResolvedOwnership {
	var out ResolvedOwnership
	for _, ancestor := range ancestorChain(path) {
		node, ok := r.nodes[ancestor]
		if !ok {
			continue
		}
		own := node.Ownership
		takeField(&out.AccountableOwner, own.AccountableOwner, ancestor)
		takeField(&out.DataSpecialist, own.DataSpecialist, ancestor)
		takeField(&out.SupportChannel, own.SupportChannel, ancestor)
		takeField(&out.ADOP, own.ADOP, ancestor)
		takeField(&out.ADS, own.ADS, ancestor)
		takeField(&out.ADAL, own.ADAL, ancestor)
	}

	// Domain fallback fills the simplified triple only, keyed off the first
	// path segment rather than any node's explicit domain attribute.
	if domains != nil {
		if d, ok := domains.Domain(firstSegment(path)); ok {
			src := "domain:" + d.Name
			if out.AccountableOwner.Value == "" && d.Owner != "" {
				out.AccountableOwner = OwnerField{Value: d.Owner, Source: src}
			}
			if out.DataSpecialist.Value == "" && d.TechCustodian != "" {
				out.DataSpecialist = OwnerField{Value: d.TechCustodian, Source: src}
			}
			if out.SupportChannel.Value == "" && d.HelpChannel != "" {
				out.SupportChannel = OwnerField{Value: d.HelpChannel, Source: src}
			}
		}
	}
	return out
}

// takeField overwrites dst when value is set. The ancestor chain runs from
// root to leaf, so the last writer is the nearest one.
func takeField(dst *OwnerField, value, source string) {
	if value != "" {
		*dst = OwnerField{Value: value, Source: source}
	}
}

// firstSegment returns the path up to the first "." or "/" separator: the
// root of the catalog hierarchy this path belongs to.
func firstSegment(path string) string {
	if i := strings.IndexAny(path, "./"); i >= 0 {
		return path[:i]
	}
	return path
}
