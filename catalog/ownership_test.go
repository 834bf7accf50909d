package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOwnership_PerFieldInheritance(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Node{Path: "a", Ownership: Ownership{AccountableOwner: "X"}}))
	require.NoError(t, r.Register(&Node{Path: "a/b", Ownership: Ownership{DataSpecialist: "Y"}}))
	require.NoError(t, r.Register(&Node{Path: "a/b/c"}))

	resolved := r.ResolveOwnership("a/b/c", nil)

	assert.Equal(t, OwnerField{Value: "X", Source: "a"}, resolved.AccountableOwner)
	assert.Equal(t, OwnerField{Value: "Y", Source: "a/b"}, resolved.DataSpecialist)
	assert.Equal(t, OwnerField{}, resolved.SupportChannel)
	assert.Equal(t, OwnerField{}, resolved.ADOP)
	assert.Equal(t, OwnerField{}, resolved.ADS)
	assert.Equal(t, OwnerField{}, resolved.ADAL)
}

func TestResolveOwnership_DeeperOverrideLeavesOthersAlone(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Node{Path: "a", Ownership: Ownership{
		AccountableOwner: "root-owner",
		DataSpecialist:   "root-specialist",
	}}))
	require.NoError(t, r.Register(&Node{Path: "a/b", Ownership: Ownership{
		AccountableOwner: "deep-owner",
	}}))

	resolved := r.ResolveOwnership("a/b", nil)

	assert.Equal(t, OwnerField{Value: "deep-owner", Source: "a/b"}, resolved.AccountableOwner)
	assert.Equal(t, OwnerField{Value: "root-specialist", Source: "a"}, resolved.DataSpecialist)
}

func TestResolveOwnership_MixedSeparators(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Node{Path: "risk", Ownership: Ownership{ADOP: "governor"}}))
	require.NoError(t, r.Register(&Node{Path: "risk.cvar", Ownership: Ownership{DataSpecialist: "quant"}}))

	resolved := r.ResolveOwnership("risk.cvar/758-A/USD", nil)

	assert.Equal(t, OwnerField{Value: "governor", Source: "risk"}, resolved.ADOP)
	assert.Equal(t, OwnerField{Value: "quant", Source: "risk.cvar"}, resolved.DataSpecialist)
}

func TestResolveOwnership_DomainFallback(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Node{Path: "risk.cvar", Ownership: Ownership{AccountableOwner: "X"}}))

	domains := DomainMap{
		"risk": {Name: "risk", Owner: "domain-owner", TechCustodian: "domain-custodian", HelpChannel: "#risk-help"},
	}
	resolved := r.ResolveOwnership("risk.cvar/758-A", domains)

	// Catalog values win over the domain fallback.
	assert.Equal(t, OwnerField{Value: "X", Source: "risk.cvar"}, resolved.AccountableOwner)
	// Unset simplified fields fall back to the domain.
	assert.Equal(t, OwnerField{Value: "domain-custodian", Source: "domain:risk"}, resolved.DataSpecialist)
	assert.Equal(t, OwnerField{Value: "#risk-help", Source: "domain:risk"}, resolved.SupportChannel)
	// Formal roles have no domain counterpart.
	assert.Equal(t, OwnerField{}, resolved.ADOP)
}

func TestResolveOwnership_DomainFallbackKeysOffFirstSegment(t *testing.T) {
	r := NewRegistry()
	// The node declares an explicit domain pointing elsewhere; fallback still
	// keys off the first path segment.
	require.NoError(t, r.Register(&Node{Path: "analytics.custom", Domain: "indices"}))

	domains := DomainMap{
		"analytics": {Name: "analytics", Owner: "analytics-owner"},
		"indices":   {Name: "indices", Owner: "indices-owner"},
	}
	resolved := r.ResolveOwnership("analytics.custom", domains)

	assert.Equal(t, OwnerField{Value: "analytics-owner", Source: "domain:analytics"}, resolved.AccountableOwner)
}

func TestResolveOwnership_NoNodesNoDomains(t *testing.T) {
	r := NewRegistry()
	resolved := r.ResolveOwnership("ghost.path", nil)
	assert.Equal(t, ResolvedOwnership{}, resolved)
}

func TestFirstSegment(t *testing.T) {
	assert.Equal(t, "risk", firstSegment("risk.cvar/758-A"))
	assert.Equal(t, "risk", firstSegment("risk/cvar"))
	assert.Equal(t, "risk", firstSegment("risk"))
}

func TestOwnership_IsZero(t *testing.T) {
	assert.True(t, Ownership{}.IsZero())
	assert.False(t, Ownership{ADS: "someone"}.IsZero())
}
