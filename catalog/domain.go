package catalog

// Domain is a governance domain used only as an ownership fallback. Its
// fields map onto the simplified ownership triple: Owner to AccountableOwner,
// TechCustodian to DataSpecialist, HelpChannel to SupportChannel.
type Domain struct {
	Name          string `yaml:"name" json:"name"`
	Owner         string `yaml:"owner" json:"owner,omitempty"`
	TechCustodian string `yaml:"tech_custodian" json:"tech_custodian,omitempty"`
	HelpChannel   string `yaml:"help_channel" json:"help_channel,omitempty"`
}

// DomainLookup supplies domains by name for ownership fallback.
type DomainLookup interface {
	Domain(name string) (Domain, bool)
}

// DomainMap is a DomainLookup backed by a plain map keyed by domain name.
type DomainMap map[string]Domain

// Domain implements DomainLookup.
func (m DomainMap) Domain(name string) (Domain, bool) {
	d, ok := m[name]
	return d, ok
}
