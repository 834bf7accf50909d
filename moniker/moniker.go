package moniker

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Scheme is the optional URI scheme prefix accepted and emitted by this
// package.
const Scheme = "moniker://"

// Moniker is the parsed form of a hierarchical symbolic name. It is a value
// type: treat instances as immutable once built.
type Moniker struct {
	Path        Path
	Namespace   string
	Version     string
	SubResource string
	Revision    int
	HasRevision bool
	Params      map[string]string
}

// VersionType classifies the moniker's version token. It is derived from
// Version on every call so the two can never disagree.
func (m Moniker) VersionType() VersionType {
	return ClassifyVersion(m.Version)
}

// Param returns the query parameter for key, or "" when absent.
func (m Moniker) Param(key string) string {
	return m.Params[key]
}

// Equal reports field-by-field equality, including query parameters.
func (m Moniker) Equal(other Moniker) bool {
	if !m.Path.Equal(other.Path) ||
		m.Namespace != other.Namespace ||
		m.Version != other.Version ||
		m.SubResource != other.SubResource ||
		m.Revision != other.Revision ||
		m.HasRevision != other.HasRevision ||
		len(m.Params) != len(other.Params) {
		return false
	}
	for k, v := range m.Params {
		if other.Params[k] != v {
			return false
		}
	}
	return true
}

// String returns the canonical moniker form without the scheme prefix:
// [namespace@]segment(/segment)*[@version[/sub.resource]][/vN][?k=v&...]
func (m Moniker) String() string {
	var b strings.Builder
	if m.Namespace != "" {
		b.WriteString(m.Namespace)
		b.WriteByte('@')
	}
	b.WriteString(m.Path.String())
	if m.Version != "" {
		b.WriteByte('@')
		b.WriteString(m.Version)
		if m.SubResource != "" {
			b.WriteByte('/')
			b.WriteString(m.SubResource)
		}
	}
	if m.HasRevision {
		b.WriteString("/v")
		b.WriteString(strconv.Itoa(m.Revision))
	}
	if len(m.Params) > 0 {
		b.WriteByte('?')
		keys := make([]string, 0, len(m.Params))
		for k := range m.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i > 0 {
				b.WriteByte('&')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(m.Params[k])
		}
	}
	return b.String()
}

// URI returns the canonical form with the moniker:// scheme prefix.
func (m Moniker) URI() string {
	return Scheme + m.String()
}

// MarshalJSON encodes the moniker as its canonical string.
func (m Moniker) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a canonical moniker string.
func (m *Moniker) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
