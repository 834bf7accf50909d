// Package binding turns a catalog source binding plus a parsed moniker into
// a source-agnostic connection descriptor. Binding configs are templated
// strings; rendering substitutes moniker-derived placeholders and dispatches
// per source type to assemble the final descriptor.
package binding

// SourceType identifies the backend a binding points at. The renderer
// dispatches on it with an explicit default branch, so unknown types pass
// their config through with placeholder substitution applied.
type SourceType string

const (
	SourceSnowflake SourceType = "snowflake"
	SourceOracle    SourceType = "oracle"
	SourceREST      SourceType = "rest"
	SourceStatic    SourceType = "static"
	SourceExcel     SourceType = "excel"
	SourceBloomberg SourceType = "bloomberg"
	SourceRefinitiv SourceType = "refinitiv"
)

// SourceBinding is the catalog's record of how a path maps to a backend.
type SourceBinding struct {
	SourceType SourceType        `yaml:"type" json:"type"`
	Config     map[string]string `yaml:"config" json:"config"`
	ReadOnly   bool              `yaml:"read_only" json:"read_only"`
	Schema     map[string]string `yaml:"schema" json:"schema,omitempty"`
}

// Descriptor is the rendered, source-agnostic connection description handed
// to a data adapter. Connection holds everything the adapter needs to reach
// the source; Query is set only for SQL-shaped sources.
type Descriptor struct {
	SourceType SourceType        `json:"source_type"`
	Connection map[string]string `json:"connection"`
	Query      string            `json:"query,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
	Schema     map[string]string `json:"schema,omitempty"`
	ReadOnly   bool              `json:"read_only"`
}
