package binding

import (
	"fmt"

	"github.com/MSubhan6/open-moniker-sub000/moniker"
)

// Render turns a source binding into a connection descriptor for the given
// moniker. subPath is the portion of the moniker's path beyond the catalog
// node where the binding was declared; pass "" when the binding is bound at
// the node itself. Rendering never performs I/O.
func Render(b *SourceBinding, m moniker.Moniker, subPath string) (*Descriptor, error) {
	ctx := newRenderContext(m, subPath, b.SourceType)

	// Substitute placeholders in every config value up front; the per-type
	// branches below only decide where each rendered value ends up.
	rendered := make(map[string]string, len(b.Config))
	for key, value := range b.Config {
		rendered[key] = ctx.substitute(value)
	}

	desc := &Descriptor{
		SourceType: b.SourceType,
		Connection: rendered,
		Params:     copyMap(m.Params),
		Schema:     copyMap(b.Schema),
		ReadOnly:   b.ReadOnly,
	}

	switch b.SourceType {
	case SourceSnowflake, SourceOracle:
		query, err := sqlQuery(b.SourceType, rendered)
		if err != nil {
			return nil, err
		}
		desc.Query = query
		delete(desc.Connection, "query")

	case SourceREST:
		if rendered["url"] == "" {
			return nil, fmt.Errorf("rest binding missing url template")
		}
		if rendered["method"] == "" {
			desc.Connection["method"] = "GET"
		}

	case SourceStatic, SourceExcel:
		if rendered["file"] == "" && rendered["pattern"] == "" {
			return nil, fmt.Errorf("%s binding missing file or pattern", b.SourceType)
		}

	case SourceBloomberg, SourceRefinitiv:
		// Market-data bindings are pure config: tickers, fields, and the
		// rendered request parameters all travel in Connection.

	default:
		// Unknown source types pass through verbatim with substitution
		// already applied.
	}

	return desc, nil
}

// sqlQuery resolves the query text for SQL-shaped sources: a literal query
// template when configured, otherwise a SELECT built from the table name.
func sqlQuery(sourceType SourceType, rendered map[string]string) (string, error) {
	if q := rendered["query"]; q != "" {
		return q, nil
	}
	if table := rendered["table"]; table != "" {
		return "SELECT * FROM " + table, nil
	}
	return "", fmt.Errorf("%s binding needs a query or table", sourceType)
}

func copyMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
