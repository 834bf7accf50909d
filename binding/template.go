package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MSubhan6/open-moniker-sub000/moniker"
)

// placeholderPattern matches {name}, {name[N]} and {name[N]:column} tokens.
var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)(?:\[(\d+)\])?(?::([A-Za-z0-9_]+))?\}`)

// renderContext carries everything a template substitution can reference.
type renderContext struct {
	moniker  moniker.Moniker
	path     string   // effective path: the sub-path when bound at an ancestor
	segments []string // effective path split on "/"
	dialect  dialect
}

func newRenderContext(m moniker.Moniker, subPath string, sourceType SourceType) renderContext {
	path := subPath
	if path == "" {
		path = m.Path.String()
	}
	var segments []string
	if path != "" {
		segments = strings.Split(path, "/")
	}
	return renderContext{
		moniker:  m,
		path:     path,
		segments: segments,
		dialect:  dialectFor(sourceType),
	}
}

func (c renderContext) segment(i int) string {
	if i < 0 || i >= len(c.segments) {
		return ""
	}
	return c.segments[i]
}

// substitute replaces every placeholder in s with its value. Unrecognized
// placeholders are left untouched for forward compatibility.
func (c renderContext) substitute(s string) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(token string) string {
		groups := placeholderPattern.FindStringSubmatch(token)
		name, index, column := groups[1], groups[2], groups[3]
		vt := c.moniker.VersionType()

		switch name {
		case "path":
			return c.path
		case "segments":
			if index == "" {
				return token
			}
			i, _ := strconv.Atoi(index)
			return c.segment(i)
		case "version":
			return c.moniker.Version
		case "revision":
			if !c.moniker.HasRevision {
				return ""
			}
			return strconv.Itoa(c.moniker.Revision)
		case "namespace":
			return c.moniker.Namespace
		case "moniker":
			return c.moniker.String()
		case "sub_resource":
			return c.moniker.SubResource
		case "version_type":
			return vt.String()
		case "is_date":
			return boolToken(vt == moniker.VersionDate)
		case "is_latest":
			return boolToken(vt == moniker.VersionLatest)
		case "is_tenor":
			return boolToken(vt == moniker.VersionTenor)
		case "is_all":
			if index != "" {
				i, _ := strconv.Atoi(index)
				return boolToken(isWildcardSegment(c.segment(i)))
			}
			return boolToken(vt == moniker.VersionAll)
		case "tenor_value":
			if value, _, ok := moniker.TenorParts(c.moniker.Version); ok {
				return strconv.Itoa(value)
			}
			return ""
		case "tenor_unit":
			if _, unit, ok := moniker.TenorParts(c.moniker.Version); ok {
				return unit
			}
			return ""
		case "version_date":
			return c.dialect.versionDate(c.moniker.Version, vt)
		case "filter":
			if index == "" || column == "" {
				return token
			}
			i, _ := strconv.Atoi(index)
			return renderFilter(column, c.segment(i))
		default:
			return token
		}
	})
}

// renderFilter builds a SQL predicate for segment value. Wildcarded or
// missing segments render as a tautology so the surrounding AND chain stays
// valid.
func renderFilter(column, value string) string {
	if value == "" || isWildcardSegment(value) {
		return "1=1"
	}
	return fmt.Sprintf("%s = '%s'", column, strings.ReplaceAll(value, "'", "''"))
}

func isWildcardSegment(seg string) bool {
	return strings.EqualFold(seg, "ALL")
}

func boolToken(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
