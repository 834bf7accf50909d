package moniker

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxNamespaceLength is the longest a namespace token may be.
const MaxNamespaceLength = 64

var (
	namespacePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	versionPattern   = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// Parse parses a full moniker string into its component fields.
//
// The grammar, informally:
//
//	["moniker://"] [namespace "@"] path ["@" version ["/" subResource]] ["/" ("v"|"V") digits] ["?" query]
//
// Disambiguation happens in a fixed order: scheme and query are stripped
// first, then the namespace (the text before the first "@", only when that
// "@" precedes the first "/" and the text is a well-formed namespace), then a
// trailing "/vN" revision, then the version split on the last remaining "@".
// Whatever is left must be a valid path. Any violation returns a *ParseError
// and no partially-built Moniker.
func Parse(input string) (Moniker, error) {
	body := input
	if strings.HasPrefix(body, Scheme) {
		body = body[len(Scheme):]
	}

	// Split off the query string.
	rawQuery := ""
	if i := strings.IndexByte(body, '?'); i >= 0 {
		rawQuery = body[i+1:]
		body = body[:i]
	}

	m := Moniker{}

	// Namespace: the text before the first "@" is a namespace only when that
	// "@" occurs before the first "/" and the text matches the namespace
	// grammar. A dotted prefix like "risk.cvar@latest" is not a namespace; it
	// falls through to the version split below.
	if at := strings.IndexByte(body, '@'); at >= 0 {
		slash := strings.IndexByte(body, '/')
		candidate := body[:at]
		if (slash < 0 || at < slash) && isNamespace(candidate) {
			m.Namespace = candidate
			body = body[at+1:]
		}
	}

	// Trailing revision: a final "/v<digits>" segment, case-insensitive.
	if i := strings.LastIndexByte(body, '/'); i >= 0 {
		tail := body[i+1:]
		if len(tail) >= 2 && (tail[0] == 'v' || tail[0] == 'V') && allDigits(tail[1:]) {
			rev, err := strconv.Atoi(tail[1:])
			if err != nil {
				return Moniker{}, parseErrorf(input, tail, "revision out of range")
			}
			m.Revision = rev
			m.HasRevision = true
			body = body[:i]
		}
	}

	// Version and sub-resource: split on the last "@" remaining in the body.
	if at := strings.LastIndexByte(body, '@'); at >= 0 {
		versionRest := body[at+1:]
		body = body[:at]
		version := versionRest
		if slash := strings.IndexByte(versionRest, '/'); slash >= 0 {
			version = versionRest[:slash]
			sub := versionRest[slash+1:]
			if err := validateSubResource(input, sub); err != nil {
				return Moniker{}, err
			}
			m.SubResource = sub
		}
		if !versionPattern.MatchString(version) {
			return Moniker{}, parseErrorf(input, version, "version must be alphanumeric")
		}
		m.Version = version
	}

	if body == "" {
		return Moniker{}, parseErrorf(input, "", "missing path")
	}
	segments := strings.Split(body, Separator)
	for _, seg := range segments {
		if err := ValidateSegment(seg); err != nil {
			pe := err.(*ParseError)
			return Moniker{}, parseErrorf(input, seg, "%s", pe.Message)
		}
	}
	m.Path = Path{segments: segments}

	if rawQuery != "" {
		m.Params = parseQuery(rawQuery)
	}
	return m, nil
}

// MustParse is Parse for static moniker strings; it panics on error.
func MustParse(input string) Moniker {
	m, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return m
}

func isNamespace(s string) bool {
	return s != "" && len(s) <= MaxNamespaceLength && namespacePattern.MatchString(s)
}

func validateSubResource(input, sub string) error {
	if sub == "" {
		return parseErrorf(input, sub, "empty sub-resource")
	}
	for _, part := range strings.Split(sub, ".") {
		if err := ValidateSegment(part); err != nil {
			pe := err.(*ParseError)
			return parseErrorf(input, part, "sub-resource: %s", pe.Message)
		}
	}
	return nil
}

// parseQuery splits k=v pairs on "&". The first occurrence of a key wins.
func parseQuery(rawQuery string) map[string]string {
	params := make(map[string]string)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value := pair, ""
		if i := strings.IndexByte(pair, '='); i >= 0 {
			key = pair[:i]
			value = pair[i+1:]
		}
		if key == "" {
			continue
		}
		if _, seen := params[key]; !seen {
			params[key] = value
		}
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
