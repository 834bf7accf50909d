package moniker

import (
	"strconv"
	"strings"
)

// VersionType classifies a moniker's version token by its shape.
type VersionType int

const (
	// VersionNone means the moniker carries no version.
	VersionNone VersionType = iota
	// VersionDate is an eight-digit YYYYMMDD token.
	VersionDate
	// VersionLatest is the "latest" keyword.
	VersionLatest
	// VersionTenor is digits followed by a Y/M/W/D unit, e.g. "3M".
	VersionTenor
	// VersionAll is the "all" keyword.
	VersionAll
	// VersionCustom is any other non-empty token.
	VersionCustom
)

// String returns the string representation of the version type
func (t VersionType) String() string {
	switch t {
	case VersionNone:
		return ""
	case VersionDate:
		return "date"
	case VersionLatest:
		return "latest"
	case VersionTenor:
		return "tenor"
	case VersionAll:
		return "all"
	case VersionCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ClassifyVersion derives the version type from a raw version token.
// Classification is a pure function of the token; it is never stored.
func ClassifyVersion(version string) VersionType {
	if version == "" {
		return VersionNone
	}
	switch strings.ToLower(version) {
	case "latest":
		return VersionLatest
	case "all":
		return VersionAll
	}
	if isDateVersion(version) {
		return VersionDate
	}
	if _, _, ok := TenorParts(version); ok {
		return VersionTenor
	}
	return VersionCustom
}

// TenorParts splits a tenor token like "3M" or "10y" into its numeric value
// and upper-cased unit. ok is false when the token is not a tenor.
func TenorParts(version string) (value int, unit string, ok bool) {
	if len(version) < 2 {
		return 0, "", false
	}
	last := version[len(version)-1]
	switch last {
	case 'Y', 'y', 'M', 'm', 'W', 'w', 'D', 'd':
	default:
		return 0, "", false
	}
	digits := version[:len(version)-1]
	n, err := strconv.Atoi(digits)
	if err != nil || digits[0] == '+' || digits[0] == '-' {
		return 0, "", false
	}
	return n, strings.ToUpper(string(last)), true
}

func isDateVersion(version string) bool {
	if len(version) != 8 {
		return false
	}
	for i := 0; i < 8; i++ {
		if version[i] < '0' || version[i] > '9' {
			return false
		}
	}
	return true
}
