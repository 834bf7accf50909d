package binding

import (
	"fmt"

	"github.com/MSubhan6/open-moniker-sub000/moniker"
)

// dialect selects the SQL date syntax used by {version_date}.
type dialect int

const (
	dialectANSI dialect = iota
	dialectOracle
)

func dialectFor(sourceType SourceType) dialect {
	if sourceType == SourceOracle {
		return dialectOracle
	}
	return dialectANSI
}

// versionDate renders the {version_date} placeholder: a current-date
// expression when the moniker carries no version, a literal-date expression
// for date versions, and a bind placeholder for everything else (latest,
// tenor, custom).
func (d dialect) versionDate(version string, vt moniker.VersionType) string {
	switch vt {
	case moniker.VersionNone:
		if d == dialectOracle {
			return "TRUNC(SYSDATE)"
		}
		return "CURRENT_DATE"
	case moniker.VersionDate:
		if d == dialectOracle {
			return fmt.Sprintf("TO_DATE('%s', 'YYYYMMDD')", version)
		}
		return fmt.Sprintf("DATE '%s-%s-%s'", version[:4], version[4:6], version[6:8])
	case moniker.VersionLatest:
		return ":latest_date"
	default:
		return ":version_date"
	}
}
