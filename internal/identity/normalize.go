// Package identity derives the stable matching key used to merge
// fitness-test rows across assessment cycles, and resolves logical fields
// against the header-spelling variants seen in the source exports.
package identity

import (
	"fmt"
	"strings"

	"fitrecon/internal/tabular"
)

// Raw export column names carrying participant identity.
const (
	ColumnName   = "Name"
	ColumnPhone  = "Phone Number"
	ColumnGender = "Gender"
	ColumnDay    = "D"
	ColumnMonth  = "M"
	ColumnYear   = "Y"
)

// RequiredColumns is the data-quality predicate for the parser: a row
// without all of these cannot be keyed and is dropped.
var RequiredColumns = []string{ColumnPhone, ColumnDay, ColumnMonth, ColumnYear}

// NormalizePhone strips every non-digit character and keeps the trailing
// eight digits, the local-number convention for Singapore mobiles. Shorter
// inputs return whatever digits remain, without padding.
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) <= 8 {
		return d
	}
	return d[len(d)-8:]
}

// NormalizeDOB renders day/month/year as YYYY-MM-DD, zero-padding day and
// month. No calendar validation is performed: "31"/"04" is accepted as
// given, matching the upstream exports.
func NormalizeDOB(day, month, year string) string {
	return fmt.Sprintf("%s-%s-%s", year, pad2(month), pad2(day))
}

func pad2(v string) string {
	if len(v) >= 2 {
		return v
	}
	return strings.Repeat("0", 2-len(v)) + v
}

// MatchKey derives the merge key for a parsed row:
// "{normalized dob}_{normalized phone suffix}". The key is scaffolding for
// one merge run and is never persisted.
func MatchKey(row tabular.Row) string {
	dob := NormalizeDOB(row[ColumnDay], row[ColumnMonth], row[ColumnYear])
	return dob + "_" + NormalizePhone(row[ColumnPhone])
}

// NormalizeGender maps recognizable codes to canonical labels and passes
// everything else through unchanged.
func NormalizeGender(raw string) string {
	switch raw {
	case "F", "female":
		return "female"
	case "M", "male":
		return "male"
	default:
		return raw
	}
}
