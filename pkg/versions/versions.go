// Package versions orders plugin and SDK version strings.
//
// SDK versions come in two numbering families that are never ordered against
// each other: Numeric ("2400", the legacy generation) and Dotted ("3.7.6" or
// "VST 3.7.6", the current generation). Compare refuses to order across
// families; callers are expected to partition by Family first.
//
// An empty version belongs to the Dotted family and is its minimal value: it
// equals another empty version and is less than every non-empty Dotted
// version, "0.0" included. It is not comparable with a Numeric version.
package versions

import (
	"strings"

	"github.com/agentstation/vstmap/pkg/errors"
)

// Family is the numbering scheme of an SDK version string.
type Family string

const (
	// Numeric versions are a single run of digits, e.g. "2400".
	Numeric Family = "numeric"
	// Dotted versions are dot-separated components, optionally prefixed, e.g. "VST 3.7.6".
	Dotted Family = "dotted"
)

// String returns the family name.
func (f Family) String() string {
	return string(f)
}

// FamilyOf classifies a version string. Surrounding whitespace is ignored;
// one or more ASCII digits is Numeric, anything else (empty included) is Dotted.
func FamilyOf(version string) Family {
	if isDigits(strings.TrimSpace(version)) {
		return Numeric
	}
	return Dotted
}

// Ordering is the result of comparing two versions.
type Ordering int

const (
	// Less means the first version is older.
	Less Ordering = -1
	// Equal means both versions denote the same release.
	Equal Ordering = 0
	// Greater means the first version is newer.
	Greater Ordering = 1
)

// String returns a readable name for the ordering.
func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "equal"
	}
}

// Compare orders two SDK version strings. It returns a
// *errors.VersionFamilyMismatchError when one is Numeric and the other Dotted;
// an empty version counts as Dotted.
func Compare(a, b string) (Ordering, error) {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)

	fa, fb := FamilyOf(a), FamilyOf(b)
	if fa != fb {
		return Equal, &errors.VersionFamilyMismatchError{
			A:       a,
			B:       b,
			FamilyA: fa.String(),
			FamilyB: fb.String(),
		}
	}

	if a == "" || b == "" {
		return compareEmpty(a, b), nil
	}

	if fa == Numeric {
		return compareDigits(a, b), nil
	}
	return compareComponents(components(a), components(b)), nil
}

// CompareComponents orders two plugin version strings using the dotted
// discipline regardless of family, so "12" and "12.0.1" are comparable.
func CompareComponents(a, b string) Ordering {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return compareEmpty(a, b)
	}
	return compareComponents(components(a), components(b))
}

// ComparePlugin orders two plugin observations: SDK version first, then the
// plugin version when the SDK versions are equal.
func ComparePlugin(aSDK, aVersion, bSDK, bVersion string) (Ordering, error) {
	sdk, err := Compare(aSDK, bSDK)
	if err != nil {
		return Equal, err
	}
	if sdk != Equal {
		return sdk, nil
	}
	return CompareComponents(aVersion, bVersion), nil
}

// compareEmpty orders two trimmed strings where at least one is empty.
func compareEmpty(a, b string) Ordering {
	switch {
	case a == "" && b == "":
		return Equal
	case a == "":
		return Less
	default:
		return Greater
	}
}

// components strips any prefix before the first digit and splits the rest on
// dots. Each component keeps only its leading digit run ("6-beta" -> "6").
func components(version string) []string {
	start := strings.IndexFunc(version, isDigit)
	if start < 0 {
		return []string{"0"}
	}

	parts := strings.Split(version[start:], ".")
	out := make([]string, len(parts))
	for i, part := range parts {
		end := 0
		for end < len(part) && part[end] >= '0' && part[end] <= '9' {
			end++
		}
		out[i] = part[:end]
	}
	return out
}

// compareComponents compares component lists left to right, padding the
// shorter list with zeros.
func compareComponents(a, b []string) Ordering {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		var ca, cb string
		if i < len(a) {
			ca = a[i]
		}
		if i < len(b) {
			cb = b[i]
		}
		if o := compareDigits(ca, cb); o != Equal {
			return o
		}
	}
	return Equal
}

// compareDigits compares two digit strings numerically without converting
// them, so arbitrarily long values cannot overflow. Empty reads as zero.
func compareDigits(a, b string) Ordering {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	switch {
	case len(a) < len(b):
		return Less
	case len(a) > len(b):
		return Greater
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}
