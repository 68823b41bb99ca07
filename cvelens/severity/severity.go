package severity

import "strings"

// Severity is the ranked remediation severity scale used by tracker sources
// (critical > important > moderate > low).
type Severity int

const (
	Unknown Severity = iota
	Low
	Moderate
	Important
	Critical
)

var All = []Severity{
	Unknown,
	Low,
	Moderate,
	Important,
	Critical,
}

func (s Severity) String() string {
	switch s {
	case Low:
		return "Low"
	case Moderate:
		return "Moderate"
	case Important:
		return "Important"
	case Critical:
		return "Critical"
	}
	return "Unknown"
}

// Parse maps a free-form severity string onto the ranked scale. Unrecognized
// or empty values are Unknown (and are ignored when computing the highest
// severity across a set of trackers).
func Parse(s string) Severity {
	clean := strings.TrimSpace(strings.ToLower(s))
	switch clean {
	case "low":
		return Low
	case "moderate", "medium":
		return Moderate
	case "important", "high":
		return Important
	case "critical":
		return Critical
	}
	return Unknown
}

// Highest returns the highest-ranked severity among the given values,
// ignoring Unknown entries.
func Highest(values ...Severity) Severity {
	result := Unknown
	for _, v := range values {
		if v > result {
			result = v
		}
	}
	return result
}
