package trust

import "fmt"

// Severity is the ordered detection severity scale.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// severityPenalties is the fixed score impact per severity level.
var severityPenalties = map[Severity]float64{
	SeverityNone:     0,
	SeverityLow:      5.0,
	SeverityMedium:   10.0,
	SeverityHigh:     15.0,
	SeverityCritical: 20.0,
}

// ParseSeverity maps a rule-file severity label to its level.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "low":
		return SeverityLow, nil
	case "medium":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	case "critical":
		return SeverityCritical, nil
	}
	return SeverityNone, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	}
	return "none"
}

// Penalty returns the trust-score impact of a single match at this severity.
func (s Severity) Penalty() float64 {
	return severityPenalties[s]
}
