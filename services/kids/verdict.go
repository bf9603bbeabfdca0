package kids

// Verdict is the outcome of one safety signal. Absence of disqualifying evidence
// is Unknown, never Safe.
type Verdict int

const (
	Unknown Verdict = iota
	Safe
	Blocked
)

func (v Verdict) String() string {
	switch v {
	case Safe:
		return "safe"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// MarshalText lets verdicts appear by name in JSON reports.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
