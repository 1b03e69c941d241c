// Package status defines the test outcome severity order and the
// worst-case merge operation used to reduce many outcomes to one.
package status

// Status is a single test outcome severity.
type Status int

// Severities, least severe first. The ordinal is the severity rank:
// a higher value always wins a merge.
const (
	Unknown Status = iota
	Skipped
	Success
	ExpectedFailure
	Failure
)

// externalNames maps a Status to the spelling xcresulttool emits.
var externalNames = map[Status]string{
	Unknown:         "Unknown",
	Skipped:         "Skipped",
	Success:         "Success",
	ExpectedFailure: "Expected Failure",
	Failure:         "Failure",
}

// Parse converts an xcresult testStatus string to a Status.
// Unrecognized spellings map to Unknown.
func Parse(s string) Status {
	switch s {
	case "Failure":
		return Failure
	case "Expected Failure":
		return ExpectedFailure
	case "Success":
		return Success
	case "Skipped":
		return Skipped
	default:
		return Unknown
	}
}

// String returns the external spelling of the status.
func (s Status) String() string {
	if name, ok := externalNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Merge returns the more severe of a and b. It is commutative,
// associative, and idempotent, so folding any number of observations
// through it in any order yields the same worst-case status.
func Merge(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}

// MergeInto folds s into the entry for key, creating it if absent.
// A missing entry behaves as the identity: the first observation for
// a key is kept as-is.
func MergeInto(table map[string]Status, key string, s Status) {
	if prev, ok := table[key]; ok {
		table[key] = Merge(prev, s)
		return
	}
	table[key] = s
}
