package convert

//go:generate go tool stringer -type=Verdict -output=verdict_string.go

// Verdict is the compatibility level between a source and a destination type.
type Verdict int

const (
	// Impossible means no conversion path exists.
	Impossible Verdict = iota
	// Explicit means a runtime conversion operation must be synthesized.
	Explicit
	// Widening means the source is assignable to the destination; the value
	// is reused as-is.
	Widening
	// Identity means the types are equal.
	Identity
)

// Possible reports whether a conversion path exists.
func (v Verdict) Possible() bool { return v != Impossible }
