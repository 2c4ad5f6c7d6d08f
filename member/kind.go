package member

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind tags the closed set of callable member categories.
type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindProcedure
	KindConstructor
	KindPropertyGetter
	KindPropertySetter
	KindFieldGetter
	KindFieldSetter

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsAccessor reports whether the kind is a property or field accessor.
func (k Kind) IsAccessor() bool {
	switch k {
	default:
		return false
	case KindPropertyGetter, KindPropertySetter, KindFieldGetter, KindFieldSetter:
		return true
	}
}

// IsSetter reports whether the kind consumes a value instead of producing one.
func (k Kind) IsSetter() bool {
	return k == KindPropertySetter || k == KindFieldSetter
}
