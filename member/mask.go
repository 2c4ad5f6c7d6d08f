package member

// Mask selects the member categories and conventions eligible for a search.
type Mask uint

const (
	InvokeProcedure Mask = 1 << iota // registered package-level functions and methods
	CreateInstance                   // constructors
	GetField                         // field reads
	SetField                         // field writes
	GetProperty                      // property getter methods
	SetProperty                      // property setter methods
	StaticOnly                       // restrict the search to static members
	InstanceOnly                     // restrict the search to instance members
	IgnoreCase                       // match member names case-insensitively

	// MaskAllMembers combines every member category.
	MaskAllMembers = InvokeProcedure | CreateInstance | GetField | SetField | GetProperty | SetProperty
	// MaskDefault is the unset-mask default: every category, both
	// conventions, exact-case names.
	MaskDefault = MaskAllMembers
	// MaskNone selects nothing.
	MaskNone Mask = 0
)

// Has reports whether all of the given bits are set.
func (m Mask) Has(bits Mask) bool { return m&bits == bits }

// AllowsStatic reports whether static members may be searched.
func (m Mask) AllowsStatic() bool { return m&InstanceOnly == 0 || m&StaticOnly != 0 }

// AllowsInstance reports whether instance members may be searched.
func (m Mask) AllowsInstance() bool { return m&StaticOnly == 0 || m&InstanceOnly != 0 }

// FoldsCase reports whether names compare case-insensitively.
func (m Mask) FoldsCase() bool { return m&IgnoreCase != 0 }
