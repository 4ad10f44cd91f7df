package action

// Flags are per-command options carried in the header
type Flags uint32

const (
	// FlagGhost places a preview: no spending, no clearing, no ride bookkeeping
	FlagGhost Flags = 1 << iota
	// FlagNoSpend validates and executes without charging the park
	FlagNoSpend
)

// Has reports whether all bits of f2 are set
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// ActionFlags are fixed traits of an action type
type ActionFlags uint32

const (
	// AllowWhilePaused lets the action run while the park is paused
	AllowWhilePaused ActionFlags = 1 << iota
)
