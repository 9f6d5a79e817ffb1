// Package diag provides structured diagnostics for the compiler core,
// mirroring the caret-style reporting a reader of rustc or clang output
// would expect.
package diag

// Error codes surfaced by the middle-end and backend.
//
// Code ranges:
// E09xx: core fatal errors (malformed input the core refuses to process)
// W09xx: core warnings (anomalies the core tolerates and keeps going)
const (
	// ErrMalformedCFG: idom could not be computed for some reachable
	// block — the input CFG has a block unreachable from the entry.
	ErrMalformedCFG = "E0901"

	// ErrUnknownLabel: a Br/Jmp/Phi-source instruction refers to a
	// block label that does not exist in the function.
	ErrUnknownLabel = "E0902"

	// ErrDuplicateSSADef: rename produced two definitions of the same
	// SSA name — defensive, should be unreachable on well-formed input.
	ErrDuplicateSSADef = "E0903"

	// ErrSyntax: the textual IR source could not be parsed.
	ErrSyntax = "E0904"

	// WarnUnassignedVReg: the emitter printed a virtual register that
	// never received a physical register or a spill slot. Indicates an
	// allocator bug; the emitted text is still produced, debug-only.
	WarnUnassignedVReg = "W0901"
)

// Description returns a human-readable description of a diagnostic code.
func Description(code string) string {
	switch code {
	case ErrMalformedCFG:
		return "block is unreachable from the function entry; dominators could not be computed"
	case ErrUnknownLabel:
		return "instruction refers to a block label that does not exist in this function"
	case ErrDuplicateSSADef:
		return "SSA rename produced two definitions of the same name"
	case ErrSyntax:
		return "the textual IR source could not be parsed"
	case WarnUnassignedVReg:
		return "virtual register has no assigned physical register or spill slot at emit time"
	default:
		return "unknown diagnostic code"
	}
}

// IsWarning reports whether code names a warning rather than a fatal error.
func IsWarning(code string) bool {
	return len(code) > 0 && code[0] == 'W'
}
