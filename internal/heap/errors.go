package heap

import "errors"

// Sentinel errors returned by this package. The evaluator (internal/eval)
// passes them through unchanged rather than converting them to rterr
// codes; heap itself never constructs an rterr.Error, matching the layering
// in the teacher's internal/vm/panic.go where only the VM assembles
// user-facing diagnostics.
var (
	ErrOutOfMemory      = errors.New("heap: out of memory")
	ErrInvalidRef       = errors.New("heap: reference does not name a live object")
	ErrBadEncoding      = errors.New("heap: corrupt object encoding")
	ErrUnpinOutOfOrder  = errors.New("heap: pins must be released in LIFO order")
	ErrScratchUnderflow = errors.New("heap: scratchpad freed more than it allocated")
	ErrPinned           = errors.New("heap: cannot collect while objects are pinned")
)
