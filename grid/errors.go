package grid

import "errors"

// Structural errors. Callers match them with errors.Is; the wrapped message
// carries the offending bus or branch.
var (
	ErrBusCount          = errors.New("grid: bus count must be positive and match the bus collection")
	ErrBusIndex          = errors.New("grid: bus number out of range")
	ErrSelfLoop          = errors.New("grid: branch terminals coincide")
	ErrBranchIndex       = errors.New("grid: branch number out of range")
	ErrDuplicateBus      = errors.New("grid: duplicate bus number")
	ErrDuplicateBranch   = errors.New("grid: duplicate branch number")
	ErrMissingBusType    = errors.New("grid: bus has no type")
	ErrUnknownBusType    = errors.New("grid: unknown bus type")
	ErrUnknownBranch     = errors.New("grid: unknown branch variant")
	ErrInvalidTap        = errors.New("grid: transformer tap must be nonzero")
	ErrZeroReactance     = errors.New("grid: in-service branch has zero reactance")
	ErrMultipleReference = errors.New("grid: more than one reference bus")
)
