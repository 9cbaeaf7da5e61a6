package registers

import "errors"

var (
	ErrNoTopClasses    = errors.New("register bank has no top-level register classes")
	ErrInvalidUnits    = errors.New("invalid number of register units")
	ErrTooManyNames    = errors.New("more unit names than register units")
	ErrDuplicateBank   = errors.New("duplicate register bank")
	ErrDuplicateClass  = errors.New("duplicate register class")
	ErrIndexCollision  = errors.New("register class index collision")
	ErrInvalidWidth    = errors.New("invalid register class width")
	ErrEmptyClass      = errors.New("register class addresses no registers")
	ErrUnitOutOfRange  = errors.New("register class unit out of bank range")
	ErrTopClassOverlap = errors.New("top-level register classes overlap")
	ErrPartitionGap    = errors.New("top-level register classes do not cover the bank")
	ErrNotContained    = errors.New("register class is not contained in its parent class")
	ErrUnknownClass    = errors.New("unknown register class")

	// Reported as a warning, not as a build failure
	ErrNoBanks = errors.New("ISA has no register banks")
)

// Non-fatal diagnostic found while building the registers of an ISA
type Warning struct {
	ISA string
	Err error
}

func (w Warning) String() string {
	return w.ISA + ": " + w.Err.Error()
}
