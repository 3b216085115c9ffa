package operations

import (
	"fmt"

	"github.com/npillmayer/nurbs/geometry"
	"github.com/pkg/errors"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("operations: invalid call configuration")
	// ErrInfeasible is matched by every *InfeasibleOperationError.
	ErrInfeasible = errors.New("operations: infeasible knot operation")
)

// ConfigurationError reports malformed call-site input: wrong argument
// length, a negative count, a missing parameter or an unsupported geometry.
// It is always detected before the geometry is modified.
type ConfigurationError struct {
	Op     string // insert, remove, refine or locate
	Reason string
	Index  int // offending argument position, -1 if not position specific
	Value  int // offending value (a count or an argument length)
}

func (e *ConfigurationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s (index %d, value %d)", e.Op, e.Reason, e.Index, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Is lets errors.Is match ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// InfeasibleOperationError reports a knot operation the local knot structure
// does not permit: inserting more than degree − multiplicity times, removing
// more than multiplicity times, removing an end knot of the domain, or
// refining a direction where every knot is already at full multiplicity.
type InfeasibleOperationError struct {
	Op           string
	Direction    geometry.Direction
	Knot         float64 // knot value; unused for refinement
	Count        int     // requested count (density for refinement)
	Multiplicity int     // observed multiplicity of Knot
	Degree       int
	Err          error // underlying cause, if any
}

func (e *InfeasibleOperationError) Error() string {
	var msg string
	switch e.Op {
	case opInsert:
		msg = fmt.Sprintf("knot %g cannot be inserted %d times (%s-dir): degree %d, multiplicity %d",
			e.Knot, e.Count, e.Direction, e.Degree, e.Multiplicity)
	case opRemove:
		msg = fmt.Sprintf("knot %g cannot be removed %d times (%s-dir): multiplicity %d",
			e.Knot, e.Count, e.Direction, e.Multiplicity)
	default:
		msg = fmt.Sprintf("cannot refine %s-direction with density %d", e.Direction, e.Count)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return e.Op + ": " + msg
}

// Is lets errors.Is match ErrInfeasible.
func (e *InfeasibleOperationError) Is(target error) bool {
	return target == ErrInfeasible
}

func (e *InfeasibleOperationError) Unwrap() error {
	return e.Err
}
