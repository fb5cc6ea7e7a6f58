package coverage

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidShift     = errors.New("invalid shift label")
	ErrUnknownPattern   = errors.New("unknown weekly pattern")
	ErrUnknownDayStatus = errors.New("unknown day status")
	ErrSameShift        = errors.New("source and destination shift are the same")
	ErrNotOnSourceShift = errors.New("employee is not on the source shift")
)

// MoveRejectedError is returned when a move request fails its preconditions.
// No SwapResult is computed for a rejected move.
type MoveRejectedError struct {
	EmployeeID  string
	Source      ShiftLabel
	Destination ShiftLabel
	Err         error
}

func (e *MoveRejectedError) Error() string {
	return fmt.Sprintf("move of %s from %v to %v rejected: %v", e.EmployeeID, e.Source, e.Destination, e.Err)
}

func (e *MoveRejectedError) Unwrap() error {
	return e.Err
}
