package errors

import "fmt"

type UnknownMotionError struct {
	Name string
}

func (err UnknownMotionError) Error() string {
	return fmt.Sprintf("no such motion %s", err.Name)
}

type UnknownColorError struct {
	Name string
}

func (err UnknownColorError) Error() string {
	return fmt.Sprintf("no such color %s", err.Name)
}

type UnknownModeError struct {
	Name string
}

func (err UnknownModeError) Error() string {
	return fmt.Sprintf("no such mode %s", err.Name)
}

// PinConflictError is returned when two signals are wired to the same pin.
type PinConflictError struct {
	Pin           uint8
	First, Second string
}

func (err PinConflictError) Error() string {
	return fmt.Sprintf("pin %d assigned to both %s and %s", err.Pin, err.First, err.Second)
}

type UnsupportedRevisionError struct {
	Revision   string
	Constraint string
}

func (err UnsupportedRevisionError) Error() string {
	if len(err.Revision) == 0 {
		err.Revision = "UNKNOWN"
	}

	return fmt.Sprintf("unsupported hardware revision %s - require %s", err.Revision, err.Constraint)
}

// PinModeError is returned when a pin is used in a mode it was not configured for.
type PinModeError struct {
	Pin       uint8
	Want, Got string
}

func (err PinModeError) Error() string {
	return fmt.Sprintf("pin %d is configured %s, not %s", err.Pin, err.Got, err.Want)
}
