package pipeline

import (
	"errors"

	"github.com/sarchlab/urisc/translate"
)

var f = translate.From

// ErrInternalFault marks a memory fault reached from inside a cycle. The
// stage range checks make it unreachable for well-formed state.
var ErrInternalFault = errors.New(f("internal pipeline fault"))

// FaultError locates an internal fault.
type FaultError struct {
	PC    uint32
	Cycle uint64
	Err   error
}

func (err *FaultError) Error() string {
	return f("cycle %v pc 0x%02X: %v: %v", err.Cycle, err.PC, ErrInternalFault, err.Err)
}

func (err *FaultError) Unwrap() error {
	return err.Err
}

func (err *FaultError) Is(target error) bool {
	return target == ErrInternalFault
}
