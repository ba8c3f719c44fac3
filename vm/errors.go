package vm

import (
	"errors"
	"fmt"
)

var (
	ErrStackUnderflow      = errors.New("stack underflow")
	ErrStackOverflow       = errors.New("stack overflow")
	ErrInvalidRegister     = errors.New("invalid register")
	ErrInvalidStackAddress = errors.New("invalid stack address")
	ErrArithmeticOverflow  = errors.New("arithmetic overflow")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrInvalidJumpTarget   = errors.New("invalid jump target")
	ErrInvalidInstruction  = errors.New("invalid instruction")

	// falling off the end of the program is a bad jump target too,
	// so errors.Is(ErrProgramEnd, ErrInvalidJumpTarget) holds
	ErrProgramEnd = fmt.Errorf("%w: ran past end of program", ErrInvalidJumpTarget)
)

// ErrFault is the terminal error of a faulted VM. It records where
// execution stopped; the cause is available through errors.Is/As.
type ErrFault struct {
	IP   int
	Inst Instruction
	Err  error
}

func NewErrFault(ip int, inst Instruction, err error) *ErrFault {
	return &ErrFault{
		IP:   ip,
		Inst: inst,
		Err:  err,
	}
}

func (f *ErrFault) Error() string {
	if f.Inst == nil {
		return fmt.Sprintf("fault at ip %d: %s", f.IP, f.Err)
	}
	return fmt.Sprintf("fault at ip %d (%s): %s", f.IP, f.Inst, f.Err)
}

func (f *ErrFault) Unwrap() error {
	return f.Err
}
