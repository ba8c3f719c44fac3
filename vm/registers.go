package vm

import (
	"fmt"
)

// Register names one of the six general purpose registers
type Register uint8

const (
	RegA Register = iota
	RegB
	RegC
	RegD
	RegE
	RegF

	NumRegisters = 6
)

var registerNames = [NumRegisters]string{"A", "B", "C", "D", "E", "F"}

func (r Register) Valid() bool {
	return r < NumRegisters
}

func (r Register) String() string {
	if !r.Valid() {
		return fmt.Sprintf("R?%d", uint8(r))
	}
	return registerNames[r]
}

// Registers is the register bank. It is a value type, so copies
// handed out for inspection don't alias the VM's bank.
type Registers [NumRegisters]int32

func (rs Registers) Get(r Register) (int32, error) {
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidRegister, r)
	}
	return rs[r], nil
}

func (rs *Registers) Set(r Register, v int32) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidRegister, r)
	}
	rs[r] = v
	return nil
}

// Map is handy for logging and tests
func (rs Registers) Map() map[string]int32 {
	out := make(map[string]int32, NumRegisters)
	for i, v := range rs {
		out[Register(i).String()] = v
	}
	return out
}
