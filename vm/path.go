package vm

import "fmt"

type pathKind uint8

const (
	pathRegister pathKind = iota
	pathStack
)

type slotMode uint8

const (
	slotTop slotMode = iota
	slotIndex
	slotPush
)

// Slot locates a cell on the operand stack.
//
//	Top()      the current top, read and written in place
//	At(i)      absolute index, 0 is the bottom
//	PushSlot() write only; writing pushes a new value
//
// Resolving a slot never pops. Only writing to PushSlot changes the
// stack length.
type Slot struct {
	mode  slotMode
	index int
}

func Top() Slot {
	return Slot{mode: slotTop}
}

func At(i int) Slot {
	return Slot{mode: slotIndex, index: i}
}

func PushSlot() Slot {
	return Slot{mode: slotPush}
}

func (s Slot) String() string {
	switch s.mode {
	case slotTop:
		return "[top]"
	case slotIndex:
		return fmt.Sprintf("[%d]", s.index)
	default:
		return "[push]"
	}
}

// Path addresses either a register or a stack slot
type Path struct {
	kind pathKind
	reg  Register
	slot Slot
}

func RegPath(r Register) Path {
	return Path{kind: pathRegister, reg: r}
}

func StackPath(s Slot) Path {
	return Path{kind: pathStack, slot: s}
}

func (p Path) IsRegister() bool {
	return p.kind == pathRegister
}

func (p Path) String() string {
	if p.kind == pathRegister {
		return p.reg.String()
	}
	return p.slot.String()
}

func (vm *VM) read(p Path) (int32, error) {
	if p.kind == pathRegister {
		return vm.registers.Get(p.reg)
	}

	switch p.slot.mode {
	case slotTop:
		return vm.stack.Read(vm.stack.Len() - 1)
	case slotIndex:
		return vm.stack.Read(p.slot.index)
	default:
		return 0, fmt.Errorf("%w: %s is write only", ErrInvalidStackAddress, p.slot)
	}
}

// write either applies fully or leaves the VM untouched
func (vm *VM) write(p Path, v int32) error {
	if p.kind == pathRegister {
		return vm.registers.Set(p.reg, v)
	}

	switch p.slot.mode {
	case slotTop:
		return vm.stack.Write(vm.stack.Len()-1, v)
	case slotIndex:
		return vm.stack.Write(p.slot.index, v)
	default:
		return vm.stack.Push(v)
	}
}
