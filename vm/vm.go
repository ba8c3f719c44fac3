package vm

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// VM executes a Program over an operand stack and a register bank.
// A VM is not safe for concurrent use; run separate programs on
// separate VMs.
type VM struct {
	program *Program
	// instruction pointer
	ip int

	stack     *Stack
	registers Registers

	state State
	err   error
	steps int

	logger *zap.Logger
}

type VMOpt func(*VM) *VM

// LoggerOpt sets the logger. A nil logger keeps the default.
func LoggerOpt(l *zap.Logger) VMOpt {
	return func(vm *VM) *VM {
		if l != nil {
			vm.logger = l
		}
		return vm
	}
}

// StackDepthOpt bounds the operand stack. 0 leaves it unbounded.
func StackDepthOpt(depth int) VMOpt {
	return func(vm *VM) *VM {
		vm.stack = NewStack(MaxStack(depth))
		return vm
	}
}

func NewVM(program *Program, opts ...VMOpt) *VM {
	if program == nil {
		program = NewProgram()
	}
	vm := &VM{
		program: program,
		ip:      0,
		stack:   NewStack(),
		state:   Running,
		logger:  zap.L(),
	}

	for _, opt := range opts {
		vm = opt(vm)
	}

	vm.logger = vm.logger.Named("vm")

	return vm
}

// Run steps until the VM halts or faults. The returned error is the
// *ErrFault for a faulted VM and nil otherwise.
func (vm *VM) Run() (State, error) {
	for !vm.state.Terminal() {
		vm.Step()
	}
	return vm.state, vm.err
}

// Step executes exactly one instruction. On a halted or faulted VM
// it does nothing and reports the terminal state again.
func (vm *VM) Step() (State, error) {
	if vm.state.Terminal() {
		return vm.state, vm.err
	}

	inst, err := vm.program.Fetch(vm.ip)
	if err != nil {
		return vm.fault(nil, err)
	}
	if inst == nil {
		return vm.fault(nil, fmt.Errorf("%w: nil", ErrInvalidInstruction))
	}

	vm.logger.Debug("exec",
		zap.Int("ip", vm.ip),
		zap.Stringer("inst", inst),
	)

	vm.steps++
	if err := vm.exec(inst); err != nil {
		if errors.Is(err, ErrInvalidInstruction) {
			// don't keep a value we can't print
			inst = nil
		}
		return vm.fault(inst, err)
	}
	return vm.state, nil
}

func (vm *VM) fault(inst Instruction, err error) (State, error) {
	vm.state = Faulted
	vm.err = NewErrFault(vm.ip, inst, err)

	vm.logger.Debug("fault",
		zap.Int("ip", vm.ip),
		zap.Error(err),
	)
	return vm.state, vm.err
}

// exec applies inst. On error nothing has been changed and the
// instruction pointer still points at inst.
func (vm *VM) exec(inst Instruction) error {
	switch inst := inst.(type) {
	case Psh:
		if err := vm.stack.Push(inst.Value); err != nil {
			return err
		}
	case Pop:
		if _, err := vm.stack.Pop(); err != nil {
			return err
		}
	case Add, Sub, Mul, Div:
		if err := vm.arith(inst.Opcode(), arithOps[inst.Opcode()]); err != nil {
			return err
		}
	case Set:
		if err := vm.registers.Set(inst.Reg, inst.Value); err != nil {
			return err
		}
	case Cpy:
		v, err := vm.read(inst.Src)
		if err != nil {
			return fmt.Errorf("cpy src %s: %w", inst.Src, err)
		}
		if err := vm.write(inst.Dst, v); err != nil {
			return fmt.Errorf("cpy dst %s: %w", inst.Dst, err)
		}
	case Jmp:
		target := vm.ip + inst.Offset
		if !vm.program.ValidTarget(target) {
			return fmt.Errorf("%w: %d + %d = %d, program len %d",
				ErrInvalidJumpTarget, vm.ip, inst.Offset, target, vm.program.Len())
		}
		vm.ip = target
		return nil
	case Hlt:
		vm.state = Halted
		vm.logger.Debug("halting",
			zap.Int("program len", vm.program.Len()),
			zap.Int("ip", vm.ip),
			zap.Int32s("stack", vm.stack.Values()),
			zap.Any("registers", vm.registers.Map()),
		)
		return nil
	default:
		// includes pointers to instruction structs, which satisfy the
		// interface but aren't instruction values
		return fmt.Errorf("%w: %T", ErrInvalidInstruction, inst)
	}

	vm.ip++
	return nil
}

// arith pops rhs then lhs and pushes lhs OP rhs. Operands are only
// consumed once the result is known to be valid.
func (vm *VM) arith(op Opcode, fn func(a, b int64) (int64, error)) error {
	n := vm.stack.Len()
	if n < 2 {
		return fmt.Errorf("%w: %s needs 2 operands, have %d", ErrStackUnderflow, op, n)
	}
	rhs, err := vm.stack.Read(n - 1)
	if err != nil {
		return err
	}
	lhs, err := vm.stack.Read(n - 2)
	if err != nil {
		return err
	}

	wide, err := fn(int64(lhs), int64(rhs))
	if err != nil {
		return err
	}
	if wide > math.MaxInt32 || wide < math.MinInt32 {
		return fmt.Errorf("%w: %d %s %d", ErrArithmeticOverflow, lhs, op, rhs)
	}
	val := int32(wide)
	vm.logger.Debug("arith",
		zap.Stringer("op", op),
		zap.Int32("lhs", lhs),
		zap.Int32("rhs", rhs),
		zap.Int32("result", val),
	)

	if err := vm.stack.Write(n-2, val); err != nil {
		return err
	}
	_, err = vm.stack.Pop()
	return err
}

// arithOps compute in 64 bits so arith can range check the result
var arithOps = map[Opcode]func(a, b int64) (int64, error){
	OpAdd: func(a, b int64) (int64, error) { return a + b, nil },
	OpSub: func(a, b int64) (int64, error) { return a - b, nil },
	OpMul: func(a, b int64) (int64, error) { return a * b, nil },
	OpDiv: func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, fmt.Errorf("%w: %d / 0", ErrDivisionByZero, a)
		}
		// go integer division truncates toward zero
		return a / b, nil
	},
}

func (vm *VM) State() State {
	return vm.state
}

// Err returns the *ErrFault of a faulted VM, nil otherwise
func (vm *VM) Err() error {
	return vm.err
}

func (vm *VM) IP() int {
	return vm.ip
}

// Steps is the number of instructions dispatched so far, counting one
// that faulted
func (vm *VM) Steps() int {
	return vm.steps
}

func (vm *VM) Program() *Program {
	return vm.program
}

// Stack returns a copy of the operand stack, bottom first
func (vm *VM) Stack() []int32 {
	return vm.stack.Values()
}

// Top returns the top of the stack without removing it
func (vm *VM) Top() (int32, error) {
	return vm.stack.Peek()
}

func (vm *VM) Registers() Registers {
	return vm.registers
}

func (vm *VM) Register(r Register) (int32, error) {
	return vm.registers.Get(r)
}
