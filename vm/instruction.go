package vm

import (
	"fmt"
	"strings"

	"github.com/krehermann/vyantra/types"
)

type Opcode byte

const (
	OpPsh Opcode = 0x0a //10
	OpPop Opcode = 0x0b //11
	OpAdd Opcode = 0x0c //12
	OpSub Opcode = 0x0d //13
	OpMul Opcode = 0x0e //14
	OpDiv Opcode = 0x0f //15
	OpSet Opcode = 0x10 //16
	OpCpy Opcode = 0x11 //17
	OpJmp Opcode = 0x12 //18
	OpHlt Opcode = 0x13 //19
)

var opcodeNames = map[Opcode]string{
	OpPsh: "PSH",
	OpPop: "POP",
	OpAdd: "ADD",
	OpSub: "SUB",
	OpMul: "MUL",
	OpDiv: "DIV",
	OpSet: "SET",
	OpCpy: "CPY",
	OpJmp: "JMP",
	OpHlt: "HLT",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OP(0x%02x)", byte(op))
}

// Instruction is one of the ten instruction values below. The set is
// closed: the unexported method keeps other packages from adding to it.
type Instruction interface {
	Opcode() Opcode
	String() string
	instruction()
}

// Psh pushes a literal
type Psh struct{ Value int32 }

// Pop discards the top of the stack
type Pop struct{}

// Add, Sub, Mul and Div pop rhs then lhs and push lhs OP rhs
type Add struct{}
type Sub struct{}
type Mul struct{}
type Div struct{}

// Set loads a literal into a register
type Set struct {
	Reg   Register
	Value int32
}

// Cpy copies the value at Src into Dst
type Cpy struct {
	Src Path
	Dst Path
}

// Jmp moves the instruction pointer by Offset, relative to the Jmp itself
type Jmp struct{ Offset int }

// Hlt stops the machine
type Hlt struct{}

func (Psh) Opcode() Opcode { return OpPsh }
func (Pop) Opcode() Opcode { return OpPop }
func (Add) Opcode() Opcode { return OpAdd }
func (Sub) Opcode() Opcode { return OpSub }
func (Mul) Opcode() Opcode { return OpMul }
func (Div) Opcode() Opcode { return OpDiv }
func (Set) Opcode() Opcode { return OpSet }
func (Cpy) Opcode() Opcode { return OpCpy }
func (Jmp) Opcode() Opcode { return OpJmp }
func (Hlt) Opcode() Opcode { return OpHlt }

func (i Psh) String() string { return fmt.Sprintf("PSH %d", i.Value) }
func (Pop) String() string { return "POP" }
func (Add) String() string { return "ADD" }
func (Sub) String() string { return "SUB" }
func (Mul) String() string { return "MUL" }
func (Div) String() string { return "DIV" }
func (i Set) String() string { return fmt.Sprintf("SET %s, %d", i.Reg, i.Value) }
func (i Cpy) String() string { return fmt.Sprintf("CPY %s, %s", i.Src, i.Dst) }
func (i Jmp) String() string { return fmt.Sprintf("JMP %+d", i.Offset) }
func (Hlt) String() string { return "HLT" }

func (Psh) instruction() {}
func (Pop) instruction() {}
func (Add) instruction() {}
func (Sub) instruction() {}
func (Mul) instruction() {}
func (Div) instruction() {}
func (Set) instruction() {}
func (Cpy) instruction() {}
func (Jmp) instruction() {}
func (Hlt) instruction() {}

// Program is an immutable, ordered list of instructions
type Program struct {
	insts *types.List[Instruction]
}

func NewProgram(insts ...Instruction) *Program {
	return &Program{
		insts: types.NewList(insts...),
	}
}

func (p *Program) Len() int {
	return p.insts.Len()
}

// Fetch returns the instruction at ip, or ErrProgramEnd if there is none
func (p *Program) Fetch(ip int) (Instruction, error) {
	inst, err := p.insts.Get(ip)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProgramEnd, err)
	}
	return inst, nil
}

// ValidTarget reports whether ip indexes an instruction
func (p *Program) ValidTarget(ip int) bool {
	return p.insts.InRange(ip)
}

func (p *Program) Instructions() []Instruction {
	return p.insts.Slice()
}

// String disassembles the program, one instruction per line
func (p *Program) String() string {
	var sb strings.Builder
	p.insts.Each(func(idx int, inst Instruction) {
		if inst == nil {
			fmt.Fprintf(&sb, "%04d  <nil>\n", idx)
			return
		}
		fmt.Fprintf(&sb, "%04d  %s\n", idx, inst)
	})
	return sb.String()
}
