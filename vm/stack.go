package vm

import (
	"fmt"
)

// Stack is the operand stack. The top is the most recently pushed value.
// A depth of 0 means unbounded.
type Stack struct {
	data []int32

	depth int
}

type StackOpt func(*Stack) *Stack

func MaxStack(max int) StackOpt {
	return func(s *Stack) *Stack {
		s.depth = max
		return s
	}
}

func NewStack(opts ...StackOpt) *Stack {
	s := &Stack{
		data: make([]int32, 0),
	}
	for _, opt := range opts {
		s = opt(s)
	}
	return s
}

func (s *Stack) Push(v int32) error {
	if s.Full() {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, s.depth)
	}
	s.data = append(s.data, v)
	return nil
}

func (s *Stack) Pop() (int32, error) {
	if s.Empty() {
		return 0, ErrStackUnderflow
	}

	v := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return v, nil
}

func (s *Stack) Peek() (int32, error) {
	if s.Empty() {
		return 0, ErrStackUnderflow
	}
	return s.data[len(s.data)-1], nil
}

// Read returns the value at pos, counted from the bottom of the stack
func (s *Stack) Read(pos int) (int32, error) {
	if err := s.check(pos); err != nil {
		return 0, err
	}
	return s.data[pos], nil
}

// Write replaces the value at pos in place. It never changes the length.
func (s *Stack) Write(pos int, v int32) error {
	if err := s.check(pos); err != nil {
		return err
	}
	s.data[pos] = v
	return nil
}

func (s *Stack) check(pos int) error {
	if pos >= s.Len() || pos < 0 {
		return fmt.Errorf("%w: len %d, pos %d", ErrInvalidStackAddress, s.Len(), pos)
	}
	return nil
}

func (s *Stack) Empty() bool {
	return len(s.data) == 0
}

func (s *Stack) Full() bool {
	return s.depth > 0 && len(s.data) >= s.depth
}

func (s *Stack) Len() int {
	return len(s.data)
}

func (s *Stack) Depth() int {
	return s.depth
}

// Values returns a copy of the stack, bottom first
func (s *Stack) Values() []int32 {
	out := make([]int32, len(s.data))
	copy(out, s.data)
	return out
}
