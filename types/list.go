package types

import (
	"errors"
	"fmt"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// List is a read only sequence. The values are copied in at
// construction so callers can't change it behind our back.
// A nil *List behaves like an empty one.
type List[T any] struct {
	data []T
}

func NewList[T any](vals ...T) *List[T] {
	data := make([]T, len(vals))
	copy(data, vals)
	return &List[T]{
		data: data,
	}
}

func (l *List[T]) Get(idx int) (T, error) {
	var empty T
	if !l.InRange(idx) {
		return empty, fmt.Errorf("%w. idx %d len %d",
			ErrIndexOutOfRange,
			idx,
			l.Len())
	}

	return l.data[idx], nil
}

// InRange reports whether Get(idx) would succeed
func (l *List[T]) InRange(idx int) bool {
	return idx >= 0 && idx < l.Len()
}

func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.data)
}

// Slice returns a copy of the elements
func (l *List[T]) Slice() []T {
	out := make([]T, l.Len())
	if l != nil {
		copy(out, l.data)
	}
	return out
}

func (l *List[T]) Each(fn func(idx int, val T)) {
	if l == nil {
		return
	}
	for idx, elem := range l.data {
		fn(idx, elem)
	}
}
