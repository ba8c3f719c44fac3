package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testList(t *testing.T) *List[int] {
	l := NewList(0, 1, 2, 3, 4)
	assert.Equal(t, 5, l.Len())
	return l
}

func TestList_Get(t *testing.T) {
	l := testList(t)

	for i := 0; i < l.Len(); i += 1 {
		got, err := l.Get(i)
		assert.NoError(t, err)
		assert.Equal(t, i, got)
	}

	_, err := l.Get(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = l.Get(l.Len())
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestList_InRange(t *testing.T) {
	l := testList(t)
	assert.True(t, l.InRange(0))
	assert.True(t, l.InRange(4))
	assert.False(t, l.InRange(5))
	assert.False(t, l.InRange(-1))

	empty := NewList[string]()
	assert.False(t, empty.InRange(0))
}

func TestList_Immutable(t *testing.T) {
	src := []int{2, 4, 6}
	l := NewList(src...)

	// changing the source doesn't change the list
	src[0] = 100
	got, err := l.Get(0)
	assert.NoError(t, err)
	assert.Equal(t, 2, got)

	// neither does changing a slice we got out of it
	out := l.Slice()
	out[1] = 100
	got, err = l.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, 4, got)
}

func TestList_Each(t *testing.T) {
	l := NewList(10, 20, 30)
	var idxs, vals []int
	l.Each(func(idx, val int) {
		idxs = append(idxs, idx)
		vals = append(vals, val)
	})
	assert.Equal(t, []int{0, 1, 2}, idxs)
	assert.Equal(t, []int{10, 20, 30}, vals)
}

func TestList_Nil(t *testing.T) {
	var l *List[int]
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.InRange(0))
	assert.Equal(t, []int{}, l.Slice())

	_, err := l.Get(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	called := false
	l.Each(func(int, int) { called = true })
	assert.False(t, called)
}
