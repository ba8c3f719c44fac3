package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters_GetSet(t *testing.T) {
	var rs Registers
	for r := RegA; r <= RegF; r += 1 {
		got, err := rs.Get(r)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), got)
	}

	assert.NoError(t, rs.Set(RegC, 42))
	got, err := rs.Get(RegC)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), got)

	// others untouched
	got, err = rs.Get(RegB)
	assert.NoError(t, err)
	assert.Equal(t, int32(0), got)
}

func TestRegisters_Invalid(t *testing.T) {
	var rs Registers
	bad := Register(NumRegisters)

	assert.False(t, bad.Valid())
	_, err := rs.Get(bad)
	assert.ErrorIs(t, err, ErrInvalidRegister)
	assert.ErrorIs(t, rs.Set(bad, 1), ErrInvalidRegister)
	assert.ErrorIs(t, rs.Set(Register(255), 1), ErrInvalidRegister)
	assert.Equal(t, Registers{}, rs)
}

func TestRegisters_String(t *testing.T) {
	assert.Equal(t, "A", RegA.String())
	assert.Equal(t, "F", RegF.String())
	assert.Equal(t, "R?9", Register(9).String())
}

func TestRegisters_Map(t *testing.T) {
	var rs Registers
	assert.NoError(t, rs.Set(RegF, -3))
	assert.Equal(t, map[string]int32{
		"A": 0, "B": 0, "C": 0, "D": 0, "E": 0, "F": -3,
	}, rs.Map())
}
