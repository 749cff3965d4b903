package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizePrimitives(t *testing.T) {
	prog := &Program{}

	sz, err := Size("integer", prog)
	require.NoError(t, err)
	assert.Equal(t, 8, sz)

	sz, err = Size("boolean", prog)
	require.NoError(t, err)
	assert.Equal(t, 8, sz)

	sz, err = Size("*integer", prog)
	require.NoError(t, err)
	assert.Equal(t, 8, sz)

	sz, err = Size("any_16", prog)
	require.NoError(t, err)
	assert.Equal(t, 16, sz)

	sz, err = Size("long", prog)
	require.NoError(t, err)
	assert.Equal(t, 16, sz)
}

func TestSizeStructureRecursion(t *testing.T) {
	point := &Structure{Name: "Point", Fields: NewOrderedMap()}
	point.Fields.Set("x", "integer")
	point.Fields.Set("y", "integer")

	line := &Structure{Name: "Line", Fields: NewOrderedMap()}
	line.Fields.Set("from", "Point")
	line.Fields.Set("to", "Point")

	prog := &Program{Structures: []*Structure{point, line}}

	sz, err := Size("Point", prog)
	require.NoError(t, err)
	assert.Equal(t, 16, sz)

	sz, err = Size("Line", prog)
	require.NoError(t, err)
	assert.Equal(t, 32, sz)
}

func TestSizeUnknownType(t *testing.T) {
	_, err := Size("bogus", &Program{})
	assert.Error(t, err)
}

func TestSizeSelfReferentialStructureErrors(t *testing.T) {
	bad := &Structure{Name: "Bad", Fields: NewOrderedMap()}
	bad.Fields.Set("self", "Bad")
	prog := &Program{Structures: []*Structure{bad}}

	_, err := Size("Bad", prog)
	assert.Error(t, err)
}

func TestCompatible(t *testing.T) {
	prog := &Program{}

	ok, err := Compatible("integer", "integer", prog)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Compatible("integer", "any", prog)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Compatible("integer", "any_8", prog)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Compatible("boolean", "any_8", prog)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Compatible("integer", "boolean", prog)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoundUp8(t *testing.T) {
	assert.Equal(t, 0, RoundUp8(0))
	assert.Equal(t, 8, RoundUp8(1))
	assert.Equal(t, 8, RoundUp8(8))
	assert.Equal(t, 16, RoundUp8(9))
}

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap()
	m.Set("b", "integer")
	m.Set("a", "integer")
	m.Set("b", "*integer")

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, "*integer", v)
	assert.Equal(t, 0, m.Index("b"))
	assert.Equal(t, 1, m.Index("a"))
	assert.Equal(t, -1, m.Index("missing"))
}
