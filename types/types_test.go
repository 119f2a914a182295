package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Test ordering of name pairs
		np := NewNamePair("  b", "  a")
		assert.Equal(t, NamePair{"  a", "  b"}, np)
		assert.Equal(t, np, NewNamePair("  a", "  b"))
		assert.True(t, np.Contains("  b"))
		assert.False(t, np.Contains("b"))
		assert.Equal(t, "  a", np.Other("  b"))
		assert.Equal(t, "  a:  b", np.String())
	}
	{ // Pairs work as map keys regardless of input order
		m := map[NamePair]int{NewNamePair("x", "y"): 1}
		_, ok := m[NewNamePair("y", "x")]
		assert.True(t, ok)
	}
}

func TestAtmosphereType(t *testing.T) {
	at, err := ParseAtmosphereType("columns")
	assert.NoError(t, err)
	assert.Equal(t, AtmosphereColumns, at)
	assert.Equal(t, "columns", at.String())
	_, err = ParseAtmosphereType("lumped")
	assert.Error(t, err)
	at, err = NewAtmosphereType(2)
	assert.NoError(t, err)
	assert.Equal(t, AtmosphereNone, at)
	_, err = NewAtmosphereType(3)
	assert.Error(t, err)
}
