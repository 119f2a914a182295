package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetters(t *testing.T) {
	assert.Equal(t, "a", IntToLetters(1, Lower))
	assert.Equal(t, "z", IntToLetters(26, Lower))
	assert.Equal(t, "aa", IntToLetters(27, Lower))
	assert.Equal(t, "AZ", IntToLetters(52, Upper))
	assert.Equal(t, "", IntToLetters(0, Lower))
	for i := 1; i <= 10000; i++ {
		if !assert.Equal(t, i, LettersToInt(IntToLetters(i, Lower))) {
			break
		}
	}
	assert.Equal(t, 27, LettersToInt(" AA"))
	assert.Equal(t, 1, LettersToInt("  a"))
}

func TestJustify(t *testing.T) {
	assert.Equal(t, "  a", Justify("a", 3, Right))
	assert.Equal(t, "a  ", Justify("a", 3, Left))
	assert.Equal(t, "abcd", Justify("abcd", 3, Right))
}

func TestConvention(t *testing.T) {
	{ // Block names and their inverses
		c := ColumnLetters
		assert.Equal(t, "abc 1", c.BlockName(" 1", "abc"))
		assert.Equal(t, "abc", c.ColumnName("abc 1"))
		assert.Equal(t, " 1", c.LayerName("abc 1"))

		c = LayerLetters
		assert.Equal(t, "atm 5", c.BlockName("atm", " 5"))
		assert.Equal(t, " 5", c.ColumnName("atm 5"))
		assert.Equal(t, "atm", c.LayerName("atm 5"))

		c = LayerPrefix
		assert.Equal(t, "ab 12", c.BlockName("ab", " 12"))
		assert.Equal(t, " 12", c.ColumnName("ab 12"))
		assert.Equal(t, "ab", c.LayerName("ab 12"))
	}
	{ // Short names are right justified into their fields
		assert.Equal(t, "  a 1", ColumnLetters.BlockName("1", "a"))
		assert.Len(t, LayerPrefix.BlockName("a", "1"), 5)
	}
	{ // Numbering
		assert.Equal(t, "  b", ColumnLetters.ColumnNameFromNumber(2, Right, Lower))
		assert.Equal(t, "B  ", ColumnLetters.ColumnNameFromNumber(2, Left, Upper))
		assert.Equal(t, " 7", LayerLetters.ColumnNameFromNumber(7, Left, Lower))
		n, err := LayerPrefix.ColumnNumberFromName(" 42")
		require.NoError(t, err)
		assert.Equal(t, 42, n)
		n, err = ColumnLetters.ColumnNumberFromName("  z")
		require.NoError(t, err)
		assert.Equal(t, 26, n)
		assert.Equal(t, " 3", ColumnLetters.LayerNameFromNumber(3, Right, Lower))
		assert.Equal(t, "  c", LayerLetters.LayerNameFromNumber(3, Right, Lower))
	}
	{ // Fixed width tables
		assert.Equal(t, "ATM", ColumnLetters.AtmosphereColumnName())
		assert.Equal(t, "atm", LayerLetters.SurfaceLayerName())
		assert.Equal(t, 2, LayerPrefix.LayerNameLength())
		_, err := NewConvention(3)
		assert.Error(t, err)
	}
}

func TestFixBlockName(t *testing.T) {
	assert.Equal(t, "ab103", FixBlockName("ab1 3"))
	assert.Equal(t, "abc 3", FixBlockName("abc 3"))
	un, err := UnfixBlockName("ab103")
	require.NoError(t, err)
	assert.Equal(t, "ab1 3", un)
}
