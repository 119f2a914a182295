package naming

import (
	"fmt"
	"strconv"
	"strings"
)

// Convention selects how a block name is assembled from its layer and
// column names. Block names are always 5 characters.
type Convention uint8

const (
	// ColumnLetters uses 3 characters for the column and 2 digits for the layer
	ColumnLetters Convention = iota
	// LayerLetters uses 3 characters for the layer and 2 digits for the column
	LayerLetters
	// LayerPrefix uses 2 characters for the layer and 3 digits for the column
	LayerPrefix
)

type conventionLayout struct {
	description                   string
	columnLength, layerLength     int
	columnStart, layerStart       int
	atmosphereColumn, surfaceName string
}

var layouts = [...]conventionLayout{
	ColumnLetters: {"3 characters for column, 2 digits for layer", 3, 2, 0, 3, "ATM", " 0"},
	LayerLetters:  {"3 characters for layer, 2 digits for column", 2, 3, 3, 0, " 0", "atm"},
	LayerPrefix:   {"2 characters for layer, 3 digits for column", 3, 2, 2, 0, "  0", "at"},
}

func NewConvention(c int) (Convention, error) {
	if c < 0 || c >= len(layouts) {
		return 0, fmt.Errorf("unknown naming convention %d", c)
	}
	return Convention(c), nil
}

func (c Convention) String() string { return layouts[c].description }

func (c Convention) ColumnNameLength() int { return layouts[c].columnLength }
func (c Convention) LayerNameLength() int  { return layouts[c].layerLength }

// AtmosphereColumnName is the pseudo column name of the single lumped
// atmosphere block
func (c Convention) AtmosphereColumnName() string { return layouts[c].atmosphereColumn }

// SurfaceLayerName is the name given to the atmosphere layer of generated grids
func (c Convention) SurfaceLayerName() string { return layouts[c].surfaceName }

func (c Convention) BlockName(layerName, columnName string) string {
	var (
		l    = layouts[c]
		lay  = fit(layerName, l.layerLength)
		col  = fit(columnName, l.columnLength)
		name string
	)
	if l.columnStart == 0 {
		name = col + lay
	} else {
		name = lay + col
	}
	return name
}

func (c Convention) ColumnName(blockName string) string {
	l := layouts[c]
	return fit(blockName, 5)[l.columnStart : l.columnStart+l.columnLength]
}

func (c Convention) LayerName(blockName string) string {
	l := layouts[c]
	return fit(blockName, 5)[l.layerStart : l.layerStart+l.layerLength]
}

// ColumnNameFromNumber generates a column (or node) name from a number:
// letters for ColumnLetters, right justified digits otherwise
func (c Convention) ColumnNameFromNumber(num int, j Justification, cs Case) string {
	if c == ColumnLetters {
		return Justify(IntToLetters(num, cs), c.ColumnNameLength(), j)
	}
	return Justify(strconv.Itoa(num), c.ColumnNameLength(), Right)
}

func (c Convention) ColumnNumberFromName(name string) (int, error) {
	if c == ColumnLetters {
		return LettersToInt(strings.TrimSpace(name)), nil
	}
	return strconv.Atoi(strings.TrimSpace(name))
}

// LayerNameFromNumber generates a layer name: digits for ColumnLetters,
// letters otherwise
func (c Convention) LayerNameFromNumber(num int, j Justification, cs Case) string {
	if c == ColumnLetters {
		return Justify(strconv.Itoa(num), c.LayerNameLength(), Right)
	}
	return Justify(IntToLetters(num, cs), c.LayerNameLength(), j)
}

// FixBlockName replaces a blank in the 4th character of a block name with a
// zero where the simulator would read the name as (a3,i2)
func FixBlockName(name string) string {
	name = fit(name, 5)
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }
	if isDigit(name[2]) && isDigit(name[4]) && name[3] == ' ' {
		return name[:3] + "0" + name[4:]
	}
	return name
}

// UnfixBlockName is the inverse of FixBlockName
func UnfixBlockName(name string) (string, error) {
	name = fit(name, 5)
	n, err := strconv.Atoi(strings.TrimSpace(name[3:5]))
	if err != nil {
		return name, fmt.Errorf("block name %q has no numeric suffix: %w", name, err)
	}
	return fmt.Sprintf("%s%2d", name[:3], n), nil
}
