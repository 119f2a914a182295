package types

import "fmt"

type AtmosphereType uint8

const (
	// AtmosphereSingle lumps the whole atmosphere into one block
	AtmosphereSingle AtmosphereType = iota
	// AtmosphereColumns places one atmosphere block above each column
	AtmosphereColumns
	// AtmosphereNone leaves the grid without atmosphere blocks
	AtmosphereNone
)

var AtmosphereNameMap = map[string]AtmosphereType{
	"single":  AtmosphereSingle,
	"0":       AtmosphereSingle,
	"columns": AtmosphereColumns,
	"column":  AtmosphereColumns,
	"1":       AtmosphereColumns,
	"none":    AtmosphereNone,
	"2":       AtmosphereNone,
}

func (at AtmosphereType) String() string {
	switch at {
	case AtmosphereSingle:
		return "single"
	case AtmosphereColumns:
		return "columns"
	case AtmosphereNone:
		return "none"
	}
	return fmt.Sprintf("AtmosphereType(%d)", int(at))
}

func NewAtmosphereType(code int) (at AtmosphereType, err error) {
	if code < 0 || code > int(AtmosphereNone) {
		err = fmt.Errorf("invalid atmosphere type %d", code)
		return
	}
	return AtmosphereType(code), nil
}

func ParseAtmosphereType(label string) (at AtmosphereType, err error) {
	var ok bool
	if at, ok = AtmosphereNameMap[label]; !ok {
		err = fmt.Errorf("unknown atmosphere type %q", label)
	}
	return
}
