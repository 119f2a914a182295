package mesh

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("already exists")
	ErrNodeInUse        = errors.New("node belongs to a column")
	ErrUnsupportedShape = errors.New("only 3 and 4 sided columns are supported")
	ErrNameOverflow     = errors.New("generated name does not fit the naming convention")
)
