package mesh

import "fmt"

// Layer is a horizontal slab of the grid between two elevations
type Layer struct {
	Name   string
	Bottom float64
	Centre float64
	Top    float64
}

func NewLayer(name string, bottom, centre float64) *Layer {
	return &Layer{Name: name, Bottom: bottom, Centre: centre}
}

func (lay *Layer) String() string {
	return fmt.Sprintf("%s(%g:%g)", lay.Name, lay.Bottom, lay.Top)
}

// ContainsElevation is inclusive of both the bottom and top
func (lay *Layer) ContainsElevation(z float64) bool {
	return lay.Bottom <= z && z <= lay.Top
}

func (lay *Layer) Translate(shift float64) {
	lay.Bottom += shift
	lay.Centre += shift
	lay.Top += shift
}

func (lay *Layer) Thickness() float64 { return lay.Top - lay.Bottom }
