package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Well is a deviated trajectory, from the wellhead (first) to the bottom (last)
type Well struct {
	Name string
	Pos  []r3.Vec
}

func NewWell(name string, pos ...r3.Vec) *Well {
	return &Well{Name: name, Pos: pos}
}

func (wl *Well) String() string { return wl.Name }

func (wl *Well) NumDeviations() int { return len(wl.Pos) - 1 }

func (wl *Well) Head() r3.Vec   { return wl.Pos[0] }
func (wl *Well) Bottom() r3.Vec { return wl.Pos[len(wl.Pos)-1] }

// ElevationPos interpolates the 3D position of the well at elevation z.
// There is no position at or above the wellhead, nor below the bottom.
func (wl *Well) ElevationPos(z float64) (p r3.Vec, ok bool) {
	for i, pos := range wl.Pos {
		if pos.Z <= z {
			if i == 0 {
				return
			}
			prev := wl.Pos[i-1]
			f := (z - prev.Z) / (pos.Z - prev.Z)
			return r3.Add(r3.Scale(1-f, prev), r3.Scale(f, pos)), true
		}
	}
	return
}
