package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/mulgrid/mesh"
	"github.com/notargets/mulgrid/naming"
	"github.com/notargets/mulgrid/types"
	"gonum.org/v1/gonum/spatial/r2"
)

// gmsh element types that become columns
const (
	gmshTriangle      = 2
	gmshQuadrilateral = 3
)

type GmshOptions struct {
	Convention naming.Convention
	Atmosphere types.AtmosphereType
	// Layers are the layer thicknesses below the surface at Top
	Layers []float64
	Top    float64
}

/*
ReadGmsh builds a grid from a two dimensional gmsh (version 2 ASCII) mesh.
Nodes become grid nodes and triangles and quadrilaterals become columns,
named from their gmsh numbers: as letters for the ColumnLetters convention,
digits otherwise. Other element types are ignored.
*/
func ReadGmsh(r io.Reader, opts GmshOptions) (g *mesh.Grid, err error) {
	var (
		scanner = bufio.NewScanner(r)
		lineNum int
		colLen  = opts.Convention.ColumnNameLength()
	)
	g = mesh.NewGrid(opts.Convention, opts.Atmosphere)
	name := func(tag string) (string, error) {
		num, err := strconv.Atoi(tag)
		if err != nil {
			return "", fmt.Errorf("line %d: number %q: %w", lineNum, tag, err)
		}
		if opts.Convention == naming.ColumnLetters {
			tag = naming.IntToLetters(num, naming.Lower)
		}
		if len(tag) > colLen {
			return "", fmt.Errorf("line %d: name %q: %w", lineNum, tag, mesh.ErrNameOverflow)
		}
		return naming.Justify(tag, colLen, naming.Right), nil
	}
	nextLine := func() (fields []string, ok bool) {
		if !scanner.Scan() {
			return
		}
		lineNum++
		return strings.Fields(scanner.Text()), true
	}
	count := func(section string) (n int, err error) {
		fields, ok := nextLine()
		if !ok || len(fields) == 0 {
			return 0, fmt.Errorf("line %d: missing %s count", lineNum, section)
		}
		if n, err = strconv.Atoi(fields[0]); err != nil {
			err = fmt.Errorf("line %d: %s count: %w", lineNum, section, err)
		}
		return
	}
	for scanner.Scan() {
		lineNum++
		switch strings.TrimSpace(scanner.Text()) {
		case "$Nodes":
			var nn int
			if nn, err = count("node"); err != nil {
				return nil, err
			}
			for i := 0; i < nn; i++ {
				fields, ok := nextLine()
				if !ok || len(fields) < 3 {
					return nil, fmt.Errorf("line %d: invalid node line", lineNum)
				}
				var nodeName string
				if nodeName, err = name(fields[0]); err != nil {
					return nil, err
				}
				pos := r2.Vec{X: FortranFloat(fields[1]), Y: FortranFloat(fields[2])}
				if err = g.AddNode(mesh.NewNode(nodeName, pos)); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
			}
		case "$Elements":
			var ne int
			if ne, err = count("element"); err != nil {
				return nil, err
			}
			for i := 0; i < ne; i++ {
				fields, ok := nextLine()
				if !ok || len(fields) < 3 {
					return nil, fmt.Errorf("line %d: invalid element line", lineNum)
				}
				elType, _ := strconv.Atoi(fields[1])
				if elType != gmshTriangle && elType != gmshQuadrilateral {
					continue
				}
				ntags, _ := strconv.Atoi(fields[2])
				first, nn := 3+ntags, elType+1
				if len(fields) < first+nn {
					return nil, fmt.Errorf("line %d: element has too few nodes", lineNum)
				}
				var colName string
				if colName, err = name(fields[0]); err != nil {
					return nil, err
				}
				var nodes []*mesh.Node
				for _, tag := range fields[first : first+nn] {
					var nodeName string
					if nodeName, err = name(tag); err != nil {
						return nil, err
					}
					n, found := g.Node(nodeName)
					if !found {
						return nil, fmt.Errorf("line %d: node %q: %w", lineNum, nodeName, mesh.ErrNotFound)
					}
					nodes = append(nodes, n)
				}
				if err = g.AddColumn(mesh.NewColumn(colName, nodes)); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	if _, err = g.AddMissingConnections(); err != nil {
		return nil, err
	}
	if err = g.DeleteOrphans(); err != nil {
		return nil, err
	}
	if err = g.AddLayers(opts.Layers, opts.Top, naming.Right, naming.Lower); err != nil {
		return nil, err
	}
	g.SetDefaultSurface()
	g.IdentifyNeighbours()
	g.SetupBlockNameIndex()
	return
}

func ReadGmshFile(filename string, opts GmshOptions) (g *mesh.Grid, err error) {
	var file *os.File
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	if g, err = ReadGmsh(file, opts); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return
}
