package readfiles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/mulgrid/mesh"
	"github.com/notargets/mulgrid/naming"
	"github.com/notargets/mulgrid/types"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const lineWidth = 80

var ErrUnsupportedGrid = errors.New("unsupported grid type")

// geometryReader tracks the line number and section of a geometry file
type geometryReader struct {
	scanner *bufio.Scanner
	lineNum int
	section string
	g       *mesh.Grid
	scale   float64
}

func (gr *geometryReader) getLine() (line string, ok bool) {
	if !gr.scanner.Scan() {
		return
	}
	gr.lineNum++
	return padLine(strings.TrimRight(gr.scanner.Text(), "\r"), lineWidth), true
}

func (gr *geometryReader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d, section %s: %w", gr.lineNum, gr.section, fmt.Errorf(format, args...))
}

// float reads a required number from columns [i1,i2)
func (gr *geometryReader) float(line string, i1, i2 int) (v float64, err error) {
	field := fixedField(line, i1, i2)
	if field == "" {
		return 0, gr.errorf("missing number in columns %d-%d", i1+1, i2)
	}
	return FortranFloat(field), nil
}

// sectionLines calls fn for each line of the section, up to the blank line
// that ends it
func (gr *geometryReader) sectionLines(fn func(line string) error) (err error) {
	for {
		line, ok := gr.getLine()
		if !ok || strings.TrimSpace(line) == "" {
			return gr.scanner.Err()
		}
		if err = fn(line); err != nil {
			return
		}
	}
}

// columnName reads a 3 character name field as a column or node name
func (gr *geometryReader) columnName(line string, i1 int) string {
	return naming.Justify(fixedField(line, i1, i1+3), gr.g.Convention().ColumnNameLength(), naming.Right)
}

func (gr *geometryReader) readHeader(line string) (err error) {
	gridType := line[0:5]
	if gridType != mesh.DefaultGridType {
		return fmt.Errorf("grid type %q: %w", gridType, ErrUnsupportedGrid)
	}
	intField := func(i1, i2 int) (v int, err error) {
		if f := fixedField(line, i1, i2); f != "" {
			v, err = strconv.Atoi(f)
		}
		return
	}
	var (
		conv, atm int
		c         naming.Convention
		at        types.AtmosphereType
	)
	if conv, err = intField(5, 6); err != nil {
		return gr.errorf("naming convention: %v", err)
	}
	if atm, err = intField(6, 7); err != nil {
		return gr.errorf("atmosphere type: %v", err)
	}
	if c, err = naming.NewConvention(conv); err != nil {
		return gr.errorf("%w", err)
	}
	if at, err = types.NewAtmosphereType(atm); err != nil {
		return gr.errorf("%w", err)
	}
	g := mesh.NewGrid(c, at)
	g.Type = gridType
	g.AtmosphereVolume = FortranFloat(fixedField(line, 7, 17))
	g.AtmosphereConnection = FortranFloat(fixedField(line, 17, 27))
	unit := line[27:32]
	if strings.TrimSpace(unit) == "" {
		unit = ""
	}
	if err = g.SetUnitType(unit); err != nil {
		return gr.errorf("%w", err)
	}
	if FortranFloat(fixedField(line, 32, 42)) != 0 || FortranFloat(fixedField(line, 42, 52)) != 0 {
		return fmt.Errorf("GDCX, GDCY options: %w", ErrUnsupportedGrid)
	}
	if cn, _ := intField(52, 53); cn != 0 {
		return fmt.Errorf("CNTYPE option: %w", ErrUnsupportedGrid)
	}
	g.PermeabilityAngle = FortranFloat(fixedField(line, 53, 63))
	gr.g, gr.scale = g, g.UnitScale()
	return
}

func (gr *geometryReader) readNodes() error {
	return gr.sectionLines(func(line string) (err error) {
		var x, y float64
		if x, err = gr.float(line, 3, 13); err != nil {
			return
		}
		if y, err = gr.float(line, 13, 23); err != nil {
			return
		}
		if err = gr.g.AddNode(mesh.NewNode(gr.columnName(line, 0), r2.Scale(gr.scale, r2.Vec{X: x, Y: y}))); err != nil {
			return gr.errorf("%w", err)
		}
		return
	})
}

func (gr *geometryReader) readColumns() error {
	return gr.sectionLines(func(line string) (err error) {
		var (
			name      = gr.columnName(line, 0)
			flag      = fixedField(line, 3, 4)
			nnodes    int
			centre    []r2.Vec
			nodeNames []string
		)
		if nnodes, err = strconv.Atoi(fixedField(line, 4, 6)); err != nil {
			return gr.errorf("number of nodes in column %q: %v", name, err)
		}
		if f, _ := strconv.Atoi(flag); f > 0 {
			var x, y float64
			if x, err = gr.float(line, 6, 16); err != nil {
				return
			}
			if y, err = gr.float(line, 16, 26); err != nil {
				return
			}
			centre = append(centre, r2.Scale(gr.scale, r2.Vec{X: x, Y: y}))
		}
		nodes := make([]*mesh.Node, 0, nnodes)
		for i := 0; i < nnodes; i++ {
			nline, ok := gr.getLine()
			if !ok {
				return gr.errorf("column %q ends after %d of %d nodes", name, i, nnodes)
			}
			nodeNames = append(nodeNames, gr.columnName(nline, 0))
		}
		for _, nn := range nodeNames {
			n, ok := gr.g.Node(nn)
			if !ok {
				return gr.errorf("node %q of column %q: %w", nn, name, mesh.ErrNotFound)
			}
			nodes = append(nodes, n)
		}
		if err = gr.g.AddColumn(mesh.NewColumn(name, nodes, centre...)); err != nil {
			return gr.errorf("%w", err)
		}
		return
	})
}

func (gr *geometryReader) readConnections() (err error) {
	err = gr.sectionLines(func(line string) (err error) {
		if _, err = gr.g.AddConnection(gr.columnName(line, 0), gr.columnName(line, 3)); err != nil {
			return gr.errorf("%w", err)
		}
		return
	})
	gr.g.IdentifyNeighbours()
	return
}

func (gr *geometryReader) readLayers() (err error) {
	layLen := gr.g.Convention().LayerNameLength()
	err = gr.sectionLines(func(line string) (err error) {
		var bottom, centre float64
		if bottom, err = gr.float(line, 3, 13); err != nil {
			return
		}
		bottom *= gr.scale
		if f := fixedField(line, 13, 23); f != "" {
			centre = gr.scale * FortranFloat(f)
		} else if nl := gr.g.NumLayers(); nl > 0 {
			centre = 0.5 * (bottom + gr.g.Layers()[nl-1].Bottom)
		} else {
			centre = bottom
		}
		if err = gr.g.AddLayer(mesh.NewLayer(line[0:layLen], bottom, centre)); err != nil {
			return gr.errorf("%w", err)
		}
		return
	})
	gr.g.IdentifyLayerTops()
	gr.g.SetDefaultSurface()
	return
}

func (gr *geometryReader) readSurface() error {
	return gr.sectionLines(func(line string) (err error) {
		var z float64
		if z, err = gr.float(line, 3, 13); err != nil {
			return
		}
		if err = gr.g.SetColumnSurface(gr.columnName(line, 0), gr.scale*z); err != nil {
			return gr.errorf("%w", err)
		}
		return
	})
}

func (gr *geometryReader) readWells() error {
	return gr.sectionLines(func(line string) (err error) {
		var (
			name = strings.TrimRight(line[0:5], " ")
			p    [3]float64
		)
		for i := range p {
			if p[i], err = gr.float(line, 5+10*i, 15+10*i); err != nil {
				return
			}
		}
		pos := r3.Scale(gr.scale, r3.Vec{X: p[0], Y: p[1], Z: p[2]})
		if wl, ok := gr.g.Well(name); ok {
			wl.Pos = append(wl.Pos, pos)
			return
		}
		if err = gr.g.AddWell(mesh.NewWell(name, pos)); err != nil {
			return gr.errorf("%w", err)
		}
		return
	})
}

/*
ReadGeometry reads a grid in the fixed format geometry file layout. Sections
are introduced by keywords matched on their first five characters and each
ends with a blank line; a blank line in place of a keyword ends the file.
*/
func ReadGeometry(r io.Reader, verbose bool) (g *mesh.Grid, err error) {
	gr := &geometryReader{scanner: bufio.NewScanner(r), section: "header"}
	line, ok := gr.getLine()
	if !ok {
		if err = gr.scanner.Err(); err == nil {
			err = fmt.Errorf("empty geometry file")
		}
		return
	}
	if err = gr.readHeader(line); err != nil {
		return
	}
	readers := map[string]func() error{
		"VERTI": gr.readNodes,
		"GRID":  gr.readColumns,
		"CONNE": gr.readConnections,
		"LAYER": gr.readLayers,
		"SURFA": gr.readSurface,
		"SURF":  gr.readSurface,
		"WELLS": gr.readWells,
	}
	for {
		if line, ok = gr.getLine(); !ok {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		keyword := line
		if len(keyword) > 5 {
			keyword = keyword[:5]
		}
		read, found := readers[keyword]
		if !found {
			return nil, fmt.Errorf("line %d: unrecognised section %q", gr.lineNum, line)
		}
		gr.section = keyword
		if verbose {
			fmt.Printf("Reading section %s\n", line)
		}
		if err = read(); err != nil {
			return nil, err
		}
	}
	if err = gr.scanner.Err(); err != nil {
		return
	}
	g = gr.g
	g.SetupBlockNameIndex()
	if verbose {
		fmt.Println(g)
	}
	return
}

func ReadGeometryFile(filename string, verbose bool) (g *mesh.Grid, err error) {
	var file *os.File
	if verbose {
		fmt.Printf("Reading geometry file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	if g, err = ReadGeometry(file, verbose); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return
}

// WriteGeometry writes a grid in the fixed format geometry file layout. The
// surface section is written only if some column surface is not the default.
func WriteGeometry(w io.Writer, g *mesh.Grid) (err error) {
	var (
		bw    = bufio.NewWriter(w)
		scale = g.UnitScale()
	)
	fmt.Fprintf(bw, "%-5.5s%1d%1d%10.2e%10.2e%5s%21s%10.2f\n", g.Type, int(g.Convention()), int(g.AtmosphereType()),
		g.AtmosphereVolume, g.AtmosphereConnection, g.UnitType(), "", g.PermeabilityAngle)

	fmt.Fprintf(bw, "VERTICES\n")
	for _, n := range g.Nodes() {
		fmt.Fprintf(bw, "%3s%10.2f%10.2f\n", n.Name, n.Pos.X/scale, n.Pos.Y/scale)
	}
	fmt.Fprintf(bw, "\n")

	fmt.Fprintf(bw, "GRID\n")
	for _, col := range g.Columns() {
		var flag int
		if col.CentreSpecified {
			flag = 1
		}
		fmt.Fprintf(bw, "%3s%1d%2d", col.Name, flag, col.NumNodes())
		if col.CentreSpecified {
			c := col.Centre()
			fmt.Fprintf(bw, "%10.2f%10.2f", c.X/scale, c.Y/scale)
		}
		fmt.Fprintf(bw, "\n")
		for _, n := range col.Nodes {
			fmt.Fprintf(bw, "%3s\n", n.Name)
		}
	}
	fmt.Fprintf(bw, "\n")

	fmt.Fprintf(bw, "CONNECTIONS\n")
	for _, con := range g.Connections() {
		fmt.Fprintf(bw, "%3s%3s\n", con.Columns[0].Name, con.Columns[1].Name)
	}
	fmt.Fprintf(bw, "\n")

	fmt.Fprintf(bw, "LAYERS\n")
	for _, lay := range g.Layers() {
		fmt.Fprintf(bw, "%-3s%10.2f%10.2f\n", lay.Name, lay.Bottom/scale, lay.Centre/scale)
	}
	fmt.Fprintf(bw, "\n")

	if !g.DefaultSurface() {
		fmt.Fprintf(bw, "SURFA\n")
		for _, col := range g.Columns() {
			if !col.DefaultSurface {
				fmt.Fprintf(bw, "%3s%10.2f\n", col.Name, col.Surface()/scale)
			}
		}
		fmt.Fprintf(bw, "\n")
	}

	if g.NumWells() > 0 {
		fmt.Fprintf(bw, "WELLS\n")
		for _, wl := range g.Wells() {
			for _, p := range wl.Pos {
				fmt.Fprintf(bw, "%-5.5s%10.1f%10.1f%10.1f\n", wl.Name, p.X/scale, p.Y/scale, p.Z/scale)
			}
		}
		fmt.Fprintf(bw, "\n")
	}
	fmt.Fprintf(bw, "\n")
	return bw.Flush()
}

func WriteGeometryFile(filename string, g *mesh.Grid) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return fmt.Errorf("unable to create file %s: %w", filename, err)
	}
	if err = WriteGeometry(file, g); err != nil {
		file.Close()
		return
	}
	return file.Close()
}
