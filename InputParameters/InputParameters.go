package InputParameters

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/notargets/mulgrid/mesh"
	"gonum.org/v1/gonum/spatial/r2"
)

// Parameters of a surface fitting job, obtained from the YAML input file
type FitParameters struct {
	Title string `json:"Title"`
	// DataFile holds x, y, z points, one per line
	DataFile     string   `json:"DataFile"`
	Alpha        float64  `json:"Alpha"`
	Beta         float64  `json:"Beta"`
	Columns      []string `json:"Columns"`
	MinColumns   []string `json:"MinColumns"`
	GridBoundary bool     `json:"GridBoundary"`
	Silent       bool     `json:"Silent"`
}

// Parse reads the job file over the default smoothing weights
func (ip *FitParameters) Parse(data []byte) error {
	def := mesh.DefaultFitOptions()
	ip.Alpha, ip.Beta = def.Alpha, def.Beta
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	if ip.DataFile == "" {
		return fmt.Errorf("fit job %q has no DataFile", ip.Title)
	}
	return nil
}

func (ip *FitParameters) FitOptions() mesh.FitOptions {
	return mesh.FitOptions{
		Alpha:        ip.Alpha,
		Beta:         ip.Beta,
		Columns:      ip.Columns,
		MinColumns:   ip.MinColumns,
		GridBoundary: ip.GridBoundary,
		Silent:       ip.Silent,
	}
}

func (ip *FitParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= DataFile\n", ip.DataFile)
	fmt.Printf("%8.5f\t\t= Alpha\n", ip.Alpha)
	fmt.Printf("%8.5f\t\t= Beta\n", ip.Beta)
	fmt.Printf("%d\t\t\t= Columns%s\n", len(ip.Columns), allIfEmpty(ip.Columns))
	fmt.Printf("[%s]\t\t\t= MinColumns\n", strings.Join(ip.MinColumns, ","))
	fmt.Printf("%v\t\t\t= GridBoundary\n", ip.GridBoundary)
}

// Parameters of a refinement job
type RefineParameters struct {
	Title   string   `json:"Title"`
	Columns []string `json:"Columns"`
	// Polygon adds the columns with centres inside it to Columns
	Polygon [][2]float64 `json:"Polygon"`
	// Check runs the consistency checker on the refined grid
	Check bool `json:"Check"`
}

func (rp *RefineParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, rp); err != nil {
		return err
	}
	if n := len(rp.Polygon); n > 0 && n < 3 {
		return fmt.Errorf("refine job %q: polygon needs at least 3 vertices, has %d", rp.Title, n)
	}
	return nil
}

// ColumnNames lists the named columns followed by those inside the polygon.
// An empty list means the whole grid.
func (rp *RefineParameters) ColumnNames(g *mesh.Grid) (names []string) {
	var (
		seen = make(map[string]bool)
		poly []r2.Vec
	)
	for _, name := range rp.Columns {
		if !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	for _, p := range rp.Polygon {
		poly = append(poly, r2.Vec{X: p[0], Y: p[1]})
	}
	if len(poly) > 0 {
		for _, col := range g.ColumnsInPolygon(poly) {
			if !seen[col.Name] {
				names = append(names, col.Name)
				seen[col.Name] = true
			}
		}
	}
	return
}

func (rp *RefineParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", rp.Title)
	fmt.Printf("%d\t\t\t= Columns%s\n", len(rp.Columns), allIfEmpty(rp.Columns))
	fmt.Printf("%d\t\t\t= Polygon vertices\n", len(rp.Polygon))
	fmt.Printf("%v\t\t\t= Check\n", rp.Check)
}

func allIfEmpty(names []string) string {
	if len(names) == 0 {
		return " (all)"
	}
	return ""
}
