package mesh

import (
	"errors"
	"fmt"
	"sort"

	"github.com/notargets/mulgrid/geometry2D"
	"github.com/notargets/mulgrid/types"
)

// CheckReport lists the problems found by the grid checker
type CheckReport struct {
	MissingConnections []types.NamePair
	ExtraConnections   []types.NamePair
	Orphans            []string
	BadColumns         []string
	BadLayers          []string
	// FixErrors are the repairs that failed
	FixErrors []error
}

func (r CheckReport) OK() bool {
	return len(r.MissingConnections) == 0 && len(r.ExtraConnections) == 0 &&
		len(r.Orphans) == 0 && len(r.BadColumns) == 0 && len(r.BadLayers) == 0 &&
		len(r.FixErrors) == 0
}

// FixError joins the failed repairs, or is nil when every repair succeeded
func (r CheckReport) FixError() error { return errors.Join(r.FixErrors...) }

// MissingConnections returns the pairs of columns sharing a side without a
// connection between them, found by testing the columns around each node
func (g *Grid) MissingConnections() (missing []types.NamePair) {
	found := make(map[types.NamePair]bool)
	for _, n := range g.nodeList {
		cols := n.Columns()
		for i, ci := range cols {
			for _, cj := range cols[i+1:] {
				key := types.NewNamePair(ci.Name, cj.Name)
				if found[key] {
					continue
				}
				if ci.IsAgainst(cj) && !g.Connects(ci, cj) {
					found[key] = true
					missing = append(missing, key)
				}
			}
		}
	}
	sortPairs(missing)
	return
}

// ExtraConnections returns the connections between columns that are not
// against each other
func (g *Grid) ExtraConnections() (extra []types.NamePair) {
	for _, con := range g.connectionList {
		if !con.Columns[0].IsAgainst(con.Columns[1]) {
			extra = append(extra, con.Key())
		}
	}
	sortPairs(extra)
	return
}

// Orphans returns the nodes that belong to no column
func (g *Grid) Orphans() (orphans []*Node) {
	for _, n := range g.nodeList {
		if n.NumColumns() == 0 {
			orphans = append(orphans, n)
		}
	}
	return
}

func (g *Grid) DeleteOrphans() error {
	var errs []error
	for _, n := range g.Orphans() {
		if err := g.DeleteNode(n.Name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BadColumns returns the columns that do not contain their own centres
func (g *Grid) BadColumns() (bad []*Column) {
	for _, col := range g.columnList {
		if !col.ContainsPoint(col.centre) {
			bad = append(bad, col)
		}
	}
	return
}

// BadLayers returns the layers below the surface layer that do not contain
// their own centres
func (g *Grid) BadLayers() (bad []*Layer) {
	for i, lay := range g.layerList {
		if i > 0 && !(lay.Bottom <= lay.Centre && lay.Centre <= lay.Top) {
			bad = append(bad, lay)
		}
	}
	return
}

// AddMissingConnections connects every pair of columns found by MissingConnections
func (g *Grid) AddMissingConnections() (added int, err error) {
	var errs []error
	for _, key := range g.MissingConnections() {
		if _, err = g.AddConnection(key[0], key[1]); err != nil {
			errs = append(errs, err)
			continue
		}
		added++
	}
	return added, errors.Join(errs...)
}

/*
Check looks for missing and extra connections, orphaned nodes, and columns
and layers that do not contain their own centres. With fix, each kind of
problem is repaired. Unless silent, findings are reported to g.Out.
The report lists what was found before any fix, and the repairs that failed.
*/
func (g *Grid) Check(fix, silent bool) (ok bool, report CheckReport) {
	printf := func(format string, args ...interface{}) {
		if !silent && g.Out != nil {
			fmt.Fprintf(g.Out, format, args...)
		}
	}
	if report.MissingConnections = g.MissingConnections(); len(report.MissingConnections) > 0 {
		printf("Missing connections: %v\n", report.MissingConnections)
		if fix {
			for _, key := range report.MissingConnections {
				if _, err := g.AddConnection(key[0], key[1]); err != nil {
					report.FixErrors = append(report.FixErrors, err)
				}
			}
			printf("Missing connections fixed.\n")
		}
	}
	if report.ExtraConnections = g.ExtraConnections(); len(report.ExtraConnections) > 0 {
		printf("Extra connections: %v\n", report.ExtraConnections)
		if fix {
			for _, key := range report.ExtraConnections {
				if err := g.DeleteConnection(key[0], key[1]); err != nil {
					report.FixErrors = append(report.FixErrors, err)
				}
			}
			printf("Extra connections fixed.\n")
		}
	}
	if orphans := g.Orphans(); len(orphans) > 0 {
		for _, n := range orphans {
			report.Orphans = append(report.Orphans, n.Name)
		}
		printf("Orphaned nodes: %v\n", report.Orphans)
		if fix {
			if err := g.DeleteOrphans(); err != nil {
				report.FixErrors = append(report.FixErrors, err)
			}
			printf("Orphaned nodes deleted.\n")
		}
	}
	if bad := g.BadColumns(); len(bad) > 0 {
		for _, col := range bad {
			report.BadColumns = append(report.BadColumns, col.Name)
		}
		printf("Bad columns: %v\n", report.BadColumns)
		if fix {
			for _, col := range bad {
				col.centre = col.Centroid()
				if !col.ContainsPoint(col.centre) {
					col.centre = geometry2D.PolygonCentroid(col.Polygon())
				}
			}
			printf("Columns fixed.\n")
		}
	}
	if bad := g.BadLayers(); len(bad) > 0 {
		for _, lay := range bad {
			report.BadLayers = append(report.BadLayers, lay.Name)
		}
		printf("Bad layers: %v\n", report.BadLayers)
		if fix {
			for _, lay := range bad {
				lay.Bottom, lay.Top = min(lay.Bottom, lay.Top), max(lay.Bottom, lay.Top)
				lay.Centre = 0.5 * (lay.Bottom + lay.Top)
			}
			printf("Layers fixed.\n")
		}
	}
	for _, err := range report.FixErrors {
		printf("Fix failed: %v\n", err)
	}
	if ok = report.OK(); ok {
		printf("No problems found.\n")
	}
	return
}

func sortPairs(pairs []types.NamePair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
}
