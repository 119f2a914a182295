package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/notargets/mulgrid/mesh"
)

// WriteBNA writes each column outline as a closed Atlas BNA polygon
func WriteBNA(w io.Writer, g *mesh.Grid) (err error) {
	bw := bufio.NewWriter(w)
	for _, col := range g.Columns() {
		fmt.Fprintf(bw, "\"%3s\",\"\",%1d\n", col.Name, col.NumNodes()+1)
		nn := col.NumNodes()
		for i := 0; i <= nn; i++ {
			p := col.Nodes[i%nn].Pos
			fmt.Fprintf(bw, "%10.2f,%10.2f\n", p.X, p.Y)
		}
	}
	return bw.Flush()
}

func WriteBNAFile(filename string, g *mesh.Grid) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return fmt.Errorf("unable to create file %s: %w", filename, err)
	}
	if err = WriteBNA(file, g); err != nil {
		file.Close()
		return
	}
	return file.Close()
}
