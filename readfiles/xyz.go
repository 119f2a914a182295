package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ReadXYZ reads whitespace or comma separated x, y, z points, one per line.
// Blank lines and lines starting with '#' are skipped.
func ReadXYZ(r io.Reader) (data []r3.Vec, err error) {
	var (
		scanner = bufio.NewScanner(r)
		lineNum int
	)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t'
		})
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected x y z, got %q", lineNum, line)
		}
		var v [3]float64
		for i := range v {
			if v[i], err = strconv.ParseFloat(fields[i], 64); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
		}
		data = append(data, r3.Vec{X: v[0], Y: v[1], Z: v[2]})
	}
	err = scanner.Err()
	return
}

func ReadXYZFile(filename string) (data []r3.Vec, err error) {
	var file *os.File
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	return ReadXYZ(file)
}
