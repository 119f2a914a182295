package readfiles

import (
	"strconv"
	"strings"
)

// FortranFloat parses a number written by Fortran. On exponent underflow
// Fortran can drop the 'E', writing 1.5-300 for 1.5E-300; the marker is
// put back before the trailing sign. Anything unreadable gives zero.
func FortranFloat(s string) (v float64) {
	var err error
	s = strings.TrimSpace(s)
	if v, err = strconv.ParseFloat(s, 64); err == nil {
		return
	}
	if i := strings.LastIndexAny(s, "+-"); i > 0 && !strings.ContainsAny(s[i-1:i], "eEdD") {
		if v, err = strconv.ParseFloat(s[:i]+"e"+s[i:], 64); err == nil {
			return
		}
	}
	if d := strings.NewReplacer("d", "e", "D", "e").Replace(s); d != s {
		if v, err = strconv.ParseFloat(d, 64); err == nil {
			return
		}
	}
	return 0
}

// fixedField returns the trimmed columns [i1,i2) of a fixed format line,
// blank where the line is short
func fixedField(line string, i1, i2 int) string {
	if i1 >= len(line) {
		return ""
	}
	if i2 > len(line) {
		i2 = len(line)
	}
	return strings.TrimSpace(line[i1:i2])
}

// padLine extends a line with blanks to width
func padLine(line string, width int) string {
	if len(line) >= width {
		return line
	}
	return line + strings.Repeat(" ", width-len(line))
}
