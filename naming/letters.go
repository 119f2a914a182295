package naming

import (
	"strings"
)

type Case uint8

const (
	Lower Case = iota
	Upper
)

type Justification uint8

const (
	Right Justification = iota
	Left
)

// IntToLetters converts a positive integer to a base 26 letter string, so
// that 1 -> "a", 26 -> "z", 27 -> "aa". Zero gives the empty string.
func IntToLetters(i int, c Case) (st string) {
	var (
		alphabet = "abcdefghijklmnopqrstuvwxyz"
		buf      []byte
	)
	if c == Upper {
		alphabet = strings.ToUpper(alphabet)
	}
	for i > 0 {
		buf = append(buf, alphabet[(i-1)%26])
		i = (i - 1) / 26
	}
	for l, r := 0, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	return string(buf)
}

// LettersToInt is the inverse of IntToLetters. Blanks count as zero, so
// justified names decode to the same number as their trimmed form.
func LettersToInt(st string) (i int) {
	for _, ch := range strings.ToLower(st) {
		var d int
		if ch != ' ' {
			d = int(ch-'a') + 1
		}
		i = 26*i + d
	}
	return
}

// Justify pads s with blanks to width, on the left for Right justification
func Justify(s string, width int, j Justification) string {
	if len(s) >= width {
		return s
	}
	pad := strings.Repeat(" ", width-len(s))
	if j == Left {
		return s + pad
	}
	return pad + s
}

// fit returns s cut or right-justified to exactly width characters
func fit(s string, width int) string {
	if len(s) > width {
		return s[:width]
	}
	return Justify(s, width, Right)
}
