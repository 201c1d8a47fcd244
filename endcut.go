package gcpath

import (
	"strconv"
	"strings"
)

const (
	absoluteModeToken = "G90"
	endCuttingComment = "(End cutting path id"
)

// Marker is a 1-indexed line number; the zero Marker means not found.
type Marker int

const NotFound Marker = 0

func (m Marker) Found() bool {
	return m > 0
}

func (m Marker) String() string {
	if !m.Found() {
		return "not found"
	}
	return strconv.Itoa(int(m))
}

// FindEndOfCut scans every line of the program, regardless of the excerpt
// being analyzed. Positioning programs end cutting at the second G90;
// interpolation programs at the first "(End cutting path id" comment.
func FindEndOfCut(d Dialect, lines []string) Marker {
	switch d {
	case Positioning:
		seen := 0
		for ldx, line := range lines {
			seen += strings.Count(line, absoluteModeToken)
			if seen >= 2 {
				return Marker(ldx + 1)
			}
		}
	case Interpolation:
		for ldx, line := range lines {
			if strings.Contains(line, endCuttingComment) {
				return Marker(ldx + 1)
			}
		}
	default:
		panic("unexpected dialect: " + d.String())
	}
	return NotFound
}
