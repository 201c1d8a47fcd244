package gcpath

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

var (
	ErrLineRange = errors.New("line range out of bounds")
)

// Result is everything derived from parsing one program excerpt.
type Result struct {
	Path     Path
	Bounds   Bounds
	EndOfCut Marker
}

// engine folds the lines of an excerpt into a path. For positioning programs
// curPos is the sticky position carried from one line to the next.
type engine struct {
	dialect Dialect
	curPos  Point
	records []Record
	bounds  Bounds
}

func newEngine(d Dialect) *engine {
	d.mustValid()
	return &engine{
		dialect: d,
		curPos:  Point{0.0, 0.0}, // unset axes start at zero
		bounds:  NewBounds(),
	}
}

func (eng *engine) emit(r Record) {
	eng.records = append(eng.records, r)
	eng.bounds = eng.bounds.Add(r.X, r.Y)
}

func (eng *engine) evaluate(line string) {
	if !Candidate(eng.dialect, line) {
		return
	}

	switch eng.dialect {
	case Positioning:
		eng.curPos = extractPositioning(eng.curPos, line)
		eng.emit(Record{X: eng.curPos.X, Y: eng.curPos.Y, Motion: NoMotion})
	case Interpolation:
		r, ok := extractInterpolation(line)
		if ok {
			eng.emit(r)
		}
	}
}

// clampRange converts the 1-indexed inclusive range [start, end] into slice
// bounds within n lines.
func clampRange(n, start, end int) (int, int) {
	lo := start - 1
	if lo < 0 {
		lo = 0
	}
	hi := end
	if hi > n {
		hi = n
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// CheckRange reports whether [start, end] is a valid 1-indexed inclusive range
// of lines in a program of n lines.
func CheckRange(n, start, end int) error {
	if start < 1 || end < start || end > n {
		return fmt.Errorf("lines %d to %d of %d: %w", start, end, n, ErrLineRange)
	}
	return nil
}

// Parse extracts the path and its bounds from lines start through end
// (1-indexed, inclusive) and locates the end of cut over all of the lines.
// A range reaching past the program is clamped to it.
func Parse(d Dialect, lines []string, start, end int) Result {
	eng := newEngine(d)
	lo, hi := clampRange(len(lines), start, end)
	for _, line := range lines[lo:hi] {
		eng.evaluate(line)
	}

	return Result{
		Path:     Path{Dialect: d, Records: eng.records},
		Bounds:   eng.bounds,
		EndOfCut: FindEndOfCut(d, lines),
	}
}

// ReadLines reads a whole program. Line terminators are dropped.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
