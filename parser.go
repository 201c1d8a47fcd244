package gcpath

import (
	"strconv"
	"strings"
)

var (
	// Prefix checks, not word checks: G01 and G17 both start with a
	// positioning prefix, and are treated as motion lines.
	positioningPrefixes   = []string{"G0", "G1"}
	interpolationPrefixes = []string{"G00", "G01", "G02", "G03"}
)

type Letter byte

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// Candidate reports whether line is a motion line in dialect d.
func Candidate(d Dialect, line string) bool {
	switch d {
	case Positioning:
		return hasAnyPrefix(line, positioningPrefixes)
	case Interpolation:
		return hasAnyPrefix(line, interpolationPrefixes)
	default:
		panic("unexpected dialect: " + d.String())
	}
}

func digitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

func scanDigits(s string, idx int) int {
	for idx < len(s) && digitByte(s[idx]) {
		idx += 1
	}
	return idx
}

// scanNumber returns the end of a number starting at idx: an optional minus
// sign, one or more digits, and optionally a decimal point followed by one or
// more digits. It returns idx if there is no number at idx.
func scanNumber(s string, idx int, signed bool) int {
	start := idx
	if signed && idx < len(s) && s[idx] == '-' {
		idx += 1
	}
	end := scanDigits(s, idx)
	if end == idx {
		return start
	}
	if end+1 < len(s) && s[end] == '.' && digitByte(s[end+1]) {
		end = scanDigits(s, end+1)
	}
	return end
}

// field finds the first occurrence of letter immediately followed by a
// number, ignoring anything else on the line.
func field(line string, letter Letter, signed bool) (string, bool) {
	for idx := 0; idx < len(line); idx += 1 {
		if line[idx] != byte(letter) {
			continue
		}
		end := scanNumber(line, idx+1, signed)
		if end > idx+1 {
			return line[idx+1 : end], true
		}
	}
	return "", false
}

func decimalField(line string, letter Letter) (float64, bool) {
	s, ok := field(line, letter, true)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func offsetField(line string, letter Letter) Offset {
	f, ok := decimalField(line, letter)
	if !ok {
		return Offset{}
	}
	return Some(f)
}

func motionField(line string) (Motion, bool) {
	s, ok := field(line, 'G', false)
	if !ok {
		return NoMotion, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > 127 {
		return NoMotion, false
	}
	return Motion(n), true
}

// extractPositioning applies the X and Y fields present on line to pos;
// absent fields keep their previous value.
func extractPositioning(pos Point, line string) Point {
	if x, ok := decimalField(line, 'X'); ok {
		pos.X = x
	}
	if y, ok := decimalField(line, 'Y'); ok {
		pos.Y = y
	}
	return pos
}

// extractInterpolation returns the record for line, or false when X or Y is
// missing.
func extractInterpolation(line string) (Record, bool) {
	x, xok := decimalField(line, 'X')
	y, yok := decimalField(line, 'Y')
	if !xok || !yok {
		return Record{}, false
	}

	r := Record{
		X:      x,
		Y:      y,
		I:      offsetField(line, 'I'),
		J:      offsetField(line, 'J'),
		Motion: NoMotion,
	}
	if m, ok := motionField(line); ok {
		r.Motion = m
	}
	return r, true
}
