package gcpath

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedDialect = errors.New("unsupported file format: only .nc and .ngc files are supported")
)

type Dialect byte

const (
	// Positioning programs (.nc) use G0/G1 moves with sticky X and Y.
	Positioning Dialect = iota + 1
	// Interpolation programs (.ngc) use G00 through G03 with explicit I/J arc offsets.
	Interpolation
)

func (d Dialect) String() string {
	switch d {
	case Positioning:
		return "nc"
	case Interpolation:
		return "ngc"
	default:
		return fmt.Sprintf("dialect(%d)", byte(d))
	}
}

// DialectFor selects the dialect from the suffix of a file name.
func DialectFor(filename string) (Dialect, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".nc":
		return Positioning, nil
	case ".ngc":
		return Interpolation, nil
	}
	return 0, fmt.Errorf("%s: %w", filename, ErrUnsupportedDialect)
}

// ParseDialect accepts the names returned by Dialect.String.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "nc":
		return Positioning, nil
	case "ngc":
		return Interpolation, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnsupportedDialect)
}

func (d Dialect) mustValid() {
	if d != Positioning && d != Interpolation {
		panic(fmt.Sprintf("unexpected dialect: %d", byte(d)))
	}
}
