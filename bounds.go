package gcpath

import (
	"errors"
	"math"
)

var (
	ErrInsufficientData = errors.New("fewer than two records: extent undefined")
)

// Bounds accumulates the extrema of the positions of a path.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
	Count      int
}

func NewBounds() Bounds {
	return Bounds{
		XMin: math.Inf(1),
		XMax: math.Inf(-1),
		YMin: math.Inf(1),
		YMax: math.Inf(-1),
	}
}

func BoundsOf(p Path) Bounds {
	b := NewBounds()
	for _, r := range p.Records {
		b = b.Add(r.X, r.Y)
	}
	return b
}

func (b Bounds) Add(x, y float64) Bounds {
	b.XMin = math.Min(b.XMin, x)
	b.XMax = math.Max(b.XMax, x)
	b.YMin = math.Min(b.YMin, y)
	b.YMax = math.Max(b.YMax, y)
	b.Count += 1
	return b
}

// Valid is false for an empty or single record path.
func (b Bounds) Valid() bool {
	return b.Count >= 2
}

// Length is the extent along X, zero when the bounds are not valid.
func (b Bounds) Length() float64 {
	if !b.Valid() {
		return 0
	}
	return b.XMax - b.XMin
}

// Width is the extent along Y, zero when the bounds are not valid.
func (b Bounds) Width() float64 {
	if !b.Valid() {
		return 0
	}
	return b.YMax - b.YMin
}

func (b Bounds) Extent() (length, width float64, err error) {
	if !b.Valid() {
		return 0, 0, ErrInsufficientData
	}
	return b.Length(), b.Width(), nil
}
