package gcpath

import (
	"math"
)

// ArcSamples is the number of points sampled along every arc stroke.
const ArcSamples = 100

// Stroke is a polyline.
type Stroke []Point

// Drawing is a path rendered as a list of strokes, one per segment.
type Drawing struct {
	Strokes []Stroke
}

// Extent returns the bounds of every point of every stroke.
func (d Drawing) Extent() Bounds {
	b := NewBounds()
	for _, s := range d.Strokes {
		for _, pt := range s {
			b = b.Add(pt.X, pt.Y)
		}
	}
	return b
}

// Rasterize converts a path into strokes. Moves of an interpolation program
// ending in G2 or G3 become sampled arcs; everything else is a straight line.
func Rasterize(p Path) Drawing {
	p.Dialect.mustValid()

	var d Drawing
	for rdx := 1; rdx < len(p.Records); rdx += 1 {
		from := p.Records[rdx-1]
		to := p.Records[rdx]

		if p.Dialect == Interpolation && to.Motion.Arc() {
			if s, ok := arcStroke(from, to); ok {
				d.Strokes = append(d.Strokes, s)
				continue
			}
		}
		d.Strokes = append(d.Strokes, Stroke{from.Point(), to.Point()})
	}
	return d
}

// sweep returns the start and end angles of the arc from -> to about center,
// adjusted so that interpolating from start to end turns clockwise for G2 and
// counterclockwise for G3.
func sweep(from, to, center Point, m Motion) (float64, float64) {
	start := math.Atan2(from.Y-center.Y, from.X-center.X)
	end := math.Atan2(to.Y-center.Y, to.X-center.X)

	switch m {
	case ClockwiseArc:
		if end > start {
			end -= 2 * math.Pi
		}
	case CounterClockwiseArc:
		if start > end {
			start -= 2 * math.Pi
		}
	}
	return start, end
}

// arcStroke samples the arc ending at to. It returns false when the center
// coincides with the start, leaving nothing to sweep.
func arcStroke(from, to Record) (Stroke, bool) {
	center := arcCenter(from, to)
	radius := hypot(from.Point(), center)
	if radius == 0.0 {
		return nil, false
	}

	start, end := sweep(from.Point(), to.Point(), center, to.Motion)
	s := make(Stroke, ArcSamples)
	for sdx := range s {
		theta := start + (end-start)*float64(sdx)/float64(ArcSamples-1)
		s[sdx] = Point{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
		}
	}
	return s, true
}
