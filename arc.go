package gcpath

import (
	"errors"
	"fmt"
	"math"
)

const (
	distancePlaces = 4
)

var (
	ErrDegenerateArc = errors.New("degenerate arc: center coincides with an endpoint")
)

// ArcError identifies the segment, ending at record Index, whose arc length
// could not be computed.
type ArcError struct {
	Index int
	Err   error
}

func (e *ArcError) Error() string {
	return fmt.Sprintf("segment ending at record %d: %s", e.Index, e.Err)
}

func (e *ArcError) Unwrap() error {
	return e.Err
}

func hypot(p1, p2 Point) float64 {
	return math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
}

// arcCenter is the start of the move offset by the I and J of the record
// ending the move. An absent offset counts as zero.
func arcCenter(from, to Record) Point {
	return Point{
		X: from.X + to.I.Or(0.0),
		Y: from.Y + to.J.Or(0.0),
	}
}

// arcLength measures the angle between the radius vectors with arccos, so it
// is always in [0, π]: the sweep direction is not used and an arc of more
// than half a turn is measured as its shorter complement.
func arcLength(from, to Record) (float64, error) {
	center := arcCenter(from, to)
	v1x, v1y := from.X-center.X, from.Y-center.Y
	v2x, v2y := to.X-center.X, to.Y-center.Y

	n1 := math.Hypot(v1x, v1y)
	n2 := math.Hypot(v2x, v2y)
	if n1 == 0.0 || n2 == 0.0 {
		return 0.0, ErrDegenerateArc
	}

	cos := (v1x*v2x + v1y*v2y) / (n1 * n2)
	// Rounding can push the cosine of nearly parallel vectors just past ±1.
	cos = math.Max(-1.0, math.Min(1.0, cos))
	theta := math.Acos(cos)
	return theta * n1, nil
}

// linearSegment reports whether the move ending at to is a straight line:
// both ends linear, or the destination alone linear.
func linearSegment(from, to Record) bool {
	return (from.Motion.Linear() && to.Motion.Linear()) || to.Motion.Linear()
}

// TotalDistance sums the lengths of the segments between consecutive records.
// A path with fewer than two records has length zero.
func TotalDistance(p Path) (float64, error) {
	p.Dialect.mustValid()

	var total float64
	for rdx := 1; rdx < len(p.Records); rdx += 1 {
		from := p.Records[rdx-1]
		to := p.Records[rdx]

		if p.Dialect == Positioning || linearSegment(from, to) {
			total += hypot(from.Point(), to.Point())
			continue
		}

		l, err := arcLength(from, to)
		if err != nil {
			return 0.0, &ArcError{Index: rdx, Err: err}
		}
		total += l
	}
	return total, nil
}

// RoundDistance rounds a distance to the precision it is reported with.
func RoundDistance(d float64) float64 {
	scale := math.Pow10(distancePlaces)
	return math.Round(d*scale) / scale
}
