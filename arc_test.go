package gcpath

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func closeEnough(f1, f2 float64) bool {
	return math.Abs(f1-f2) < tolerance
}

func TestTotalDistance(t *testing.T) {
	cases := []struct {
		name string
		path Path
		want float64
	}{
		{
			name: "empty",
			path: Path{Dialect: Positioning},
			want: 0,
		},
		{
			name: "single",
			path: Path{Dialect: Interpolation, Records: []Record{{X: 3, Y: 4, Motion: Linear}}},
			want: 0,
		},
		{
			name: "positioning segment",
			path: Path{Dialect: Positioning, Records: []Record{
				{X: 0, Y: 0, Motion: NoMotion},
				{X: 3, Y: 4, Motion: NoMotion},
			}},
			want: 5,
		},
		{
			name: "positioning square",
			path: Path{Dialect: Positioning, Records: []Record{
				{X: 0, Y: 0, Motion: NoMotion},
				{X: 2, Y: 0, Motion: NoMotion},
				{X: 2, Y: 2, Motion: NoMotion},
				{X: 0, Y: 2, Motion: NoMotion},
				{X: 0, Y: 0, Motion: NoMotion},
			}},
			want: 8,
		},
		{
			name: "interpolation linear",
			path: Path{Dialect: Interpolation, Records: []Record{
				{X: 1, Y: 1, Motion: Rapid},
				{X: 4, Y: 5, Motion: Linear},
			}},
			want: 5,
		},
		{
			name: "quarter turn",
			path: Path{Dialect: Interpolation, Records: []Record{
				{X: 2, Y: 0, Motion: Linear},
				{X: 0, Y: 2, I: Some(-2), J: Some(0), Motion: CounterClockwiseArc},
			}},
			want: math.Pi,
		},
		{
			name: "quarter turn clockwise",
			path: Path{Dialect: Interpolation, Records: []Record{
				{X: 0, Y: 3, Motion: Linear},
				{X: 3, Y: 0, I: Some(0), J: Some(-3), Motion: ClockwiseArc},
			}},
			want: 1.5 * math.Pi,
		},
		{
			name: "half turn",
			path: Path{Dialect: Interpolation, Records: []Record{
				{X: 1, Y: 0, Motion: Rapid},
				{X: -1, Y: 0, I: Some(-1), J: Some(0), Motion: CounterClockwiseArc},
			}},
			want: math.Pi,
		},
		{
			name: "arc after arc",
			path: Path{Dialect: Interpolation, Records: []Record{
				{X: 1, Y: 0, Motion: Rapid},
				{X: 0, Y: 1, I: Some(-1), J: Some(0), Motion: CounterClockwiseArc},
				{X: -1, Y: 0, I: Some(0), J: Some(-1), Motion: CounterClockwiseArc},
				{X: -1, Y: 5, Motion: Linear},
			}},
			want: math.Pi + 5,
		},
		{
			name: "linear destination after arc",
			path: Path{Dialect: Interpolation, Records: []Record{
				{X: 0, Y: 0, Motion: Linear},
				{X: 0, Y: 2, I: Some(0), J: Some(1), Motion: ClockwiseArc},
				{X: 3, Y: 6, I: Some(9), J: Some(9), Motion: Linear},
			}},
			want: math.Pi + 5,
		},
		{
			name: "missing offset counts as zero",
			path: Path{Dialect: Interpolation, Records: []Record{
				{X: 0, Y: 2, Motion: Linear},
				{X: 2, Y: 0, J: Some(-2), Motion: ClockwiseArc},
			}},
			want: math.Pi,
		},
	}

	for _, c := range cases {
		got, err := TotalDistance(c.path)
		if err != nil {
			t.Errorf("TotalDistance(%s) failed with %s", c.name, err)
		} else if !closeEnough(got, c.want) {
			t.Errorf("TotalDistance(%s): got %v want %v", c.name, got, c.want)
		}
	}
}

func TestTotalDistanceEmptyIsZero(t *testing.T) {
	for _, d := range []Dialect{Positioning, Interpolation} {
		for _, records := range [][]Record{nil, {{X: 7, Y: 9, Motion: ClockwiseArc}}} {
			got, err := TotalDistance(Path{Dialect: d, Records: records})
			if err != nil || got != 0 {
				t.Errorf("TotalDistance(%s, %v): got %v, %v want exactly 0", d, records, got, err)
			}
		}
	}
}

func TestTotalDistanceDegenerateArc(t *testing.T) {
	cases := []struct {
		name    string
		records []Record
		index   int
	}{
		{
			name: "center at start",
			records: []Record{
				{X: 1, Y: 1, Motion: Rapid},
				{X: 2, Y: 2, I: Some(0), J: Some(0), Motion: ClockwiseArc},
			},
			index: 1,
		},
		{
			name: "no offsets",
			records: []Record{
				{X: 1, Y: 1, Motion: Rapid},
				{X: 3, Y: 1, Motion: Linear},
				{X: 2, Y: 2, Motion: CounterClockwiseArc},
			},
			index: 2,
		},
		{
			name: "center at end",
			records: []Record{
				{X: 0, Y: 0, Motion: Rapid},
				{X: 1, Y: 0, I: Some(1), J: Some(0), Motion: ClockwiseArc},
			},
			index: 1,
		},
	}

	for _, c := range cases {
		got, err := TotalDistance(Path{Dialect: Interpolation, Records: c.records})
		if !errors.Is(err, ErrDegenerateArc) {
			t.Errorf("TotalDistance(%s): got %v, %v want %s", c.name, got, err, ErrDegenerateArc)
			continue
		}
		var ae *ArcError
		if !errors.As(err, &ae) || ae.Index != c.index {
			t.Errorf("TotalDistance(%s): got %v want segment %d", c.name, err, c.index)
		}
		if got != 0 {
			t.Errorf("TotalDistance(%s): got partial total %v", c.name, got)
		}
	}
}

func TestParseThenDistance(t *testing.T) {
	lines := []string{
		"G00 X10 Y0",
		"G03 X0 Y10 I-10 J0",
		"G01 X0 Y20",
	}
	res := Parse(Interpolation, lines, 1, len(lines))
	got, err := TotalDistance(res.Path)
	if err != nil {
		t.Fatalf("TotalDistance() failed with %s", err)
	}
	want := 5*math.Pi + 10
	if RoundDistance(got) != RoundDistance(want) {
		t.Errorf("TotalDistance(): got %v want %v", RoundDistance(got), RoundDistance(want))
	}
}

func TestRoundDistance(t *testing.T) {
	cases := []struct {
		d, want float64
	}{
		{d: 0, want: 0},
		{d: 5, want: 5},
		{d: math.Pi, want: 3.1416},
		{d: 1.23444, want: 1.2344},
		{d: 1.23446, want: 1.2345},
		{d: 100.00001, want: 100},
	}

	for _, c := range cases {
		got := RoundDistance(c.d)
		if got != c.want {
			t.Errorf("RoundDistance(%v): got %v want %v", c.d, got, c.want)
		}
	}
}

// The arc length ignores the sweep direction, while the rasterizer follows
// it. For a reflex arc the two disagree: the length is that of the shorter
// complement.
func TestReflexArcDivergence(t *testing.T) {
	// Counterclockwise three quarter turn from (1, 0) around the origin to (0, -1).
	path := Path{Dialect: Interpolation, Records: []Record{
		{X: 1, Y: 0, Motion: Rapid},
		{X: 0, Y: -1, I: Some(-1), J: Some(0), Motion: CounterClockwiseArc},
	}}

	got, err := TotalDistance(path)
	if err != nil {
		t.Fatalf("TotalDistance() failed with %s", err)
	}
	if !closeEnough(got, math.Pi/2) {
		t.Errorf("TotalDistance(): got %v want %v", got, math.Pi/2)
	}

	d := Rasterize(path)
	if len(d.Strokes) != 1 {
		t.Fatalf("Rasterize(): got %d strokes want 1", len(d.Strokes))
	}
	drawn := strokeLength(d.Strokes[0])
	if math.Abs(drawn-1.5*math.Pi) > 1e-3 {
		t.Errorf("Rasterize(): drawn length %v want about %v", drawn, 1.5*math.Pi)
	}
}

func strokeLength(s Stroke) float64 {
	var l float64
	for pdx := 1; pdx < len(s); pdx += 1 {
		l += hypot(s[pdx-1], s[pdx])
	}
	return l
}
