package gcpath

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func splitLines(s string) []string {
	return strings.Split(strings.TrimPrefix(s, "\n"), "\n")
}

func TestParsePositioning(t *testing.T) {
	cases := []struct {
		s          string
		start, end int
		records    []Record
	}{
		{s: `
G90
G0 X1 Y1
G1 X5
G1 Y4
M3
G1 X-2.5 Y0.5
`,
			start: 1, end: 7,
			records: []Record{
				{X: 1, Y: 1, Motion: NoMotion},
				{X: 5, Y: 1, Motion: NoMotion},
				{X: 5, Y: 4, Motion: NoMotion},
				{X: -2.5, Y: 0.5, Motion: NoMotion},
			},
		},
		{s: `
G1 Y3
G1 X2
`,
			start: 1, end: 2,
			records: []Record{
				{X: 0, Y: 3, Motion: NoMotion},
				{X: 2, Y: 3, Motion: NoMotion},
			},
		},
		{s: `
G0 X1 Y1
G1 X2
G1 Y2
G1 X3
`,
			start: 3, end: 4,
			records: []Record{
				{X: 0, Y: 2, Motion: NoMotion},
				{X: 3, Y: 2, Motion: NoMotion},
			},
		},
		{s: `
G1 F100
G01 X7
`,
			start: 1, end: 2,
			records: []Record{
				{X: 0, Y: 0, Motion: NoMotion},
				{X: 7, Y: 0, Motion: NoMotion},
			},
		},
	}

	for _, c := range cases {
		res := Parse(Positioning, splitLines(c.s), c.start, c.end)
		if res.Path.Dialect != Positioning {
			t.Errorf("Parse(%s): got dialect %s", c.s, res.Path.Dialect)
		}
		checkRecords(t, c.s, res.Path.Records, c.records)
	}
}

func TestParseInterpolation(t *testing.T) {
	cases := []struct {
		s          string
		start, end int
		records    []Record
	}{
		{s: `
G21
G00 X0 Y0
G01 X10 Y0 F300
G01 X10
G02 X0 Y10 I-10 J0
G03 X-10 Y0 I0 J-10
`,
			start: 1, end: 6,
			records: []Record{
				{X: 0, Y: 0, Motion: Rapid},
				{X: 10, Y: 0, Motion: Linear},
				{X: 0, Y: 10, I: Some(-10), J: Some(0), Motion: ClockwiseArc},
				{X: -10, Y: 0, I: Some(0), J: Some(-10), Motion: CounterClockwiseArc},
			},
		},
		{s: `
G01 Y5
G01 X5
`,
			start: 1, end: 2,
			records: nil,
		},
	}

	for _, c := range cases {
		res := Parse(Interpolation, splitLines(c.s), c.start, c.end)
		checkRecords(t, c.s, res.Path.Records, c.records)
	}
}

func checkRecords(t *testing.T, s string, got, want []Record) {
	t.Helper()

	if len(got) != len(want) {
		t.Errorf("Parse(%s): got %d records want %d", s, len(got), len(want))
		return
	}
	for rdx := range want {
		if got[rdx] != want[rdx] {
			t.Errorf("Parse(%s)[%d]: got %+v want %+v", s, rdx, got[rdx], want[rdx])
		}
	}
}

func TestParseStickyPosition(t *testing.T) {
	lines := []string{"G0 X3", "G1 Y4", "G1 X8", "G1 Y-1", "G1 X2 Y2"}
	res := Parse(Positioning, lines, 1, len(lines))

	var lastX, lastY float64
	for rdx, r := range res.Path.Records {
		_, hasX := decimalField(lines[rdx], 'X')
		_, hasY := decimalField(lines[rdx], 'Y')
		if !hasX && r.X != lastX {
			t.Errorf("record %d: X %v did not carry forward %v", rdx, r.X, lastX)
		}
		if !hasY && r.Y != lastY {
			t.Errorf("record %d: Y %v did not carry forward %v", rdx, r.Y, lastY)
		}
		lastX, lastY = r.X, r.Y
	}
}

func TestParseBounds(t *testing.T) {
	res := Parse(Positioning, []string{"G0 X1 Y1", "G1 X5", "G1 Y4"}, 1, 3)
	length, width, err := res.Bounds.Extent()
	if err != nil {
		t.Fatalf("Extent() failed with %s", err)
	}
	if length != 4 || width != 3 {
		t.Errorf("Extent(): got %v, %v want 4, 3", length, width)
	}
	if res.Bounds.XMin != 1 || res.Bounds.XMax != 5 || res.Bounds.YMin != 1 || res.Bounds.YMax != 4 {
		t.Errorf("Bounds: got %+v", res.Bounds)
	}
}

func TestBoundsInsufficient(t *testing.T) {
	cases := [][]Record{
		nil,
		{{X: 3, Y: 4}},
	}

	for _, records := range cases {
		b := BoundsOf(Path{Dialect: Positioning, Records: records})
		if b.Valid() {
			t.Errorf("BoundsOf(%v): unexpectedly valid", records)
		}
		_, _, err := b.Extent()
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("BoundsOf(%v).Extent(): got %v want %s", records, err, ErrInsufficientData)
		}
		if b.Length() != 0 || b.Width() != 0 {
			t.Errorf("BoundsOf(%v): got %v, %v want 0, 0", records, b.Length(), b.Width())
		}
		if math.IsInf(b.Length(), 0) || math.IsInf(b.Width(), 0) {
			t.Errorf("BoundsOf(%v): infinite extent", records)
		}
	}
}

func TestParseRangeClamped(t *testing.T) {
	lines := []string{"G0 X1 Y1", "G1 X2 Y2"}
	cases := []struct {
		start, end int
		n          int
	}{
		{start: 1, end: 2, n: 2},
		{start: 1, end: 10, n: 2},
		{start: 0, end: 1, n: 1},
		{start: 2, end: 2, n: 1},
		{start: 5, end: 9, n: 0},
		{start: 2, end: 1, n: 0},
	}

	for _, c := range cases {
		res := Parse(Positioning, lines, c.start, c.end)
		if res.Path.Len() != c.n {
			t.Errorf("Parse(%d, %d): got %d records want %d", c.start, c.end, res.Path.Len(), c.n)
		}
	}
}

func TestCheckRange(t *testing.T) {
	cases := []struct {
		n, start, end int
		fail          bool
	}{
		{n: 10, start: 1, end: 10},
		{n: 10, start: 4, end: 4},
		{n: 10, start: 0, end: 4, fail: true},
		{n: 10, start: 5, end: 4, fail: true},
		{n: 10, start: 1, end: 11, fail: true},
		{n: 0, start: 1, end: 1, fail: true},
	}

	for _, c := range cases {
		err := CheckRange(c.n, c.start, c.end)
		if c.fail {
			if !errors.Is(err, ErrLineRange) {
				t.Errorf("CheckRange(%d, %d, %d): got %v want %s", c.n, c.start, c.end, err,
					ErrLineRange)
			}
		} else if err != nil {
			t.Errorf("CheckRange(%d, %d, %d) failed with %s", c.n, c.start, c.end, err)
		}
	}
}

func TestFindEndOfCut(t *testing.T) {
	cases := []struct {
		d    Dialect
		s    string
		want Marker
	}{
		{d: Positioning, s: "G90\nG0 X1 Y1\nG1 X2\n", want: NotFound},
		{d: Positioning, s: "G90\nG0 X1 Y1\nG90\nG1 X2\nG90\n", want: 3},
		{d: Positioning, s: "G21\nG90 G90\nG1 X2\n", want: 2},
		{d: Positioning, s: "", want: NotFound},
		{d: Interpolation, s: "G00 X0 Y0\n(End cutting path id: 3)\nG00 X0 Y0\n", want: 2},
		{d: Interpolation, s: "G00 X0 Y0\n(end cutting path id: 3)\n", want: NotFound},
		{d: Interpolation, s: "G00 X0 Y0 (End cutting path id 1)\n(End cutting path id 2)\n",
			want: 1},
	}

	for _, c := range cases {
		got := FindEndOfCut(c.d, strings.Split(c.s, "\n"))
		if got != c.want {
			t.Errorf("FindEndOfCut(%s, %q): got %s want %s", c.d, c.s, got, c.want)
		}
	}
}

func TestEndOfCutIgnoresRange(t *testing.T) {
	lines := []string{"G90", "G0 X1 Y1", "G1 X2", "G90", "G1 X3"}
	res := Parse(Positioning, lines, 2, 3)
	if res.EndOfCut != 4 {
		t.Errorf("EndOfCut: got %s want 4", res.EndOfCut)
	}
}

func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("G90\r\nG0 X1 Y1\nG1 X2"))
	if err != nil {
		t.Fatalf("ReadLines() failed with %s", err)
	}
	want := []string{"G90", "G0 X1 Y1", "G1 X2"}
	if len(lines) != len(want) {
		t.Fatalf("ReadLines(): got %q want %q", lines, want)
	}
	for ldx := range want {
		if lines[ldx] != want[ldx] {
			t.Errorf("ReadLines()[%d]: got %q want %q", ldx, lines[ldx], want[ldx])
		}
	}
}

func TestDialectFor(t *testing.T) {
	cases := []struct {
		name string
		want Dialect
		fail bool
	}{
		{name: "part.nc", want: Positioning},
		{name: "PART.NC", want: Positioning},
		{name: "dir/part.ngc", want: Interpolation},
		{name: "part.Ngc", want: Interpolation},
		{name: "part.gcode", fail: true},
		{name: "part", fail: true},
		{name: "part.nc.txt", fail: true},
	}

	for _, c := range cases {
		d, err := DialectFor(c.name)
		if c.fail {
			if !errors.Is(err, ErrUnsupportedDialect) {
				t.Errorf("DialectFor(%s): got %v want %s", c.name, err, ErrUnsupportedDialect)
			}
		} else if err != nil {
			t.Errorf("DialectFor(%s) failed with %s", c.name, err)
		} else if d != c.want {
			t.Errorf("DialectFor(%s): got %s want %s", c.name, d, c.want)
		}
	}
}
