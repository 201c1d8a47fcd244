package gcpath

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

type Motion int8

const (
	NoMotion            Motion = -1 // positioning records carry no code
	Rapid               Motion = 0  // G0
	Linear              Motion = 1  // G1
	ClockwiseArc        Motion = 2  // G2
	CounterClockwiseArc Motion = 3  // G3
)

func (m Motion) Linear() bool {
	return m == Rapid || m == Linear
}

func (m Motion) Arc() bool {
	return m == ClockwiseArc || m == CounterClockwiseArc
}

func (m Motion) String() string {
	if m == NoMotion {
		return "none"
	}
	return fmt.Sprintf("G%d", int8(m))
}

// Offset is an arc offset that may be absent from the line.
type Offset struct {
	Val   float64
	Valid bool
}

func Some(v float64) Offset {
	return Offset{Val: v, Valid: true}
}

// Or returns the offset value or def when absent.
func (o Offset) Or(def float64) float64 {
	if !o.Valid {
		return def
	}
	return o.Val
}

func (o Offset) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Val)
}

func (o *Offset) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = Offset{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// Record is one recognized motion line: the position after the move, the
// arc center offset relative to the start of the move, and the motion code.
type Record struct {
	X, Y   float64
	I, J   Offset
	Motion Motion
}

type Point struct {
	X, Y float64
}

func (r Record) Point() Point {
	return Point{r.X, r.Y}
}

// Path is the ordered sequence of records extracted from one program excerpt.
type Path struct {
	Dialect Dialect
	Records []Record
}

func (p Path) Len() int {
	return len(p.Records)
}

var errRecordShape = errors.New("unexpected coordinate record shape")

// MarshalJSON encodes the records as fixed-order tuples: [x, y] for
// positioning programs, [x, y, i, j, g] for interpolation programs with null
// for an absent offset.
func (p Path) MarshalJSON() ([]byte, error) {
	p.Dialect.mustValid()

	var buf bytes.Buffer
	buf.WriteByte('[')
	for rdx, r := range p.Records {
		if rdx > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('[')
		buf.WriteString(formatFloat(r.X))
		buf.WriteByte(',')
		buf.WriteString(formatFloat(r.Y))
		if p.Dialect == Interpolation {
			for _, o := range []Offset{r.I, r.J} {
				buf.WriteByte(',')
				b, _ := o.MarshalJSON()
				buf.Write(b)
			}
			buf.WriteByte(',')
			buf.WriteString(strconv.Itoa(int(r.Motion)))
		}
		buf.WriteByte(']')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the tuple form written by MarshalJSON. When the path
// has no dialect yet, it is inferred from the tuple width.
func (p *Path) UnmarshalJSON(b []byte) error {
	var tuples [][]json.RawMessage
	if err := json.Unmarshal(b, &tuples); err != nil {
		return err
	}

	records := make([]Record, 0, len(tuples))
	for tdx, tuple := range tuples {
		if p.Dialect == 0 {
			switch len(tuple) {
			case 2:
				p.Dialect = Positioning
			case 5:
				p.Dialect = Interpolation
			}
		}

		var r Record
		switch {
		case p.Dialect == Positioning && len(tuple) == 2:
			r.Motion = NoMotion
		case p.Dialect == Interpolation && len(tuple) == 5:
			if err := json.Unmarshal(tuple[2], &r.I); err != nil {
				return fmt.Errorf("record %d: i: %w", tdx, err)
			}
			if err := json.Unmarshal(tuple[3], &r.J); err != nil {
				return fmt.Errorf("record %d: j: %w", tdx, err)
			}
			var g int8
			if err := json.Unmarshal(tuple[4], &g); err != nil {
				return fmt.Errorf("record %d: g: %w", tdx, err)
			}
			r.Motion = Motion(g)
		default:
			return fmt.Errorf("record %d: %w: %d fields", tdx, errRecordShape, len(tuple))
		}
		if err := json.Unmarshal(tuple[0], &r.X); err != nil {
			return fmt.Errorf("record %d: x: %w", tdx, err)
		}
		if err := json.Unmarshal(tuple[1], &r.Y); err != nil {
			return fmt.Errorf("record %d: y: %w", tdx, err)
		}
		records = append(records, r)
	}
	if p.Dialect == 0 {
		p.Dialect = Positioning
	}
	p.Records = records
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
