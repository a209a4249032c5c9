package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Surface is the drawing target a frame is issued against.
type Surface interface {
	Clear(c color.RGBA) error
	FillCircle(center image.Point, radius int, c color.RGBA) error
	DrawLine(a, b image.Point, c color.RGBA) error
}

// Op names one kind of draw call.
type Op string

const (
	OpClear  Op = "clear"
	OpCircle Op = "circle"
	OpLine   Op = "line"
)

// DrawCall is one recorded Surface call. Unused fields stay zero.
type DrawCall struct {
	Op     Op
	A      image.Point // circle centre or line start
	B      image.Point // line end
	Radius int
	Color  color.RGBA
}

// String formats the call as a fixed-width log line.
//
//	circle (412,87)       r=6   #ff0000
func (c DrawCall) String() string {
	hex := fmt.Sprintf("#%02x%02x%02x", c.Color.R, c.Color.G, c.Color.B)
	switch c.Op {
	case OpCircle:
		return fmt.Sprintf("%-6s %-13s r=%-3d %s", c.Op, c.A, c.Radius, hex)
	case OpLine:
		return fmt.Sprintf("%-6s %s-%s %s", c.Op, c.A, c.B, hex)
	default:
		return fmt.Sprintf("%-6s %s", c.Op, hex)
	}
}

// Recorder is an in-memory Surface that keeps every call in order. It backs
// tests and the headless report.
type Recorder struct {
	calls []DrawCall
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear(c color.RGBA) error {
	r.calls = append(r.calls, DrawCall{Op: OpClear, Color: c})
	return nil
}

func (r *Recorder) FillCircle(center image.Point, radius int, c color.RGBA) error {
	r.calls = append(r.calls, DrawCall{Op: OpCircle, A: center, Radius: radius, Color: c})
	return nil
}

func (r *Recorder) DrawLine(a, b image.Point, c color.RGBA) error {
	r.calls = append(r.calls, DrawCall{Op: OpLine, A: a, B: b, Color: c})
	return nil
}

// Calls returns all recorded calls.
func (r *Recorder) Calls() []DrawCall {
	return r.calls
}

// Filter returns the calls of one kind.
func (r *Recorder) Filter(op Op) []DrawCall {
	var out []DrawCall
	for _, c := range r.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many calls of one kind were recorded.
func (r *Recorder) Count(op Op) int {
	return len(r.Filter(op))
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
}

// Format returns the full call log, one call per line, for t.Log output.
func (r *Recorder) Format() string {
	var sb strings.Builder
	for _, c := range r.calls {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
