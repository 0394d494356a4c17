package render

import "plum-bloom/internal/core"

// OpKind enumerates the calls a Recorder captures.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpBegin
	OpMove
	OpLine
	OpStroke
)

// Op is one captured sink call.
type Op struct {
	Kind  OpKind
	X, Y  float64
	Style Style
}

// Recorder is a Sink that keeps every call it receives. It backs tests and
// dry runs that only need segment counts.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Clear()              { r.Ops = append(r.Ops, Op{Kind: OpClear}) }
func (r *Recorder) BeginPath()          { r.Ops = append(r.Ops, Op{Kind: OpBegin}) }
func (r *Recorder) MoveTo(x, y float64) { r.Ops = append(r.Ops, Op{Kind: OpMove, X: x, Y: y}) }
func (r *Recorder) LineTo(x, y float64) { r.Ops = append(r.Ops, Op{Kind: OpLine, X: x, Y: y}) }

func (r *Recorder) Stroke(style Style) error {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Style: style})
	return nil
}

// Reset forgets all captured calls.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Segments reconstructs the stroked move/line pairs since the last Clear.
func (r *Recorder) Segments() [][2]core.Point {
	var out [][2]core.Point
	var from, to core.Point
	for _, op := range r.Ops {
		switch op.Kind {
		case OpClear:
			out = out[:0]
		case OpMove:
			from = core.Point{X: op.X, Y: op.Y}
		case OpLine:
			to = core.Point{X: op.X, Y: op.Y}
		case OpStroke:
			out = append(out, [2]core.Point{from, to})
		}
	}
	return out
}

// Count returns how many calls of kind were captured.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
