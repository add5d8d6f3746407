package surface

import (
	"fmt"
	"image/color"
	"sync"
)

// OpKind names a surface call.
type OpKind int

const (
	OpClearRect OpKind = iota
	OpFillRect
	OpBeginPath
	OpMoveTo
	OpLineTo
	OpStroke
	OpClosePath
	OpFillStyle
	OpStrokeStyle
	OpLineWidth
)

var opNames = [...]string{
	"clearRect", "fillRect", "beginPath", "moveTo", "lineTo",
	"stroke", "closePath", "fillStyle", "strokeStyle", "lineWidth",
}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op is one recorded call. Unused fields are zero.
type Op struct {
	Kind       OpKind
	X, Y, W, H float64
	Color      color.Color
}

func (o Op) String() string {
	switch o.Kind {
	case OpMoveTo, OpLineTo:
		return fmt.Sprintf("%s(%g, %g)", o.Kind, o.X, o.Y)
	case OpClearRect, OpFillRect:
		return fmt.Sprintf("%s(%g, %g, %g, %g)", o.Kind, o.X, o.Y, o.W, o.H)
	case OpFillStyle, OpStrokeStyle:
		return fmt.Sprintf("%s(%s)", o.Kind, Hex(o.Color))
	case OpLineWidth:
		return fmt.Sprintf("%s(%g)", o.Kind, o.W)
	}
	return o.Kind.String() + "()"
}

// Recorder is a Surface that records calls instead of drawing. It is safe
// for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	w, h float64
	ops  []Op
}

// NewRecorder returns a recorder reporting the given size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{w: w, h: h}
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

func (r *Recorder) Width() float64  { return r.w }
func (r *Recorder) Height() float64 { return r.h }

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record(Op{Kind: OpClearRect, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.record(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) BeginPath()          { r.record(Op{Kind: OpBeginPath}) }
func (r *Recorder) MoveTo(x, y float64) { r.record(Op{Kind: OpMoveTo, X: x, Y: y}) }
func (r *Recorder) LineTo(x, y float64) { r.record(Op{Kind: OpLineTo, X: x, Y: y}) }
func (r *Recorder) Stroke()             { r.record(Op{Kind: OpStroke}) }
func (r *Recorder) ClosePath()          { r.record(Op{Kind: OpClosePath}) }

func (r *Recorder) SetFillStyle(c color.Color)   { r.record(Op{Kind: OpFillStyle, Color: c}) }
func (r *Recorder) SetStrokeStyle(c color.Color) { r.record(Op{Kind: OpStrokeStyle, Color: c}) }
func (r *Recorder) SetLineWidth(w float64)       { r.record(Op{Kind: OpLineWidth, W: w}) }

// Ops returns a copy of the recorded calls.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Count returns how many calls of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops() {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Strokes splits the recorded path commands into the MoveTo/LineTo runs
// painted by each Stroke call.
func (r *Recorder) Strokes() [][]Op {
	var (
		out  [][]Op
		path []Op
	)
	for _, op := range r.Ops() {
		switch op.Kind {
		case OpBeginPath:
			path = nil
		case OpMoveTo, OpLineTo:
			path = append(path, op)
		case OpStroke:
			out = append(out, path)
		}
	}
	return out
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}

// Replay issues the recorded calls against dst.
func (r *Recorder) Replay(dst Surface) {
	for _, op := range r.Ops() {
		switch op.Kind {
		case OpClearRect:
			dst.ClearRect(op.X, op.Y, op.W, op.H)
		case OpFillRect:
			dst.FillRect(op.X, op.Y, op.W, op.H)
		case OpBeginPath:
			dst.BeginPath()
		case OpMoveTo:
			dst.MoveTo(op.X, op.Y)
		case OpLineTo:
			dst.LineTo(op.X, op.Y)
		case OpStroke:
			dst.Stroke()
		case OpClosePath:
			dst.ClosePath()
		case OpFillStyle:
			dst.SetFillStyle(op.Color)
		case OpStrokeStyle:
			dst.SetStrokeStyle(op.Color)
		case OpLineWidth:
			dst.SetLineWidth(op.W)
		}
	}
}
