package render

import (
	"image"
	"sort"
	"unicode/utf8"

	"git.sr.ht/~whereswaldon/chartkit/viewport"
)

// CallKind names a Surface method.
type CallKind string

const (
	CallLine    CallKind = "line"
	CallPath    CallKind = "path"
	CallCircle  CallKind = "circle"
	CallRect    CallKind = "rect"
	CallText    CallKind = "text"
	CallImage   CallKind = "image"
	CallSave    CallKind = "save"
	CallRestore CallKind = "restore"
	CallClip    CallKind = "clip"
)

// Call is one recorded draw call. Coords holds the call arguments: the two
// end points of a line, center and radius of a circle, the edges of a rect
// or clip, and the anchor of text and images. Paths keep a copy of their
// segments.
type Call struct {
	Kind     CallKind
	Coords   []float64
	Text     string
	Segments []Segment
	Paint    Paint
}

// Recorder is a Surface that records every call. It measures text with a
// fixed advance of half the text size per rune.
type Recorder struct {
	Calls []Call
	// Clip is the current clip rectangle, nil when unclipped.
	Clip  *viewport.Rect
	clips []*viewport.Rect
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) record(kind CallKind, p Paint, coords ...float64) {
	r.Calls = append(r.Calls, Call{Kind: kind, Coords: coords, Paint: p})
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 float64, p Paint) {
	r.record(CallLine, p, x1, y1, x2, y2)
}

func (r *Recorder) DrawPath(path *Path, p Paint) {
	segs := append([]Segment(nil), path.Segments()...)
	r.Calls = append(r.Calls, Call{Kind: CallPath, Segments: segs, Paint: p})
}

func (r *Recorder) DrawCircle(cx, cy, radius float64, p Paint) {
	r.record(CallCircle, p, cx, cy, radius)
}

func (r *Recorder) DrawRect(left, top, right, bottom float64, p Paint) {
	r.record(CallRect, p, left, top, right, bottom)
}

func (r *Recorder) DrawText(text string, x, y float64, p Paint) {
	r.Calls = append(r.Calls, Call{Kind: CallText, Coords: []float64{x, y}, Text: text, Paint: p})
}

func (r *Recorder) MeasureText(text string, p Paint) (float64, float64) {
	return float64(utf8.RuneCountInString(text)) * p.TextSize / 2, p.TextSize
}

func (r *Recorder) DrawImage(_ image.Image, x, y float64) {
	r.record(CallImage, Paint{}, x, y)
}

func (r *Recorder) Save() {
	r.clips = append(r.clips, r.Clip)
	r.record(CallSave, Paint{})
}

func (r *Recorder) Restore() {
	if n := len(r.clips); n > 0 {
		r.Clip = r.clips[n-1]
		r.clips = r.clips[:n-1]
	}
	r.record(CallRestore, Paint{})
}

func (r *Recorder) ClipRect(left, top, right, bottom float64) {
	c := viewport.Rect{Left: left, Top: top, Right: right, Bottom: bottom}
	if r.Clip != nil {
		c.Left = max(c.Left, r.Clip.Left)
		c.Top = max(c.Top, r.Clip.Top)
		c.Right = min(c.Right, r.Clip.Right)
		c.Bottom = min(c.Bottom, r.Clip.Bottom)
	}
	r.Clip = &c
	r.record(CallClip, Paint{}, left, top, right, bottom)
}

// Reset drops all recorded calls and the clip state.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.Clip = nil
	r.clips = r.clips[:0]
}

// Count returns the number of recorded calls of kind.
func (r *Recorder) Count(kind CallKind) int {
	n := 0
	for _, c := range r.Calls {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls of kind in order.
func (r *Recorder) Filter(kind CallKind) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Texts returns the strings of all text calls in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Kind == CallText {
			out = append(out, c.Text)
		}
	}
	return out
}

// Stat is the number of calls of one kind.
type Stat struct {
	Kind  CallKind
	Count int
}

// Stats returns the call counts per kind, most frequent first.
func (r *Recorder) Stats() []Stat {
	counts := map[CallKind]int{}
	for _, c := range r.Calls {
		counts[c.Kind]++
	}
	out := make([]Stat, 0, len(counts))
	for k, n := range counts {
		out = append(out, Stat{Kind: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}
