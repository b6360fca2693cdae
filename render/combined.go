package render

import "git.sr.ht/~whereswaldon/chartkit/chart"

// DefaultDrawOrder is the order in which combined data is layered, bottom
// first.
var DefaultDrawOrder = []chart.Kind{
	chart.KindLine,
	chart.KindBar,
	chart.KindScatter,
	chart.KindCandle,
	chart.KindBubble,
}

type part struct {
	kind     chart.Kind
	renderer Renderer
}

// CombinedRenderer layers the renderers of each part of combined data.
type CombinedRenderer struct {
	data  func() *chart.CombinedData
	parts []part
	// Bar is the renderer of the bar part, exposed for its settings.
	Bar *BarRenderer
	buf []chart.Highlight
}

// NewCombinedRenderer returns a renderer for the parts of data in the given
// order, or DefaultDrawOrder when order is empty. Kinds that cannot be
// combined are ignored.
func NewCombinedRenderer(c Chart, data func() *chart.CombinedData, order ...chart.Kind) *CombinedRenderer {
	if len(order) == 0 {
		order = DefaultDrawOrder
	}
	r := &CombinedRenderer{data: data}
	partData := func(k chart.Kind) func() *chart.Data {
		return func() *chart.Data {
			if d := data(); d != nil {
				return d.DataByKind(k)
			}
			return nil
		}
	}
	for _, k := range order {
		var pr Renderer
		switch k {
		case chart.KindLine:
			pr = NewLineRenderer(c, partData(k))
		case chart.KindBar:
			r.Bar = NewBarRenderer(c, partData(k))
			pr = r.Bar
		case chart.KindScatter:
			pr = NewScatterRenderer(c, partData(k))
		case chart.KindCandle:
			pr = NewCandleRenderer(c, partData(k))
		case chart.KindBubble:
			pr = NewBubbleRenderer(c, partData(k))
		default:
			chart.Logger().Warn("kind cannot be combined", "kind", k)
			continue
		}
		r.parts = append(r.parts, part{kind: k, renderer: pr})
	}
	return r
}

func (r *CombinedRenderer) DrawData(s Surface) {
	for _, p := range r.parts {
		p.renderer.DrawData(s)
	}
}

func (r *CombinedRenderer) DrawValues(s Surface) {
	for _, p := range r.parts {
		p.renderer.DrawValues(s)
	}
}

func (r *CombinedRenderer) DrawExtras(s Surface) {
	for _, p := range r.parts {
		p.renderer.DrawExtras(s)
	}
}

// DrawHighlighted hands each part the highlights addressed to it, or to no
// part in particular.
func (r *CombinedRenderer) DrawHighlighted(s Surface, hs []chart.Highlight) {
	d := r.data()
	if d == nil {
		return
	}
	for _, p := range r.parts {
		pd := d.DataByKind(p.kind)
		if pd == nil {
			continue
		}
		index := d.DataIndex(pd)
		r.buf = r.buf[:0]
		var from []int
		for i, h := range hs {
			if h.DataIndex == index || h.DataIndex == -1 {
				r.buf = append(r.buf, h)
				from = append(from, i)
			}
		}
		if len(r.buf) == 0 {
			continue
		}
		p.renderer.DrawHighlighted(s, r.buf)
		for j, i := range from {
			hs[i].DrawX, hs[i].DrawY = r.buf[j].DrawX, r.buf[j].DrawY
		}
	}
}
