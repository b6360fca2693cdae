package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"time"

	"git.sr.ht/~whereswaldon/chartkit/animation"
	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/plot"
)

// KindCombined is the document kind for charts mixing line, bar, scatter,
// candle and bubble sets.
const KindCombined = "combined"

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Document describes a chart and its data in a serializable form.
type Document struct {
	Kind       string          `json:"kind"`
	Title      string          `json:"title,omitempty"`
	Width      int             `json:"width,omitempty"`
	Height     int             `json:"height,omitempty"`
	Background string          `json:"background,omitempty"`
	BarWidth   float64         `json:"barWidth,omitempty"`
	XAxis      *AxisSpec       `json:"xAxis,omitempty"`
	LeftAxis   *AxisSpec       `json:"leftAxis,omitempty"`
	RightAxis  *AxisSpec       `json:"rightAxis,omitempty"`
	Animation  *AnimationSpec  `json:"animation,omitempty"`
	Pie        *PieSpec        `json:"pie,omitempty"`
	DataSets   []DataSetSpec   `json:"dataSets"`
	Highlights []HighlightSpec `json:"highlights,omitempty"`
	Legend     *LegendSpec     `json:"legend,omitempty"`
}

type AxisSpec struct {
	Enabled     *bool    `json:"enabled,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	LabelCount  int      `json:"labelCount,omitempty"`
	Granularity float64  `json:"granularity,omitempty"`
	Inverted    bool     `json:"inverted,omitempty"`
	GridLines   *bool    `json:"gridLines,omitempty"`
	Labels      *bool    `json:"labels,omitempty"`

	LimitLines []LimitLineSpec `json:"limitLines,omitempty"`
}

// LimitLineSpec marks a value on an axis. Position is one of rightTop,
// rightBottom, leftTop and leftBottom.
type LimitLineSpec struct {
	Limit    float64   `json:"limit"`
	Label    string    `json:"label,omitempty"`
	Color    string    `json:"color,omitempty"`
	Width    float64   `json:"width,omitempty"`
	Dash     []float64 `json:"dash,omitempty"`
	Position string    `json:"position,omitempty"`
}

// LegendSpec enables and places the legend. A present spec enables the
// legend unless Enabled says otherwise.
type LegendSpec struct {
	Enabled     *bool  `json:"enabled,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	Horizontal  string `json:"horizontal,omitempty"`
	Vertical    string `json:"vertical,omitempty"`
	Form        string `json:"form,omitempty"`
	RightToLeft bool   `json:"rightToLeft,omitempty"`
	WordWrap    bool   `json:"wordWrap,omitempty"`
	Inside      bool   `json:"inside,omitempty"`
}

// Duration is a time.Duration read from strings such as "750ms".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

type AnimationSpec struct {
	X      Duration `json:"x,omitempty"`
	Y      Duration `json:"y,omitempty"`
	Easing string   `json:"easing,omitempty"`
}

type PieSpec struct {
	Hole          *bool    `json:"hole,omitempty"`
	HoleRadius    float64  `json:"holeRadius,omitempty"`
	CenterText    string   `json:"centerText,omitempty"`
	PercentValues bool     `json:"percentValues,omitempty"`
	EntryLabels   *bool    `json:"entryLabels,omitempty"`
	Rotation      *float64 `json:"rotation,omitempty"`
	MaxAngle      float64  `json:"maxAngle,omitempty"`
	MinAngle      float64  `json:"minAngle,omitempty"`
}

// DataSetSpec is one data set. Kind is only read in combined documents;
// other documents use the document kind for every set.
type DataSetSpec struct {
	Label      string   `json:"label"`
	Kind       string   `json:"kind,omitempty"`
	Axis       string   `json:"axis,omitempty"`
	Hidden     bool     `json:"hidden,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	DrawValues *bool    `json:"drawValues,omitempty"`
	// Form is the legend form of the set's entries.
	Form       string   `json:"form,omitempty"`

	Mode      string    `json:"mode,omitempty"`
	LineWidth float64   `json:"lineWidth,omitempty"`
	Dash      []float64 `json:"dash,omitempty"`
	Filled    bool      `json:"filled,omitempty"`
	Circles   *bool     `json:"circles,omitempty"`
	Shape     string    `json:"shape,omitempty"`
	ShapeSize float64   `json:"shapeSize,omitempty"`

	// Values is shorthand for entries at x = 0, 1, 2, ...; Labels names
	// them for pie and radar sets.
	Values  []float64   `json:"values,omitempty"`
	Labels  []string    `json:"labels,omitempty"`
	Entries []EntrySpec `json:"entries,omitempty"`
}

type EntrySpec struct {
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Size  float64   `json:"size,omitempty"`
	High  float64   `json:"high,omitempty"`
	Low   float64   `json:"low,omitempty"`
	Open  float64   `json:"open,omitempty"`
	Close float64   `json:"close,omitempty"`
	Stack []float64 `json:"stack,omitempty"`
	Label string    `json:"label,omitempty"`
}

// HighlightSpec selects the entry at X of a data set. Data picks the sub
// data of a combined document by kind.
type HighlightSpec struct {
	X       float64 `json:"x"`
	DataSet int     `json:"dataSet"`
	Data    string  `json:"data,omitempty"`
}

// ParseDocument decodes a JSON document.
func ParseDocument(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed decoding document: %w", err)
	}
	return &doc, nil
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Size returns the requested pixel size, defaulting to 800x600.
func (d *Document) Size() (width, height int) {
	width, height = d.Width, d.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}

func (d *Document) combined() bool {
	return strings.EqualFold(d.Kind, KindCombined)
}

// Build converts the document into chart data. Exactly one of the results
// is non-nil on success: combined documents yield CombinedData.
func (d *Document) Build() (*chart.Data, *chart.CombinedData, error) {
	if !d.combined() {
		kind, ok := parseKind(d.Kind)
		if !ok {
			return nil, nil, fmt.Errorf("unknown chart kind %q", d.Kind)
		}
		sets := make([]*chart.DataSet, 0, len(d.DataSets))
		for i, spec := range d.DataSets {
			set, err := spec.build(kind, i)
			if err != nil {
				return nil, nil, err
			}
			sets = append(sets, set)
		}
		data := chart.NewData(sets...)
		if d.BarWidth > 0 {
			data.BarWidth = d.BarWidth
		}
		return data, nil, nil
	}
	byKind := map[chart.Kind][]*chart.DataSet{}
	var order []chart.Kind
	for i, spec := range d.DataSets {
		kind, ok := parseKind(spec.Kind)
		if !ok {
			return nil, nil, fmt.Errorf("data set %d: unknown kind %q", i, spec.Kind)
		}
		set, err := spec.build(kind, i)
		if err != nil {
			return nil, nil, err
		}
		if _, seen := byKind[kind]; !seen {
			order = append(order, kind)
		}
		byKind[kind] = append(byKind[kind], set)
	}
	combined := chart.NewCombinedData()
	for _, kind := range order {
		data := chart.NewData(byKind[kind]...)
		if kind == chart.KindBar && d.BarWidth > 0 {
			data.BarWidth = d.BarWidth
		}
		if !combined.SetData(kind, data) {
			return nil, nil, fmt.Errorf("%s data cannot be combined", kind)
		}
	}
	return nil, combined, nil
}

// parseKind resolves a kind name, treating an empty name as a line chart.
func parseKind(name string) (chart.Kind, bool) {
	if name == "" {
		return chart.KindLine, true
	}
	return chart.ParseKind(name)
}

var lineModes = map[string]chart.LineMode{
	"":           chart.LineLinear,
	"linear":     chart.LineLinear,
	"stepped":    chart.LineStepped,
	"cubic":      chart.LineCubicBezier,
	"horizontal": chart.LineHorizontalBezier,
}

var legendForms = map[string]chart.LegendForm{
	"":       chart.FormDefault,
	"none":   chart.FormNone,
	"empty":  chart.FormEmpty,
	"square": chart.FormSquare,
	"circle": chart.FormCircle,
	"line":   chart.FormLine,
}

var limitPositions = map[string]chart.LimitLabelPosition{
	"":            chart.LimitRightTop,
	"righttop":    chart.LimitRightTop,
	"rightbottom": chart.LimitRightBottom,
	"lefttop":     chart.LimitLeftTop,
	"leftbottom":  chart.LimitLeftBottom,
}

func parseAxis(name string) (chart.AxisDependency, error) {
	switch strings.ToLower(name) {
	case "", "left":
		return chart.AxisLeft, nil
	case "right":
		return chart.AxisRight, nil
	}
	return 0, fmt.Errorf("unknown axis %q", name)
}

func parseColors(names []string) ([]color.NRGBA, error) {
	colors := make([]color.NRGBA, 0, len(names))
	for _, name := range names {
		c, err := chart.ParseColor(name)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

func (s DataSetSpec) entries(kind chart.Kind) []*chart.Entry {
	entries := make([]*chart.Entry, 0, len(s.Values)+len(s.Entries))
	label := func(i int) string {
		if i < len(s.Labels) {
			return s.Labels[i]
		}
		return ""
	}
	for i, v := range s.Values {
		e := chart.NewEntry(float64(i), v)
		e.Label = label(i)
		entries = append(entries, e)
	}
	for _, es := range s.Entries {
		var e *chart.Entry
		switch {
		case kind == chart.KindCandle:
			e = chart.NewCandleEntry(es.X, es.High, es.Low, es.Open, es.Close)
		case kind == chart.KindBubble:
			e = chart.NewBubbleEntry(es.X, es.Y, es.Size)
		case kind == chart.KindBar && len(es.Stack) > 0:
			e = chart.NewStackedEntry(es.X, es.Stack...)
		case kind == chart.KindPie:
			e = chart.NewPieEntry(es.Y, es.Label)
		default:
			e = chart.NewEntry(es.X, es.Y)
		}
		if es.Label != "" {
			e.Label = es.Label
		}
		entries = append(entries, e)
	}
	return entries
}

// build creates the data set at index i of the document.
func (s DataSetSpec) build(kind chart.Kind, i int) (*chart.DataSet, error) {
	set := chart.NewDataSet(kind, s.Label, s.entries(kind))
	set.Visible = !s.Hidden
	axis, err := parseAxis(s.Axis)
	if err != nil {
		return nil, fmt.Errorf("data set %d: %w", i, err)
	}
	set.Axis = axis
	if len(s.Colors) > 0 {
		colors, err := parseColors(s.Colors)
		if err != nil {
			return nil, fmt.Errorf("data set %d: %w", i, err)
		}
		set.Colors = colors
	} else if kind == chart.KindPie {
		set.Colors = make([]color.NRGBA, max(set.EntryCount(), 1))
		for j := range set.Colors {
			set.Colors[j] = chart.PaletteColor(j)
		}
	} else {
		set.Colors = []color.NRGBA{chart.PaletteColor(i)}
	}
	if s.DrawValues != nil {
		set.DrawValues = *s.DrawValues
	}
	form, ok := legendForms[strings.ToLower(s.Form)]
	if !ok {
		return nil, fmt.Errorf("data set %d: unknown legend form %q", i, s.Form)
	}
	set.LegendForm = form
	switch kind {
	case chart.KindLine:
		mode, ok := lineModes[strings.ToLower(s.Mode)]
		if !ok {
			return nil, fmt.Errorf("data set %d: unknown line mode %q", i, s.Mode)
		}
		set.Line.Mode = mode
		if s.LineWidth > 0 {
			set.Line.LineWidth = s.LineWidth
		}
		set.Line.Dash = s.Dash
		set.Line.DrawFilled = s.Filled
		set.Line.FillColor = set.Colors[0]
		set.Line.CircleColors = set.Colors
		if s.Circles != nil {
			set.Line.DrawCircles = *s.Circles
		}
	case chart.KindScatter:
		if s.Shape != "" {
			shape, ok := chart.ParseScatterShape(strings.ToLower(s.Shape))
			if !ok {
				return nil, fmt.Errorf("data set %d: unknown shape %q", i, s.Shape)
			}
			set.Scatter.Shape = shape
		}
		if s.ShapeSize > 0 {
			set.Scatter.ShapeSize = s.ShapeSize
		}
	case chart.KindRadar:
		if s.LineWidth > 0 {
			set.Radar.LineWidth = s.LineWidth
		}
		set.Radar.DrawFilled = s.Filled
		set.Radar.FillColor = set.Colors[0]
	}
	return set, nil
}

// limitLines resolves the limit lines of a, which may be nil.
func (a *AxisSpec) limitLines() ([]*chart.LimitLine, error) {
	if a == nil {
		return nil, nil
	}
	lines := make([]*chart.LimitLine, 0, len(a.LimitLines))
	for i, ls := range a.LimitLines {
		l := chart.NewLimitLine(ls.Limit, ls.Label)
		if ls.Color != "" {
			c, err := chart.ParseColor(ls.Color)
			if err != nil {
				return nil, fmt.Errorf("limit line %d: %w", i, err)
			}
			l.Color = c
		}
		if ls.Width > 0 {
			l.SetWidth(ls.Width)
		}
		l.Dash = ls.Dash
		pos, ok := limitPositions[strings.ToLower(ls.Position)]
		if !ok {
			return nil, fmt.Errorf("limit line %d: unknown position %q", i, ls.Position)
		}
		l.LabelPosition = pos
		lines = append(lines, l)
	}
	return lines, nil
}

func (a *AxisSpec) apply(axis *chart.Axis, limits []*chart.LimitLine) {
	if a == nil {
		return
	}
	if a.Enabled != nil {
		axis.Enabled = *a.Enabled
	}
	if a.Min != nil {
		axis.SetMin(*a.Min)
	}
	if a.Max != nil {
		axis.SetMax(*a.Max)
	}
	if a.LabelCount > 0 {
		axis.LabelCount = a.LabelCount
	}
	axis.Granularity = a.Granularity
	axis.Inverted = a.Inverted
	if a.GridLines != nil {
		axis.DrawGridLines = *a.GridLines
	}
	if a.Labels != nil {
		axis.DrawLabels = *a.Labels
	}
	axis.RemoveAllLimitLines()
	for _, l := range limits {
		axis.AddLimitLine(l)
	}
}

// apply configures l. Nothing is changed when an option is unknown.
func (s *LegendSpec) apply(l *chart.Legend) error {
	if s == nil {
		return nil
	}
	orientation := chart.LegendHorizontal
	switch strings.ToLower(s.Orientation) {
	case "", "horizontal":
	case "vertical":
		orientation = chart.LegendVertical
	default:
		return fmt.Errorf("legend: unknown orientation %q", s.Orientation)
	}
	horizontal := chart.LegendLeft
	switch strings.ToLower(s.Horizontal) {
	case "", "left":
	case "center":
		horizontal = chart.LegendCenter
	case "right":
		horizontal = chart.LegendRight
	default:
		return fmt.Errorf("legend: unknown horizontal alignment %q", s.Horizontal)
	}
	vertical := chart.LegendBottom
	switch strings.ToLower(s.Vertical) {
	case "", "bottom":
	case "middle":
		vertical = chart.LegendMiddle
	case "top":
		vertical = chart.LegendTop
	default:
		return fmt.Errorf("legend: unknown vertical alignment %q", s.Vertical)
	}
	form, ok := legendForms[strings.ToLower(s.Form)]
	if !ok || form == chart.FormDefault {
		if s.Form != "" {
			return fmt.Errorf("legend: unknown form %q", s.Form)
		}
		form = chart.FormSquare
	}
	l.Enabled = s.Enabled == nil || *s.Enabled
	l.Orientation = orientation
	l.Horizontal = horizontal
	l.Vertical = vertical
	l.Form = form
	l.Direction = chart.LeftToRight
	if s.RightToLeft {
		l.Direction = chart.RightToLeft
	}
	l.WordWrap = s.WordWrap
	l.DrawInside = s.Inside
	return nil
}

func (p *PieSpec) apply(c *plot.Chart) {
	if p == nil {
		return
	}
	if p.Hole != nil {
		c.Pie.DrawHole = *p.Hole
	}
	if p.HoleRadius > 0 {
		c.Pie.HoleRadius = p.HoleRadius
		c.Pie.TransparentCircleRadius = p.HoleRadius + 5
	}
	c.Pie.CenterText = p.CenterText
	c.Pie.UsePercentValues = p.PercentValues
	if p.EntryLabels != nil {
		c.Pie.DrawEntryLabels = *p.EntryLabels
	}
	if p.Rotation != nil {
		c.SetRotationAngle(*p.Rotation)
	}
	if p.MaxAngle > 0 {
		c.MaxAngle = p.MaxAngle
	}
	c.MinAngle = p.MinAngle
}

// highlights converts the initial highlights. Their y values are left NaN
// until resolved against the data.
func (d *Document) highlights(combined *chart.CombinedData) ([]chart.Highlight, error) {
	var hs []chart.Highlight
	for i, spec := range d.Highlights {
		h := chart.NewHighlight(spec.X, math.NaN(), spec.DataSet)
		if combined != nil {
			kind, ok := parseKind(spec.Data)
			if !ok {
				return nil, fmt.Errorf("highlight %d: unknown data kind %q", i, spec.Data)
			}
			h.DataIndex = combined.DataIndex(combined.DataByKind(kind))
			if h.DataIndex < 0 {
				return nil, fmt.Errorf("highlight %d: no %s data", i, kind)
			}
		}
		hs = append(hs, h)
	}
	return hs, nil
}

// Apply configures c from the document and sets its data. The chart is
// left unchanged when the document is invalid.
func (d *Document) Apply(c *plot.Chart) error {
	data, combined, err := d.Build()
	if err != nil {
		return err
	}
	hs, err := d.highlights(combined)
	if err != nil {
		return err
	}
	bg := c.Background
	if d.Background != "" {
		if bg, err = chart.ParseColor(d.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	axes := []*AxisSpec{d.XAxis, d.LeftAxis, d.RightAxis}
	limits := make([][]*chart.LimitLine, len(axes))
	for i, a := range axes {
		if limits[i], err = a.limitLines(); err != nil {
			return err
		}
	}
	if err := d.Legend.apply(c.Legend); err != nil {
		return err
	}
	c.Background = bg
	d.XAxis.apply(c.XAxis, limits[0])
	d.LeftAxis.apply(c.LeftAxis, limits[1])
	d.RightAxis.apply(c.RightAxis, limits[2])
	d.Pie.apply(c)
	if combined != nil {
		c.SetCombinedData(combined)
	} else {
		c.SetData(data)
	}
	var resolved []chart.Highlight
	for _, h := range hs {
		var e *chart.Entry
		if combined != nil {
			e = combined.EntryForHighlight(h)
		} else {
			e = data.EntryForHighlight(h)
		}
		if e == nil {
			continue
		}
		h.X, h.Y, h.Entry = e.X, e.Y, e
		resolved = append(resolved, h)
	}
	c.HighlightValues(resolved)
	return nil
}

// ErrNoAnimation is returned by Animate for documents without animation.
var ErrNoAnimation = errors.New("document has no animation")

// Animate starts the document animation on c.
func (d *Document) Animate(c *plot.Chart) error {
	a := d.Animation
	if a == nil || (a.X <= 0 && a.Y <= 0) {
		return ErrNoAnimation
	}
	easing, ok := animation.EasingByName(a.Easing)
	if !ok {
		return fmt.Errorf("unknown easing %q", a.Easing)
	}
	switch {
	case a.X > 0 && a.Y > 0:
		c.AnimateXY(time.Duration(a.X), time.Duration(a.Y), easing, easing)
	case a.X > 0:
		c.AnimateX(time.Duration(a.X), easing)
	default:
		c.AnimateY(time.Duration(a.Y), easing)
	}
	return nil
}
