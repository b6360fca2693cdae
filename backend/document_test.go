package backend

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/chartkit/animation"
	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/plot"
)

const lineDoc = `{
	"kind": "line",
	"title": "Temperatures",
	"width": 640,
	"background": "#102030",
	"leftAxis": {"min": 0, "labelCount": 4},
	"rightAxis": {"enabled": true},
	"animation": {"x": "500ms", "y": "1s", "easing": "easeOutCubic"},
	"dataSets": [
		{"label": "inside", "colors": ["#ff0000"], "mode": "cubic", "filled": true, "values": [20, 21, 19]},
		{"label": "outside", "axis": "right", "circles": false, "entries": [{"x": 0, "y": 5}, {"x": 2, "y": 8}]}
	],
	"highlights": [{"x": 1.2, "dataSet": 0}]
}`

func parse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestParseDocument(t *testing.T) {
	doc := parse(t, lineDoc)
	assert.Equal(t, "Temperatures", doc.Title)
	w, h := doc.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, DefaultHeight, h)
	require.NotNil(t, doc.Animation)
	assert.Equal(t, Duration(500*time.Millisecond), doc.Animation.X)

	_, err := ParseDocument(strings.NewReader(`{"kind": "line", "bogus": 1}`))
	assert.Error(t, err, "unknown fields are rejected")
	_, err = ParseDocument(strings.NewReader(`{"animation": {"x": 5}}`))
	assert.Error(t, err, "durations must be strings")
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := parse(t, lineDoc)
	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	again, err := ParseDocument(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestBuildLine(t *testing.T) {
	data, combined, err := parse(t, lineDoc).Build()
	require.NoError(t, err)
	assert.Nil(t, combined)
	require.Equal(t, 2, data.DataSetCount())

	inside := data.DataSet(0)
	assert.Equal(t, chart.KindLine, inside.Kind())
	assert.Equal(t, chart.LineCubicBezier, inside.Line.Mode)
	assert.True(t, inside.Line.DrawFilled)
	assert.Equal(t, []color.NRGBA{{R: 0xff, A: 0xff}}, inside.Colors)
	assert.Equal(t, 2.0, inside.XMax())

	outside := data.DataSet(1)
	assert.Equal(t, chart.AxisRight, outside.Axis)
	assert.False(t, outside.Line.DrawCircles)
	assert.Equal(t, chart.PaletteColor(1), outside.Colors[0])
	assert.Equal(t, 8.0, data.AxisYMax(chart.AxisRight))
}

func TestBuildKinds(t *testing.T) {
	for _, tc := range []struct {
		name  string
		src   string
		check func(t *testing.T, d *chart.Data)
	}{
		{
			name: "stacked bar",
			src:  `{"kind": "bar", "barWidth": 0.5, "dataSets": [{"label": "b", "entries": [{"x": 0, "stack": [1, 2, 3]}]}]}`,
			check: func(t *testing.T, d *chart.Data) {
				assert.Equal(t, 0.5, d.BarWidth)
				e := d.DataSet(0).Entry(0)
				assert.True(t, e.IsStacked())
				assert.Equal(t, 6.0, e.Y)
			},
		},
		{
			name: "candle",
			src:  `{"kind": "candle", "dataSets": [{"label": "c", "entries": [{"x": 1, "high": 10, "low": 2, "open": 4, "close": 8}]}]}`,
			check: func(t *testing.T, d *chart.Data) {
				e := d.DataSet(0).Entry(0)
				assert.Equal(t, 6.0, e.Y)
				assert.Equal(t, 8.0, e.Close)
			},
		},
		{
			name: "bubble",
			src:  `{"kind": "bubble", "dataSets": [{"label": "b", "entries": [{"x": 1, "y": 2, "size": 9}]}]}`,
			check: func(t *testing.T, d *chart.Data) {
				assert.Equal(t, 9.0, d.DataSet(0).MaxSize())
			},
		},
		{
			name: "scatter",
			src:  `{"kind": "scatter", "dataSets": [{"label": "s", "shape": "Triangle", "shapeSize": 8, "values": [1, 2]}]}`,
			check: func(t *testing.T, d *chart.Data) {
				assert.Equal(t, chart.ShapeTriangle, d.DataSet(0).Scatter.Shape)
				assert.Equal(t, 8.0, d.DataSet(0).Scatter.ShapeSize)
			},
		},
		{
			name: "pie",
			src:  `{"kind": "pie", "dataSets": [{"label": "p", "values": [1, 3], "labels": ["a"], "entries": [{"y": 4, "label": "c"}]}]}`,
			check: func(t *testing.T, d *chart.Data) {
				s := d.DataSet(0)
				require.Equal(t, 3, s.EntryCount())
				assert.Equal(t, "a", s.Entry(0).Label)
				assert.Equal(t, "", s.Entry(1).Label)
				assert.Equal(t, "c", s.Entry(2).Label)
				assert.Equal(t, 2.0, s.Entry(2).X)
				assert.Len(t, s.Colors, 3)
			},
		},
		{
			name: "radar",
			src:  `{"kind": "radar", "dataSets": [{"label": "r", "filled": true, "lineWidth": 1, "values": [1, 2, 3]}]}`,
			check: func(t *testing.T, d *chart.Data) {
				assert.True(t, d.DataSet(0).Radar.DrawFilled)
				assert.Equal(t, 1.0, d.DataSet(0).Radar.LineWidth)
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data, _, err := parse(t, tc.src).Build()
			require.NoError(t, err)
			tc.check(t, data)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
	}{
		{name: "kind", src: `{"kind": "area"}`},
		{name: "color", src: `{"dataSets": [{"label": "a", "colors": ["red"]}]}`},
		{name: "axis", src: `{"dataSets": [{"label": "a", "axis": "top"}]}`},
		{name: "mode", src: `{"dataSets": [{"label": "a", "mode": "zigzag"}]}`},
		{name: "shape", src: `{"kind": "scatter", "dataSets": [{"label": "a", "shape": "star"}]}`},
		{name: "combined pie", src: `{"kind": "combined", "dataSets": [{"label": "a", "kind": "pie"}]}`},
		{name: "combined kind", src: `{"kind": "combined", "dataSets": [{"label": "a", "kind": "area"}]}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := parse(t, tc.src).Build()
			assert.Error(t, err)
		})
	}
}

func TestBuildCombined(t *testing.T) {
	src := `{"kind": "combined", "dataSets": [
		{"label": "l", "kind": "line", "values": [1, 2, 3]},
		{"label": "b", "kind": "bar", "values": [3, 2, 1]},
		{"label": "l2", "values": [2, 2, 2]}
	], "highlights": [{"x": 1, "dataSet": 1, "data": "line"}]}`
	doc := parse(t, src)
	data, combined, err := doc.Build()
	require.NoError(t, err)
	assert.Nil(t, data)
	require.NotNil(t, combined)
	assert.Equal(t, 2, combined.LineData().DataSetCount())
	assert.Equal(t, 1, combined.BarData().DataSetCount())

	c := plot.New()
	c.SetSize(400, 300)
	require.NoError(t, doc.Apply(c))
	assert.True(t, c.IsCombined())
	hs := c.Highlighted()
	require.Len(t, hs, 1)
	assert.Equal(t, combined.DataIndex(c.CombinedData().LineData()), hs[0].DataIndex)
	assert.Equal(t, 2.0, hs[0].Y)
}

func TestApply(t *testing.T) {
	doc := parse(t, lineDoc)
	c := plot.New()
	c.SetSize(640, 600)
	require.NoError(t, doc.Apply(c))
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, c.Background)
	assert.True(t, c.RightAxis.Enabled)
	assert.Equal(t, 4, c.LeftAxis.LabelCount)
	assert.Equal(t, 0.0, c.LeftAxis.Min())
	hs := c.Highlighted()
	require.Len(t, hs, 1)
	assert.Equal(t, 1.0, hs[0].X, "highlights snap to the closest entry")
	assert.Equal(t, 21.0, hs[0].Y)

	bad := parse(t, `{"kind": "area"}`)
	assert.Error(t, bad.Apply(c))
	assert.Equal(t, 2, c.Data().DataSetCount(), "invalid documents leave the chart alone")
}

func TestApplyPie(t *testing.T) {
	doc := parse(t, `{"kind": "pie", "pie": {"hole": false, "centerText": "total", "rotation": 90, "maxAngle": 180}, "dataSets": [{"label": "p", "values": [1, 1]}]}`)
	c := plot.New()
	c.SetSize(200, 200)
	require.NoError(t, doc.Apply(c))
	assert.False(t, c.Pie.DrawHole)
	assert.Equal(t, "total", c.Pie.CenterText)
	assert.Equal(t, 90.0, c.RotationAngle())
	assert.Equal(t, 180.0, c.MaxAngle)
	assert.True(t, c.IsPie())
}

func TestAnimate(t *testing.T) {
	clock := animation.NewFrameClock(time.Unix(0, 0))
	c := plot.New(plot.WithClock(clock))
	doc := parse(t, lineDoc)
	require.NoError(t, doc.Apply(c))
	require.NoError(t, doc.Animate(c))
	assert.True(t, c.Animating())
	assert.Equal(t, 0.0, c.PhaseX())

	clock.Tick(time.Unix(0, 0).Add(time.Second))
	assert.False(t, c.Animating())
	assert.Equal(t, 1.0, c.PhaseX())
	assert.Equal(t, 1.0, c.PhaseY())

	none := parse(t, `{"kind": "line"}`)
	assert.ErrorIs(t, none.Animate(c), ErrNoAnimation)
	badEasing := parse(t, `{"animation": {"x": "1s", "easing": "wobble"}}`)
	assert.Error(t, badEasing.Animate(c))
}

func TestApplyLegendAndLimitLines(t *testing.T) {
	doc := parse(t, `{
		"kind": "line",
		"leftAxis": {"limitLines": [{"limit": 7, "label": "max", "color": "#00ff00", "width": 40, "position": "leftBottom"}]},
		"legend": {"orientation": "vertical", "horizontal": "right", "form": "line", "wordWrap": true},
		"dataSets": [{"label": "a", "form": "circle", "values": [1, 2]}]
	}`)
	c := plot.New()
	c.SetSize(400, 300)
	require.NoError(t, doc.Apply(c))

	lines := c.LeftAxis.LimitLines()
	require.Len(t, lines, 1)
	assert.Equal(t, 7.0, lines[0].Limit)
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, lines[0].Color)
	assert.Equal(t, 12.0, lines[0].Width, "widths are clamped")
	assert.Equal(t, chart.LimitLeftBottom, lines[0].LabelPosition)
	assert.Empty(t, c.XAxis.LimitLines())

	assert.True(t, c.Legend.Enabled)
	assert.Equal(t, chart.LegendVertical, c.Legend.Orientation)
	assert.Equal(t, chart.LegendRight, c.Legend.Horizontal)
	assert.Equal(t, chart.FormLine, c.Legend.Form)
	assert.True(t, c.Legend.WordWrap)
	assert.Equal(t, chart.FormCircle, c.Data().DataSet(0).LegendForm)

	require.NoError(t, doc.Apply(c))
	assert.Len(t, c.LeftAxis.LimitLines(), 1, "applying again replaces the limit lines")

	for name, src := range map[string]string{
		"limit color":    `{"kind": "line", "xAxis": {"limitLines": [{"limit": 1, "color": "nope"}]}}`,
		"limit position": `{"kind": "line", "xAxis": {"limitLines": [{"limit": 1, "position": "middle"}]}}`,
		"legend form":    `{"kind": "line", "legend": {"form": "star"}}`,
		"legend align":   `{"kind": "line", "legend": {"vertical": "sideways"}}`,
		"set form":       `{"kind": "line", "dataSets": [{"label": "a", "form": "star", "values": [1]}]}`,
	} {
		bad := parse(t, src)
		assert.Error(t, bad.Apply(c), name)
		assert.Len(t, c.LeftAxis.LimitLines(), 1, name)
	}

	off := parse(t, `{"kind": "line", "legend": {"enabled": false}}`)
	require.NoError(t, off.Apply(c))
	assert.False(t, c.Legend.Enabled)
}
