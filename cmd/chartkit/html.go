package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/chartkit/backend"
	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// page is a go-echarts chart that can write itself as an HTML page.
type page interface {
	Render(w io.Writer) error
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func setColor(s *chart.DataSet) []charts.SeriesOpts {
	if len(s.Colors) == 0 {
		return nil
	}
	return []charts.SeriesOpts{charts.WithItemStyleOpts(opts.ItemStyle{Color: hex(s.Colors[0])})}
}

func globalOpts(doc *backend.Document, w, h int) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Width:     strconv.Itoa(w) + "px",
		Height:    strconv.Itoa(h) + "px",
		PageTitle: doc.Title,
	}
	if doc.Background != "" {
		if bg, err := chart.ParseColor(doc.Background); err == nil {
			initOpts.BackgroundColor = hex(bg)
		}
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: doc.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	}
}

func valueAxes() []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
	}
}

func lineSeries(s *chart.DataSet) ([]opts.LineData, []charts.SeriesOpts) {
	data := make([]opts.LineData, 0, s.EntryCount())
	for _, e := range s.Entries() {
		data = append(data, opts.LineData{Value: []float64{e.X, e.Y}})
	}
	lc := opts.LineChart{ShowSymbol: opts.Bool(s.Line.DrawCircles)}
	switch s.Line.Mode {
	case chart.LineCubicBezier, chart.LineHorizontalBezier:
		lc.Smooth = opts.Bool(true)
	case chart.LineStepped:
		lc.Step = "end"
	}
	so := append(setColor(s), charts.WithLineChartOpts(lc))
	if s.Line.DrawFilled {
		so = append(so, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.3)}))
	}
	return data, so
}

func barSeries(s *chart.DataSet) []opts.BarData {
	data := make([]opts.BarData, 0, s.EntryCount())
	for _, e := range s.Entries() {
		data = append(data, opts.BarData{Value: []float64{e.X, e.Y}})
	}
	return data
}

func scatterSeries(s *chart.DataSet, bubble bool) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, s.EntryCount())
	for _, e := range s.Entries() {
		d := opts.ScatterData{Value: []float64{e.X, e.Y}}
		if bubble && s.MaxSize() > 0 {
			d.SymbolSize = int(5 + 35*e.Size/s.MaxSize())
		}
		data = append(data, d)
	}
	return data
}

func entryName(e *chart.Entry) string {
	if e.Label != "" {
		return e.Label
	}
	return format(e.X)
}

// addXY adds the line sets of d to line and returns charts holding the
// others. They share a value x axis so they can be overlapped.
func addXY(line *charts.Line, d *chart.Data) ([]charts.Overlaper, error) {
	var extra []charts.Overlaper
	bar := charts.NewBar()
	scatter := charts.NewScatter()
	kline := charts.NewKLine()
	var hasBar, hasScatter, hasKline bool
	for _, s := range d.DataSets() {
		if !s.Visible {
			continue
		}
		switch s.Kind() {
		case chart.KindLine:
			data, so := lineSeries(s)
			line.AddSeries(s.Label, data, so...)
		case chart.KindBar:
			bar.AddSeries(s.Label, barSeries(s), setColor(s)...)
			hasBar = true
		case chart.KindScatter, chart.KindBubble:
			scatter.AddSeries(s.Label, scatterSeries(s, s.Kind() == chart.KindBubble), setColor(s)...)
			hasScatter = true
		case chart.KindCandle:
			data := make([]opts.KlineData, 0, s.EntryCount())
			for _, e := range s.Entries() {
				data = append(data, opts.KlineData{Value: []float64{e.X, e.Open, e.Close, e.Low, e.High}})
			}
			kline.AddSeries(s.Label, data, setColor(s)...)
			hasKline = true
		default:
			return nil, fmt.Errorf("can't overlay %s data", s.Kind())
		}
	}
	if hasBar {
		extra = append(extra, bar)
	}
	if hasScatter {
		extra = append(extra, scatter)
	}
	if hasKline {
		extra = append(extra, kline)
	}
	return extra, nil
}

// htmlPage converts doc into an interactive go-echarts page.
func htmlPage(doc *backend.Document, w, h int) (page, error) {
	data, combined, err := doc.Build()
	if err != nil {
		return nil, err
	}
	global := globalOpts(doc, w, h)
	if combined != nil {
		line := charts.NewLine()
		line.SetGlobalOptions(append(global, valueAxes()...)...)
		for _, d := range combined.AllData() {
			extra, err := addXY(line, d)
			if err != nil {
				return nil, err
			}
			line.Overlap(extra...)
		}
		return line, nil
	}
	if data == nil || data.DataSetCount() == 0 {
		return nil, errors.New("document has no data")
	}
	switch data.DataSet(0).Kind() {
	case chart.KindPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(global...)
		for _, s := range data.DataSets() {
			items := make([]opts.PieData, 0, s.EntryCount())
			for i, e := range s.Entries() {
				item := opts.PieData{Name: entryName(e), Value: e.Y}
				if len(s.Colors) > 0 {
					item.ItemStyle = &opts.ItemStyle{Color: hex(s.Colors[i%len(s.Colors)])}
				}
				items = append(items, item)
			}
			pie.AddSeries(s.Label, items)
		}
		return pie, nil
	case chart.KindRadar:
		radar := charts.NewRadar()
		longest := data.MaxEntryCountSet()
		indicators := make([]*opts.Indicator, 0, longest.EntryCount())
		for _, e := range longest.Entries() {
			indicators = append(indicators, &opts.Indicator{Name: entryName(e), Max: float32(data.YMax())})
		}
		radar.SetGlobalOptions(append(global, charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}))...)
		for _, s := range data.DataSets() {
			values := make([]float64, 0, s.EntryCount())
			for _, e := range s.Entries() {
				values = append(values, e.Y)
			}
			radar.AddSeries(s.Label, []opts.RadarData{{Name: s.Label, Value: values}}, setColor(s)...)
		}
		return radar, nil
	}
	line := charts.NewLine()
	line.SetGlobalOptions(append(global, valueAxes()...)...)
	extra, err := addXY(line, data)
	if err != nil {
		return nil, err
	}
	line.Overlap(extra...)
	return line, nil
}

func newHTMLCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "html [input]",
		Short: "Export a chart as an interactive HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			doc, err := backend.Load(args[0], loadOptions())
			if err != nil {
				return err
			}
			w, h := size(doc)
			p, err := htmlPage(doc, w, h)
			if err != nil {
				return err
			}
			path := outputPath(args[0], out, ".html")
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create output: %w", err)
			}
			defer func() {
				err = errors.Join(err, f.Close())
			}()
			if err := p.Render(f); err != nil {
				return fmt.Errorf("failed rendering html: %w", err)
			}
			log.Printf("wrote %s", path)
			return nil
		},
	}
	addOutputFlag(cmd.Flags(), &out, ".html")
	return cmd
}
