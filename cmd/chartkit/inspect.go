package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/chartkit/backend"
	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/plot"
	"git.sr.ht/~whereswaldon/chartkit/render"
)

func format(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

// chartSets lists the data sets of c with the kind of data they belong to.
func chartSets(c *plot.Chart) []*chart.DataSet {
	if c.IsCombined() {
		var sets []*chart.DataSet
		for _, d := range c.CombinedData().AllData() {
			sets = append(sets, d.DataSets()...)
		}
		return sets
	}
	if d := c.Data(); d != nil {
		return d.DataSets()
	}
	return nil
}

// writeInspection prints the data sets and axis ranges of c.
func writeInspection(w io.Writer, title string, c *plot.Chart) {
	// Axis label positions are computed while drawing.
	c.Draw(render.NewRecorder())
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("%s", title)
	t.AppendHeader(table.Row{"#", "Label", "Kind", "Axis", "Entries", "X Min", "X Max", "Y Min", "Y Max", "Visible"})
	for i, s := range chartSets(c) {
		t.AppendRow(table.Row{
			i, s.Label, s.Kind(), s.Axis, s.EntryCount(),
			format(s.XMin()), format(s.XMax()), format(s.YMin()), format(s.YMax()), s.Visible,
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()

	if c.IsPolar() {
		return
	}
	axes := table.NewWriter()
	axes.SetOutputMirror(w)
	axes.AppendHeader(table.Row{"Axis", "Enabled", "Min", "Max", "Labels"})
	for _, a := range []struct {
		name string
		axis *chart.Axis
	}{
		{name: "x", axis: c.XAxis},
		{name: "left", axis: c.LeftAxis},
		{name: "right", axis: c.RightAxis},
	} {
		axes.AppendRow(table.Row{a.name, a.axis.Enabled, format(a.axis.Min()), format(a.axis.Max()), len(a.axis.Entries())})
	}
	axes.SetStyle(table.StyleLight)
	axes.Render()
}

// writeStats prints the draw calls one frame of c makes, and returns their
// total.
func writeStats(w io.Writer, c *plot.Chart) int {
	rec := render.NewRecorder()
	c.Draw(rec)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Call", "Count"})
	for _, s := range rec.Stats() {
		t.AppendRow(table.Row{s.Kind, s.Count})
	}
	t.AppendFooter(table.Row{"Total", len(rec.Calls)})
	t.SetStyle(table.StyleLight)
	t.Render()
	return len(rec.Calls)
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [input]",
		Short: "List the data sets and axis ranges of a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := backend.Load(args[0], loadOptions())
			if err != nil {
				return err
			}
			c, _, _, err := newChart(doc)
			if err != nil {
				return err
			}
			writeInspection(cmd.OutOrStdout(), doc.Title, c)
			return nil
		},
	}
}

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops [input]",
		Short: "Count the draw calls of one chart frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := backend.Load(args[0], loadOptions())
			if err != nil {
				return err
			}
			c, _, _, err := newChart(doc)
			if err != nil {
				return err
			}
			writeStats(cmd.OutOrStdout(), c)
			return nil
		},
	}
}
