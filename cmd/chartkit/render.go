package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/chartkit/backend"
	"git.sr.ht/~whereswaldon/chartkit/plot"
	"git.sr.ht/~whereswaldon/chartkit/surface/ggsurface"
)

// drawOptions control a single raster frame.
type drawOptions struct {
	// phase fixes both animation phases when in [0, 1].
	phase float64
	// highlight is a pixel position to select, when set.
	highlight string
}

// newChart builds a sized chart for doc.
func newChart(doc *backend.Document) (*plot.Chart, int, int, error) {
	w, h := size(doc)
	c := plot.New()
	c.SetSize(float64(w), float64(h))
	if err := doc.Apply(c); err != nil {
		return nil, 0, 0, err
	}
	return c, w, h, nil
}

func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q, want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}

// renderPNG draws doc and returns the encoded image.
func renderPNG(doc *backend.Document, opts drawOptions) (_ []byte, err error) {
	c, w, h, err := newChart(doc)
	if err != nil {
		return nil, err
	}
	if opts.phase >= 0 && opts.phase <= 1 {
		c.SetPhase(opts.phase, opts.phase)
	}
	s, err := ggsurface.New(w, h)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	if opts.highlight != "" {
		x, y, err := parsePoint(opts.highlight)
		if err != nil {
			return nil, err
		}
		// Lay the chart out once so pixels resolve against the final offsets.
		c.Draw(s)
		c.HighlightValue(c.HighlightForPixel(x, y))
	}
	s.Clear(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	c.Draw(s)
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

func outputPath(in, out, ext string) string {
	if out != "" {
		return out
	}
	return strings.TrimSuffix(in, filepath.Ext(in)) + ext
}

func newRenderCmd() *cobra.Command {
	var (
		out  string
		opts drawOptions
	)
	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Draw a chart to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := backend.Load(args[0], loadOptions())
			if err != nil {
				return err
			}
			img, err := renderPNG(doc, opts)
			if err != nil {
				return err
			}
			path := outputPath(args[0], out, ".png")
			if err := os.WriteFile(path, img, 0o644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			log.Printf("wrote %s", path)
			return nil
		},
	}
	addOutputFlag(cmd.Flags(), &out, ".png")
	cmd.Flags().Float64Var(&opts.phase, "phase", -1, "draw the animation frame at this phase, 0 to 1")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "highlight the entry under pixel x,y")
	return cmd
}

func newWatchCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "watch [input]",
		Short: "Re-render a chart to PNG whenever its input changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			sessions, err := backend.Watch(ctx, args[0], loadOptions())
			if err != nil {
				return err
			}
			path := outputPath(args[0], out, ".png")
			for session := range sessions {
				if session.Err != nil {
					log.Printf("failed loading %s: %v", args[0], session.Err)
					continue
				}
				img, err := renderPNG(session.Document, drawOptions{phase: -1})
				if err != nil {
					log.Printf("failed rendering %s: %v", args[0], err)
					continue
				}
				if err := os.WriteFile(path, img, 0o644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				log.Printf("wrote %s", path)
			}
			return nil
		},
	}
	addOutputFlag(cmd.Flags(), &out, ".png")
	return cmd
}
