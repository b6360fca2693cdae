package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"

	"git.sr.ht/~whereswaldon/chartkit/backend"
	"git.sr.ht/~whereswaldon/chartkit/chart"
)

func main() {
	kind := flag.String("kind", "", "chart kind used for CSV and XLSX tables (line, bar, scatter, ...)")
	sheet := flag.String("sheet", "", "XLSX sheet to read instead of the first one")
	verbose := flag.Bool("v", false, "log chart diagnostics to stderr")
	flag.Parse()
	if *verbose {
		chart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, cancel := context.WithCancel(context.Background())
	mutator := stream.NewMutator(ctx, time.Second)
	bundle := backend.NewBundle(mutator, backend.LoadOptions{Kind: *kind, Sheet: *sheet})
	for _, path := range flag.Args() {
		bundle.Datasource.Open(path)
	}

	go func() {
		w := app.NewWindow(app.Title("chartkit"))
		if err := loop(ctx, w, bundle); err != nil {
			log.Fatal(err)
		}
		cancel()
		os.Exit(0)
	}()
	app.Main()
}

func loop(ctx context.Context, w *app.Window, bundle backend.Bundle) error {
	expl := explorer.NewExplorer(w)
	ws := backend.NewWindowState(ctx, bundle, w)
	ui := NewUI(ws, expl, w)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
