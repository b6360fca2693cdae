// Command chartkit renders, inspects and exports chart documents, CSV tables
// and spreadsheets without a window.
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"git.sr.ht/~whereswaldon/chartkit/backend"
	"git.sr.ht/~whereswaldon/chartkit/chart"
)

var cfg Config

func main() {
	var err error
	cfg, err = LoadConfig()
	if err != nil {
		log.Fatalf("failed loading configuration: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "chartkit",
		Short: "Render and inspect charts",
		Long: `chartkit draws chart documents (JSON), CSV tables and XLSX sheets
to PNG or HTML, and reports what a chart contains.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cfg.Verbose {
				chart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&cfg.Width, "width", cfg.Width, "output width in pixels (default: the document's)")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "output height in pixels (default: the document's)")
	flags.StringVar(&cfg.Kind, "kind", cfg.Kind, "chart kind for CSV and XLSX tables")
	flags.StringVar(&cfg.Sheet, "sheet", cfg.Sheet, "XLSX sheet to read (default: the first)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log chart diagnostics to stderr")

	rootCmd.AddCommand(
		newRenderCmd(),
		newWatchCmd(),
		newInspectCmd(),
		newOpsCmd(),
		newHTMLCmd(),
	)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadOptions() backend.LoadOptions {
	return backend.LoadOptions{Kind: cfg.Kind, Sheet: cfg.Sheet}
}

// size returns the output size for doc, preferring configured values.
func size(doc *backend.Document) (int, int) {
	w, h := doc.Size()
	if cfg.Width > 0 {
		w = cfg.Width
	}
	if cfg.Height > 0 {
		h = cfg.Height
	}
	return w, h
}

func addOutputFlag(fs *pflag.FlagSet, out *string, ext string) {
	fs.StringVarP(out, "output", "o", "", "output file (default: input name with "+ext+")")
}
