package main

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/growthlens/investscan/internal/export"
	"github.com/growthlens/investscan/internal/pipeline"
)

var (
	scanStates []string
	scanWindow string
	scanMode   string
	scanMax    int
	scanFormat string
	scanOut    string
	scanDiag   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one discovery-to-records scan",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline("scan")
		if err != nil {
			return err
		}

		res, err := env.Pipeline.Run(cmd.Context(), pipeline.Request{
			States:     scanStates,
			Window:     scanWindow,
			Mode:       scanMode,
			MaxRecords: scanMax,
		})
		if err != nil {
			return eris.Wrap(err, "scan")
		}

		out := export.Envelope{
			Records:     res.Records,
			GeneratedAt: time.Now().UTC(),
		}
		if scanDiag {
			counts := res.Counts
			out.Counts = &counts
		}
		return writeOutput(out, scanFormat, scanOut)
	},
}

// writeOutput serializes the envelope to the given path, or stdout when the
// path is empty or "-".
func writeOutput(env export.Envelope, format, path string) error {
	if path == "" || path == "-" {
		return export.Write(os.Stdout, format, env)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "create output file")
	}
	defer f.Close()

	if err := export.Write(f, format, env); err != nil {
		return err
	}
	zap.L().Info("records written",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("records", len(env.Records)))
	return nil
}

func init() {
	scanCmd.Flags().StringSliceVar(&scanStates, "states", nil, "comma-separated states to scan (default all)")
	scanCmd.Flags().StringVar(&scanWindow, "window", "", "discovery window, e.g. 24h or 7d (default from config)")
	scanCmd.Flags().StringVar(&scanMode, "mode", "", "extraction mode: ai or heuristic (default from config)")
	scanCmd.Flags().IntVar(&scanMax, "max-records", 0, "cap on emitted records (0 = no cap)")
	scanCmd.Flags().StringVar(&scanFormat, "format", "json", "output format: json, csv, or xlsx")
	scanCmd.Flags().StringVar(&scanOut, "out", "", "output path (default stdout)")
	scanCmd.Flags().BoolVar(&scanDiag, "diag", false, "include stage counts in JSON output")
	rootCmd.AddCommand(scanCmd)
}
