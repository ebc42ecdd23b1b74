package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/growthlens/investscan/internal/export"
)

var (
	exportIn     string
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert a saved scan to CSV or XLSX",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("export"); err != nil {
			return err
		}

		f, err := os.Open(exportIn)
		if err != nil {
			return eris.Wrap(err, "open input")
		}
		defer f.Close()

		env, err := export.ReadJSON(f)
		if err != nil {
			return err
		}

		zap.L().Info("scan loaded",
			zap.Int("records", len(env.Records)),
			zap.String("input", exportIn),
		)
		return writeOutput(*env, exportFormat, exportOut)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportIn, "in", "", "path to a saved scan JSON (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "xlsx", "output format: json, csv, or xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default stdout)")
	_ = exportCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(exportCmd)
}
