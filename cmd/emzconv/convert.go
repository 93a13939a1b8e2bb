// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cspanachis/emzconv/internal/decoder"
	"github.com/cspanachis/emzconv/internal/history"
	"github.com/cspanachis/emzconv/internal/pipeline"
	"github.com/cspanachis/emzconv/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input-dir]",
	Short: "Convert all .emz files in a directory to raster images",
	Long: `Convert discovers every .emz file in the input directory, relabels each
as .wmf into a transient staging directory, and decodes them into the
output directory under the configured format (default png).

Files that fail decoding do not stop the batch; their names are written to
a CSV report and the command exits with an error naming the report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("output-dir", "", "output directory (default: <input-dir>/output_png_images)")
	convertCmd.Flags().String("format", "", "raster output format (default png)")
	convertCmd.Flags().String("report", "", "failure report path (default ./unsuccessful_conversions.csv)")
	convertCmd.Flags().String("backend", "", "decoder backend: magick or inkscape (default: auto-detect)")
	convertCmd.Flags().String("history-dir", "", "run-history directory (default history)")
	convertCmd.Flags().Bool("no-history", false, "skip recording the run in the history database")

	rootCmd.AddCommand(convertCmd)
}

// flagOrConfig resolves a string setting: explicit flag wins, then the
// viper config file/environment, then fallback.
func flagOrConfig(cmd *cobra.Command, flag, key, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputDir := viper.GetString("conversion.input_dir")
	if len(args) > 0 {
		inputDir = args[0]
	}
	if inputDir == "" {
		return fmt.Errorf("provide an input directory (argument or conversion.input_dir in config)")
	}

	cfg := types.ConversionConfig{
		InputDir:     inputDir,
		OutputDir:    flagOrConfig(cmd, "output-dir", "conversion.output_dir", ""),
		OutputFormat: flagOrConfig(cmd, "format", "conversion.output_format", "png"),
		ReportPath:   flagOrConfig(cmd, "report", "conversion.report_path", pipeline.DefaultReportPath),
		Backend:      types.DecoderBackend(flagOrConfig(cmd, "backend", "conversion.backend", "")),
	}

	dec, err := selectDecoder(cfg.Backend)
	if err != nil {
		return err
	}

	rec, runErr := pipeline.Run(dec, cfg, os.Stdout)
	recordRun(cmd, rec)
	return runErr
}

// selectDecoder builds the configured backend, or auto-detects one when
// the configuration leaves it empty.
func selectDecoder(backend types.DecoderBackend) (pipeline.Decoder, error) {
	if backend == "" {
		return decoder.Detect()
	}
	return decoder.New(backend)
}

// recordRun stores the run in the history database. History is a sidecar:
// failures here warn, they never change the command's outcome.
func recordRun(cmd *cobra.Command, rec types.RunRecord) {
	if skip, _ := cmd.Flags().GetBool("no-history"); skip {
		return
	}
	if rec.InputDir == "" {
		// Validation failed before the run started; nothing to record.
		return
	}

	store, err := history.NewStore(types.HistoryConfig{
		HistoryDir: flagOrConfig(cmd, "history-dir", "history.history_dir", ""),
		MaxResults: viper.GetInt("history.max_results"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: opening history store: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.RecordRun(context.Background(), rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording run: %v\n", err)
	}
}
