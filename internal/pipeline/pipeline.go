// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline implements the two-stage EMZ conversion run: relabel
// .emz sources as .wmf into a staging directory, then decode each staged
// file with an external image-decoding backend.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/cspanachis/emzconv/pkg/types"
)

// Run executes a full conversion: validate paths, relabel, decode, clean
// up staging, and report. Per-file decode failures are collected and end
// the run with a *BatchError after the CSV report is written; path and
// copy failures abort immediately. The returned RunRecord is populated on
// every path that gets past validation.
func Run(dec Decoder, cfg types.ConversionConfig, w io.Writer) (types.RunRecord, error) {
	rec := types.RunRecord{
		ID:           uuid.NewString(),
		OutputFormat: cfg.OutputFormat,
		StartedAt:    time.Now().UTC(),
	}
	if rec.OutputFormat == "" {
		rec.OutputFormat = "png"
	}
	reportPath := cfg.ReportPath
	if reportPath == "" {
		reportPath = DefaultReportPath
	}

	fmt.Fprintf(w, "[%s] run %s\n", types.PhaseValidating, rec.ID)
	inputDir, outputDir, err := ResolvePaths(cfg.InputDir, cfg.OutputDir)
	if err != nil {
		return rec, err
	}
	rec.InputDir = inputDir
	rec.OutputDir = outputDir

	fmt.Fprintf(w, "[%s] converting emz files from %s to %s\n", types.PhaseRelabeling, inputDir, outputDir)

	staging := StagingDir(inputDir)
	staged, err := Relabel(inputDir, staging, w)
	if err != nil {
		return rec, err
	}
	rec.Relabeled = staged

	fmt.Fprintf(w, "[%s]\n", types.PhaseDecoding)
	outcomes, decodeErr := Decode(dec, staging, outputDir, rec.OutputFormat, w)

	// Staging is transient; remove it no matter how decoding went.
	fmt.Fprintf(w, "[%s] removing %s\n", types.PhaseCleaningUp, staging)
	if err := os.RemoveAll(staging); err != nil {
		return rec, fmt.Errorf("removing staging directory %s: %w", staging, err)
	}
	if decodeErr != nil {
		return rec, decodeErr
	}

	rec.Outcomes = outcomes
	for _, o := range outcomes {
		if o.Failed() {
			rec.Failed++
		} else {
			rec.Converted++
		}
	}
	rec.FinishedAt = time.Now().UTC()

	if rec.HasFailures() {
		rec.ReportPath = reportPath
		if err := WriteReport(outcomes, reportPath); err != nil {
			return rec, err
		}
		writeManifest(rec, w)
		fmt.Fprintf(w, "[%s] %d of %d file(s) failed\n", types.PhaseFailed, rec.Failed, rec.Total())
		return rec, &BatchError{Failed: rec.Failed, ReportPath: reportPath}
	}

	writeManifest(rec, w)
	fmt.Fprintf(w, "[%s] %d file(s) converted\n", types.PhaseSucceeded, rec.Converted)
	return rec, nil
}

// writeManifest persists the run manifest next to the outputs. The
// manifest is a sidecar; a write failure is a warning, not a run failure.
func writeManifest(rec types.RunRecord, w io.Writer) {
	if err := WriteManifest(rec, rec.OutputDir); err != nil {
		fmt.Fprintf(w, "warning: writing run manifest: %v\n", err)
	}
}
