// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FileStatus indicates the outcome of decoding one staged file.
type FileStatus string

const (
	FileConverted FileStatus = "converted"
	FileFailed    FileStatus = "failed"
)

// RunPhase names the stage a run is in. A run moves through the phases in
// order and terminates in either Succeeded or FailedWithReport.
type RunPhase string

const (
	PhaseValidating RunPhase = "validating"
	PhaseRelabeling RunPhase = "relabeling"
	PhaseDecoding   RunPhase = "decoding"
	PhaseCleaningUp RunPhase = "cleaning-up"
	PhaseSucceeded  RunPhase = "succeeded"
	PhaseFailed     RunPhase = "failed-with-report"
)

// FileOutcome records the result of decoding a single staged file. Failures
// are carried as values so one bad file never aborts the batch.
type FileOutcome struct {
	// Name is the staged file's base name (e.g. "diagram.wmf").
	Name string `json:"name" yaml:"name"`

	// OutputPath is the converted file's path; empty when the file failed.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// Status is FileConverted or FileFailed.
	Status FileStatus `json:"status" yaml:"status"`

	// Reason describes why decoding failed; empty on success.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Failed reports whether the file could not be converted.
func (o FileOutcome) Failed() bool {
	return o.Status == FileFailed
}

// RunRecord summarizes one pipeline run. It is written as a YAML manifest
// to the output directory and persisted to the history store.
type RunRecord struct {
	// ID is a UUID assigned when the run starts.
	ID string `json:"id" yaml:"id"`

	// InputDir and OutputDir are the resolved directories for the run.
	InputDir  string `json:"input_dir" yaml:"input_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// OutputFormat is the raster extension outputs were written with.
	OutputFormat string `json:"output_format" yaml:"output_format"`

	// StartedAt and FinishedAt bound the run in UTC.
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	// Relabeled is the number of .emz files copied into staging.
	Relabeled int `json:"relabeled" yaml:"relabeled"`

	// Converted and Failed count the decode outcomes.
	Converted int `json:"converted" yaml:"converted"`
	Failed    int `json:"failed" yaml:"failed"`

	// ReportPath is the failure report location; empty when no file failed.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`

	// Outcomes lists the per-file results in processing order.
	Outcomes []FileOutcome `json:"outcomes" yaml:"outcomes"`
}

// Total returns the number of staged files processed in stage 2.
func (r RunRecord) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed decoding.
func (r RunRecord) HasFailures() bool {
	return r.Failed > 0
}
