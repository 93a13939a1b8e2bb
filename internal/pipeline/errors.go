// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"fmt"
)

// ErrPathNotFound is returned when a configured or requested directory does
// not exist at the time of the call. It aborts the run before any file
// operations happen.
var ErrPathNotFound = errors.New("path not found")

// CopyError reports a failure while relabeling an .emz file into staging.
// It aborts the whole run: a copy failure points at the environment
// (permissions, disk full) rather than at the file's contents.
type CopyError struct {
	Source string
	Dest   string
	Err    error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copying %s to %s: %v", e.Source, e.Dest, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

// BatchError is returned when at least one staged file failed decoding.
// The failure report has already been written when this error is seen.
type BatchError struct {
	Failed     int
	ReportPath string
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d file(s) were not converted; see %s for the list", e.Failed, e.ReportPath)
}
