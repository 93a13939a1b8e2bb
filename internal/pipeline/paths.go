// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// defaultOutputDir is the subdirectory under the input directory used
	// when no output directory is configured.
	defaultOutputDir = "output_png_images"

	// stagingDirName is the transient subdirectory under the input
	// directory that holds relabeled .wmf files between the two stages.
	stagingDirName = "wmf_files"
)

// ResolvePaths validates inputDir and resolves the output directory,
// creating it when missing. An empty outputDir defaults to
// <inputDir>/output_png_images. A missing input directory wraps
// ErrPathNotFound and nothing is created on disk.
func ResolvePaths(inputDir, outputDir string) (in, out string, err error) {
	if _, err := os.Stat(inputDir); err != nil {
		if os.IsNotExist(err) {
			return "", "", fmt.Errorf("%w: %s", ErrPathNotFound, inputDir)
		}
		return "", "", fmt.Errorf("checking input directory %s: %w", inputDir, err)
	}

	if outputDir == "" {
		outputDir = filepath.Join(inputDir, defaultOutputDir)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	return inputDir, outputDir, nil
}

// StagingDir returns the transient staging directory for inputDir. The
// directory is created by the relabel stage and removed at the end of
// every run.
func StagingDir(inputDir string) string {
	return filepath.Join(inputDir, stagingDirName)
}
