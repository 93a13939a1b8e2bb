// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cspanachis/emzconv/pkg/types"
)

// Decoder converts a staged metafile into a raster image. The destination
// path's extension selects the output encoding. Implementations wrap
// external tools; their failure modes are opaque and treated uniformly as
// "this file could not be converted".
type Decoder interface {
	// Decode reads the image at srcPath and writes it to destPath.
	Decode(srcPath, destPath string) error
}

// Decode runs stage 2: every .wmf file in stagingDir is decoded into
// outputDir under the same base name with the format extension. Failures
// are recorded as outcomes, never aborting the batch; each file's result
// is printed to w as it happens. Staging cleanup is the caller's job.
func Decode(dec Decoder, stagingDir, outputDir, format string, w io.Writer) ([]types.FileOutcome, error) {
	wmfFiles, err := FindFiles(stagingDir, "wmf")
	if err != nil {
		return nil, err
	}

	outcomes := make([]types.FileOutcome, 0, len(wmfFiles))
	for _, src := range wmfFiles {
		name := filepath.Base(src)
		base := strings.TrimSuffix(name, filepath.Ext(name))
		dest := filepath.Join(outputDir, base+"."+format)

		if err := dec.Decode(src, dest); err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
			outcomes = append(outcomes, types.FileOutcome{
				Name:   name,
				Status: types.FileFailed,
				Reason: err.Error(),
			})
			continue
		}

		fmt.Fprintf(w, "converted: %s -> %s\n", name, filepath.Base(dest))
		outcomes = append(outcomes, types.FileOutcome{
			Name:       name,
			OutputPath: dest,
			Status:     types.FileConverted,
		})
	}
	return outcomes, nil
}
