// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Relabel copies every .emz file in inputDir into stagingDir with the
// extension changed to .wmf, keeping the base name. Source files are not
// touched. Zero matches is a no-op. Any copy failure aborts with a
// *CopyError and the run is over; staging is only cleaned up by runs that
// reach stage 2. Returns the number of files staged.
func Relabel(inputDir, stagingDir string, w io.Writer) (int, error) {
	emzFiles, err := FindFiles(inputDir, "emz")
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(w, "Found %d emz file(s) in %s. Relabeling to .wmf in %s\n",
		len(emzFiles), inputDir, stagingDir)

	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating staging directory %s: %w", stagingDir, err)
	}

	for _, src := range emzFiles {
		base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		dest := filepath.Join(stagingDir, base+".wmf")
		if err := copyFile(src, dest); err != nil {
			return 0, &CopyError{Source: src, Dest: dest, Err: err}
		}
	}
	return len(emzFiles), nil
}

// copyFile copies src to dest byte-verbatim, truncating dest if it exists.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		return copyErr
	}
	return closeErr
}
