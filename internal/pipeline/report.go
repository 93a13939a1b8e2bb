// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/cspanachis/emzconv/pkg/types"
)

// DefaultReportPath is the failure report location used when the
// configuration leaves it empty, relative to the working directory.
const DefaultReportPath = "unsuccessful_conversions.csv"

// WriteReport writes the failed outcomes as a two-column CSV
// (index, file_names) to path. Rows keep processing order.
func WriteReport(outcomes []types.FileOutcome, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"index", "file_names"}); err != nil {
		f.Close()
		return fmt.Errorf("writing report header: %w", err)
	}

	i := 0
	for _, o := range outcomes {
		if !o.Failed() {
			continue
		}
		if err := cw.Write([]string{strconv.Itoa(i), o.Name}); err != nil {
			f.Close()
			return fmt.Errorf("writing report row for %s: %w", o.Name, err)
		}
		i++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing report: %w", err)
	}
	return f.Close()
}
