// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/cspanachis/emzconv/pkg/types"
)

// manifestFile is the run-summary sidecar written to the output directory.
const manifestFile = "manifest.yaml"

// WriteManifest writes the run record as YAML to dir/manifest.yaml.
func WriteManifest(rec types.RunRecord, dir string) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, manifestFile), data, 0o644)
}

// ReadManifest reads a run record back from dir/manifest.yaml.
func ReadManifest(dir string) (types.RunRecord, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return types.RunRecord{}, err
	}
	var rec types.RunRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return types.RunRecord{}, fmt.Errorf("parsing manifest: %w", err)
	}
	return rec, nil
}
