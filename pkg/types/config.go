// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DecoderBackend identifies the external image-decoding tool.
type DecoderBackend string

const (
	BackendMagick   DecoderBackend = "magick"
	BackendInkscape DecoderBackend = "inkscape"
)

// ConversionConfig holds settings for one conversion run. It is created
// once at startup and not mutated afterwards.
type ConversionConfig struct {
	// InputDir is the directory holding the .emz source files. It must
	// exist before the run starts.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the directory converted images are written to. When
	// empty it defaults to <InputDir>/output_png_images and is created
	// if missing.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// OutputFormat is the raster extension for converted files (default "png").
	OutputFormat string `json:"output_format" yaml:"output_format"`

	// ReportPath is where the failure report CSV is written when at least
	// one file fails decoding. Defaults to unsuccessful_conversions.csv
	// in the process working directory.
	ReportPath string `json:"report_path" yaml:"report_path"`

	// Backend selects the decoding tool: magick or inkscape.
	Backend DecoderBackend `json:"backend" yaml:"backend"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// HistoryDir is the directory holding the history database (default "history").
	HistoryDir string `json:"history_dir" yaml:"history_dir"`

	// MaxResults is the default maximum number of runs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	History    HistoryConfig    `json:"history" yaml:"history"`
}
