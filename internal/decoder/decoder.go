// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package decoder implements the external image-decoding collaborator.
// WMF decoding is delegated to an installed tool (ImageMagick or
// Inkscape); the tool picks the output encoding from the destination
// file's extension.
package decoder

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/cspanachis/emzconv/pkg/types"
)

const (
	binMagick        = "magick"
	binMagickConvert = "convert"
	binInkscape      = "inkscape"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

var defaultExec executor = &osExecutor{}

// Tool decodes staged metafiles by invoking one external binary. Backends
// differ only in binary name and argument shape.
type Tool struct {
	backend types.DecoderBackend
	bin     string
	args    func(src, dest string) []string
	exec    executor
}

// Backend returns which backend this decoder uses.
func (t *Tool) Backend() types.DecoderBackend { return t.backend }

func (t *Tool) available() bool {
	_, err := t.exec.LookPath(t.bin)
	return err == nil
}

// Decode converts src to dest by invoking the backend binary. Tool output
// is folded into the returned error so decode failures stay diagnosable.
func (t *Tool) Decode(src, dest string) error {
	out, err := t.exec.Run(t.bin, t.args(src, dest)...)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %s: %w", t.bin, msg, err)
		}
		return fmt.Errorf("%s: %w", t.bin, err)
	}
	return nil
}

func newMagick(bin string, exec executor) *Tool {
	return &Tool{
		backend: types.BackendMagick,
		bin:     bin,
		args: func(src, dest string) []string {
			return []string{src, dest}
		},
		exec: exec,
	}
}

func newInkscape(exec executor) *Tool {
	return &Tool{
		backend: types.BackendInkscape,
		bin:     binInkscape,
		args: func(src, dest string) []string {
			return []string{src, "--export-filename=" + dest}
		},
		exec: exec,
	}
}

// New returns the decoder for the named backend, or an error when the
// backend is unknown or its binary is not on PATH. ImageMagick is tried
// as the v7 "magick" binary first, then the legacy "convert".
func New(backend types.DecoderBackend) (*Tool, error) {
	return newDecoder(backend, defaultExec)
}

func newDecoder(backend types.DecoderBackend, exec executor) (*Tool, error) {
	switch backend {
	case types.BackendMagick:
		for _, bin := range []string{binMagick, binMagickConvert} {
			if t := newMagick(bin, exec); t.available() {
				return t, nil
			}
		}
		return nil, fmt.Errorf("imagemagick not found: neither %s nor %s on PATH", binMagick, binMagickConvert)
	case types.BackendInkscape:
		t := newInkscape(exec)
		if !t.available() {
			return nil, fmt.Errorf("%s not found on PATH", binInkscape)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown decoder backend %q", backend)
	}
}

// Detect tries ImageMagick first, falling back to Inkscape. Returns an
// error when no decoding tool is available.
func Detect() (*Tool, error) {
	return detect(defaultExec)
}

func detect(exec executor) (*Tool, error) {
	for _, backend := range []types.DecoderBackend{types.BackendMagick, types.BackendInkscape} {
		if t, err := newDecoder(backend, exec); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("no decoding tool available: install imagemagick or inkscape")
}
