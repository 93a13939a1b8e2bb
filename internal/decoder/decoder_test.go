// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decoder

import (
	"errors"
	"strings"
	"testing"

	"github.com/cspanachis/emzconv/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runErr        error
	runOutput     string
	gotName       string
	gotArgs       []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(name string, args ...string) ([]byte, error) {
	m.gotName = name
	m.gotArgs = args
	return []byte(m.runOutput), m.runErr
}

func TestNewDecoder(t *testing.T) {
	tests := []struct {
		name    string
		backend types.DecoderBackend
		exec    *mockExecutor
		wantBin string
		wantErr bool
	}{
		{
			name:    "magick v7 binary",
			backend: types.BackendMagick,
			exec:    &mockExecutor{availableBins: map[string]bool{"magick": true}},
			wantBin: "magick",
		},
		{
			name:    "legacy convert fallback",
			backend: types.BackendMagick,
			exec:    &mockExecutor{availableBins: map[string]bool{"convert": true}},
			wantBin: "convert",
		},
		{
			name:    "magick preferred over legacy",
			backend: types.BackendMagick,
			exec:    &mockExecutor{availableBins: map[string]bool{"magick": true, "convert": true}},
			wantBin: "magick",
		},
		{
			name:    "inkscape",
			backend: types.BackendInkscape,
			exec:    &mockExecutor{availableBins: map[string]bool{"inkscape": true}},
			wantBin: "inkscape",
		},
		{
			name:    "imagemagick missing",
			backend: types.BackendMagick,
			exec:    &mockExecutor{availableBins: map[string]bool{}},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			backend: "graphviz",
			exec:    &mockExecutor{availableBins: map[string]bool{"graphviz": true}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := newDecoder(tt.backend, tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("newDecoder: %v", err)
			}
			if dec.bin != tt.wantBin {
				t.Errorf("bin = %q, want %q", dec.bin, tt.wantBin)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		exec        *mockExecutor
		wantBackend types.DecoderBackend
		wantErr     bool
	}{
		{
			name:        "imagemagick preferred",
			exec:        &mockExecutor{availableBins: map[string]bool{"magick": true, "inkscape": true}},
			wantBackend: types.BackendMagick,
		},
		{
			name:        "inkscape fallback",
			exec:        &mockExecutor{availableBins: map[string]bool{"inkscape": true}},
			wantBackend: types.BackendInkscape,
		},
		{
			name:    "nothing installed",
			exec:    &mockExecutor{availableBins: map[string]bool{}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := detect(tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("detect: %v", err)
			}
			if dec.Backend() != tt.wantBackend {
				t.Errorf("backend = %q, want %q", dec.Backend(), tt.wantBackend)
			}
		})
	}
}

func TestDecode_MagickArgs(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"magick": true}}
	dec, err := newDecoder(types.BackendMagick, exec)
	if err != nil {
		t.Fatal(err)
	}

	if err := dec.Decode("/staging/a.wmf", "/out/a.png"); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if exec.gotName != "magick" {
		t.Errorf("ran %q, want magick", exec.gotName)
	}
	want := []string{"/staging/a.wmf", "/out/a.png"}
	if strings.Join(exec.gotArgs, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", exec.gotArgs, want)
	}
}

func TestDecode_InkscapeArgs(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"inkscape": true}}
	dec, err := newDecoder(types.BackendInkscape, exec)
	if err != nil {
		t.Fatal(err)
	}

	if err := dec.Decode("/staging/a.wmf", "/out/a.png"); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []string{"/staging/a.wmf", "--export-filename=/out/a.png"}
	if strings.Join(exec.gotArgs, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", exec.gotArgs, want)
	}
}

func TestDecode_ErrorIncludesToolOutput(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"magick": true},
		runErr:        errors.New("exit status 1"),
		runOutput:     "magick: improper image header `a.wmf'\n",
	}
	dec, err := newDecoder(types.BackendMagick, exec)
	if err != nil {
		t.Fatal(err)
	}

	err = dec.Decode("/staging/a.wmf", "/out/a.png")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "improper image header") {
		t.Errorf("error %q should include the tool output", err)
	}
}
