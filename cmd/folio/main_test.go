package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
	})
}

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		for y := range height {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	f, err := os.Create(path) //nolint:gosec // test fixture
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()
	require.NoError(t, png.Encode(f, img))
}

func TestRun(t *testing.T) {
	tests := []struct {
		name         string
		config       string
		args         []string
		expectedExit int
	}{
		{
			name:         "Version",
			args:         []string{"version"},
			expectedExit: 0,
		},
		{
			name:         "Build without configuration",
			args:         []string{"build", "--json"},
			expectedExit: 0,
		},
		{
			name:         "Invalid configuration",
			config:       "widths: [800, 400]\n",
			args:         []string{"build"},
			expectedExit: 1,
		},
		{
			name:         "Unknown configuration key",
			config:       "quality: 80\n",
			args:         []string{"build", "--json"},
			expectedExit: 1,
		},
		{
			name:         "Unknown command",
			args:         []string{"deploy"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			if tt.config != "" {
				require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "folio.yaml"), []byte(tt.config), 0o600))
			}
			chdir(t, tmpDir)

			assert.Equal(t, tt.expectedExit, run(tt.args))
		})
	}
}

func TestRun_BuildThenResolve(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	require.NoError(t, os.WriteFile("folio.yaml", []byte("roots: [photos]\nwidths: [16, 32]\n"), 0o600))
	writePNG(t, filepath.Join("photos", "pic.png"), 48, 32)

	require.Equal(t, 0, run([]string{"build", "--json"}))

	for _, name := range []string{"pic-16w.webp", "pic-16w.jpg", "pic-32w.webp", "pic-32w.jpg", "srcsets.json"} {
		assert.FileExists(t, filepath.Join("photos", name))
	}

	manifest, err := os.ReadFile(filepath.Join("photos", "srcsets.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"pic": {
		"webp": "pic-16w.webp 16w, pic-32w.webp 32w",
		"jpg": "pic-16w.jpg 16w, pic-32w.jpg 32w"
	}}`, string(manifest))

	// A second run leaves the manifest untouched.
	require.Equal(t, 0, run([]string{"build", "--json"}))
	again, err := os.ReadFile(filepath.Join("photos", "srcsets.json"))
	require.NoError(t, err)
	assert.Equal(t, manifest, again)

	assert.Equal(t, 0, run([]string{"resolve", "photos/pic.png"}))
}
