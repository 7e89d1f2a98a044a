package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/folio-site/folio/internal/adapters/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Info("built manifest", "dir", "commercial", "entries", 3)

	assert.Equal(t, "built manifest dir=commercial entries=3\n", buf.String())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Warn("corrupt manifest")

	assert.Equal(t, "! corrupt manifest\n", buf.String())
}

func TestLogger_Error(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.With(zerr.Wrap(errors.New("unexpected EOF"), "failed to decode source image"), "path", "a.jpg")
	lg.Error(err)

	want := "✗ Error: failed to decode source image\n" +
		"       path: a.jpg\n" +
		"\n" +
		"  Caused by:\n" +
		"    → unexpected EOF\n"
	assert.Equal(t, want, buf.String())
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("scan complete", "images", 2)
	lg.Error(errors.New("boom"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "scan complete", rec["msg"])
	assert.EqualValues(t, 2, rec["images"])

	require.NoError(t, json.Unmarshal(lines[1], &rec))
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, slog.LevelError.String(), rec["level"])
}

func TestCollectErrorEntries(t *testing.T) {
	sentinel := zerr.New("invalid configuration")

	tests := []struct {
		name string
		err  error
		want []logger.ErrorEntry
	}{
		{
			name: "StandardError",
			err:  errors.New("simple"),
			want: []logger.ErrorEntry{{Message: "simple"}},
		},
		{
			name: "WrappedChain",
			err:  zerr.Wrap(zerr.Wrap(errors.New("root"), "middle"), "outer"),
			want: []logger.ErrorEntry{
				{Message: "outer", Metadata: map[string]any{}},
				{Message: "middle", Metadata: map[string]any{}},
				{Message: "root"},
			},
		},
		{
			name: "MetadataOnlyLinkFolded",
			err:  zerr.With(zerr.Wrap(sentinel, "widths must be ascending"), "widths", "[800 400]"),
			want: []logger.ErrorEntry{
				{Message: "widths must be ascending", Metadata: map[string]any{"widths": "[800 400]"}},
				{Message: "invalid configuration", Metadata: map[string]any{}},
			},
		},
		{
			name: "EmptyWrapOnTop",
			err:  zerr.With(zerr.Wrap(sentinel, ""), "token", "a 2x"),
			want: []logger.ErrorEntry{
				{Message: "invalid configuration", Metadata: map[string]any{"token": "a 2x"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.CollectErrorEntries(tt.err))
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "Single",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "CausedBy",
			entries: []logger.ErrorEntry{{Message: "outer"}, {Message: "inner"}, {Message: "root"}},
			want:    "Error: outer\n\n  Caused by:\n    → inner\n    → root",
		},
		{
			name: "SortedMetadata",
			entries: []logger.ErrorEntry{
				{Message: "error", Metadata: map[string]any{"width": 800, "path": "a.jpg"}},
			},
			want: "Error: error\n       path: a.jpg\n       width: 800",
		},
		{
			name:    "Multiline",
			entries: []logger.ErrorEntry{{Message: "main"}, {Message: "l1\nl2"}},
			want:    "Error: main\n\n  Caused by:\n    → l1\n      l2",
		},
		{
			name:    "Empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
