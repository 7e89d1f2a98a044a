package domain

import (
	"fmt"
	"path/filepath"

	"go.trai.ch/zerr"
)

// DefaultWidths is the width ladder used when no configuration overrides it.
var DefaultWidths = []int{400, 800, 1200, 2400}

// DefaultSizes is the three-tier sizing policy attached to every resolved layer.
const DefaultSizes = "(max-width:600px) 100vw, (max-width:1024px) 50vw, 33vw"

// PreferredWidth is the width whose derivative becomes the default img src.
const PreferredWidth = 800

// DerivativeSpec is the fixed, global configuration of the derivative pipeline.
type DerivativeSpec struct {
	Widths []int
	Modern Format
	Compat Format
}

// DefaultDerivativeSpec returns the built-in ladder: 400/800/1200/2400, webp q75 and jpg q85.
func DefaultDerivativeSpec() DerivativeSpec {
	widths := make([]int, len(DefaultWidths))
	copy(widths, DefaultWidths)
	return DerivativeSpec{
		Widths: widths,
		Modern: FormatWebP,
		Compat: FormatJPEG,
	}
}

// Formats returns the derivative formats in layer order: modern first.
func (s DerivativeSpec) Formats() []Format {
	return []Format{s.Modern, s.Compat}
}

// Validate checks that the ladder is non-empty and strictly ascending and that
// qualities are within encoder range.
func (s DerivativeSpec) Validate() error {
	if len(s.Widths) == 0 {
		return zerr.Wrap(ErrInvalidConfig, "width ladder is empty")
	}
	prev := 0
	for _, w := range s.Widths {
		if w <= prev {
			err := zerr.Wrap(ErrInvalidConfig, "widths must be positive and strictly ascending")
			return zerr.With(err, "widths", fmt.Sprint(s.Widths))
		}
		prev = w
	}
	for _, f := range s.Formats() {
		if f.Quality < 1 || f.Quality > 100 {
			err := zerr.With(zerr.Wrap(ErrInvalidConfig, "quality must be within 1..100"), "format", f.Name)
			return zerr.With(err, "quality", f.Quality)
		}
	}
	return nil
}

// DerivativeName returns the deterministic derivative file name {base}-{width}w.{ext}.
func DerivativeName(base string, width int, f Format) string {
	return fmt.Sprintf("%s-%dw.%s", base, width, f.Ext)
}

// DerivativePath returns the derivative location for a source at one width and format.
func DerivativePath(src SourceImage, width int, f Format) string {
	return filepath.Join(src.Dir, DerivativeName(src.Base, width, f))
}
