// Package pipeline generates responsive image derivatives and maintains the
// per-directory manifests that describe them.
package pipeline

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports"
	"go.trai.ch/zerr"
)

// GenerateResult is the outcome of generating all derivatives of one source image.
type GenerateResult struct {
	// Entry lists the derivatives that are fresh or were written, in ladder order.
	Entry domain.Entry
	// Units holds one outcome per ladder width.
	Units []domain.UnitResult
	// Err is set when the image was abandoned. Entry must not be committed then.
	Err error
}

// Abandoned reports whether the image could not be processed at all.
func (r GenerateResult) Abandoned() bool {
	return r.Err != nil
}

// Generator produces the derivatives of a single source image.
type Generator struct {
	codec ports.ImageCodec
}

// NewGenerator creates a Generator backed by codec.
func NewGenerator(codec ports.ImageCodec) *Generator {
	return &Generator{codec: codec}
}

// Generate walks the width ladder of spec for src. Widths whose derivatives are
// all at least as new as the source are reused without decoding. The source is
// decoded at most once. A decode failure abandons the image; an encode failure
// drops only that width. Progress lines are written to log.
func (g *Generator) Generate(src domain.SourceImage, spec domain.DerivativeSpec, log io.Writer) GenerateResult {
	var (
		res     GenerateResult
		decoded image.Image
	)
	formats := spec.Formats()

	for _, width := range spec.Widths {
		if isFresh(src, width, formats) {
			for _, f := range formats {
				res.Entry.Append(f, domain.Derivative{Width: width, Filename: domain.DerivativeName(src.Base, width, f)})
			}
			res.Units = append(res.Units, domain.UnitResult{Width: width, Status: domain.UnitStatusCached})
			continue
		}

		if decoded == nil {
			img, err := g.codec.Decode(src.Path)
			if err != nil {
				res.Err = zerr.With(zerr.Wrap(err, domain.ErrImageDecodeFailed.Error()), "path", src.Path)
				res.Entry = domain.Entry{}
				res.Units = skipAll(spec.Widths)
				return res
			}
			decoded = img
		}

		if err := g.encodeWidth(decoded, src, width, formats, log); err != nil {
			res.Units = append(res.Units, domain.UnitResult{Width: width, Status: domain.UnitStatusFailed, Err: err})
			continue
		}
		for _, f := range formats {
			res.Entry.Append(f, domain.Derivative{Width: width, Filename: domain.DerivativeName(src.Base, width, f)})
		}
		res.Units = append(res.Units, domain.UnitResult{Width: width, Status: domain.UnitStatusCompleted})
	}

	return res
}

func (g *Generator) encodeWidth(img image.Image, src domain.SourceImage, width int, formats []domain.Format, log io.Writer) error {
	resized, err := g.codec.Resize(img, width)
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrImageEncodeFailed.Error()), "path", src.Path), "width", width)
	}
	for _, f := range formats {
		dst := domain.DerivativePath(src, width, f)
		if err := g.codec.Encode(resized, f, dst); err != nil {
			return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrImageEncodeFailed.Error()), "path", dst), "width", width)
		}
		if log != nil {
			_, _ = fmt.Fprintf(log, "wrote %s\n", domain.DerivativeName(src.Base, width, f))
		}
	}
	return nil
}

// isFresh reports whether every derivative of src at width exists and is not older than src.
func isFresh(src domain.SourceImage, width int, formats []domain.Format) bool {
	for _, f := range formats {
		info, err := os.Stat(domain.DerivativePath(src, width, f))
		if err != nil || !info.Mode().IsRegular() {
			return false
		}
		if info.ModTime().Before(src.ModTime) {
			return false
		}
	}
	return true
}

func skipAll(widths []int) []domain.UnitResult {
	units := make([]domain.UnitResult, len(widths))
	for i, w := range widths {
		units[i] = domain.UnitResult{Width: w, Status: domain.UnitStatusSkipped}
	}
	return units
}
