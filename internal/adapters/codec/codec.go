// Package codec implements ports.ImageCodec with disintegration/imaging for
// decoding, resampling and JPEG output, and gen2brain/webp for WebP output.
package codec

import (
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/folio-site/folio/internal/adapters/fs"
	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports"
	"github.com/gen2brain/webp"
	"go.trai.ch/zerr"
)

// Codec implements ports.ImageCodec.
type Codec struct {
	filter imaging.ResampleFilter
}

var _ ports.ImageCodec = (*Codec)(nil)

// New creates a Codec resampling with the Lanczos filter.
func New() *Codec {
	return &Codec{filter: imaging.Lanczos}
}

// Decode reads a jpg, png or webp file and applies its EXIF orientation.
func (c *Codec) Decode(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the scanner
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrImageDecodeFailed.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	kind, err := Sniff(f)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrImageDecodeFailed.Error()), "path", path)
	}
	if kind == KindUnknown {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedImage, "unrecognised file content"), "path", path)
	}

	var img image.Image
	if kind == KindWebP {
		img, err = webp.Decode(f)
	} else {
		img, err = imaging.Decode(f, imaging.AutoOrientation(true))
	}
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrImageDecodeFailed.Error()), "path", path)
		return nil, zerr.With(err, "format", string(kind))
	}
	return img, nil
}

// Resize scales img to width pixels wide, preserving the aspect ratio.
func (c *Codec) Resize(img image.Image, width int) (image.Image, error) {
	if width <= 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidWidth, "width must be positive"), "width", width)
	}
	return imaging.Resize(img, width, 0, c.filter), nil
}

// Encode writes img to dst in format f. The previous file, if any, is replaced atomically.
func (c *Codec) Encode(img image.Image, f domain.Format, dst string) error {
	var enc func(w io.Writer) error
	switch f.Name {
	case domain.FormatWebP.Name:
		enc = func(w io.Writer) error {
			return webp.Encode(w, img, webp.Options{Quality: f.Quality})
		}
	case domain.FormatJPEG.Name:
		enc = func(w io.Writer) error {
			return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(f.Quality))
		}
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedImage, "no encoder for format"), "format", f.Name)
	}

	var encodeErr error
	err := fs.WriteAtomic(dst, func(w io.Writer) error {
		encodeErr = enc(w)
		return encodeErr
	})
	switch {
	case encodeErr != nil:
		return zerr.With(zerr.Wrap(encodeErr, domain.ErrImageEncodeFailed.Error()), "path", dst)
	case err != nil:
		return zerr.With(zerr.Wrap(err, domain.ErrDerivativeWriteFailed.Error()), "path", dst)
	}
	return nil
}
