package ports

import (
	"image"

	"github.com/folio-site/folio/internal/core/domain"
)

// ImageCodec decodes, resizes and encodes raster images.
//
//go:generate mockgen -source=codec.go -destination=mocks/mock_codec.go -package=mocks
type ImageCodec interface {
	// Decode reads the image at path, applying its EXIF orientation.
	Decode(path string) (image.Image, error)
	// Resize scales img to width pixels, preserving the aspect ratio.
	Resize(img image.Image, width int) (image.Image, error)
	// Encode writes img to dst in format f, replacing any existing file.
	Encode(img image.Image, f domain.Format, dst string) error
}
