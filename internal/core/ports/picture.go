package ports

import (
	"io"

	"github.com/folio-site/folio/internal/core/domain"
)

// PictureRenderer writes the markup fragment of a resolved picture.
//
//go:generate mockgen -source=picture.go -destination=mocks/mock_picture.go -package=mocks
type PictureRenderer interface {
	Render(w io.Writer, pic domain.ResolvedPicture) error
}
