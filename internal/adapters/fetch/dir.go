package fetch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports"
	"go.trai.ch/zerr"
)

// DirFetcher implements ports.ManifestFetcher over a local document root, the
// directory the site is served from.
type DirFetcher struct {
	root string
}

var _ ports.ManifestFetcher = (*DirFetcher)(nil)

// NewDirFetcher creates a fetcher reading manifests below root.
func NewDirFetcher(root string) *DirFetcher {
	return &DirFetcher{root: filepath.Clean(root)}
}

// ManifestPath maps an image directory onto the document root. Relative and
// root-relative directories both resolve inside root.
func (f *DirFetcher) ManifestPath(dir string) string {
	clean := path.Clean("/" + dir)
	return filepath.Join(f.root, filepath.FromSlash(clean), domain.ManifestFileName)
}

// Fetch reads and parses the manifest of dir.
func (f *DirFetcher) Fetch(ctx context.Context, dir string) (domain.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestFetchFailed.Error())
	}

	p := f.ManifestPath(dir)
	data, err := os.ReadFile(p) //nolint:gosec // p is confined to the document root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrManifestNotFound, ""), "path", p)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestFetchFailed.Error()), "path", p)
	}

	m, err := domain.ParseManifest(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestCorrupt, err.Error()), "path", p)
	}
	return m, nil
}
