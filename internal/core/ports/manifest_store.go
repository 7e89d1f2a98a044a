package ports

import (
	"context"

	"github.com/folio-site/folio/internal/core/domain"
)

// ManifestStore persists the per-directory derivative manifest.
//
//go:generate mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Load returns the manifest of dir. A missing manifest yields an empty one and
	// no error; a corrupt one yields an empty manifest and domain.ErrManifestCorrupt.
	Load(dir string) (domain.Manifest, error)

	// Save writes the whole manifest of dir. It reports whether the file changed.
	Save(dir string, m domain.Manifest) (bool, error)
}

// ManifestFetcher retrieves a directory's manifest at render time.
type ManifestFetcher interface {
	// Fetch returns the manifest of dir, where dir is the directory part of an
	// image reference. A missing manifest yields domain.ErrManifestNotFound.
	Fetch(ctx context.Context, dir string) (domain.Manifest, error)
}

// FetcherFactory builds a ManifestFetcher for a manifest source: an http(s)
// base URL or a local document root.
type FetcherFactory interface {
	ForSource(source string) (ManifestFetcher, error)
}
