// Package manifest persists the per-directory srcsets.json derivative manifest.
package manifest

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	foliofs "github.com/folio-site/folio/internal/adapters/fs"
	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports"
	"go.trai.ch/zerr"
)

// FileStore implements ports.ManifestStore with one JSON file per directory.
// It remembers the digest of every manifest it has read or written, so a Save
// of unchanged content is skipped without reading the file back.
type FileStore struct {
	mu      sync.Mutex
	digests map[string]fileDigest
}

// fileDigest is the xxhash of a manifest file, valid while size and mtime match.
type fileDigest struct {
	sum     uint64
	size    int64
	modTime time.Time
}

var _ ports.ManifestStore = (*FileStore)(nil)

// NewFileStore creates a new FileStore.
func NewFileStore() *FileStore {
	return &FileStore{digests: make(map[string]fileDigest)}
}

// Load reads dir/srcsets.json. The returned manifest is never nil, even on error.
func (s *FileStore) Load(dir string) (domain.Manifest, error) {
	path := domain.ManifestPath(dir)

	//nolint:gosec // path is derived from a scanned source directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewManifest(), nil
		}
		return domain.NewManifest(), zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	s.remember(path, xxhash.Sum64(data))

	m, err := domain.ParseManifest(data)
	if err != nil {
		return domain.NewManifest(), zerr.With(zerr.Wrap(domain.ErrManifestCorrupt, err.Error()), "path", path)
	}
	return m, nil
}

// Save writes m to dir/srcsets.json. When the file already holds the same bytes
// it is left untouched and Save reports false.
func (s *FileStore) Save(dir string, m domain.Manifest) (bool, error) {
	path := domain.ManifestPath(dir)

	data, err := m.MarshalIndent()
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrManifestMarshalFailed.Error()), "path", path)
	}

	sum := xxhash.Sum64(data)
	if current, ok := s.digest(path); ok && current == sum {
		return false, nil
	}

	err = foliofs.WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	s.remember(path, sum)
	return true, nil
}

// digest returns the xxhash of the file at path. A remembered digest is used
// while the file's size and mtime are unchanged; otherwise the file is hashed.
// It reports false when the file does not exist or cannot be read.
func (s *FileStore) digest(path string) (uint64, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}

	s.mu.Lock()
	d, ok := s.digests[path]
	s.mu.Unlock()
	if ok && d.size == info.Size() && d.modTime.Equal(info.ModTime()) {
		return d.sum, true
	}

	//nolint:gosec // path is derived from a scanned source directory
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer func() {
		_ = f.Close()
	}()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, false
	}
	sum := h.Sum64()
	s.store(path, sum, info)
	return sum, true
}

// remember records sum for the file currently at path.
func (s *FileStore) remember(path string, sum uint64) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	s.store(path, sum, info)
}

func (s *FileStore) store(path string, sum uint64, info fs.FileInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.digests[path] = fileDigest{sum: sum, size: info.Size(), modTime: info.ModTime()}
}
