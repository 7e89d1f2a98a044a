package pipeline

import (
	"errors"
	"sync"

	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports"
)

// dirBatch is the single writer of one directory's manifest during a run.
// The manifest is loaded on first commit and saved after every upsert, so
// entries of images not processed in this run survive untouched.
type dirBatch struct {
	dir   string
	store ports.ManifestStore
	log   ports.Logger

	mu       sync.Mutex
	manifest domain.Manifest
	changed  bool
}

func newDirBatch(dir string, store ports.ManifestStore, log ports.Logger) *dirBatch {
	return &dirBatch{dir: dir, store: store, log: log}
}

// commit upserts the entry for base and persists the manifest.
// Write failures are returned; the in-memory manifest keeps the entry so a
// later commit in the same run may still persist it.
func (b *dirBatch) commit(base string, entry domain.Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.manifest == nil {
		m, err := b.store.Load(b.dir)
		if err != nil {
			if errors.Is(err, domain.ErrManifestCorrupt) {
				b.log.Warn("discarding corrupt manifest", "dir", b.dir)
			} else {
				b.log.Warn("treating unreadable manifest as empty", "dir", b.dir, "error", err.Error())
			}
		}
		if m == nil {
			m = domain.NewManifest()
		}
		b.manifest = m
	}

	b.manifest.Upsert(base, entry)
	written, err := b.store.Save(b.dir, b.manifest)
	if err != nil {
		return err
	}
	if written {
		b.changed = true
	}
	return nil
}

// written reports whether any commit of this run changed the manifest file.
func (b *dirBatch) written() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.changed
}
