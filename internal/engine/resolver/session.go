package resolver

import (
	"context"
	"sync"

	"github.com/folio-site/folio/internal/core/domain"
	"golang.org/x/sync/singleflight"
)

// Session caches manifest lookups for one rendering pass. Each directory is
// fetched at most once; a failed fetch is final for the session.
type Session struct {
	mu      sync.Mutex
	dirs    map[string]dirEntry
	fetches int
	group   singleflight.Group
}

type dirEntry struct {
	state    domain.ManifestState
	manifest domain.Manifest
}

// NewSession returns an empty session. Every directory starts unfetched.
func NewSession() *Session {
	return &Session{dirs: make(map[string]dirEntry)}
}

// State returns the manifest state of dir.
func (s *Session) State(dir string) domain.ManifestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.dirs[dir]; ok {
		return e.state
	}
	return domain.ManifestUnfetched
}

// Fetches returns the number of fetches the session has performed.
func (s *Session) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func (s *Session) lookup(dir string) (dirEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.dirs[dir]
	return e, ok
}

// manifest returns the manifest of dir, calling fetch only if dir is unfetched.
// Concurrent callers for the same directory share one fetch.
func (s *Session) manifest(
	ctx context.Context,
	dir string,
	fetch func(context.Context, string) (domain.Manifest, error),
) (domain.Manifest, bool) {
	if e, ok := s.lookup(dir); ok {
		return e.manifest, e.state == domain.ManifestFetched
	}

	v, _, _ := s.group.Do(dir, func() (any, error) {
		if e, ok := s.lookup(dir); ok {
			return e, nil
		}

		e := dirEntry{state: domain.ManifestMissing}
		if m, err := fetch(ctx, dir); err == nil && m != nil {
			e = dirEntry{state: domain.ManifestFetched, manifest: m}
		}

		s.mu.Lock()
		s.dirs[dir] = e
		s.fetches++
		s.mu.Unlock()
		return e, nil
	})

	e, _ := v.(dirEntry)
	return e.manifest, e.state == domain.ManifestFetched
}
