// Package resolver turns image references into layered pictures using the
// derivative manifests published next to the images.
package resolver

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithSizes overrides the sizes policy attached to every layer.
func WithSizes(sizes string) Option {
	return func(r *Resolver) {
		if sizes != "" {
			r.sizes = sizes
		}
	}
}

// WithSpec sets the derivative formats used to build layers.
func WithSpec(spec domain.DerivativeSpec) Option {
	return func(r *Resolver) {
		r.spec = spec
	}
}

// Resolver maps an image reference to a ResolvedPicture.
type Resolver struct {
	fetcher ports.ManifestFetcher
	tracer  ports.Tracer
	logger  ports.Logger
	sizes   string
	spec    domain.DerivativeSpec
}

// New creates a Resolver reading manifests through fetcher.
func New(fetcher ports.ManifestFetcher, tracer ports.Tracer, log ports.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher: fetcher,
		tracer:  tracer,
		logger:  log,
		sizes:   domain.DefaultSizes,
		spec:    domain.DefaultDerivativeSpec(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the picture for ref. When the directory of ref has no
// manifest, or the manifest has no entry for its base name, the picture has
// no layers and points at ref itself. Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context, s *Session, ref, alt string) domain.ResolvedPicture {
	dir, base := SplitRef(ref)

	m, ok := s.manifest(ctx, dir, r.fetch)
	if !ok {
		return domain.PlainPicture(ref, alt)
	}
	entry, found := m.Lookup(base)
	if !found {
		return domain.PlainPicture(ref, alt)
	}

	pic := domain.ResolvedPicture{Fallback: ref, Alt: alt}
	for _, f := range r.spec.Formats() {
		set := entry.Set(f)
		if len(set) == 0 {
			continue
		}
		pic.Layers = append(pic.Layers, domain.Layer{
			MimeType: f.MimeType,
			Srcset:   set.WithPrefix(dir),
			Sizes:    r.sizes,
		})
	}
	if !pic.Enhanced() {
		return domain.PlainPicture(ref, alt)
	}

	pic.Src = ref
	if d, ok := r.defaultDerivative(entry); ok {
		pic.Src = d.Path(dir)
	}
	return pic
}

// defaultDerivative picks the img src: the compatible derivative nearest the
// preferred width, or the modern one when no compatible set exists.
func (r *Resolver) defaultDerivative(e domain.Entry) (domain.Derivative, bool) {
	if d, ok := e.Set(r.spec.Compat).Pick(domain.PreferredWidth); ok {
		return d, true
	}
	return e.Set(r.spec.Modern).Pick(domain.PreferredWidth)
}

func (r *Resolver) fetch(ctx context.Context, dir string) (domain.Manifest, error) {
	ctx, span := r.tracer.Start(ctx, "fetch manifest", ports.WithDir(dir))
	defer span.End()

	m, err := r.fetcher.Fetch(ctx, dir)
	if err != nil {
		if !errors.Is(err, domain.ErrManifestNotFound) {
			span.RecordError(err)
			r.logger.Warn("serving directory without derivatives", "dir", dir, "error", err.Error())
		}
		span.SetAttribute("state", string(domain.ManifestMissing))
		return nil, err
	}
	span.SetAttribute("state", string(domain.ManifestFetched))
	span.SetAttribute("entries", len(m))
	return m, nil
}

// SplitRef splits an image reference into its directory and its file name
// without extension. Query strings and fragments are ignored. A reference
// without a slash has an empty directory.
func SplitRef(ref string) (dir, base string) {
	p := ref
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	file := p
	if i := strings.LastIndex(p, "/"); i >= 0 {
		dir, file = p[:i], p[i+1:]
		if dir == "" {
			dir = "/"
		}
	}
	return dir, strings.TrimSuffix(file, path.Ext(file))
}
