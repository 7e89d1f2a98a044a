package resolver_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/folio-site/folio/internal/adapters/telemetry"
	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports/mocks"
	"github.com/folio-site/folio/internal/engine/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func hasnurManifest() domain.Manifest {
	var e domain.Entry
	for _, w := range domain.DefaultWidths {
		for _, f := range []domain.Format{domain.FormatWebP, domain.FormatJPEG} {
			e.Append(f, domain.Derivative{Width: w, Filename: domain.DerivativeName("hasnur-1", w, f)})
		}
	}
	m := domain.NewManifest()
	m.Upsert("hasnur-1", e)
	return m
}

func newResolver(t *testing.T) (*resolver.Resolver, *mocks.MockManifestFetcher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockManifestFetcher(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	return resolver.New(fetcher, telemetry.NewNoOpTracer(), log), fetcher
}

func TestResolve_HasnurExample(t *testing.T) {
	r, fetcher := newResolver(t)
	fetcher.EXPECT().Fetch(gomock.Any(), "commercial").Return(hasnurManifest(), nil)

	s := resolver.NewSession()
	pic := r.Resolve(context.Background(), s, "commercial/hasnur-1.jpg", "Hasnur")

	want := domain.ResolvedPicture{
		Layers: []domain.Layer{
			{
				MimeType: "image/webp",
				Srcset:   "commercial/hasnur-1-400w.webp 400w, commercial/hasnur-1-800w.webp 800w, commercial/hasnur-1-1200w.webp 1200w, commercial/hasnur-1-2400w.webp 2400w",
				Sizes:    "(max-width:600px) 100vw, (max-width:1024px) 50vw, 33vw",
			},
			{
				MimeType: "image/jpeg",
				Srcset:   "commercial/hasnur-1-400w.jpg 400w, commercial/hasnur-1-800w.jpg 800w, commercial/hasnur-1-1200w.jpg 1200w, commercial/hasnur-1-2400w.jpg 2400w",
				Sizes:    "(max-width:600px) 100vw, (max-width:1024px) 50vw, 33vw",
			},
		},
		Src:      "commercial/hasnur-1-800w.jpg",
		Fallback: "commercial/hasnur-1.jpg",
		Alt:      "Hasnur",
	}
	assert.Equal(t, want, pic)
	assert.Equal(t, domain.ManifestFetched, s.State("commercial"))
}

func TestResolve_EscapesSeparatorsInDirectory(t *testing.T) {
	var e domain.Entry
	for _, w := range []int{400, 800} {
		for _, f := range []domain.Format{domain.FormatWebP, domain.FormatJPEG} {
			e.Append(f, domain.Derivative{Width: w, Filename: domain.DerivativeName("a b", w, f)})
		}
	}
	m := domain.NewManifest()
	m.Upsert("a b", e)

	r, fetcher := newResolver(t)
	fetcher.EXPECT().Fetch(gomock.Any(), "my projects").Return(m, nil)

	pic := r.Resolve(context.Background(), resolver.NewSession(), "my projects/a b.jpg", "A")

	require.Len(t, pic.Layers, 2)
	assert.Equal(t, "my%20projects/a%20b-400w.webp 400w, my%20projects/a%20b-800w.webp 800w", pic.Layers[0].Srcset)
	assert.Equal(t, "my%20projects/a%20b-400w.jpg 400w, my%20projects/a%20b-800w.jpg 800w", pic.Layers[1].Srcset)
	assert.Equal(t, "my%20projects/a%20b-800w.jpg", pic.Src)
}

func TestResolve_NoManifestFallsBack(t *testing.T) {
	r, fetcher := newResolver(t)
	fetcher.EXPECT().Fetch(gomock.Any(), "residential").Return(nil, domain.ErrManifestNotFound)

	s := resolver.NewSession()
	pic := r.Resolve(context.Background(), s, "residential/villa.png", "Villa")

	assert.Equal(t, domain.PlainPicture("residential/villa.png", "Villa"), pic)
	assert.False(t, pic.Enhanced())
	assert.Equal(t, domain.ManifestMissing, s.State("residential"))
}

func TestResolve_UnknownBaseFallsBack(t *testing.T) {
	r, fetcher := newResolver(t)
	fetcher.EXPECT().Fetch(gomock.Any(), "commercial").Return(hasnurManifest(), nil)

	pic := r.Resolve(context.Background(), resolver.NewSession(), "commercial/other.jpg", "")

	assert.Empty(t, pic.Layers)
	assert.Equal(t, "commercial/other.jpg", pic.Src)
	assert.Equal(t, "commercial/other.jpg", pic.Fallback)
}

func TestResolve_FailedFetchNotRetried(t *testing.T) {
	r, fetcher := newResolver(t)
	fetcher.EXPECT().Fetch(gomock.Any(), "audiovideo").
		Return(nil, zerr.With(zerr.Wrap(domain.ErrManifestFetchFailed, ""), "status_code", 500)).
		Times(1)

	s := resolver.NewSession()
	for range 3 {
		pic := r.Resolve(context.Background(), s, "audiovideo/studio.jpg", "Studio")
		assert.False(t, pic.Enhanced())
	}
	assert.Equal(t, 1, s.Fetches())
}

func TestResolve_OneFetchPerDirectory(t *testing.T) {
	r, fetcher := newResolver(t)
	fetcher.EXPECT().Fetch(gomock.Any(), "commercial").
		DoAndReturn(func(context.Context, string) (domain.Manifest, error) {
			time.Sleep(10 * time.Millisecond)
			return hasnurManifest(), nil
		}).Times(1)
	fetcher.EXPECT().Fetch(gomock.Any(), "residential").Return(nil, domain.ErrManifestNotFound).Times(1)

	s := resolver.NewSession()
	refs := []string{
		"commercial/hasnur-1.jpg",
		"commercial/hasnur-1.jpg",
		"commercial/missing.jpg",
		"residential/a.jpg",
		"residential/b.jpg",
	}

	var wg sync.WaitGroup
	pics := make([]domain.ResolvedPicture, len(refs))
	for i, ref := range refs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pics[i] = r.Resolve(context.Background(), s, ref, "")
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, s.Fetches())
	assert.True(t, pics[0].Enhanced())
	assert.True(t, pics[1].Enhanced())
	assert.False(t, pics[2].Enhanced())
	assert.False(t, pics[3].Enhanced())
}

func TestResolve_SessionsAreIndependent(t *testing.T) {
	r, fetcher := newResolver(t)
	fetcher.EXPECT().Fetch(gomock.Any(), "commercial").Return(hasnurManifest(), nil).Times(2)

	r.Resolve(context.Background(), resolver.NewSession(), "commercial/hasnur-1.jpg", "")
	r.Resolve(context.Background(), resolver.NewSession(), "commercial/hasnur-1.jpg", "")
}

func TestResolve_CustomSizesAndCompatOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockManifestFetcher(ctrl)
	log := mocks.NewMockLogger(ctrl)

	m := domain.NewManifest()
	var e domain.Entry
	e.Append(domain.FormatJPEG, domain.Derivative{Width: 400, Filename: "a-400w.jpg"})
	m.Upsert("a", e)
	fetcher.EXPECT().Fetch(gomock.Any(), "/img").Return(m, nil)

	r := resolver.New(fetcher, telemetry.NewNoOpTracer(), log, resolver.WithSizes("100vw"))
	pic := r.Resolve(context.Background(), resolver.NewSession(), "/img/a.jpg?v=2", "A")

	require.Len(t, pic.Layers, 1)
	assert.Equal(t, domain.Layer{MimeType: "image/jpeg", Srcset: "/img/a-400w.jpg 400w", Sizes: "100vw"}, pic.Layers[0])
	assert.Equal(t, "/img/a-400w.jpg", pic.Src)
	assert.Equal(t, "/img/a.jpg?v=2", pic.Fallback)
}

func TestResolve_ElementFallsBackOnce(t *testing.T) {
	r, fetcher := newResolver(t)
	fetcher.EXPECT().Fetch(gomock.Any(), "commercial").Return(hasnurManifest(), nil)

	pic := r.Resolve(context.Background(), resolver.NewSession(), "commercial/hasnur-1.jpg", "")
	el := pic.Element()

	el.OnError()
	assert.Equal(t, domain.LoadFailed, el.State)
	assert.Equal(t, "commercial/hasnur-1.jpg", el.Src)
	assert.Empty(t, el.Srcset)
	assert.Zero(t, el.Sources)

	el.OnError()
	assert.Equal(t, domain.LoadBroken, el.State)
}

func TestSplitRef(t *testing.T) {
	tests := []struct {
		ref, dir, base string
	}{
		{"commercial/hasnur-1.jpg", "commercial", "hasnur-1"},
		{"assets/images/commercial/hasnur-1.jpg", "assets/images/commercial", "hasnur-1"},
		{"hero.webp", "", "hero"},
		{"/hero.png", "/", "hero"},
		{"https://cdn.example.com/img/a.b.jpg", "https://cdn.example.com/img", "a.b"},
		{"img/a.jpg?v=2#top", "img", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			dir, base := resolver.SplitRef(tt.ref)
			assert.Equal(t, tt.dir, dir)
			assert.Equal(t, tt.base, base)
		})
	}
}
