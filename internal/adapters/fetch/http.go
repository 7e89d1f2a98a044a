// Package fetch retrieves srcsets.json manifests at render time, over HTTP or
// from a local document root.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	httpClientTimeout = 30 * time.Second
	maxManifestSize   = 8 << 20
)

// HTTPFetcher implements ports.ManifestFetcher against a web server.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
}

var _ ports.ManifestFetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher resolving relative image directories against baseURL.
func NewHTTPFetcher(baseURL string) (*HTTPFetcher, error) {
	return NewHTTPFetcherWithClient(baseURL, &http.Client{Timeout: httpClientTimeout})
}

// NewHTTPFetcherWithClient creates a fetcher using a custom http client.
func NewHTTPFetcherWithClient(baseURL string, client *http.Client) (*HTTPFetcher, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "base URL must be absolute"), "base_url", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return &HTTPFetcher{base: base, client: client}, nil
}

// ManifestURL returns the location of the manifest for an image directory as
// the page would address it.
func (f *HTTPFetcher) ManifestURL(dir string) (string, error) {
	ref, err := url.Parse(dir)
	if err != nil {
		return "", err
	}
	ref.Path = path.Join(ref.Path, domain.ManifestFileName)
	return f.base.ResolveReference(ref).String(), nil
}

// Fetch downloads and parses the manifest of dir.
func (f *HTTPFetcher) Fetch(ctx context.Context, dir string) (domain.Manifest, error) {
	u, err := f.ManifestURL(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestFetchFailed.Error()), "dir", dir)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestFetchFailed.Error()), "url", u)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestFetchFailed.Error()), "url", u)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestNotFound, ""), "url", u)
	case resp.StatusCode != http.StatusOK:
		err := zerr.With(zerr.Wrap(domain.ErrManifestFetchFailed, "unexpected status"), "status_code", resp.StatusCode)
		return nil, zerr.With(err, "url", u)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestSize))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestFetchFailed.Error()), "url", u)
	}

	m, err := domain.ParseManifest(body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestCorrupt, err.Error()), "url", u)
	}
	return m, nil
}
