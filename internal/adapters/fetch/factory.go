package fetch

import (
	"strings"

	"github.com/folio-site/folio/internal/core/ports"
)

// Factory implements ports.FetcherFactory.
type Factory struct{}

var _ ports.FetcherFactory = Factory{}

// ForSource returns an HTTPFetcher for http(s) URLs and a DirFetcher otherwise.
// An empty source means the current directory.
func (Factory) ForSource(source string) (ports.ManifestFetcher, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewHTTPFetcher(source)
	}
	if source == "" {
		source = "."
	}
	return NewDirFetcher(source), nil
}
