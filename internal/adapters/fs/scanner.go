package fs

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scanner implements ports.SourceScanner over the local file system.
type Scanner struct {
	walker *Walker
}

var _ ports.SourceScanner = (*Scanner)(nil)

// NewScanner creates a Scanner.
func NewScanner(walker *Walker) *Scanner {
	return &Scanner{walker: walker}
}

// Scan enumerates the source images below every root, sorted by path.
// A missing root contributes nothing. Any other walk error is recorded as a
// failure of that root and scanning continues. Directories matching ignores
// are not descended into.
func (s *Scanner) Scan(roots, ignores []string) domain.ScanResult {
	var res domain.ScanResult
	seen := make(map[string]struct{})

	for _, root := range roots {
		for file, err := range s.walker.WalkFiles(root, ignores) {
			if err != nil {
				if file.Path == root && errors.Is(err, fs.ErrNotExist) {
					continue
				}
				wrapped := zerr.With(zerr.Wrap(err, domain.ErrRootScanFailed.Error()), "path", file.Path)
				res.Failures = append(res.Failures, domain.RootFailure{Root: root, Err: wrapped})
				continue
			}
			if !domain.IsSourceImageName(filepath.Base(file.Path)) {
				continue
			}
			if _, dup := seen[file.Path]; dup {
				continue
			}
			seen[file.Path] = struct{}{}
			res.Sources = append(res.Sources, domain.NewSourceImage(file.Path, file.ModTime))
		}
	}

	slices.SortFunc(res.Sources, func(a, b domain.SourceImage) int {
		return strings.Compare(a.Path, b.Path)
	})
	return res
}
