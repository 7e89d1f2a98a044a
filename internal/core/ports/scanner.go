package ports

import "github.com/folio-site/folio/internal/core/domain"

// SourceScanner enumerates source images below a set of root directories.
//
//go:generate mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type SourceScanner interface {
	// Scan never fails as a whole: unreadable roots are reported in the result.
	// Directories whose name matches one of ignores are not descended into.
	Scan(roots, ignores []string) domain.ScanResult
}
