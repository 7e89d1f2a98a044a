package domain

// RootFailure records a root directory whose enumeration failed.
type RootFailure struct {
	Root string
	Err  error
}

// ScanResult is the outcome of enumerating source images under a set of roots.
type ScanResult struct {
	Sources  []SourceImage
	Failures []RootFailure
}

// ByDir groups the sources by directory, preserving scan order within each group.
// The returned key order is the order in which directories first appear.
func (r ScanResult) ByDir() ([]string, map[string][]SourceImage) {
	groups := make(map[string][]SourceImage)
	var dirs []string
	for _, src := range r.Sources {
		if _, ok := groups[src.Dir]; !ok {
			dirs = append(dirs, src.Dir)
		}
		groups[src.Dir] = append(groups[src.Dir], src)
	}
	return dirs, groups
}
