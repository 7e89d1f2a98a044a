package domain

// ManifestState is the per-directory state of a rendering session.
// Transitions are unfetched -> fetched-with-manifest | fetched-without-manifest;
// both fetched states are terminal for the session.
type ManifestState string

const (
	// ManifestUnfetched means no fetch has been attempted for the directory.
	ManifestUnfetched ManifestState = "unfetched"
	// ManifestFetched means the directory's manifest was loaded.
	ManifestFetched ManifestState = "fetched-with-manifest"
	// ManifestMissing means the fetch failed; the directory is served unenhanced.
	ManifestMissing ManifestState = "fetched-without-manifest"
)

// ProjectItem is the slice of an external project listing the resolver consumes.
type ProjectItem struct {
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title"`
}
