package domain

import "path/filepath"

const (
	// ManifestFileName is the name of the per-directory derivative manifest.
	ManifestFileName = "srcsets.json"

	// ConfigFileName is the name of the optional pipeline configuration file.
	ConfigFileName = "folio.yaml"

	// ImagesDirName is the directory holding the site's images, relative to the site root.
	ImagesDirName = "assets/images"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultRoots returns the image roots scanned when no configuration file overrides them.
func DefaultRoots() []string {
	return []string{
		filepath.Join(ImagesDirName, "commercial"),
		filepath.Join(ImagesDirName, "residential"),
		filepath.Join(ImagesDirName, "audiovideo"),
	}
}

// ManifestPath returns the manifest location for a source directory.
func ManifestPath(dir string) string {
	return filepath.Join(dir, ManifestFileName)
}
