package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidConfig is returned when the pipeline configuration fails validation.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrRootScanFailed is returned when a root directory cannot be enumerated.
	ErrRootScanFailed = zerr.New("failed to scan root directory")

	// ErrSourceStatFailed is returned when a source image cannot be stat'ed.
	ErrSourceStatFailed = zerr.New("failed to stat source image")

	// ErrUnsupportedImage is returned when a source file is not a decodable jpg, png or webp image.
	ErrUnsupportedImage = zerr.New("unsupported image format")

	// ErrImageDecodeFailed is returned when a source image cannot be decoded.
	ErrImageDecodeFailed = zerr.New("failed to decode source image")

	// ErrImageEncodeFailed is returned when a derivative cannot be encoded.
	ErrImageEncodeFailed = zerr.New("failed to encode derivative")

	// ErrDerivativeWriteFailed is returned when a derivative file cannot be written.
	ErrDerivativeWriteFailed = zerr.New("failed to write derivative")

	// ErrDuplicateBase is returned when two sources in one directory share a base name.
	ErrDuplicateBase = zerr.New("source shares its base name with another image")

	// ErrInvalidWidth is returned when a resize width is not positive.
	ErrInvalidWidth = zerr.New("invalid derivative width")

	// ErrManifestCorrupt is returned when an existing manifest cannot be parsed.
	// Callers treat the manifest as empty.
	ErrManifestCorrupt = zerr.New("corrupt manifest")

	// ErrManifestReadFailed is returned when an existing manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestMarshalFailed is returned when a manifest cannot be serialised.
	ErrManifestMarshalFailed = zerr.New("failed to marshal manifest")

	// ErrManifestWriteFailed is returned when a manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrManifestNotFound is returned by fetchers when a directory has no manifest.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrManifestFetchFailed is returned when a manifest request fails.
	ErrManifestFetchFailed = zerr.New("failed to fetch manifest")

	// ErrInvalidSrcset is returned when a srcset string contains a malformed token.
	ErrInvalidSrcset = zerr.New("invalid srcset token")

	// ErrProjectListReadFailed is returned when the project list cannot be read.
	ErrProjectListReadFailed = zerr.New("failed to read project list")

	// ErrProjectListParseFailed is returned when the project list cannot be parsed.
	ErrProjectListParseFailed = zerr.New("failed to parse project list")

	// ErrInvalidOutputMode is returned for an unknown --output value.
	ErrInvalidOutputMode = zerr.New("invalid output mode")

	// ErrNoReferences is returned when resolve is invoked without image references.
	ErrNoReferences = zerr.New("no image references specified")
)
