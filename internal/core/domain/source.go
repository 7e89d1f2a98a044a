package domain

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// derivativePattern matches names produced by the generator, e.g. "photo-800w.jpg".
var derivativePattern = regexp.MustCompile(`(?i)-\d+w\.(jpe?g|png|webp)$`)

var sourceExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// SourceImage is an original image file eligible for derivative generation.
// The pipeline never mutates it.
type SourceImage struct {
	Path    string
	Dir     string
	Base    string
	Ext     string
	ModTime time.Time
}

// NewSourceImage builds a SourceImage from a file path and its modification time.
func NewSourceImage(path string, modTime time.Time) SourceImage {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	return SourceImage{
		Path:    path,
		Dir:     filepath.Dir(path),
		Base:    strings.TrimSuffix(name, ext),
		Ext:     ext,
		ModTime: modTime,
	}
}

// Name returns the file name of the source, including its extension.
func (s SourceImage) Name() string {
	return s.Base + s.Ext
}

// IsSourceImageName reports whether a file name denotes a source image: a supported
// image extension that is not itself a generated derivative.
func IsSourceImageName(name string) bool {
	if _, ok := sourceExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
		return false
	}
	return !IsDerivativeName(name)
}

// IsDerivativeName reports whether a file name follows the derivative naming convention.
func IsDerivativeName(name string) bool {
	return derivativePattern.MatchString(name)
}
