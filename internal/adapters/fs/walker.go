// Package fs provides file system adapters for enumerating source images.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"time"
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

// File is a regular file found by the Walker.
type File struct {
	Path    string
	ModTime time.Time
}

// Walker walks directory trees.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root. Directories matching one of
// the ignore patterns are skipped. An unreadable directory yields its error and
// the walk continues with its siblings.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[File, error] {
	return func(yield func(File, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield(File{Path: path}, err) {
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path != root && w.shouldSkipDir(d.Name(), ignores) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				if !yield(File{Path: path}, err) {
					return filepath.SkipAll
				}
				return nil
			}
			if !yield(File{Path: path, ModTime: info.ModTime()}, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) shouldSkipDir(name string, ignores []string) bool {
	if skipDirs[name] {
		return true
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
