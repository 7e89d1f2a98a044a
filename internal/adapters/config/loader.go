// Package config loads the optional folio.yaml pipeline configuration.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader for folio.yaml files.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new configuration loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Logger: log}
}

// Load reads the configuration at path. A missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		if l.Logger != nil {
			l.Logger.Info("no configuration file, using defaults", "path", path)
		}
		data = nil
	} else if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	base := filepath.Dir(path)
	for i, root := range cfg.Roots {
		if !filepath.IsAbs(root) {
			cfg.Roots[i] = filepath.Join(base, root)
		}
	}
	return cfg, nil
}

// Parse decodes folio.yaml content over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*domain.Config, error) {
	var file Foliofile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	cfg := domain.DefaultConfig()
	if len(file.Roots) > 0 {
		cfg.Roots = file.Roots
	}
	cfg.Ignore = file.Ignore
	if len(file.Widths) > 0 {
		cfg.Spec.Widths = file.Widths
	}
	if file.WebP != nil {
		cfg.Spec.Modern = cfg.Spec.Modern.WithQuality(file.WebP.Quality)
	}
	if file.JPG != nil {
		cfg.Spec.Compat = cfg.Spec.Compat.WithQuality(file.JPG.Quality)
	}
	if file.Sizes != "" {
		cfg.Sizes = file.Sizes
	}
	cfg.Concurrency = file.Concurrency

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *domain.Config) error {
	if cfg.Concurrency < 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "concurrency must not be negative"), "concurrency", cfg.Concurrency)
	}
	for _, root := range cfg.Roots {
		if root == "" {
			return zerr.Wrap(domain.ErrInvalidConfig, "roots must not contain empty entries")
		}
	}
	for _, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil || pattern == "" {
			return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "invalid ignore pattern"), "pattern", pattern)
		}
	}
	return cfg.Spec.Validate()
}
