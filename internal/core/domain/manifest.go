package domain

import (
	"bytes"
	"encoding/json"
	"maps"
)

// Entry is the manifest record of one source image: one derivative set per format.
type Entry struct {
	WebP DerivativeSet `json:"webp"`
	JPG  DerivativeSet `json:"jpg"`
}

// Set returns the derivative set recorded for format f.
func (e Entry) Set(f Format) DerivativeSet {
	switch f.Name {
	case FormatWebP.Name:
		return e.WebP
	case FormatJPEG.Name:
		return e.JPG
	default:
		return nil
	}
}

// Append records one derivative for format f. Callers append in ladder order.
func (e *Entry) Append(f Format, d Derivative) {
	switch f.Name {
	case FormatWebP.Name:
		e.WebP = append(e.WebP, d)
	case FormatJPEG.Name:
		e.JPG = append(e.JPG, d)
	}
}

// Empty reports whether the entry records no derivatives at all.
func (e Entry) Empty() bool {
	return len(e.WebP) == 0 && len(e.JPG) == 0
}

// Manifest maps a source base name to its derivative entry. One manifest exists per
// directory and lists file names only; the directory is implied by its location.
type Manifest map[string]Entry

// NewManifest returns an empty manifest.
func NewManifest() Manifest {
	return make(Manifest)
}

// Upsert replaces the entry for base as a whole.
func (m Manifest) Upsert(base string, e Entry) {
	m[base] = e
}

// Lookup returns the entry for base. A nil manifest has no entries.
func (m Manifest) Lookup(base string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	e, ok := m[base]
	return e, ok
}

// Clone returns a shallow copy; derivative sets are shared and must not be mutated.
func (m Manifest) Clone() Manifest {
	if m == nil {
		return NewManifest()
	}
	return maps.Clone(m)
}

// MarshalIndent serialises the manifest as two-space indented JSON with a trailing newline.
// Keys are sorted, so identical manifests always produce identical bytes.
func (m Manifest) MarshalIndent() ([]byte, error) {
	if m == nil {
		m = NewManifest()
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]Entry(m)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseManifest decodes manifest JSON.
func ParseManifest(data []byte) (Manifest, error) {
	m := NewManifest()
	if len(bytes.TrimSpace(data)) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = NewManifest()
	}
	return m, nil
}
