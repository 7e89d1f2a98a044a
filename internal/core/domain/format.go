package domain

// Format describes one encoded derivative format.
type Format struct {
	// Name is the manifest key for the format ("webp", "jpg").
	Name string
	// Ext is the file extension of derivatives, without the dot.
	Ext string
	// MimeType is the media type advertised to renderers.
	MimeType string
	// Quality is the encoder quality, 1..100.
	Quality int
}

const (
	// DefaultWebPQuality is the encoder quality of the modern format.
	DefaultWebPQuality = 75
	// DefaultJPEGQuality is the encoder quality of the broadly-compatible format.
	DefaultJPEGQuality = 85
)

// FormatWebP is the modern compressed format.
var FormatWebP = Format{Name: "webp", Ext: "webp", MimeType: "image/webp", Quality: DefaultWebPQuality}

// FormatJPEG is the broadly-compatible compressed format.
var FormatJPEG = Format{Name: "jpg", Ext: "jpg", MimeType: "image/jpeg", Quality: DefaultJPEGQuality}

// WithQuality returns a copy of f using quality q.
func (f Format) WithQuality(q int) Format {
	f.Quality = q
	return f
}
