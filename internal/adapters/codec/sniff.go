package codec

import (
	"bytes"
	"io"
)

// Kind is an image container recognised from its leading bytes.
type Kind string

const (
	// KindUnknown is any content that is not a supported image.
	KindUnknown Kind = ""
	// KindJPEG is a JPEG/JFIF stream.
	KindJPEG Kind = "jpeg"
	// KindPNG is a PNG stream.
	KindPNG Kind = "png"
	// KindWebP is a RIFF WEBP container.
	KindWebP Kind = "webp"
)

const sniffLen = 12

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// Sniff identifies the image kind from the first bytes of r and rewinds it.
func Sniff(r io.ReadSeeker) (Kind, error) {
	header := make([]byte, sniffLen)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return KindUnknown, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return KindUnknown, err
	}
	return SniffBytes(header[:n]), nil
}

// SniffBytes identifies the image kind of a header.
func SniffBytes(header []byte) Kind {
	switch {
	case len(header) >= 3 && header[0] == 0xFF && header[1] == 0xD8 && header[2] == 0xFF:
		return KindJPEG
	case bytes.HasPrefix(header, pngMagic):
		return KindPNG
	case len(header) >= 12 && string(header[:4]) == "RIFF" && string(header[8:12]) == "WEBP":
		return KindWebP
	default:
		return KindUnknown
	}
}
