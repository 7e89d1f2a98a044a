package domain

// Layer is one source-set tier of a resolved picture.
type Layer struct {
	MimeType string
	Srcset   string
	Sizes    string
}

// ResolvedPicture is the runtime description of an image: layered sources in
// preference order plus the original image used when derivatives fail.
// It is never persisted.
type ResolvedPicture struct {
	// Layers are ordered modern format first. Empty when no manifest entry exists.
	Layers []Layer
	// Src is the default image URL.
	Src string
	// Fallback is the original image URL substituted on load failure.
	Fallback string
	// Alt is the alternative text.
	Alt string
}

// PlainPicture returns the unenhanced picture for an image reference.
func PlainPicture(ref, alt string) ResolvedPicture {
	return ResolvedPicture{Src: ref, Fallback: ref, Alt: alt}
}

// Enhanced reports whether the picture carries any generated source-set.
func (p ResolvedPicture) Enhanced() bool {
	return len(p.Layers) > 0
}

// Element returns the load state machine of the picture's img element.
func (p ResolvedPicture) Element() *ImageElement {
	el := &ImageElement{
		Src:      p.Src,
		Fallback: p.Fallback,
		State:    LoadPending,
	}
	if p.Enhanced() {
		last := p.Layers[len(p.Layers)-1]
		el.Srcset = last.Srcset
		el.Sizes = last.Sizes
		el.Sources = len(p.Layers) - 1
		el.onError = true
	}
	return el
}
