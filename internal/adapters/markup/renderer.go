// Package markup writes <picture> fragments for resolved images.
package markup

import (
	"bufio"
	"html"
	"io"
	"strings"

	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PictureRenderer = (*Renderer)(nil)

// jsStringEscaper escapes a value for a single-quoted JavaScript string literal.
var jsStringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)

// Option configures a Renderer.
type Option func(*Renderer)

// WithClass sets the class attribute of every rendered img.
func WithClass(class string) Option {
	return func(r *Renderer) {
		r.class = class
	}
}

// WithIndent sets the indentation of elements nested in <picture>.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer implements ports.PictureRenderer.
type Renderer struct {
	class  string
	indent string
}

// NewRenderer creates a Renderer. Nested elements are indented by two spaces by default.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes pic to w. An enhanced picture becomes a <picture> element whose
// last layer sits on the img together with a one-shot fallback handler. A
// picture without layers becomes a plain img.
func (r *Renderer) Render(w io.Writer, pic domain.ResolvedPicture) error {
	bw := bufio.NewWriter(w)
	if pic.Enhanced() {
		r.writePicture(bw, pic)
	} else {
		r.writeImg(bw, pic, nil)
		bw.WriteString("\n")
	}
	if err := bw.Flush(); err != nil {
		return zerr.Wrap(err, "failed to write picture markup")
	}
	return nil
}

func (r *Renderer) writePicture(bw *bufio.Writer, pic domain.ResolvedPicture) {
	bw.WriteString("<picture>\n")
	last := len(pic.Layers) - 1
	for _, layer := range pic.Layers[:last] {
		bw.WriteString(r.indent)
		bw.WriteString("<source")
		writeAttr(bw, "type", layer.MimeType)
		writeAttr(bw, "srcset", layer.Srcset)
		writeAttr(bw, "sizes", layer.Sizes)
		bw.WriteString(">\n")
	}
	bw.WriteString(r.indent)
	r.writeImg(bw, pic, &pic.Layers[last])
	bw.WriteString("\n</picture>\n")
}

func (r *Renderer) writeImg(bw *bufio.Writer, pic domain.ResolvedPicture, layer *domain.Layer) {
	bw.WriteString("<img")
	writeAttr(bw, "src", pic.Src)
	if layer != nil {
		writeAttr(bw, "srcset", layer.Srcset)
		writeAttr(bw, "sizes", layer.Sizes)
	}
	writeAttr(bw, "alt", pic.Alt)
	if r.class != "" {
		writeAttr(bw, "class", r.class)
	}
	writeAttr(bw, "loading", "lazy")
	if layer != nil {
		writeAttr(bw, "onerror", FallbackHandler(pic.Fallback))
	}
	bw.WriteString(">")
}

// FallbackHandler returns the onerror script of an enhanced img. It detaches
// itself, removes the sibling sources and the generated srcset, and loads fallback.
func FallbackHandler(fallback string) string {
	return "this.onerror=null;" +
		"this.parentNode.querySelectorAll('source').forEach(function(s){s.remove()});" +
		"this.removeAttribute('srcset');" +
		"this.removeAttribute('sizes');" +
		"this.src='" + jsStringEscaper.Replace(fallback) + "';"
}

func writeAttr(bw *bufio.Writer, name, value string) {
	bw.WriteString(" ")
	bw.WriteString(name)
	bw.WriteString(`="`)
	bw.WriteString(html.EscapeString(value))
	bw.WriteString(`"`)
}
