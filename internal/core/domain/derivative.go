package domain

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// candidatePattern matches one leading srcset candidate: a file name, a width
// descriptor and the following separator. The name is matched lazily, so names
// containing commas or spaces stay intact.
var candidatePattern = regexp.MustCompile(`^(\S.*?)\s+(\d+)w\s*(?:,|$)`)

// srcsetEscaper escapes the characters that would split a srcset candidate.
var srcsetEscaper = strings.NewReplacer(" ", "%20", ",", "%2C")

// Derivative is one generated file at one width.
type Derivative struct {
	Width    int
	Filename string
}

// String returns the srcset candidate "filename widthw".
// A zero width yields the bare filename.
func (d Derivative) String() string {
	if d.Width == 0 {
		return d.Filename
	}
	return d.Filename + " " + strconv.Itoa(d.Width) + "w"
}

// DerivativeSet is the ordered list of derivatives of one image in one format.
// Entries are in ascending width order; this order is consumed as-is by renderers.
type DerivativeSet []Derivative

// String joins the candidates with ", ", the manifest wire form.
func (s DerivativeSet) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}

// WithPrefix returns the srcset string with every filename prefixed by dir.
// An empty dir leaves filenames untouched.
func (s DerivativeSet) WithPrefix(dir string) string {
	parts := make([]string, len(s))
	for i, d := range s {
		d.Filename = d.Path(dir)
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}

// Path returns the URL path of the file under dir. Spaces and commas are
// escaped in both parts so the path is a single srcset token.
func (d Derivative) Path(dir string) string {
	prefix := ""
	if dir != "" {
		prefix = srcsetEscaper.Replace(strings.TrimSuffix(dir, "/")) + "/"
	}
	return prefix + srcsetEscaper.Replace(d.Filename)
}

// Pick returns the first derivative at least width pixels wide, or the widest one.
// It reports false for an empty set.
func (s DerivativeSet) Pick(width int) (Derivative, bool) {
	if len(s) == 0 {
		return Derivative{}, false
	}
	for _, d := range s {
		if d.Width >= width {
			return d, true
		}
	}
	return s[len(s)-1], true
}

// ParseDerivativeSet parses a manifest srcset string such as
// "a-400w.webp 400w, a-800w.webp 800w". Every candidate needs a width
// descriptor; empty candidates are ignored.
func ParseDerivativeSet(raw string) (DerivativeSet, error) {
	var set DerivativeSet
	rest := raw
	for {
		rest = strings.TrimLeft(rest, " \t\r\n,")
		if rest == "" {
			return set, nil
		}
		m := candidatePattern.FindStringSubmatchIndex(rest)
		if m == nil {
			return nil, zerr.With(zerr.Wrap(ErrInvalidSrcset, "malformed candidate"), "token", rest)
		}
		name, digits := rest[m[2]:m[3]], rest[m[4]:m[5]]
		width, err := strconv.Atoi(digits)
		if err != nil || width == 0 {
			return nil, zerr.With(zerr.Wrap(ErrInvalidSrcset, "width out of range"), "token", rest[:m[1]])
		}
		set = append(set, Derivative{Width: width, Filename: name})
		rest = rest[m[1]:]
	}
}

// MarshalJSON encodes the set as its wire string.
func (s DerivativeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the wire string form.
func (s *DerivativeSet) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	set, err := ParseDerivativeSet(raw)
	if err != nil {
		return err
	}
	*s = set
	return nil
}
