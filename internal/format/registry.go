// Package format maps file-extension-like tokens to the canonical format
// identities and MIME types reported by the codec engine.
package format

import (
	"sort"
	"strings"

	"github.com/ironsheep/image-alter-mcp/internal/imaging"
)

// Token is the canonical identity of an image encoding, as reported by the
// codec engine (e.g. "JPEG"). Comparison against user input is
// case-insensitive.
type Token string

// Unknown means "no matching format". It doubles as "derive the output format
// from the input" in a transform request.
const Unknown Token = ""

// Entry is one registered format.
type Entry struct {
	Token Token  `json:"format"`
	MIME  string `json:"mime"`
}

// Registry is the case-insensitive format table. It is built once by New and
// never modified afterwards, so any number of goroutines may read it.
type Registry struct {
	entries map[string]Entry // keyed by lower-cased token
}

// New builds the registry from the codec engine's capability list. Formats
// without a MIME type are skipped.
func New(caps []imaging.FormatInfo) *Registry {
	r := &Registry{entries: make(map[string]Entry, len(caps))}
	for _, c := range caps {
		if c.Name == "" || c.MIME == "" {
			continue
		}
		r.entries[strings.ToLower(c.Name)] = Entry{Token: Token(c.Name), MIME: c.MIME}
	}
	return r
}

// ResolveFromPath resolves the format named by path's extension.
//
// The candidate is everything after the last '.'; a path without any '.' is
// used whole, so a bare "png" or "JPEG" resolves too. Matching ignores case
// and returns the canonical token.
func (r *Registry) ResolveFromPath(path string) Token {
	if path == "" {
		return Unknown
	}
	ext := path[strings.LastIndexByte(path, '.')+1:]
	if e, ok := r.entries[strings.ToLower(ext)]; ok {
		return e.Token
	}
	return Unknown
}

// MIME returns the media type for t, or "" when t is not registered.
func (r *Registry) MIME(t Token) string {
	return r.entries[strings.ToLower(string(t))].MIME
}

// Entries returns every registered format, sorted by token.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// String renders the startup banner listing supported formats.
func (r *Registry) String() string {
	var b strings.Builder
	b.WriteString("codec engine initialized with support for: [ ")
	for i, e := range r.Entries() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(e.Token))
		b.WriteString(" (")
		b.WriteString(e.MIME)
		b.WriteString(")")
	}
	b.WriteString(" ]")
	return b.String()
}

// ToExtension turns a token into a file extension (without the dot).
func ToExtension(t Token) string {
	return strings.ToLower(string(t))
}
