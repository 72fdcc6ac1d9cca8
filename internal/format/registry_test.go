package format

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/image-alter-mcp/internal/imaging"
)

func testRegistry() *Registry {
	return New([]imaging.FormatInfo{
		{Name: "JPEG", MIME: "image/jpeg"},
		{Name: "JPG", MIME: "image/jpeg"},
		{Name: "PNG", MIME: "image/png"},
		{Name: "RGBA"}, // no MIME, must be skipped
		{Name: "", MIME: "image/x-nameless"},
	})
}

func TestResolveFromPath(t *testing.T) {
	r := testRegistry()

	tests := []struct {
		name string
		path string
		want Token
	}{
		{"lower case", "/tmp/photo.jpg", "JPG"},
		{"upper case", "/tmp/photo.JPG", "JPG"},
		{"mixed case", "shot.Png", "PNG"},
		{"jpeg", "a.b.c.jpeg", "JPEG"},
		{"last dot wins", "archive.png.jpg", "JPG"},
		{"no dot uses whole path", "png", "PNG"},
		{"no dot mixed case", "Jpeg", "JPEG"},
		{"no dot not a format", "/tmp/photo", Unknown},
		{"empty", "", Unknown},
		{"trailing dot", "photo.", Unknown},
		{"unknown extension", "notes.txt", Unknown},
		{"format without mime", "raw.rgba", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ResolveFromPath(tt.path); got != tt.want {
				t.Errorf("ResolveFromPath(%q): got %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestToExtension(t *testing.T) {
	tests := []struct {
		token Token
		want  string
	}{
		{"PNG", "png"},
		{"JPEG", "jpeg"},
		{"Tiff", "tiff"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := ToExtension(tt.token); got != tt.want {
			t.Errorf("ToExtension(%q): got %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestRegistry_MIME(t *testing.T) {
	r := testRegistry()

	if got := r.MIME("png"); got != "image/png" {
		t.Errorf("MIME(png): got %q, want image/png", got)
	}
	if got := r.MIME("RGBA"); got != "" {
		t.Errorf("MIME(RGBA): got %q, want empty", got)
	}
	if got := r.MIME(Unknown); got != "" {
		t.Errorf("MIME(Unknown): got %q, want empty", got)
	}
}

func TestRegistry_Entries(t *testing.T) {
	r := testRegistry()

	want := []Entry{
		{Token: "JPEG", MIME: "image/jpeg"},
		{Token: "JPG", MIME: "image/jpeg"},
		{Token: "PNG", MIME: "image/png"},
	}
	if diff := cmp.Diff(want, r.Entries()); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_String(t *testing.T) {
	got := testRegistry().String()

	if !strings.HasPrefix(got, "codec engine initialized with support for: [ ") {
		t.Errorf("unexpected banner prefix: %s", got)
	}
	if !strings.Contains(got, "PNG (image/png)") {
		t.Errorf("banner missing PNG entry: %s", got)
	}
	if strings.Contains(got, "RGBA") {
		t.Errorf("banner should not list formats without MIME: %s", got)
	}
}

func TestNew_FromCodec(t *testing.T) {
	r := New(imaging.NewCodec().Formats())

	if got := r.ResolveFromPath("photo.JPG"); got != "JPG" {
		t.Errorf("photo.JPG: got %q, want JPG", got)
	}
	if got := r.ResolveFromPath("scan.tif"); got != "TIF" {
		t.Errorf("scan.tif: got %q, want TIF", got)
	}
	if got := r.ResolveFromPath("x.rgba"); got != Unknown {
		t.Errorf("x.rgba: got %q, want Unknown", got)
	}
}
