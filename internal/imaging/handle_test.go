package imaging

import (
	"image/color"
	"testing"
)

func TestNewHandle(t *testing.T) {
	h := NewHandle(createInMemoryImage(30, 20, color.Black), "PNG")

	if h.Width() != 30 || h.Height() != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", h.Width(), h.Height())
	}
	if h.OrigWidth() != 30 || h.OrigHeight() != 20 {
		t.Errorf("original dimensions: got %dx%d, want 30x20", h.OrigWidth(), h.OrigHeight())
	}
	if h.Format() != "PNG" {
		t.Errorf("Format: got %s, want PNG", h.Format())
	}
	if h.Released() {
		t.Error("new handle should not be released")
	}
}

func TestHandle_Derive(t *testing.T) {
	h := NewHandle(createInMemoryImage(30, 20, color.Black), "JPEG")
	d := h.Derive(createInMemoryImage(10, 5, color.White))

	if d == h {
		t.Fatal("Derive should return a new handle")
	}
	if d.Width() != 10 || d.Height() != 5 {
		t.Errorf("derived dimensions: got %dx%d, want 10x5", d.Width(), d.Height())
	}
	if d.OrigWidth() != 30 || d.OrigHeight() != 20 {
		t.Errorf("derived original dimensions: got %dx%d, want 30x20", d.OrigWidth(), d.OrigHeight())
	}
	if d.Format() != "JPEG" {
		t.Errorf("derived format: got %s, want JPEG", d.Format())
	}

	// Chained derivation keeps the decode-time size.
	dd := d.Derive(createInMemoryImage(2, 2, color.White))
	if dd.OrigWidth() != 30 || dd.OrigHeight() != 20 {
		t.Errorf("second derivation lost original dimensions: %dx%d", dd.OrigWidth(), dd.OrigHeight())
	}
}

func TestHandle_Release(t *testing.T) {
	h := NewHandle(createInMemoryImage(8, 8, color.Black), "PNG")
	d := h.Derive(h.Image())

	h.Release()
	if !h.Released() {
		t.Error("Released should report true after Release")
	}
	if h.Image() != nil {
		t.Error("released handle should drop its image")
	}
	if h.Width() != 0 || h.Height() != 0 {
		t.Errorf("released handle dimensions: got %dx%d, want 0x0", h.Width(), h.Height())
	}

	// Releasing twice is harmless and does not affect derived handles.
	h.Release()
	if d.Released() || d.Width() != 8 {
		t.Error("releasing the parent must not affect a derived handle")
	}

	var nilHandle *Handle
	nilHandle.Release()
}

func TestHandle_SetFormat(t *testing.T) {
	h := NewHandle(createInMemoryImage(1, 1, color.Black), "JPEG")
	h.SetFormat("PNG")
	if h.Format() != "PNG" {
		t.Errorf("Format after SetFormat: got %s, want PNG", h.Format())
	}
}
