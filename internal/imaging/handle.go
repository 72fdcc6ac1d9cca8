package imaging

import "image"

// Handle is an exclusively owned decoded image.
//
// A Handle records three things: the current pixel data, the format identity
// the image will be encoded as, and the dimensions the codec saw at decode
// time. The decode-time dimensions travel unchanged through every handle
// derived from it, so a pipeline can report both "what came in" and "what
// goes out".
//
// Exactly one owner holds a Handle at a time. Ownership moves by passing the
// pointer along; the previous owner must not touch it afterwards. Release
// drops the pixel data and is safe to call more than once.
type Handle struct {
	img        image.Image
	format     string
	origWidth  int
	origHeight int
	released   bool
}

// NewHandle wraps a freshly decoded image. The image's current bounds become
// the handle's original dimensions.
func NewHandle(img image.Image, format string) *Handle {
	b := img.Bounds()
	return &Handle{
		img:        img,
		format:     format,
		origWidth:  b.Dx(),
		origHeight: b.Dy(),
	}
}

// Derive returns a new handle holding img, inheriting this handle's format
// identity and original dimensions. The receiver is left untouched; releasing
// it is the caller's job.
func (h *Handle) Derive(img image.Image) *Handle {
	return &Handle{
		img:        img,
		format:     h.format,
		origWidth:  h.origWidth,
		origHeight: h.origHeight,
	}
}

// Image returns the current pixel data, or nil once released.
func (h *Handle) Image() image.Image {
	return h.img
}

// Format returns the codec format name the image is tagged with (e.g. "JPEG").
func (h *Handle) Format() string {
	return h.format
}

// SetFormat changes the format the image will be encoded as.
func (h *Handle) SetFormat(name string) {
	h.format = name
}

// Width returns the current width in pixels (0 once released).
func (h *Handle) Width() int {
	if h.img == nil {
		return 0
	}
	return h.img.Bounds().Dx()
}

// Height returns the current height in pixels (0 once released).
func (h *Handle) Height() int {
	if h.img == nil {
		return 0
	}
	return h.img.Bounds().Dy()
}

// OrigWidth returns the width recorded when the source was decoded.
func (h *Handle) OrigWidth() int {
	return h.origWidth
}

// OrigHeight returns the height recorded when the source was decoded.
func (h *Handle) OrigHeight() int {
	return h.origHeight
}

// Release drops the pixel data. A nil handle is ignored.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.img = nil
	h.released = true
}

// Released reports whether Release has been called.
func (h *Handle) Released() bool {
	return h.released
}
