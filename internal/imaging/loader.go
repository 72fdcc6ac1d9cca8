package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WEBP format decoder
)

// FormatInfo describes one format the codec engine knows about.
type FormatInfo struct {
	// Name is the canonical, upper-case format name (e.g. "JPEG").
	Name string `json:"name"`

	// MIME is the media type, empty when the format has none.
	MIME string `json:"mime,omitempty"`

	// Decode reports whether images in this format can be read.
	Decode bool `json:"decode"`

	// Encode reports whether images can be written in this format.
	Encode bool `json:"encode"`
}

// Codec turns encoded bytes into handles and back.
type Codec interface {
	// Formats reports every format the engine supports.
	Formats() []FormatInfo

	// Decode decodes a complete in-memory image file.
	Decode(data []byte) (*Handle, error)

	// Encode serialises h in the format it is tagged with. quality is 0-100.
	Encode(h *Handle, quality int) ([]byte, error)
}

// formats lists what the engine supports, in reporting order. RGBA is raw
// pixel data with no media type.
var formats = []FormatInfo{
	{Name: "BMP", MIME: "image/bmp", Decode: true, Encode: true},
	{Name: "GIF", MIME: "image/gif", Decode: true, Encode: true},
	{Name: "JPEG", MIME: "image/jpeg", Decode: true, Encode: true},
	{Name: "JPG", MIME: "image/jpeg", Decode: true, Encode: true},
	{Name: "PNG", MIME: "image/png", Decode: true, Encode: true},
	{Name: "RGBA", Decode: false, Encode: false},
	{Name: "TIF", MIME: "image/tiff", Decode: true, Encode: true},
	{Name: "TIFF", MIME: "image/tiff", Decode: true, Encode: true},
	{Name: "WEBP", MIME: "image/webp", Decode: true, Encode: false},
}

// encoders maps a format name to the disintegration/imaging output format.
var encoders = map[string]imaging.Format{
	"BMP":  imaging.BMP,
	"GIF":  imaging.GIF,
	"JPEG": imaging.JPEG,
	"JPG":  imaging.JPEG,
	"PNG":  imaging.PNG,
	"TIF":  imaging.TIFF,
	"TIFF": imaging.TIFF,
}

// StdCodec is the pure-Go codec engine. Decoding uses the registered
// image/... and golang.org/x/image decoders; encoding goes through
// disintegration/imaging.
//
// StdCodec holds no state and is safe for concurrent use.
type StdCodec struct{}

// NewCodec returns the pure-Go codec engine.
func NewCodec() *StdCodec {
	return &StdCodec{}
}

// Formats returns a copy of the supported format table.
func (c *StdCodec) Formats() []FormatInfo {
	out := make([]FormatInfo, len(formats))
	copy(out, formats)
	return out
}

// Decode decodes data and tags the resulting handle with the detected format.
//
// Animated GIFs decode to their first frame.
//
// # Errors
//
//   - Returns error if data is empty
//   - Returns error if no registered decoder recognises the data
func (c *StdCodec) Decode(data []byte) (*Handle, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to decode image: empty input")
	}

	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return NewHandle(img, strings.ToUpper(name)), nil
}

// Encode serialises h in its tagged format.
//
// quality maps to the JPEG quality factor directly and to a zlib compression
// level for PNG. Other formats ignore it.
func (c *StdCodec) Encode(h *Handle, quality int) ([]byte, error) {
	if h == nil || h.Image() == nil {
		return nil, fmt.Errorf("failed to encode image: no pixel data")
	}

	name := strings.ToUpper(h.Format())
	f, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("failed to encode image: no encoder for format %q", h.Format())
	}

	var opts []imaging.EncodeOption
	switch f {
	case imaging.JPEG:
		opts = append(opts, imaging.JPEGQuality(quality))
	case imaging.PNG:
		opts = append(opts, imaging.PNGCompressionLevel(pngLevel(quality)))
	case imaging.GIF:
		opts = append(opts, imaging.GIFNumColors(256))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, h.Image(), f, opts...); err != nil {
		return nil, fmt.Errorf("failed to encode image as %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// pngLevel trades speed for size the same way quality does for JPEG.
func pngLevel(quality int) png.CompressionLevel {
	switch {
	case quality < 25:
		return png.BestSpeed
	case quality >= 90:
		return png.BestCompression
	default:
		return png.DefaultCompression
	}
}
