// Package transform holds the catalogue of named image transformations.
//
// Each transformation is described by a Descriptor: its name, whether it
// needs or tolerates an argument, and the function that applies it. The
// pipeline looks transformations up by exact, case-sensitive name.
package transform

import (
	"fmt"

	"github.com/ironsheep/image-alter-mcp/internal/imaging"
)

// Func applies a transformation to h and returns a new handle.
//
// args is the decoded JSON argument (nil when none was given). quality is the
// request's clamped 0-100 quality, which some transformations use to pick a
// cheaper resampling filter. Func must not release h; the caller owns it.
type Func func(h *imaging.Handle, args any, quality int) (*imaging.Handle, error)

// Descriptor describes one named transformation and its argument contract.
type Descriptor struct {
	Name         string `json:"name"`
	Doc          string `json:"doc"`
	RequiresArgs bool   `json:"requires_args"`
	AcceptsArgs  bool   `json:"accepts_args"`
	Apply        Func   `json:"-"`
}

// Registry maps names to descriptors. Populate it before use; after that it
// is read-only and safe for concurrent lookups.
type Registry struct {
	byName map[string]*Descriptor
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// Register adds d. Names must be unique, Apply must be set, and a
// transformation that requires an argument must also accept one.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("transformation name is empty")
	}
	if d.Apply == nil {
		return fmt.Errorf("transformation %s has no implementation", d.Name)
	}
	if d.RequiresArgs && !d.AcceptsArgs {
		return fmt.Errorf("transformation %s requires arguments it does not accept", d.Name)
	}
	if _, ok := r.byName[d.Name]; ok {
		return fmt.Errorf("transformation %s already registered", d.Name)
	}
	r.byName[d.Name] = &d
	r.order = append(r.order, d.Name)
	return nil
}

// Get looks up a transformation by exact name.
func (r *Registry) Get(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Descriptors returns copies of every descriptor in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.byName[name])
	}
	return out
}

// Builtin returns a registry holding every built-in transformation.
func Builtin() *Registry {
	r := NewRegistry()
	for _, d := range builtins() {
		if err := r.Register(d); err != nil {
			panic(err) // static table; only reachable through a programming error
		}
	}
	return r
}

func builtins() []Descriptor {
	return []Descriptor{
		{Name: "noop", Doc: "Leave the image unchanged.", Apply: noop},
		{Name: "grayscale", Doc: "Convert to shades of gray.", Apply: pixels(grayscale)},
		{Name: "negate", Doc: "Invert every color channel.", Apply: pixels(negate)},
		{Name: "solarize", Doc: "Negate all channels brighter than 50%.", Apply: pixels(solarize)},
		{Name: "sepia", Doc: "Apply a sepia tone.", Apply: pixels(sepia)},
		{Name: "equalize", Doc: "Histogram-equalize each channel.", Apply: pixels(equalize)},
		{Name: "normalize", Doc: "Stretch each channel to the full 0-255 range.", Apply: pixels(normalize)},
		{Name: "enhance", Doc: "Reduce noise, then sharpen lightly.", Apply: pixels(enhance)},
		{Name: "despeckle", Doc: "Remove speckle noise with a median filter.", Apply: pixels(despeckle)},
		{Name: "dither", Doc: "Floyd-Steinberg dither to the web-safe palette.", Apply: pixels(dither)},
		{Name: "psychedelic", Doc: "Rotate and saturate hues.", Apply: pixels(psychedelic)},
		{Name: "flip", Doc: "Mirror top to bottom.", Apply: pixels(flip)},
		{Name: "flop", Doc: "Mirror left to right.", Apply: pixels(flop)},

		{Name: "blur", Doc: "Gaussian blur; argument: sigma (default 1.5).", AcceptsArgs: true, Apply: blur},
		{Name: "sharpen", Doc: "Sharpen; argument: sigma (default 1.0).", AcceptsArgs: true, Apply: sharpen},
		{Name: "unsharpen", Doc: "Unsharp mask; argument: radius (default 1.0).", AcceptsArgs: true, Apply: unsharpen},
		{Name: "contrast", Doc: "Change contrast by N steps of 10% (default 1, negative reduces).", AcceptsArgs: true, Apply: contrast},
		{Name: "oilpaint", Doc: "Oil-paint effect; argument: radius (default 3).", AcceptsArgs: true, Apply: oilpaint},
		{Name: "swirl", Doc: "Swirl around the center; argument: degrees (default 90).", AcceptsArgs: true, Apply: swirl},
		{Name: "threshold", Doc: "Black and white at a luminance percentage (default 50).", AcceptsArgs: true, Apply: threshold},
		{Name: "black_threshold", Doc: "Force pixels darker than a percentage (default 50) to black.", AcceptsArgs: true, Apply: blackThreshold},
		{Name: "edge", Doc: "Edge detection; argument: radius (default 1).", AcceptsArgs: true, Apply: edge},
		{Name: "grid", Doc: "Overlay a coordinate grid; argument: {spacing, color, labels}.", AcceptsArgs: true, Apply: grid},

		{Name: "rotate", Doc: "Rotate clockwise by the given degrees.", RequiresArgs: true, AcceptsArgs: true, Apply: rotate},
		{Name: "crop", Doc: "Crop to {x1, y1, x2, y2} given as fractions 0-1.", RequiresArgs: true, AcceptsArgs: true, Apply: crop},
		{Name: "scale", Doc: "Shrink to fit {maxwidth, maxheight}, keeping aspect ratio.", RequiresArgs: true, AcceptsArgs: true, Apply: scale},
		{Name: "thumbnail", Doc: "Fast shrink to fit {maxwidth, maxheight}.", RequiresArgs: true, AcceptsArgs: true, Apply: thumbnail},
	}
}
