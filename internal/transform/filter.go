package transform

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	img "github.com/ironsheep/image-alter-mcp/internal/imaging"
)

func enhance(src image.Image) image.Image {
	return imaging.Sharpen(effect.Median(src, 1), 0.5)
}

func despeckle(src image.Image) image.Image {
	return effect.Median(src, 2)
}

// dither maps the image onto the 216-color web-safe palette with
// Floyd-Steinberg error diffusion.
func dither(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewPaletted(b, palette.WebSafe)
	draw.FloydSteinberg.Draw(dst, b, src, b.Min)
	return dst
}

// Upper bounds for kernel arguments. Gaussian kernels grow linearly with
// sigma; median and edge kernels are square in the radius.
const (
	maxSigma  = 250
	maxRadius = 50
)

// positive reads an optional numeric argument in (0, limit].
func positive(name string, args any, def, limit float64) (float64, error) {
	v, err := number(args, def)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s: argument must be positive, got %g", name, v)
	}
	if v > limit {
		return 0, fmt.Errorf("%s: argument must be at most %g, got %g", name, limit, v)
	}
	return v, nil
}

func blur(h *img.Handle, args any, _ int) (*img.Handle, error) {
	sigma, err := positive("blur", args, 1.5, maxSigma)
	if err != nil {
		return nil, err
	}
	return h.Derive(imaging.Blur(h.Image(), sigma)), nil
}

func sharpen(h *img.Handle, args any, _ int) (*img.Handle, error) {
	sigma, err := positive("sharpen", args, 1.0, maxSigma)
	if err != nil {
		return nil, err
	}
	return h.Derive(imaging.Sharpen(h.Image(), sigma)), nil
}

func unsharpen(h *img.Handle, args any, _ int) (*img.Handle, error) {
	radius, err := positive("unsharpen", args, 1.0, maxRadius)
	if err != nil {
		return nil, err
	}
	return h.Derive(effect.UnsharpMask(h.Image(), radius, 0.5)), nil
}

func edge(h *img.Handle, args any, _ int) (*img.Handle, error) {
	radius, err := positive("edge", args, 1.0, maxRadius)
	if err != nil {
		return nil, err
	}
	return h.Derive(effect.EdgeDetection(h.Image(), radius)), nil
}

// oilpaint smooths with a wide median and then posterizes to eight levels
// per channel, which gives flat brush-like patches.
func oilpaint(h *img.Handle, args any, _ int) (*img.Handle, error) {
	radius, err := positive("oilpaint", args, 3, maxRadius)
	if err != nil {
		return nil, err
	}
	smoothed := effect.Median(h.Image(), radius)
	post := func(v uint8) uint8 { return v&0xE0 | 0x10 }
	out := adjust.Apply(smoothed, func(c color.RGBA) color.RGBA {
		return color.RGBA{R: post(c.R), G: post(c.G), B: post(c.B), A: c.A}
	})
	return h.Derive(out), nil
}
