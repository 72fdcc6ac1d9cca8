package transform

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/histogram"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	img "github.com/ironsheep/image-alter-mcp/internal/imaging"
)

func grayscale(src image.Image) image.Image {
	return imaging.Grayscale(src)
}

func negate(src image.Image) image.Image {
	return imaging.Invert(src)
}

func sepia(src image.Image) image.Image {
	return effect.Sepia(src)
}

// solarize negates every channel above the 50% mark.
func solarize(src image.Image) image.Image {
	inv := func(v uint8) uint8 {
		if v > 127 {
			return 255 - v
		}
		return v
	}
	return adjust.Apply(src, func(c color.RGBA) color.RGBA {
		return color.RGBA{R: inv(c.R), G: inv(c.G), B: inv(c.B), A: c.A}
	})
}

// equalize spreads each channel's histogram over the full range.
func equalize(src image.Image) image.Image {
	hist := histogram.NewRGBAHistogram(src)
	r := equalizeTable(hist.R.Bins)
	g := equalizeTable(hist.G.Bins)
	b := equalizeTable(hist.B.Bins)
	return adjust.Apply(src, func(c color.RGBA) color.RGBA {
		return color.RGBA{R: r[c.R], G: g[c.G], B: b[c.B], A: c.A}
	})
}

// equalizeTable builds the classic CDF lookup table for one channel.
func equalizeTable(bins []int) [256]uint8 {
	var table [256]uint8
	total, cdfMin := 0, 0
	for _, n := range bins {
		total += n
	}
	for _, n := range bins {
		if n > 0 {
			cdfMin = n
			break
		}
	}

	cdf := 0
	for i := 0; i < 256 && i < len(bins); i++ {
		cdf += bins[i]
		if total == cdfMin {
			table[i] = uint8(i)
			continue
		}
		v := math.Round(float64(cdf-cdfMin) / float64(total-cdfMin) * 255)
		table[i] = uint8(clampInt(int(v), 0, 255))
	}
	return table
}

// normalize stretches each channel's observed range to 0-255.
func normalize(src image.Image) image.Image {
	dst := imaging.Clone(src)
	lo := [3]uint8{255, 255, 255}
	hi := [3]uint8{0, 0, 0}
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := dst.Pix[i+c]
			if v < lo[c] {
				lo[c] = v
			}
			if v > hi[c] {
				hi[c] = v
			}
		}
	}

	for i := 0; i+3 < len(dst.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			if hi[c] > lo[c] {
				dst.Pix[i+c] = uint8((int(dst.Pix[i+c]) - int(lo[c])) * 255 / (int(hi[c]) - int(lo[c])))
			}
		}
	}
	return dst
}

// psychedelic triples the hue angle, offsets it, and pushes saturation to
// the maximum.
func psychedelic(src image.Image) image.Image {
	return adjust.Apply(src, func(c color.RGBA) color.RGBA {
		cf, ok := colorful.MakeColor(c)
		if !ok {
			return c
		}
		h, _, v := cf.Hsv()
		out := colorful.Hsv(math.Mod(h*3+120, 360), 1, v).Clamped()
		r, g, b := out.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: c.A}
	})
}

func flip(src image.Image) image.Image {
	return imaging.FlipV(src)
}

func flop(src image.Image) image.Image {
	return imaging.FlipH(src)
}

func contrast(h *img.Handle, args any, _ int) (*img.Handle, error) {
	steps, err := number(args, 1)
	if err != nil {
		return nil, fmt.Errorf("contrast: %w", err)
	}
	pct := math.Max(-100, math.Min(100, steps*10))
	return h.Derive(imaging.AdjustContrast(h.Image(), pct)), nil
}

// percentLevel converts a 0-100 percentage argument into an 8-bit level.
func percentLevel(name string, args any) (uint8, error) {
	pct, err := number(args, 50)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if pct < 0 || pct > 100 {
		return 0, fmt.Errorf("%s: percentage %g outside 0-100", name, pct)
	}
	return uint8(math.Round(pct * 255 / 100)), nil
}

func threshold(h *img.Handle, args any, _ int) (*img.Handle, error) {
	level, err := percentLevel("threshold", args)
	if err != nil {
		return nil, err
	}
	return h.Derive(segment.Threshold(h.Image(), level)), nil
}

func blackThreshold(h *img.Handle, args any, _ int) (*img.Handle, error) {
	level, err := percentLevel("black_threshold", args)
	if err != nil {
		return nil, err
	}
	out := adjust.Apply(h.Image(), func(c color.RGBA) color.RGBA {
		lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
		if lum < float64(level) {
			return color.RGBA{A: c.A}
		}
		return c
	})
	return h.Derive(out), nil
}
