package transform

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	img "github.com/ironsheep/image-alter-mcp/internal/imaging"
)

const (
	defaultGridSpacing = 50
	defaultGridColor   = "#FF000080"
	maxGridSpacing     = 1 << 20
)

type gridOptions struct {
	spacing int
	color   color.NRGBA
	labels  bool
}

func gridArgs(args any) (gridOptions, error) {
	opts := gridOptions{spacing: defaultGridSpacing}
	c, _ := parseHexColor(defaultGridColor)
	opts.color = c
	if args == nil {
		return opts, nil
	}

	m, err := object(args)
	if err != nil {
		return opts, err
	}
	if s, ok, err := field(m, "spacing"); err != nil {
		return opts, err
	} else if ok {
		if s < 2 {
			return opts, fmt.Errorf("spacing must be at least 2, got %g", s)
		}
		if s > maxGridSpacing {
			return opts, fmt.Errorf("spacing must be at most %d, got %g", maxGridSpacing, s)
		}
		opts.spacing = int(s)
	}
	if v, ok := m["color"]; ok && v != nil {
		s, isStr := v.(string)
		if !isStr {
			return opts, fmt.Errorf("color: expected a string, got %s", describe(v))
		}
		if opts.color, err = parseHexColor(s); err != nil {
			return opts, fmt.Errorf("color: %w", err)
		}
	}
	if v, ok := m["labels"]; ok && v != nil {
		b, isBool := v.(bool)
		if !isBool {
			return opts, fmt.Errorf("labels: expected a boolean, got %s", describe(v))
		}
		opts.labels = b
	}
	return opts, nil
}

// parseHexColor accepts "#RRGGBB" or "#RRGGBBAA".
func parseHexColor(hex string) (color.NRGBA, error) {
	hex = strings.TrimPrefix(hex, "#")
	alpha := uint8(255)
	switch len(hex) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, err
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// grid draws a coordinate grid over the image, optionally labelling each
// intersection with its pixel coordinates.
func grid(h *img.Handle, args any, _ int) (*img.Handle, error) {
	opts, err := gridArgs(args)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}

	src := h.Image()
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	line := image.NewUniform(opts.color)
	w, ht := dst.Bounds().Dx(), dst.Bounds().Dy()
	for x := opts.spacing; x < w; x += opts.spacing {
		draw.Draw(dst, image.Rect(x, 0, x+1, ht), line, image.Point{}, draw.Over)
	}
	for y := opts.spacing; y < ht; y += opts.spacing {
		draw.Draw(dst, image.Rect(0, y, w, y+1), line, image.Point{}, draw.Over)
	}

	if opts.labels {
		for y := opts.spacing; y < ht; y += opts.spacing {
			for x := opts.spacing; x < w; x += opts.spacing {
				drawLabel(dst, x+2, y+2, fmt.Sprintf("%d,%d", x, y))
			}
		}
	}
	return h.Derive(dst), nil
}

// drawLabel writes text with its top-left corner at (x, y) on a dark
// backing box.
func drawLabel(dst *image.RGBA, x, y int, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	width := d.MeasureString(text).Ceil()
	box := image.Rect(x-1, y-1, x+width+1, y+face.Height+1).Intersect(dst.Bounds())
	draw.Draw(dst, box, image.NewUniform(color.NRGBA{A: 180}), image.Point{}, draw.Over)

	d.Dot = fixed.P(x, y+face.Ascent)
	d.DrawString(text)
}
