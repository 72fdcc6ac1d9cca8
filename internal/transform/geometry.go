package transform

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	img "github.com/ironsheep/image-alter-mcp/internal/imaging"
)

// resampler picks a resize filter: cheap below quality 50, Lanczos above.
func resampler(quality int) imaging.ResampleFilter {
	if quality < 50 {
		return imaging.Box
	}
	return imaging.Lanczos
}

// rotate turns the image clockwise. Multiples of 90 are lossless; other
// angles grow the canvas and fill the corners with transparency.
func rotate(h *img.Handle, args any, _ int) (*img.Handle, error) {
	deg, err := number(args, 0)
	if err != nil {
		return nil, fmt.Errorf("rotate: %w", err)
	}
	// imaging rotates counter-clockwise.
	return h.Derive(imaging.Rotate(h.Image(), -deg, color.Transparent)), nil
}

// cropBox reads {x1,y1,x2,y2} or [x1,y1,x2,y2], each a fraction of the
// image size.
func cropBox(args any) ([4]float64, error) {
	var box [4]float64
	switch a := args.(type) {
	case []any:
		if len(a) != 4 {
			return box, fmt.Errorf("expected 4 coordinates, got %d", len(a))
		}
		for i, v := range a {
			f, ok := toFloat(v)
			if !ok {
				return box, fmt.Errorf("coordinate %d: expected a number, got %s", i, describe(v))
			}
			box[i] = f
		}
	case map[string]any:
		for i, key := range []string{"x1", "y1", "x2", "y2"} {
			f, ok, err := field(a, key)
			if err != nil {
				return box, err
			}
			if !ok {
				return box, fmt.Errorf("missing %s", key)
			}
			box[i] = f
		}
	default:
		return box, fmt.Errorf("expected an object or a list, got %s", describe(args))
	}

	for _, f := range box {
		if f < 0 || f > 1 {
			return box, fmt.Errorf("coordinates must be fractions between 0 and 1")
		}
	}
	if box[0] >= box[2] || box[1] >= box[3] {
		return box, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	return box, nil
}

// crop extracts the fractional region described by args.
func crop(h *img.Handle, args any, _ int) (*img.Handle, error) {
	box, err := cropBox(args)
	if err != nil {
		return nil, fmt.Errorf("crop: %w", err)
	}

	bounds := h.Image().Bounds()
	w, ht := float64(bounds.Dx()), float64(bounds.Dy())
	rect := image.Rect(
		bounds.Min.X+int(math.Round(box[0]*w)),
		bounds.Min.Y+int(math.Round(box[1]*ht)),
		bounds.Min.X+int(math.Round(box[2]*w)),
		bounds.Min.Y+int(math.Round(box[3]*ht)),
	)
	if rect.Empty() {
		return nil, fmt.Errorf("crop: region %v of %v is empty", rect, bounds)
	}

	return h.Derive(imaging.Crop(h.Image(), rect)), nil
}

// fitBox reads {maxwidth, maxheight}; a missing side is unconstrained.
func fitBox(name string, h *img.Handle, args any) (int, int, error) {
	m, err := object(args)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", name, err)
	}
	mw, okW, err := field(m, "maxwidth")
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", name, err)
	}
	mh, okH, err := field(m, "maxheight")
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", name, err)
	}
	if !okW && !okH {
		return 0, 0, fmt.Errorf("%s: expected maxwidth and/or maxheight", name)
	}
	if (okW && mw < 1) || (okH && mh < 1) {
		return 0, 0, fmt.Errorf("%s: bounds must be at least 1 pixel", name)
	}

	// Fit never enlarges, so the current size bounds both sides.
	if !okW || mw > float64(h.Width()) {
		mw = float64(h.Width())
	}
	if !okH || mh > float64(h.Height()) {
		mh = float64(h.Height())
	}
	return int(mw), int(mh), nil
}

// scale shrinks the image to fit the box. Images already inside it are
// copied unchanged.
func scale(h *img.Handle, args any, quality int) (*img.Handle, error) {
	w, ht, err := fitBox("scale", h, args)
	if err != nil {
		return nil, err
	}
	return h.Derive(imaging.Fit(h.Image(), w, ht, resampler(quality))), nil
}

// thumbnail is scale with the fastest filters.
func thumbnail(h *img.Handle, args any, quality int) (*img.Handle, error) {
	w, ht, err := fitBox("thumbnail", h, args)
	if err != nil {
		return nil, err
	}
	filter := imaging.Box
	if quality < 50 {
		filter = imaging.NearestNeighbor
	}
	return h.Derive(imaging.Fit(h.Image(), w, ht, filter)), nil
}

// swirl twists pixels around the center. The twist is strongest in the
// middle and fades to zero at the inscribed circle's edge.
func swirl(h *img.Handle, args any, _ int) (*img.Handle, error) {
	deg, err := number(args, 90)
	if err != nil {
		return nil, fmt.Errorf("swirl: %w", err)
	}

	src := imaging.Clone(h.Image())
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	radius := math.Min(cx, cy)
	theta := deg * math.Pi / 180

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			sx, sy := x, y
			if d := math.Hypot(dx, dy); d < radius && radius > 0 {
				f := 1 - d/radius
				a := theta * f * f
				sin, cos := math.Sincos(a)
				sx = int(math.Round(cx + dx*cos - dy*sin))
				sy = int(math.Round(cy + dx*sin + dy*cos))
				sx = clampInt(sx, 0, b.Dx()-1)
				sy = clampInt(sy, 0, b.Dy()-1)
			}
			si := src.PixOffset(sx, sy)
			di := dst.PixOffset(x, y)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return h.Derive(dst), nil
}
