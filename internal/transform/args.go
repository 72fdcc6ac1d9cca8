package transform

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/image-alter-mcp/internal/imaging"
)

// pixels adapts an argument-free image function to a Func.
func pixels(fn func(image.Image) image.Image) Func {
	return func(h *imaging.Handle, _ any, _ int) (*imaging.Handle, error) {
		return h.Derive(fn(h.Image())), nil
	}
}

func noop(h *imaging.Handle, _ any, _ int) (*imaging.Handle, error) {
	return h.Derive(h.Image()), nil
}

// toFloat converts a decoded JSON number.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// number reads a scalar numeric argument, falling back to def when absent.
func number(args any, def float64) (float64, error) {
	if args == nil {
		return def, nil
	}
	f, ok := toFloat(args)
	if !ok {
		return 0, fmt.Errorf("expected a number, got %s", describe(args))
	}
	return f, nil
}

// object reads an argument that must be a JSON object.
func object(args any) (map[string]any, error) {
	m, ok := args.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %s", describe(args))
	}
	return m, nil
}

// field reads an optional numeric member of an object argument.
func field(m map[string]any, key string) (float64, bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, false, fmt.Errorf("%s: expected a number, got %s", key, describe(v))
	}
	return f, true, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case []any:
		return "a list"
	case map[string]any:
		return "an object"
	}
	return fmt.Sprintf("%T", v)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
