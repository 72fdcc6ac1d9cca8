// Package pipeline parses transformation lists and runs them in order
// against an image handle.
package pipeline

import (
	imgerr "github.com/ironsheep/image-alter-mcp/internal/errors"
)

// Spec is one parsed entry of a transformation list. It is either a bare
// command ("grayscale") or a command with an argument ({"rotate": 90}).
type Spec struct {
	Command string
	Args    any
	// HasArgs is true for the object form even when the value is null.
	HasArgs bool
}

// Named builds an argument-less spec.
func Named(command string) Spec {
	return Spec{Command: command}
}

// NamedWithArgs builds a spec carrying an argument.
func NamedWithArgs(command string, args any) Spec {
	return Spec{Command: command, Args: args, HasArgs: true}
}

// Parse converts decoded JSON values into specs. Every entry is checked
// before any is looked up, so a malformed entry anywhere in the list fails
// the whole request without running anything.
func Parse(raw []any) ([]Spec, error) {
	specs := make([]Spec, 0, len(raw))
	for i, v := range raw {
		switch entry := v.(type) {
		case string:
			specs = append(specs, Named(entry))
		case map[string]any:
			if len(entry) != 1 {
				return nil, imgerr.Newf(imgerr.MalformedTransformSpec,
					"transform %d is malformed. An action is an object with a single property which is the action name", i)
			}
			for command, args := range entry {
				specs = append(specs, NamedWithArgs(command, args))
			}
		default:
			return nil, imgerr.Newf(imgerr.MalformedTransformSpec,
				"transform %d is malformed. An action is either a string or an object with a single property which is the name of an action to perform", i)
		}
	}
	return specs, nil
}
