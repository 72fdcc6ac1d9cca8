package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	imgerr "github.com/ironsheep/image-alter-mcp/internal/errors"
	"github.com/ironsheep/image-alter-mcp/internal/imaging"
	"github.com/ironsheep/image-alter-mcp/internal/transform"
)

// Lookup resolves a command name to its transformation.
type Lookup interface {
	Get(name string) (*transform.Descriptor, bool)
}

// Executor applies transformation lists. It holds no per-request state and
// may be shared.
type Executor struct {
	reg    Lookup
	logger *zap.Logger
}

// NewExecutor returns an executor resolving commands through reg. A nil
// logger disables logging.
func NewExecutor(reg Lookup, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{reg: reg, logger: logger.Named("pipeline")}
}

// Apply runs raw against h and returns the final handle.
//
// Apply takes ownership of h. On success the returned handle belongs to the
// caller and every intermediate has been released. On error the result is
// nil and every handle, h included, has been released. Only the first error
// is reported; later entries are not run.
func (e *Executor) Apply(h *imaging.Handle, raw []any, quality int) (*imaging.Handle, error) {
	specs, err := Parse(raw)
	if err != nil {
		h.Release()
		return nil, err
	}

	e.logger.Debug("transformation actions specified", zap.Int("count", len(specs)))

	current := h
	for _, spec := range specs {
		next, err := e.step(current, spec, quality)
		if err != nil {
			current.Release()
			return nil, err
		}
		if next != current {
			current.Release()
		}
		current = next
	}
	return current, nil
}

func (e *Executor) step(h *imaging.Handle, spec Spec, quality int) (*imaging.Handle, error) {
	with := "without"
	if spec.HasArgs {
		with = "with"
	}
	e.logger.Debug("transform ["+spec.Command+"] "+with+" args", zap.Any("args", spec.Args))

	desc, ok := e.reg.Get(spec.Command)
	if !ok {
		return nil, imgerr.Newf(imgerr.UnknownTransformation, "no such transformation: %s", spec.Command)
	}
	if desc.RequiresArgs && !spec.HasArgs {
		return nil, imgerr.Newf(imgerr.ArgumentContractViolation, "%s missing required argument", spec.Command)
	}
	if !desc.AcceptsArgs && spec.HasArgs {
		return nil, imgerr.Newf(imgerr.ArgumentContractViolation, "%s doesn't accept arguments", spec.Command)
	}

	next, err := e.run(desc, h, spec, quality)
	if err != nil {
		if next != nil && next != h {
			next.Release()
		}
		return nil, imgerr.Wrap(imgerr.TransformationExecution, "", err)
	}
	if next == nil {
		return nil, imgerr.Newf(imgerr.TransformationExecution, "%s produced no image", spec.Command)
	}
	if next.Width() == 0 || next.Height() == 0 {
		if next != h {
			next.Release()
		}
		return nil, imgerr.Newf(imgerr.TransformationExecution, "%s produced an empty image", spec.Command)
	}
	return next, nil
}

// run calls the transformation, turning a panic into an error so one bad
// request cannot take the server down.
func (e *Executor) run(desc *transform.Descriptor, h *imaging.Handle, spec Spec, quality int) (next *imaging.Handle, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("transformation panicked",
				zap.String("command", spec.Command),
				zap.Any("panic", r))
			next, err = nil, fmt.Errorf("%s failed: %v", spec.Command, r)
		}
	}()
	return desc.Apply(h, spec.Args, quality)
}
