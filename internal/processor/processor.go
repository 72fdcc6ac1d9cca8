// Package processor drives a transform request end to end: read the input
// file, decode it, run the transformation pipeline, encode the result and
// write it into the caller's temp directory.
package processor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	imgerr "github.com/ironsheep/image-alter-mcp/internal/errors"
	"github.com/ironsheep/image-alter-mcp/internal/format"
	"github.com/ironsheep/image-alter-mcp/internal/imaging"
	"github.com/ironsheep/image-alter-mcp/internal/pipeline"
)

// outputStem names converted outputs: img.<ext>.
const outputStem = "img"

// maxNameAttempts bounds the search for a free output name.
const maxNameAttempts = 1000

// Request is one transform request.
type Request struct {
	InputPath string
	TempDir   string
	// OutputFormat is the target encoding; format.Unknown keeps the
	// decoded format and the input's base name.
	OutputFormat    format.Token
	Transformations []any
	// Quality is clamped to 0-100.
	Quality int
}

// Result describes a written output file.
type Result struct {
	OutputPath string       `json:"file"`
	Format     format.Token `json:"format"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	OrigWidth  int          `json:"orig_width"`
	OrigHeight int          `json:"orig_height"`
}

// Pipeline runs a transformation list against a handle it takes ownership of.
type Pipeline interface {
	Apply(h *imaging.Handle, raw []any, quality int) (*imaging.Handle, error)
}

// Processor executes requests. It keeps no per-request state, so one
// Processor may serve any number of sequential or concurrent requests as
// long as they write to different temp directories.
type Processor struct {
	codec   imaging.Codec
	formats *format.Registry
	exec    Pipeline
	logger  *zap.Logger

	// create opens a fresh output file; replaced in tests.
	create func(dir, stem, ext string) (io.WriteCloser, string, error)
}

// New wires a processor from its collaborators.
func New(codec imaging.Codec, formats *format.Registry, exec *pipeline.Executor, logger *zap.Logger) *Processor {
	return newProcessor(codec, formats, exec, logger)
}

func newProcessor(codec imaging.Codec, formats *format.Registry, exec Pipeline, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		codec:   codec,
		formats: formats,
		exec:    exec,
		logger:  logger.Named("processor"),
		create:  openOutput,
	}
}

// ClampQuality limits q to 0-100.
func ClampQuality(q int) int {
	if q > 100 {
		return 100
	}
	if q < 0 {
		return 0
	}
	return q
}

// ChangeImage runs req. Exactly one of the return values is non-nil. No
// output file or directory exists unless the whole request succeeded.
func (p *Processor) ChangeImage(req Request) (*Result, error) {
	quality := ClampQuality(req.Quality)

	data, err := p.readFile(req.InputPath)
	if err != nil {
		return nil, err
	}

	h, err := p.codec.Decode(data)
	if err != nil {
		h.Release()
		return nil, imgerr.Wrap(imgerr.Decode, "couldn't read image", err)
	}
	p.logger.Debug("decoded image",
		zap.String("format", h.Format()),
		zap.Int("width", h.Width()),
		zap.Int("height", h.Height()),
		zap.Int("quality", quality))

	h, err = p.exec.Apply(h, req.Transformations, quality)
	if err != nil {
		return nil, err
	}
	defer h.Release()

	base := filepath.Base(req.InputPath)
	stem, ext := strings.TrimSuffix(base, filepath.Ext(base)), ""
	if req.OutputFormat != format.Unknown {
		if p.formats != nil && p.formats.MIME(req.OutputFormat) == "" {
			return nil, imgerr.Newf(imgerr.Encode, "unsupported output format: %s", req.OutputFormat)
		}
		stem, ext = outputStem, "."+format.ToExtension(req.OutputFormat)
		h.SetFormat(string(req.OutputFormat))
		p.logger.Debug("output format forced", zap.String("format", string(req.OutputFormat)))
	}

	blob, err := p.codec.Encode(h, quality)
	if err != nil {
		return nil, imgerr.Wrap(imgerr.Encode, "ImageToBlob failed", err)
	}

	if err := os.MkdirAll(req.TempDir, 0o755); err != nil {
		p.logger.Error("creating temp dir", zap.String("dir", req.TempDir), zap.Error(err))
		return nil, imgerr.Wrap(imgerr.DirectoryCreate, "Couldn't create temp dir", err)
	}

	path, err := p.writeFile(req.TempDir, stem, ext, blob)
	if err != nil {
		return nil, err
	}

	res := &Result{
		OutputPath: path,
		Format:     format.Token(h.Format()),
		Width:      h.Width(),
		Height:     h.Height(),
		OrigWidth:  h.OrigWidth(),
		OrigHeight: h.OrigHeight(),
	}
	p.logger.Info("image written",
		zap.String("path", res.OutputPath),
		zap.Int("bytes", len(blob)),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height))
	return res, nil
}

// readFile loads the whole input into memory. Each way it can fail is
// reported separately.
func (p *Processor) readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, imgerr.New(imgerr.FileAccess, "couldn't read image: no input path")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, imgerr.Wrap(imgerr.FileAccess, "couldn't read image", fmt.Errorf("couldn't open file for reading: %w", err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, imgerr.Wrap(imgerr.FileAccess, "couldn't read image", fmt.Errorf("couldn't determine file length: %w", err))
	}
	size := info.Size()
	if size <= 0 {
		return nil, imgerr.Newf(imgerr.FileAccess, "couldn't read image: %s is empty", path)
	}

	p.logger.Debug("reading input", zap.String("path", path), zap.Int64("bytes", size))
	buf := make([]byte, size)
	n, err := io.ReadFull(f, buf)
	if err != nil {
		return nil, imgerr.Newf(imgerr.FileAccess, "couldn't read image: partial read, got %d of %d bytes: %v", n, size, err)
	}
	return buf, nil
}

// writeFile stores blob under dir as stem+ext, or the first free numbered
// variant of it, and returns the absolute path. A file that could not be
// completely written is removed.
func (p *Processor) writeFile(dir, stem, ext string, blob []byte) (string, error) {
	f, path, err := p.create(dir, stem, ext)
	if err != nil {
		p.logger.Error("opening output", zap.String("dir", dir), zap.String("name", stem+ext), zap.Error(err))
		return "", imgerr.Wrap(imgerr.Write, "Error saving output image", err)
	}

	n, werr := f.Write(blob)
	cerr := f.Close()
	if werr == nil && n != len(blob) {
		werr = io.ErrShortWrite
	}
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		p.logger.Error("bad write", zap.String("path", path), zap.Int("written", n), zap.Int("bytes", len(blob)), zap.Error(werr))
		_ = os.Remove(path)
		return "", imgerr.Wrap(imgerr.Write, "Error saving output image", werr)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

func openOutput(dir, stem, ext string) (io.WriteCloser, string, error) {
	f, path, err := createUnique(dir, stem, ext)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// createUnique opens a new file named stem+ext in dir. If it already
// exists, a counter is appended to the stem: img.png, img-1.png, img-2.png.
func createUnique(dir, stem, ext string) (*os.File, string, error) {
	for i := 0; i < maxNameAttempts; i++ {
		candidate := stem + ext
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s%s in %s", stem, ext, dir)
}
