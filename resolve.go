package layeredroot

import (
	"log/slog"
	"os"
	"path"

	"github.com/spf13/afero"
)

// Override is the outcome of a successful layer resolution: the candidate
// path that should be served instead of the document-root mapping, together
// with the metadata obtained while probing it. The host can serve the file
// from Info without re-statting.
type Override struct {
	Path string
	Info os.FileInfo
}

// Resolver walks a scope's layer list and decides whether a request's file
// mapping should be overridden. It is a pure function of its inputs plus
// filesystem state; a single Resolver is safe for concurrent use from any
// number of request workers.
type Resolver struct {
	fs     afero.Fs
	logger *slog.Logger
}

// Option is a functional option for configuring a Resolver.
type Option func(*Resolver)

// WithFs sets the filesystem the Resolver probes. Defaults to the host OS
// filesystem.
func WithFs(fs afero.Fs) Option {
	return func(r *Resolver) {
		r.fs = fs
	}
}

// WithLogger sets the logger used for debug-level probe tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver with the specified options.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		fs:     afero.NewOsFs(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve checks each configured layer in declared order for a file
// matching reqPath and returns the first hit as an Override, or nil when
// the request should fall through to the server's normal document-root
// mapping.
//
// Earlier layers strictly take precedence over later ones and over the
// document root. Resolution never fails: an unreadable or misconfigured
// layer degrades to "skip this layer".
func (r *Resolver) Resolve(cfg EffectiveConfig, docRoot, reqPath string) *Override {
	if !cfg.Enabled {
		return nil
	}
	for _, layer := range cfg.Layers {
		candidate := joinCandidate(layer, docRoot, reqPath)
		info := r.probe(candidate)
		if info == nil {
			continue
		}
		r.logger.Debug("layer override", "layer", layer, "path", candidate)
		return &Override{Path: candidate, Info: info}
	}
	return nil
}

// joinCandidate builds the candidate path for one layer. An absolute layer
// directory stands on its own; a relative one is anchored at the request
// scope's document root. Cleaning is purely syntactic (redundant separators
// and dot segments); symlinks are not resolved and no traversal
// sanitization is applied here.
func joinCandidate(layerDir, docRoot, reqPath string) string {
	if path.IsAbs(layerDir) {
		return path.Clean(path.Join(layerDir, reqPath))
	}
	return path.Clean(path.Join(docRoot, layerDir, reqPath))
}
