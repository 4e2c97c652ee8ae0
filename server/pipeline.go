// Package server wires layered document-root resolution into a static file
// server. The request pipeline mirrors the two host collaboration phases
// the resolver plugs into: path translation (scope lookup, override
// deferral) and map-to-storage (final filename and metadata assignment).
package server

import (
	"os"
	"path"

	"github.com/spf13/afero"

	"github.com/layerkit/layeredroot"
)

// PhaseResult is returned by a pipeline hook.
type PhaseResult int

const (
	// Decline lets the pipeline's default handling proceed.
	Decline PhaseResult = iota
	// Mapped means the request's filename and metadata are final; the
	// default document-root mapping is skipped.
	Mapped
)

// Request is the per-request state threaded through the pipeline. Created
// fresh for each request and discarded with it.
type Request struct {
	Host         string
	URIPath      string
	DocumentRoot string
	Config       layeredroot.EffectiveConfig

	// Filename and FileInfo are the mapping outcome. When Overridden is
	// set they came from a layer and were validated during resolution; no
	// further stat is needed to serve the file.
	Filename   string
	FileInfo   os.FileInfo
	Overridden bool

	overrideDeferred bool
}

// TranslateFunc runs in the path-translation phase, once per request,
// before any file mapping.
type TranslateFunc func(*Request) PhaseResult

// MapFunc runs in the map-to-storage phase and may finalize the request's
// filename and metadata.
type MapFunc func(*Request) PhaseResult

// Pipeline holds the registered phase hooks. Hooks are registered once at
// startup; Run may then be called concurrently from any number of request
// workers.
type Pipeline struct {
	translate    []TranslateFunc
	mapToStorage []MapFunc
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// OnTranslate registers a path-translation hook.
func (p *Pipeline) OnTranslate(fn TranslateFunc) {
	p.translate = append(p.translate, fn)
}

// OnMapToStorage registers a map-to-storage hook.
func (p *Pipeline) OnMapToStorage(fn MapFunc) {
	p.mapToStorage = append(p.mapToStorage, fn)
}

// Run drives one request through both phases. If no hook maps the request,
// the default document-root mapping applies: the URI path is joined under
// the scope's document root and statted. The returned error is the stat
// failure of that default mapping only; hooks never produce errors.
func (p *Pipeline) Run(req *Request, fsys afero.Fs) error {
	for _, fn := range p.translate {
		if fn(req) == Mapped {
			break
		}
	}
	for _, fn := range p.mapToStorage {
		if fn(req) == Mapped {
			return nil
		}
	}

	req.Filename = path.Clean(path.Join(req.DocumentRoot, req.URIPath))
	info, err := fsys.Stat(req.Filename)
	if err != nil {
		return err
	}
	req.FileInfo = info
	return nil
}

// Register hooks layered document-root resolution into a pipeline. Called
// exactly once at startup, before the pipeline serves requests.
//
// The translate hook only notes that an override should be attempted
// (filename assignment is deferred) and declines so routing proceeds
// normally. The map hook then runs the resolver: on a hit it assigns the
// resolved path and metadata and maps the request, bypassing the default
// stat-based mapping; on a miss it declines with no side effects.
func Register(p *Pipeline, resolver *layeredroot.Resolver) {
	p.OnTranslate(func(req *Request) PhaseResult {
		if req.Config.Enabled {
			req.overrideDeferred = true
		}
		return Decline
	})
	p.OnMapToStorage(func(req *Request) PhaseResult {
		if !req.overrideDeferred {
			return Decline
		}
		ov := resolver.Resolve(req.Config, req.DocumentRoot, req.URIPath)
		if ov == nil {
			return Decline
		}
		req.Filename = ov.Path
		req.FileInfo = ov.Info
		req.Overridden = true
		return Mapped
	})
}
