package server

import (
	"log/slog"
	"net/http"

	"github.com/spf13/afero"

	"github.com/layerkit/layeredroot/conf"
)

// Handler serves files for a loaded site configuration, running each
// request through the pipeline before serving the mapped file.
type Handler struct {
	site      *conf.Site
	pipeline  *Pipeline
	fs        afero.Fs
	logger    *slog.Logger
	accessLog bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithFs sets the filesystem files are served from.
func WithFs(fsys afero.Fs) HandlerOption {
	return func(h *Handler) {
		h.fs = fsys
	}
}

// WithLogger sets the handler's logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithAccessLog toggles per-request info logging.
func WithAccessLog(enabled bool) HandlerOption {
	return func(h *Handler) {
		h.accessLog = enabled
	}
}

// NewHandler builds a Handler over a loaded site and a pipeline that has
// had its hooks registered.
func NewHandler(site *conf.Site, pipeline *Pipeline, opts ...HandlerOption) *Handler {
	h := &Handler{
		site:      site,
		pipeline:  pipeline,
		fs:        afero.NewOsFs(),
		logger:    slog.Default(),
		accessLog: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	docRoot, cfg := h.site.Scope(r.Host, r.URL.Path)

	req := &Request{
		Host:         r.Host,
		URIPath:      r.URL.Path,
		DocumentRoot: docRoot,
		Config:       cfg,
	}
	if err := h.pipeline.Run(req, h.fs); err != nil {
		h.logger.Debug("mapping failed", "host", req.Host, "path", req.URIPath, "error", err)
		http.NotFound(w, r)
		return
	}
	if req.FileInfo.IsDir() {
		// Directory listing is not served here.
		http.NotFound(w, r)
		return
	}

	f, err := h.fs.Open(req.Filename)
	if err != nil {
		h.logger.Debug("open failed", "file", req.Filename, "error", err)
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	if h.accessLog {
		h.logger.Info("request",
			"host", req.Host,
			"path", req.URIPath,
			"file", req.Filename,
			"layered", req.Overridden,
		)
	}
	http.ServeContent(w, r, req.FileInfo.Name(), req.FileInfo.ModTime(), f)
}
