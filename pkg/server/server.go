package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/causeview/pkg/buildinfo"
	"github.com/matzehuels/causeview/pkg/cache"
	"github.com/matzehuels/causeview/pkg/driver"
	cverrors "github.com/matzehuels/causeview/pkg/errors"
	"github.com/matzehuels/causeview/pkg/scene"
)

// HelloHTML is the landing page body.
const HelloHTML = "<h1>Hello, World!</h1><p>This is a minimal causeview app running on Render!</p>"

const shutdownTimeout = 15 * time.Second

// Options configures a [Server].
type Options struct {
	Title  string // Viewer page title
	Height int    // Plot height in pixels
	// Cache memoises SVG documents per step. Nil disables memoisation.
	Cache   cache.Cache
	Metrics http.Handler // Served on /metrics when set
	Logger  *log.Logger
}

// Server serves the viewer for one driver.
type Server struct {
	driver *driver.Driver
	opts   Options
	logger *log.Logger
	svg    cache.Cache
}

// New creates a server for d.
func New(d *driver.Driver, opts Options) *Server {
	if opts.Title == "" {
		opts.Title = "Causality tree"
	}
	if opts.Height <= 0 {
		opts.Height = 800
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{driver: d, opts: opts, logger: logger}
	if opts.Cache != nil {
		s.svg = cache.NewInstrumented(opts.Cache, "svg")
	}
	return s
}

// Handler returns the full route tree.
func (s *Server) Handler() http.Handler {
	r := newRouter(s.logger)
	r.Get("/", hello)
	r.Get("/version", version)
	r.Get("/view", s.view)
	r.Route("/api", func(r chi.Router) {
		r.Get("/meta", s.meta)
		r.Get("/scene", s.sceneJSON)
		r.Get("/scene.svg", s.sceneSVG)
	})
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}
	return r
}

// HelloHandler serves only the landing page and health probe.
func HelloHandler(logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	r := newRouter(logger)
	r.Get("/", hello)
	return r
}

func newRouter(logger *log.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Get("/healthz", healthz)
	return r
}

func hello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(HelloHTML))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// Meta describes the loaded graph for the viewer.
type Meta struct {
	Title    string            `json:"title"`
	MinStep  int               `json:"min_step"`
	MaxStep  int               `json:"max_step"`
	Step     int               `json:"step"`
	Nodes    int               `json:"nodes"`
	Edges    int               `json:"edges"`
	Clusters map[string]string `json:"clusters"`
}

func (s *Server) meta(w http.ResponseWriter, _ *http.Request) {
	state := s.driver.State()
	writeJSON(w, http.StatusOK, Meta{
		Title:    s.opts.Title,
		MinStep:  state.MinStep,
		MaxStep:  state.MaxStep,
		Step:     s.driver.Step(),
		Nodes:    state.Graph.NodeCount(),
		Edges:    state.Graph.EdgeCount(),
		Clusters: state.Colors.Map(),
	})
}

// frame renders the step named by the query, or the current step. A query
// step is rendered for this request only; the driver's current step, as
// reported by /api/meta, is left alone.
func (s *Server) frame(r *http.Request) (*driver.Frame, error) {
	raw := r.URL.Query().Get("step")
	if raw == "" {
		return s.driver.Render(r.Context())
	}
	step, err := cverrors.ParseStep(raw)
	if err != nil {
		return nil, err
	}
	return s.driver.RenderStep(r.Context(), step)
}

func (s *Server) sceneJSON(w http.ResponseWriter, r *http.Request) {
	f, err := s.frame(r)
	if err != nil {
		s.logger.Debug("scene request failed", "err", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) sceneSVG(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f, err := s.frame(r)
	if err != nil {
		writeError(w, err)
		return
	}

	key := cache.Key("svg", s.driver.State().Fingerprint, f.Step, f.Strategy, s.opts.Height)
	if s.svg != nil {
		if data, hit, _ := s.svg.Get(ctx, key); hit {
			writeSVG(w, data)
			return
		}
	}

	var buf bytes.Buffer
	if err := scene.RenderSVG(&buf, f.Scene, scene.SVGOptions{Title: f.Title, Height: s.opts.Height}); err != nil {
		writeError(w, cverrors.Wrap(cverrors.ErrCodeInternal, err, "render svg"))
		return
	}
	if s.svg != nil {
		_ = s.svg.Set(ctx, key, buf.Bytes(), 0)
	}
	writeSVG(w, buf.Bytes())
}

func writeSVG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}
	return nil
}
