// internal/httpserver/server.go
//
// HTTP server wiring for the Brain Buzzer backend.
// Responsibilities:
//   - Router + middleware (request IDs, access logs, panic recovery, timeouts,
//     JSON content type, CORS, Prometheus instrumentation).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Number game endpoints: GET /api/generate, POST /api/check.
//   - Quiz endpoints: mounted under /api/puzzle.
//
// Notes:
//   - Every endpoint is stateless; clients echo the target number or the
//     puzzle id/question back on each check.
//   - CORS defaults to any origin without credentials, which is what the
//     static browser frontend needs.

package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/metrics"
	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/numbergame"
	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/puzzles"
)

const welcomeMessage = "Welcome to Brain Buzzer Backend!"

// Options carries the server's collaborators. Numbers and Puzzles are required;
// a nil Metrics disables instrumentation and the /metrics endpoint.
type Options struct {
	Numbers        *numbergame.Engine
	Puzzles        *puzzles.Catalog
	Metrics        *metrics.Metrics
	Logger         *zerolog.Logger
	AllowedOrigins []string
	Timeout        time.Duration
}

// Server bundles the router, game engines and HTTP server.
type Server struct {
	r        *chi.Mux
	http     *http.Server
	numbers  *numbergame.Engine
	puzzles  *puzzles.Catalog
	metrics  *metrics.Metrics
	validate *validator.Validate
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		numbers:  opts.Numbers,
		puzzles:  opts.Puzzles,
		metrics:  opts.Metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.http = &http.Server{Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)         // add X-Request-ID
	s.r.Use(chimw.RealIP)            // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(logger)) // request-scoped logger
	s.r.Use(requestIDField)          // tag request logs with the chi request id
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)        // recover from panics
	s.r.Use(s.metrics.Middleware)   // no-op when metrics are disabled
	s.r.Use(chimw.Timeout(timeout)) // bound handler time
	s.r.Use(jsonContentType)        // default JSON responses
	s.r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
	})
	s.r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		s.r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	// --- games ---
	s.r.Route("/api", func(r chi.Router) {
		s.mountNumber(r)
		s.mountPuzzle(r)
	})

	// JSON 404/405 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until Shutdown is called.
// It returns http.ErrServerClosed after a graceful shutdown.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Info().Str("addr", ln.Addr().String()).Msg("http server listening")
	return s.http.Serve(ln)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error { return s.http.Shutdown(ctx) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// healthRes is returned by GET /health.
type healthRes struct {
	OK      bool  `json:"ok"`
	Puzzles int   `json:"puzzles"`
	Rounds  []int `json:"rounds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthRes{OK: true, Puzzles: s.puzzles.Len(), Rounds: s.puzzles.Rounds()})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestIDField adds chi's request id to the request-scoped zerolog logger.
func requestIDField(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, dur time.Duration) {
	ev := hlog.FromRequest(r).Info()
	if status >= http.StatusInternalServerError {
		ev = hlog.FromRequest(r).Error()
	}
	ev.Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", dur).
		Msg("request")
}
