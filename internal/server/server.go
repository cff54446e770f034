package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Bridge is the set of operations the viewer window may call.
type Bridge interface {
	OpenMarkdown(ctx context.Context, path string) (string, error)
	SendMarkdownPath() (string, error)
}

// DefaultAddr listens on a random loopback port.
const DefaultAddr = "127.0.0.1:0"

// shutdownTimeout bounds graceful shutdown once the viewer exits.
const shutdownTimeout = 5 * time.Second

// maxBodyBytes caps API request bodies; requests carry a single path.
const maxBodyBytes = 64 << 10

// Server is the HTTP side of the viewer: shell page plus bridge API.
type Server struct {
	router chi.Router
	bridge Bridge
	token  string
	shell  []byte
	log    *slog.Logger
}

// Option configures a Server.
type Option func(*serverConfig)

type serverConfig struct {
	title string
	token string
	log   *slog.Logger
}

// WithTitle sets the shell page title.
func WithTitle(title string) Option {
	return func(c *serverConfig) {
		c.title = title
	}
}

// WithToken fixes the session token instead of generating one.
func WithToken(token string) Option {
	return func(c *serverConfig) {
		c.token = token
	}
}

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *serverConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// NewServer creates a Server answering bridge calls with bridge.
// shellTemplate is the html/template source of the shell page and css the
// stylesheet injected into it.
func NewServer(bridge Bridge, shellTemplate, css string, opts ...Option) (*Server, error) {
	cfg := serverConfig{title: DefaultTitle, log: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.token == "" {
		cfg.token = NewToken()
	}

	shell, err := buildShell(shellTemplate, css, cfg.title, cfg.token)
	if err != nil {
		return nil, err
	}

	s := &Server{
		bridge: bridge,
		token:  cfg.token,
		shell:  shell,
		log:    cfg.log,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Token returns the session token.
func (s *Server) Token() string {
	return s.token
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleShell)

	r.Route("/api", func(r chi.Router) {
		r.Use(TokenMiddleware(s.token, s.log))

		r.Post("/open_markdown", s.handleOpenMarkdown)
		r.Post("/send_markdown_path", s.handleSendMarkdownPath)
	})

	s.router = r
}

// Listen binds addr, which must name a loopback host. An empty addr uses DefaultAddr.
func Listen(addr string) (net.Listener, error) {
	if addr == "" {
		addr = DefaultAddr
	}
	if err := checkLoopback(addr); err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}
	return ln, nil
}

func checkLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNonLoopback, err)
	}
	if host == "localhost" {
		return nil
	}
	ip := net.ParseIP(host)
	if ip == nil || !ip.IsLoopback() {
		return fmt.Errorf("%w: %q", ErrNonLoopback, addr)
	}
	return nil
}

// ShellURL returns the address of the shell page served on ln, token included.
func (s *Server) ShellURL(ln net.Listener) string {
	u := url.URL{
		Scheme:   "http",
		Host:     ln.Addr().String(),
		Path:     "/",
		RawQuery: url.Values{"token": {s.token}}.Encode(),
	}
	return u.String()
}

// Serve handles requests on ln until ctx ends, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
