package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smartbartender/internal/domain"
)

// DefaultSiteURL is where logged-in users are sent.
const DefaultSiteURL = "https://smartbartender.my.canva.site/dag-sgpflmm"

//go:embed templates/*.html
var templateFS embed.FS

// Options configures a Server.
type Options struct {
	// SiteURL is the external link shown after a successful login.
	SiteURL string
	// StaticDir is served under /static. Empty disables static files.
	StaticDir string
	// ShutdownTimeout bounds graceful shutdown in Serve.
	ShutdownTimeout time.Duration
}

// Server is the login gate's HTTP front end.
type Server struct {
	creds  domain.CredentialService
	opts   Options
	logger *zap.Logger
	engine *gin.Engine
}

// New builds the gin engine and registers every route.
func New(creds domain.CredentialService, opts Options, logger *zap.Logger) (*Server, error) {
	if opts.SiteURL == "" {
		opts.SiteURL = DefaultSiteURL
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)

	s := &Server{
		creds:  creds,
		opts:   opts,
		logger: logger.Named("web"),
		engine: engine,
	}
	engine.Use(s.accessLog(), s.recovery())
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.engine

	r.GET("/", s.handleHome)

	r.GET("/register", s.handleRegisterForm)
	r.POST("/register", s.handleRegister)

	r.GET("/forgot", s.handleForgotForm)
	r.POST("/forgot", s.handleForgot)

	r.GET("/login", s.handleLoginForm)
	r.POST("/login", s.handleLogin)

	r.GET("/logout", s.handleLogout)

	if s.opts.StaticDir != "" {
		r.Static("/static", s.opts.StaticDir)
	}

	r.NoRoute(s.handleNotFound)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Serve answers requests on ln until ctx is cancelled, then shuts down
// gracefully within Options.ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
