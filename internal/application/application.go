package application

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Jacobo0312/dockerize-frontend-app/internal/config"
	"github.com/Jacobo0312/dockerize-frontend-app/internal/envscript"
	"github.com/Jacobo0312/dockerize-frontend-app/internal/server"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	router http.Handler
	logger *zap.Logger
	server *http.Server
}

// Generate runs the startup generator: it collects the whitelisted variables
// from the process environment and writes the config script under the
// document root. It returns the injected variable names for logging.
func Generate(cfg config.Config) ([]string, error) {
	values := envscript.Collect(os.Environ(), cfg.Prefixes, cfg.ExactMatch)
	if err := envscript.Write(cfg.ScriptPath(), cfg.GlobalName, values); err != nil {
		return nil, fmt.Errorf("generate config script: %w", err)
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	return names, nil
}

// New runs the generator and wires the static server. Generation happens
// before the server is constructed, so by the time Start opens the listener
// the config script is already on disk: a page load can never race the file.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	injected, err := Generate(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("config script generated",
		zap.String("path", cfg.ScriptPath()),
		zap.Int("keys", len(injected)),
	)

	handler := server.NewHandler(cfg.ScriptPath(), cfg.ScriptSrc())
	router := server.NewRouter(handler, cfg.Root, logger,
		server.WithLogging(cfg.EnableRequestLogging),
		server.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		router: router,
		logger: logger,
		server: NewServer(cfg, router),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
