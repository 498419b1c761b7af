package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/Jacobo0312/dockerize-frontend-app/internal/application"
	"github.com/Jacobo0312/dockerize-frontend-app/internal/config"
	"github.com/Jacobo0312/dockerize-frontend-app/internal/injector"
	"github.com/Jacobo0312/dockerize-frontend-app/internal/launcher"
	"github.com/Jacobo0312/dockerize-frontend-app/internal/logging"
	"github.com/Jacobo0312/dockerize-frontend-app/internal/resolver"
)

var signalNotify = signal.Notify

// buildEnv carries configuration values baked in at build time, as a
// comma-separated KEY=VALUE list. Populate it with:
//
//	go build -ldflags "-X 'main.buildEnv=STAGE=PROD,API_URL=https://example.com/api'"
//
// Values set here take precedence over the runtime-injected ones.
var buildEnv string

func main() {
	app := kingpin.New("frontenv", "Injects environment configuration into a static frontend at container start, so one image serves every deployment stage.")
	debug := app.Flag("debug", "Enable console logging at debug level").Bool()
	configFile := app.Flag("config", "Path to YAML configuration file").String()
	rootFlag := app.Flag("root", "Document root holding the frontend build artifact").String()
	markerFlag := app.Flag("marker", "Placeholder marker replaced by the inject command").String()

	injectCmd := app.Command("inject", "Replace the placeholder marker in the HTML entry document with the config script tag (build time).")
	injectIn := injectCmd.Flag("in", "HTML document to transform").Default("index.html").String()
	injectOut := injectCmd.Flag("out", "Output path (defaults to transforming in place)").String()

	generateCmd := app.Command("generate", "Write the runtime config script from the current environment and exit (container start time).")

	runCmd := app.Command("run", "Generate the config script, then exec the given server command in place.")
	runArgs := runCmd.Arg("command", "Server command and arguments").Required().Strings()

	serveCmd := app.Command("serve", "Generate the config script, then serve the document root with the built-in static server.")
	servePort := serveCmd.Flag("port", "HTTP port exposed by the server").String()
	serveRPS := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	serveBurst := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	getCmd := app.Command("get", "Resolve a configuration key (build-time values first, then the generated script) and print it.")
	getKey := getCmd.Arg("key", "Configuration key to resolve").Required().String()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cli := &config.Layer{
		Root:   *rootFlag,
		Marker: *markerFlag,
	}
	if *servePort != "" {
		cli.Port = *servePort
	}
	if *serveRPS >= 0 {
		cli.RateLimitRPS = serveRPS
	}
	if *serveBurst >= 0 {
		cli.RateLimitBurst = serveBurst
	}

	cfg, err := config.Load(cli, *configFile)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(*debug)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	switch command {
	case injectCmd.FullCommand():
		runInject(cfg, *injectIn, *injectOut, logger)
	case generateCmd.FullCommand():
		runGenerate(cfg, logger)
	case runCmd.FullCommand():
		runExec(cfg, *runArgs, logger)
	case serveCmd.FullCommand():
		runServe(cfg, logger)
	case getCmd.FullCommand():
		runGet(cfg, *getKey)
	}
}

func runInject(cfg config.Config, in, out string, logger *zap.Logger) {
	if out == "" {
		out = in
	}

	injected, err := injector.InjectFile(in, out, cfg.Marker, cfg.ScriptSrc())
	if err != nil {
		logger.Fatal("failed to transform document", zap.Error(err))
	}
	if !injected {
		logger.Warn("placeholder marker not found, document left unchanged",
			zap.String("marker", cfg.Marker),
			zap.String("in", in),
		)
		return
	}
	logger.Info("script tag injected",
		zap.String("out", out),
		zap.String("src", cfg.ScriptSrc()),
	)
}

func runGenerate(cfg config.Config, logger *zap.Logger) {
	injected, err := application.Generate(cfg)
	if err != nil {
		logger.Fatal("failed to generate config script", zap.Error(err))
	}
	logger.Info("config script generated",
		zap.String("path", cfg.ScriptPath()),
		zap.Strings("keys", injected),
	)
}

func runExec(cfg config.Config, argv []string, logger *zap.Logger) {
	runGenerate(cfg, logger)

	// Only returns on failure; on success the server replaces this process.
	if err := launcher.Exec(argv, os.Environ()); err != nil {
		logger.Fatal("failed to exec server command", zap.Error(err))
	}
}

func runServe(cfg config.Config, logger *zap.Logger) {
	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

func runGet(cfg config.Config, key string) {
	runtime, err := resolver.Load(cfg.ScriptPath(), cfg.GlobalName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config script: %v\n", err)
		os.Exit(1)
	}

	r := resolver.New(resolver.ParseStatic(buildEnv), runtime)
	if value, ok := r.Lookup(key); ok {
		fmt.Println(value)
	}
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
