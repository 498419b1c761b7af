package application

import (
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/Jacobo0312/dockerize-frontend-app/internal/config"
)

func TestGenerateWritesScript(t *testing.T) {
	t.Setenv("STAGE", "QAS")
	t.Setenv("API_URL", "http://example.qas.com/api")

	cfg := baseTestConfig(t, ":8085")
	injected, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	slices.Sort(injected)
	if want := []string{"API_URL", "STAGE"}; !slices.Equal(injected, want) {
		t.Fatalf("expected injected names %v, got %v", want, injected)
	}

	data, err := os.ReadFile(cfg.ScriptPath())
	if err != nil {
		t.Fatalf("expected generated script: %v", err)
	}
	if !strings.Contains(string(data), `"STAGE": "QAS"`) {
		t.Fatalf("unexpected script contents:\n%s", data)
	}
}

func TestGenerateFailsOnUnwritableRoot(t *testing.T) {
	cfg := baseTestConfig(t, ":8085")
	blocked := filepath.Join(cfg.Root, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg.Root = blocked

	if _, err := Generate(cfg); err == nil {
		t.Fatalf("expected error when config directory cannot be created")
	}
}

func TestNewInitializesDependencies(t *testing.T) {
	cfg := baseTestConfig(t, ":8085")
	logger := zaptest.NewLogger(t)

	app, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := os.Stat(cfg.ScriptPath()); err != nil {
		t.Fatalf("expected config script to exist before server start: %v", err)
	}
	if app.server == nil || app.router == nil {
		t.Fatalf("expected server and router to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig(t, "9090")
	handler := http.NewServeMux()

	server := NewServer(cfg, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != cfg.ReadHeaderTimeout ||
		server.WriteTimeout != cfg.WriteTimeout ||
		server.IdleTimeout != cfg.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}
}

func TestNewReturnsErrorWhenGenerationFails(t *testing.T) {
	cfg := baseTestConfig(t, ":0")
	blocked := filepath.Join(cfg.Root, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg.Root = blocked

	if _, err := New(cfg, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected error when generation fails")
	}
}

func baseTestConfig(t *testing.T, port string) config.Config {
	t.Helper()

	return config.Config{
		Root:                 t.TempDir(),
		ConfigDir:            "config",
		ScriptName:           "front.env.js",
		GlobalName:           "__frontEnv__",
		Marker:               "<!-- front-env -->",
		Prefixes:             []string{"STAGE", "API_URL"},
		Port:                 port,
		ShutdownGracePeriod:  50 * time.Millisecond,
		ReadHeaderTimeout:    20 * time.Millisecond,
		WriteTimeout:         30 * time.Millisecond,
		IdleTimeout:          40 * time.Millisecond,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
	}
}
