package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Root != "." {
		t.Fatalf("unexpected root: %q", cfg.Root)
	}
	if cfg.GlobalName != "__frontEnv__" {
		t.Fatalf("unexpected global name: %q", cfg.GlobalName)
	}
	if cfg.Marker != "<!-- front-env -->" {
		t.Fatalf("unexpected marker: %q", cfg.Marker)
	}
	if len(cfg.Prefixes) != 2 {
		t.Fatalf("unexpected whitelist: %v", cfg.Prefixes)
	}
	if cfg.ExactMatch {
		t.Fatalf("expected prefix matching by default")
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected port: %q", cfg.Port)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
	if !cfg.EnableRequestLogging {
		t.Fatalf("expected request logging on by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FRONTENV_PORT", "9000")
	t.Setenv("FRONTENV_PREFIXES", "STAGE,API_URL,FEATURE_")
	t.Setenv("FRONTENV_EXACT_MATCH", "true")
	t.Setenv("FRONTENV_IDLE_TIMEOUT", "90s")

	cfg, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected env port override, got %q", cfg.Port)
	}
	if len(cfg.Prefixes) != 3 || cfg.Prefixes[2] != "FEATURE_" {
		t.Fatalf("unexpected whitelist: %v", cfg.Prefixes)
	}
	if !cfg.ExactMatch {
		t.Fatalf("expected exact match override")
	}
	if cfg.IdleTimeout != 90*time.Second {
		t.Fatalf("unexpected idle timeout: %s", cfg.IdleTimeout)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "frontenv.yaml")
	body := `
root: /srv/www
global_name: appConfig
prefixes: [BACKEND_]
rate_limit_rps: 0
shutdown_grace_period: 3s
`
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(nil, file)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Root != "/srv/www" {
		t.Fatalf("unexpected root: %q", cfg.Root)
	}
	if cfg.GlobalName != "appConfig" {
		t.Fatalf("unexpected global name: %q", cfg.GlobalName)
	}
	if len(cfg.Prefixes) != 1 || cfg.Prefixes[0] != "BACKEND_" {
		t.Fatalf("unexpected whitelist: %v", cfg.Prefixes)
	}
	if cfg.RateLimitRPS != 0 {
		t.Fatalf("expected rate limit disabled, got %v", cfg.RateLimitRPS)
	}
	if cfg.ShutdownGracePeriod != 3*time.Second {
		t.Fatalf("unexpected grace period: %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "frontenv.yaml")
	if err := os.WriteFile(file, []byte("port: \"7000\"\nmarker: \"<!-- from-yaml -->\"\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	t.Setenv("FRONTENV_PORT", "6000")
	t.Setenv("FRONTENV_ROOT", "/from-env")

	cli := &Layer{Port: "5000"}
	cfg, err := Load(cli, file)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "5000" {
		t.Fatalf("expected CLI to beat YAML and env, got %q", cfg.Port)
	}
	if cfg.Marker != "<!-- from-yaml -->" {
		t.Fatalf("expected YAML marker, got %q", cfg.Marker)
	}
	if cfg.Root != "/from-env" {
		t.Fatalf("expected env root below YAML, got %q", cfg.Root)
	}
}

func TestLoadMissingYAMLFile(t *testing.T) {
	if _, err := Load(nil, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	t.Run("bad global name", func(t *testing.T) {
		if _, err := Load(&Layer{GlobalName: "1bad name"}, ""); err == nil {
			t.Fatalf("expected error for invalid identifier")
		}
	})

	t.Run("empty whitelist entry", func(t *testing.T) {
		if _, err := Load(&Layer{Prefixes: []string{"STAGE", ""}}, ""); err == nil {
			t.Fatalf("expected error for empty whitelist entry")
		}
	})

	t.Run("negative rate limit", func(t *testing.T) {
		rps := -1.0
		if _, err := Load(&Layer{RateLimitRPS: &rps}, ""); err == nil {
			t.Fatalf("expected error for negative rate limit")
		}
	})
}

func TestScriptPaths(t *testing.T) {
	cfg, err := Load(&Layer{Root: "/srv/www"}, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if got := cfg.ScriptPath(); got != filepath.Join("/srv/www", "config", "front.env.js") {
		t.Fatalf("unexpected script path: %q", got)
	}
	if got := cfg.ScriptSrc(); got != "./config/front.env.js" {
		t.Fatalf("unexpected script src: %q", got)
	}
}
