package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Server defaults
	if cfg.Server.Port != 8080 {
		t.Errorf("expected server.port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("expected server.readTimeout 30s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("expected server.writeTimeout 30s, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Server.ShutdownTimeout != 15*time.Second {
		t.Errorf("expected server.shutdownTimeout 15s, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Server.MetricsPort != 9090 {
		t.Errorf("expected server.metricsPort 9090, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RequestsPerMinute != 120 {
		t.Errorf("expected server.requestsPerMinute 120, got %d", cfg.Server.RequestsPerMinute)
	}

	// Gatekeeper defaults
	if cfg.Gatekeeper.Prefix != "kubectl" {
		t.Errorf("expected gatekeeper.prefix kubectl, got %q", cfg.Gatekeeper.Prefix)
	}
	if len(cfg.Gatekeeper.AllowedSubcommands) != 0 {
		t.Errorf("expected empty allowedSubcommands (built-in default), got %v", cfg.Gatekeeper.AllowedSubcommands)
	}

	// Shell defaults
	if cfg.Shell.KubectlPath != "kubectl" {
		t.Errorf("expected shell.kubectlPath kubectl, got %q", cfg.Shell.KubectlPath)
	}
	if cfg.Shell.ExecTimeout != 30*time.Second {
		t.Errorf("expected shell.execTimeout 30s, got %v", cfg.Shell.ExecTimeout)
	}

	// Kubernetes defaults
	if cfg.Kubernetes.InCluster {
		t.Error("expected kubernetes.inCluster false")
	}
	if len(cfg.Kubernetes.ProtectedNamespaces) != 3 {
		t.Errorf("expected 3 protected namespaces, got %d", len(cfg.Kubernetes.ProtectedNamespaces))
	}

	// Database defaults
	if cfg.Database.SQLite.Path != "/data/kubedeck.db" {
		t.Errorf("expected sqlite.path /data/kubedeck.db, got %q", cfg.Database.SQLite.Path)
	}

	// Slack defaults
	if cfg.Slack.Enabled {
		t.Error("expected slack.enabled false")
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging.level info, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected logging.format json, got %q", cfg.Logging.Format)
	}
}

func TestLoad(t *testing.T) {
	yaml := `
server:
  port: 9000
  metricsPort: 9091
gatekeeper:
  prefix: kubectl
  allowedSubcommands: [get, describe]
shell:
  kubectlPath: /usr/local/bin/kubectl
database:
  sqlite:
    path: "/tmp/test.db"
`
	f := writeTempYAML(t, yaml)

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9091 {
		t.Errorf("expected metricsPort 9091, got %d", cfg.Server.MetricsPort)
	}
	if len(cfg.Gatekeeper.AllowedSubcommands) != 2 {
		t.Errorf("expected 2 allowed subcommands, got %v", cfg.Gatekeeper.AllowedSubcommands)
	}
	if cfg.Shell.KubectlPath != "/usr/local/bin/kubectl" {
		t.Errorf("expected kubectlPath /usr/local/bin/kubectl, got %q", cfg.Shell.KubectlPath)
	}
	if cfg.Database.SQLite.Path != "/tmp/test.db" {
		t.Errorf("expected sqlite path /tmp/test.db, got %q", cfg.Database.SQLite.Path)
	}
	// Verify defaults still apply to unset fields
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("expected default readTimeout 30s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Shell.HelmPath != "helm" {
		t.Errorf("expected default helmPath helm, got %q", cfg.Shell.HelmPath)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	f := writeTempYAML(t, ":::invalid yaml:::")
	_, err := Load(f)
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_TOKEN", "secret-token-123")
	t.Setenv("TEST_PORT", "9999")

	input := "token: ${TEST_TOKEN}\nport: ${TEST_PORT}\nmissing: ${MISSING_VAR}"
	result := expandEnvVars(input)

	if result != "token: secret-token-123\nport: 9999\nmissing: ${MISSING_VAR}" {
		t.Errorf("unexpected expansion result:\n%s", result)
	}
}

func TestExpandEnvVars_InLoad(t *testing.T) {
	t.Setenv("KUBEDECK_DB_PATH", "/tmp/envtest.db")

	yaml := `
database:
  sqlite:
    path: "${KUBEDECK_DB_PATH}"
`
	f := writeTempYAML(t, yaml)

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Database.SQLite.Path != "/tmp/envtest.db" {
		t.Errorf("expected env-expanded path /tmp/envtest.db, got %q", cfg.Database.SQLite.Path)
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("expected valid config to pass validation, got: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0

	if err := Validate(cfg); err == nil {
		t.Error("expected validation error for port 0, got nil")
	}
}

func TestValidate_InvalidPort_TooHigh(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 99999

	if err := Validate(cfg); err == nil {
		t.Error("expected validation error for port 99999, got nil")
	}
}

func TestValidate_MissingPrefix(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gatekeeper.Prefix = ""

	if err := Validate(cfg); err == nil {
		t.Error("expected validation error for empty gatekeeper prefix, got nil")
	}
}

func TestValidate_MissingKubectlPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shell.KubectlPath = ""

	if err := Validate(cfg); err == nil {
		t.Error("expected validation error for empty kubectl path, got nil")
	}
}

func TestValidate_MissingSQLitePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.SQLite.Path = ""

	if err := Validate(cfg); err == nil {
		t.Error("expected validation error for empty sqlite path, got nil")
	}
}

func TestValidate_SlackRequiresToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Slack.Enabled = true
	cfg.Slack.BotToken = ""

	if err := Validate(cfg); err == nil {
		t.Error("expected validation error for missing slack token, got nil")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "verbose"

	if err := Validate(cfg); err == nil {
		t.Error("expected validation error for invalid log level, got nil")
	}
}

// writeTempYAML writes content to a temp file and returns its path.
func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	f := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(f, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp yaml: %v", err)
	}
	return f
}
