package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Kubernetes KubernetesConfig `yaml:"kubernetes"`
	Gatekeeper GatekeeperConfig `yaml:"gatekeeper"`
	Shell      ShellConfig      `yaml:"shell"`
	Slack      SlackConfig      `yaml:"slack"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port              int           `yaml:"port"`
	ReadTimeout       time.Duration `yaml:"readTimeout"`
	WriteTimeout      time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
	MetricsPort       int           `yaml:"metricsPort"`
	RequestsPerMinute int           `yaml:"requestsPerMinute"`
}

type KubernetesConfig struct {
	InCluster           bool     `yaml:"inCluster"`
	Kubeconfig          string   `yaml:"kubeconfig"`
	ProtectedNamespaces []string `yaml:"protectedNamespaces"`
}

// GatekeeperConfig configures command validation. Empty allowedSubcommands
// or stripCharacters fall back to the built-in defaults.
type GatekeeperConfig struct {
	Prefix             string   `yaml:"prefix"`
	AllowedSubcommands []string `yaml:"allowedSubcommands"`
	StripCharacters    string   `yaml:"stripCharacters"`
}

type ShellConfig struct {
	KubectlPath string        `yaml:"kubectlPath"`
	HelmPath    string        `yaml:"helmPath"`
	K3dPath     string        `yaml:"k3dPath"`
	ExecTimeout time.Duration `yaml:"execTimeout"`
}

type SlackConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"botToken"`
	Channel  string `yaml:"channel"`
}

type DatabaseConfig struct {
	SQLite SQLiteConfig `yaml:"sqlite"`
}

type SQLiteConfig struct {
	Path              string `yaml:"path"`
	MaxOpenConns      int    `yaml:"maxOpenConns"`
	PragmaJournalMode string `yaml:"pragmaJournalMode"`
	PragmaBusyTimeout int    `yaml:"pragmaBusyTimeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads a YAML config file and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              8080,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   15 * time.Second,
			MetricsPort:       9090,
			RequestsPerMinute: 120,
		},
		Kubernetes: KubernetesConfig{
			InCluster:           false,
			ProtectedNamespaces: []string{"kube-system", "kube-public", "kube-node-lease"},
		},
		Gatekeeper: GatekeeperConfig{
			Prefix: "kubectl",
		},
		Shell: ShellConfig{
			KubectlPath: "kubectl",
			HelmPath:    "helm",
			K3dPath:     "k3d",
			ExecTimeout: 30 * time.Second,
		},
		Slack: SlackConfig{
			Enabled: false,
			Channel: "#k8s-audit",
		},
		Database: DatabaseConfig{
			SQLite: SQLiteConfig{
				Path:              "/data/kubedeck.db",
				MaxOpenConns:      1,
				PragmaJournalMode: "wal",
				PragmaBusyTimeout: 5000,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// expandEnvVars replaces ${VAR} patterns with environment variable values.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "${" + key + "}"
	})
}
