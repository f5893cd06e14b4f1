package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/kubedeck/kubedeck/internal/adapter/inbound/rest"
	"github.com/kubedeck/kubedeck/internal/adapter/outbound/kubernetes"
	"github.com/kubedeck/kubedeck/internal/adapter/outbound/notification"
	slacknotifier "github.com/kubedeck/kubedeck/internal/adapter/outbound/notification/slack"
	"github.com/kubedeck/kubedeck/internal/adapter/outbound/persistence/sqlite"
	"github.com/kubedeck/kubedeck/internal/adapter/outbound/shell"
	"github.com/kubedeck/kubedeck/internal/config"
	"github.com/kubedeck/kubedeck/internal/domain/port/outbound"
	"github.com/kubedeck/kubedeck/internal/domain/service"
	"github.com/kubedeck/kubedeck/pkg/health"
	"github.com/kubedeck/kubedeck/pkg/version"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	printVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *printVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = buildLogger(cfg.Logging)

	// --- Database ---
	store, err := sqlite.NewStore(sqlite.Config{
		Path:              cfg.Database.SQLite.Path,
		MaxOpenConns:      cfg.Database.SQLite.MaxOpenConns,
		PragmaJournalMode: cfg.Database.SQLite.PragmaJournalMode,
		PragmaBusyTimeout: cfg.Database.SQLite.PragmaBusyTimeout,
	})
	if err != nil {
		logger.Error("failed to open sqlite store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	auditRepo := sqlite.NewAuditRepo(store)

	// --- Kubernetes ---
	clientset, err := kubernetes.NewClientset(cfg.Kubernetes.InCluster, cfg.Kubernetes.Kubeconfig)
	if err != nil {
		logger.Error("failed to create kubernetes clientset", "error", err)
		os.Exit(1)
	}
	reader := kubernetes.NewReader(clientset)
	mutator := kubernetes.NewMutator(clientset, cfg.Kubernetes.ProtectedNamespaces)

	// --- Shell runner ---
	runner := shell.NewRunner(cfg.Shell.ExecTimeout, logger)

	// --- Notifier ---
	var notifier outbound.Notifier
	if cfg.Slack.Enabled {
		notifier = slacknotifier.NewNotifier(slacknotifier.Config{
			BotToken: cfg.Slack.BotToken,
			Channel:  cfg.Slack.Channel,
		})
	} else {
		notifier = notification.NewNoopNotifier(logger)
	}

	// --- Domain services ---
	auditor := service.NewSecurityAuditor(auditRepo, notifier, logger)

	gkCfg := service.DefaultGatekeeperConfig()
	if cfg.Gatekeeper.Prefix != "" {
		gkCfg.Prefix = cfg.Gatekeeper.Prefix
	}
	if len(cfg.Gatekeeper.AllowedSubcommands) > 0 {
		gkCfg.AllowedSubcommands = cfg.Gatekeeper.AllowedSubcommands
	}
	if cfg.Gatekeeper.StripCharacters != "" {
		gkCfg.StripCharacters = cfg.Gatekeeper.StripCharacters
	}
	gatekeeper := service.NewGatekeeper(gkCfg, auditor, logger)

	dashboard := service.NewDashboard(reader, mutator, runner, gatekeeper, auditRepo, service.Binaries{
		Kubectl: cfg.Shell.KubectlPath,
		Helm:    cfg.Shell.HelmPath,
		K3d:     cfg.Shell.K3dPath,
	}, logger)

	// --- API server ---
	apiHandler := rest.NewHandler(dashboard)
	apiServer := rest.NewServer(rest.ServerConfig{
		Port:              cfg.Server.Port,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		RequestsPerMinute: cfg.Server.RequestsPerMinute,
	}, apiHandler, log.Default())

	// --- Health checker ---
	checker := health.NewChecker()
	checker.Register("database", func(ctx context.Context) error {
		return store.DB.PingContext(ctx)
	})
	checker.Register("kubernetes", func(ctx context.Context) error {
		return reader.HealthCheck(ctx)
	})

	// --- Metrics server ---
	metricsMux := http.NewServeMux()
	metricsMux.HandleFunc("/healthz", checker.LivenessHandler())
	metricsMux.HandleFunc("/readyz", checker.ReadinessHandler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsMux,
	}

	// --- Signal handling & startup ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	// API HTTP server.
	g.Go(func() error {
		logger.Info("starting api server", "port", cfg.Server.Port)
		return apiServer.Start(gCtx)
	})

	// Metrics/health server.
	g.Go(func() error {
		logger.Info("starting metrics server", "port", cfg.Server.MetricsPort)
		errCh := make(chan error, 1)
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
			close(errCh)
		}()
		select {
		case <-gCtx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return metricsServer.Shutdown(shutdownCtx)
		case err := <-errCh:
			return err
		}
	})

	logger.Info("kubedeck started", "version", version.String())

	if err := g.Wait(); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("kubedeck stopped")
}

// buildLogger constructs a slog.Logger based on config.
func buildLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
