package rest

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/kubedeck/kubedeck/internal/adapter/inbound/rest/middleware"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	RequestsPerMinute int
}

// Server wraps an HTTP server with graceful shutdown support.
type Server struct {
	cfg     ServerConfig
	handler *Handler
	logger  *log.Logger
	srv     *http.Server
}

// NewServer creates a Server with the given config and API handler.
func NewServer(cfg ServerConfig, handler *Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
	}
}

// SetupRoutes builds an http.Handler with all routes and middleware applied.
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", HealthHandler())

	// Resource views.
	mux.HandleFunc("GET /api/namespaces", s.handler.handleNamespaces)
	mux.HandleFunc("GET /api/pods", s.handler.handlePods)
	mux.HandleFunc("GET /api/deployments", s.handler.handleDeployments)
	mux.HandleFunc("GET /api/services", s.handler.handleServices)
	mux.HandleFunc("GET /api/ingresses", s.handler.handleIngresses)
	mux.HandleFunc("GET /api/roles", s.handler.handleRoles)
	mux.HandleFunc("GET /api/rolebindings", s.handler.handleRoleBindings)
	mux.HandleFunc("GET /api/serviceaccounts", s.handler.handleServiceAccounts)
	mux.HandleFunc("GET /api/persistentvolumeclaims", s.handler.handleVolumeClaims)
	mux.HandleFunc("GET /api/persistentvolumes", s.handler.handleVolumes)
	mux.HandleFunc("GET /api/storageclasses", s.handler.handleStorageClasses)
	mux.HandleFunc("GET /api/topology", s.handler.handleTopology)
	mux.HandleFunc("GET /api/yaml", s.handler.handleObjectYAML)

	// Commands and mutations.
	mux.HandleFunc("POST /api/kubectl", s.handler.handleKubectl)
	mux.HandleFunc("POST /api/apply", s.handler.handleApply)
	mux.HandleFunc("POST /api/deployments/{namespace}/{name}/scale", s.handler.handleScale)
	mux.HandleFunc("POST /api/deployments/{namespace}/{name}/restart", s.handler.handleRestart)
	mux.HandleFunc("DELETE /api/pods/{namespace}/{name}", s.handler.handleDeletePod)

	// Helm and cluster lifecycle.
	mux.HandleFunc("GET /api/helm/releases", s.handler.handleHelmReleases)
	mux.HandleFunc("GET /api/helm/search", s.handler.handleHelmSearch)
	mux.HandleFunc("POST /api/helm/install", s.handler.handleHelmInstall)
	mux.HandleFunc("DELETE /api/helm/releases/{namespace}/{name}", s.handler.handleHelmUninstall)
	mux.HandleFunc("GET /api/clusters", s.handler.handleClusters)
	mux.HandleFunc("POST /api/clusters", s.handler.handleCreateCluster)
	mux.HandleFunc("DELETE /api/clusters/{name}", s.handler.handleDeleteCluster)
	mux.HandleFunc("POST /api/clusters/{name}/switch", s.handler.handleSwitchCluster)

	mux.HandleFunc("GET /api/audit", s.handler.handleAuditTrail)

	// Apply middleware stack (outermost = first to execute):
	//   BodyReader -> Logging -> RateLimit -> SecurityHeaders
	var h http.Handler = mux
	h = middleware.SecurityHeaders(h)
	h = middleware.NewRateLimiter(s.cfg.RequestsPerMinute)(h)
	h = middleware.NewLoggingMiddleware(s.logger)(h)
	h = middleware.BodyReader(h)

	return h
}

// Start starts the HTTP server and blocks until ctx is cancelled, then
// performs a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.SetupRoutes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("api server listening on :%d", s.cfg.Port)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
