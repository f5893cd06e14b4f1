package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kubedeck/kubedeck/internal/domain/model"
	"github.com/kubedeck/kubedeck/internal/domain/port/inbound"
	"github.com/kubedeck/kubedeck/pkg/apierror"
)

// Handler serves the dashboard API. All cluster work is delegated to the
// inbound dashboard port; the handler only decodes requests and encodes
// responses.
type Handler struct {
	dashboard inbound.DashboardPort
}

// NewHandler creates a Handler.
func NewHandler(dashboard inbound.DashboardPort) *Handler {
	return &Handler{dashboard: dashboard}
}

// HealthHandler returns an http.HandlerFunc for the /health endpoint.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// --- resource views ---

func (h *Handler) handleNamespaces(w http.ResponseWriter, r *http.Request) {
	namespaces, err := h.dashboard.Namespaces(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, namespaces)
}

func (h *Handler) handlePods(w http.ResponseWriter, r *http.Request) {
	pods, err := h.dashboard.Pods(r.Context(), namespaceParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pods)
}

func (h *Handler) handleDeployments(w http.ResponseWriter, r *http.Request) {
	deployments, err := h.dashboard.Deployments(r.Context(), namespaceParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deployments)
}

func (h *Handler) handleServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.dashboard.Services(r.Context(), namespaceParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (h *Handler) handleIngresses(w http.ResponseWriter, r *http.Request) {
	ingresses, err := h.dashboard.Ingresses(r.Context(), namespaceParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ingresses)
}

func (h *Handler) handleRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.dashboard.Roles(r.Context(), namespaceParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

func (h *Handler) handleRoleBindings(w http.ResponseWriter, r *http.Request) {
	bindings, err := h.dashboard.RoleBindings(r.Context(), namespaceParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bindings)
}

func (h *Handler) handleServiceAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.dashboard.ServiceAccounts(r.Context(), namespaceParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *Handler) handleVolumeClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.dashboard.PersistentVolumeClaims(r.Context(), namespaceParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

func (h *Handler) handleVolumes(w http.ResponseWriter, r *http.Request) {
	volumes, err := h.dashboard.PersistentVolumes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, volumes)
}

func (h *Handler) handleStorageClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.dashboard.StorageClasses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

func (h *Handler) handleTopology(w http.ResponseWriter, r *http.Request) {
	lines, err := h.dashboard.Topology(r.Context(), namespaceParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"lines": lines})
}

func (h *Handler) handleObjectYAML(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	name := r.URL.Query().Get("name")
	if kind == "" || name == "" {
		writeJSON(w, http.StatusBadRequest, apierror.BadRequest("kind and name are required"))
		return
	}
	out, err := h.dashboard.ObjectYAML(r.Context(), kind, namespaceParam(r), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"yaml": out})
}

// --- helpers ---

// namespaceParam returns the ?namespace= query parameter, defaulting to
// "default".
func namespaceParam(r *http.Request) string {
	if ns := r.URL.Query().Get("namespace"); ns != "" {
		return ns
	}
	return "default"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the command-error taxonomy onto HTTP statuses:
// invalid_command -> 400, forbidden -> 403, execution_failure -> 502;
// everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	var cmdErr *model.CommandError
	if errors.As(err, &cmdErr) {
		status := http.StatusInternalServerError
		switch cmdErr.Kind {
		case model.ErrInvalidCommand:
			status = http.StatusBadRequest
		case model.ErrForbidden:
			status = http.StatusForbidden
		case model.ErrExecutionFailure:
			status = http.StatusBadGateway
		}
		writeJSON(w, status, apierror.WithDetail(status, string(cmdErr.Kind), cmdErr.Detail))
		return
	}
	writeJSON(w, http.StatusInternalServerError, apierror.Internal(err.Error()))
}
