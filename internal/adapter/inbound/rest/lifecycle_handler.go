package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kubedeck/kubedeck/pkg/apierror"
)

func (h *Handler) handleHelmReleases(w http.ResponseWriter, r *http.Request) {
	out, err := h.dashboard.HelmReleases(r.Context(), r.URL.Query().Get("namespace"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kubectlResponse{Output: out})
}

func (h *Handler) handleHelmSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		writeJSON(w, http.StatusBadRequest, apierror.BadRequest("keyword is required"))
		return
	}
	out, err := h.dashboard.HelmSearch(r.Context(), keyword)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kubectlResponse{Output: out})
}

type helmInstallRequest struct {
	Release   string `json:"release"`
	Chart     string `json:"chart"`
	Namespace string `json:"namespace"`
}

func (h *Handler) handleHelmInstall(w http.ResponseWriter, r *http.Request) {
	var req helmInstallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apierror.BadRequest("invalid JSON body"))
		return
	}
	if req.Release == "" || req.Chart == "" {
		writeJSON(w, http.StatusBadRequest, apierror.BadRequest("release and chart are required"))
		return
	}

	out, err := h.dashboard.HelmInstall(r.Context(), req.Release, req.Chart, req.Namespace)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kubectlResponse{Output: out})
}

func (h *Handler) handleHelmUninstall(w http.ResponseWriter, r *http.Request) {
	out, err := h.dashboard.HelmUninstall(r.Context(), r.PathValue("namespace"), r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kubectlResponse{Output: out})
}

func (h *Handler) handleClusters(w http.ResponseWriter, r *http.Request) {
	out, err := h.dashboard.Clusters(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kubectlResponse{Output: out})
}

type clusterRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreateCluster(w http.ResponseWriter, r *http.Request) {
	var req clusterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apierror.BadRequest("invalid JSON body"))
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, apierror.BadRequest("name is required"))
		return
	}

	out, err := h.dashboard.CreateCluster(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kubectlResponse{Output: out})
}

func (h *Handler) handleDeleteCluster(w http.ResponseWriter, r *http.Request) {
	out, err := h.dashboard.DeleteCluster(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kubectlResponse{Output: out})
}

func (h *Handler) handleSwitchCluster(w http.ResponseWriter, r *http.Request) {
	out, err := h.dashboard.SwitchCluster(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kubectlResponse{Output: out})
}

func (h *Handler) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, apierror.BadRequest("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.dashboard.AuditTrail(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
