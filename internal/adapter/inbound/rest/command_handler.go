package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kubedeck/kubedeck/internal/adapter/inbound/rest/middleware"
	"github.com/kubedeck/kubedeck/internal/domain/model"
	"github.com/kubedeck/kubedeck/pkg/apierror"
)

type kubectlRequest struct {
	Command string `json:"command"`
}

type kubectlResponse struct {
	Output string `json:"output"`
}

// handleKubectl runs one free-form kubectl command through the gatekeeper.
func (h *Handler) handleKubectl(w http.ResponseWriter, r *http.Request) {
	var req kubectlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apierror.BadRequest("invalid JSON body"))
		return
	}

	out, err := h.dashboard.RunKubectl(r.Context(), model.RawCommand(req.Command), middleware.RemoteIP(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kubectlResponse{Output: out})
}

type applyRequest struct {
	Manifest string `json:"manifest"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apierror.BadRequest("invalid JSON body"))
		return
	}
	if req.Manifest == "" {
		writeJSON(w, http.StatusBadRequest, apierror.BadRequest("manifest is required"))
		return
	}

	out, err := h.dashboard.ApplyManifest(r.Context(), req.Manifest)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kubectlResponse{Output: out})
}

type scaleRequest struct {
	Replicas int32 `json:"replicas"`
}

func (h *Handler) handleScale(w http.ResponseWriter, r *http.Request) {
	var req scaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apierror.BadRequest("invalid JSON body"))
		return
	}
	if req.Replicas < 0 {
		writeJSON(w, http.StatusBadRequest, apierror.BadRequest("replicas must be >= 0"))
		return
	}

	ns := r.PathValue("namespace")
	name := r.PathValue("name")
	if err := h.dashboard.ScaleDeployment(r.Context(), ns, name, req.Replicas); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "scaled",
		"replicas": strconv.Itoa(int(req.Replicas)),
	})
}

func (h *Handler) handleRestart(w http.ResponseWriter, r *http.Request) {
	ns := r.PathValue("namespace")
	name := r.PathValue("name")
	if err := h.dashboard.RestartDeployment(r.Context(), ns, name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "restarted"})
}

func (h *Handler) handleDeletePod(w http.ResponseWriter, r *http.Request) {
	ns := r.PathValue("namespace")
	name := r.PathValue("name")
	if err := h.dashboard.DeletePod(r.Context(), ns, name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
