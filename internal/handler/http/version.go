package http

import (
	"net/http"

	"github.com/MKhiriev/go-app-state-sync/models"
)

// namespaceHeader names the query namespace the relay accepts.
const namespaceHeader = "X-Sync-Namespace"

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set(namespaceHeader, models.SyncNamespace)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(version))
}
